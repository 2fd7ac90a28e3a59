package postboard

import "errors"

var ErrIncompleteStores = errors.New("postboard: sessions, posts and comments stores are required with a custom user store")
