package sessiontransport

import "errors"

// ErrExpiredSession is returned when asked to issue a cookie for a session that has already expired.
var ErrExpiredSession = errors.New("sessiontransport: session already expired")
