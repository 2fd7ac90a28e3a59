package content

import "errors"

var (
	// ErrValidation wraps validator.ValidationErrors for malformed forms.
	ErrValidation = errors.New("content: invalid input")
	// ErrPostNotFound is returned for absent posts.
	ErrPostNotFound = errors.New("content: post not found")
	// ErrForbidden is returned when a user modifies another user's post.
	ErrForbidden = errors.New("content: not the author")
)
