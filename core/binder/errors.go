package binder

import "errors"

var (
	// ErrUnsupportedMediaType indicates the Content-Type header specifies a media type
	// that the binder doesn't support.
	ErrUnsupportedMediaType = errors.New("unsupported media type")

	// ErrFailedToParseForm indicates form data parsing or field conversion failed.
	ErrFailedToParseForm = errors.New("failed to parse form data")

	// ErrMissingContentType indicates the request lacks a Content-Type header.
	ErrMissingContentType = errors.New("missing content type")

	// ErrInvalidTarget indicates v is not a non-nil pointer to a struct.
	ErrInvalidTarget = errors.New("binder target must be a non-nil pointer to a struct")
)
