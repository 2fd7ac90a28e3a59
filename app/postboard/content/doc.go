// Package content manages posts and comments.
package content
