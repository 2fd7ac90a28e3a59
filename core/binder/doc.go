// Package binder decodes HTTP request bodies into structs.
//
// Only HTML form bodies are supported, which is all a server-rendered site
// posts. See Form for the tag syntax.
package binder
