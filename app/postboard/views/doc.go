// Package views renders the postboard pages as templ components.
//
// Every value that originates from a user is escaped with templ.EscapeString
// before it reaches the response.
package views
