package validator

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode/utf8"
)

// Rule is a deferred check with the error reported when it fails.
type Rule struct {
	Check func() bool
	Error ValidationError
}

// ValidationError describes one failed rule.
type ValidationError struct {
	Field   string         `json:"field"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

func (e ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// ValidationErrors collects every failed rule of a struct.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Add appends a failure.
func (e *ValidationErrors) Add(err ValidationError) {
	*e = append(*e, err)
}

// IsEmpty reports whether no rule failed.
func (e ValidationErrors) IsEmpty() bool {
	return len(e) == 0
}

// Has reports whether field has at least one failure.
func (e ValidationErrors) Has(field string) bool {
	for _, err := range e {
		if err.Field == field {
			return true
		}
	}
	return false
}

// First returns the first failure message, or "" when there is none.
func (e ValidationErrors) First() string {
	if len(e) == 0 {
		return ""
	}
	return e[0].Message
}

// Apply runs rules and returns ValidationErrors, or nil when all pass.
func Apply(rules ...Rule) error {
	var errs ValidationErrors
	for _, r := range rules {
		if !r.Check() {
			errs.Add(r.Error)
		}
	}
	if errs.IsEmpty() {
		return nil
	}
	return errs
}

// MinLenString requires at least min characters. Length is counted in runes.
func MinLenString(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
			Params:  map[string]any{"min": min},
		},
	}
}

// MaxLenString allows at most max characters. Length is counted in runes.
func MaxLenString(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
			Params:  map[string]any{"max": max},
		},
	}
}

var (
	regexMu    sync.RWMutex
	regexCache = map[string]*regexp.Regexp{}
)

// MatchesRegex requires value to match pattern. Compiled patterns are cached.
// An invalid pattern fails the check.
func MatchesRegex(field, value, pattern, description string) Rule {
	re, err := compile(pattern)
	return Rule{
		Check: func() bool { return err == nil && re.MatchString(value) },
		Error: ValidationError{
			Field:   field,
			Message: "must match " + description,
			Params:  map[string]any{"pattern": pattern},
		},
	}
}

func compile(pattern string) (*regexp.Regexp, error) {
	regexMu.RLock()
	re, ok := regexCache[pattern]
	regexMu.RUnlock()
	if ok {
		return re, nil
	}

	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, err
	}
	regexMu.Lock()
	regexCache[pattern] = re
	regexMu.Unlock()
	return re, nil
}
