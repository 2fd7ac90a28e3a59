package validator

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

// ValidatorFunc builds a Rule for a field from its tag parameters.
type ValidatorFunc func(field string, value reflect.Value, params []string) Rule

// ErrInvalidTarget is returned when ValidateStruct is not given a pointer to a struct.
var ErrInvalidTarget = errors.New("validator: must pass a pointer to struct")

var (
	registryMu sync.RWMutex
	registry   = map[string]ValidatorFunc{
		"required": requiredValidator,
		"min":      minValidator,
		"max":      maxValidator,
		"regex":    regexValidator,
	}
)

// RegisterValidator adds a custom validator function to the registry
func RegisterValidator(name string, fn ValidatorFunc) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = fn
}

// ValidateStruct checks the `validate` tags of a struct's fields.
// Rules are separated by ";" and parameters follow ":" separated by ",":
//
//	Username string `validate:"required;min:3;max:31;regex:^[A-Za-z0-9_-]+$,letters digits _ and -"`
//
// The field name reported in errors is the `form` tag when present, then the Go name.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	rv = rv.Elem()
	rt := rv.Type()

	var errs ValidationErrors

	registryMu.RLock()
	defer registryMu.RUnlock()

	for i := range rt.NumField() {
		sf := rt.Field(i)
		tag := sf.Tag.Get("validate")
		if tag == "" || tag == "-" || !sf.IsExported() {
			continue
		}

		name := sf.Name
		if form, _, _ := strings.Cut(sf.Tag.Get("form"), ","); form != "" && form != "-" {
			name = form
		}

		for rule := range strings.SplitSeq(tag, ";") {
			ruleName, paramStr, _ := strings.Cut(strings.TrimSpace(rule), ":")
			fn, ok := registry[ruleName]
			if !ok {
				continue
			}
			var params []string
			if paramStr != "" {
				params = strings.Split(paramStr, ",")
			}
			if r := fn(name, rv.Field(i), params); !r.Check() {
				errs.Add(r.Error)
			}
		}
	}

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func pass() Rule {
	return Rule{Check: func() bool { return true }}
}

func requiredValidator(field string, value reflect.Value, _ []string) Rule {
	return Rule{
		Check: func() bool {
			if value.Kind() == reflect.String {
				return strings.TrimSpace(value.String()) != ""
			}
			return !value.IsZero()
		},
		Error: ValidationError{Field: field, Message: "is required"},
	}
}

func minValidator(field string, value reflect.Value, params []string) Rule {
	n, err := intParam(params)
	if err != nil || value.Kind() != reflect.String {
		return pass()
	}
	return MinLenString(field, value.String(), n)
}

func maxValidator(field string, value reflect.Value, params []string) Rule {
	n, err := intParam(params)
	if err != nil || value.Kind() != reflect.String {
		return pass()
	}
	return MaxLenString(field, value.String(), n)
}

func regexValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String || len(params) < 1 {
		return pass()
	}
	description := "pattern"
	if len(params) > 1 {
		description = strings.Join(params[1:], ",")
	}
	return MatchesRegex(field, value.String(), params[0], description)
}

func intParam(params []string) (int, error) {
	if len(params) < 1 {
		return 0, errors.New("missing parameter")
	}
	return strconv.Atoi(strings.TrimSpace(params[0]))
}
