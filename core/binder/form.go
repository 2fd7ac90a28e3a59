package binder

import (
	"fmt"
	"mime"
	"net/http"
	"reflect"
	"strconv"
	"strings"
)

// DefaultMaxMemory is the maximum memory used for parsing multipart forms (10MB).
const DefaultMaxMemory = 10 << 20

// Form binds application/x-www-form-urlencoded and multipart/form-data bodies.
//
// Fields are matched by the `form:"name"` tag; `form:"-"` skips a field and
// untagged fields are ignored. Supported kinds are string, bool, the integer
// kinds and slices of those for repeated fields. Values are trimmed unless
// the tag carries the raw option, as in `form:"password,raw"`.
//
//	type loginForm struct {
//		Username string `form:"username"`
//		Password string `form:"password,raw"`
//	}
//
//	var f loginForm
//	if err := binder.Form()(r, &f); err != nil {
//		return response.Error(response.ErrBadRequest)
//	}
func Form() Binder {
	return func(r *http.Request, v any) error {
		contentType := r.Header.Get("Content-Type")
		if contentType == "" {
			return ErrMissingContentType
		}

		mediaType, _, err := mime.ParseMediaType(contentType)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
		}

		var values map[string][]string
		switch mediaType {
		case "application/x-www-form-urlencoded":
			if err := r.ParseForm(); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.PostForm
		case "multipart/form-data":
			if err := r.ParseMultipartForm(DefaultMaxMemory); err != nil {
				return fmt.Errorf("%w: %v", ErrFailedToParseForm, err)
			}
			values = r.MultipartForm.Value
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedMediaType, mediaType)
		}

		return bindValues(v, values)
	}
}

func bindValues(v any, values map[string][]string) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}
	rv = rv.Elem()
	rt := rv.Type()

	for i := range rt.NumField() {
		field := rt.Field(i)
		name, opt, _ := strings.Cut(field.Tag.Get("form"), ",")
		if name == "" || name == "-" || !field.IsExported() {
			continue
		}
		raw, ok := values[name]
		if !ok || len(raw) == 0 {
			continue
		}
		if opt != "raw" {
			raw = trimAll(raw)
		}
		if err := setField(rv.Field(i), raw); err != nil {
			return fmt.Errorf("%w: field %q: %v", ErrFailedToParseForm, name, err)
		}
	}
	return nil
}

func setField(fv reflect.Value, raw []string) error {
	if fv.Kind() == reflect.Slice {
		slice := reflect.MakeSlice(fv.Type(), len(raw), len(raw))
		for i, s := range raw {
			if err := setScalar(slice.Index(i), s); err != nil {
				return err
			}
		}
		fv.Set(slice)
		return nil
	}
	return setScalar(fv, raw[0])
}

func trimAll(raw []string) []string {
	out := make([]string, len(raw))
	for i, s := range raw {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

func setScalar(fv reflect.Value, s string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)
	case reflect.Bool:
		if s == "" || s == "on" {
			fv.SetBool(s == "on")
			return nil
		}
		b, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		fv.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseInt(s, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if s == "" {
			return nil
		}
		n, err := strconv.ParseUint(s, 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(n)
	default:
		return fmt.Errorf("unsupported kind %s", fv.Kind())
	}
	return nil
}
