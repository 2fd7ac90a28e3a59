package validator_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/postboard/core/validator"
)

type credentials struct {
	Username string `form:"username" validate:"min:3;max:31;regex:^[A-Za-z0-9_-]+$,letters digits _ and -"`
	Password string `form:"password" validate:"min:6;max:255"`
	Note     string `validate:"required"`
	Skipped  string `validate:"-"`
}

func TestValidateStruct(t *testing.T) {
	t.Parallel()

	valid := func() credentials {
		return credentials{Username: "alice_01", Password: "secret123", Note: "x"}
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		c := valid()
		assert.NoError(t, validator.ValidateStruct(&c))
	})

	cases := []struct {
		name   string
		mutate func(*credentials)
		field  string
	}{
		{"username too short", func(c *credentials) { c.Username = "al" }, "username"},
		{"username too long", func(c *credentials) { c.Username = strings.Repeat("a", 32) }, "username"},
		{"username bad char", func(c *credentials) { c.Username = "alice!" }, "username"},
		{"username space", func(c *credentials) { c.Username = "al ice" }, "username"},
		{"password too short", func(c *credentials) { c.Password = "12345" }, "password"},
		{"password too long", func(c *credentials) { c.Password = strings.Repeat("p", 256) }, "password"},
		{"required note", func(c *credentials) { c.Note = "   " }, "Note"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			c := valid()
			tc.mutate(&c)

			err := validator.ValidateStruct(&c)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.True(t, verrs.Has(tc.field), verrs.Error())
			assert.NotEmpty(t, verrs.First())
		})
	}

	t.Run("boundaries", func(t *testing.T) {
		t.Parallel()

		c := valid()
		c.Username = "abc"
		c.Password = "123456"
		assert.NoError(t, validator.ValidateStruct(&c))

		c.Username = strings.Repeat("a", 31)
		c.Password = strings.Repeat("p", 255)
		assert.NoError(t, validator.ValidateStruct(&c))
	})

	t.Run("length counts runes", func(t *testing.T) {
		t.Parallel()

		c := valid()
		c.Password = "ñññññ"
		assert.Error(t, validator.ValidateStruct(&c))
		c.Password = "ññññññ"
		assert.NoError(t, validator.ValidateStruct(&c))
	})

	t.Run("invalid target", func(t *testing.T) {
		t.Parallel()
		assert.ErrorIs(t, validator.ValidateStruct(valid()), validator.ErrInvalidTarget)
	})
}

func TestRegisterValidator(t *testing.T) {
	validator.RegisterValidator("lower", func(field string, value reflect.Value, _ []string) validator.Rule {
		return validator.Rule{
			Check: func() bool { return strings.ToLower(value.String()) == value.String() },
			Error: validator.ValidationError{Field: field, Message: "must be lower case"},
		}
	})

	type form struct {
		Slug string `form:"slug" validate:"lower"`
	}

	assert.NoError(t, validator.ValidateStruct(&form{Slug: "ok"}))
	err := validator.ValidateStruct(&form{Slug: "NotOK"})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "must be lower case", verrs.First())
}

func TestApply(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validator.Apply(
		validator.MinLenString("title", "Hello", 1),
		validator.MaxLenString("title", "Hello", 100),
	))

	err := validator.Apply(validator.MatchesRegex("code", "abc", "[", "broken pattern"))
	assert.Error(t, err)
}
