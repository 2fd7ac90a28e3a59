// Package validator checks struct fields against rules declared in tags.
//
//	type registerForm struct {
//		Username string `form:"username" validate:"min:3;max:31;regex:^[A-Za-z0-9_-]+$,letters digits _ and -"`
//		Password string `form:"password" validate:"min:6;max:255"`
//	}
//
//	if err := validator.ValidateStruct(&f); err != nil {
//		var verrs validator.ValidationErrors
//		errors.As(err, &verrs)
//	}
//
// Built-in rules: required, min and max (string length in runes), regex.
// RegisterValidator adds more. Rules can also be composed directly with
// Apply and the exported constructors such as MinLenString.
package validator
