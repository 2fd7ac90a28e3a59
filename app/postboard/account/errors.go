package account

import "errors"

var (
	// ErrValidation wraps validator.ValidationErrors for malformed credentials.
	ErrValidation = errors.New("account: invalid input")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("account: username already taken")
	// ErrInvalidCredentials covers both unknown usernames and wrong passwords.
	ErrInvalidCredentials = errors.New("account: invalid username or password")
	// ErrUserNotFound is returned by stores for absent users.
	ErrUserNotFound = errors.New("account: user not found")
)
