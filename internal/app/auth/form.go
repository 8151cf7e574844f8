/*
Package auth validates the login and registration forms before they reach the backend.

The checks only improve the user experience; the backend remains the authority on
credentials and account rules.
*/
package auth

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"thinkle/internal/pkg/errs"
)

const (
	MinPasswordLength = 8
	MinUsernameLength = 3
)

var (
	emailRegex    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
)

// passwordSymbols are the non-alphanumeric characters allowed in a sign-up password.
const passwordSymbols = "@$!%*?&"

// Form is the data submitted by the login page. Username and ConfirmPassword are only
// read in sign-up mode.
type Form struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	Username        string `json:"username,omitempty"`
	ConfirmPassword string `json:"confirmPassword,omitempty"`
	SignUp          bool   `json:"signUp,omitempty"`
}

// Normalize trims surrounding whitespace from the identity fields. Passwords are kept as typed.
func (f *Form) Normalize() {
	f.Email = strings.TrimSpace(f.Email)
	f.Username = strings.TrimSpace(f.Username)
}

// Validate returns a *errs.ValidationError listing every rejected field, or nil.
func (f Form) Validate() *errs.ValidationError {
	fields := make(map[string]string)

	switch {
	case f.Email == "":
		fields["email"] = "Email is required"
	case !emailRegex.MatchString(f.Email):
		fields["email"] = "Please enter a valid email address"
	}

	switch {
	case f.Password == "":
		fields["password"] = "Password is required"
	case utf8.RuneCountInString(f.Password) < MinPasswordLength:
		fields["password"] = "Password must be at least 8 characters long"
	}

	if f.SignUp {
		switch {
		case f.Username == "":
			fields["username"] = "Username is required"
		case utf8.RuneCountInString(f.Username) < MinUsernameLength:
			fields["username"] = "Username must be at least 3 characters long"
		case !usernameRegex.MatchString(f.Username):
			fields["username"] = "Username can only contain letters, numbers, dots, hyphens and underscores"
		}

		switch {
		case f.ConfirmPassword == "":
			fields["confirmPassword"] = "Please confirm your password"
		case f.Password != f.ConfirmPassword:
			fields["confirmPassword"] = "Passwords do not match"
		}

		if f.Password != "" && !isStrongPassword(f.Password) {
			fields["password"] = "Password must contain at least one uppercase letter, one lowercase letter, and one digit"
		}
	}

	if len(fields) == 0 {
		return nil
	}
	return &errs.ValidationError{Fields: fields}
}

// isStrongPassword requires at least MinPasswordLength characters drawn from ASCII
// letters, digits and passwordSymbols, with at least one lowercase letter, one
// uppercase letter and one digit.
func isStrongPassword(p string) bool {
	if len(p) < MinPasswordLength {
		return false
	}

	var lower, upper, digit bool
	for _, r := range p {
		switch {
		case r > unicode.MaxASCII:
			return false
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
		default:
			return false
		}
	}
	return lower && upper && digit
}
