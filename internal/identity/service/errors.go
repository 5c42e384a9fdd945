package service

import (
	"errors"
	"regexp"
	"strings"

	"account-service/internal/apperr"
)

// Business-rule errors. The boundary renders their messages verbatim.
var (
	ErrEmailTaken           = apperr.Conflict("Invalid Email.")
	ErrCredentialsNotFound  = apperr.NotFound("Credentials not found.")
	ErrCredentialsMismatch  = apperr.Unauthorized("Credentials doesn't match.")
	ErrEmailInUse           = apperr.Conflict("Invalid email.")
	ErrUserNotFound         = apperr.NotFound("User not found.")
	ErrEmailNotFound        = apperr.NotFound("E-mail not found.")
	ErrInvalidRecoveryToken = apperr.Unauthorized("Invalid token, try again.")

	ErrEmailRequired    = apperr.Invalid("Email is required.")
	ErrEmailFormat      = apperr.Invalid("Email is invalid.")
	ErrPasswordRequired = apperr.Invalid("Password is required.")
	ErrPasswordTooLong  = apperr.Invalid("Password is too long.")
	ErrGoogleIDRequired = apperr.Invalid("Google id is required.")
	ErrUnsupportedLogin = apperr.Invalid("Unsupported login request.")
)

// ErrMailUnavailable is returned by RequestPasswordReset when no mail sender is configured.
var ErrMailUnavailable = errors.New("password recovery mail is not configured")

// maxPasswordBytes is bcrypt's input limit.
const maxPasswordBytes = 72

var simpleEmail = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func validateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !simpleEmail.MatchString(email) {
		return ErrEmailFormat
	}
	return nil
}

func validatePassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return ErrPasswordRequired
	}
	if len(password) > maxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}
