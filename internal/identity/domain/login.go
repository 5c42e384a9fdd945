// Package domain holds the login request variants accepted by the identity service.
package domain

// LoginRequest is either a LocalLogin or a FederatedLogin.
type LoginRequest interface {
	loginRequest()
}

// LocalLogin authenticates with a stored password.
type LocalLogin struct {
	Email    string
	Password string
}

// FederatedLogin authenticates with a Google subject id. An unknown email creates the account.
type FederatedLogin struct {
	Email    string
	GoogleID string
}

func (LocalLogin) loginRequest()     {}
func (FederatedLogin) loginRequest() {}
