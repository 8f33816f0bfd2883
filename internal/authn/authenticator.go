package authn

import "errors"

var (
	ErrNotConfigured    = errors.New("authenticator is not configured")
	ErrUnknownUser      = errors.New("unknown username")
	ErrMissingPassword  = errors.New("no password")
	ErrPasswordMismatch = errors.New("incorrect password")
)

type User struct {
	Username string `json:"username"`
}

type Authenticator interface {
	Authenticate(username, password string) (*User, error)
}
