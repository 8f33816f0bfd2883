package authn

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// StaticAuthenticator accepts exactly one username/password pair. The expected password is
// either plaintext or a bcrypt hash.
type StaticAuthenticator struct {
	username string
	password string
	hashed   bool
}

// Authenticate checks the username first, then password presence, then the password itself.
// The returned error identifies which of the three checks failed.
func (a *StaticAuthenticator) Authenticate(username, password string) (*User, error) {
	if a.username == "" || a.password == "" {
		return nil, ErrNotConfigured
	}

	if username != a.username {
		return nil, ErrUnknownUser
	}

	if password == "" {
		return nil, ErrMissingPassword
	}

	if !a.matches(password) {
		return nil, ErrPasswordMismatch
	}

	return &User{Username: username}, nil
}

// Hashed reports whether the expected password is stored as a bcrypt hash.
func (a *StaticAuthenticator) Hashed() bool {
	return a.hashed
}

func (a *StaticAuthenticator) matches(password string) bool {
	if a.hashed {
		return bcrypt.CompareHashAndPassword([]byte(a.password), []byte(password)) == nil
	}

	return subtle.ConstantTimeCompare([]byte(a.password), []byte(password)) == 1
}

// IsBcryptHash reports whether s looks like a bcrypt hash.
func IsBcryptHash(s string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

// NewStaticAuthenticator returns an authenticator for the given username and password or
// bcrypt hash.
func NewStaticAuthenticator(username, password string) *StaticAuthenticator {
	return &StaticAuthenticator{
		username: username,
		password: password,
		hashed:   IsBcryptHash(password),
	}
}
