package authn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestStaticAuthenticator_Authenticate(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("testpass1234"), bcrypt.MinCost)
	assert.NoError(t, err)

	cases := map[string]struct {
		expectedPassword string
		username         string
		password         string
		expectedUser     *User
		expectedErr      error
	}{
		"plaintext match": {
			expectedPassword: "testpass1234",
			username:         "ovc-camera",
			password:         "testpass1234",
			expectedUser:     &User{Username: "ovc-camera"},
		},
		"bcrypt match": {
			expectedPassword: string(hash),
			username:         "ovc-camera",
			password:         "testpass1234",
			expectedUser:     &User{Username: "ovc-camera"},
		},
		"unknown user is checked before the password": {
			expectedPassword: "testpass1234",
			username:         "someone-else",
			password:         "",
			expectedErr:      ErrUnknownUser,
		},
		"username is case sensitive": {
			expectedPassword: "testpass1234",
			username:         "OVC-camera",
			password:         "testpass1234",
			expectedErr:      ErrUnknownUser,
		},
		"missing password": {
			expectedPassword: "testpass1234",
			username:         "ovc-camera",
			password:         "",
			expectedErr:      ErrMissingPassword,
		},
		"plaintext mismatch": {
			expectedPassword: "testpass1234",
			username:         "ovc-camera",
			password:         "wrong",
			expectedErr:      ErrPasswordMismatch,
		},
		"plaintext prefix is not a match": {
			expectedPassword: "testpass1234",
			username:         "ovc-camera",
			password:         "testpass",
			expectedErr:      ErrPasswordMismatch,
		},
		"bcrypt mismatch": {
			expectedPassword: string(hash),
			username:         "ovc-camera",
			password:         "wrong",
			expectedErr:      ErrPasswordMismatch,
		},
		"hash is not accepted as the password": {
			expectedPassword: string(hash),
			username:         "ovc-camera",
			password:         string(hash),
			expectedErr:      ErrPasswordMismatch,
		},
		"not configured": {
			username:    "ovc-camera",
			password:    "testpass1234",
			expectedErr: ErrNotConfigured,
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			a := NewStaticAuthenticator("ovc-camera", tc.expectedPassword)

			user, err := a.Authenticate(tc.username, tc.password)

			assert.ErrorIs(t, err, tc.expectedErr)
			assert.Equal(t, tc.expectedUser, user)
		})
	}
}

func TestIsBcryptHash(t *testing.T) {
	cases := map[string]struct {
		value    string
		expected bool
	}{
		"2a":        {"$2a$10$abcdefghijklmnopqrstuv", true},
		"2b":        {"$2b$10$abcdefghijklmnopqrstuv", true},
		"2y":        {"$2y$10$abcdefghijklmnopqrstuv", true},
		"plaintext": {"testpass1234", false},
		"sha512":    {"$6$salt$hash", false},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsBcryptHash(tc.value))
		})
	}
}
