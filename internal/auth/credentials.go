package auth

import (
	"crypto/subtle"

	"golang.org/x/crypto/bcrypt"
)

// CredentialValidator decides whether a username/password pair may log in.
type CredentialValidator interface {
	Validate(username, password string) bool
}

// StaticCredentials accepts exactly one username and password. Only a
// bcrypt hash of the password is kept.
type StaticCredentials struct {
	username string
	hash     []byte
}

func NewStaticCredentials(username, password string) (*StaticCredentials, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &StaticCredentials{username: username, hash: hashed}, nil
}

func (s *StaticCredentials) Validate(username, password string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1
	err := bcrypt.CompareHashAndPassword(s.hash, []byte(password))
	return userOK && err == nil
}

// CredentialFunc adapts a plain function.
type CredentialFunc func(username, password string) bool

func (f CredentialFunc) Validate(username, password string) bool {
	return f(username, password)
}
