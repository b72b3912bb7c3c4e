// Package auth maps login credentials to roster users and manages the
// session tokens the HTTP layer consumes. The voting core never inspects
// credentials; it only consumes the opaque user ID.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/mkale/dishpoll/internal/models"
)

// ErrInvalidCredentials is returned for unknown usernames and wrong
// passwords alike.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Authenticator verifies credentials against the fixed voter roster.
// There is no registration: accounts come from configuration.
type Authenticator struct {
	byUsername map[string]models.User
}

// NewAuthenticator creates an authenticator over the given roster.
func NewAuthenticator(roster []models.User) *Authenticator {
	byUsername := make(map[string]models.User, len(roster))
	for _, user := range roster {
		byUsername[user.Username] = user
	}
	return &Authenticator{byUsername: byUsername}
}

// Authenticate verifies the username and password, returning the roster
// user if valid. The failure is identical for unknown users and wrong
// passwords.
func (a *Authenticator) Authenticate(username, password string) (*models.User, error) {
	user, ok := a.byUsername[username]
	if !ok {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}
