package auth

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"
)

// Role represents an authorisation tier in the system.
type Role string

const (
	// RoleAdmin is the provisioned administrator account. Hearth ships with
	// a single admin whose credentials live in the configuration file, so
	// there is no user table to seed or manage.
	RoleAdmin Role = "admin"
)

// Sentinel errors for auth operations.
var (
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrTokenInvalid       = errors.New("auth: invalid token")
	ErrNotConfigured      = errors.New("auth: admin credentials not configured")
)

// Authenticator validates the provisioned admin credentials and issues
// short-lived access tokens. It holds no database state; everything it
// needs comes from the configuration at construction time.
type Authenticator struct {
	username     string
	passwordHash string
	secret       string
	ttlMinutes   int
}

// NewAuthenticator creates an Authenticator for the provisioned admin account.
//
// Parameters:
//   - username: the admin username from configuration
//   - passwordHash: the admin password as an Argon2id PHC string
//   - secret: the JWT signing secret
//   - ttlMinutes: access token lifetime in minutes (0 uses the default)
func NewAuthenticator(username, passwordHash, secret string, ttlMinutes int) *Authenticator {
	return &Authenticator{
		username:     username,
		passwordHash: passwordHash,
		secret:       secret,
		ttlMinutes:   ttlMinutes,
	}
}

// Login checks the supplied credentials against the provisioned admin
// account and returns a signed access token with its expiry time.
//
// Returns ErrInvalidCredentials on any mismatch. The username comparison is
// constant-time and the password hash is always verified, so a wrong
// username costs the same as a wrong password.
func (a *Authenticator) Login(username, password string) (string, time.Time, error) {
	if a.username == "" || a.passwordHash == "" {
		return "", time.Time{}, ErrNotConfigured
	}

	usernameMatch := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1

	passwordMatch, err := VerifyPassword(password, a.passwordHash)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("verifying password: %w", err)
	}

	if !usernameMatch || !passwordMatch {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, expiresAt, err := GenerateAccessToken(a.username, RoleAdmin, a.secret, a.ttlMinutes)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("issuing token: %w", err)
	}
	return token, expiresAt, nil
}

// Verify validates a bearer token and returns its claims.
func (a *Authenticator) Verify(tokenString string) (*Claims, error) {
	return ParseToken(tokenString, a.secret)
}
