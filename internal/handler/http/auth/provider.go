// Package auth implements admin authentication for the refresh endpoint.
// Credentials are validated against environment variables and exchanged for
// short-lived HS256 JWT tokens.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"os"
)

// RoleAdmin is the only role the application knows. Refresh is an
// operator-only action.
const RoleAdmin = "admin"

// Credentials represents authentication credentials.
type Credentials struct {
	Username string
	Password string
}

// Provider validates admin credentials against environment variables.
type Provider struct {
	minPasswordLength int
}

// NewProvider creates a credential provider enforcing the given minimum
// password length.
func NewProvider(minPasswordLength int) *Provider {
	return &Provider{minPasswordLength: minPasswordLength}
}

// ValidateCredentials validates credentials against ADMIN_USER and
// ADMIN_USER_PASSWORD.
func (p *Provider) ValidateCredentials(ctx context.Context, creds Credentials) error {
	if creds.Username == "" || creds.Password == "" {
		return fmt.Errorf("credentials must not be empty")
	}

	if len(creds.Password) < p.minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", p.minPasswordLength)
	}

	adminUser := os.Getenv("ADMIN_USER")
	adminPass := os.Getenv("ADMIN_USER_PASSWORD")
	if adminUser == "" || adminPass == "" {
		return fmt.Errorf("admin credentials not configured")
	}

	// Use constant-time comparison to prevent timing attacks
	userMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(adminUser)) == 1
	passMatch := subtle.ConstantTimeCompare([]byte(creds.Password), []byte(adminPass)) == 1

	if !userMatch || !passMatch {
		return fmt.Errorf("invalid credentials")
	}

	return nil
}
