// Package identity verifies bearer credentials and resolves the caller's
// role. It is the only place an Identity is constructed.
package identity

import (
	"context"

	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
)

// Role is the caller's access level.
type Role string

const (
	RoleNone       Role = "none"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// ErrInvalidCredential is returned for a missing, malformed, expired or
// unverifiable credential.
var ErrInvalidCredential = apperr.Unauthorized("invalid credential")

// Identity is a verified caller.
type Identity struct {
	SubjectID string
	Email     string
	Name      string
}

// Verifier turns a bearer token into an Identity.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}
