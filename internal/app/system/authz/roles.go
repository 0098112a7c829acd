// internal/app/system/authz/roles.go
package authz

import (
	"net/http"

	"github.com/ihsb/ihsbsite/internal/app/system/auth"
	"github.com/ihsb/ihsbsite/internal/app/system/identity"
)

// Role returns the current user's role and whether a user is present.
func Role(r *http.Request) (identity.Role, bool) {
	p, ok := auth.CurrentUser(r)
	if !ok {
		return identity.RoleNone, false
	}
	return p.Role, true
}

// HasAnyRole reports whether the current request's user has any of the given roles.
func HasAnyRole(r *http.Request, roles ...identity.Role) bool {
	cur, ok := Role(r)
	if !ok {
		return false
	}
	for _, want := range roles {
		if cur == want {
			return true
		}
	}
	return false
}
