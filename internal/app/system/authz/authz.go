// internal/app/system/authz/authz.go
package authz

import (
	"net/http"

	"github.com/ihsb/ihsbsite/internal/app/system/auth"
	"github.com/ihsb/ihsbsite/internal/app/system/identity"
)

// Actor identifies who performed a mutation, as recorded on records and
// notifications.
type Actor struct {
	SubjectID string
	Email     string
	Name      string
}

// ActorFrom returns the acting principal. The zero Actor is returned for
// unauthenticated requests (public submissions).
func ActorFrom(r *http.Request) Actor {
	p, ok := auth.CurrentUser(r)
	if !ok {
		return Actor{}
	}
	return Actor{SubjectID: p.SubjectID, Email: p.Email, Name: p.Name}
}

// IsSuperAdmin reports whether the current request's user is a superadmin.
func IsSuperAdmin(r *http.Request) bool {
	return HasAnyRole(r, identity.RoleSuperadmin)
}
