package identity

import (
	"context"

	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/normalize"
	"github.com/ihsb/ihsbsite/internal/domain/models"
)

// AdminLookup finds an admin account by email; a missing account is a
// NotFound error.
type AdminLookup interface {
	Get(ctx context.Context, email string) (models.AdminAccount, error)
}

// Resolver maps a verified email to a Role. The superadmin allow-list is
// fixed at construction.
type Resolver struct {
	superadmins map[string]struct{}
	admins      AdminLookup
}

// NewResolver returns a resolver for the given allow-list and admin store.
func NewResolver(superadmins []string, admins AdminLookup) *Resolver {
	set := make(map[string]struct{}, len(superadmins))
	for _, e := range superadmins {
		if e = normalize.Email(e); e != "" {
			set[e] = struct{}{}
		}
	}
	return &Resolver{superadmins: set, admins: admins}
}

// ResolveRole returns the role for email. Allow-listed emails are
// superadmins regardless of the admins collection; otherwise an active
// account grants its role and anything else is RoleNone.
func (r *Resolver) ResolveRole(ctx context.Context, email string) (Role, error) {
	email = normalize.Email(email)
	if email == "" {
		return RoleNone, nil
	}
	if _, ok := r.superadmins[email]; ok {
		return RoleSuperadmin, nil
	}
	if r.admins == nil {
		return RoleNone, nil
	}

	acct, err := r.admins.Get(ctx, email)
	if apperr.Is(err, apperr.NotFound) {
		return RoleNone, nil
	}
	if err != nil {
		return RoleNone, apperr.Wrap(apperr.Upstream, err, "resolve role")
	}
	if !acct.IsActive() {
		return RoleNone, nil
	}
	if acct.Role == models.RoleSuperadmin {
		return RoleSuperadmin, nil
	}
	return RoleAdmin, nil
}
