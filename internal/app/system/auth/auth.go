// Package auth authenticates admin API requests from a bearer credential and
// gates routes by role. Public routes never pass through the Guard.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/identity"
	"github.com/ihsb/ihsbsite/internal/app/system/jsonresp"
	"go.uber.org/zap"
)

var (
	ErrNotAdmin  = apperr.Unauthorized("admin access required")
	ErrForbidden = apperr.Denied("your role does not allow this action")
)

// Principal is an authenticated caller and the role resolved for this
// request.
type Principal struct {
	identity.Identity
	Role identity.Role
}

// IsSuperadmin reports whether p holds the superadmin role.
func (p Principal) IsSuperadmin() bool { return p.Role == identity.RoleSuperadmin }

// RoleResolver resolves an email to a role.
type RoleResolver interface {
	ResolveRole(ctx context.Context, email string) (identity.Role, error)
}

// Guard authenticates requests. Roles are resolved on every request and
// never cached.
type Guard struct {
	verifier identity.Verifier
	roles    RoleResolver
	log      *zap.Logger
}

func NewGuard(v identity.Verifier, roles RoleResolver, log *zap.Logger) *Guard {
	return &Guard{verifier: v, roles: roles, log: log}
}

type ctxKey string

const principalKey ctxKey = "principal"

// CurrentUser returns the principal placed in context by the Guard.
func CurrentUser(r *http.Request) (Principal, bool) {
	p, ok := r.Context().Value(principalKey).(Principal)
	return p, ok
}

// WithPrincipal returns r carrying p. Handlers behind the Guard read it via
// CurrentUser; tests use it to bypass token verification.
func WithPrincipal(r *http.Request, p Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, p))
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, ok := strings.Cut(h, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// Authenticate verifies the request's credential and resolves its role.
// A caller without an admin role gets ErrNotAdmin.
func (g *Guard) Authenticate(r *http.Request) (Principal, error) {
	token := BearerToken(r)
	if token == "" {
		return Principal{}, identity.ErrInvalidCredential
	}
	id, err := g.verifier.Verify(r.Context(), token)
	if err != nil {
		return Principal{}, err
	}
	role, err := g.roles.ResolveRole(r.Context(), id.Email)
	if err != nil {
		return Principal{}, err
	}
	if role == identity.RoleNone {
		return Principal{}, ErrNotAdmin
	}
	return Principal{Identity: id, Role: role}, nil
}

// RequireAdmin admits admins and superadmins; everyone else gets 401.
func (g *Guard) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, err := g.Authenticate(r)
		if err != nil {
			if apperr.Is(err, apperr.Unauthenticated) {
				g.log.Debug("admin request rejected",
					zap.String("path", r.URL.Path),
					zap.Error(err))
			}
			jsonresp.Error(w, r, g.log, err)
			return
		}
		next.ServeHTTP(w, WithPrincipal(r, p))
	})
}

// RequireRole admits principals holding one of allowed. It assumes a
// principal is already in context, as it is on routes mounted under
// RequireAdmin: a missing principal is 401, a wrong role 403.
func RequireRole(log *zap.Logger, allowed ...identity.Role) func(http.Handler) http.Handler {
	set := make(map[identity.Role]struct{}, len(allowed))
	for _, role := range allowed {
		set[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := CurrentUser(r)
			if !ok {
				jsonresp.Error(w, r, log, identity.ErrInvalidCredential)
				return
			}
			if _, has := set[p.Role]; !has {
				log.Debug("role denied",
					zap.String("path", r.URL.Path),
					zap.String("role", string(p.Role)))
				jsonresp.Error(w, r, log, ErrForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
