package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/normalize"
)

// JWTConfig configures a JWTVerifier. At least one of JWKSURL and
// HMACSecret must be set.
type JWTConfig struct {
	Issuer   string
	Audience string
	// JWKSURL serves the provider's signing keys as a JSON Web Key Set.
	// Enables RS256.
	JWKSURL string
	// HMACSecret enables HS256 tokens signed with a shared secret.
	HMACSecret string
	// Leeway tolerates clock skew on exp/nbf/iat.
	Leeway time.Duration
}

// tokenClaims are the claims the site relies on.
type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTVerifier verifies RS256 tokens against a published key set and,
// optionally, HS256 tokens against a shared secret.
type JWTVerifier struct {
	cfg     JWTConfig
	jwks    keyfunc.Keyfunc
	methods []string
}

// NewJWTVerifier validates cfg and returns a verifier. The key set is fetched
// once here and refreshed in the background until ctx is done; an unknown key
// id triggers an early refresh.
func NewJWTVerifier(ctx context.Context, cfg JWTConfig) (*JWTVerifier, error) {
	v := &JWTVerifier{cfg: cfg}
	if cfg.JWKSURL != "" {
		k, err := keyfunc.NewDefaultCtx(ctx, []string{cfg.JWKSURL})
		if err != nil {
			return nil, fmt.Errorf("identity: jwks: %w", err)
		}
		v.jwks = k
		v.methods = append(v.methods, jwt.SigningMethodRS256.Alg())
	}
	if cfg.HMACSecret != "" {
		v.methods = append(v.methods, jwt.SigningMethodHS256.Alg())
	}
	if len(v.methods) == 0 {
		return nil, errors.New("identity: no token verification method configured")
	}
	return v, nil
}

// Verify checks the token's signature, expiry, issuer and audience. Any
// failure is reported as ErrInvalidCredential.
func (v *JWTVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return Identity{}, ErrInvalidCredential
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods(v.methods),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.cfg.Leeway),
	}
	if v.cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.cfg.Issuer))
	}
	if v.cfg.Audience != "" {
		opts = append(opts, jwt.WithAudience(v.cfg.Audience))
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(token, &claims, v.key, opts...)
	if err != nil {
		return Identity{}, apperr.Wrap(apperr.Unauthenticated, err, ErrInvalidCredential.Msg)
	}
	if claims.Subject == "" || claims.Email == "" {
		return Identity{}, ErrInvalidCredential
	}
	return Identity{
		SubjectID: claims.Subject,
		Email:     normalize.Email(claims.Email),
		Name:      normalize.Name(claims.Name),
	}, nil
}

func (v *JWTVerifier) key(t *jwt.Token) (any, error) {
	switch t.Method.(type) {
	case *jwt.SigningMethodRSA:
		if v.jwks == nil {
			return nil, errors.New("rs256 not configured")
		}
		return v.jwks.Keyfunc(t)
	case *jwt.SigningMethodHMAC:
		if v.cfg.HMACSecret == "" {
			return nil, errors.New("hs256 not configured")
		}
		return []byte(v.cfg.HMACSecret), nil
	default:
		return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
	}
}
