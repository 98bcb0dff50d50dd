package auth

import (
	"errors"
	"strings"

	"github.com/bayup/backend/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// ErrIdentityUnverifiable is returned when no IdP secret is configured and
// dev mode is off
var ErrIdentityUnverifiable = errors.New("identity provider token cannot be verified")

// ExternalIdentity is what a third-party identity token asserts
type ExternalIdentity struct {
	Email string
	Name  string
}

type idpClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
}

// IdentityVerifier checks tokens minted by the external identity provider
type IdentityVerifier struct {
	secret  []byte
	issuer  string
	devMode bool
	logger  *zap.Logger
}

// NewIdentityVerifier creates a verifier from identity config
func NewIdentityVerifier(cfg config.IdentityConfig, logger *zap.Logger) *IdentityVerifier {
	return &IdentityVerifier{
		secret:  []byte(cfg.Secret),
		issuer:  cfg.Issuer,
		devMode: cfg.DevMode,
		logger:  logger,
	}
}

// Verify validates the token and returns the asserted identity. In dev mode
// without a secret the signature is not checked.
func (v *IdentityVerifier) Verify(tokenString string) (*ExternalIdentity, error) {
	claims := &idpClaims{}

	switch {
	case len(v.secret) > 0:
		opts := []jwt.ParserOption{jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
		if v.issuer != "" {
			opts = append(opts, jwt.WithIssuer(v.issuer))
		}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return v.secret, nil
		}, opts...); err != nil {
			return nil, ErrInvalidToken
		}
	case v.devMode:
		v.logger.Warn("identity provider token accepted without signature verification")
		if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
			return nil, ErrInvalidToken
		}
	default:
		return nil, ErrIdentityUnverifiable
	}

	email := strings.ToLower(strings.TrimSpace(claims.Email))
	if email == "" {
		email = strings.ToLower(strings.TrimSpace(claims.Subject))
	}
	if !strings.Contains(email, "@") {
		return nil, ErrInvalidClaims
	}
	return &ExternalIdentity{Email: email, Name: strings.TrimSpace(claims.Name)}, nil
}
