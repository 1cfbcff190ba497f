package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	pkgerrors "datacloud/pkg/errors"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// UserContext identifies the authenticated caller of a mutating request.
type UserContext struct {
	UserID string
	Email  string
}

// TokenValidator validates bearer tokens for write endpoints.
type TokenValidator struct {
	secret []byte
	issuer string
}

// NewTokenValidator creates a validator for HS256 tokens signed with the
// configured secret.
func NewTokenValidator(secret, issuer string) (*TokenValidator, error) {
	if secret == "" {
		return nil, fmt.Errorf("token secret cannot be empty")
	}
	return &TokenValidator{secret: []byte(secret), issuer: issuer}, nil
}

// Validate parses and verifies a token, returning the caller identity.
func (v *TokenValidator) Validate(tokenString string) (*UserContext, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, pkgerrors.NewUnauthorizedError("invalid token").WithCode("TOKEN_INVALID")
	}
	if !token.Valid {
		return nil, pkgerrors.NewUnauthorizedError("invalid token").WithCode("TOKEN_INVALID")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, pkgerrors.NewUnauthorizedError("token missing subject").WithCode("TOKEN_NO_SUBJECT")
	}
	email, _ := claims["email"].(string)

	return &UserContext{UserID: sub, Email: email}, nil
}

// Issue mints a token for the given subject. Used by the seed CLI and by
// tests; the service itself never issues tokens.
func (v *TokenValidator) Issue(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"iss": v.issuer,
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	})
	return token.SignedString(v.secret)
}

// WithUser stores the caller identity on the context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext retrieves the caller identity set by the auth
// middleware.
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, pkgerrors.NewUnauthorizedError("no user in context")
	}
	return user, nil
}
