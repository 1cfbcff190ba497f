package middleware

import (
	"net"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"datacloud/pkg/auth"
	"datacloud/pkg/common"
)

// Authenticate guards mutating endpoints with bearer-token validation
// and per-IP rate limiting. A nil validator means no secret is
// configured; requests then pass through with a development identity.
func Authenticate(validator *auth.TokenValidator, limiter auth.RateLimiter, logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := clientIP(r)
			if limiter != nil {
				allowed, err := limiter.Allow(r.Context(), clientIP)
				if err == nil && !allowed {
					common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMIT", "rate limit exceeded")
					return
				}
			}

			if validator == nil {
				ctx := auth.WithUser(r.Context(), &auth.UserContext{UserID: "dev"})
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "missing bearer token")
				return
			}

			user, err := validator.Validate(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.Warn("token validation failed",
					zap.String("remoteAddr", clientIP),
					zap.Error(err),
				)
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "invalid token")
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), user)))
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		if i := strings.IndexByte(forwarded, ','); i > 0 {
			return strings.TrimSpace(forwarded[:i])
		}
		return strings.TrimSpace(forwarded)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
