package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/softdesk/api/internal/api/types"
	appErr "github.com/softdesk/api/pkg/errors"
)

type userKeyType string

const UserIDKey userKeyType = "user_id"

// Auth validates a Bearer access token using the provided HMAC secret and
// adds the caller's user id to the request context. Refresh tokens are
// rejected here; they are only good for the refresh endpoint.
func Auth(hmacSecret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ah := r.Header.Get("Authorization")
			if !strings.HasPrefix(strings.ToLower(ah), "bearer ") {
				types.WriteError(w, appErr.Unauthorized("missing bearer token"))
				return
			}
			tokenStr := strings.TrimSpace(ah[len("Bearer "):])
			token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return hmacSecret, nil
			})
			if err != nil || !token.Valid {
				types.WriteError(w, appErr.Unauthorized("invalid or expired token"))
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				types.WriteError(w, appErr.Unauthorized("invalid or expired token"))
				return
			}
			if typ, _ := claims["typ"].(string); typ == "refresh" {
				types.WriteError(w, appErr.Unauthorized("refresh token cannot be used for access"))
				return
			}
			sub, _ := claims["sub"].(string)
			uid, err := uuid.Parse(sub)
			if err != nil {
				types.WriteError(w, appErr.Unauthorized("invalid or expired token"))
				return
			}
			ctx := context.WithValue(r.Context(), UserIDKey, uid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// CallerID returns the authenticated caller's id from context.
func CallerID(ctx context.Context) uuid.UUID {
	if v := ctx.Value(UserIDKey); v != nil {
		if id, ok := v.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
