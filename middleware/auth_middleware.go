package middleware

import (
	"context"
	"net/http"
	"strings"

	"betty_server_go/auth"

	log "github.com/sirupsen/logrus"
)

type contextKey string

// UserIDKey - ключ для ID пользователя в контексте запроса.
const UserIDKey contextKey = "userID"

// UserIDFromContext достает ID пользователя, положенный JWTMiddleware.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(UserIDKey).(int64)
	return id, ok && id != 0
}

// JWTMiddleware проверяет Bearer токен в заголовке Authorization.
// Если токен валиден, ID пользователя добавляется в контекст запроса.
func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		entry := log.WithFields(log.Fields{
			"method": r.Method,
			"path":   r.URL.Path,
		})

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			entry.Debug("JWTMiddleware: отсутствует заголовок Authorization")
			writeJSONError(w, http.StatusUnauthorized, "missing Authorization header")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			entry.Debug("JWTMiddleware: неверный формат заголовка Authorization")
			writeJSONError(w, http.StatusUnauthorized, "invalid Authorization header format (expected Bearer {token})")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			entry.WithError(err).Info("JWTMiddleware: невалидный токен")
			writeJSONError(w, http.StatusUnauthorized, "invalid token: "+err.Error())
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
