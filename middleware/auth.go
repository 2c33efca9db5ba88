package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/works360/meta-partner-demos-sub000/utils"
)

func writeJSON(w http.ResponseWriter, status int, resp map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// AuthMiddleware validates the bearer token and injects the user's id,
// email and role into the request context. The role claim is the only
// authorization source; client-supplied role headers are ignored.
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authz := r.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Unauthorized",
			})
			return
		}
		tokenStr := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer "))
		_, claims, err := utils.ValidateAccessToken(tokenStr)
		if err != nil {
			if strings.Contains(err.Error(), "expired") {
				writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"message": "Your session has expired, please log in again.",
				})
				return
			}
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"success": false,
				"message": "Invalid token",
			})
			return
		}

		var userID uint
		if rawID, ok := claims["id"].(float64); ok {
			userID = uint(rawID)
		}
		email, _ := claims["email"].(string)
		role, _ := claims["role"].(string)

		ctx := context.WithValue(r.Context(), utils.UserIDKey, userID)
		ctx = context.WithValue(ctx, utils.UserEmailKey, email)
		ctx = context.WithValue(ctx, utils.UserRoleKey, role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserID returns the authenticated user's id from the request context.
func GetUserID(r *http.Request) (uint, bool) {
	id, ok := r.Context().Value(utils.UserIDKey).(uint)
	return id, ok
}

// GetUserEmail returns the authenticated user's email from the context.
func GetUserEmail(r *http.Request) string {
	email, _ := r.Context().Value(utils.UserEmailKey).(string)
	return email
}

// GetUserRole returns the server-verified role claim from the context.
func GetUserRole(r *http.Request) string {
	role, _ := r.Context().Value(utils.UserRoleKey).(string)
	return role
}
