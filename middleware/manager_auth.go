package middleware

import (
	"net/http"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"
)

// ManagerAuthMiddleware gates the back-office routes. It runs after
// AuthMiddleware and requires a shop manager or program manager role, then
// double-checks the role against the user row so a demoted manager's
// outstanding tokens stop working.
func ManagerAuthMiddleware(next http.Handler) http.Handler {
	return AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role := GetUserRole(r)
		if !models.IsManagerRole(role) {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
				Success: false,
				Message: "Forbidden: " + GetUserEmail(r) + " is not authorized for back-office operations",
			})
			return
		}

		uid, ok := GetUserID(r)
		if !ok || uid == 0 {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Unauthorized",
			})
			return
		}

		var user models.User
		if err := database.DB.First(&user, uid).Error; err != nil {
			utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{
				Success: false,
				Message: "Unauthorized: account not found",
			})
			return
		}
		if user.Role != role {
			utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{
				Success: false,
				Message: "Forbidden: role has changed, please log in again",
			})
			return
		}

		next.ServeHTTP(w, r)
	}))
}
