package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"time"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/middleware"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,pwdmin"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

const resetTokenTTL = time.Hour

// POST /v1/auth/forgot-password
//
// Issues a single-use reset token and emails the reset link. The response
// is identical whether or not the address exists, to avoid enumeration.
func ForgotPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	db := database.DB

	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
			return
		}
		// unknown address: same response as success
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "If the address exists, a reset link has been sent"})
		return
	}

	token := generateResetToken()
	expires := time.Now().Add(resetTokenTTL)
	if err := db.Model(&user).Updates(map[string]interface{}{
		"reset_token":   token,
		"reset_expires": expires,
	}).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	resetURL := utils.PortalURL() + "/reset-password?token=" + token
	utils.SendBestEffort(utils.BuildPasswordResetEmail(user.Email, resetURL))

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "If the address exists, a reset link has been sent"})
}

// POST /v1/auth/reset-password
//
// Consumes the reset token: sets the new password and clears the token pair
// so the link cannot be reused.
func ResetPasswordHandler(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB

	var user models.User
	if err := db.Where("reset_token = ?", req.Token).First(&user).Error; err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid or expired reset token"})
		return
	}
	if user.ResetExpires == nil || time.Now().After(*user.ResetExpires) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid or expired reset token"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to reset password"})
		return
	}

	if err := db.Model(&user).Updates(map[string]interface{}{
		"password":      string(hashed),
		"reset_token":   nil,
		"reset_expires": nil,
	}).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to reset password"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Password updated, you can now log in"})
}

func generateResetToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return hex.EncodeToString([]byte(time.Now().String()))
	}
	return hex.EncodeToString(b)
}
