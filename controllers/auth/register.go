package auth

import (
	"net/http"
	"strings"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/middleware"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,pwdmin"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	SalesExecutive  string `json:"sales_executive" validate:"required"`
	Reseller        string `json:"reseller"`
}

// POST /v1/register
func RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	db := database.DB

	var existing models.User
	err := db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: "An account with this email already exists"})
		return
	}
	if err != gorm.ErrRecordNotFound {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create account"})
		return
	}

	user := models.User{
		Email:          req.Email,
		Password:       string(hashed),
		Role:           models.RoleSalesExecutive,
		Reseller:       strings.TrimSpace(req.Reseller),
		SalesExecutive: strings.TrimSpace(req.SalesExecutive),
	}

	if err := db.Create(&user).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create account"})
		return
	}

	utils.SendBestEffort(utils.BuildWelcomeEmail(user.Email, user.SalesExecutive))

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Account created, you can now log in",
		Data: map[string]interface{}{
			"id":              user.ID,
			"email":           user.Email,
			"sales_executive": user.SalesExecutive,
			"role":            user.Role,
		},
	})
}
