package users

import (
	"errors"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/middleware"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

// Kit-builder drafts: the wizard's selection state lives server-side in a
// draft keyed by an opaque token, one step at a time, until finalize
// consumes it.

func draftTTL() time.Duration {
	hours := 24
	if s := os.Getenv("DRAFT_TTL_HOURS"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			hours = v
		}
	}
	return time.Duration(hours) * time.Hour
}

// POST /v1/drafts
func CreateDraftHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	draft := models.DraftOrder{
		Token:     uuid.NewString(),
		UserID:    uid,
		ExpiresAt: time.Now().Add(draftTTL()),
	}
	if err := database.DB.Create(&draft).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create draft"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Draft created",
		Data: map[string]interface{}{
			"token":      draft.Token,
			"expires_at": draft.ExpiresAt.UTC().Format(time.RFC3339),
		},
	})
}

type DraftStepRequest struct {
	Items []struct {
		ProductID uint `json:"product_id"`
		Quantity  int  `json:"quantity"`
	} `json:"items"`
}

// PUT /v1/drafts/{token}/steps/{step}
//
// Replaces the selection for one wizard step. Picks are validated against
// the catalog: each product must exist and belong to the step's category.
func SetDraftStepHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req DraftStepRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	step := mux.Vars(r)["step"]
	stepCategory := models.StepCategory(step)
	if stepCategory == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "step must be one of headsets, offline_apps, online_apps"})
		return
	}

	db := database.DB

	draft, err := loadDraft(db, mux.Vars(r)["token"], uid)
	if err != nil {
		writeDraftError(w, err)
		return
	}

	for _, it := range req.Items {
		if it.Quantity <= 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "quantities must be positive"})
			return
		}
		var product models.Product
		if err := db.First(&product, it.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unknown product in selection"})
				return
			}
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
			return
		}
		if models.ClassifyCategory(product.Category) != stepCategory {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: product.ProductName + " does not belong to the " + step + " step"})
			return
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("draft_id = ? AND step = ?", draft.ID, step).Delete(&models.DraftItem{}).Error; err != nil {
			return err
		}
		for _, it := range req.Items {
			item := models.DraftItem{
				DraftID:   draft.ID,
				Step:      step,
				ProductID: it.ProductID,
				Quantity:  it.Quantity,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}
		return tx.Model(draft).Update("updated_at", time.Now()).Error
	})
	if err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to save selection"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{Success: true, Message: "Selection saved"})
}

// GET /v1/drafts/{token}
func GetDraftHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	draft, err := loadDraft(database.DB, mux.Vars(r)["token"], uid)
	if err != nil {
		writeDraftError(w, err)
		return
	}

	if err := database.DB.Preload("Items").First(draft, draft.ID).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	steps := map[string][]models.DraftItem{
		models.StepHeadsets:    {},
		models.StepOfflineApps: {},
		models.StepOnlineApps:  {},
	}
	for _, it := range draft.Items {
		steps[it.Step] = append(steps[it.Step], it)
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"token":      draft.Token,
			"expires_at": draft.ExpiresAt.UTC().Format(time.RFC3339),
			"steps":      steps,
		},
	})
}

var (
	errDraftNotFound = errors.New("draft not found")
	errDraftExpired  = errors.New("draft expired")
)

func loadDraft(db *gorm.DB, token string, userID uint) (*models.DraftOrder, error) {
	if token == "" {
		return nil, errDraftNotFound
	}
	var draft models.DraftOrder
	if err := db.Where("token = ? AND user_id = ?", token, userID).First(&draft).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errDraftNotFound
		}
		return nil, err
	}
	if time.Now().After(draft.ExpiresAt) {
		return nil, errDraftExpired
	}
	return &draft, nil
}

func writeDraftError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errDraftNotFound):
		utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Draft not found"})
	case errors.Is(err, errDraftExpired):
		utils.WriteJSON(w, http.StatusGone, utils.APIResponse{Success: false, Message: "Draft has expired, please rebuild your kit"})
	default:
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
	}
}
