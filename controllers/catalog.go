package controllers

import (
	"net/http"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"
)

// GET /v1/products?category=
//
// Storefront catalog listing, grouped by canonical category. The optional
// category filter accepts any spelling the classifier recognizes.
func CatalogHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB

	var products []models.Product
	if err := db.Order("category ASC, product_name ASC").Find(&products).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load catalog"})
		return
	}

	filter := ""
	if q := r.URL.Query().Get("category"); q != "" {
		filter = models.ClassifyCategory(q)
		if filter == "" {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Unknown category"})
			return
		}
	}

	grouped := map[string][]models.Product{
		models.CategoryHeadset:    {},
		models.CategoryOfflineApp: {},
		models.CategoryOnlineApp:  {},
	}
	for _, p := range products {
		cat := models.ClassifyCategory(p.Category)
		if cat == "" {
			continue
		}
		if filter != "" && cat != filter {
			continue
		}
		grouped[cat] = append(grouped[cat], p)
	}
	if filter != "" {
		utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
			Success: true,
			Message: "Successfully",
			Data:    map[string]interface{}{"products": grouped[filter]},
		})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    grouped,
	})
}
