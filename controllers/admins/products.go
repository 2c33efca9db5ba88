package admins

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/middleware"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GET /v1/admin/products
func ListProductsHandler(w http.ResponseWriter, r *http.Request) {
	db := database.DB
	var products []models.Product
	if err := db.Order("category ASC, id ASC").Find(&products).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load products"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"products": products,
		},
	})
}

// GET /v1/admin/products/{id}
func GetProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDFromPath(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid product id"})
		return
	}

	db := database.DB
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Product not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    product,
	})
}

type productRequest struct {
	ProductName    string  `json:"product_name"`
	ProductSKU     string  `json:"product_sku"`
	Category       string  `json:"category"`
	ProductQty     *int    `json:"product_qty"`
	TotalInventory *int    `json:"total_inventory"`
	Usecase        *string `json:"usecase"`
	Level          *string `json:"level"`
	WifiRequired   *bool   `json:"wifi_required"`
	ImageURL       *string `json:"image_url"`
}

// POST /v1/admin/products
func CreateProductHandler(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	if strings.TrimSpace(req.ProductName) == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "product_name is required"})
		return
	}
	if strings.TrimSpace(req.ProductSKU) == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "product_sku is required"})
		return
	}
	category := models.ClassifyCategory(req.Category)
	if category == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "category must be one of Headset, Offline Apps, Online Apps"})
		return
	}

	qty := 0
	if req.ProductQty != nil && *req.ProductQty > 0 {
		qty = *req.ProductQty
	}
	total := qty
	if req.TotalInventory != nil && *req.TotalInventory > 0 {
		total = *req.TotalInventory
	}
	if qty > total {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "product_qty cannot exceed total_inventory"})
		return
	}

	product := models.Product{
		ProductName:    strings.TrimSpace(req.ProductName),
		ProductSKU:     strings.TrimSpace(req.ProductSKU),
		Category:       category,
		ProductQty:     qty,
		TotalInventory: total,
		Usecase:        req.Usecase,
		Level:          req.Level,
		ImageURL:       req.ImageURL,
	}
	if req.WifiRequired != nil {
		product.WifiRequired = *req.WifiRequired
	}

	if err := database.DB.Create(&product).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to create product"})
		return
	}

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Product created",
		Data:    product,
	})
}

// PUT /v1/admin/products/{id}
func UpdateProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDFromPath(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid product id"})
		return
	}

	var req productRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	db := database.DB
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Product not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	updates := map[string]interface{}{}

	if req.ProductName != "" {
		updates["product_name"] = strings.TrimSpace(req.ProductName)
	}
	if req.ProductSKU != "" {
		updates["product_sku"] = strings.TrimSpace(req.ProductSKU)
	}
	if req.Category != "" {
		category := models.ClassifyCategory(req.Category)
		if category == "" {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "category must be one of Headset, Offline Apps, Online Apps"})
			return
		}
		updates["category"] = category
	}
	if req.ProductQty != nil && *req.ProductQty >= 0 {
		updates["product_qty"] = *req.ProductQty
	}
	if req.TotalInventory != nil && *req.TotalInventory >= 0 {
		updates["total_inventory"] = *req.TotalInventory
	}
	if req.Usecase != nil {
		updates["usecase"] = req.Usecase
	}
	if req.Level != nil {
		updates["level"] = req.Level
	}
	if req.WifiRequired != nil {
		updates["wifi_required"] = *req.WifiRequired
	}
	if req.ImageURL != nil {
		updates["image_url"] = req.ImageURL
	}

	if len(updates) > 0 {
		if err := db.Model(&product).Updates(updates).Error; err != nil {
			utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to update product"})
			return
		}
	}

	db.First(&product, id)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Product updated",
		Data:    product,
	})
}

// DELETE /v1/admin/products/{id}
func DeleteProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDFromPath(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid product id"})
		return
	}

	db := database.DB
	var product models.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Product not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// Refuse deletion while order lines still reference the product
	var count int64
	if err := db.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&count).Error; err == nil && count > 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Cannot delete a product that is referenced by orders"})
		return
	}

	if err := db.Delete(&product).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to delete product"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Product deleted",
	})
}

type restockRequest struct {
	Quantity int `json:"quantity"`
}

// POST /v1/admin/products/{id}/restock
//
// Returns are not restocked automatically; kits are inspected first and an
// admin puts them back into circulation here. The on-hand count is capped
// at total_inventory.
func RestockProductHandler(w http.ResponseWriter, r *http.Request) {
	id, err := productIDFromPath(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid product id"})
		return
	}

	var req restockRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}
	if req.Quantity <= 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "quantity must be positive"})
		return
	}

	db := database.DB

	var product models.Product
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, id).Error; err != nil {
			return err
		}
		newQty := product.ProductQty + req.Quantity
		if newQty > product.TotalInventory {
			newQty = product.TotalInventory
		}
		return tx.Model(&product).Update("product_qty", newQty).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Product not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to restock product"})
		return
	}

	db.First(&product, id)

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Product restocked",
		Data:    product,
	})
}

func productIDFromPath(r *http.Request) (uint, error) {
	idStr := mux.Vars(r)["id"]
	id64, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id64 == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id64), nil
}
