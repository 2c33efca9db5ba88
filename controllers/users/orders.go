package users

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/middleware"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"

	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FinalizeOrderRequest struct {
	SalesExecutive  string   `json:"sales_executive" validate:"required"`
	SalesEmail      string   `json:"sales_email" validate:"required,email"`
	Reseller        string   `json:"reseller"`
	DemoPurpose     string   `json:"demo_purpose" validate:"required,purpose"`
	Company         string   `json:"company"`
	OpportunitySize string   `json:"opportunity_size"`
	UsecaseTags     []string `json:"usecase_tags"`
	MetaDealReg     bool     `json:"meta_deal_reg"`
	MetaDealRegID   string   `json:"meta_deal_reg_id"`
	ShippingContact string   `json:"shipping_contact" validate:"required"`
	ShippingAddress string   `json:"shipping_address" validate:"required"`
	ReturnDate      string   `json:"return_date"`
	Notes           string   `json:"notes"`

	// Either a draft token from the kit builder or flat (product, qty) pairs.
	DraftToken string `json:"draft_token"`
	Products   []uint `json:"products"`
	Quantities []int  `json:"quantities"`
}

// insufficientStockError aborts the finalization transaction and carries
// what the caller needs to fix their selection.
type insufficientStockError struct {
	Name      string
	Available int
}

func (e *insufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (available: %d)", e.Name, e.Available)
}

type kitLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity,omitempty"`
}

// kitSummary is the categorized response body of a finalized order.
// Headset lines carry quantities; app lines are listed by name only.
type kitSummary struct {
	Headsets    []kitLine `json:"headsets"`
	OfflineApps []kitLine `json:"offline_apps"`
	OnlineApps  []kitLine `json:"online_apps"`
}

func (s *kitSummary) add(category, name string, qty int) {
	switch models.ClassifyCategory(category) {
	case models.CategoryHeadset:
		s.Headsets = append(s.Headsets, kitLine{Name: name, Quantity: qty})
	case models.CategoryOfflineApp:
		s.OfflineApps = append(s.OfflineApps, kitLine{Name: name})
	case models.CategoryOnlineApp:
		s.OnlineApps = append(s.OnlineApps, kitLine{Name: name})
	}
}

func (s *kitSummary) names() (headsets, offline, online []string) {
	for _, l := range s.Headsets {
		headsets = append(headsets, fmt.Sprintf("%s x%d", l.Name, l.Quantity))
	}
	for _, l := range s.OfflineApps {
		offline = append(offline, l.Name)
	}
	for _, l := range s.OnlineApps {
		online = append(online, l.Name)
	}
	return
}

// POST /v1/orders
//
// Finalizes a kit selection into an order: validates stock, decrements
// inventory and records line items, all in one transaction. A stock
// shortfall on any line rolls back the whole order.
func FinalizeOrderHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var req FinalizeOrderRequest
	if err := middleware.ValidateJSON(w, r, &req); err != nil {
		return
	}

	// Opportunity metadata is required only for Prospect/Meeting demos.
	if req.DemoPurpose == models.PurposeProspect && strings.TrimSpace(req.Company) == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "company is required for Prospect/Meeting demos"})
		return
	}

	var returnDate *time.Time
	if req.ReturnDate != "" {
		d, err := time.Parse("2006-01-02", req.ReturnDate)
		if err != nil {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "return_date must be YYYY-MM-DD"})
			return
		}
		returnDate = &d
	}

	db := database.DB

	products, quantities := req.Products, req.Quantities
	var draft models.DraftOrder
	useDraft := req.DraftToken != ""
	if useDraft {
		if err := db.Preload("Items").Where("token = ? AND user_id = ?", req.DraftToken, uid).First(&draft).Error; err != nil {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Draft not found"})
			return
		}
		if time.Now().After(draft.ExpiresAt) {
			utils.WriteJSON(w, http.StatusGone, utils.APIResponse{Success: false, Message: "Draft has expired, please rebuild your kit"})
			return
		}
		products, quantities = flattenDraft(draft.Items)
	}

	if len(products) == 0 {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "No products selected"})
		return
	}
	if len(products) != len(quantities) {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "products and quantities must have the same length"})
		return
	}
	for _, q := range quantities {
		if q <= 0 {
			utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "quantities must be positive"})
			return
		}
	}

	order := models.Order{
		OrderRef:        utils.GenerateOrderRef(),
		SalesExecutive:  strings.TrimSpace(req.SalesExecutive),
		SalesEmail:      strings.ToLower(strings.TrimSpace(req.SalesEmail)),
		Reseller:        strings.TrimSpace(req.Reseller),
		DemoPurpose:     req.DemoPurpose,
		Company:         utils.StringPtr(strings.TrimSpace(req.Company)),
		OpportunitySize: utils.StringPtr(strings.TrimSpace(req.OpportunitySize)),
		UsecaseTags:     utils.StringPtr(joinUsecaseTags(req.UsecaseTags)),
		MetaDealReg:     req.MetaDealReg,
		MetaDealRegID:   utils.StringPtr(strings.TrimSpace(req.MetaDealRegID)),
		ShippingContact: strings.TrimSpace(req.ShippingContact),
		ShippingAddress: strings.TrimSpace(req.ShippingAddress),
		ReturnDate:      returnDate,
		Notes:           utils.StringPtr(strings.TrimSpace(req.Notes)),
		OrderStatus:     models.StatusAwaitingApproval,
		UpdatedDate:     time.Now(),
	}

	var summary kitSummary
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for i, productID := range products {
			qty := quantities[i]

			// Row lock makes the check-and-decrement atomic per product:
			// two concurrent orders cannot both pass the stock check.
			var product models.Product
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, productID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// unknown product ids are dropped, not an error
					continue
				}
				return err
			}

			if qty > product.ProductQty {
				return &insufficientStockError{Name: product.ProductName, Available: product.ProductQty}
			}

			if err := tx.Model(&product).Update("product_qty", gorm.Expr("product_qty - ?", qty)).Error; err != nil {
				return err
			}

			item := models.OrderItem{OrderID: order.ID, ProductID: product.ID, Quantity: qty}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}

			summary.add(product.Category, product.ProductName, qty)
		}

		if useDraft {
			if err := tx.Where("draft_id = ?", draft.ID).Delete(&models.DraftItem{}).Error; err != nil {
				return err
			}
			if err := tx.Delete(&draft).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		var stockErr *insufficientStockError
		if errors.As(err, &stockErr) {
			utils.WriteJSON(w, http.StatusConflict, utils.APIResponse{Success: false, Message: stockErr.Error()})
			return
		}
		log.Printf("[orders] finalize failed for user=%d: %v", uid, err)
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to place order"})
		return
	}

	headsets, offline, online := summary.names()
	utils.SendBestEffort(utils.BuildOrderConfirmationEmail(order.SalesEmail, order.OrderRef, order.CreatedAt, headsets, offline, online))

	utils.WriteJSON(w, http.StatusCreated, utils.APIResponse{
		Success: true,
		Message: "Order placed",
		Data: map[string]interface{}{
			"order_id":     order.ID,
			"order_ref":    order.OrderRef,
			"order_date":   order.CreatedAt.Format("Jan 2, 2006"),
			"headsets":     summary.Headsets,
			"offline_apps": summary.OfflineApps,
			"online_apps":  summary.OnlineApps,
		},
	})
}

// joinUsecaseTags stores tags comma-joined in one column, so the delimiter
// itself is stripped from each tag.
func joinUsecaseTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(strings.ReplaceAll(t, models.UsecaseDelimiter, " "))
		if t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, models.UsecaseDelimiter)
}

// flattenDraft turns draft items into the finalize pairs, preserving the
// wizard step order so the response lists headsets first.
func flattenDraft(items []models.DraftItem) ([]uint, []int) {
	var products []uint
	var quantities []int
	for _, step := range []string{models.StepHeadsets, models.StepOfflineApps, models.StepOnlineApps} {
		for _, it := range items {
			if it.Step != step {
				continue
			}
			products = append(products, it.ProductID)
			quantities = append(quantities, it.Quantity)
		}
	}
	return products, quantities
}

// GET /v1/orders/{id}
func GetOrderHandler(w http.ResponseWriter, r *http.Request) {
	uid, ok := middleware.GetUserID(r)
	if !ok || uid == 0 {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	id, err := orderIDFromPath(r)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.APIResponse{Success: false, Message: "Invalid order id"})
		return
	}

	db := database.DB

	var order models.Order
	if err := db.Preload("Items.Product").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.WriteJSON(w, http.StatusNotFound, utils.APIResponse{Success: false, Message: "Order not found"})
			return
		}
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	// Requesters see their own orders; managers see all.
	if !models.IsManagerRole(middleware.GetUserRole(r)) && order.SalesEmail != middleware.GetUserEmail(r) {
		utils.WriteJSON(w, http.StatusForbidden, utils.APIResponse{Success: false, Message: "Forbidden"})
		return
	}

	var returnCount int64
	if err := db.Model(&models.ReturnRequest{}).Where("order_id = ?", order.ID).Count(&returnCount).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Server error"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data: map[string]interface{}{
			"order":                order,
			"items":                order.Items,
			"has_submitted_return": returnCount > 0,
		},
	})
}

// GET /v1/orders
func ListMyOrdersHandler(w http.ResponseWriter, r *http.Request) {
	email := middleware.GetUserEmail(r)
	if email == "" {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.APIResponse{Success: false, Message: "Unauthorized"})
		return
	}

	var orders []models.Order
	if err := database.DB.Where("sales_email = ?", email).Order("created_at DESC").Find(&orders).Error; err != nil {
		utils.WriteJSON(w, http.StatusInternalServerError, utils.APIResponse{Success: false, Message: "Failed to load orders"})
		return
	}

	utils.WriteJSON(w, http.StatusOK, utils.APIResponse{
		Success: true,
		Message: "Successfully",
		Data:    map[string]interface{}{"orders": orders},
	})
}

func orderIDFromPath(r *http.Request) (uint, error) {
	idStr := mux.Vars(r)["id"]
	id64, err := strconv.ParseUint(idStr, 10, 64)
	if err != nil || id64 == 0 {
		return 0, fmt.Errorf("invalid id %q", idStr)
	}
	return uint(id64), nil
}
