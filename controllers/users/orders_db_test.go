package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"

	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Transactional finalize tests run against a real MySQL instance because
// the row locking they assert on has no in-memory equivalent. Set
// TEST_DB_DSN to a throwaway database to enable them, e.g.
// root:secret@tcp(127.0.0.1:3306)/demokits_test?charset=utf8mb4&parseTime=True

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if err := db.AutoMigrate(&models.Product{}, &models.Order{}, &models.OrderItem{}, &models.DraftOrder{}, &models.DraftItem{}, &models.ReturnRequest{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	for _, table := range []string{"order_items", "return_requests", "draft_items", "draft_orders", "orders", "products"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("reset table %s: %v", table, err)
		}
	}
	database.DB = db
	return db
}

func postFinalize(userID uint, products []uint, quantities []int) *httptest.ResponseRecorder {
	body, _ := json.Marshal(map[string]interface{}{
		"sales_executive":  "Dana Cole",
		"sales_email":      "dana@works360.com",
		"demo_purpose":     "Event",
		"shipping_contact": "Dana Cole, 555-0100",
		"shipping_address": "1 Demo Way, Austin TX",
		"products":         products,
		"quantities":       quantities,
	})
	req := httptest.NewRequest(http.MethodPost, "/v1/orders", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(context.WithValue(req.Context(), utils.UserIDKey, userID))
	rr := httptest.NewRecorder()
	FinalizeOrderHandler(rr, req)
	return rr
}

func TestFinalizeShortfallRollsBackEverything(t *testing.T) {
	db := testDB(t)

	product := models.Product{ProductName: "P", ProductSKU: "SKU-P", Category: models.CategoryHeadset, ProductQty: 2, TotalInventory: 2}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	// First order drains the stock.
	if rr := postFinalize(1, []uint{product.ID}, []int{2}); rr.Code != http.StatusCreated {
		t.Fatalf("first order: status %d body %s", rr.Code, rr.Body.String())
	}

	// Second order can no longer be satisfied.
	rr := postFinalize(2, []uint{product.ID}, []int{1})
	if rr.Code != http.StatusConflict {
		t.Fatalf("second order: status %d body %s", rr.Code, rr.Body.String())
	}
	var resp utils.APIResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode conflict body: %v", err)
	}
	if !strings.Contains(resp.Message, "insufficient stock for P (available: 0)") {
		t.Fatalf("conflict message = %q", resp.Message)
	}

	// The failed order left nothing behind: one order, one line item,
	// stock untouched by the rollback.
	var orders, items int64
	db.Model(&models.Order{}).Count(&orders)
	db.Model(&models.OrderItem{}).Count(&items)
	if orders != 1 || items != 1 {
		t.Fatalf("residual rows after rollback: orders=%d items=%d", orders, items)
	}
	var after models.Product
	if err := db.First(&after, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if after.ProductQty != 0 {
		t.Fatalf("product_qty = %d, want 0", after.ProductQty)
	}
}

func TestFinalizeConcurrentOrdersNeverOversell(t *testing.T) {
	db := testDB(t)

	product := models.Product{ProductName: "P", ProductSKU: "SKU-P", Category: models.CategoryHeadset, ProductQty: 2, TotalInventory: 2}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	// Both want the whole stock; the row lock lets exactly one through.
	codes := make([]int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			codes[i] = postFinalize(uint(i+1), []uint{product.ID}, []int{2}).Code
		}(i)
	}
	wg.Wait()

	created, conflicted := 0, 0
	for _, c := range codes {
		switch c {
		case http.StatusCreated:
			created++
		case http.StatusConflict:
			conflicted++
		}
	}
	if created != 1 || conflicted != 1 {
		t.Fatalf("codes = %v, want one 201 and one 409", codes)
	}

	var after models.Product
	if err := db.First(&after, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if after.ProductQty != 0 {
		t.Fatalf("product_qty = %d, want 0", after.ProductQty)
	}
	var items int64
	db.Model(&models.OrderItem{}).Count(&items)
	if items != 1 {
		t.Fatalf("order_items = %d, want 1", items)
	}
}
