package admins

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/works360/meta-partner-demos-sub000/database"
	"github.com/works360/meta-partner-demos-sub000/models"
	"github.com/works360/meta-partner-demos-sub000/utils"

	"github.com/gorilla/mux"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Lifecycle tests need a real MySQL instance; set TEST_DB_DSN to a
// throwaway database to enable them.

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
	if err := db.AutoMigrate(&models.Order{}, &models.OrderItem{}, &models.Product{}); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	for _, table := range []string{"order_items", "orders", "products"} {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			t.Fatalf("reset table %s: %v", table, err)
		}
	}
	database.DB = db
	return db
}

func putOrderUpdate(orderID uint, role, actor string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/v1/admin/orders/"+strconv.FormatUint(uint64(orderID), 10), strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	ctx := context.WithValue(req.Context(), utils.UserIDKey, uint(99))
	ctx = context.WithValue(ctx, utils.UserEmailKey, actor)
	ctx = context.WithValue(ctx, utils.UserRoleKey, role)
	req = req.WithContext(ctx)
	req = mux.SetURLVars(req, map[string]string{"id": strconv.FormatUint(uint64(orderID), 10)})
	rr := httptest.NewRecorder()
	UpdateOrderHandler(rr, req)
	return rr
}

func seedOrder(t *testing.T, db *gorm.DB) models.Order {
	t.Helper()
	order := models.Order{
		OrderRef:        "DKO-TESTREF1",
		SalesExecutive:  "Dana Cole",
		SalesEmail:      "dana@works360.com",
		DemoPurpose:     models.PurposeEvent,
		ShippingContact: "Dana Cole, 555-0100",
		ShippingAddress: "1 Demo Way, Austin TX",
		OrderStatus:     models.StatusAwaitingApproval,
		UpdatedDate:     time.Now(),
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func TestUpdateOrderUnknownStatusPassesThrough(t *testing.T) {
	db := testDB(t)
	order := seedOrder(t, db)

	form := url.Values{"order_status": {"On Hold"}}
	if rr := putOrderUpdate(order.ID, models.RoleProgramManager, "pm@works360.com", form); rr.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rr.Code, rr.Body.String())
	}

	var after models.Order
	if err := db.First(&after, order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if after.OrderStatus != "On Hold" {
		t.Fatalf("order_status = %q, want On Hold", after.OrderStatus)
	}
	// Ad-hoc statuses carry no approval authority.
	if after.ApprovedBy != nil || after.RejectedBy != nil {
		t.Fatalf("approval columns moved: approved_by=%v rejected_by=%v", after.ApprovedBy, after.RejectedBy)
	}
}

func TestUpdateOrderApprovalBookkeeping(t *testing.T) {
	db := testDB(t)
	order := seedOrder(t, db)

	form := url.Values{"order_status": {models.StatusProcessing}}
	if rr := putOrderUpdate(order.ID, models.RoleProgramManager, "pm@works360.com", form); rr.Code != http.StatusOK {
		t.Fatalf("status %d body %s", rr.Code, rr.Body.String())
	}

	var after models.Order
	if err := db.First(&after, order.ID).Error; err != nil {
		t.Fatalf("reload order: %v", err)
	}
	if after.OrderStatus != models.StatusProcessing {
		t.Fatalf("order_status = %q", after.OrderStatus)
	}
	if utils.GetStringValue(after.ApprovedBy) != "pm@works360.com" || after.ApprovedDate == nil {
		t.Fatalf("approval not recorded: by=%v date=%v", after.ApprovedBy, after.ApprovedDate)
	}
}
