package users

import (
	"reflect"
	"testing"

	"github.com/works360/meta-partner-demos-sub000/models"
)

func TestInsufficientStockErrorMessage(t *testing.T) {
	err := &insufficientStockError{Name: "Quest 3 Demo Kit", Available: 1}
	want := "insufficient stock for Quest 3 Demo Kit (available: 1)"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func TestKitSummaryAdd_GroupsByCanonicalCategory(t *testing.T) {
	var s kitSummary
	s.add("VR Headset", "Quest 3", 2)
	s.add("offline apps", "Gravity Sketch", 1)
	s.add("Online Apps", "Horizon Workrooms", 1)
	s.add("accessories", "Charging Dock", 1)

	if len(s.Headsets) != 1 || s.Headsets[0].Name != "Quest 3" || s.Headsets[0].Quantity != 2 {
		t.Fatalf("headsets = %+v", s.Headsets)
	}
	if len(s.OfflineApps) != 1 || s.OfflineApps[0].Name != "Gravity Sketch" {
		t.Fatalf("offline apps = %+v", s.OfflineApps)
	}
	// App lines are name-only, quantity stays zero
	if s.OfflineApps[0].Quantity != 0 {
		t.Fatalf("offline app quantity = %d, want 0", s.OfflineApps[0].Quantity)
	}
	if len(s.OnlineApps) != 1 || s.OnlineApps[0].Name != "Horizon Workrooms" {
		t.Fatalf("online apps = %+v", s.OnlineApps)
	}
}

func TestKitSummaryNames(t *testing.T) {
	var s kitSummary
	s.add("Headset", "Quest 3", 2)
	s.add("Offline Apps", "Gravity Sketch", 1)

	headsets, offline, online := s.names()
	if !reflect.DeepEqual(headsets, []string{"Quest 3 x2"}) {
		t.Fatalf("headsets = %v", headsets)
	}
	if !reflect.DeepEqual(offline, []string{"Gravity Sketch"}) {
		t.Fatalf("offline = %v", offline)
	}
	if online != nil {
		t.Fatalf("online = %v, want empty", online)
	}
}

func TestJoinUsecaseTags(t *testing.T) {
	got := joinUsecaseTags([]string{" Training ", "Design, Review", "", "Sales"})
	if got != "Training,Design  Review,Sales" {
		t.Fatalf("got %q", got)
	}
	if joinUsecaseTags(nil) != "" {
		t.Fatal("nil tags must join to empty")
	}
}

func TestFlattenDraft_PreservesStepOrder(t *testing.T) {
	items := []models.DraftItem{
		{Step: models.StepOnlineApps, ProductID: 30, Quantity: 1},
		{Step: models.StepHeadsets, ProductID: 10, Quantity: 2},
		{Step: models.StepOfflineApps, ProductID: 20, Quantity: 1},
		{Step: models.StepHeadsets, ProductID: 11, Quantity: 1},
	}
	products, quantities := flattenDraft(items)
	if !reflect.DeepEqual(products, []uint{10, 11, 20, 30}) {
		t.Fatalf("products = %v", products)
	}
	if !reflect.DeepEqual(quantities, []int{2, 1, 1, 1}) {
		t.Fatalf("quantities = %v", quantities)
	}
}
