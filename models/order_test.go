package models

import (
	"testing"
	"time"
)

func TestApprovalUpdates_ManagerApproves(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	u := ApprovalUpdates(RoleProgramManager, StatusProcessing, "pm@works360.com", now)
	if u["approved_by"] != "pm@works360.com" {
		t.Fatalf("approved_by = %v", u["approved_by"])
	}
	if u["approved_date"] != now {
		t.Fatalf("approved_date = %v", u["approved_date"])
	}
	if u["rejected_by"] != nil || u["rejected_date"] != nil {
		t.Fatal("approving must clear rejection columns")
	}
}

func TestApprovalUpdates_ManagerRejects(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	u := ApprovalUpdates(RoleProgramManager, StatusCancelled, "pm@works360.com", now)
	if u["rejected_by"] != "pm@works360.com" || u["rejected_date"] != now {
		t.Fatalf("rejection columns = %v / %v", u["rejected_by"], u["rejected_date"])
	}
	if u["approved_by"] != nil || u["approved_date"] != nil {
		t.Fatal("rejecting must clear approval columns")
	}
}

func TestApprovalUpdates_ResetClearsBoth(t *testing.T) {
	u := ApprovalUpdates(RoleProgramManager, StatusAwaitingApproval, "pm@works360.com", time.Now())
	for _, col := range []string{"approved_by", "approved_date", "rejected_by", "rejected_date"} {
		v, ok := u[col]
		if !ok {
			t.Fatalf("missing column %s", col)
		}
		if v != nil {
			t.Fatalf("%s = %v, want nil", col, v)
		}
	}
}

func TestApprovalUpdates_OtherStatusesUntouched(t *testing.T) {
	for _, status := range []string{StatusShipped, StatusReturned, "On Hold"} {
		u := ApprovalUpdates(RoleProgramManager, status, "pm@works360.com", time.Now())
		if len(u) != 0 {
			t.Fatalf("status %q: expected no approval changes, got %v", status, u)
		}
	}
}

func TestApprovalUpdates_NonManagerIsNoop(t *testing.T) {
	for _, role := range []string{RoleShopManager, RoleSalesExecutive, ""} {
		u := ApprovalUpdates(role, StatusProcessing, "someone@works360.com", time.Now())
		if len(u) != 0 {
			t.Fatalf("role %q: expected no approval changes, got %v", role, u)
		}
	}
}

func TestIsManagerRole(t *testing.T) {
	if !IsManagerRole(RoleShopManager) || !IsManagerRole(RoleProgramManager) {
		t.Fatal("manager roles must pass")
	}
	if IsManagerRole(RoleSalesExecutive) || IsManagerRole("admin") {
		t.Fatal("non-manager roles must not pass")
	}
}
