package utils

import (
	"strings"
	"testing"
)

type sampleForm struct {
	Email       string `validate:"required,email"`
	Password    string `validate:"required,pwdmin"`
	Confirm     string `validate:"eqfield=Password"`
	DemoPurpose string `validate:"purpose"`
}

func TestValidateStruct_Valid(t *testing.T) {
	f := sampleForm{
		Email:       "sales@works360.com",
		Password:    "longenough",
		Confirm:     "longenough",
		DemoPurpose: "Event",
	}
	if err := ValidateStruct(&f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidateStruct_Required(t *testing.T) {
	f := sampleForm{Password: "longenough", Confirm: "longenough"}
	err := ValidateStruct(&f)
	if err == nil || !strings.Contains(err.Error(), "Email is required") {
		t.Fatalf("got %v", err)
	}
}

func TestValidateStruct_EmailShape(t *testing.T) {
	f := sampleForm{Email: "not-an-email", Password: "longenough", Confirm: "longenough"}
	err := ValidateStruct(&f)
	if err == nil || !strings.Contains(err.Error(), "valid email") {
		t.Fatalf("got %v", err)
	}
}

func TestValidateStruct_PasswordMin(t *testing.T) {
	f := sampleForm{Email: "a@b.co", Password: "short", Confirm: "short"}
	err := ValidateStruct(&f)
	if err == nil || !strings.Contains(err.Error(), "at least 8 characters") {
		t.Fatalf("got %v", err)
	}
}

func TestValidateStruct_EqField(t *testing.T) {
	f := sampleForm{Email: "a@b.co", Password: "longenough", Confirm: "different"}
	err := ValidateStruct(&f)
	if err == nil || !strings.Contains(err.Error(), "must equal Password") {
		t.Fatalf("got %v", err)
	}
}

func TestValidateStruct_Purpose(t *testing.T) {
	f := sampleForm{Email: "a@b.co", Password: "longenough", Confirm: "longenough", DemoPurpose: "Roadshow"}
	err := ValidateStruct(&f)
	if err == nil || !strings.Contains(err.Error(), "Prospect/Meeting") {
		t.Fatalf("got %v", err)
	}
	for _, p := range []string{"Prospect/Meeting", "Event", "Other", ""} {
		f.DemoPurpose = p
		if err := ValidateStruct(&f); err != nil {
			t.Fatalf("purpose %q: %v", p, err)
		}
	}
}
