package models

import "testing"

func TestClassifyCategory_HeadsetVariants(t *testing.T) {
	for _, s := range []string{"Headset", "VR Headset", "headsets", "Standalone HEADSET"} {
		if got := ClassifyCategory(s); got != CategoryHeadset {
			t.Fatalf("ClassifyCategory(%q) = %q, want %q", s, got, CategoryHeadset)
		}
	}
}

func TestClassifyCategory_AppVariants(t *testing.T) {
	for _, s := range []string{"Offline Apps", "offline apps", "Offline App"} {
		if got := ClassifyCategory(s); got != CategoryOfflineApp {
			t.Fatalf("ClassifyCategory(%q) = %q, want %q", s, got, CategoryOfflineApp)
		}
	}
	for _, s := range []string{"Online Apps", "online app", "ONLINE APPS"} {
		if got := ClassifyCategory(s); got != CategoryOnlineApp {
			t.Fatalf("ClassifyCategory(%q) = %q, want %q", s, got, CategoryOnlineApp)
		}
	}
}

func TestClassifyCategory_Unknown(t *testing.T) {
	for _, s := range []string{"", "Accessories", "controller"} {
		if got := ClassifyCategory(s); got != "" {
			t.Fatalf("ClassifyCategory(%q) = %q, want empty", s, got)
		}
	}
	if IsValidCategory("cables") {
		t.Fatal("expected cables to be invalid")
	}
	if !IsValidCategory("VR Headset") {
		t.Fatal("expected VR Headset to be valid")
	}
}

func TestStepCategory(t *testing.T) {
	if got := StepCategory(StepHeadsets); got != CategoryHeadset {
		t.Fatalf("headsets step maps to %q", got)
	}
	if got := StepCategory(StepOfflineApps); got != CategoryOfflineApp {
		t.Fatalf("offline step maps to %q", got)
	}
	if got := StepCategory(StepOnlineApps); got != CategoryOnlineApp {
		t.Fatalf("online step maps to %q", got)
	}
	if got := StepCategory("accessories"); got != "" {
		t.Fatalf("unknown step maps to %q, want empty", got)
	}
}
