package utils

import (
	"strings"
	"testing"
	"time"
)

func TestRenderEmailEscapesHTML(t *testing.T) {
	html := renderEmail(emailData{
		Title:      "Hello <script>",
		Paragraphs: []string{"a & b"},
	})
	if strings.Contains(html, "<script>") {
		t.Fatal("title must be escaped")
	}
	if !strings.Contains(html, "a &amp; b") {
		t.Fatalf("paragraph not escaped: %s", html)
	}
}

func TestBuildOrderConfirmationEmail(t *testing.T) {
	created := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	e := BuildOrderConfirmationEmail("sales@works360.com", "DKO-7HXM2QKF", created,
		[]string{"Quest 3 x2"}, []string{"Gravity Sketch"}, nil)
	if e.To != "sales@works360.com" {
		t.Fatalf("to = %q", e.To)
	}
	if e.Subject != "Order DKO-7HXM2QKF received" {
		t.Fatalf("subject = %q", e.Subject)
	}
	for _, want := range []string{"DKO-7HXM2QKF", "Mar 1, 2026", "Quest 3 x2", "Gravity Sketch", "awaiting approval"} {
		if !strings.Contains(e.HTML, want) {
			t.Fatalf("body missing %q", want)
		}
	}
}

func TestBuildStatusChangeEmail_WithTracking(t *testing.T) {
	e := BuildStatusChangeEmail("sales@works360.com", "DKO-AAAA2222", "Shipped", "1Z999", "https://track.example/1Z999")
	if e.Subject != "Order DKO-AAAA2222: Shipped" {
		t.Fatalf("subject = %q", e.Subject)
	}
	if !strings.Contains(e.HTML, "1Z999") || !strings.Contains(e.HTML, "https://track.example/1Z999") {
		t.Fatalf("tracking details missing: %s", e.HTML)
	}
}

func TestBuildStatusChangeEmail_WithoutTracking(t *testing.T) {
	e := BuildStatusChangeEmail("sales@works360.com", "DKO-AAAA2222", "Processing", "", "")
	if strings.Contains(e.HTML, "Tracking number") {
		t.Fatal("no tracking paragraph expected")
	}
}

func TestBuildReturnReceivedEmail_LabelLink(t *testing.T) {
	e := BuildReturnReceivedEmail("sales@works360.com", "DKO-BBBB3333", "https://s3.example/label.pdf?sig=x")
	if !strings.Contains(e.HTML, "Download return label") {
		t.Fatal("label link text missing")
	}
	plain := BuildReturnReceivedEmail("sales@works360.com", "DKO-BBBB3333", "")
	if strings.Contains(plain.HTML, "Download return label") {
		t.Fatal("label link must be omitted without a URL")
	}
}

func TestSendEmailWithoutSMTPHostLogsOnly(t *testing.T) {
	t.Setenv("SMTP_HOST", "")
	err := SendEmail(Email{To: "x@y.co", Subject: "s", HTML: "<p>b</p>"})
	if err != nil {
		t.Fatalf("log-only mode must not error: %v", err)
	}
}

func TestPortalURLTrimsTrailingSlash(t *testing.T) {
	t.Setenv("PORTAL_BASE_URL", "https://demos.works360.com/")
	if got := PortalURL(); got != "https://demos.works360.com" {
		t.Fatalf("got %q", got)
	}
}
