package utils

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"
)

// Transactional email builders plus a thin SMTP sender. When SMTP_HOST is
// not configured the mail is logged instead of sent so local environments
// work without a relay.

type Email struct {
	To      string
	Subject string
	HTML    string
}

// SendEmail delivers e via SMTP. Errors are returned to the caller; most
// call sites treat delivery as best effort and only log failures.
func SendEmail(e Email) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		log.Printf("[mailer] SMTP_HOST not set, would send to=%s subject=%q", e.To, e.Subject)
		return nil
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "no-reply@localhost"
	}

	var msg bytes.Buffer
	msg.WriteString("From: " + from + "\r\n")
	msg.WriteString("To: " + e.To + "\r\n")
	msg.WriteString("Subject: " + e.Subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(e.HTML)

	var auth smtp.Auth
	if user := os.Getenv("SMTP_USER"); user != "" {
		auth = smtp.PlainAuth("", user, os.Getenv("SMTP_PASS"), host)
	}
	return smtp.SendMail(host+":"+port, auth, from, []string{e.To}, msg.Bytes())
}

var baseTmpl = template.Must(template.New("email").Parse(`<html><body style="font-family:Arial,sans-serif;color:#222">
<h2>{{.Title}}</h2>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}{{if .ListTitle}}<h4>{{.ListTitle}}</h4><ul>
{{range .ListItems}}<li>{{.}}</li>
{{end}}</ul>{{end}}{{if .LinkURL}}<p><a href="{{.LinkURL}}">{{.LinkText}}</a></p>
{{end}}<p style="color:#888;font-size:12px">Meta Partner Demo Kit Program</p>
</body></html>`))

type emailData struct {
	Title      string
	Paragraphs []string
	ListTitle  string
	ListItems  []string
	LinkURL    string
	LinkText   string
}

func renderEmail(d emailData) string {
	var buf bytes.Buffer
	if err := baseTmpl.Execute(&buf, d); err != nil {
		log.Printf("[mailer] template render failed: %v", err)
		return ""
	}
	return buf.String()
}

// BuildWelcomeEmail greets a newly registered user.
func BuildWelcomeEmail(to, name string) Email {
	return Email{
		To:      to,
		Subject: "Welcome to the Demo Kit Portal",
		HTML: renderEmail(emailData{
			Title: "Welcome, " + name,
			Paragraphs: []string{
				"Your demo kit portal account has been created.",
				"You can now browse the catalog and build your first kit.",
			},
		}),
	}
}

// BuildPasswordResetEmail carries the single-use reset link.
func BuildPasswordResetEmail(to, resetURL string) Email {
	return Email{
		To:      to,
		Subject: "Reset your password",
		HTML: renderEmail(emailData{
			Title: "Password reset requested",
			Paragraphs: []string{
				"A password reset was requested for this address.",
				"The link below is valid for one hour and can be used once.",
				"If you did not request this, you can ignore this email.",
			},
			LinkURL:  resetURL,
			LinkText: "Reset password",
		}),
	}
}

// BuildOrderConfirmationEmail summarizes a finalized kit.
func BuildOrderConfirmationEmail(to, orderRef string, created time.Time, headsets, offlineApps, onlineApps []string) Email {
	items := make([]string, 0, len(headsets)+len(offlineApps)+len(onlineApps))
	items = append(items, headsets...)
	items = append(items, offlineApps...)
	items = append(items, onlineApps...)
	return Email{
		To:      to,
		Subject: fmt.Sprintf("Order %s received", orderRef),
		HTML: renderEmail(emailData{
			Title: "Your demo kit order is in",
			Paragraphs: []string{
				fmt.Sprintf("Order %s was placed on %s and is awaiting approval.", orderRef, created.Format("Jan 2, 2006")),
			},
			ListTitle: "Kit contents",
			ListItems: items,
		}),
	}
}

// BuildStatusChangeEmail notifies the requester of a lifecycle transition.
func BuildStatusChangeEmail(to, orderRef, status, trackingNumber, trackingLink string) Email {
	paras := []string{
		fmt.Sprintf("Order %s is now: %s.", orderRef, status),
	}
	if trackingNumber != "" {
		paras = append(paras, "Tracking number: "+trackingNumber)
	}
	d := emailData{
		Title:      "Order status update",
		Paragraphs: paras,
	}
	if trackingLink != "" {
		d.LinkURL = trackingLink
		d.LinkText = "Track shipment"
	}
	return Email{
		To:      to,
		Subject: fmt.Sprintf("Order %s: %s", orderRef, status),
		HTML:    renderEmail(d),
	}
}

// BuildReturnReceivedEmail confirms a return submission, optionally with a
// return-label download link.
func BuildReturnReceivedEmail(to, orderRef, labelURL string) Email {
	d := emailData{
		Title: "Return request received",
		Paragraphs: []string{
			fmt.Sprintf("Thanks, your return details for order %s were recorded.", orderRef),
		},
	}
	if labelURL != "" {
		d.Paragraphs = append(d.Paragraphs, "A prepaid return label is available for this order.")
		d.LinkURL = labelURL
		d.LinkText = "Download return label"
	}
	return Email{
		To:      to,
		Subject: fmt.Sprintf("Return received for order %s", orderRef),
		HTML:    renderEmail(d),
	}
}

// BuildReturnReminderEmail nudges the requester ahead of the return date.
func BuildReturnReminderEmail(to, orderRef string, returnDate time.Time) Email {
	return Email{
		To:      to,
		Subject: fmt.Sprintf("Reminder: demo kit %s is due back soon", orderRef),
		HTML: renderEmail(emailData{
			Title: "Return date approaching",
			Paragraphs: []string{
				fmt.Sprintf("The demo kit for order %s is due back on %s.", orderRef, returnDate.Format("Jan 2, 2006")),
				"Please arrange the return shipment before then.",
			},
		}),
	}
}

// BuildOverdueEmail is sent once when a kit is ten or more days overdue.
func BuildOverdueEmail(to, orderRef string, returnDate time.Time) Email {
	days := int(time.Since(returnDate).Hours() / 24)
	return Email{
		To:      to,
		Subject: fmt.Sprintf("Overdue: demo kit %s", orderRef),
		HTML: renderEmail(emailData{
			Title: "Demo kit overdue",
			Paragraphs: []string{
				fmt.Sprintf("The demo kit for order %s was due back on %s (%d days ago).", orderRef, returnDate.Format("Jan 2, 2006"), days),
				"Please ship it back or reply to this email if it is already on its way.",
			},
		}),
	}
}

// SendBestEffort sends e and logs a failure instead of propagating it.
// Used where delivery must not fail the surrounding operation.
func SendBestEffort(e Email) {
	if err := SendEmail(e); err != nil {
		log.Printf("[mailer] send to=%s failed: %v", e.To, err)
	}
}

// PortalURL returns the externally visible portal base URL.
func PortalURL() string {
	u := os.Getenv("PORTAL_BASE_URL")
	if u == "" {
		u = "http://localhost:3000"
	}
	return strings.TrimRight(u, "/")
}
