package utils

import (
	"fmt"
	"net/smtp"
	"os"

	"github.com/esh-dev257/ecommerce-store/models"
)

// Mailer sends notifications through plain SMTP with app-password auth,
// gmail-style.
type Mailer struct {
	Host string
	Port string
	User string
	Pass string
}

// NewMailerFromEnv returns nil when EMAIL_USER/EMAIL_PASS are unset; callers
// treat a nil mailer as notifications-disabled.
func NewMailerFromEnv() *Mailer {
	user := os.Getenv("EMAIL_USER")
	pass := os.Getenv("EMAIL_PASS")
	if user == "" || pass == "" {
		return nil
	}
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		host = "smtp.gmail.com"
	}
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}
	return &Mailer{Host: host, Port: port, User: user, Pass: pass}
}

func (m *Mailer) Send(to, subject, htmlBody string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		m.User, to, subject, htmlBody,
	)
	auth := smtp.PlainAuth("", m.User, m.Pass, m.Host)
	return smtp.SendMail(m.Host+":"+m.Port, auth, m.User, []string{to}, []byte(msg))
}

// OrderEmailBody renders the admin notification for a newly saved order.
func OrderEmailBody(order models.Order) string {
	return fmt.Sprintf(`
<div style="font-family: 'Segoe UI', Arial, sans-serif; background: #f6f8fa; padding: 32px;">
  <div style="max-width: 480px; margin: auto; background: #fff; border-radius: 12px; padding: 32px;">
    <h2 style="color: #1976d2;">🛒 New Order Placed!</h2>
    <p><b>User:</b> %s (<a href="mailto:%s">%s</a>)</p>
    <p><b>Product:</b> %s</p>
    <p><b>Amount:</b> <span style="color: #388e3c;">₹%.2f</span></p>
    <p><b>Payment ID:</b> <span style="color: #1976d2;">%s</span></p>
  </div>
</div>`,
		order.User.Name, order.User.Email, order.User.Email,
		order.Product.Name, order.Amount, order.PaymentID,
	)
}
