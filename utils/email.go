// utils/email.go
package utils

import (
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"go-shop/models"
)

// Notifier sends mail to a single recipient. Implementations are
// fire-and-forget from the caller's point of view; delivery failures are
// logged by callers, never propagated into business logic.
type Notifier interface {
	Send(recipient, subject, text, html string) error
}

// SendGridNotifier sends mail through the SendGrid API.
type SendGridNotifier struct {
	client *sendgrid.Client
	sender string
}

// NewSendGridNotifier returns a Notifier backed by SendGrid.
func NewSendGridNotifier(apiKey, sender string) *SendGridNotifier {
	return &SendGridNotifier{
		client: sendgrid.NewSendClient(apiKey),
		sender: sender,
	}
}

func (n *SendGridNotifier) Send(recipient, subject, text, html string) error {
	from := mail.NewEmail("", n.sender)
	to := mail.NewEmail("", recipient)
	message := mail.NewSingleEmail(from, subject, to, text, html)

	response, err := n.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", response.StatusCode)
	}
	return nil
}

// VerificationMail builds the account verification message.
func VerificationMail(link string, expiresAt time.Time) (subject, text, html string) {
	expires := expiresAt.UTC().Format("2006-01-02 15:04 UTC")
	subject = "Verify your account"
	text = fmt.Sprintf("Verify here: %s\nExpires: %s", link, expires)
	html = fmt.Sprintf(
		`<html><body>
<h3>Verify Your Email</h3>
<p>Click below to verify your account:</p>
<a href="%s" style="padding:10px 20px;background-color:#4CAF50;color:white;border-radius:5px;text-decoration:none;">Verify</a>
<p>This link expires at: %s</p>
</body></html>`, link, expires)
	return subject, text, html
}

// PasswordResetMail builds the password reset message.
func PasswordResetMail(link string, expiresAt time.Time) (subject, text, html string) {
	expires := expiresAt.UTC().Format("2006-01-02 15:04 UTC")
	subject = "Reset your password"
	text = fmt.Sprintf("Reset your password: %s\nExpires at: %s", link, expires)
	html = fmt.Sprintf(
		`<html><body>
<h3>Password Reset Request</h3>
<a href="%s" style="padding:10px 20px;background-color:#FF9800;color:white;border-radius:5px;text-decoration:none;">Reset Password</a>
<p>This link expires at: %s</p>
</body></html>`, link, expires)
	return subject, text, html
}

// OrderConfirmationMail builds the order confirmation message.
func OrderConfirmationMail(order *models.Order) (subject, text, html string) {
	subject = "Order confirmation"
	text = fmt.Sprintf(
		"Thank you for your purchase! Your order (ID: %s) has been placed successfully.\nTotal amount: $%.2f",
		order.ID.Hex(), order.TotalAmount)
	html = fmt.Sprintf(
		`<html><body>
<h3>Thank you for your purchase!</h3>
<p>Your order (ID: <strong>%s</strong>) has been placed successfully.</p>
<p>Total amount: <strong>$%.2f</strong></p>
</body></html>`, order.ID.Hex(), order.TotalAmount)
	return subject, text, html
}
