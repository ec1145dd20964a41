package email

import (
	"errors"
	"fmt"
	"strconv"

	"memorial/config"

	gomail "gopkg.in/gomail.v2"
)

type ContactMessage struct {
	Name    string
	Email   string
	Subject string
	Message string
	UserID  *uint64
}

// SendContactEmail relays a contact-form submission to the configured address
func SendContactEmail(msg ContactMessage) error {
	if config.SMTP_HOST == "" || config.SMTP_PASS == "" || config.CONTACT_EMAIL == "" {
		return errors.New("SMTP relay is not configured")
	}
	userLine := "User: Not logged in"
	if msg.UserID != nil {
		userLine = "User ID: " + strconv.FormatUint(*msg.UserID, 10)
	}
	m := gomail.NewMessage()
	m.SetHeader("From", config.SMTP_USER)
	m.SetHeader("To", config.CONTACT_EMAIL)
	m.SetHeader("Reply-To", msg.Email)
	m.SetHeader("Subject", "[Contact] "+msg.Subject)
	m.SetBody("text/plain", fmt.Sprintf(
		"Name: %s\nEmail: %s\n%s\n\n--- Message ---\n%s\n",
		msg.Name, msg.Email, userLine, msg.Message))

	d := gomail.NewDialer(config.SMTP_HOST, config.SMTP_PORT, config.SMTP_USER, config.SMTP_PASS)
	return d.DialAndSend(m)
}
