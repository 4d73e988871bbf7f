package helpers

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Mailer sends OTP emails over SMTP. One Mailer is constructed at startup
// and injected into the user controller.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailer(smtpHost string, smtpPort int, smtpUsername, smtpPassword, fromEmail string) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(smtpHost, smtpPort, smtpUsername, smtpPassword),
		from:   fromEmail,
	}
}

// SendOTPEmail delivers a one-time code with a flow-specific lead-in, e.g.
// "Your account verification code is". A failed send fails the whole
// user-facing operation; there are no retries.
func (m *Mailer) SendOTPEmail(toEmail, otp, message string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Your OTP Code")
	msg.SetBody("text/plain", fmt.Sprintf("%s: %s", message, otp))
	msg.AddAlternative("text/html", fmt.Sprintf("<p>%s: <strong>%s</strong></p>", message, otp))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send OTP email: %w", err)
	}
	return nil
}
