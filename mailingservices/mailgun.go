package mailingservices

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mailgun/mailgun-go/v4"
)

type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init() {
	domain := os.Getenv("COOKIEPEDIA_MG_DOMAIN")
	apiKey := os.Getenv("COOKIEPEDIA_MG_PUBLIC_API_KEY")
	m.From = os.Getenv("COOKIEPEDIA_EMAIL_FROM")
	if m.From == "" {
		m.From = fmt.Sprintf("Cookiepedia <no-reply@%s>", domain)
	}
	m.Client = mailgun.NewMailgun(domain, apiKey)
	log.Println("Mailgun client initialized")
}

// SendVerificationEmail mails the 6-digit signup code.
func (m *Mailgun) SendVerificationEmail(ctx context.Context, to string, code string) error {
	subject := "Verify your Cookiepedia account"
	body := fmt.Sprintf(
		"Welcome to Cookiepedia!\n\nYour verification code is: %s\n\nThe code expires in 10 minutes. If you did not sign up, you can ignore this email.",
		code,
	)

	message := m.Client.NewMessage(m.From, subject, body, to)
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	_, _, err := m.Client.Send(ctx, message)
	if err != nil {
		log.Printf("error sending verification email to %s: %v", to, err)
		return err
	}
	return nil
}

// SendPasswordResetEmail mails a password reset link built from the token.
func (m *Mailgun) SendPasswordResetEmail(ctx context.Context, to string, resetURL string) error {
	subject := "Reset your Cookiepedia password"
	body := fmt.Sprintf(
		"We received a request to reset your password.\n\nReset it here: %s\n\nIf you did not request this, you can ignore this email.",
		resetURL,
	)

	message := m.Client.NewMessage(m.From, subject, body, to)
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	_, _, err := m.Client.Send(ctx, message)
	if err != nil {
		log.Printf("error sending password reset email to %s: %v", to, err)
		return err
	}
	return nil
}
