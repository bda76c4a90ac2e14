package service

import (
	"fmt"
	"os"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"
)

// Notifier delivers fire-and-forget user notifications. Nothing on the
// allocation path depends on it; only background jobs call it.
type Notifier interface {
	NotifyEmail(toEmail, subject, body string) error
	NotifySMS(toNumber, body string) error
}

// envNotifier sends email through SendGrid and SMS through Twilio, both
// configured from the environment. Missing credentials make the respective
// channel a logged no-op instead of an error.
type envNotifier struct {
	logger *zap.Logger
}

func NewNotifier(logger *zap.Logger) Notifier {
	return &envNotifier{logger: logger}
}

func (n *envNotifier) NotifyEmail(toEmail, subject, body string) error {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if apiKey == "" || fromEmail == "" {
		n.logger.Warn("SendGrid not configured, skipping email", zap.String("to", toEmail))
		return nil
	}

	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "Parkwise"
	}

	from := mail.NewEmail(fromName, fromEmail)
	to := mail.NewEmail(toEmail, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("send email via SendGrid: %w", err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("SendGrid returned status %d: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (n *envNotifier) NotifySMS(toNumber, body string) error {
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_FROM_NUMBER")
	if accountSid == "" || authToken == "" || fromNumber == "" {
		n.logger.Warn("Twilio not configured, skipping SMS", zap.String("to", toNumber))
		return nil
	}

	if !strings.HasPrefix(toNumber, "+") {
		n.logger.Warn("destination number is not E.164, SMS may fail", zap.String("to", toNumber))
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSid,
		Password: authToken,
	})

	params := &openapi.CreateMessageParams{}
	params.SetTo(toNumber)
	params.SetFrom(fromNumber)
	params.SetBody(body)

	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("send SMS via Twilio: %w", err)
	}
	return nil
}
