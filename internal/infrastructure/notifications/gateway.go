package notifications

import (
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"go.uber.org/zap"

	"github.com/praveshgrewal/UCMS/domain"
)

// Gateway implements domain.NotificationService, sending SMS through
// Twilio and email through SendGrid. Unconfigured credentials degrade to a
// logged mock send so local development works without provider accounts.
type Gateway struct {
	smsClient  *twilio.RestClient
	fromNumber string

	sendgridKey string
	fromEmail   string
	fromName    string

	logger *zap.Logger
}

// NewGateway creates the outbound delivery gateway
func NewGateway(accountSID, authToken, fromNumber, sendgridKey, fromEmail, fromName string, logger *zap.Logger) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &Gateway{
		smsClient:   client,
		fromNumber:  fromNumber,
		sendgridKey: sendgridKey,
		fromEmail:   fromEmail,
		fromName:    fromName,
		logger:      logger,
	}
}

// SendSMS implements domain.NotificationService
func (g *Gateway) SendSMS(to, message string) error {
	if g.fromNumber == "" {
		g.logger.Info("mock sms send", zap.String("to", to), zap.String("message", message))
		return nil
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(g.fromNumber)
	params.SetBody(message)

	if _, err := g.smsClient.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}

// SendEmail implements domain.NotificationService
func (g *Gateway) SendEmail(to, subject, body string) error {
	if g.sendgridKey == "" {
		g.logger.Info("mock email send", zap.String("to", to), zap.String("subject", subject))
		return nil
	}

	from := sgmail.NewEmail(g.fromName, g.fromEmail)
	recipient := sgmail.NewEmail("", to)
	message := sgmail.NewSingleEmail(from, subject, recipient, body, otpEmailHTML(body))

	client := sendgrid.NewSendClient(g.sendgridKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: sendgrid status %d", resp.StatusCode)
	}

	return nil
}

func otpEmailHTML(text string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
  <div style="max-width: 480px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
    <h2 style="color: #2c3e50; text-align: center;">UCMS Alumni Portal</h2>
    <p style="font-size: 16px; color: #555555; text-align: center;">%s</p>
    <p style="font-size: 13px; color: #7f8c8d; text-align: center;">Please do not share this code with anyone.</p>
  </div>
</body>
</html>`, text)
}
