package service

import (
	"context"
	"errors"
	"fmt"
	"html"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"

	"heybabyy/internal/config"
	"heybabyy/internal/models"
	"heybabyy/internal/nutrition"
)

// ErrEmailDisabled is returned when a digest is requested without a
// configured sender address
var ErrEmailDisabled = errors.New("email service disabled")

// sesAPI is the part of the SES client the service uses
type sesAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// EmailService handles sending emails via Amazon SES
type EmailService struct {
	client    sesAPI
	fromEmail string
	fromName  string
	enabled   bool
	debug     bool
	logger    *zap.Logger
}

// NewEmailService creates a new email service. Without a from address the
// service is created disabled and sends nothing.
func NewEmailService(ctx context.Context, cfg config.EmailConfig, logger *zap.Logger) (*EmailService, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	if !cfg.Enabled() {
		logger.Info("Email service disabled: SES_FROM_EMAIL not configured")
		return &EmailService{enabled: false, debug: cfg.Debug, logger: logger}, nil
	}

	if cfg.Debug {
		logger.Debug("Initializing email service with AWS SES",
			zap.String("region", cfg.AWSRegion),
			zap.String("from_email", cfg.FromEmail),
			zap.String("from_name", cfg.FromName))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	logger.Info("Email service enabled", zap.String("from", cfg.FromEmail), zap.String("region", cfg.AWSRegion))
	return newEmailServiceWithClient(sesv2.NewFromConfig(awsCfg), cfg, logger), nil
}

func newEmailServiceWithClient(client sesAPI, cfg config.EmailConfig, logger *zap.Logger) *EmailService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EmailService{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		enabled:   true,
		debug:     cfg.Debug,
		logger:    logger,
	}
}

// IsEnabled returns whether the email service is enabled
func (s *EmailService) IsEnabled() bool {
	return s.enabled
}

// SendDailyDigest emails the plain-text rendering of a daily summary
func (s *EmailService) SendDailyDigest(ctx context.Context, toEmail, childName string, summary models.DailySummary) error {
	if !s.enabled {
		s.logger.Info("Skipping email send (service disabled)", zap.String("to", toEmail))
		return ErrEmailDisabled
	}

	subject := fmt.Sprintf("%s's day: %s", childName, summary.Date)
	textBody := nutrition.FormatSummary(summary)
	htmlBody := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>%s</h2>
	<pre style="font-size: 14px;">%s</pre>
	<p style="font-size: 12px; color: #666;">This is an automated email from HeyBabyy. Please do not reply.</p>
</body>
</html>
`, html.EscapeString(subject), html.EscapeString(textBody))

	return s.sendEmail(ctx, toEmail, subject, htmlBody, textBody)
}

func (s *EmailService) sendEmail(ctx context.Context, toEmail, subject, htmlBody, textBody string) error {
	fromAddress := s.fromEmail
	if s.fromName != "" {
		fromAddress = fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)
	}

	if s.debug {
		s.logger.Debug("Calling SES SendEmail",
			zap.String("from", fromAddress),
			zap.String("to", toEmail),
			zap.String("subject", subject),
			zap.Int("text_bytes", len(textBody)))
	}

	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{
					Data:    aws.String(subject),
					Charset: aws.String("UTF-8"),
				},
				Body: &types.Body{
					Html: &types.Content{
						Data:    aws.String(htmlBody),
						Charset: aws.String("UTF-8"),
					},
					Text: &types.Content{
						Data:    aws.String(textBody),
						Charset: aws.String("UTF-8"),
					},
				},
			},
		},
	}

	result, err := s.client.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send email to %s: %w", toEmail, err)
	}

	fields := []zap.Field{zap.String("to", toEmail), zap.String("subject", subject)}
	if result.MessageId != nil {
		fields = append(fields, zap.String("message_id", *result.MessageId))
	}
	s.logger.Info("Email sent successfully", fields...)
	return nil
}
