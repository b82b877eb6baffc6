package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

// AWSSESEmailService sends transactional email using AWS SES.
type AWSSESEmailService struct {
	sesClient   *ses.Client
	fromAddress string
	logger      *slog.Logger
}

// NewAWSSESEmailService creates a new AWS SES email service
func NewAWSSESEmailService(region, fromAddress string, logger *slog.Logger) (*AWSSESEmailService, error) {
	cfg, err := config.LoadDefaultConfig(context.Background(), config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return &AWSSESEmailService{
		sesClient:   ses.NewFromConfig(cfg),
		fromAddress: fromAddress,
		logger:      logger,
	}, nil
}

// SendLinkInvite notifies an athlete that a coach requested access to their
// training data.
func (s *AWSSESEmailService) SendLinkInvite(ctx context.Context, to, coachName string) error {
	if coachName == "" {
		coachName = "Your coach"
	}

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
	<h2>%s wants to coach you on CoachDesk</h2>
	<p>%s has requested access to your training data. While the link is active,
	your coach can view your daily reports, programs and meal plans.</p>
	<p>You can review or revoke this access at any time from your account settings.</p>
	<p style="color: #666; font-size: 12px;">This is an automated message. Please do not reply to this email.</p>
</body>
</html>
`, coachName, coachName)

	textBody := fmt.Sprintf(`%s wants to coach you on CoachDesk

%s has requested access to your training data. While the link is active,
your coach can view your daily reports, programs and meal plans.

You can review or revoke this access at any time from your account settings.

This is an automated message. Please do not reply to this email.
`, coachName, coachName)

	input := &ses.SendEmailInput{
		Source: aws.String(s.fromAddress),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data: aws.String("A coach requested access to your training data"),
			},
			Body: &types.Body{
				Html: &types.Content{
					Data: aws.String(htmlBody),
				},
				Text: &types.Content{
					Data: aws.String(textBody),
				},
			},
		},
	}

	result, err := s.sesClient.SendEmail(ctx, input)
	if err != nil {
		s.logger.Error("failed to send link invite via SES",
			slog.String("email", to),
			slog.Any("error", err))
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("link invite sent",
		slog.String("email", to),
		slog.String("message_id", *result.MessageId))

	return nil
}
