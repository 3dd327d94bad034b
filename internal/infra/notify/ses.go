// Package notify delivers batch run summaries by email and Slack.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/awserr"
)

// SESAPI is the subset of the SES client used here.
type SESAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

// Ensure Email implements domain.Notifier.
var _ domain.Notifier = (*Email)(nil)

// Email sends summaries via Simple Email Service. The original setup
// mails the operations address from itself, so sender and recipient are
// the same.
type Email struct {
	api    SESAPI
	toFrom string
}

// NewEmail creates an Email notifier from an AWS SDK configuration.
func NewEmail(cfg aws.Config, toFrom string) *Email {
	return &Email{api: sesv2.NewFromConfig(cfg), toFrom: toFrom}
}

// NewEmailWithAPI creates an Email notifier with a custom API
// implementation. This is useful for testing.
func NewEmailWithAPI(api SESAPI, toFrom string) *Email {
	return &Email{api: api, toFrom: toFrom}
}

// Notify sends a plain-text email.
func (e *Email) Notify(ctx context.Context, subject, message string) error {
	_, err := e.api.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(e.toFrom),
		Destination: &sestypes.Destination{
			ToAddresses: []string{e.toFrom},
		},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(subject)},
				Body: &sestypes.Body{
					Text: &sestypes.Content{Data: aws.String(message)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email: %w", awserr.Map(err))
	}
	return nil
}
