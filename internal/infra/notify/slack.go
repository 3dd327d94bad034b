package notify

import (
	"context"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// Ensure Slack implements domain.Notifier.
var _ domain.Notifier = (*Slack)(nil)

// Slack posts summaries to an incoming webhook.
type Slack struct {
	webhookURL string
}

// NewSlack creates a Slack notifier for the given webhook URL.
func NewSlack(webhookURL string) *Slack {
	return &Slack{webhookURL: webhookURL}
}

// Notify posts the message to the webhook. The subject is folded into
// the message body; webhooks have no subject line.
func (s *Slack) Notify(ctx context.Context, subject, message string) error {
	err := slack.PostWebhookContext(ctx, s.webhookURL, &slack.WebhookMessage{
		Text: subject + "\n" + message,
	})
	if err != nil {
		return fmt.Errorf("%w: post slack webhook: %v", domain.ErrTransient, err)
	}
	return nil
}
