package notify

import (
	"context"
	"errors"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// Ensure Multi implements domain.Notifier.
var _ domain.Notifier = (Multi)(nil)

// Multi fans a notification out to every configured channel. A failing
// channel does not stop the others.
type Multi []domain.Notifier

// Notify delivers to all channels and joins their errors.
func (m Multi) Notify(ctx context.Context, subject, message string) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, subject, message); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
