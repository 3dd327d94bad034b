package notify

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// fakeSES is a test double for the SES API subset.
type fakeSES struct {
	err error
	in  *sesv2.SendEmailInput
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.in = params
	return &sesv2.SendEmailOutput{}, f.err
}

func TestEmail_Notify(t *testing.T) {
	api := &fakeSES{}
	email := NewEmailWithAPI(api, "ops@example.com")

	err := email.Notify(context.Background(), "Environments paused", "dynamic-a, dynamic-b")

	require.NoError(t, err)
	require.NotNil(t, api.in)
	assert.Equal(t, "ops@example.com", aws.ToString(api.in.FromEmailAddress))
	assert.Equal(t, []string{"ops@example.com"}, api.in.Destination.ToAddresses)
	assert.Equal(t, "Environments paused", aws.ToString(api.in.Content.Simple.Subject.Data))
	assert.Equal(t, "dynamic-a, dynamic-b", aws.ToString(api.in.Content.Simple.Body.Text.Data))
}

func TestEmail_Notify_MapsErrors(t *testing.T) {
	api := &fakeSES{err: &smithy.GenericAPIError{Code: "AccessDeniedException", Message: "denied"}}
	email := NewEmailWithAPI(api, "ops@example.com")

	err := email.Notify(context.Background(), "subject", "message")

	require.ErrorIs(t, err, domain.ErrAuthentication)
}
