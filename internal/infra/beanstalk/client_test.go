package beanstalk

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	"github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// fakeAPI is a test double for the Beanstalk API subset.
// Fields are ordered to minimize memory padding.
type fakeAPI struct {
	describeOut  *elasticbeanstalk.DescribeEnvironmentsOutput
	describeErr  error
	settingsOut  *elasticbeanstalk.DescribeConfigurationSettingsOutput
	settingsErr  error
	terminateErr error
	rebuildErr   error
	describeIn   *elasticbeanstalk.DescribeEnvironmentsInput
	terminateIn  *elasticbeanstalk.TerminateEnvironmentInput
	rebuildIn    *elasticbeanstalk.RebuildEnvironmentInput
}

func (f *fakeAPI) DescribeEnvironments(_ context.Context, params *elasticbeanstalk.DescribeEnvironmentsInput, _ ...func(*elasticbeanstalk.Options)) (*elasticbeanstalk.DescribeEnvironmentsOutput, error) {
	f.describeIn = params
	return f.describeOut, f.describeErr
}

func (f *fakeAPI) TerminateEnvironment(_ context.Context, params *elasticbeanstalk.TerminateEnvironmentInput, _ ...func(*elasticbeanstalk.Options)) (*elasticbeanstalk.TerminateEnvironmentOutput, error) {
	f.terminateIn = params
	return &elasticbeanstalk.TerminateEnvironmentOutput{}, f.terminateErr
}

func (f *fakeAPI) RebuildEnvironment(_ context.Context, params *elasticbeanstalk.RebuildEnvironmentInput, _ ...func(*elasticbeanstalk.Options)) (*elasticbeanstalk.RebuildEnvironmentOutput, error) {
	f.rebuildIn = params
	return &elasticbeanstalk.RebuildEnvironmentOutput{}, f.rebuildErr
}

func (f *fakeAPI) DescribeConfigurationSettings(_ context.Context, _ *elasticbeanstalk.DescribeConfigurationSettingsInput, _ ...func(*elasticbeanstalk.Options)) (*elasticbeanstalk.DescribeConfigurationSettingsOutput, error) {
	return f.settingsOut, f.settingsErr
}

func TestClient_Environments(t *testing.T) {
	created := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	api := &fakeAPI{
		describeOut: &elasticbeanstalk.DescribeEnvironmentsOutput{
			Environments: []types.EnvironmentDescription{
				{
					EnvironmentId:   aws.String("e-abc"),
					EnvironmentName: aws.String("PROJ123"),
					ApplicationName: aws.String("myapp"),
					Status:          types.EnvironmentStatusReady,
					Health:          types.EnvironmentHealthGreen,
					DateCreated:     &created,
				},
				{
					EnvironmentName: aws.String("PROJ124"),
					Status:          types.EnvironmentStatusTerminated,
				},
			},
		},
	}
	client := NewClientWithAPI(api)

	since := time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC)
	envs, err := client.Environments(context.Background(), domain.EnvironmentQuery{
		Application:            "myapp",
		Names:                  []string{"PROJ123", "PROJ124"},
		IncludeTerminatedSince: since,
	})

	require.NoError(t, err)
	require.Len(t, envs, 2)
	assert.Equal(t, "e-abc", envs[0].ID)
	assert.Equal(t, domain.StateRunning, envs[0].State)
	assert.Equal(t, created, envs[0].CreatedAt)
	assert.Equal(t, domain.StateTerminated, envs[1].State)

	require.NotNil(t, api.describeIn)
	assert.Equal(t, "myapp", aws.ToString(api.describeIn.ApplicationName))
	assert.True(t, aws.ToBool(api.describeIn.IncludeDeleted))
	assert.Equal(t, since, aws.ToTime(api.describeIn.IncludedDeletedBackTo))
}

func TestClient_Environments_NoLookback(t *testing.T) {
	api := &fakeAPI{describeOut: &elasticbeanstalk.DescribeEnvironmentsOutput{}}
	client := NewClientWithAPI(api)

	_, err := client.Environments(context.Background(), domain.EnvironmentQuery{Application: "myapp"})

	require.NoError(t, err)
	assert.Nil(t, api.describeIn.IncludeDeleted, "terminated environments excluded by default")
}

func TestClient_TerminateEnvironment(t *testing.T) {
	api := &fakeAPI{}
	client := NewClientWithAPI(api)

	err := client.TerminateEnvironment(context.Background(), domain.Environment{ID: "e-abc", Name: "PROJ123"})

	require.NoError(t, err)
	require.NotNil(t, api.terminateIn)
	assert.Equal(t, "e-abc", aws.ToString(api.terminateIn.EnvironmentId))
	assert.Equal(t, "PROJ123", aws.ToString(api.terminateIn.EnvironmentName))
}

func TestClient_RebuildEnvironment_MapsErrors(t *testing.T) {
	api := &fakeAPI{rebuildErr: &smithy.GenericAPIError{Code: "InvalidParameterValue", Message: "no such environment"}}
	client := NewClientWithAPI(api)

	err := client.RebuildEnvironment(context.Background(), domain.Environment{Name: "PROJ999"})

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_EnvironmentVariables(t *testing.T) {
	api := &fakeAPI{
		settingsOut: &elasticbeanstalk.DescribeConfigurationSettingsOutput{
			ConfigurationSettings: []types.ConfigurationSettingsDescription{
				{
					OptionSettings: []types.ConfigurationOptionSetting{
						{
							Namespace:  aws.String("aws:elasticbeanstalk:application:environment"),
							OptionName: aws.String("DATABASE_URL"),
							Value:      aws.String("postgres://db"),
						},
						{
							Namespace:  aws.String("aws:autoscaling:launchconfiguration"),
							OptionName: aws.String("InstanceType"),
							Value:      aws.String("t3.small"),
						},
					},
				},
			},
		},
	}
	client := NewClientWithAPI(api)

	vars, err := client.EnvironmentVariables(context.Background(), "PROJ123", "myapp")

	require.NoError(t, err)
	assert.Equal(t, map[string]string{"DATABASE_URL": "postgres://db"}, vars, "only the application namespace is returned")
}

func TestClient_EnvironmentVariables_NoSettings(t *testing.T) {
	api := &fakeAPI{settingsOut: &elasticbeanstalk.DescribeConfigurationSettingsOutput{}}
	client := NewClientWithAPI(api)

	_, err := client.EnvironmentVariables(context.Background(), "PROJ999", "myapp")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConvertStatus(t *testing.T) {
	assert.Equal(t, domain.StateRunning, convertStatus(types.EnvironmentStatusReady))
	assert.Equal(t, domain.StateLaunching, convertStatus(types.EnvironmentStatusLaunching))
	assert.Equal(t, domain.StateUpdating, convertStatus(types.EnvironmentStatusUpdating))
	assert.Equal(t, domain.StateTerminating, convertStatus(types.EnvironmentStatusTerminating))
	assert.Equal(t, domain.StateTerminated, convertStatus(types.EnvironmentStatusTerminated))
	assert.Equal(t, domain.StateUnknown, convertStatus(types.EnvironmentStatus("Weird")))
}
