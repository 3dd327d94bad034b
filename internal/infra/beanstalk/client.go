// Package beanstalk implements the cloud provider port on top of the
// Elastic Beanstalk API.
package beanstalk

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk"
	"github.com/aws/aws-sdk-go-v2/service/elasticbeanstalk/types"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/awserr"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/retry"
)

// variablesNamespace is the option namespace holding application
// environment variables.
const variablesNamespace = "aws:elasticbeanstalk:application:environment"

// API is the subset of the Elastic Beanstalk client used here.
type API interface {
	DescribeEnvironments(ctx context.Context, params *elasticbeanstalk.DescribeEnvironmentsInput, optFns ...func(*elasticbeanstalk.Options)) (*elasticbeanstalk.DescribeEnvironmentsOutput, error)
	TerminateEnvironment(ctx context.Context, params *elasticbeanstalk.TerminateEnvironmentInput, optFns ...func(*elasticbeanstalk.Options)) (*elasticbeanstalk.TerminateEnvironmentOutput, error)
	RebuildEnvironment(ctx context.Context, params *elasticbeanstalk.RebuildEnvironmentInput, optFns ...func(*elasticbeanstalk.Options)) (*elasticbeanstalk.RebuildEnvironmentOutput, error)
	DescribeConfigurationSettings(ctx context.Context, params *elasticbeanstalk.DescribeConfigurationSettingsInput, optFns ...func(*elasticbeanstalk.Options)) (*elasticbeanstalk.DescribeConfigurationSettingsOutput, error)
}

// Ensure Client implements domain.CloudProvider.
var _ domain.CloudProvider = (*Client)(nil)

// Client adapts the Elastic Beanstalk API to the CloudProvider port.
type Client struct {
	api API
}

// NewClient creates a Client from an AWS SDK configuration.
func NewClient(cfg aws.Config) *Client {
	return &Client{api: elasticbeanstalk.NewFromConfig(cfg)}
}

// NewClientWithAPI creates a Client with a custom API implementation.
// This is useful for testing.
func NewClientWithAPI(api API) *Client {
	return &Client{api: api}
}

// Environments fetches environment descriptors matching the query.
func (c *Client) Environments(ctx context.Context, query domain.EnvironmentQuery) ([]domain.Environment, error) {
	input := &elasticbeanstalk.DescribeEnvironmentsInput{}
	if query.Application != "" {
		input.ApplicationName = aws.String(query.Application)
	}
	if len(query.Names) > 0 {
		input.EnvironmentNames = query.Names
	}
	if !query.IncludeTerminatedSince.IsZero() {
		input.IncludeDeleted = aws.Bool(true)
		input.IncludedDeletedBackTo = aws.Time(query.IncludeTerminatedSince)
	}

	var out *elasticbeanstalk.DescribeEnvironmentsOutput
	err := retry.Do(ctx, retry.DefaultBackoff, func() error {
		var callErr error
		out, callErr = c.api.DescribeEnvironments(ctx, input)
		return awserr.Map(callErr)
	})
	if err != nil {
		return nil, fmt.Errorf("describe environments: %w", err)
	}

	envs := make([]domain.Environment, 0, len(out.Environments))
	for _, desc := range out.Environments {
		envs = append(envs, convertEnvironment(desc))
	}
	return envs, nil
}

// TerminateEnvironment pauses a running environment.
func (c *Client) TerminateEnvironment(ctx context.Context, env domain.Environment) error {
	err := retry.Do(ctx, retry.DefaultBackoff, func() error {
		_, callErr := c.api.TerminateEnvironment(ctx, &elasticbeanstalk.TerminateEnvironmentInput{
			EnvironmentId:   aws.String(env.ID),
			EnvironmentName: aws.String(env.Name),
		})
		return awserr.Map(callErr)
	})
	if err != nil {
		return fmt.Errorf("terminate environment %s: %w", env.Name, err)
	}
	return nil
}

// RebuildEnvironment resumes a terminated environment.
func (c *Client) RebuildEnvironment(ctx context.Context, env domain.Environment) error {
	err := retry.Do(ctx, retry.DefaultBackoff, func() error {
		_, callErr := c.api.RebuildEnvironment(ctx, &elasticbeanstalk.RebuildEnvironmentInput{
			EnvironmentId:   aws.String(env.ID),
			EnvironmentName: aws.String(env.Name),
		})
		return awserr.Map(callErr)
	})
	if err != nil {
		return fmt.Errorf("rebuild environment %s: %w", env.Name, err)
	}
	return nil
}

// EnvironmentVariables returns the application environment settings of
// an environment.
func (c *Client) EnvironmentVariables(ctx context.Context, envName, appName string) (map[string]string, error) {
	var out *elasticbeanstalk.DescribeConfigurationSettingsOutput
	err := retry.Do(ctx, retry.DefaultBackoff, func() error {
		var callErr error
		out, callErr = c.api.DescribeConfigurationSettings(ctx, &elasticbeanstalk.DescribeConfigurationSettingsInput{
			ApplicationName: aws.String(appName),
			EnvironmentName: aws.String(envName),
		})
		return awserr.Map(callErr)
	})
	if err != nil {
		return nil, fmt.Errorf("describe configuration settings for %s: %w", envName, err)
	}

	if len(out.ConfigurationSettings) == 0 {
		return nil, fmt.Errorf("environment %s: %w", envName, domain.ErrNotFound)
	}

	vars := make(map[string]string)
	for _, opt := range out.ConfigurationSettings[0].OptionSettings {
		if aws.ToString(opt.Namespace) != variablesNamespace {
			continue
		}
		vars[aws.ToString(opt.OptionName)] = aws.ToString(opt.Value)
	}
	return vars, nil
}

// convertEnvironment converts a Beanstalk descriptor to the domain model.
func convertEnvironment(desc types.EnvironmentDescription) domain.Environment {
	env := domain.Environment{
		ID:          aws.ToString(desc.EnvironmentId),
		Name:        aws.ToString(desc.EnvironmentName),
		Application: aws.ToString(desc.ApplicationName),
		Health:      string(desc.Health),
		State:       convertStatus(desc.Status),
	}
	if desc.DateCreated != nil {
		env.CreatedAt = *desc.DateCreated
	}
	return env
}

// convertStatus maps Beanstalk statuses onto lifecycle states.
func convertStatus(status types.EnvironmentStatus) domain.EnvironmentState {
	switch status {
	case types.EnvironmentStatusReady:
		return domain.StateRunning
	case types.EnvironmentStatusLaunching:
		return domain.StateLaunching
	case types.EnvironmentStatusUpdating:
		return domain.StateUpdating
	case types.EnvironmentStatusTerminating:
		return domain.StateTerminating
	case types.EnvironmentStatusTerminated:
		return domain.StateTerminated
	default:
		return domain.StateUnknown
	}
}
