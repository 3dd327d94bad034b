// Package app provides the dependency injection container for the
// opsctl commands.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/beanstalk"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/bitbucket"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/config"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/ec2addr"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/github"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/jira"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/logging"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/notify"
	"github.com/duartqx/aws-devops-open-scripts/internal/infra/rediscache"
	"github.com/duartqx/aws-devops-open-scripts/internal/usecase"
)

// Container provides dependency injection for the application.
// It holds all port implementations and provides factory methods for
// use cases. Collaborators that are not configured stay nil; the
// commands that need them validate the configuration first.
type Container struct {
	// Ports (interfaces bound to implementations)
	Provider  domain.CloudProvider
	Tracker   domain.IssueTracker
	Host      domain.CodeHost
	Cache     domain.VariableCache
	Addresses domain.AddressManager
	Notifier  domain.Notifier
	Clock     domain.Clock

	// Pointer fields
	Logger *slog.Logger

	// Configuration
	Config *domain.Config
}

// New creates a new Container from the configuration found in the
// given directory.
func New(ctx context.Context, dir string) (*Container, error) {
	cfg, err := config.NewLoader(dir).Load()
	if err != nil {
		return nil, err
	}

	logger := logging.New(os.Stderr, cfg.Log.Level)

	awsCfg, err := loadAWSConfig(ctx, cfg.AWS.Region)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	c := &Container{
		Provider:  beanstalk.NewClient(awsCfg),
		Addresses: ec2addr.NewClient(awsCfg),
		Cache:     rediscache.New(cfg.Cache),
		Clock:     domain.RealClock{},
		Logger:    logger,
		Config:    cfg,
	}

	if cfg.ValidateTracker() == nil {
		tracker, err := jira.NewClient(cfg.Jira)
		if err != nil {
			return nil, err
		}
		c.Tracker = tracker
	}

	if cfg.ValidateCodeHost() == nil {
		switch cfg.CodeHost {
		case "bitbucket":
			c.Host = bitbucket.NewClient(cfg.Bitbucket)
		case "github":
			c.Host = github.NewClient(cfg.GitHub)
		}
	}

	c.Notifier = buildNotifier(awsCfg, cfg.Notify)

	return c, nil
}

// NewWithDeps creates a new Container with custom dependencies for
// testing.
func NewWithDeps(cfg *domain.Config, provider domain.CloudProvider, tracker domain.IssueTracker, host domain.CodeHost, clock domain.Clock, logger *slog.Logger) *Container {
	return &Container{
		Provider: provider,
		Tracker:  tracker,
		Host:     host,
		Clock:    clock,
		Logger:   logger,
		Config:   cfg,
	}
}

// loadAWSConfig builds the SDK configuration, preferring the explicit
// ACCESS_KEY_ID / SECRET_ACCESS_KEY pair the deployment jobs export and
// falling back to the SDK default chain.
func loadAWSConfig(ctx context.Context, region string) (awssdk.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{}
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}
	accessKey := os.Getenv("ACCESS_KEY_ID")
	secretKey := os.Getenv("SECRET_ACCESS_KEY")
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
		))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}

// buildNotifier assembles the configured notification channels.
// Returns nil when none are configured.
func buildNotifier(awsCfg awssdk.Config, cfg domain.NotifyConfig) domain.Notifier {
	var channels notify.Multi
	if cfg.EmailToFrom != "" {
		channels = append(channels, notify.NewEmail(awsCfg, cfg.EmailToFrom))
	}
	if cfg.SlackWebhookURL != "" {
		channels = append(channels, notify.NewSlack(cfg.SlackWebhookURL))
	}
	if len(channels) == 0 {
		return nil
	}
	return channels
}

// UseCase factory methods

// PauseEnvironmentsUseCase returns a new PauseEnvironments use case.
func (c *Container) PauseEnvironmentsUseCase() *usecase.PauseEnvironments {
	return usecase.NewPauseEnvironments(
		c.Provider, c.Notifier, c.Clock, c.Logger,
		c.Config.AWS.Application, c.Config.Pause.Prefix, c.Config.Pause.Skip,
	)
}

// ResumeEnvironmentsUseCase returns a new ResumeEnvironments use case.
func (c *Container) ResumeEnvironmentsUseCase() *usecase.ResumeEnvironments {
	return usecase.NewResumeEnvironments(
		c.Provider, c.Tracker, c.Notifier, c.Clock, c.Logger,
		c.Config.AWS.Application, c.Config.Jira.Project,
		c.Config.Resume.Statuses, c.Config.Resume.LookbackDays, c.Config.Resume.MaxResults,
	)
}

// ReconcileIssuesUseCase returns a new ReconcileIssues use case.
func (c *Container) ReconcileIssuesUseCase() *usecase.ReconcileIssues {
	return usecase.NewReconcileIssues(
		c.Tracker, c.Host, c.Logger,
		c.Config.Jira.Project, c.Config.Reconcile.JQL, c.Config.Reconcile.Label,
		c.Config.Reconcile.MaxResults,
	)
}

// DescribeVariablesUseCase returns a new DescribeVariables use case.
func (c *Container) DescribeVariablesUseCase() *usecase.DescribeVariables {
	return usecase.NewDescribeVariables(
		c.Provider, c.Cache, c.Logger,
		c.Config.AWS.Application, c.Config.Cache.TTL(),
	)
}

// AssignAddressUseCase returns a new AssignAddress use case.
func (c *Container) AssignAddressUseCase() *usecase.AssignAddress {
	return usecase.NewAssignAddress(c.Addresses)
}
