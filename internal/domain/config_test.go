package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.AWS.Application = "myapp"
	cfg.Jira.BaseURL = "https://jira.example.com"
	cfg.Jira.Username = "bot"
	cfg.Jira.Token = "secret"
	cfg.Jira.Project = "PROJ"
	cfg.Bitbucket.Workspace = "team"
	cfg.Bitbucket.Repository = "repo"
	return cfg
}

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "bitbucket", cfg.CodeHost)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, 4, cfg.Resume.LookbackDays)
	assert.Equal(t, "merged-but-open", cfg.Reconcile.Label)
	assert.Equal(t, 4*time.Hour, cfg.Cache.TTL())
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestConfig_ValidateTracker(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.ValidateTracker())

	missing := validConfig()
	missing.Jira.BaseURL = ""
	assert.ErrorIs(t, missing.ValidateTracker(), ErrValidation)

	noCreds := validConfig()
	noCreds.Jira.Token = ""
	assert.ErrorIs(t, noCreds.ValidateTracker(), ErrAuthentication)
}

func TestConfig_ValidateCodeHost(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.ValidateCodeHost())

	gh := validConfig()
	gh.CodeHost = "github"
	assert.ErrorIs(t, gh.ValidateCodeHost(), ErrValidation)
	gh.GitHub.Owner = "acme"
	gh.GitHub.Repository = "repo"
	require.NoError(t, gh.ValidateCodeHost())

	unknown := validConfig()
	unknown.CodeHost = "gitlab"
	assert.ErrorIs(t, unknown.ValidateCodeHost(), ErrCodeHostUnknown)

	incomplete := validConfig()
	incomplete.Bitbucket.Repository = ""
	assert.ErrorIs(t, incomplete.ValidateCodeHost(), ErrValidation)
}

func TestConfig_ValidateEnvironments(t *testing.T) {
	cfg := validConfig()
	require.NoError(t, cfg.ValidateEnvironments())

	cfg.AWS.Application = ""
	assert.ErrorIs(t, cfg.ValidateEnvironments(), ErrValidation)
}
