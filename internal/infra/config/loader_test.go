package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.ConfigFileName), []byte(content), 0o644))
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"JIRA_API_HOST", "JIRA_USERNAME", "JIRA_TOKEN",
		"BITBUCKET_API_BASE_URL", "BITBUCKET_BASE_URL", "BITBUCKET_TOKEN",
		"GITHUB_TOKEN", "SLACK_WEBHOOK_URL",
	} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoader_Load_Defaults(t *testing.T) {
	clearEnv(t)
	loader := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir())

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "bitbucket", cfg.CodeHost)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, 14400, cfg.Cache.TTLSeconds)
}

func TestLoader_Load_LocalOverridesGlobal(t *testing.T) {
	clearEnv(t)
	globalDir := t.TempDir()
	workDir := t.TempDir()
	writeConfig(t, globalDir, `
[aws]
application = "global-app"
region = "eu-west-1"

[jira]
project = "PROJ"
`)
	writeConfig(t, workDir, `
[aws]
application = "local-app"
`)

	cfg, err := NewLoaderWithGlobalDir(workDir, globalDir).Load()

	require.NoError(t, err)
	assert.Equal(t, "local-app", cfg.AWS.Application, "local file wins")
	assert.Equal(t, "eu-west-1", cfg.AWS.Region, "global value survives when local is silent")
	assert.Equal(t, "PROJ", cfg.Jira.Project)
}

func TestLoader_Load_ListsAndNumbers(t *testing.T) {
	clearEnv(t)
	workDir := t.TempDir()
	writeConfig(t, workDir, `
[pause]
prefix = "dynamic"
skip = ["dynamic-demo"]

[resume]
statuses = ["In Progress", "Code Review"]
lookback_days = 7
`)

	cfg, err := NewLoaderWithGlobalDir(workDir, t.TempDir()).Load()

	require.NoError(t, err)
	assert.Equal(t, "dynamic", cfg.Pause.Prefix)
	assert.Equal(t, []string{"dynamic-demo"}, cfg.Pause.Skip)
	assert.Equal(t, []string{"In Progress", "Code Review"}, cfg.Resume.Statuses)
	assert.Equal(t, 7, cfg.Resume.LookbackDays)
	assert.Equal(t, 20, cfg.Resume.MaxResults, "default survives")
}

func TestLoader_Load_SecretsFromEnvOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIRA_USERNAME", "bot")
	t.Setenv("JIRA_TOKEN", "secret")
	t.Setenv("BITBUCKET_TOKEN", "bb-secret")
	t.Setenv("SLACK_WEBHOOK_URL", "https://hooks.slack.com/services/T/B/x")

	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir()).Load()

	require.NoError(t, err)
	assert.Equal(t, "bot", cfg.Jira.Username)
	assert.Equal(t, "secret", cfg.Jira.Token)
	assert.Equal(t, "bb-secret", cfg.Bitbucket.Token)
	assert.Equal(t, "https://hooks.slack.com/services/T/B/x", cfg.Notify.SlackWebhookURL)
}

func TestLoader_Load_EnvOverridesHosts(t *testing.T) {
	clearEnv(t)
	t.Setenv("JIRA_API_HOST", "https://jira.example.com")
	t.Setenv("BITBUCKET_API_BASE_URL", "https://api.example.com/2.0")

	cfg, err := NewLoaderWithGlobalDir(t.TempDir(), t.TempDir()).Load()

	require.NoError(t, err)
	assert.Equal(t, "https://jira.example.com", cfg.Jira.BaseURL)
	assert.Equal(t, "https://api.example.com/2.0", cfg.Bitbucket.APIBaseURL)
}

func TestLoader_Load_InvalidTOML(t *testing.T) {
	clearEnv(t)
	workDir := t.TempDir()
	writeConfig(t, workDir, "not [valid toml")

	_, err := NewLoaderWithGlobalDir(workDir, t.TempDir()).Load()

	require.ErrorIs(t, err, domain.ErrValidation)
}
