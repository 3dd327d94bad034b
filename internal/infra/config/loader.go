// Package config provides configuration loading functionality.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

// Loader loads configuration from TOML files and resolves credentials
// from environment variables.
type Loader struct {
	workDir       string // Directory holding the local opsctl.toml
	globalConfDir string // Global config directory (e.g. ~/.config/opsctl)
}

// NewLoader creates a new Loader rooted at the working directory.
func NewLoader(workDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: defaultGlobalConfigDir(),
	}
}

// NewLoaderWithGlobalDir creates a new Loader with a custom global
// config directory. This is useful for testing.
func NewLoaderWithGlobalDir(workDir, globalConfDir string) *Loader {
	return &Loader{
		workDir:       workDir,
		globalConfDir: globalConfDir,
	}
}

// defaultGlobalConfigDir returns the default global config directory.
func defaultGlobalConfigDir() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "opsctl")
}

// Load returns the merged configuration (local over global over
// defaults) with credentials resolved from the environment.
func (l *Loader) Load() (*domain.Config, error) {
	base := domain.NewDefaultConfig()

	if l.globalConfDir != "" {
		global, err := l.loadFile(filepath.Join(l.globalConfDir, domain.ConfigFileName))
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
		if global != nil {
			mergeConfigs(base, global)
		}
	}

	local, err := l.loadFile(filepath.Join(l.workDir, domain.ConfigFileName))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if local != nil {
		mergeConfigs(base, local)
	}

	applyEnv(base)
	return base, nil
}

// loadFile parses a single TOML config file.
func (l *Loader) loadFile(path string) (*domain.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg domain.Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", domain.ErrValidation, path, err)
	}
	return &cfg, nil
}

// mergeConfigs overlays non-zero fields of src onto dst.
func mergeConfigs(dst, src *domain.Config) {
	mergeString(&dst.CodeHost, src.CodeHost)
	mergeString(&dst.AWS.Region, src.AWS.Region)
	mergeString(&dst.AWS.Application, src.AWS.Application)
	mergeString(&dst.Jira.BaseURL, src.Jira.BaseURL)
	mergeString(&dst.Jira.Project, src.Jira.Project)
	mergeString(&dst.Bitbucket.APIBaseURL, src.Bitbucket.APIBaseURL)
	mergeString(&dst.Bitbucket.WebBaseURL, src.Bitbucket.WebBaseURL)
	mergeString(&dst.Bitbucket.Workspace, src.Bitbucket.Workspace)
	mergeString(&dst.Bitbucket.Repository, src.Bitbucket.Repository)
	mergeString(&dst.GitHub.Owner, src.GitHub.Owner)
	mergeString(&dst.GitHub.Repository, src.GitHub.Repository)
	mergeString(&dst.Pause.Prefix, src.Pause.Prefix)
	mergeString(&dst.Reconcile.JQL, src.Reconcile.JQL)
	mergeString(&dst.Reconcile.Label, src.Reconcile.Label)
	mergeString(&dst.Cache.Addr, src.Cache.Addr)
	mergeString(&dst.Notify.EmailToFrom, src.Notify.EmailToFrom)
	mergeString(&dst.Log.Level, src.Log.Level)
	if len(src.Pause.Skip) > 0 {
		dst.Pause.Skip = src.Pause.Skip
	}
	if len(src.Resume.Statuses) > 0 {
		dst.Resume.Statuses = src.Resume.Statuses
	}
	if src.Resume.LookbackDays > 0 {
		dst.Resume.LookbackDays = src.Resume.LookbackDays
	}
	if src.Resume.MaxResults > 0 {
		dst.Resume.MaxResults = src.Resume.MaxResults
	}
	if src.Reconcile.MaxResults > 0 {
		dst.Reconcile.MaxResults = src.Reconcile.MaxResults
	}
	if src.Cache.DB > 0 {
		dst.Cache.DB = src.Cache.DB
	}
	if src.Cache.TTLSeconds > 0 {
		dst.Cache.TTLSeconds = src.Cache.TTLSeconds
	}
}

func mergeString(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}

// applyEnv resolves credentials and environment overrides. Secrets are
// never read from config files.
func applyEnv(cfg *domain.Config) {
	if v := os.Getenv("JIRA_API_HOST"); v != "" {
		cfg.Jira.BaseURL = v
	}
	cfg.Jira.Username = os.Getenv("JIRA_USERNAME")
	cfg.Jira.Token = os.Getenv("JIRA_TOKEN")
	if v := os.Getenv("BITBUCKET_API_BASE_URL"); v != "" {
		cfg.Bitbucket.APIBaseURL = v
	}
	if v := os.Getenv("BITBUCKET_BASE_URL"); v != "" {
		cfg.Bitbucket.WebBaseURL = v
	}
	cfg.Bitbucket.Token = os.Getenv("BITBUCKET_TOKEN")
	cfg.GitHub.Token = os.Getenv("GITHUB_TOKEN")
	cfg.Notify.SlackWebhookURL = os.Getenv("SLACK_WEBHOOK_URL")
}
