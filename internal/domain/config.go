package domain

import (
	"fmt"
	"time"
)

// ConfigFileName is the name of the configuration file looked up in the
// working directory and the global config directory.
const ConfigFileName = "opsctl.toml"

// Config represents the application configuration. Credentials are
// never stored here; they come from environment variables resolved by
// the loader.
type Config struct {
	CodeHost  string          `toml:"code_host"` // "bitbucket" or "github"
	AWS       AWSConfig       `toml:"aws"`
	Jira      JiraConfig      `toml:"jira"`
	Bitbucket BitbucketConfig `toml:"bitbucket"`
	GitHub    GitHubConfig    `toml:"github"`
	Pause     PauseConfig     `toml:"pause"`
	Resume    ResumeConfig    `toml:"resume"`
	Reconcile ReconcileConfig `toml:"reconcile"`
	Cache     CacheConfig     `toml:"cache"`
	Notify    NotifyConfig    `toml:"notify"`
	Log       LogConfig       `toml:"log"`
}

// AWSConfig holds settings for the cloud provider from [aws].
type AWSConfig struct {
	Region      string `toml:"region"`
	Application string `toml:"application"` // Beanstalk application name
}

// JiraConfig holds issue tracker settings from [jira].
// Username and token come from JIRA_USERNAME / JIRA_TOKEN.
type JiraConfig struct {
	BaseURL  string `toml:"base_url"`
	Username string `toml:"-"`
	Token    string `toml:"-"`
	Project  string `toml:"project"`
}

// BitbucketConfig holds code host settings from [bitbucket].
// The token comes from BITBUCKET_TOKEN.
type BitbucketConfig struct {
	APIBaseURL string `toml:"api_base_url"`
	WebBaseURL string `toml:"web_base_url"`
	Workspace  string `toml:"workspace"`
	Repository string `toml:"repository"`
	Token      string `toml:"-"`
}

// GitHubConfig holds code host settings from [github].
// The token comes from GITHUB_TOKEN.
type GitHubConfig struct {
	Owner      string `toml:"owner"`
	Repository string `toml:"repository"`
	Token      string `toml:"-"`
}

// PauseConfig holds settings for the pause command from [pause].
type PauseConfig struct {
	Prefix string   `toml:"prefix"` // Only environments with this name prefix are dynamic
	Skip   []string `toml:"skip"`   // Environments never paused automatically
}

// ResumeConfig holds settings for the resume command from [resume].
type ResumeConfig struct {
	Statuses     []string `toml:"statuses"` // Jira statuses whose environments are resumed
	LookbackDays int      `toml:"lookback_days"`
	MaxResults   int      `toml:"max_results"`
}

// ReconcileConfig holds settings for the reconcile command from [reconcile].
type ReconcileConfig struct {
	JQL        string `toml:"jql"`   // Issue filter; defaults to open issues of the project
	Label      string `toml:"label"` // Label applied to merged-but-open issues
	MaxResults int    `toml:"max_results"`
}

// CacheConfig holds Redis cache settings from [cache].
type CacheConfig struct {
	Addr       string `toml:"addr"`
	DB         int    `toml:"db"`
	TTLSeconds int    `toml:"ttl_seconds"`
}

// TTL returns the cache expiry as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// NotifyConfig holds notification settings from [notify].
// The Slack webhook URL comes from SLACK_WEBHOOK_URL.
type NotifyConfig struct {
	EmailToFrom     string `toml:"email_to_from"` // SES sender and recipient (original uses one address)
	SlackWebhookURL string `toml:"-"`
}

// LogConfig holds logging settings from [log].
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// NewDefaultConfig returns the configuration used when no file exists.
func NewDefaultConfig() *Config {
	return &Config{
		CodeHost: "bitbucket",
		AWS: AWSConfig{
			Region: "us-east-1",
		},
		Bitbucket: BitbucketConfig{
			APIBaseURL: "https://api.bitbucket.org/2.0",
		},
		Resume: ResumeConfig{
			LookbackDays: 4,
			MaxResults:   20,
		},
		Reconcile: ReconcileConfig{
			Label:      "merged-but-open",
			MaxResults: 20,
		},
		Cache: CacheConfig{
			Addr:       "localhost:6379",
			DB:         15,
			TTLSeconds: 14400,
		},
		Log: LogConfig{Level: "info"},
	}
}

// ValidateTracker checks that the issue tracker is usable.
func (c *Config) ValidateTracker() error {
	if c.Jira.BaseURL == "" {
		return fmt.Errorf("%w: jira.base_url is required (or set JIRA_API_HOST)", ErrValidation)
	}
	if c.Jira.Username == "" || c.Jira.Token == "" {
		return fmt.Errorf("%w: JIRA_USERNAME and JIRA_TOKEN must be set", ErrAuthentication)
	}
	return nil
}

// ValidateCodeHost checks that the selected code host is usable.
func (c *Config) ValidateCodeHost() error {
	switch c.CodeHost {
	case "bitbucket":
		if c.Bitbucket.Workspace == "" || c.Bitbucket.Repository == "" {
			return fmt.Errorf("%w: bitbucket.workspace and bitbucket.repository are required", ErrValidation)
		}
	case "github":
		if c.GitHub.Owner == "" || c.GitHub.Repository == "" {
			return fmt.Errorf("%w: github.owner and github.repository are required", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: %q", ErrCodeHostUnknown, c.CodeHost)
	}
	return nil
}

// ValidateEnvironments checks settings shared by the environment
// lifecycle commands.
func (c *Config) ValidateEnvironments() error {
	if c.AWS.Application == "" {
		return fmt.Errorf("%w: aws.application is required", ErrValidation)
	}
	return nil
}
