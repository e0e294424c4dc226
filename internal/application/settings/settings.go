// Package settings defines application-level configuration data.
package settings

import "time"

// ClientConfig holds digest API client settings. The protocol defaults
// mirror the submission contract: one 90 second deadline over at most
// three attempts with a fixed one second backoff.
type ClientConfig struct {
	BaseURL         string `yaml:"base_url" kong:"help='Digest API base URL',default='http://localhost:8000'"`
	DeadlineSeconds int    `yaml:"deadline_seconds" kong:"help='Overall submission deadline in seconds',default='90'"`
	Attempts        int    `yaml:"attempts" kong:"help='Total attempts per submission',default='3'"`
	BackoffSeconds  int    `yaml:"backoff_seconds" kong:"help='Delay between attempts in seconds',default='1'"`
}

// Deadline returns the submission deadline as a duration.
func (c ClientConfig) Deadline() time.Duration {
	return time.Duration(c.DeadlineSeconds) * time.Second
}

// Backoff returns the inter-attempt delay as a duration.
func (c ClientConfig) Backoff() time.Duration {
	return time.Duration(c.BackoffSeconds) * time.Second
}

// AIConfig selects the digest generation provider used by serve mode.
type AIConfig struct {
	Provider  string `yaml:"provider" kong:"help='AI provider (none/anthropic/openai)',default='none'"`
	Model     string `yaml:"model" kong:"help='Model name'"`
	APIKey    string `yaml:"api_key" kong:"help='Provider API key'"`
	MaxTokens int    `yaml:"max_tokens" kong:"help='Response token budget',default='4000'"`
}

// ServerConfig holds companion server settings.
type ServerConfig struct {
	Addr         string `yaml:"addr" kong:"help='Listen address',default=':8000'"`
	MaxArticles  int    `yaml:"max_articles" kong:"help='Articles fetched per topic',default='15'"`
	FetchContent bool   `yaml:"fetch_content" kong:"help='Scrape article bodies for the prompt',default='true'"`
}

// KeyMapConfig defines the configuration for keybindings.
type KeyMapConfig struct {
	PrevPage string `yaml:"prev_page" kong:"help='Previous article page key',default='h'"`
	NextPage string `yaml:"next_page" kong:"help='Next article page key',default='l'"`
	Export   string `yaml:"export" kong:"help='Export digest to HTML key',default='e'"`
	Back     string `yaml:"back" kong:"help='Back to topic input key',default='esc'"`
	Quit     string `yaml:"quit" kong:"help='Quit key',default='q'"`
}

// ThemeConfig defines the color theme configuration.
type ThemeConfig struct {
	Accent string `yaml:"accent" kong:"help='Accent color',default='205'"`
	Muted  string `yaml:"muted" kong:"help='Muted text color',default='244'"`
}

// Settings represents the application configuration.
type Settings struct {
	Client      ClientConfig `yaml:"client" kong:"embed,prefix='client.'"`
	AI          AIConfig     `yaml:"ai" kong:"embed,prefix='ai.'"`
	Server      ServerConfig `yaml:"server" kong:"embed,prefix='server.'"`
	KeyMap      KeyMapConfig `yaml:"keymap" kong:"embed,prefix='keymap.'"`
	Theme       ThemeConfig  `yaml:"theme" kong:"embed,prefix='theme.'"`
	HistoryFile string       `yaml:"history_file" kong:"help='Submission history database path'"`
	ExportDir   string       `yaml:"export_dir" kong:"help='Directory for exported digest HTML files'"`
}
