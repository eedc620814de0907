package config

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v4"
)

// Config is the top-level application configuration.
type Config struct {
	LogLevel            string    `yaml:"log_level"`
	PollIntervalSeconds int       `yaml:"poll_interval_seconds"`
	Telegram            Telegram  `yaml:"telegram"`
	Accounts            []Account `yaml:"accounts"`
	Watchdog            *Watchdog `yaml:"watchdog"`
}

// Telegram identifies the destination chat.
type Telegram struct {
	BotToken string `yaml:"bot_token"`
	ChatID   string `yaml:"chat_id"`
}

// Account describes one monitored mailbox.
type Account struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Folder   string `yaml:"folder"`
	UseTLS   *bool  `yaml:"use_tls"`
}

// Watchdog configures the optional availability monitor.
type Watchdog struct {
	URL                  string `yaml:"url"`
	CheckIntervalSeconds int    `yaml:"check_interval_seconds"`
	DownMessage          string `yaml:"down_message"`
	UpMessage            string `yaml:"up_message"`
}

// PollInterval returns the mailbox poll interval, defaulting to 60s.
func (c *Config) PollInterval() time.Duration {
	if c.PollIntervalSeconds <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// Label returns the account name, falling back to the username.
func (a *Account) Label() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Username
}

// GetPort returns the IMAP port, defaulting to 993.
func (a *Account) GetPort() int {
	if a.Port <= 0 {
		return 993
	}
	return a.Port
}

// GetFolder returns the IMAP folder name, defaulting to "INBOX".
func (a *Account) GetFolder() string {
	if a.Folder == "" {
		return "INBOX"
	}
	return a.Folder
}

// TLS reports whether to use implicit TLS; unset means true.
func (a *Account) TLS() bool {
	return a.UseTLS == nil || *a.UseTLS
}

// CheckInterval returns the watchdog probe interval, defaulting to 5m.
func (w *Watchdog) CheckInterval() time.Duration {
	if w.CheckIntervalSeconds <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(w.CheckIntervalSeconds) * time.Second
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{
		LogLevel: "info",
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram.bot_token is required")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram.chat_id is required")
	}
	if len(c.Accounts) == 0 {
		return fmt.Errorf("at least one account is required")
	}
	for i, a := range c.Accounts {
		label := a.Name
		if label == "" {
			label = fmt.Sprintf("#%d", i)
		}
		if a.Host == "" {
			return fmt.Errorf("account %s: host is required", label)
		}
		if a.Username == "" {
			return fmt.Errorf("account %s: username is required", label)
		}
		if a.Password == "" {
			return fmt.Errorf("account %s: password is required", label)
		}
	}
	if c.Watchdog != nil && c.Watchdog.URL == "" {
		return fmt.Errorf("watchdog.url is required when watchdog is configured")
	}
	return nil
}
