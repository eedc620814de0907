package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

const validConfig = `
telegram:
  bot_token: "123:abc"
  chat_id: "42"
accounts:
  - name: personal
    host: imap.example.com
    username: user@example.com
    password: secret
`

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.PollInterval() != 60*time.Second {
		t.Errorf("PollInterval() = %v, want 60s", cfg.PollInterval())
	}

	acct := cfg.Accounts[0]
	if acct.GetPort() != 993 {
		t.Errorf("GetPort() = %d, want 993", acct.GetPort())
	}
	if acct.GetFolder() != "INBOX" {
		t.Errorf("GetFolder() = %q, want INBOX", acct.GetFolder())
	}
	if !acct.TLS() {
		t.Error("TLS() = false, want true by default")
	}
	if acct.Label() != "personal" {
		t.Errorf("Label() = %q, want personal", acct.Label())
	}
}

func TestLoad_ExplicitValues(t *testing.T) {
	cfg, err := Load(writeConfig(t, `
log_level: debug
poll_interval_seconds: 30
telegram:
  bot_token: "123:abc"
  chat_id: "42"
accounts:
  - host: mail.example.com
    port: 143
    username: u
    password: p
    folder: Archive
    use_tls: false
watchdog:
  url: https://svc.example/healthz
  check_interval_seconds: 120
`))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.PollInterval() != 30*time.Second {
		t.Errorf("PollInterval() = %v, want 30s", cfg.PollInterval())
	}
	acct := cfg.Accounts[0]
	if acct.GetPort() != 143 || acct.GetFolder() != "Archive" || acct.TLS() {
		t.Errorf("account = %+v: explicit values not honored", acct)
	}
	if acct.Label() != "u" {
		t.Errorf("Label() = %q, want username fallback", acct.Label())
	}
	if cfg.Watchdog == nil {
		t.Fatal("Watchdog = nil")
	}
	if cfg.Watchdog.CheckInterval() != 2*time.Minute {
		t.Errorf("CheckInterval() = %v, want 2m", cfg.Watchdog.CheckInterval())
	}
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			"missing bot token",
			`
telegram:
  chat_id: "42"
accounts:
  - host: h
    username: u
    password: p
`,
			"telegram.bot_token",
		},
		{
			"missing chat id",
			`
telegram:
  bot_token: "t"
accounts:
  - host: h
    username: u
    password: p
`,
			"telegram.chat_id",
		},
		{
			"no accounts",
			`
telegram:
  bot_token: "t"
  chat_id: "c"
`,
			"at least one account",
		},
		{
			"account missing host",
			`
telegram:
  bot_token: "t"
  chat_id: "c"
accounts:
  - name: broken
    username: u
    password: p
`,
			"account broken: host",
		},
		{
			"watchdog missing url",
			`
telegram:
  bot_token: "t"
  chat_id: "c"
accounts:
  - host: h
    username: u
    password: p
watchdog:
  check_interval_seconds: 60
`,
			"watchdog.url",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("Load() error = nil, want validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("Load() error = nil, want read error")
	}
}

func TestWatchdogInterval_Default(t *testing.T) {
	w := &Watchdog{URL: "https://svc.example"}
	if w.CheckInterval() != 5*time.Minute {
		t.Errorf("CheckInterval() = %v, want 5m", w.CheckInterval())
	}
}
