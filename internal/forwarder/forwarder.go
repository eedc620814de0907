// Package forwarder drives the ingestion loop: poll every account for
// unseen messages, deliver a summary plus attachments for each, and
// flag the message seen only after the summary went out.
package forwarder

import (
	"context"
	"log/slog"
	"time"

	"github.com/senoth99/mforwarder/internal/mailparse"
	"github.com/senoth99/mforwarder/internal/receiver"
	"github.com/senoth99/mforwarder/internal/summary"
	"github.com/senoth99/mforwarder/internal/watchdog"
)

// Sender delivers notifications and documents to the chat.
type Sender interface {
	SendMessage(text string) error
	SendDocument(filename, contentType string, data []byte) error
}

// Account pairs a mailbox capability with its identity.
type Account struct {
	Name     string
	Username string
	Mailbox  receiver.Mailbox
}

// Forwarder polls all accounts on a fixed interval.
type Forwarder struct {
	accounts []Account
	sender   Sender
	watchdog *watchdog.Watchdog // may be nil
	interval time.Duration
	logger   *slog.Logger
}

// New creates a Forwarder. A nil watchdog disables availability checks.
func New(accounts []Account, sender Sender, dog *watchdog.Watchdog, interval time.Duration, logger *slog.Logger) *Forwarder {
	return &Forwarder{
		accounts: accounts,
		sender:   sender,
		watchdog: dog,
		interval: interval,
		logger:   logger,
	}
}

// Run polls immediately, then on the interval until ctx is cancelled.
func (f *Forwarder) Run(ctx context.Context) {
	f.logger.Info("starting forwarder",
		"accounts", len(f.accounts),
		"interval", f.interval,
	)

	f.poll()

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			f.logger.Info("forwarder stopped")
			return
		case <-ticker.C:
			f.poll()
		}
	}
}

// poll runs one cycle. A failure in one account never blocks the rest.
func (f *Forwarder) poll() {
	total := 0
	for _, acct := range f.accounts {
		total += f.processAccount(acct)
	}
	f.logger.Info("poll cycle finished", "processed", total)

	if f.watchdog != nil {
		f.watchdog.Tick()
	}
}

// processAccount handles every unseen message of one account and
// returns how many were delivered. Per-message failures are logged and
// skipped; the message stays unseen and is retried next cycle.
func (f *Forwarder) processAccount(acct Account) int {
	session, err := acct.Mailbox.Open()
	if err != nil {
		f.logger.Error("mailbox open failed", "account", acct.Name, "error", err)
		return 0
	}
	defer func() {
		if err := session.Close(); err != nil {
			f.logger.Warn("mailbox close failed", "account", acct.Name, "error", err)
		}
	}()

	uids, err := session.SearchUnseen()
	if err != nil {
		f.logger.Warn("unseen search failed", "account", acct.Name, "error", err)
		return 0
	}

	count := 0
	for _, uid := range uids {
		raw, err := session.Fetch(uid)
		if err != nil {
			f.logger.Warn("fetch failed", "account", acct.Name, "uid", uid, "error", err)
			continue
		}

		msg := mailparse.Parse(raw)
		text := summary.Build(msg, acct.Username)

		if err := f.sender.SendMessage(text); err != nil {
			// Leave the message unseen so the next cycle retries it.
			f.logger.Error("summary delivery failed", "account", acct.Name, "uid", uid, "error", err)
			continue
		}

		// Attachments are best-effort and never block the seen flag.
		for _, att := range mailparse.ExtractAttachments(msg) {
			if err := f.sender.SendDocument(att.Filename, att.ContentType, att.Data); err != nil {
				f.logger.Error("attachment delivery failed",
					"account", acct.Name,
					"uid", uid,
					"filename", att.Filename,
					"error", err,
				)
			}
		}

		if err := session.MarkSeen(uid); err != nil {
			f.logger.Error("mark seen failed", "account", acct.Name, "uid", uid, "error", err)
		}
		count++
	}

	if count > 0 {
		f.logger.Info("forwarded messages", "account", acct.Name, "count", count)
	}
	return count
}
