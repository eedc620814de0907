package receiver

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"

	"github.com/emersion/go-imap/v2"
	"github.com/emersion/go-imap/v2/imapclient"
)

// IMAPMailbox opens sessions against one IMAP account and folder.
type IMAPMailbox struct {
	host     string
	port     int
	username string
	password string
	useTLS   bool
	folder   string
	logger   *slog.Logger
}

// NewIMAP creates a mailbox for the given account.
func NewIMAP(host string, port int, username, password string, useTLS bool, folder string, logger *slog.Logger) *IMAPMailbox {
	if folder == "" {
		folder = "INBOX"
	}
	return &IMAPMailbox{
		host:     host,
		port:     port,
		username: username,
		password: password,
		useTLS:   useTLS,
		folder:   folder,
		logger:   logger,
	}
}

// Open dials the server, authenticates and selects the folder.
func (m *IMAPMailbox) Open() (Session, error) {
	addr := net.JoinHostPort(m.host, fmt.Sprintf("%d", m.port))

	var client *imapclient.Client
	var err error

	if m.useTLS {
		client, err = imapclient.DialTLS(addr, &imapclient.Options{
			TLSConfig: &tls.Config{ServerName: m.host},
		})
	} else {
		client, err = imapclient.DialInsecure(addr, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("imap connect %s: %w", addr, err)
	}

	if err := client.Login(m.username, m.password).Wait(); err != nil {
		client.Close()
		return nil, fmt.Errorf("imap login %s: %w", m.username, err)
	}

	if _, err := client.Select(m.folder, nil).Wait(); err != nil {
		_ = client.Logout().Wait()
		client.Close()
		return nil, fmt.Errorf("imap select %s: %w", m.folder, err)
	}

	m.logger.Debug("imap session opened", "host", m.host, "folder", m.folder)
	return &imapSession{client: client}, nil
}

type imapSession struct {
	client *imapclient.Client
}

func (s *imapSession) SearchUnseen() ([]uint32, error) {
	criteria := &imap.SearchCriteria{
		NotFlag: []imap.Flag{imap.FlagSeen},
	}
	searchData, err := s.client.UIDSearch(criteria, nil).Wait()
	if err != nil {
		return nil, fmt.Errorf("imap search unseen: %w", err)
	}

	uids := searchData.AllUIDs()
	out := make([]uint32, len(uids))
	for i, uid := range uids {
		out[i] = uint32(uid)
	}
	return out, nil
}

func (s *imapSession) Fetch(uid uint32) ([]byte, error) {
	uidSet := imap.UIDSetNum(imap.UID(uid))

	// Peek so that fetching alone never flips the seen flag.
	bodySection := &imap.FetchItemBodySection{Peek: true}
	fetchOptions := &imap.FetchOptions{
		UID:         true,
		BodySection: []*imap.FetchItemBodySection{bodySection},
	}

	buffers, err := s.client.Fetch(uidSet, fetchOptions).Collect()
	if err != nil {
		return nil, fmt.Errorf("imap fetch %d: %w", uid, err)
	}
	if len(buffers) == 0 {
		return nil, fmt.Errorf("imap fetch %d: no data returned", uid)
	}

	raw := buffers[0].FindBodySection(bodySection)
	if len(raw) == 0 {
		return nil, fmt.Errorf("imap fetch %d: empty body section", uid)
	}
	return raw, nil
}

func (s *imapSession) MarkSeen(uid uint32) error {
	uidSet := imap.UIDSetNum(imap.UID(uid))
	cmd := s.client.Store(uidSet, &imap.StoreFlags{
		Op:     imap.StoreFlagsAdd,
		Silent: true,
		Flags:  []imap.Flag{imap.FlagSeen},
	}, nil)
	if err := cmd.Close(); err != nil {
		return fmt.Errorf("imap mark seen %d: %w", uid, err)
	}
	return nil
}

func (s *imapSession) Close() error {
	err := s.client.Logout().Wait()
	s.client.Close()
	return err
}
