// Package receiver abstracts the mail store behind a small capability:
// open an authenticated session scoped to one folder, list unseen
// messages, fetch their raw bytes, and flag them seen.
package receiver

// Session is one authenticated, folder-scoped connection. The caller
// must Close it on every exit path.
type Session interface {
	// SearchUnseen lists the identifiers of messages not yet flagged
	// seen. Identifiers are unique within this session only.
	SearchUnseen() ([]uint32, error)

	// Fetch returns the raw RFC 5322 bytes of one message without
	// changing its flags.
	Fetch(uid uint32) ([]byte, error)

	// MarkSeen sets the seen flag on one message.
	MarkSeen(uid uint32) error

	// Close logs out and releases the connection.
	Close() error
}

// Mailbox opens sessions against one configured account.
type Mailbox interface {
	Open() (Session, error)
}
