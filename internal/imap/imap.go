package imap

import (
	"github.com/emersion/go-imap"
)

// Client abstracts the IMAP operations the session layer needs, so tests
// can substitute a scripted transport.
type Client interface {
	Connect(server string) error
	Login(user, password string) error
	Capabilities() (map[string]bool, error)
	Enable(capability string) error
	SelectMailbox(name string, readOnly bool) (*imap.MailboxStatus, error)
	RawSearch(query string) ([]uint32, error)
	FetchMessages(seqNums []uint32) ([]*imap.Message, error)
	AddGmailLabels(seqNums []uint32, labels []string) error
	Expunge() error
	ListMailboxes() ([]*imap.MailboxInfo, error)
	CloseMailbox() error
	Logout() error
}
