package imap

import (
	"fmt"
	"time"

	"github.com/emersion/go-imap"
	"github.com/emersion/go-imap/client"
	"github.com/emersion/go-imap/responses"
)

type StandardClient struct {
	client  *client.Client
	timeout time.Duration
}

// NewStandardClient creates a new StandardClient with a default timeout of 30 seconds for IMAP operations
func NewStandardClient() *StandardClient {
	return &StandardClient{
		timeout: 30 * time.Second,
	}
}

// Connect establishes a secure connection to the IMAP server using TLS. It returns an error if the connection fails.
func (c *StandardClient) Connect(server string) error {
	cl, err := client.DialTLS(server, nil)
	if err != nil {
		return fmt.Errorf("IMAP connection error: %w", err)
	}
	c.client = cl
	return nil
}

// Login authenticates the user with the IMAP server using the provided username and password. It returns an error if authentication fails or if there is no active connection.
func (c *StandardClient) Login(user, password string) error {
	if c.client == nil {
		return fmt.Errorf("not connected")
	}
	return c.client.Login(user, password)
}

// Capabilities asks the server for the capability set it advertises.
func (c *StandardClient) Capabilities() (map[string]bool, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}
	return c.client.Capability()
}

// Enable issues an ENABLE command for the given capability (e.g.
// "UTF8=ACCEPT"). go-imap has no built-in ENABLE support, so the command
// is sent through Execute like the extension packages do.
func (c *StandardClient) Enable(capability string) error {
	if c.client == nil {
		return fmt.Errorf("not connected")
	}
	cmd := &enableCommand{Capability: capability}
	status, err := c.client.Execute(cmd, nil)
	if err != nil {
		return fmt.Errorf("ENABLE %s: %w", capability, err)
	}
	return status.Err()
}

// SelectMailbox selects the specified mailbox (e.g., "INBOX") for subsequent operations. Read-only selection leaves message flags untouched by fetches and forbids stores.
func (c *StandardClient) SelectMailbox(name string, readOnly bool) (*imap.MailboxStatus, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}
	return c.client.Select(name, readOnly)
}

// RawSearch runs a Gmail X-GM-RAW search with the given query string and
// returns the matching sequence numbers. The mailbox must be selected.
// The base SearchCriteria grammar cannot carry provider extensions, so
// the SEARCH command is assembled by hand and executed with the stock
// search-response collector.
func (c *StandardClient) RawSearch(query string) ([]uint32, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}

	cmd := &rawSearchCommand{Query: query}
	res := &responses.Search{}

	status, err := c.client.Execute(cmd, res)
	if err != nil {
		return nil, fmt.Errorf("raw search error: %w", err)
	}
	if err := status.Err(); err != nil {
		return nil, fmt.Errorf("raw search rejected: %w", err)
	}

	return res.Ids, nil
}

// FetchMessages retrieves the full bodies of all given sequence numbers in
// one fetch, in the order the server returns them. It returns an error if
// the fetch fails or there is no active connection.
func (c *StandardClient) FetchMessages(seqNums []uint32) ([]*imap.Message, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}
	if len(seqNums) == 0 {
		return nil, nil
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(seqNums...)

	section := &imap.BodySectionName{}
	items := []imap.FetchItem{section.FetchItem(), imap.FetchInternalDate, imap.FetchUid}

	prevTimeout := c.client.Timeout
	c.client.Timeout = c.timeout
	defer func() { c.client.Timeout = prevTimeout }()

	messages := make(chan *imap.Message, len(seqNums))
	done := make(chan error, 1)

	go func() {
		done <- c.client.Fetch(seqSet, items, messages)
	}()

	var result []*imap.Message
	for msg := range messages {
		result = append(result, msg)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("error fetching %d message(s): %w", len(seqNums), err)
	}

	return result, nil
}

// AddGmailLabels applies Gmail labels to all given sequence numbers with a
// single batched STORE +X-GM-LABELS command. Applying \Trash moves the
// messages to the trash.
func (c *StandardClient) AddGmailLabels(seqNums []uint32, labels []string) error {
	if c.client == nil {
		return fmt.Errorf("not connected")
	}
	if len(seqNums) == 0 || len(labels) == 0 {
		return nil
	}

	seqSet := new(imap.SeqSet)
	seqSet.AddNum(seqNums...)

	item := imap.StoreItem("+X-GM-LABELS")
	values := make([]interface{}, len(labels))
	for i, label := range labels {
		values[i] = imap.RawString(label)
	}

	return c.client.Store(seqSet, item, values, nil)
}

// Expunge permanently removes all messages marked \Deleted from the
// selected mailbox.
func (c *StandardClient) Expunge() error {
	if c.client == nil {
		return fmt.Errorf("not connected")
	}
	return c.client.Expunge(nil)
}

// ListMailboxes retrieves the server's full mailbox listing.
func (c *StandardClient) ListMailboxes() ([]*imap.MailboxInfo, error) {
	if c.client == nil {
		return nil, fmt.Errorf("not connected")
	}

	mailboxes := make(chan *imap.MailboxInfo, 10)
	done := make(chan error, 1)

	go func() {
		done <- c.client.List("", "*", mailboxes)
	}()

	var result []*imap.MailboxInfo
	for m := range mailboxes {
		result = append(result, m)
	}

	if err := <-done; err != nil {
		return nil, fmt.Errorf("error listing mailboxes: %w", err)
	}

	return result, nil
}

// CloseMailbox closes the currently selected mailbox. Closing also
// expunges when the mailbox was selected read-write, per the protocol.
func (c *StandardClient) CloseMailbox() error {
	if c.client == nil {
		return fmt.Errorf("not connected")
	}
	return c.client.Close()
}

// Logout logs out from the IMAP server and closes the connection. If there is no active connection, it simply returns nil.
func (c *StandardClient) Logout() error {
	if c.client == nil {
		return nil
	}
	return c.client.Logout()
}
