// Package session orchestrates the IMAP call sequences behind the public
// operations: select → raw search → bulk fetch → parse, plus mailbox
// listing and guarded deletion. A Session owns one connection, is fully
// synchronous and is not safe for concurrent use.
package session

import (
	"strings"
	"time"

	imapclient "gmailgrab/internal/imap"
	"gmailgrab/internal/logging"
	"gmailgrab/internal/mailparse"
	"gmailgrab/internal/models"
	"gmailgrab/internal/query"

	"github.com/sirupsen/logrus"
)

const (
	DefaultServer      = "imap.gmail.com:993"
	DefaultMailbox     = "INBOX"
	DefaultSafetyCount = 10

	utf8Capability = "UTF8=ACCEPT"
	trashLabel     = `\Trash`

	// Gmail's search grammar wants dates as YYYY/MM/DD
	dateLayout = "2006/01/02"
)

// Options configures a Session at open time.
type Options struct {
	Server            string
	Login             string
	Password          string
	IgnoreAttachments []string
	SafetyCount       int

	// Clock is used when computing relative date windows; tests inject a
	// fixed one. Defaults to time.Now.
	Clock func() time.Time
}

type Session struct {
	client      imapclient.Client
	log         *logrus.Entry
	ignoreList  []string
	safetyCount int
	clock       func() time.Time
}

// Open connects to the server, authenticates and enables optional
// extensions. Connection failures surface as *ConnectionError, rejected
// credentials as *AuthError. The caller owns the returned session and
// must release it with Logout.
func Open(client imapclient.Client, opts Options) (*Session, error) {
	server := opts.Server
	if server == "" {
		server = DefaultServer
	}
	safetyCount := opts.SafetyCount
	if safetyCount <= 0 {
		safetyCount = DefaultSafetyCount
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	log := logging.Log.WithField("server", server)

	log.Debug("Connecting to IMAP server")
	if err := client.Connect(server); err != nil {
		log.Errorf("Could not connect to the server: %v", err)
		return nil, &ConnectionError{Server: server, Err: err}
	}

	log.Debugf("Logging in as %s", opts.Login)
	if err := client.Login(opts.Login, opts.Password); err != nil {
		log.Errorf("Could not authenticate: %v", err)
		_ = client.Logout()
		return nil, &AuthError{User: opts.Login, Err: err}
	}

	s := &Session{
		client:      client,
		log:         log,
		ignoreList:  opts.IgnoreAttachments,
		safetyCount: safetyCount,
		clock:       clock,
	}
	s.enableExtensions()

	return s, nil
}

// enableExtensions turns on extended charset handling when the server
// offers it. Failures here are logged and ignored, never fatal.
func (s *Session) enableExtensions() {
	caps, err := s.client.Capabilities()
	if err != nil {
		s.log.Errorf("Could not read capabilities: %v", err)
		return
	}
	s.log.Debugf("Server advertises %d capabilities", len(caps))

	if !caps[utf8Capability] {
		return
	}
	if err := s.client.Enable(utf8Capability); err != nil {
		s.log.Errorf("Could not enable %s: %v", utf8Capability, err)
	}
}

// ListMailboxes returns the server's mailbox listing with the backslash
// prefix stripped from each listing attribute.
func (s *Session) ListMailboxes() ([]models.MailboxInfo, error) {
	raw, err := s.client.ListMailboxes()
	if err != nil {
		s.log.Errorf("Could not get list of mailboxes: %v", err)
		return nil, err
	}

	result := make([]models.MailboxInfo, 0, len(raw))
	for _, info := range raw {
		features := make([]string, 0, len(info.Attributes))
		for _, attr := range info.Attributes {
			features = append(features, strings.TrimPrefix(attr, `\`))
		}
		result = append(result, models.MailboxInfo{
			Name:     info.Name,
			Features: features,
		})
	}
	return result, nil
}

// Search selects the mailbox and runs a Gmail raw-search query, returning
// the matching message sequence numbers without transferring any bodies.
// A rejected selection yields an empty result and a logged error, not a
// returned one.
func (s *Session) Search(searchQuery, mailbox string, readOnly bool) ([]uint32, error) {
	if searchQuery == "" {
		return nil, ErrEmptyQuery
	}
	if mailbox == "" {
		return nil, ErrEmptyMailbox
	}

	ids, ok := s.selectAndSearch(searchQuery, mailbox, readOnly)
	if !ok {
		return nil, nil
	}
	return ids, nil
}

// SearchFetch is Search followed by one bulk fetch of all matched
// messages, returned in server order. Malformed fetch entries are skipped
// with a log instead of failing the call.
func (s *Session) SearchFetch(searchQuery, mailbox string, readOnly bool) ([]*models.Email, error) {
	if searchQuery == "" {
		return nil, ErrEmptyQuery
	}
	if mailbox == "" {
		return nil, ErrEmptyMailbox
	}

	ids, ok := s.selectAndSearch(searchQuery, mailbox, readOnly)
	if !ok || len(ids) == 0 {
		return nil, nil
	}
	return s.FetchEmails(ids)
}

// selectAndSearch selects the mailbox and issues the raw search. The
// boolean is false when the selection was rejected.
func (s *Session) selectAndSearch(searchQuery, mailbox string, readOnly bool) ([]uint32, bool) {
	s.log.Debugf("Selecting mailbox: %s", mailbox)
	status, err := s.client.SelectMailbox(mailbox, readOnly)
	if err != nil {
		s.log.Errorf("Could not select mailbox %s: %v", mailbox, err)
		return nil, false
	}
	s.log.Debugf("Selected %s, %d message(s)", mailbox, status.Messages)

	ids, err := s.client.RawSearch(searchQuery)
	if err != nil {
		s.log.Errorf("Search failed in %s: %v", mailbox, err)
		return nil, false
	}
	s.log.Debugf("Found %d mail(s)", len(ids))
	return ids, true
}

// AdvancedSearch builds a raw query from the recognized keyword filters
// (see query.SearchKeys) and searches INBOX read-only. Unrecognized keys
// never reach the server.
func (s *Session) AdvancedSearch(filters map[string]string) ([]uint32, error) {
	searchQuery := query.Build(filters)
	s.log.Debugf("Searching for%s", searchQuery)
	return s.Search(searchQuery, DefaultMailbox, true)
}

// AdvancedSearchFetch is AdvancedSearch with message bodies.
func (s *Session) AdvancedSearchFetch(filters map[string]string) ([]*models.Email, error) {
	searchQuery := query.Build(filters)
	s.log.Debugf("Searching for%s", searchQuery)
	return s.SearchFetch(searchQuery, DefaultMailbox, true)
}

// FetchEmails bulk-fetches the given sequence numbers from the currently
// selected mailbox and parses each valid entry into an Email, preserving
// server order.
func (s *Session) FetchEmails(seqNums []uint32) ([]*models.Email, error) {
	msgs, err := s.client.FetchMessages(seqNums)
	if err != nil {
		return nil, err
	}

	emails := make([]*models.Email, 0, len(msgs))
	for _, msg := range msgs {
		email, err := mailparse.Parse(msg)
		if err != nil {
			s.log.Errorf("Skipping malformed fetch entry %d: %v", msg.SeqNum, err)
			continue
		}
		emails = append(emails, email)
	}
	return emails, nil
}

// GetAttachmentsSince returns every attachment of every message in the
// mailbox that arrived after the given date (YYYY/MM/DD), flattened in
// server order. The mailbox is selected read-only and closed before
// returning.
func (s *Session) GetAttachmentsSince(date, mailbox string) ([]*models.Attachment, error) {
	if date == "" {
		return nil, ErrEmptyDate
	}
	if mailbox == "" {
		return nil, ErrEmptyMailbox
	}

	s.log.Debugf("Selecting mailbox: %s", mailbox)
	status, err := s.client.SelectMailbox(mailbox, true)
	if err != nil {
		s.log.Errorf("Could not select mailbox %s: %v", mailbox, err)
		return nil, err
	}
	s.log.Debugf("Selected %s, %d message(s)", mailbox, status.Messages)
	defer func() {
		if err := s.client.CloseMailbox(); err != nil {
			s.log.Errorf("Could not close mailbox %s: %v", mailbox, err)
		} else {
			s.log.Debugf("Closed mailbox %s", mailbox)
		}
	}()

	ids, err := s.client.RawSearch(query.HasAttachmentSince(date))
	if err != nil {
		return nil, err
	}
	s.log.Debugf("Found %d mail(s) since %s with attachments", len(ids), date)
	if len(ids) == 0 {
		return nil, nil
	}

	emails, err := s.FetchEmails(ids)
	if err != nil {
		return nil, err
	}

	var attachments []*models.Attachment
	for _, email := range emails {
		if err := mailparse.ExtractAttachments(email, s.ignoreList); err != nil {
			s.log.Errorf("Could not extract attachments from message %d: %v", email.SeqNum, err)
			continue
		}
		attachments = append(attachments, email.Attachments...)
	}
	s.log.Debugf("Found %d valid attachment(s) since %s", len(attachments), date)

	return attachments, nil
}

// GetAttachmentsForDays retrieves attachments from the last given number
// of days, computing the date window from the session clock.
func (s *Session) GetAttachmentsForDays(days int, mailbox string) ([]*models.Attachment, error) {
	date := s.clock().AddDate(0, 0, -days).Format(dateLayout)
	return s.GetAttachmentsSince(date, mailbox)
}

// DeleteOptions tunes a Delete call.
type DeleteOptions struct {
	// Expunge makes the deletion permanent immediately.
	Expunge bool
	// DisableSafety lifts the safety-count guard.
	DisableSafety bool
}

// Delete moves the given messages to the trash with one batched store,
// optionally expunging afterwards. An empty input returns (false, nil);
// a request exceeding the safety count with the guard active returns
// (false, ErrSafetyLimit) without contacting the server. True is returned
// only when every issued command succeeded.
func (s *Session) Delete(seqNums []uint32, opts DeleteOptions) (bool, error) {
	if len(seqNums) == 0 {
		s.log.Debug("No emails to delete")
		return false, nil
	}
	s.log.Debugf("Deleting %d mail(s)", len(seqNums))

	if len(seqNums) > s.safetyCount && !opts.DisableSafety {
		s.log.Warnf("Refusing to delete %d emails, safety count is %d", len(seqNums), s.safetyCount)
		return false, ErrSafetyLimit
	}

	if _, err := s.client.SelectMailbox(DefaultMailbox, false); err != nil {
		s.log.Errorf("Could not select mailbox %s: %v", DefaultMailbox, err)
		return false, err
	}

	if err := s.client.AddGmailLabels(seqNums, []string{trashLabel}); err != nil {
		s.log.Errorf("Could not trash %d message(s): %v", len(seqNums), err)
		return false, err
	}

	if opts.Expunge {
		if err := s.client.Expunge(); err != nil {
			s.log.Errorf("Could not expunge mailbox: %v", err)
			return false, err
		}
	}

	return true, nil
}

// CloseMailbox closes the currently selected mailbox.
func (s *Session) CloseMailbox() error {
	s.log.Debug("Closing mailbox")
	return s.client.CloseMailbox()
}

// Logout releases the connection. Callers should defer this right after a
// successful Open.
func (s *Session) Logout() error {
	s.log.Debug("Logging out")
	return s.client.Logout()
}
