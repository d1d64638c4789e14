package models

// MailboxInfo is one entry of the server's mailbox listing. Features are
// the listing attributes with their backslash prefix stripped, e.g.
// "HasNoChildren" or "Noselect".
type MailboxInfo struct {
	Name     string
	Features []string
}
