package models

import (
	"fmt"
	"time"
)

// Email represents one fetched message. Raw keeps the full RFC 822 bytes
// so attachment extraction can walk the MIME tree on demand; Attachments
// stays empty until that happens.
type Email struct {
	SeqNum      uint32
	Subject     string
	FromAddr    string
	ToAddr      string
	Timestamp   time.Time
	TraceID     string
	Raw         []byte
	Attachments []*Attachment
}

func (e *Email) String() string {
	return fmt.Sprintf("[%s]", e.Subject)
}
