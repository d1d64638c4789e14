package models

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// Attachment is one file extracted from an email, together with the
// envelope fields of the message that carried it. The content digests are
// computed once at construction and never change.
type Attachment struct {
	Filename  string
	Data      []byte
	FromAddr  string
	ToAddr    string
	Subject   string
	Timestamp time.Time
	MD5Sum    string
	SHA256    string
}

// NewAttachment builds an Attachment and computes its content digests.
// The payload is required; everything else may be empty.
func NewAttachment(filename string, data []byte, fromAddr, toAddr, subject string, timestamp time.Time) (*Attachment, error) {
	if len(data) == 0 {
		return nil, errors.New("attachment payload is empty")
	}

	md5sum := md5.Sum(data)
	sha := sha256.Sum256(data)

	return &Attachment{
		Filename:  filename,
		Data:      data,
		FromAddr:  fromAddr,
		ToAddr:    toAddr,
		Subject:   subject,
		Timestamp: timestamp,
		MD5Sum:    hex.EncodeToString(md5sum[:]),
		SHA256:    hex.EncodeToString(sha[:]),
	}, nil
}

func (a *Attachment) String() string {
	return a.Filename
}
