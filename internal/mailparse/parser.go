package mailparse

import (
	"bytes"
	"io"
	"mime"

	"gmailgrab/internal/logging"
	"gmailgrab/internal/models"

	"github.com/emersion/go-imap"
	_ "github.com/emersion/go-message/charset"
	"github.com/emersion/go-message/mail"
	"github.com/google/uuid"
)

// Parse maps one raw fetch result onto a models.Email. The full message
// bytes are retained on the Email so attachments can be extracted later
// without another fetch.
func Parse(msg *imap.Message) (*models.Email, error) {
	section := &imap.BodySectionName{}
	r := msg.GetBody(section)
	if r == nil {
		return nil, io.EOF
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	mr, err := mail.CreateReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer func() { _ = mr.Close() }()

	email := &models.Email{
		SeqNum:  msg.SeqNum,
		Raw:     raw,
		TraceID: uuid.New().String(),
	}

	header := mr.Header

	email.FromAddr = addressOf(header, "From")
	email.ToAddr = addressOf(header, "To")

	// Decode Subject
	decodedSubject, err := DecodeHeader(header.Get("Subject"))
	if err != nil {
		logging.Log.WithField("trace_id", email.TraceID).Errorf("Error decoding subject: %v", err)
		decodedSubject = header.Get("Subject")
	}
	email.Subject = decodedSubject

	// A missing or malformed Date header leaves the timestamp zero
	if date, err := header.Date(); err == nil {
		email.Timestamp = date
	} else {
		logging.Log.WithField("trace_id", email.TraceID).Errorf("Error parsing date header: %v", err)
	}

	return email, nil
}

// ExtractAttachments walks every MIME part of the email and appends one
// Attachment per part carrying an attachment disposition, in walk order.
// Filenames on the ignore list are skipped. Unreadable or empty parts are
// skipped with a log instead of failing the whole message.
func ExtractAttachments(email *models.Email, ignore []string) error {
	mr, err := mail.CreateReader(bytes.NewReader(email.Raw))
	if err != nil {
		return err
	}
	defer func() { _ = mr.Close() }()

	locallog := logging.Log.WithField("trace_id", email.TraceID)

	for {
		p, err := mr.NextPart()
		if err == io.EOF {
			break
		} else if err != nil {
			return err
		}

		h, ok := p.Header.(*mail.AttachmentHeader)
		if !ok {
			continue
		}

		filename, err := h.Filename()
		if err != nil {
			locallog.Errorf("Error decoding attachment filename: %v", err)
		}

		if ignored(filename, ignore) {
			locallog.Debugf("Ignoring attachment: %s", filename)
			continue
		}

		data, err := io.ReadAll(p.Body)
		if err != nil {
			locallog.Errorf("Error reading attachment %s: %v", filename, err)
			continue
		}

		attachment, err := models.NewAttachment(filename, data, email.FromAddr, email.ToAddr, email.Subject, email.Timestamp)
		if err != nil {
			locallog.Debugf("Skipping attachment %s: %v", filename, err)
			continue
		}

		email.Attachments = append(email.Attachments, attachment)
	}

	return nil
}

func ignored(filename string, ignore []string) bool {
	for _, name := range ignore {
		if filename == name {
			return true
		}
	}
	return false
}

// addressOf returns the first address of the given header field, falling
// back to the raw header value when it does not parse as an address list.
func addressOf(header mail.Header, field string) string {
	if list, err := header.AddressList(field); err == nil && len(list) > 0 {
		return list[0].Address
	}
	return header.Get(field)
}

// DecodeHeader decodes MIME-encoded headers (e.g., "=?UTF-8?B?...?=") to plain text
func DecodeHeader(encoded string) (string, error) {
	decoder := new(mime.WordDecoder)
	decoded, err := decoder.DecodeHeader(encoded)
	if err != nil {
		return "", err
	}
	return decoded, nil
}
