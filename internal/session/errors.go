package session

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyQuery is returned before any transport call when a search
	// is issued without a query string.
	ErrEmptyQuery = errors.New("search query must not be empty")

	// ErrEmptyMailbox is returned before any transport call when an
	// operation is issued without a mailbox name.
	ErrEmptyMailbox = errors.New("mailbox must not be empty")

	// ErrEmptyDate is returned when attachment retrieval is issued
	// without a date.
	ErrEmptyDate = errors.New("date must not be empty")

	// ErrSafetyLimit is returned when a delete request exceeds the
	// session's safety count and the guard is active. Callers that
	// really mean it can retry with DisableSafety.
	ErrSafetyLimit = errors.New("delete request exceeds safety count")
)

// ConnectionError reports that the IMAP server could not be reached.
type ConnectionError struct {
	Server string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("could not connect to %s: %v", e.Server, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// AuthError reports that the server rejected the credentials.
type AuthError struct {
	User string
	Err  error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("could not authenticate %s: %v", e.User, e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }
