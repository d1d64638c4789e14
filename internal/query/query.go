// Package query builds Gmail raw-search strings from structured filters.
// The resulting string is the provider's extended search grammar
// (e.g. "from:a@x.com has:attachment"), passed verbatim to X-GM-RAW.
package query

import "strings"

// SearchKeys is the closed set of recognized search operators, in the
// order they are emitted into the query string. Filters outside this set
// never reach the server.
var SearchKeys = []string{
	"from",
	"to",
	"subject",
	"label",
	"list",
	"filename",
	"has",
	"in",
	"is",
	"cc",
	"bcc",
	"after",
	"before",
	"older",
	"newer",
	"older_than",
	"newer_than",
	"size",
	"larger",
	"smaller",
	"rfc822msgid",
}

// Build assembles a raw search string from the given filters. Each
// recognized, non-empty key contributes " key:value" in SearchKeys order,
// independent of map iteration order. Unrecognized keys are ignored.
func Build(filters map[string]string) string {
	var b strings.Builder
	for _, key := range SearchKeys {
		value := filters[key]
		if value == "" {
			continue
		}
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(":")
		b.WriteString(value)
	}
	return b.String()
}

// HasAttachmentSince is the canned query behind attachment retrieval.
// The date must be in the provider's YYYY/MM/DD format.
func HasAttachmentSince(date string) string {
	return "has:attachment after:" + date
}
