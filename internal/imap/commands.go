package imap

import (
	"github.com/emersion/go-imap"
)

// rawSearchCommand is a SEARCH command using Gmail's X-GM-RAW extension.
// The query travels as one quoted string, so the full web-UI search
// grammar is available.
type rawSearchCommand struct {
	Query string
}

func (cmd *rawSearchCommand) Command() *imap.Command {
	return &imap.Command{
		Name: "SEARCH",
		Arguments: []interface{}{
			imap.RawString("X-GM-RAW"),
			cmd.Query,
		},
	}
}

// enableCommand is an RFC 5161 ENABLE command for a single capability.
type enableCommand struct {
	Capability string
}

func (cmd *enableCommand) Command() *imap.Command {
	return &imap.Command{
		Name: "ENABLE",
		Arguments: []interface{}{
			imap.RawString(cmd.Capability),
		},
	}
}
