package samplesheet

import (
	"fmt"
	"strings"
)

// Error is a fatal samplesheet verdict. Its rendered text is the
// diagnostic contract that downstream pipeline users grep for, so the
// format here must not drift.
type Error struct {
	// Header marks a header-shape mismatch, which renders differently
	// and carries no offending line.
	Header bool

	Msg string

	// Context labels the raw text, e.g. "Line". Both must be set for
	// the second line to render.
	Context string
	Raw     string
}

func (e *Error) Error() string {
	if e.Header {
		return "ERROR: Please check samplesheet header -> " + e.Msg
	}

	out := "ERROR: Please check samplesheet -> " + e.Msg
	if e.Context != "" && strings.TrimSpace(e.Raw) != "" {
		out += fmt.Sprintf("\n%s: '%s'", e.Context, strings.TrimSpace(e.Raw))
	}

	return out
}

func lineError(msg, raw string) *Error {
	return &Error{Msg: msg, Context: "Line", Raw: raw}
}

func headerError(received []string) *Error {
	return &Error{
		Header: true,
		Msg:    fmt.Sprintf("%s != %s", strings.Join(received, ","), strings.Join(Header[:], ",")),
	}
}
