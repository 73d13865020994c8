package extract

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoPayload indicates the stripped response contains no structural opener.
var ErrNoPayload = errors.New("no structured payload found in response")

// errUnclosed is the internal truncation signal from the boundary scanner. It
// routes a candidate into the repair path and is never surfaced to callers.
var errUnclosed = errors.New("payload ends before its root container closes")

// UnrepairableError indicates the repair engine produced no parseable
// candidate for a truncated or malformed payload.
type UnrepairableError struct {
	Snippet string
}

func (e *UnrepairableError) Error() string {
	return fmt.Sprintf("payload could not be repaired (snippet: %s)", e.Snippet)
}

// MissingFieldsError indicates required fields remained unresolved after
// reconciliation and fallback.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("required fields missing after fallback: %s", strings.Join(e.Fields, ", "))
}
