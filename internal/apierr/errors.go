package apierr

import (
	"encoding/json"
	"fmt"
)

// Error is the typed error every enrichment stage returns. It carries enough
// structure for the Coordinator to count it by Kind and for the HTTP adapter
// to render it without re-parsing a message string.
type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Path    string `json:"path,omitempty"`
	Details string `json:"details,omitempty"`
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, e.Path)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// MarshalJSON keeps the Kind/Message/Path/Details shape stable across the
// error taxonomy regardless of future embedding.
func (e *Error) MarshalJSON() ([]byte, error) {
	type alias Error
	return json.Marshal((*alias)(e))
}

// New builds an Error of the given Kind for the given path.
func New(kind Kind, path, message string) *Error {
	return &Error{Kind: kind, Path: path, Message: message}
}

// Wrap annotates an underlying error with a Kind and path, preserving the
// original message as Details.
func Wrap(kind Kind, path string, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Path: path, Message: kind.defaultMessage(), Details: err.Error()}
}

func (k Kind) defaultMessage() string {
	switch k {
	case Io:
		return "I/O failure"
	case InvalidContainer:
		return "unrecognized container"
	case Decode:
		return "decode failed"
	case NoSamples:
		return "no samples to fingerprint"
	case TagRead:
		return "tag parsing failed"
	case Network:
		return "network request failed"
	case RateLimited:
		return "rate limited"
	case ClassifierInit:
		return "classifier models unavailable"
	case ClassifierRun:
		return "classifier inference failed"
	case Corrupt:
		return "store is corrupt"
	case Busy:
		return "a scan or classify run is already active"
	default:
		return "unknown error"
	}
}

// BusyErr builds the Busy error the Coordinator returns when a start_* call
// arrives while a run is already active.
func BusyErr() *Error {
	return &Error{Kind: Busy, Message: Busy.defaultMessage()}
}

// IsKind reports whether err is an *Error of the given Kind.
func IsKind(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
