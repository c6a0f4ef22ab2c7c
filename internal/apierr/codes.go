// Package apierr implements the error taxonomy shared by every enrichment
// stage, the scan coordinator, and the HTTP adapter.
package apierr

import "net/http"

// Kind identifies the class of failure a pipeline stage reported.
type Kind string

const (
	// Io covers read/write failures against the target file or the store files.
	Io Kind = "IO"
	// InvalidContainer covers a file whose container format could not be
	// recognized at all.
	InvalidContainer Kind = "INVALID_CONTAINER"
	// Decode covers a recognized container that failed to yield PCM.
	Decode Kind = "DECODE"
	// NoSamples covers a fingerprinter invocation given empty input.
	NoSamples Kind = "NO_SAMPLES"
	// TagRead covers tag-parsing failure; always recoverable via filename
	// heuristics.
	TagRead Kind = "TAG_READ"
	// Network covers online-lookup transport failure; always recoverable via
	// local tags.
	Network Kind = "NETWORK"
	// RateLimited covers an online lookup throttled by the remote host.
	RateLimited Kind = "RATE_LIMITED"
	// ClassifierInit covers a missing or unloadable genre model.
	ClassifierInit Kind = "CLASSIFIER_INIT"
	// ClassifierRun covers an inference failure mid-classification.
	ClassifierRun Kind = "CLASSIFIER_RUN"
	// Corrupt covers a stored index or feature file that failed to parse.
	Corrupt Kind = "CORRUPT"
	// Busy covers a start_* call while a scan or classify run is active.
	Busy Kind = "BUSY"
)

// statusCodeMap maps each Kind to the HTTP status the serve adapter reports
// when a Kind escapes to the API boundary.
var statusCodeMap = map[Kind]int{
	Io:               http.StatusInternalServerError,
	InvalidContainer: http.StatusUnprocessableEntity,
	Decode:           http.StatusUnprocessableEntity,
	NoSamples:        http.StatusUnprocessableEntity,
	TagRead:          http.StatusOK,
	Network:          http.StatusBadGateway,
	RateLimited:      http.StatusTooManyRequests,
	ClassifierInit:   http.StatusOK,
	ClassifierRun:    http.StatusOK,
	Corrupt:          http.StatusConflict,
	Busy:             http.StatusConflict,
}

// StatusCode returns the HTTP status associated with a Kind, defaulting to
// 500 for any Kind not present in the map.
func (k Kind) StatusCode() int {
	if status, ok := statusCodeMap[k]; ok {
		return status
	}
	return http.StatusInternalServerError
}
