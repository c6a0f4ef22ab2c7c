// Package onlinelookup implements the optional AcoustID/MusicBrainz
// enrichment hook. The core pipeline depends only on the Lookup interface
// below, never on the concrete HTTP client, so it can be swapped for a
// testable in-process fake.
package onlinelookup

import (
	"context"
	"time"

	"github.com/zfogg/sonicindex/internal/apierr"
)

// MetadataDelta is what a successful lookup contributes on top of
// tag-based metadata.
type MetadataDelta struct {
	Title          string
	Artist         string
	OriginalArtist string
	OriginalTitle  string
}

// Lookup is the narrow interface the scan worker depends on. Client
// implements it against the real AcoustID/MusicBrainz web services; tests
// use a fake, and offline scans use Disabled.
type Lookup interface {
	Lookup(ctx context.Context, durationS float64, fingerprint string) (*MetadataDelta, error)
}

const (
	acoustidURL    = "https://api.acoustid.org/v2/lookup"
	requestTimeout = 10 * time.Second
	rateLimit      = 1 * time.Second
)

var _ Lookup = (*Client)(nil)

// New builds a Client for clientID whose limiter enforces one request per
// second per target host. The Client does no caching of its own.
func New(clientID string) *Client {
	return &Client{
		clientID: clientID,
		limiter:  newHostLimiter(rateLimit),
	}
}

// errLookupDisabled is returned by a nil-safe no-op lookup used when the
// operator supplied no client id or the scan is offline.
var errLookupDisabled = apierr.New(apierr.Network, "", "online lookup disabled")

// Disabled is a Lookup that always fails with Network/disabled. The
// coordinator substitutes it for offline scans and scans started without a
// client id, so callers never need a nil check.
type Disabled struct{}

func (Disabled) Lookup(ctx context.Context, durationS float64, fingerprint string) (*MetadataDelta, error) {
	return nil, errLookupDisabled
}
