package onlinelookup

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

type fakeLookup struct {
	delta *MetadataDelta
	err   error
}

func (f fakeLookup) Lookup(ctx context.Context, durationS float64, fingerprint string) (*MetadataDelta, error) {
	return f.delta, f.err
}

func TestDisabledLookupAlwaysFails(t *testing.T) {
	var l Lookup = Disabled{}
	delta, err := l.Lookup(context.Background(), 123, "AQAB")
	require.Nil(t, delta)
	require.Error(t, err)
}

func TestClientLookupRejectsEmptyClientID(t *testing.T) {
	c := New("")
	delta, err := c.Lookup(context.Background(), 123, "AQAB")
	require.Nil(t, delta)
	require.Error(t, err)
}

func TestFakeLookupSatisfiesInterface(t *testing.T) {
	var l Lookup = fakeLookup{delta: &MetadataDelta{Title: "Song", Artist: "Band"}}
	delta, err := l.Lookup(context.Background(), 60, "AQAB")
	require.NoError(t, err)
	require.Equal(t, "Song", delta.Title)
}
