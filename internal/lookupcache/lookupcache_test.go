package lookupcache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/zfogg/sonicindex/internal/onlinelookup"
)

func TestGetMissThenPutThenHit(t *testing.T) {
	c := New(10)

	_, ok := c.Get(context.Background(), "AQAB")
	require.False(t, ok)

	delta := &onlinelookup.MetadataDelta{Title: "Song", Artist: "Band"}
	c.Put(context.Background(), "AQAB", delta)

	got, ok := c.Get(context.Background(), "AQAB")
	require.True(t, ok)
	require.Equal(t, "Song", got.Title)

	stats := c.Stats()
	require.Equal(t, int64(1), stats.Hits)
	require.Equal(t, int64(1), stats.Misses)
	require.Equal(t, 1, stats.Entries)
}

func TestWithRedisEmptyURLIsNoop(t *testing.T) {
	c := New(10).WithRedis("")
	require.Nil(t, c.redis)
}

func TestWithRedisInvalidURLDegradesGracefully(t *testing.T) {
	c := New(10).WithRedis("not-a-valid-url")
	require.Nil(t, c.redis)
}

func TestNewFallsBackToDefaultCapacity(t *testing.T) {
	c := New(0)
	require.NotNil(t, c.recordings)
}
