//go:build integration

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: go test -v -tags=integration ./internal/cache/...

func TestRedisCache_PublishAndRead(t *testing.T) {
	ctx := context.Background()

	c, err := NewRedisCache(ctx, Config{Addr: "localhost:6379", DB: 15, TTL: time.Minute})
	require.NoError(t, err, "Failed to connect to test redis")
	defer c.Close()

	miss, err := c.LatestSummary(ctx, "T1990")
	require.NoError(t, err)
	assert.Nil(t, miss)

	summary := &models.RunSummary{
		Season:      "T2025",
		RowsSeen:    4,
		RowsGraded:  3,
		RowsSkipped: 1,
		PicksGraded: map[string]int{"spread": 6, "total": 5},
		SkipReasons: map[string]int{"missing score(s)": 1},
	}
	require.NoError(t, c.Publish(ctx, summary, nil))
	defer c.client.Del(ctx, SummaryKey("T2025"))

	got, err := c.LatestSummary(ctx, "T2025")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, summary.PicksGraded, got.PicksGraded)
	assert.Equal(t, summary.SkipReasons, got.SkipReasons)

	ttl, err := c.client.TTL(ctx, SummaryKey("T2025")).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}
