package database

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cached struct {
	Overall float64 `json:"overall"`
}

func newMiniredis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestJSONRoundTripWithTTL(t *testing.T) {
	mr, rdb := newMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, rdb, "score:abc", cached{Overall: 7.5}, time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("score:abc"))

	var got cached
	found, err := GetJSON(ctx, rdb, "score:abc", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, 7.5, got.Overall)

	mr.FastForward(2 * time.Minute)
	found, err = GetJSON(ctx, rdb, "score:abc", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetJSON_CorruptValue(t *testing.T) {
	mr, rdb := newMiniredis(t)
	require.NoError(t, mr.Set("score:bad", "{not json"))

	var got cached
	found, err := GetJSON(context.Background(), rdb, "score:bad", &got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestGetJSON_ServerDown(t *testing.T) {
	mr, rdb := newMiniredis(t)
	mr.Close()

	var got cached
	_, err := GetJSON(context.Background(), rdb, "score:abc", &got)
	assert.Error(t, err)
}
