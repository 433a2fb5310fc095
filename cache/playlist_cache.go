package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tunevault/logger"
	"tunevault/model"

	"github.com/redis/go-redis/v9"
)

// PlaylistCache keeps resolved-playlist projections in Redis so repeated
// reads skip the catalog join. Mutations invalidate; entries also expire.
// A nil cache (Redis unavailable) degrades to direct repository reads.
type PlaylistCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPlaylistCache creates a PlaylistCache. Returns nil when client is nil.
func NewPlaylistCache(client *redis.Client, ttl time.Duration) *PlaylistCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PlaylistCache{client: client, ttl: ttl}
}

func resolvedKey(playlistID int64) string {
	return fmt.Sprintf("playlist:resolved:%d", playlistID)
}

// GetResolved returns the cached projection, or nil on miss or error.
func (c *PlaylistCache) GetResolved(ctx context.Context, playlistID int64) *model.ResolvedPlaylist {
	if c == nil {
		return nil
	}

	data, err := c.client.Get(ctx, resolvedKey(playlistID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Warn("Failed to read playlist cache",
				logger.Int64("playlistId", playlistID), logger.ErrorField(err))
		}
		return nil
	}

	resolved := &model.ResolvedPlaylist{}
	if err := json.Unmarshal(data, resolved); err != nil {
		logger.Warn("Failed to decode cached playlist",
			logger.Int64("playlistId", playlistID), logger.ErrorField(err))
		return nil
	}
	return resolved
}

// SetResolved stores the projection. Errors are logged, never surfaced.
func (c *PlaylistCache) SetResolved(ctx context.Context, resolved *model.ResolvedPlaylist) {
	if c == nil || resolved == nil {
		return
	}

	data, err := json.Marshal(resolved)
	if err != nil {
		logger.Warn("Failed to encode playlist for cache",
			logger.Int64("playlistId", resolved.ID), logger.ErrorField(err))
		return
	}

	if err := c.client.Set(ctx, resolvedKey(resolved.ID), data, c.ttl).Err(); err != nil {
		logger.Warn("Failed to write playlist cache",
			logger.Int64("playlistId", resolved.ID), logger.ErrorField(err))
	}
}

// Invalidate drops the cached projection after a mutation.
func (c *PlaylistCache) Invalidate(ctx context.Context, playlistID int64) {
	if c == nil {
		return
	}
	if err := c.client.Del(ctx, resolvedKey(playlistID)).Err(); err != nil {
		logger.Warn("Failed to invalidate playlist cache",
			logger.Int64("playlistId", playlistID), logger.ErrorField(err))
	}
}
