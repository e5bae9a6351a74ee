package controllers

import (
	"context"
	"fmt"
	"log"
	"time"

	"PlayoffPredictor/cache"
)

const (
	leaderboardCachePrefix = "leaderboard:"
	leaderboardCacheTTL    = 60 * time.Second
)

func leaderboardCacheKey(groupID uint) string {
	return fmt.Sprintf("%sgroup:%d", leaderboardCachePrefix, groupID)
}

// invalidateLeaderboard drops one group's cached standings, e.g. after a
// membership change.
func (server *Server) invalidateLeaderboard(ctx context.Context, groupID uint) {
	if err := cache.Delete(ctx, leaderboardCacheKey(groupID)); err != nil {
		log.Printf("cache invalidation failed for group %d: %v", groupID, err)
	}
}

// invalidateLeaderboards drops every cached leaderboard. Called when a
// result lands, since one result changes every group's standings at once.
func (server *Server) invalidateLeaderboards(ctx context.Context) {
	if err := cache.DeleteByPrefix(ctx, leaderboardCachePrefix); err != nil {
		log.Printf("cache invalidation failed: %v", err)
	}
}
