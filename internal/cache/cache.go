// Package cache wraps go-redis with the view keys this service reads and
// invalidates: standings, schedule, and per-game result lookups. Grounded
// on the deleted DFS cache service's Set/Get/SetWithRetry shape, retargeted
// at league/game domain keys instead of lineup/optimization keys.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

type Service struct {
	client *redis.Client
	logger *logrus.Logger
}

func NewService(client *redis.Client, logger *logrus.Logger) *Service {
	return &Service{client: client, logger: logger}
}

// Client exposes the underlying redis client for callers that need a raw
// ping or command this package doesn't wrap (e.g. a readiness probe).
func (s *Service) Client() *redis.Client {
	return s.client
}

const (
	DefaultTTL       = 15 * time.Minute
	StandingsTTL     = 5 * time.Minute
	GameResultTTL    = 24 * time.Hour
	ScheduleTTL      = 10 * time.Minute
)

// Key generators. Every league-scoped key is namespaced by season_id and
// phase so a season rollover can't serve stale cross-season data.

func StandingsKey(seasonID, phase string) string {
	return fmt.Sprintf("standings:%s:%s", seasonID, phase)
}

func ScheduleKey(seasonID, phase, date string) string {
	return fmt.Sprintf("schedule:%s:%s:%s", seasonID, phase, date)
}

func GameResultKey(gameID string) string {
	return fmt.Sprintf("game_result:%s", gameID)
}

func TeamSeasonStatsKey(teamID, seasonID, phase string) string {
	return fmt.Sprintf("team_stats:%s:%s:%s", teamID, seasonID, phase)
}

func (s *Service) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value for %s: %w", key, err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *Service) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to get cache key %s: %w", key, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value for %s: %w", key, err)
	}
	return true, nil
}

func (s *Service) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.client.Del(ctx, keys...).Err()
}

// SetWithRetry retries a single Set call once after a short backoff,
// logging but swallowing the final failure: cache writes are best-effort
// and must never fail the request path that produced the value.
func (s *Service) SetWithRetry(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if err := s.Set(ctx, key, value, ttl); err != nil {
		time.Sleep(100 * time.Millisecond)
		if err := s.Set(ctx, key, value, ttl); err != nil {
			s.logger.WithError(err).WithField("key", key).Warn("cache write failed after retry")
		}
	}
}

// InvalidateTeams drops the season/phase standings view and each listed
// team's season-stats view touched by a finalized game; schedule views are
// left as they are. Called from internal/league.Ingestor's InvalidateCache hook.
func (s *Service) InvalidateTeams(ctx context.Context, seasonID, phase string, teamIDs []string) {
	keys := []string{StandingsKey(seasonID, phase)}
	for _, tid := range teamIDs {
		keys = append(keys, TeamSeasonStatsKey(tid, seasonID, phase))
	}
	if err := s.Delete(ctx, keys...); err != nil {
		s.logger.WithError(err).Warn("cache invalidation failed")
	}
}
