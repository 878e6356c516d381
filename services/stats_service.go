package services

import (
	"context"
	"time"

	"blog-api/cache"
	"blog-api/metrics"
	"blog-api/models"
	"blog-api/repositories"

	"github.com/rs/zerolog/log"
)

const (
	statsCacheKey = "stats:site"
	newPostWindow = 7 * 24 * time.Hour
)

type StatsService interface {
	Get(ctx context.Context) (*models.SiteStats, error)
}

type statsService struct {
	statsRepo repositories.StatsRepository
	cache     cache.Cache
	ttl       time.Duration
	now       Clock
}

func NewStatsService(statsRepo repositories.StatsRepository, c cache.Cache, ttl time.Duration, clock Clock) StatsService {
	if c == nil {
		c = cache.Noop{}
	}
	return &statsService{statsRepo: statsRepo, cache: c, ttl: ttl, now: defaultClock(clock)}
}

// Get serves from the cache when possible. Cache errors degrade to a direct
// computation.
func (s *statsService) Get(ctx context.Context) (*models.SiteStats, error) {
	var cached models.SiteStats
	found, err := s.cache.Get(ctx, statsCacheKey, &cached)
	if err != nil {
		log.Warn().Err(err).Msg("stats cache read failed")
	}
	metrics.RecordStatsCache(found)
	if found {
		return &cached, nil
	}

	stats, err := s.statsRepo.Collect(s.now().Add(-newPostWindow))
	if err != nil {
		return nil, err
	}

	if s.ttl > 0 {
		if err := s.cache.Set(ctx, statsCacheKey, stats, s.ttl); err != nil {
			log.Warn().Err(err).Msg("stats cache write failed")
		}
	}
	return stats, nil
}
