package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/Shivanisinghay/Epsilon/internal/models"
)

const (
	statsCacheKey = "epsilon:stats"
	statsCacheTTL = 30 * time.Second
)

type UserCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Stats is the application-wide generation tally shown on the dashboard.
type Stats struct {
	Users         int64 `json:"users"`
	Images        int64 `json:"images"`
	Audios        int64 `json:"audios"`
	Emails        int64 `json:"emails"`
	Transcripts   int64 `json:"transcripts"`
	Notifications int64 `json:"notifications"`
}

type StatsService struct {
	users   UserCounter
	content ContentStore
	cache   *redis.Client
	log     zerolog.Logger
}

func NewStatsService(users UserCounter, content ContentStore, cache *redis.Client, log zerolog.Logger) *StatsService {
	return &StatsService{
		users:   users,
		content: content,
		cache:   cache,
		log:     log,
	}
}

// Get returns the counts, served from a short-lived Redis cache when
// available. Cache failures fall through to the database.
func (s *StatsService) Get(ctx context.Context) (Stats, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, statsCacheKey).Bytes(); err == nil {
			var stats Stats
			if err := json.Unmarshal(cached, &stats); err == nil {
				return stats, nil
			}
		}
	}

	stats, err := s.collect(ctx)
	if err != nil {
		return Stats{}, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, payload, statsCacheTTL).Err(); err != nil {
				s.log.Warn().Err(err).Msg("stats cache write failed")
			}
		}
	}
	return stats, nil
}

func (s *StatsService) collect(ctx context.Context) (Stats, error) {
	var stats Stats
	var err error

	if stats.Users, err = s.users.Count(ctx); err != nil {
		return Stats{}, err
	}

	counts := []struct {
		dst *int64
		typ models.ContentType
	}{
		{&stats.Images, models.ContentTypeImage},
		{&stats.Audios, models.ContentTypeAudio},
		{&stats.Emails, models.ContentTypeEmail},
		{&stats.Transcripts, models.ContentTypeTranscript},
		{&stats.Notifications, models.ContentTypeNotification},
	}
	for _, c := range counts {
		if *c.dst, err = s.content.CountByType(ctx, c.typ); err != nil {
			return Stats{}, err
		}
	}
	return stats, nil
}
