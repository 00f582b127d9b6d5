package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirasaad/fintrack/pkg/dto"
	"github.com/amirasaad/fintrack/pkg/service/suggest"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// JobTTL bounds how long a user's job list survives without new jobs.
const JobTTL = 30 * 24 * time.Hour

// RedisJobStore keeps each user's suggestion jobs in a Redis list,
// newest first.
type RedisJobStore struct {
	client redis.UniversalClient
	prefix string
	logger *slog.Logger
}

// NewRedisJobStore creates a job store whose keys live under prefix.
func NewRedisJobStore(
	client redis.UniversalClient,
	prefix string,
	logger *slog.Logger,
) *RedisJobStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RedisJobStore{client: client, prefix: prefix, logger: logger}
}

func (s *RedisJobStore) key(userID uuid.UUID) string {
	return fmt.Sprintf("%sai:jobs:%s", s.prefix, userID)
}

// Save prepends job to its owner's list.
func (s *RedisJobStore) Save(ctx context.Context, job *dto.SuggestionJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("marshal job: %w", err)
	}
	key := s.key(job.UserID)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, key, data)
		pipe.LTrim(ctx, key, 0, suggest.MaxJobsPerUser-1)
		pipe.Expire(ctx, key, JobTTL)
		return nil
	})
	if err != nil {
		s.logger.Error("Redis job store save error", "job_id", job.ID, "error", err)
		return err
	}
	return nil
}

// ListByUser returns the user's jobs, newest first.
func (s *RedisJobStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]*dto.SuggestionJob, error) {
	vals, err := s.client.LRange(ctx, s.key(userID), 0, -1).Result()
	if err != nil {
		s.logger.Error("Redis job store list error", "user_id", userID, "error", err)
		return nil, err
	}
	jobs := make([]*dto.SuggestionJob, 0, len(vals))
	for _, v := range vals {
		var job dto.SuggestionJob
		if err := json.Unmarshal([]byte(v), &job); err != nil {
			s.logger.Warn("Skipping undecodable job", "user_id", userID, "error", err)
			continue
		}
		jobs = append(jobs, &job)
	}
	return jobs, nil
}
