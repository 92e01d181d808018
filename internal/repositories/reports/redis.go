package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	dnderr "github.com/KirkDiggler/dnd-dpr/internal/errors"
)

const indexKey = "dpr:reports"

func reportKey(id string) string {
	return fmt.Sprintf("dpr:report:%s", id)
}

func cacheKey(key string) string {
	return fmt.Sprintf("dpr:cache:%s", key)
}

// RedisConfig holds configuration for the Redis repository
type RedisConfig struct {
	Client redis.UniversalClient
	// TTL expires reports and their cache keys, zero keeps them forever
	TTL time.Duration
}

type redisRepo struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedis creates a Redis-backed report repository
func NewRedis(cfg *RedisConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("RedisConfig and Client are required")
	}
	return &redisRepo{client: cfg.Client, ttl: cfg.TTL}
}

func (r *redisRepo) Save(ctx context.Context, report *Report) error {
	if report == nil {
		return errors.New("report cannot be nil")
	}
	if report.ID == "" {
		return errors.New("report ID cannot be empty")
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, reportKey(report.ID), string(data), r.ttl)
	if report.CacheKey != "" {
		pipe.Set(ctx, cacheKey(report.CacheKey), report.ID, r.ttl)
	}
	pipe.SAdd(ctx, indexKey, report.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save report in Redis: %w", err)
	}
	return nil
}

func (r *redisRepo) Get(ctx context.Context, id string) (*Report, error) {
	data, err := r.client.Get(ctx, reportKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dnderr.NotFoundf("report %s not found", id).WithMeta("report_id", id)
		}
		return nil, fmt.Errorf("failed to get report from Redis: %w", err)
	}

	var report Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}
	return &report, nil
}

func (r *redisRepo) GetByCacheKey(ctx context.Context, key string) (*Report, error) {
	id, err := r.client.Get(ctx, cacheKey(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, dnderr.NotFoundf("no report cached for %s", key)
		}
		return nil, fmt.Errorf("failed to get cache key from Redis: %w", err)
	}
	return r.Get(ctx, id)
}

// List fetches every indexed report and drops expired ones from the index
func (r *redisRepo) List(ctx context.Context) ([]*Report, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list reports from Redis: %w", err)
	}

	found := make([]*Report, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		g.Go(func() error {
			report, err := r.Get(gctx, id)
			if dnderr.IsNotFound(err) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("failed to get report %s: %w", id, err)
			}
			found[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var reports []*Report
	var expired []any
	for i, report := range found {
		if report == nil {
			expired = append(expired, ids[i])
			continue
		}
		reports = append(reports, report)
	}
	if len(expired) > 0 {
		if err := r.client.SRem(ctx, indexKey, expired...).Err(); err != nil {
			return nil, fmt.Errorf("failed to prune report index: %w", err)
		}
	}

	sort.Slice(reports, func(i, j int) bool {
		return reports[i].CreatedAt.After(reports[j].CreatedAt)
	})
	return reports, nil
}

func (r *redisRepo) Delete(ctx context.Context, id string) error {
	report, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Del(ctx, reportKey(id))
	if report.CacheKey != "" {
		pipe.Del(ctx, cacheKey(report.CacheKey))
	}
	pipe.SRem(ctx, indexKey, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete report from Redis: %w", err)
	}
	return nil
}
