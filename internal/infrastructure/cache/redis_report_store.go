package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/orderdesk/backend/internal/application/leadimport"
	"github.com/orderdesk/backend/internal/domain/shared"
)

// RedisReportStore implements leadimport.ReportStore using Redis. This is
// suitable for distributed deployments where the upload and the failed-rows
// download may land on different instances. The one-shot read uses GETDEL so
// concurrent downloads of the same report cannot both succeed.
type RedisReportStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

var _ leadimport.ReportStore = (*RedisReportStore)(nil)

// NewRedisReportStore creates a new Redis-based report store
func NewRedisReportStore(cfg RedisConfig, ttl time.Duration) (*RedisReportStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisReportStore{
		client:    client,
		keyPrefix: "import:report:",
		ttl:       ttl,
	}, nil
}

// NewRedisReportStoreWithClient creates a store with an existing Redis client.
// This is useful for testing or when sharing a client across components.
func NewRedisReportStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisReportStore {
	if keyPrefix == "" {
		keyPrefix = "import:report:"
	}
	return &RedisReportStore{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

// key builds the tenant-scoped Redis key for a report
func (s *RedisReportStore) key(tenantID uuid.UUID, id string) string {
	return s.keyPrefix + tenantID.String() + ":" + id
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Save stores a report as JSON with the configured TTL
func (s *RedisReportStore) Save(ctx context.Context, report *leadimport.BatchReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	key := s.key(report.TenantID, report.ID)
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}
	return nil
}

// Take retrieves a report and deletes it atomically via GETDEL. The key is
// tenant-scoped, so another tenant's Take misses.
func (s *RedisReportStore) Take(ctx context.Context, tenantID uuid.UUID, id string) (*leadimport.BatchReport, error) {
	key := s.key(tenantID, id)

	payload, err := s.client.GetDel(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch report: %w", err)
	}

	var report leadimport.BatchReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, fmt.Errorf("failed to decode report: %w", err)
	}
	return &report, nil
}

// Close closes the Redis client
func (s *RedisReportStore) Close() error {
	return s.client.Close()
}
