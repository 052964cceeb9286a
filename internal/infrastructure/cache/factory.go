package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/orderdesk/backend/internal/application/leadimport"
	"github.com/orderdesk/backend/internal/infrastructure/config"
)

// ReportStoreFactory creates report stores based on configuration
type ReportStoreFactory struct {
	redisConfig           config.RedisConfig
	importConfig          config.ImportConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// ReportStoreFactoryOption is a functional option for configuring the factory
type ReportStoreFactoryOption func(*ReportStoreFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) ReportStoreFactoryOption {
	return func(f *ReportStoreFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory store
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) ReportStoreFactoryOption {
	return func(f *ReportStoreFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewReportStoreFactory creates a new factory
func NewReportStoreFactory(redisCfg config.RedisConfig, importCfg config.ImportConfig, opts ...ReportStoreFactoryOption) *ReportStoreFactory {
	f := &ReportStoreFactory{
		redisConfig:           redisCfg,
		importConfig:          importCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateStore creates a report store. When Redis is enabled it is tried
// first; the in-memory store is used when Redis is disabled or, if fallback
// is allowed, when Redis is unreachable.
func (f *ReportStoreFactory) CreateStore() (leadimport.ReportStore, error) {
	if !f.redisConfig.Enabled {
		f.logger.Info("using in-memory report store")
		return NewInMemoryReportStore(f.importConfig.ReportTTL), nil
	}

	store, err := NewRedisReportStore(RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}, f.importConfig.ReportTTL)
	if err == nil {
		f.logger.Info("using Redis report store")
		return store, nil
	}

	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for report store but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory report store. "+
		"Failed-row downloads will only work against the instance that handled the upload.",
		zap.Error(err),
	)
	return NewInMemoryReportStore(f.importConfig.ReportTTL), nil
}
