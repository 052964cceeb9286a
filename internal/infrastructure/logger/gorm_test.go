package logger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return NewGormLogger(zap.New(core), level), logs
}

func TestGormLogger_Trace(t *testing.T) {
	ctx := context.Background()
	fc := func() (string, int64) { return "SELECT 1", 1 }

	t.Run("logs query errors", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error)
		gl.Trace(ctx, time.Now(), fc, assert.AnError)

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Equal(t, zap.ErrorLevel, entry.Level)
		assert.Equal(t, "SQL Error", entry.Message)
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error)
		gl.Trace(ctx, time.Now(), fc, gormlogger.ErrRecordNotFound)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("slow queries warn", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Warn)
		gl.Trace(ctx, time.Now().Add(-time.Second), fc, nil)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, zap.WarnLevel, logs.All()[0].Level)
	})

	t.Run("silent level logs nothing", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Silent)
		gl.Trace(ctx, time.Now(), fc, assert.AnError)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("request id from context is attached", func(t *testing.T) {
		gl, logs := newObservedGormLogger(gormlogger.Error)
		reqCtx := context.WithValue(ctx, RequestIDKey, "req-9")
		gl.Trace(reqCtx, time.Now(), fc, assert.AnError)

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "req-9", logs.All()[0].ContextMap()["request_id"])
	})
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("warn"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("info"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("anything"))
}
