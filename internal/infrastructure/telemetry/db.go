package telemetry

import (
	"time"

	"github.com/bayup/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	defaultSlowQuery = 200 * time.Millisecond
	startedAtKey     = "telemetry:started_at"
)

// InstrumentDB registers otelgorm spans and a slow query warning on db.
// Extra otelgorm options, such as a tracer provider, are appended last.
func InstrumentDB(db *gorm.DB, cfg config.TelemetryConfig, logger *zap.Logger, extra ...otelgorm.Option) error {
	if !cfg.DBTraceEnabled {
		return nil
	}
	opts := []otelgorm.Option{otelgorm.WithDBName("postgresql")}
	if !cfg.DBLogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(append(opts, extra...)...)); err != nil {
		return err
	}

	threshold := cfg.DBSlowQueryThresh
	if threshold <= 0 {
		threshold = defaultSlowQuery
	}
	slow := &slowQueryLogger{threshold: threshold, logger: logger}
	return slow.register(db)
}

type slowQueryLogger struct {
	threshold time.Duration
	logger    *zap.Logger
}

func (s *slowQueryLogger) register(db *gorm.DB) error {
	cb := db.Callback()
	regs := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("telemetry:start_create", s.start) },
		func() error { return cb.Create().After("gorm:create").Register("telemetry:slow_create", s.finish) },
		func() error { return cb.Query().Before("gorm:query").Register("telemetry:start_query", s.start) },
		func() error { return cb.Query().After("gorm:query").Register("telemetry:slow_query", s.finish) },
		func() error { return cb.Update().Before("gorm:update").Register("telemetry:start_update", s.start) },
		func() error { return cb.Update().After("gorm:update").Register("telemetry:slow_update", s.finish) },
		func() error { return cb.Delete().Before("gorm:delete").Register("telemetry:start_delete", s.start) },
		func() error { return cb.Delete().After("gorm:delete").Register("telemetry:slow_delete", s.finish) },
		func() error { return cb.Row().Before("gorm:row").Register("telemetry:start_row", s.start) },
		func() error { return cb.Row().After("gorm:row").Register("telemetry:slow_row", s.finish) },
		func() error { return cb.Raw().Before("gorm:raw").Register("telemetry:start_raw", s.start) },
		func() error { return cb.Raw().After("gorm:raw").Register("telemetry:slow_raw", s.finish) },
	}
	for _, reg := range regs {
		if err := reg(); err != nil {
			return err
		}
	}
	return nil
}

func (s *slowQueryLogger) start(db *gorm.DB) {
	db.InstanceSet(startedAtKey, time.Now())
}

func (s *slowQueryLogger) finish(db *gorm.DB) {
	v, ok := db.InstanceGet(startedAtKey)
	if !ok {
		return
	}
	started, ok := v.(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(started)
	if elapsed < s.threshold {
		return
	}
	fields := []zap.Field{
		zap.Duration("elapsed", elapsed),
		zap.String("table", db.Statement.Table),
		zap.Int64("rows", db.Statement.RowsAffected),
	}
	if db.Statement.Context != nil {
		if sc := trace.SpanContextFromContext(db.Statement.Context); sc.HasTraceID() {
			fields = append(fields, zap.String("trace_id", sc.TraceID().String()))
		}
	}
	s.logger.Warn("Slow query", fields...)
}
