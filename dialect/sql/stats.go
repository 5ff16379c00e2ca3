package sql

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/syssam/sqlstyle/dialect"
	"github.com/syssam/sqlstyle/dialect/sql/style"
)

// QueryStats holds statement execution statistics. It implements
// prometheus.Collector and can be registered with any registry.
type QueryStats struct {
	// TotalQueries is the total number of queries executed.
	TotalQueries atomic.Int64
	// TotalExecs is the total number of exec statements executed.
	TotalExecs atomic.Int64
	// TotalDuration is the total time spent executing statements.
	TotalDuration atomic.Int64 // nanoseconds
	// SlowQueries is the count of statements exceeding the slow threshold.
	SlowQueries atomic.Int64
	// Errors is the count of failed statements.
	Errors atomic.Int64
	// BindErrors is the count of statements that failed while binding
	// arguments or transcribing values.
	BindErrors atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
		BindErrors:    s.BindErrors.Load(),
	}
}

// Reset resets all statistics to zero.
func (s *QueryStats) Reset() {
	s.TotalQueries.Store(0)
	s.TotalExecs.Store(0)
	s.TotalDuration.Store(0)
	s.SlowQueries.Store(0)
	s.Errors.Store(0)
	s.BindErrors.Store(0)
}

var (
	statementsDesc = prometheus.NewDesc(
		"sqlstyle_statements_total",
		"Total number of executed statements by kind.",
		[]string{"kind"}, nil,
	)
	durationDesc = prometheus.NewDesc(
		"sqlstyle_statement_duration_seconds_total",
		"Total time spent executing statements in seconds.",
		nil, nil,
	)
	slowDesc = prometheus.NewDesc(
		"sqlstyle_slow_statements_total",
		"Total number of statements exceeding the slow threshold.",
		nil, nil,
	)
	errorsDesc = prometheus.NewDesc(
		"sqlstyle_statement_errors_total",
		"Total number of failed statements by cause.",
		[]string{"cause"}, nil,
	)
)

// Describe implements prometheus.Collector.
func (s *QueryStats) Describe(ch chan<- *prometheus.Desc) {
	ch <- statementsDesc
	ch <- durationDesc
	ch <- slowDesc
	ch <- errorsDesc
}

// Collect implements prometheus.Collector.
func (s *QueryStats) Collect(ch chan<- prometheus.Metric) {
	snap := s.Stats()
	ch <- prometheus.MustNewConstMetric(statementsDesc, prometheus.CounterValue, float64(snap.TotalQueries), "query")
	ch <- prometheus.MustNewConstMetric(statementsDesc, prometheus.CounterValue, float64(snap.TotalExecs), "exec")
	ch <- prometheus.MustNewConstMetric(durationDesc, prometheus.CounterValue, snap.TotalDuration.Seconds())
	ch <- prometheus.MustNewConstMetric(slowDesc, prometheus.CounterValue, float64(snap.SlowQueries))
	ch <- prometheus.MustNewConstMetric(errorsDesc, prometheus.CounterValue, float64(snap.BindErrors), "bind")
	ch <- prometheus.MustNewConstMetric(errorsDesc, prometheus.CounterValue, float64(snap.Errors-snap.BindErrors), "database")
}

// StatsSnapshot is a point-in-time snapshot of query statistics.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
	BindErrors    int64
}

// AvgQueryDuration returns the average statement duration.
func (s StatsSnapshot) AvgQueryDuration() time.Duration {
	total := s.TotalQueries + s.TotalExecs
	if total == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(total)
}

// String returns a human-readable summary of the statistics.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d bind_errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.AvgQueryDuration(),
		s.SlowQueries, s.Errors, s.BindErrors,
	)
}

// isBindError reports whether err came from binding or transcribing values
// rather than from the database.
func isBindError(err error) bool {
	return errors.Is(err, style.ErrNoBindMapping) || style.IsTranscriptionError(err)
}

// SlowQueryHook is a function called when a slow statement is detected.
type SlowQueryHook func(ctx context.Context, query string, args []any, duration time.Duration)

// StatsDriver wraps a Driver with statement statistics collection.
type StatsDriver struct {
	*Driver
	stats         *QueryStats
	slowThreshold time.Duration
	slowHook      SlowQueryHook
	mu            sync.RWMutex
}

// StatsOption configures the StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the threshold for slow statement detection.
// Default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) {
		s.slowThreshold = d
	}
}

// WithSlowQueryHook sets a callback function for slow statements.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsDriver) {
		s.slowHook = hook
	}
}

// WithSlowQueryLog logs slow statements to logger at warn level. Arguments
// are rendered as SQL literals by the style of the driver.
func WithSlowQueryLog(logger *zap.Logger) StatsOption {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(s *StatsDriver) {
		st := s.style
		s.slowHook = func(_ context.Context, query string, args []any, duration time.Duration) {
			logger.Warn("slow statement detected",
				zap.Duration("duration", duration),
				zap.String("query", query),
				zap.Strings("args", literals(st, args)),
			)
		}
	}
}

// literals renders args with the plain text renderer of s.
func literals(s *style.Style, args []any) []string {
	out := make([]string, len(args))
	for i, arg := range args {
		if b, ok := arg.(style.Bind); ok {
			arg = b.Value()
		}
		out[i] = s.ToPlainText(arg)
	}
	return out
}

// NewStatsDriver wraps a Driver with statistics collection.
//
// Example:
//
//	drv, _ := sql.Open("postgres", dsn)
//	statsDriver := sql.NewStatsDriver(drv,
//	    sql.WithSlowThreshold(200*time.Millisecond),
//	    sql.WithSlowQueryLog(logger),
//	)
//	prometheus.MustRegister(statsDriver.QueryStats())
func NewStatsDriver(drv *Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{
		Driver:        drv,
		stats:         &QueryStats{},
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueryStats returns the underlying QueryStats for reading statistics.
func (d *StatsDriver) QueryStats() *QueryStats {
	return d.stats
}

// SlowThreshold returns the current slow statement threshold.
func (d *StatsDriver) SlowThreshold() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.slowThreshold
}

// SetSlowThreshold updates the slow statement threshold.
func (d *StatsDriver) SetSlowThreshold(threshold time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.slowThreshold = threshold
}

// Query executes a query and records statistics.
func (d *StatsDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.record(ctx, query, args, start, err, true)
	return err
}

// Exec executes a statement and records statistics.
func (d *StatsDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.record(ctx, query, args, start, err, false)
	return err
}

func (d *StatsDriver) record(ctx context.Context, query string, args any, start time.Time, err error, isQuery bool) {
	duration := time.Since(start)
	if isQuery {
		d.stats.TotalQueries.Add(1)
	} else {
		d.stats.TotalExecs.Add(1)
	}
	d.stats.TotalDuration.Add(int64(duration))

	if err != nil {
		d.stats.Errors.Add(1)
		if isBindError(err) {
			d.stats.BindErrors.Add(1)
		}
	}

	d.mu.RLock()
	threshold := d.slowThreshold
	hook := d.slowHook
	d.mu.RUnlock()

	if duration > threshold {
		d.stats.SlowQueries.Add(1)
		if hook != nil {
			argsSlice, _ := args.([]any)
			hook(ctx, query, argsSlice, duration)
		}
	}
}

// Tx starts a transaction that also records statistics.
func (d *StatsDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsTx{Tx: tx, driver: d}, nil
}

// StatsTx wraps a transaction with statistics collection.
type StatsTx struct {
	dialect.Tx
	driver *StatsDriver
}

// Query executes a query within the transaction and records statistics.
func (tx *StatsTx) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Query(ctx, query, args, v)
	tx.driver.record(ctx, query, args, start, err, true)
	return err
}

// Exec executes a statement within the transaction and records statistics.
func (tx *StatsTx) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Exec(ctx, query, args, v)
	tx.driver.record(ctx, query, args, start, err, false)
	return err
}

// DebugDriver wraps a Driver with debug logging of every statement.
type DebugDriver struct {
	*Driver
	log *zap.Logger
}

// NewDebugDriver wraps a Driver with debug logging. Statement arguments are
// logged as the SQL literals the style of the driver renders for them.
func NewDebugDriver(drv *Driver, logger *zap.Logger) *DebugDriver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DebugDriver{
		Driver: drv,
		log:    logger.With(zap.String("dialect", drv.Dialect())),
	}
}

// Query executes a query and logs it.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	d.log.Debug("query", zap.String("query", query), zap.Strings("args", d.literals(args)))
	return d.Driver.Query(ctx, query, args, v)
}

// Exec executes a statement and logs it.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	d.log.Debug("exec", zap.String("query", query), zap.Strings("args", d.literals(args)))
	return d.Driver.Exec(ctx, query, args, v)
}

func (d *DebugDriver) literals(args any) []string {
	argv, _ := args.([]any)
	return literals(d.style, argv)
}

// Tx starts a transaction with debug logging.
func (d *DebugDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	d.log.Debug("begin transaction")
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &DebugTx{Tx: tx, driver: d}, nil
}

// DebugTx wraps a transaction with debug logging.
type DebugTx struct {
	dialect.Tx
	driver *DebugDriver
}

// Query executes a query within the transaction and logs it.
func (tx *DebugTx) Query(ctx context.Context, query string, args, v any) error {
	tx.driver.log.Debug("tx query", zap.String("query", query), zap.Strings("args", tx.driver.literals(args)))
	return tx.Tx.Query(ctx, query, args, v)
}

// Exec executes a statement within the transaction and logs it.
func (tx *DebugTx) Exec(ctx context.Context, query string, args, v any) error {
	tx.driver.log.Debug("tx exec", zap.String("query", query), zap.Strings("args", tx.driver.literals(args)))
	return tx.Tx.Exec(ctx, query, args, v)
}

// Commit commits the transaction and logs it.
func (tx *DebugTx) Commit() error {
	tx.driver.log.Debug("commit transaction")
	return tx.Tx.Commit()
}

// Rollback rolls back the transaction and logs it.
func (tx *DebugTx) Rollback() error {
	tx.driver.log.Debug("rollback transaction")
	return tx.Tx.Rollback()
}

// Ensure interfaces are implemented.
var (
	_ dialect.Driver       = (*StatsDriver)(nil)
	_ dialect.Tx           = (*StatsTx)(nil)
	_ dialect.Driver       = (*DebugDriver)(nil)
	_ dialect.Tx           = (*DebugTx)(nil)
	_ prometheus.Collector = (*QueryStats)(nil)
)

// OpenWithStats opens a database connection with statistics collection enabled.
//
// Example:
//
//	drv, stats, err := sql.OpenWithStats("postgres", dsn,
//	    []sql.Option{sql.WithStyle(s)},
//	    sql.WithSlowThreshold(100*time.Millisecond),
//	    sql.WithSlowQueryLog(logger),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	registry.MustRegister(stats)
func OpenWithStats(driverName, source string, driverOpts []Option, opts ...StatsOption) (*StatsDriver, *QueryStats, error) {
	drv, err := Open(driverName, source, driverOpts...)
	if err != nil {
		return nil, nil, err
	}
	statsDriver := NewStatsDriver(drv, opts...)
	return statsDriver, statsDriver.QueryStats(), nil
}
