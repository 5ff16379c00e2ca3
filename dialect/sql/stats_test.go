package sql

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/syssam/sqlstyle/dialect"
)

func TestStatsDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	var (
		mu   sync.Mutex
		slow []string
	)
	drv := NewStatsDriver(OpenDB(dialect.Postgres, db),
		WithSlowThreshold(-1),
		WithSlowQueryHook(func(_ context.Context, query string, _ []any, _ time.Duration) {
			mu.Lock()
			defer mu.Unlock()
			slow = append(slow, query)
		}),
	)
	ctx := context.Background()

	mock.ExpectQuery("SELECT 1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(int64(1)))
	rows := &Rows{}
	require.NoError(t, drv.Query(ctx, "SELECT 1", []any{}, rows))
	require.NoError(t, rows.Close())

	mock.ExpectExec("UPDATE").WillReturnError(errors.New("deadlock"))
	require.Error(t, drv.Exec(ctx, "UPDATE t SET a = 1", []any{}, nil))

	require.Error(t, drv.Exec(ctx, "UPDATE t SET a = $1", []any{struct{}{}}, nil))

	mock.ExpectBegin()
	mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()
	tx, err := drv.Tx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Exec(ctx, "DELETE FROM t", []any{}, nil))
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())

	snap := drv.QueryStats().Stats()
	assert.Equal(t, int64(1), snap.TotalQueries)
	assert.Equal(t, int64(3), snap.TotalExecs)
	assert.Equal(t, int64(2), snap.Errors)
	assert.Equal(t, int64(1), snap.BindErrors)
	assert.Equal(t, int64(4), snap.SlowQueries)
	assert.Len(t, slow, 4)
	assert.Contains(t, snap.String(), "queries=1 execs=3")
	assert.Contains(t, snap.String(), "bind_errors=1")

	drv.SetSlowThreshold(time.Hour)
	assert.Equal(t, time.Hour, drv.SlowThreshold())

	drv.QueryStats().Reset()
	assert.Equal(t, StatsSnapshot{}, drv.QueryStats().Stats())
	assert.Zero(t, StatsSnapshot{}.AvgQueryDuration())
}

func TestQueryStats_Collector(t *testing.T) {
	stats := &QueryStats{}
	stats.TotalQueries.Add(3)
	stats.TotalExecs.Add(2)
	stats.TotalDuration.Add(int64(1500 * time.Millisecond))
	stats.SlowQueries.Add(1)
	stats.Errors.Add(2)
	stats.BindErrors.Add(1)

	reg := prometheus.NewPedanticRegistry()
	require.NoError(t, reg.Register(stats))
	assert.Equal(t, 6, testutil.CollectAndCount(stats))

	expected := `
# HELP sqlstyle_slow_statements_total Total number of statements exceeding the slow threshold.
# TYPE sqlstyle_slow_statements_total counter
sqlstyle_slow_statements_total 1
# HELP sqlstyle_statement_duration_seconds_total Total time spent executing statements in seconds.
# TYPE sqlstyle_statement_duration_seconds_total counter
sqlstyle_statement_duration_seconds_total 1.5
# HELP sqlstyle_statement_errors_total Total number of failed statements by cause.
# TYPE sqlstyle_statement_errors_total counter
sqlstyle_statement_errors_total{cause="bind"} 1
sqlstyle_statement_errors_total{cause="database"} 1
# HELP sqlstyle_statements_total Total number of executed statements by kind.
# TYPE sqlstyle_statements_total counter
sqlstyle_statements_total{kind="exec"} 2
sqlstyle_statements_total{kind="query"} 3
`
	require.NoError(t, testutil.GatherAndCompare(reg, strings.NewReader(expected)))
}

func TestWithSlowQueryLog(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	core, logs := observer.New(zapcore.WarnLevel)
	drv := NewStatsDriver(OpenDB(dialect.Oracle, db),
		WithSlowThreshold(-1),
		WithSlowQueryLog(zap.New(core)),
	)

	mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, drv.Exec(context.Background(), "INSERT INTO t VALUES (:1, :2)", []any{"it's", 42}, nil))
	require.NoError(t, mock.ExpectationsWereMet())

	entries := logs.FilterMessage("slow statement detected").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "INSERT INTO t VALUES (:1, :2)", fields["query"])
	assert.Equal(t, []any{"'it''s'", "42"}, fields["args"])
}

func TestDebugDriver(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	drv := NewDebugDriver(OpenDB(dialect.Postgres, db), zap.New(core))
	ctx := context.Background()

	mock.ExpectQuery("SELECT").WithArgs(int64(1)).WillReturnRows(sqlmock.NewRows([]string{"a"}))
	rows := &Rows{}
	require.NoError(t, drv.Query(ctx, "SELECT a FROM t WHERE id = $1", []any{true}, rows))
	require.NoError(t, rows.Close())

	mock.ExpectBegin()
	mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()
	tx, err := drv.Tx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Exec(ctx, "DELETE FROM t", []any{}, nil))
	require.NoError(t, tx.Rollback())
	require.NoError(t, mock.ExpectationsWereMet())

	var messages []string
	for _, e := range logs.All() {
		messages = append(messages, e.Message)
		assert.Equal(t, dialect.Postgres, e.ContextMap()["dialect"])
	}
	assert.Equal(t, []string{"query", "begin transaction", "tx exec", "rollback transaction"}, messages)
	assert.Equal(t, []any{"1"}, logs.FilterMessage("query").All()[0].ContextMap()["args"])

	assert.NotNil(t, NewDebugDriver(OpenDB(dialect.Postgres, db), nil).log)
}
