package sql

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/syssam/sqlstyle/dialect"
	"github.com/syssam/sqlstyle/dialect/sql/style"
)

func openSQLite(t *testing.T, opts ...Option) *Driver {
	t.Helper()
	drv, err := Open(dialect.SQLite, ":memory:", opts...)
	require.NoError(t, err)
	drv.DB().SetMaxOpenConns(1)
	t.Cleanup(func() { drv.Close() })
	require.NoError(t, drv.Check(context.Background()))
	return drv
}

func TestSQLite_RoundTrip(t *testing.T) {
	drv := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, drv.Exec(ctx, `CREATE TABLE items (
		id INTEGER PRIMARY KEY,
		name VARCHAR(20),
		body TEXT,
		price NUMERIC(10,2),
		ratio DOUBLE,
		created TIMESTAMP,
		data BLOB,
		flag INTEGER
	)`, []any{}, nil))

	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	long := strings.Repeat("ab", style.DefaultLargeStringThreshold)
	insert := "INSERT INTO items (id, name, body, price, ratio, created, data, flag) VALUES (?, ?, ?, ?, ?, ?, ?, ?)"
	require.NoError(t, drv.Exec(ctx, insert, []any{
		1, "Alice", long, decimal.RequireFromString("12.50"), 0.25, created, []byte("abc"), true,
	}, nil))
	require.NoError(t, drv.Exec(ctx, insert, []any{
		2, (*string)(nil), nil, decimal.NullDecimal{}, nil, style.NullBind(style.Timestamp), []byte(nil), style.Undefined,
	}, nil))

	rows := &Rows{}
	require.NoError(t, drv.Query(ctx, "SELECT id, name, body, price, ratio, created, data, flag FROM items ORDER BY id", []any{}, rows))
	defer rows.Close()

	require.True(t, rows.Next())
	values, err := rows.Values()
	require.NoError(t, err)
	require.Len(t, values, 8)
	assert.Equal(t, int64(1), values[0])
	assert.Equal(t, "Alice", values[1])
	assert.Equal(t, long, values[2])
	price, ok := values[3].(decimal.Decimal)
	require.True(t, ok, "got %T", values[3])
	assert.True(t, decimal.RequireFromString("12.5").Equal(price))
	assert.Equal(t, 0.25, values[4])
	got, ok := values[5].(time.Time)
	require.True(t, ok, "got %T", values[5])
	assert.True(t, created.Equal(got), "got %s", got)
	assert.Equal(t, []byte("abc"), values[6])
	assert.Equal(t, int64(1), values[7])

	require.True(t, rows.Next())
	values, err = rows.Values()
	require.NoError(t, err)
	assert.Equal(t, int64(2), values[0])
	for i, v := range values[1:] {
		assert.Nil(t, v, "column %d", i+2)
	}
	require.False(t, rows.Next())
	require.NoError(t, rows.Err())
}

func TestSQLite_InList(t *testing.T) {
	drv := openSQLite(t, WithStyle(style.MustNew(
		style.WithConfig(style.Config{
			Dialect:              dialect.SQLite,
			BlobEnabled:          true,
			ClobEnabled:          true,
			LargeStringThreshold: style.DefaultLargeStringThreshold,
			MaxListSize:          2,
			MaxLiteralLength:     100,
			BindMarker:           "?",
			PlainMarker:          "&",
		}),
	)))
	ctx := context.Background()
	s := drv.Style()

	require.NoError(t, drv.Exec(ctx, "CREATE TABLE t (id INTEGER, name TEXT)", []any{}, nil))
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		require.NoError(t, drv.Exec(ctx, "INSERT INTO t VALUES (?, ?)", []any{i + 1, name}, nil))
	}

	count := func(where string, args ...any) int64 {
		rows := &Rows{}
		require.NoError(t, drv.Query(ctx, "SELECT COUNT(*) FROM t WHERE "+where, args, rows))
		defer rows.Close()
		require.True(t, rows.Next())
		values, err := rows.Values()
		require.NoError(t, err)
		n, ok := values[0].(int64)
		require.True(t, ok, "got %T", values[0])
		return n
	}

	assert.Equal(t, int64(3), count(s.InList("id", []int{1, 3, 5})))
	assert.Equal(t, int64(2), count(s.NotInList("id", []int{1, 3, 5})))
	assert.Equal(t, int64(2), count(s.InList("name", []string{"a", "e", "z"})))
	assert.Equal(t, int64(0), count(s.InList("id", []int{})))
	assert.Equal(t, int64(1), count(s.EQ("name", ""), "c"))
	assert.Equal(t, int64(2), count(s.GTE("id", "&4")))
	assert.Equal(t, int64(1), count("id = "+s.ToPlainText(int8(2))))
}
