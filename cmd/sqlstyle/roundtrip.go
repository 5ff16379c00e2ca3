package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/syssam/sqlstyle/dialect"
	"github.com/syssam/sqlstyle/dialect/sql"
	"github.com/syssam/sqlstyle/dialect/sql/style"
)

// sampleColumns is the column list of the round trip table.
var sampleColumns = []string{"id", "name", "body", "price", "ratio", "created", "data", "flag"}

// sampleDDL holds the round trip table definition per dialect. %s is the
// table name.
var sampleDDL = map[string]string{
	dialect.SQLite: `CREATE TABLE %s (id INTEGER, name VARCHAR(40), body TEXT, price NUMERIC(12,2),
		ratio DOUBLE, created TIMESTAMP, data BLOB, flag INTEGER)`,
	dialect.Postgres: `CREATE TABLE %s (id BIGINT, name VARCHAR(40), body TEXT, price NUMERIC(12,2),
		ratio DOUBLE PRECISION, created TIMESTAMPTZ, data BYTEA, flag INTEGER)`,
	dialect.MySQL: `CREATE TABLE %s (id BIGINT, name VARCHAR(40), body LONGTEXT, price DECIMAL(12,2),
		ratio DOUBLE, created DATETIME(6), data LONGBLOB, flag INT)`,
	dialect.Oracle: `CREATE TABLE %s (id NUMBER(19), name VARCHAR2(40), body CLOB, price NUMBER(12,2),
		ratio BINARY_DOUBLE, created TIMESTAMP, data BLOB, flag NUMBER(1))`,
}

// sampleRows returns one row of values and one row of typed nulls.
func sampleRows(s *style.Style) [][]any {
	created := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	return [][]any{
		{
			int64(1),
			"Alice",
			strings.Repeat("x", s.Config().LargeStringThreshold+1),
			decimal.RequireFromString("12.50"),
			0.25,
			created,
			[]byte("abc"),
			true,
		},
		{
			int64(2),
			(*string)(nil),
			style.NullBind(style.Clob),
			decimal.NullDecimal{},
			nil,
			style.NullBind(style.Timestamp),
			[]byte(nil),
			style.Undefined,
		},
	}
}

// placeholders returns n parameter placeholders in the syntax of the dialect.
func placeholders(name string, n int) string {
	ps := make([]string, n)
	for i := range ps {
		switch name {
		case dialect.Postgres:
			ps[i] = "$" + strconv.Itoa(i+1)
		case dialect.Oracle:
			ps[i] = ":" + strconv.Itoa(i+1)
		default:
			ps[i] = "?"
		}
	}
	return strings.Join(ps, ", ")
}

func newRoundTripCmd(a *app) *cobra.Command {
	var (
		dsn   string
		table string
		keep  bool
	)
	cmd := &cobra.Command{
		Use:   "roundtrip",
		Short: "Write sample values through the style into a database and read them back",
		Long: `Write sample values through the style into a database and read them back.

A scratch table is created, one row of values and one row of typed nulls are
inserted, and every column is read back with the type code of its database
type. The table is dropped afterwards unless --keep is set. The database
driver is chosen by the dialect: postgres (lib/pq), mysql and sqlite.`,
		Example: `  sqlstyle roundtrip --dialect sqlite --dsn "file::memory:"
  SQLSTYLE_DATABASE__DSN=postgres://localhost/app?sslmode=disable sqlstyle roundtrip --dialect postgres`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if dsn == "" {
				dsn = a.cfg.Database.DSN
			}
			if dsn == "" {
				return fmt.Errorf("roundtrip: no data source, set --dsn or database.dsn")
			}
			return a.roundTrip(cmd.Context(), cmd.OutOrStdout(), dsn, table, keep)
		},
	}
	cmd.Flags().StringVar(&dsn, "dsn", "", "data source name, overrides database.dsn")
	cmd.Flags().StringVar(&table, "table", "sqlstyle_roundtrip", "scratch table name")
	cmd.Flags().BoolVar(&keep, "keep", false, "keep the scratch table")
	return cmd
}

func (a *app) roundTrip(ctx context.Context, w io.Writer, dsn, table string, keep bool) (err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	name := a.style.Dialect()
	drv, err := sql.Open(name, dsn, sql.WithStyle(a.style))
	if err != nil {
		return fmt.Errorf("roundtrip: open: %w", err)
	}
	defer drv.Close()
	// A private in-memory database lives as long as its connection.
	drv.DB().SetMaxOpenConns(1)
	if err := drv.Check(ctx); err != nil {
		return fmt.Errorf("roundtrip: %w", err)
	}

	schema := sql.NewDebugDriver(drv, a.log)
	stats := sql.NewStatsDriver(drv,
		sql.WithSlowThreshold(a.cfg.Database.SlowThreshold),
		sql.WithSlowQueryLog(a.log),
	)

	if err := schema.Exec(ctx, fmt.Sprintf(sampleDDL[name], table), []any{}, nil); err != nil {
		return fmt.Errorf("roundtrip: create table: %w", err)
	}
	if !keep {
		defer func() {
			if derr := schema.Exec(ctx, "DROP TABLE "+table, []any{}, nil); derr != nil && err == nil {
				err = fmt.Errorf("roundtrip: drop table: %w", derr)
			}
		}()
	}

	columns := strings.Join(sampleColumns, ", ")
	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", table, columns, placeholders(name, len(sampleColumns)))
	tx, err := stats.Tx(ctx)
	if err != nil {
		return fmt.Errorf("roundtrip: begin: %w", err)
	}
	for _, row := range sampleRows(a.style) {
		if err := tx.Exec(ctx, insert, row, nil); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("roundtrip: insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("roundtrip: commit: %w", err)
	}

	rows := &sql.Rows{}
	if err := stats.Query(ctx, fmt.Sprintf("SELECT %s FROM %s ORDER BY id", columns, table), []any{}, rows); err != nil {
		return fmt.Errorf("roundtrip: select: %w", err)
	}
	defer rows.Close()
	types, err := rows.ColumnTypes()
	if err != nil {
		return fmt.Errorf("roundtrip: column types: %w", err)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ROW\tCOLUMN\tDATABASE TYPE\tTYPE CODE\tVALUE")
	for n := 1; rows.Next(); n++ {
		values, err := rows.Values()
		if err != nil {
			return fmt.Errorf("roundtrip: row %d: %w", n, err)
		}
		for i, v := range values {
			dbType := types[i].DatabaseTypeName()
			_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", n, types[i].Name(), dbType, style.TypeCodeOf(dbType), a.display(v))
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("roundtrip: rows: %w", err)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	snapshot := stats.QueryStats().Stats()
	a.log.Info("round trip finished", zap.String("dialect", name), zap.Stringer("stats", snapshot))
	_, err = fmt.Fprintln(w, snapshot)
	return err
}

// display renders a decoded column value as a SQL literal. Large object
// handles are read back so their content is shown.
func (a *app) display(v any) string {
	switch v := v.(type) {
	case style.ClobHandle:
		r, err := v.CharacterStream()
		if err != nil {
			return "<" + err.Error() + ">"
		}
		defer r.Close()
		b, err := io.ReadAll(r)
		if err != nil {
			return "<" + err.Error() + ">"
		}
		return a.style.ToPlainText(string(b))
	case style.BlobHandle:
		n, err := v.Length()
		if err != nil {
			return "<" + err.Error() + ">"
		}
		b, err := v.Bytes(1, int(n))
		if err != nil {
			return "<" + err.Error() + ">"
		}
		return a.style.ToPlainText(b)
	}
	return a.style.ToPlainText(v)
}
