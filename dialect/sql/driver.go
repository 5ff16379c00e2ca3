package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/syssam/sqlstyle/dialect"
	"github.com/syssam/sqlstyle/dialect/sql/style"
)

// Driver is a dialect.Driver implementation for SQL based databases. Arguments
// are bound and rows are decoded through the style of the driver.
type Driver struct {
	Conn
	dialect string
}

// Option configures a Driver.
type Option func(*Conn)

// WithStyle sets the style used to bind arguments and decode rows. Without it
// the driver uses the default style of its dialect.
func WithStyle(s *style.Style) Option {
	return func(c *Conn) {
		c.style = s
	}
}

// NewDriver creates a new Driver with the given Conn and dialect.
func NewDriver(dialect string, c Conn, opts ...Option) *Driver {
	for _, opt := range opts {
		opt(&c)
	}
	if c.style == nil {
		c.style = defaultStyle(dialect)
	}
	return &Driver{dialect: dialect, Conn: c}
}

// defaultStyle returns the default style for the dialect name, falling back
// to the default configuration for names the style does not know.
func defaultStyle(name string) *style.Style {
	cfg := style.DefaultConfig()
	if name = normalize(name); dialect.Valid(name) {
		cfg.Dialect = name
	}
	return style.MustNew(style.WithConfig(cfg))
}

// Open wraps the database/sql.Open method and returns a Driver for it.
func Open(dialect, source string, opts ...Option) (*Driver, error) {
	db, err := sql.Open(dialect, source)
	if err != nil {
		return nil, err
	}
	return NewDriver(dialect, Conn{ExecQuerier: db, dialect: dialect}, opts...), nil
}

// OpenDB wraps the given database/sql.DB method with a Driver.
func OpenDB(dialect string, db *sql.DB, opts ...Option) *Driver {
	return NewDriver(dialect, Conn{ExecQuerier: db, dialect: dialect}, opts...)
}

// DB returns the underlying *sql.DB instance.
func (d Driver) DB() *sql.DB {
	return d.ExecQuerier.(*sql.DB)
}

// Dialect implements the dialect.Dialect method.
func (d Driver) Dialect() string {
	return normalize(d.dialect)
}

// normalize maps wrapped driver names such as "sqlite3" or "postgres-otel"
// to the dialect they start with.
func normalize(name string) string {
	for _, n := range []string{dialect.MySQL, dialect.SQLite, dialect.Postgres, dialect.Oracle} {
		if strings.HasPrefix(name, n) {
			return n
		}
	}
	return name
}

// Check pings the database and runs the connection test of the style.
func (d *Driver) Check(ctx context.Context) error {
	if err := d.DB().PingContext(ctx); err != nil {
		return fmt.Errorf("dialect/sql: ping: %w", err)
	}
	if err := d.style.TestConnection(ctx, d.DB()); err != nil {
		return fmt.Errorf("dialect/sql: test connection: %w", err)
	}
	return nil
}

// Tx starts and returns a transaction.
func (d *Driver) Tx(ctx context.Context) (dialect.Tx, error) {
	return d.BeginTx(ctx, nil)
}

// BeginTx starts a transaction with options.
func (d *Driver) BeginTx(ctx context.Context, opts *TxOptions) (dialect.Tx, error) {
	tx, err := d.DB().BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{
		Conn: Conn{ExecQuerier: tx, dialect: d.dialect, style: d.style},
		Tx:   tx,
	}, nil
}

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.DB().Close() }

// Tx implements dialect.Tx interface.
type Tx struct {
	Conn
	driver.Tx
}

// Commit commits the transaction and notifies the style.
func (t *Tx) Commit() error {
	if err := t.Tx.Commit(); err != nil {
		return err
	}
	t.style.Commit()
	return nil
}

// Rollback rolls the transaction back and notifies the style.
func (t *Tx) Rollback() error {
	err := t.Tx.Rollback()
	t.style.Rollback()
	return err
}

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn implements dialect.ExecQuerier given ExecQuerier.
type Conn struct {
	ExecQuerier
	dialect string
	style   *style.Style
}

// Style returns the style the connection binds through.
func (c Conn) Style() *style.Style { return c.style }

// Exec implements the dialect.Exec method.
func (c Conn) Exec(ctx context.Context, query string, args, v any) error {
	argv, err := c.bindArgs(args)
	if err != nil {
		return fmt.Errorf("dialect/sql: exec: %w", err)
	}
	switch v := v.(type) {
	case nil:
		if _, err := c.ExecContext(ctx, query, argv...); err != nil {
			return fmt.Errorf("dialect/sql: exec: %w", err)
		}
	case *sql.Result:
		res, err := c.ExecContext(ctx, query, argv...)
		if err != nil {
			return fmt.Errorf("dialect/sql: exec: %w", err)
		}
		*v = res
	default:
		return fmt.Errorf("dialect/sql: invalid type %T. expect *sql.Result", v)
	}
	return nil
}

// Query implements the dialect.Query method.
func (c Conn) Query(ctx context.Context, query string, args, v any) error {
	vr, ok := v.(*Rows)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect *sql.Rows", v)
	}
	argv, err := c.bindArgs(args)
	if err != nil {
		return fmt.Errorf("dialect/sql: query: %w", err)
	}
	rows, err := c.QueryContext(ctx, query, argv...)
	if err != nil {
		return fmt.Errorf("dialect/sql: query: %w", err)
	}
	*vr = Rows{ColumnScanner: rows, style: c.style}
	return nil
}

// bindArgs turns host values into driver arguments. Each argument is either a
// ready style.Bind or a value classified with BuildBindFor; sql.NamedArg is
// passed through unchanged.
func (c Conn) bindArgs(args any) ([]any, error) {
	argv, ok := args.([]any)
	if !ok {
		return nil, fmt.Errorf("invalid type %T. expect []any for args", args)
	}
	if c.style == nil || len(argv) == 0 {
		return argv, nil
	}
	out := NewArgs(c.dialect, len(argv))
	for i, arg := range argv {
		var b style.Bind
		switch arg := arg.(type) {
		case sql.NamedArg:
			if err := out.set(i+1, arg); err != nil {
				return nil, err
			}
			continue
		case style.Bind:
			b = arg
		default:
			var err error
			if b, err = c.style.BuildBindFor(arg, nil); err != nil {
				return nil, fmt.Errorf("bind parameter %d: %w", i+1, err)
			}
		}
		if err := c.style.WriteBind(out, i+1, b); err != nil {
			return nil, fmt.Errorf("bind parameter %d: %w", i+1, err)
		}
	}
	return out.Values(), nil
}

var _ dialect.Driver = (*Driver)(nil)

type (
	// Rows wraps the sql.Rows to avoid locks copy.
	Rows struct {
		ColumnScanner
		style *style.Style
	}
	// Result is an alias to sql.Result.
	Result = sql.Result
	// TxOptions holds the transaction options to be used in DB.BeginTx.
	TxOptions = sql.TxOptions
)

// Values decodes the current row. Every column is read with the type code of
// its database type, so NUMERIC columns come back as decimals (or narrowed by
// the decimal conversion of the style) and LOB columns as LOB handles.
func (r *Rows) Values() ([]any, error) {
	if r.style == nil {
		return nil, errors.New("dialect/sql: rows have no style")
	}
	types, err := r.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: column types: %w", err)
	}
	row := &ScanRow{}
	if err := row.Scan(r.ColumnScanner); err != nil {
		return nil, err
	}
	values := make([]any, len(types))
	for i, ct := range types {
		meta := columnMeta(ct)
		v, err := r.style.ReadBind(row, meta, style.TypeCodeOf(meta.DatabaseType), i+1)
		if err != nil {
			return nil, fmt.Errorf("dialect/sql: read column %q: %w", meta.Name, err)
		}
		values[i] = v
	}
	return values, nil
}

func columnMeta(ct *sql.ColumnType) style.ColumnMeta {
	nullable, _ := ct.Nullable()
	return style.ColumnMeta{
		Name:         ct.Name(),
		DatabaseType: ct.DatabaseTypeName(),
		Nullable:     nullable,
	}
}

// ColumnScanner is the interface that wraps the standard
// sql.Rows methods used for scanning database rows.
type ColumnScanner interface {
	Close() error
	ColumnTypes() ([]*sql.ColumnType, error)
	Columns() ([]string, error)
	Err() error
	Next() bool
	NextResultSet() bool
	Scan(dest ...any) error
}
