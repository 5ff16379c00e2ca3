// Package dialect names the database dialects a style can render for and
// defines the driver contracts shared by the SQL driver layer.
//
// # Supported Dialects
//
//	dialect.Oracle   = "oracle"
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//
// Oracle is the default dialect of a style: the predicate fragments use
// TRUNC, SYSDATE, ADD_MONTHS and NVL. The other dialects are accepted so
// that a style can carry their bind and value handling, for example pq
// arrays on Postgres.
//
// # Driver Interface
//
//	type Driver interface {
//	    Exec(ctx context.Context, query string, args, v any) error
//	    Query(ctx context.Context, query string, args, v any) error
//	    Tx(ctx context.Context) (Tx, error)
//	    Close() error
//	    Dialect() string
//	}
//
// # Usage
//
//	import (
//	    "github.com/syssam/sqlstyle/dialect"
//	    "github.com/syssam/sqlstyle/dialect/sql"
//	)
//
//	drv, err := sql.Open(dialect.Postgres, "postgres://...")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
//
// # Sub-packages
//
//   - dialect/sql: database/sql driver that binds and decodes through a style
//   - dialect/sql/style: type codes, binds, literals, predicates and IN lists
package dialect
