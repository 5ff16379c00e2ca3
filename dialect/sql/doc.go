// Package sql adapts database/sql to the style package.
//
// A Driver wraps a *sql.DB together with a *style.Style. Arguments passed to
// Exec and Query are classified with BuildBindFor and applied with WriteBind
// to an Args list, so large strings stream as CLOB text, byte slices as BLOB
// data, booleans as 1/0 and decimals keep their scale:
//
//	drv, err := sql.Open(dialect.Postgres, dsn, sql.WithStyle(s))
//	if err != nil {
//	    return err
//	}
//	err = drv.Exec(ctx, "UPDATE items SET price = $1 WHERE id = $2",
//	    []any{decimal.RequireFromString("12.50"), 7}, nil)
//
// A ready style.Bind may be passed instead of a host value to choose the type
// code explicitly, for example style.NullBind(style.Timestamp).
//
// # Rows
//
// Rows.Values decodes the current row. Each column is read through ReadBind
// with the type code of its database type name:
//
//	rows := &sql.Rows{}
//	if err := drv.Query(ctx, "SELECT id, price FROM items", []any{}, rows); err != nil {
//	    return err
//	}
//	defer rows.Close()
//	for rows.Next() {
//	    values, err := rows.Values() // []any{int64(7), decimal.Decimal}
//	}
//
// ScanRow implements style.Row over one scanned row and can be used directly
// with ReadBind.
//
// # Statistics
//
// StatsDriver counts statements, errors and slow statements. Its QueryStats
// is a prometheus.Collector:
//
//	statsDriver := sql.NewStatsDriver(drv,
//	    sql.WithSlowThreshold(200*time.Millisecond),
//	    sql.WithSlowQueryLog(logger),
//	)
//	registry.MustRegister(statsDriver.QueryStats())
//
// DebugDriver logs every statement with its arguments rendered as SQL
// literals.
package sql
