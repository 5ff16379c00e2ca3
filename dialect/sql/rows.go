package sql

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/duke-git/lancet/v2/convertor"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/syssam/sqlstyle/dialect/sql/style"
)

// ScanRow holds the raw driver values of one result row and implements
// style.Row over them. Getters convert the raw value on demand. Indices are
// 1-based.
type ScanRow struct {
	raw     []any
	wasNull bool
}

// NewScanRow returns a row over already scanned driver values.
func NewScanRow(values ...any) *ScanRow {
	return &ScanRow{raw: values}
}

// Scan copies the current row of rows. It must be called after a successful
// rows.Next.
func (r *ScanRow) Scan(rows ColumnScanner) error {
	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("dialect/sql: columns: %w", err)
	}
	raw := make([]any, len(cols))
	dest := lo.Times(len(cols), func(i int) any { return &raw[i] })
	if err := rows.Scan(dest...); err != nil {
		return fmt.Errorf("dialect/sql: scan: %w", err)
	}
	r.raw, r.wasNull = raw, false
	return nil
}

// Len returns the number of columns.
func (r *ScanRow) Len() int { return len(r.raw) }

func (r *ScanRow) value(index int) (any, error) {
	if index < 1 || index > len(r.raw) {
		return nil, fmt.Errorf("dialect/sql: column index %d out of range [1, %d]", index, len(r.raw))
	}
	v := r.raw[index-1]
	r.wasNull = v == nil
	return v, nil
}

// WasNull reports whether the last column read was NULL.
func (r *ScanRow) WasNull() bool { return r.wasNull }

// Decimal returns the column as an exact decimal.
func (r *ScanRow) Decimal(index int) (decimal.Decimal, error) {
	v, err := r.value(index)
	if err != nil || v == nil {
		return decimal.Zero, err
	}
	switch v := v.(type) {
	case decimal.Decimal:
		return v, nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case bool:
		if v {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(textOf(v)))
	if err != nil {
		return decimal.Zero, fmt.Errorf("dialect/sql: column %d: %w", index, err)
	}
	return d, nil
}

// Int64 returns the column as an integer.
func (r *ScanRow) Int64(index int) (int64, error) {
	v, err := r.value(index)
	if err != nil || v == nil {
		return 0, err
	}
	switch v := v.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case []byte, string:
		n, err := strconv.ParseInt(strings.TrimSpace(textOf(v)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("dialect/sql: column %d: %w", index, err)
		}
		return n, nil
	}
	n, err := convertor.ToInt(v)
	if err != nil {
		return 0, fmt.Errorf("dialect/sql: column %d: %w", index, err)
	}
	return n, nil
}

// Float64 returns the column as a float.
func (r *ScanRow) Float64(index int) (float64, error) {
	v, err := r.value(index)
	if err != nil || v == nil {
		return 0, err
	}
	switch v := v.(type) {
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	case []byte, string:
		return r.float(index, strings.TrimSpace(textOf(v)))
	}
	return r.float(index, v)
}

func (r *ScanRow) float(index int, v any) (float64, error) {
	f, err := convertor.ToFloat(v)
	if err != nil {
		return 0, fmt.Errorf("dialect/sql: column %d: %w", index, err)
	}
	return f, nil
}

// String returns the column as text.
func (r *ScanRow) String(index int) (string, error) {
	v, err := r.value(index)
	if err != nil || v == nil {
		return "", err
	}
	return textOf(v), nil
}

// Timestamp returns the column as a point in time. Text values are parsed
// with the layouts SQLite and MySQL use for DATETIME.
func (r *ScanRow) Timestamp(index int) (time.Time, error) {
	return r.time(index, timestampLayouts)
}

// Time returns the column as a time of day. Text values may carry a clock
// only, in which case the date part is zero.
func (r *ScanRow) Time(index int) (time.Time, error) {
	return r.time(index, timeLayouts)
}

var (
	timestampLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02 15:04:05.999999999-07:00",
		"2006-01-02 15:04:05.999999999Z07:00",
		"2006-01-02 15:04:05.999999999",
		"2006-01-02T15:04:05.999999999",
		"2006-01-02 15:04",
		"2006-01-02",
	}
	timeLayouts = append([]string{"15:04:05.999999999", "15:04"}, timestampLayouts...)
)

func (r *ScanRow) time(index int, layouts []string) (time.Time, error) {
	v, err := r.value(index)
	if err != nil || v == nil {
		return time.Time{}, err
	}
	switch v := v.(type) {
	case time.Time:
		return v, nil
	case int64:
		return time.Unix(v, 0).UTC(), nil
	case []byte, string:
		s := strings.TrimSpace(textOf(v))
		for _, layout := range layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("dialect/sql: column %d: cannot parse %q as time", index, s)
	}
	return time.Time{}, fmt.Errorf("dialect/sql: column %d: unexpected time value of type %T", index, v)
}

// Bytes returns the column as raw bytes.
func (r *ScanRow) Bytes(index int) ([]byte, error) {
	v, err := r.value(index)
	if err != nil || v == nil {
		return nil, err
	}
	switch v := v.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	}
	b, err := convertor.ToBytes(v)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: column %d: %w", index, err)
	}
	return b, nil
}

// Clob returns the column as an in-memory character large object.
func (r *ScanRow) Clob(index int) (style.ClobHandle, error) {
	v, err := r.value(index)
	if err != nil || v == nil {
		return nil, err
	}
	return style.StringClob(textOf(v)), nil
}

// Blob returns the column as an in-memory binary large object.
func (r *ScanRow) Blob(index int) (style.BlobHandle, error) {
	b, err := r.Bytes(index)
	if err != nil || b == nil {
		return nil, err
	}
	return style.ByteBlob(b), nil
}

// Object returns the raw driver value.
func (r *ScanRow) Object(index int, _ style.ColumnMeta) (any, error) {
	return r.value(index)
}

// textOf renders a raw driver value as text.
func textOf(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case time.Time:
		return v.Format(time.RFC3339Nano)
	}
	return convertor.ToString(v)
}

var _ style.Row = (*ScanRow)(nil)
