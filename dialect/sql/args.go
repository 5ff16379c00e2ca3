package sql

import (
	"database/sql"
	"fmt"
	"io"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/syssam/sqlstyle/dialect"
	"github.com/syssam/sqlstyle/dialect/sql/style"
)

// Args collects positional statement arguments for database/sql. It
// implements style.Statement, so binds are applied to it with WriteBind and
// the result is passed to ExecContext or QueryContext as Values()...
type Args struct {
	dialect string
	values  []any
}

// NewArgs returns an empty argument list for the given dialect.
func NewArgs(dialect string, size int) *Args {
	return &Args{dialect: dialect, values: make([]any, 0, size)}
}

// Values returns the collected arguments in parameter order.
func (a *Args) Values() []any {
	return a.values
}

// Len returns the number of parameters set so far.
func (a *Args) Len() int {
	return len(a.values)
}

func (a *Args) set(index int, v any) error {
	if index < 1 {
		return fmt.Errorf("dialect/sql: parameter index %d out of range", index)
	}
	for len(a.values) < index {
		a.values = append(a.values, nil)
	}
	a.values[index-1] = v
	return nil
}

// SetNull stores a typed null matching code.
func (a *Args) SetNull(index int, code style.TypeCode) error {
	return a.set(index, nullOf(code))
}

// SetObject stores v. A nil v is stored as the typed null of code. Array
// values are wrapped with pq.Array on Postgres and rejected elsewhere.
func (a *Args) SetObject(index int, v any, code style.TypeCode) error {
	if v == nil {
		return a.SetNull(index, code)
	}
	if code == style.Array {
		if a.dialect != dialect.Postgres {
			return fmt.Errorf("dialect/sql: array parameters are not supported by %s", a.dialect)
		}
		v = pq.Array(v)
	}
	return a.set(index, v)
}

// SetScaledObject stores v rounded to scale fractional digits.
func (a *Args) SetScaledObject(index int, v any, code style.TypeCode, scale int32) error {
	if d, ok := v.(decimal.Decimal); ok {
		// StringFixed keeps trailing zeros, which the driver would drop from a float.
		return a.set(index, d.StringFixed(scale))
	}
	return a.SetObject(index, v, code)
}

// SetBytes stores b.
func (a *Args) SetBytes(index int, b []byte) error {
	if b == nil {
		return a.set(index, nil)
	}
	return a.set(index, b)
}

// SetCharacterStream reads r and stores its content as a string.
func (a *Args) SetCharacterStream(index int, r io.Reader, _ int64) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("dialect/sql: read character stream: %w", err)
	}
	return a.set(index, string(b))
}

// SetBinaryStream reads r and stores its content as bytes.
func (a *Args) SetBinaryStream(index int, r io.Reader, _ int64) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("dialect/sql: read binary stream: %w", err)
	}
	return a.set(index, b)
}

// SetClob materializes c. A nil handle stores a null string.
func (a *Args) SetClob(index int, c style.ClobHandle) error {
	if c == nil {
		return a.set(index, sql.NullString{})
	}
	r, err := c.CharacterStream()
	if err != nil {
		return fmt.Errorf("dialect/sql: open clob: %w", err)
	}
	defer r.Close()
	return a.SetCharacterStream(index, r, -1)
}

// SetBlob materializes b. A nil handle stores nil.
func (a *Args) SetBlob(index int, b style.BlobHandle) error {
	if b == nil {
		return a.set(index, nil)
	}
	n, err := b.Length()
	if err != nil {
		return fmt.Errorf("dialect/sql: blob length: %w", err)
	}
	if n == 0 {
		return a.set(index, []byte{})
	}
	data, err := b.Bytes(1, int(n))
	if err != nil {
		return fmt.Errorf("dialect/sql: read blob: %w", err)
	}
	return a.set(index, data)
}

// nullOf returns the database/sql null value for code. Binary and untyped
// nulls are plain nil.
func nullOf(code style.TypeCode) any {
	switch {
	case code.IsInteger():
		return sql.NullInt64{}
	case code.IsText():
		return sql.NullString{}
	}
	switch code {
	case style.Float, style.Real, style.Double:
		return sql.NullFloat64{}
	case style.Numeric, style.Decimal:
		return decimal.NullDecimal{}
	case style.Date, style.Time, style.Timestamp:
		return sql.NullTime{}
	}
	return nil
}

var _ style.Statement = (*Args)(nil)
