package style

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Row is the column side of a result set. Getters return the zero value for
// SQL NULL; WasNull reports whether the last value read was NULL. Indices are
// 1-based.
type Row interface {
	Decimal(index int) (decimal.Decimal, error)
	Int64(index int) (int64, error)
	Float64(index int) (float64, error)
	String(index int) (string, error)
	Timestamp(index int) (time.Time, error)
	Time(index int) (time.Time, error)
	Bytes(index int) ([]byte, error)
	Clob(index int) (ClobHandle, error)
	Blob(index int) (BlobHandle, error)
	Object(index int, meta ColumnMeta) (any, error)
	WasNull() bool
}

// ColumnMeta describes a result column. It is passed through to Row.Object.
type ColumnMeta struct {
	Name         string
	DatabaseType string
	Nullable     bool
}

// DecimalConversion narrows exact decimals read from NUMERIC and DECIMAL
// columns.
type DecimalConversion int8

// Decimal conversions.
const (
	// DecimalNone returns the decimal unchanged.
	DecimalNone DecimalConversion = iota
	// DecimalLegacy returns an int64 for decimals without fractional digits
	// and a float64 otherwise.
	DecimalLegacy
)

// Convert applies the conversion to d.
func (dc DecimalConversion) Convert(d decimal.Decimal) any {
	if dc != DecimalLegacy {
		return d
	}
	if d.Exponent() == 0 {
		return d.IntPart()
	}
	return d.InexactFloat64()
}

// String returns "none" or "legacy".
func (dc DecimalConversion) String() string {
	switch dc {
	case DecimalNone:
		return "none"
	case DecimalLegacy:
		return "legacy"
	}
	return fmt.Sprintf("DecimalConversion(%d)", dc)
}

// MarshalText implements encoding.TextMarshaler.
func (dc DecimalConversion) MarshalText() ([]byte, error) {
	if err := dc.validate(); err != nil {
		return nil, err
	}
	return []byte(dc.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (dc *DecimalConversion) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "", "none":
		*dc = DecimalNone
	case "legacy":
		*dc = DecimalLegacy
	default:
		return fmt.Errorf("style: unknown decimal conversion %q", text)
	}
	return nil
}

func (dc DecimalConversion) validate() error {
	if dc != DecimalNone && dc != DecimalLegacy {
		return fmt.Errorf("style: unknown decimal conversion %d", dc)
	}
	return nil
}

// ReadBind reads the column at index as a value of type code. The result is
// nil whenever the row reports the column as NULL, regardless of what the
// type specific read returned.
func ReadBind(row Row, meta ColumnMeta, code TypeCode, index int, policy DecimalConversion) (any, error) {
	v, err := readBind(row, meta, code, index, policy)
	if err != nil {
		return nil, err
	}
	if row.WasNull() {
		return nil, nil
	}
	return v, nil
}

// ReadBind reads the column at index with the decimal conversion of s.
func (s *Style) ReadBind(row Row, meta ColumnMeta, code TypeCode, index int) (any, error) {
	return ReadBind(row, meta, code, index, s.cfg.DecimalConversion)
}

func readBind(row Row, meta ColumnMeta, code TypeCode, index int, policy DecimalConversion) (any, error) {
	switch code {
	case Decimal, Numeric:
		d, err := row.Decimal(index)
		if err != nil {
			return nil, err
		}
		return policy.Convert(d), nil
	case Bit, TinyInt, SmallInt, Integer, BigInt:
		return row.Int64(index)
	case Double, Float, Real:
		return row.Float64(index)
	case VarChar, Char, LongVarChar:
		return row.String(index)
	case Date, Timestamp:
		// Dates go through the timestamp path to keep the time of day.
		return row.Timestamp(index)
	case Time:
		return row.Time(index)
	case LongVarBinary, VarBinary, Binary:
		return row.Bytes(index)
	case Clob:
		c, err := row.Clob(index)
		if err != nil || c == nil {
			return nil, err
		}
		s, err := readClob(c)
		if err != nil {
			return nil, &TranscriptionError{Op: "read clob", Index: index, Err: err}
		}
		return s, nil
	case Blob:
		b, err := row.Blob(index)
		if err != nil || b == nil {
			return nil, err
		}
		n, err := b.Length()
		if err != nil {
			return nil, &TranscriptionError{Op: "read blob", Index: index, Err: err}
		}
		data, err := b.Bytes(1, int(n))
		if err != nil {
			return nil, &TranscriptionError{Op: "read blob", Index: index, Err: err}
		}
		return data, nil
	}
	return row.Object(index, meta)
}

// readClob reads exactly the advertised length when it is known and falls
// back to reading until EOF otherwise.
func readClob(c ClobHandle) (string, error) {
	n, err := c.Length()
	if err != nil {
		return "", err
	}
	r, err := c.CharacterStream()
	if err != nil {
		return "", err
	}
	defer r.Close()
	if n > 0 {
		buf := make([]byte, n)
		if _, err := io.ReadFull(r, buf); err != nil {
			return "", err
		}
		return string(buf), nil
	}
	buf, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
