package style

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
)

// Statement is the parameter side of a prepared statement. Indices are
// 1-based.
type Statement interface {
	SetNull(index int, code TypeCode) error
	SetObject(index int, v any, code TypeCode) error
	SetScaledObject(index int, v any, code TypeCode, scale int32) error
	SetBytes(index int, b []byte) error
	SetCharacterStream(index int, r io.Reader, length int64) error
	SetBinaryStream(index int, r io.Reader, length int64) error
	SetClob(index int, c ClobHandle) error
	SetBlob(index int, b BlobHandle) error
}

// WriteBind applies b to the parameter at index. Streams opened for large
// values are closed before WriteBind returns.
func WriteBind(stmt Statement, index int, b Bind) error {
	switch v := b.Value(); b.TypeCode() {
	case Null:
		if err := stmt.SetNull(index, Null); err != nil {
			// Some drivers reject untyped nulls.
			return stmt.SetNull(index, VarChar)
		}
		return nil
	case Clob:
		switch v := v.(type) {
		case nil:
			return wrapWrite("write clob", index, stmt.SetClob(index, nil))
		case ClobHandle:
			return wrapWrite("write clob", index, stmt.SetClob(index, v))
		case string:
			return writeCharacterStream(stmt, index, "write clob", v)
		}
		return &TranscriptionError{Op: "write clob", Index: index, Err: fmt.Errorf("unexpected value of type %T", v)}
	case Blob:
		switch v := v.(type) {
		case nil:
			return wrapWrite("write blob", index, stmt.SetBlob(index, nil))
		case BlobHandle:
			return wrapWrite("write blob", index, stmt.SetBlob(index, v))
		case []byte:
			return writeBinaryStream(stmt, index, "write blob", v)
		}
		return &TranscriptionError{Op: "write blob", Index: index, Err: fmt.Errorf("unexpected value of type %T", v)}
	case LongVarChar:
		str, ok := v.(string)
		if !ok {
			return stmt.SetNull(index, LongVarChar)
		}
		return writeCharacterStream(stmt, index, "write long varchar", str)
	case LongVarBinary:
		data, _ := v.([]byte)
		err := stmt.SetBytes(index, data)
		if err == nil {
			return nil
		}
		if err2 := writeBinaryStream(stmt, index, "write long varbinary", data); err2 == nil {
			return nil
		}
		// Report the direct failure, not the fallback one.
		return &TranscriptionError{Op: "write long varbinary", Index: index, Err: err}
	case Numeric, Decimal:
		if d, ok := v.(decimal.Decimal); ok {
			return stmt.SetScaledObject(index, d, b.TypeCode(), scaleOf(d))
		}
	}
	return stmt.SetObject(index, b.Value(), b.TypeCode())
}

// WriteBind applies b to the parameter at index.
func (s *Style) WriteBind(stmt Statement, index int, b Bind) error {
	return WriteBind(stmt, index, b)
}

func writeCharacterStream(stmt Statement, index int, op, s string) error {
	r := io.NopCloser(strings.NewReader(s))
	defer r.Close()
	return wrapWrite(op, index, stmt.SetCharacterStream(index, r, int64(len(s))))
}

func writeBinaryStream(stmt Statement, index int, op string, data []byte) error {
	r := io.NopCloser(bytes.NewReader(data))
	defer r.Close()
	return wrapWrite(op, index, stmt.SetBinaryStream(index, r, int64(len(data))))
}

func wrapWrite(op string, index int, err error) error {
	if err == nil {
		return nil
	}
	return &TranscriptionError{Op: op, Index: index, Err: err}
}

// scaleOf returns the number of fractional digits d carries.
func scaleOf(d decimal.Decimal) int32 {
	if e := d.Exponent(); e < 0 {
		return -e
	}
	return 0
}
