package style

import (
	"math/big"
	"reflect"
	"strconv"

	"github.com/google/uuid"
)

// BuildBindFor selects the type code for v. When v is nil, the type code is
// derived from nullType; holders are unwrapped first and supply their own
// element type. A non-nil value of an unsupported type yields a *BindError.
func (s *Style) BuildBindFor(v any, nullType reflect.Type) (Bind, error) {
	c, err := classify(v, nullType)
	if err != nil {
		return Bind{}, err
	}
	v = c.value
	switch c.kind {
	case KindNone:
		return NullBind(Null), nil
	case KindTimestamp:
		return NewBind(Timestamp, v), nil
	case KindDate:
		if v == nil {
			return NullBind(Date), nil
		}
		return NewBind(Date, v.(LocalDate).Time), nil
	case KindDouble:
		if v == nil {
			return NullBind(Double), nil
		}
		return NewBind(Double, reflect.ValueOf(v).Float()), nil
	case KindFloat:
		if v == nil {
			return NullBind(Float), nil
		}
		return NewBind(Float, reflect.ValueOf(v).Float()), nil
	case KindInteger:
		if v == nil {
			return NullBind(Integer), nil
		}
		return NewBind(Integer, int64Of(v)), nil
	case KindBigInt:
		return NewBind(BigInt, bigIntValue(v)), nil
	case KindDecimal:
		return NewBind(Numeric, v), nil
	case KindChar:
		if v == nil {
			return NullBind(VarChar), nil
		}
		return NewBind(VarChar, v.(Character).String()), nil
	case KindString, KindRunes:
		if v == nil {
			return NullBind(VarChar), nil
		}
		var (
			str   string
			large bool
		)
		if c.kind == KindRunes {
			// Rune slices come from bulk text sources and always stream.
			str, large = string(v.([]rune)), true
		} else {
			str = reflect.ValueOf(v).String()
			large = s.IsLargeString(str)
		}
		switch {
		case !large:
			return NewBind(VarChar, str), nil
		case s.cfg.ClobEnabled:
			return NewBind(Clob, str), nil
		default:
			return NewBind(LongVarChar, str), nil
		}
	case KindBytes:
		code := LongVarBinary
		if s.cfg.BlobEnabled {
			code = Blob
		}
		if v == nil {
			return NullBind(code), nil
		}
		return NewBind(code, reflect.ValueOf(v).Bytes()), nil
	case KindBool:
		if v == nil {
			return NullBind(Integer), nil
		}
		if reflect.ValueOf(v).Bool() {
			return NewBind(Integer, int64(1)), nil
		}
		return NewBind(Integer, int64(0)), nil
	case KindTriState:
		if v == nil {
			return NullBind(Integer), nil
		}
		return NewBind(Integer, v.(TriState).IntValue()), nil
	case KindBlob:
		return NewBind(Blob, v), nil
	case KindClob:
		return NewBind(Clob, v), nil
	case KindUUID:
		if v == nil {
			return NullBind(VarChar), nil
		}
		return NewBind(VarChar, v.(uuid.UUID).String()), nil
	case KindArray:
		return NewBind(Array, v), nil
	default:
		if v == nil {
			return NullBind(VarChar), nil
		}
		return Bind{}, &BindError{Type: c.typ}
	}
}

// bigIntValue narrows big integers to int64 when they fit and renders them as
// decimal text otherwise.
func bigIntValue(v any) any {
	switch v := v.(type) {
	case nil:
		return nil
	case *big.Int:
		if v.IsInt64() {
			return v.Int64()
		}
		return v.String()
	}
	if u, ok := int64Of(v).(uint64); ok {
		return strconv.FormatUint(u, 10)
	}
	return int64Of(v)
}
