package style

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the host value kind of a bind value. Every value handed to
// BuildBindFor is reduced to exactly one Kind by classify.
type Kind int8

// Host value kinds.
const (
	KindNone Kind = iota // nil without a resolvable type
	KindTimestamp
	KindDate
	KindDouble
	KindFloat
	KindInteger
	KindBigInt
	KindDecimal
	KindChar
	KindString
	KindRunes
	KindBytes
	KindBool
	KindTriState
	KindBlob
	KindClob
	KindUUID
	KindArray
	KindUnknown
)

var kindNames = [...]string{
	KindNone:      "none",
	KindTimestamp: "timestamp",
	KindDate:      "date",
	KindDouble:    "double",
	KindFloat:     "float",
	KindInteger:   "integer",
	KindBigInt:    "bigint",
	KindDecimal:   "decimal",
	KindChar:      "char",
	KindString:    "string",
	KindRunes:     "runes",
	KindBytes:     "bytes",
	KindBool:      "bool",
	KindTriState:  "tristate",
	KindBlob:      "blob",
	KindClob:      "clob",
	KindUUID:      "uuid",
	KindArray:     "array",
	KindUnknown:   "unknown",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindNames[k]
}

var (
	timeType        = reflect.TypeFor[time.Time]()
	dateType        = reflect.TypeFor[LocalDate]()
	decimalType     = reflect.TypeFor[decimal.Decimal]()
	nullDecimalType = reflect.TypeFor[decimal.NullDecimal]()
	bigIntType      = reflect.TypeFor[*big.Int]()
	charType        = reflect.TypeFor[Character]()
	runesType       = reflect.TypeFor[[]rune]()
	triStateType    = reflect.TypeFor[TriState]()
	uuidType        = reflect.TypeFor[uuid.UUID]()
	holderType      = reflect.TypeFor[Holder]()
	blobType        = reflect.TypeFor[BlobHandle]()
	clobType        = reflect.TypeFor[ClobHandle]()
	valuerType      = reflect.TypeFor[driver.Valuer]()
)

// nullValuerTypes gives the element type of the sql.Null wrappers, used as the
// type hint when such a wrapper holds no value.
var nullValuerTypes = map[reflect.Type]reflect.Type{
	reflect.TypeFor[sql.NullString]():  reflect.TypeFor[string](),
	reflect.TypeFor[sql.NullInt64]():   reflect.TypeFor[int64](),
	reflect.TypeFor[sql.NullInt32]():   reflect.TypeFor[int32](),
	reflect.TypeFor[sql.NullInt16]():   reflect.TypeFor[int16](),
	reflect.TypeFor[sql.NullByte]():    reflect.TypeFor[byte](),
	reflect.TypeFor[sql.NullFloat64](): reflect.TypeFor[float64](),
	reflect.TypeFor[sql.NullBool]():    reflect.TypeFor[bool](),
	reflect.TypeFor[sql.NullTime]():    timeType,
	nullDecimalType:                    decimalType,
}

// classified is the outcome of classify: the kind, the unwrapped value and
// the type the kind was derived from.
type classified struct {
	kind  Kind
	value any
	typ   reflect.Type
}

// classify unwraps holders, pointers and driver.Valuers and reduces v to a
// Kind. When v is nil, the kind is derived from hint.
func classify(v any, hint reflect.Type) (classified, error) {
	if h, ok := v.(Holder); ok {
		v, hint = h.HolderValue(), h.HolderType()
	}
	v, hint = indirect(v, hint)
	if v == nil && hint != nil && implementsAny(hint, holderType) {
		et, err := holderElem(hint)
		if err != nil {
			hint = nil
		} else {
			_, hint = indirect(nil, et)
		}
	}
	t := hint
	if v != nil {
		t = reflect.TypeOf(v)
	}
	if t == nil {
		return classified{kind: KindNone}, nil
	}
	k := kindOf(t)
	if k != kindValuer {
		return classified{kind: k, value: v, typ: t}, nil
	}
	// driver.Valuer: classify what it hands to the driver.
	base := t
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	elem := nullValuerTypes[base]
	if v == nil {
		return classify(nil, elem)
	}
	dv, err := v.(driver.Valuer).Value()
	if err != nil {
		return classified{}, fmt.Errorf("style: value of %v: %w", t, err)
	}
	if _, ok := dv.(driver.Valuer); ok {
		return classified{kind: KindUnknown, value: dv, typ: reflect.TypeOf(dv)}, nil
	}
	if base == nullDecimalType && dv != nil {
		// decimal.NullDecimal hands out a string; keep the exact decimal.
		return classify(v.(decimal.NullDecimal).Decimal, nil)
	}
	return classify(dv, elem)
}

// kindValuer marks types that must be resolved through driver.Valuer. It is
// internal to classify and never returned.
const kindValuer Kind = -1

// kindOf returns the Kind of values of type t.
func kindOf(t reflect.Type) Kind {
	switch t {
	case timeType:
		return KindTimestamp
	case dateType:
		return KindDate
	case decimalType:
		return KindDecimal
	case bigIntType:
		return KindBigInt
	case charType:
		return KindChar
	case triStateType:
		return KindTriState
	case uuidType:
		return KindUUID
	case runesType:
		return KindRunes
	}
	switch {
	case t.Implements(blobType):
		return KindBlob
	case t.Implements(clobType):
		return KindClob
	case t.Implements(valuerType):
		return kindValuer
	}
	switch t.Kind() {
	case reflect.Float64:
		return KindDouble
	case reflect.Float32:
		return KindFloat
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Uint8, reflect.Uint16:
		return KindInteger
	case reflect.Int, reflect.Int64, reflect.Uint, reflect.Uint32, reflect.Uint64:
		return KindBigInt
	case reflect.String:
		return KindString
	case reflect.Bool:
		return KindBool
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return KindBytes
		}
		return KindArray
	case reflect.Array:
		return KindArray
	}
	return KindUnknown
}

// indirect dereferences pointers. A nil pointer turns into a nil value with
// its element type as hint. Pointers that are themselves the handle, such as
// *big.Int or a ClobHandle with pointer receivers, are kept.
func indirect(v any, hint reflect.Type) (any, reflect.Type) {
	if v == nil {
		for hint != nil && hint.Kind() == reflect.Pointer && !keepsPointer(hint) {
			hint = hint.Elem()
		}
		return nil, hint
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !keepsPointer(rv.Type()) {
		if rv.IsNil() {
			return indirect(nil, rv.Type().Elem())
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return nil, rv.Type()
	}
	return rv.Interface(), hint
}

func keepsPointer(t reflect.Type) bool {
	if t == bigIntType {
		return true
	}
	for _, it := range []reflect.Type{holderType, blobType, clobType, valuerType} {
		if t.Implements(it) && !t.Elem().Implements(it) {
			return true
		}
	}
	return false
}

func implementsAny(t reflect.Type, it reflect.Type) bool {
	return t.Implements(it) || (t.Kind() != reflect.Pointer && reflect.PointerTo(t).Implements(it))
}

// int64Of converts a value of the integer kinds to int64. Unsigned values
// beyond math.MaxInt64 are returned unchanged as uint64.
func int64Of(v any) any {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return u
		}
		return int64(u)
	}
	return v
}
