package style

import (
	"database/sql"
	"errors"
	"math"
	"math/big"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildBindFor(t *testing.T) {
	var (
		now  = time.Date(2024, 3, 1, 13, 45, 10, 0, time.UTC)
		dec  = decimal.RequireFromString("12.50")
		id   = uuid.MustParse("0f8fad5b-d9cb-469f-a165-70867728950e")
		huge = new(big.Int).Lsh(big.NewInt(1), 80)
		str  = "value"
	)
	tests := []struct {
		name  string
		value any
		hint  reflect.Type
		code  TypeCode
		want  any
	}{
		{name: "untyped nil", code: Null},
		{name: "timestamp", value: now, code: Timestamp, want: now},
		{name: "date", value: DateOf(now), code: Date, want: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{name: "float64", value: 1.5, code: Double, want: 1.5},
		{name: "float32", value: float32(0.25), code: Float, want: 0.25},
		{name: "int32", value: int32(7), code: Integer, want: int64(7)},
		{name: "int8", value: int8(-3), code: Integer, want: int64(-3)},
		{name: "uint16", value: uint16(9), code: Integer, want: int64(9)},
		{name: "int", value: 42, code: BigInt, want: int64(42)},
		{name: "int64", value: int64(math.MaxInt64), code: BigInt, want: int64(math.MaxInt64)},
		{name: "uint64 beyond int64", value: uint64(math.MaxUint64), code: BigInt, want: "18446744073709551615"},
		{name: "big int", value: big.NewInt(5), code: BigInt, want: int64(5)},
		{name: "huge big int", value: huge, code: BigInt, want: huge.String()},
		{name: "decimal", value: dec, code: Numeric, want: dec},
		{name: "char", value: Character('x'), code: VarChar, want: "x"},
		{name: "string", value: "abc", code: VarChar, want: "abc"},
		{name: "string pointer", value: &str, code: VarChar, want: "value"},
		{name: "runes", value: []rune("ab"), code: Clob, want: "ab"},
		{name: "bytes", value: []byte{1, 2}, code: Blob, want: []byte{1, 2}},
		{name: "bool true", value: true, code: Integer, want: int64(1)},
		{name: "bool false", value: false, code: Integer, want: int64(0)},
		{name: "tristate true", value: True, code: Integer, want: int64(1)},
		{name: "tristate false", value: False, code: Integer, want: int64(0)},
		{name: "tristate undefined", value: Undefined, code: Integer},
		{name: "blob handle", value: ByteBlob{1}, code: Blob, want: ByteBlob{1}},
		{name: "clob handle", value: StringClob("c"), code: Clob, want: StringClob("c")},
		{name: "uuid", value: id, code: VarChar, want: id.String()},
		{name: "slice", value: []int{1, 2}, code: Array, want: []int{1, 2}},
		{name: "nil int32", hint: reflect.TypeFor[int32](), code: Integer},
		{name: "nil bool", hint: reflect.TypeFor[bool](), code: Integer},
		{name: "nil bytes", hint: reflect.TypeFor[[]byte](), code: Blob},
		{name: "nil string", hint: reflect.TypeFor[string](), code: VarChar},
		{name: "nil time pointer", hint: reflect.TypeFor[*time.Time](), code: Timestamp},
		{name: "nil unknown", hint: reflect.TypeFor[struct{}](), code: VarChar},
		{name: "typed nil pointer", value: (*int64)(nil), code: BigInt},
		{name: "nil holder hint", hint: reflect.TypeFor[*Box[int32]](), code: Integer},
		{name: "holder", value: NewBox("x"), code: VarChar, want: "x"},
		{name: "empty holder", value: &Box[int64]{}, code: BigInt},
		{name: "null string", value: sql.NullString{}, code: VarChar},
		{name: "valid int64", value: sql.NullInt64{Int64: 3, Valid: true}, code: BigInt, want: int64(3)},
		{name: "null time", value: sql.NullTime{}, code: Timestamp},
		{name: "valid decimal", value: decimal.NullDecimal{Decimal: dec, Valid: true}, code: Numeric, want: dec},
		{name: "null decimal", value: decimal.NullDecimal{}, code: Numeric},
	}
	s := MustNew()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := s.BuildBindFor(tt.value, tt.hint)
			require.NoError(t, err)
			assert.Equal(t, tt.code, b.TypeCode())
			assert.Equal(t, tt.want, b.Value())
			assert.Equal(t, tt.want == nil, b.IsNull())
		})
	}
}

func TestBuildBindFor_LargeStrings(t *testing.T) {
	t.Run("clob", func(t *testing.T) {
		s := MustNew(WithLargeStringThreshold(3))
		b, err := s.BuildBindFor("abc", nil)
		require.NoError(t, err)
		assert.Equal(t, VarChar, b.TypeCode())
		b, err = s.BuildBindFor("abcd", nil)
		require.NoError(t, err)
		assert.Equal(t, Clob, b.TypeCode())
		assert.Equal(t, "abcd", b.Value())
	})
	t.Run("long varchar", func(t *testing.T) {
		s := MustNew(WithLargeStringThreshold(3), WithClob(false))
		b, err := s.BuildBindFor("abcd", nil)
		require.NoError(t, err)
		assert.Equal(t, LongVarChar, b.TypeCode())
		b, err = s.BuildBindFor([]rune("a"), nil)
		require.NoError(t, err)
		assert.Equal(t, LongVarChar, b.TypeCode())
	})
	t.Run("runes count", func(t *testing.T) {
		s := MustNew(WithLargeStringThreshold(3))
		b, err := s.BuildBindFor("äöü", nil)
		require.NoError(t, err)
		assert.Equal(t, VarChar, b.TypeCode(), "threshold counts characters, not bytes")
	})
	t.Run("default threshold", func(t *testing.T) {
		s := MustNew()
		assert.False(t, s.IsLargeString(strings.Repeat("x", DefaultLargeStringThreshold)))
		assert.True(t, s.IsLargeString(strings.Repeat("x", DefaultLargeStringThreshold+1)))
	})
}

func TestBuildBindFor_BlobDisabled(t *testing.T) {
	s := MustNew(WithBlob(false))
	b, err := s.BuildBindFor([]byte{1}, nil)
	require.NoError(t, err)
	assert.Equal(t, LongVarBinary, b.TypeCode())
	b, err = s.BuildBindFor(nil, reflect.TypeFor[[]byte]())
	require.NoError(t, err)
	assert.Equal(t, LongVarBinary, b.TypeCode())
	assert.True(t, b.IsNull())
	assert.Equal(t, LongVarBinary, s.TypeCodeFor(reflect.TypeFor[[]byte]()))
}

func TestBuildBindFor_Unknown(t *testing.T) {
	type point struct{ X, Y int }
	s := MustNew()
	_, err := s.BuildBindFor(point{1, 2}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoBindMapping))
	var berr *BindError
	require.True(t, errors.As(err, &berr))
	assert.Equal(t, reflect.TypeFor[point](), berr.Type)
	assert.Contains(t, err.Error(), "point")
}

func TestTypeCodeFor(t *testing.T) {
	s := MustNew()
	tests := []struct {
		typ  reflect.Type
		want TypeCode
	}{
		{reflect.TypeFor[time.Time](), Timestamp},
		{reflect.TypeFor[*time.Time](), Timestamp},
		{reflect.TypeFor[LocalDate](), Date},
		{reflect.TypeFor[float64](), Double},
		{reflect.TypeFor[float32](), Float},
		{reflect.TypeFor[int32](), Integer},
		{reflect.TypeFor[int64](), BigInt},
		{reflect.TypeFor[*big.Int](), BigInt},
		{reflect.TypeFor[decimal.Decimal](), Numeric},
		{reflect.TypeFor[string](), VarChar},
		{reflect.TypeFor[[]rune](), VarChar},
		{reflect.TypeFor[[]byte](), Blob},
		{reflect.TypeFor[bool](), Integer},
		{reflect.TypeFor[TriState](), Integer},
		{reflect.TypeFor[ByteBlob](), Blob},
		{reflect.TypeFor[StringClob](), Clob},
		{reflect.TypeFor[[]string](), Array},
		{reflect.TypeFor[struct{}](), Numeric},
		{reflect.TypeFor[map[string]int](), Numeric},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, s.TypeCodeFor(tt.typ))
		})
	}
}

type registrar struct {
	index int
	code  TypeCode
}

func (r *registrar) RegisterOutParameter(index int, code TypeCode) error {
	r.index, r.code = index, code
	return nil
}

func TestRegisterOutput(t *testing.T) {
	s := MustNew()
	r := &registrar{}
	require.NoError(t, s.RegisterOutput(r, 2, reflect.TypeFor[string]()))
	assert.Equal(t, 2, r.index)
	assert.Equal(t, VarChar, r.code)

	err := s.RegisterOutput(r, 3, nil)
	require.ErrorIs(t, err, ErrNilOutputType)
	assert.Contains(t, err.Error(), "index 3")
}
