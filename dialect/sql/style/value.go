package style

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"
)

// Holder is a mutable single value box. A holder carries its declared element
// type so that a nil value can still be bound with the right type code.
type Holder interface {
	HolderValue() any
	HolderType() reflect.Type
}

// Box is the generic Holder implementation.
type Box[T any] struct {
	v   T
	set bool
}

// NewBox returns a Box holding v.
func NewBox[T any](v T) *Box[T] {
	return &Box[T]{v: v, set: true}
}

// Get returns the boxed value.
func (b *Box[T]) Get() T {
	if b == nil {
		var zero T
		return zero
	}
	return b.v
}

// Set replaces the boxed value.
func (b *Box[T]) Set(v T) {
	b.v, b.set = v, true
}

// Clear empties the box. An empty box binds as a typed null.
func (b *Box[T]) Clear() {
	var zero T
	b.v, b.set = zero, false
}

// HolderValue implements Holder. An empty or nil box yields nil.
func (b *Box[T]) HolderValue() any {
	if b == nil || !b.set {
		return nil
	}
	return b.v
}

// HolderType implements Holder. It is safe to call on a nil *Box.
func (b *Box[T]) HolderType() reflect.Type {
	return reflect.TypeFor[T]()
}

// TriState is a three valued boolean.
type TriState int8

// TriState values. The zero value is Undefined.
const (
	Undefined TriState = iota
	True
	False
)

// TriStateOf returns True or False for b.
func TriStateOf(b bool) TriState {
	if b {
		return True
	}
	return False
}

// TriStateFromInt is the inverse of IntValue: 1 is True, 0 is False and nil
// is Undefined. Any other number is reported as an error.
func TriStateFromInt(v any) (TriState, error) {
	switch v := v.(type) {
	case nil:
		return Undefined, nil
	case int64:
		switch v {
		case 1:
			return True, nil
		case 0:
			return False, nil
		}
	}
	return Undefined, fmt.Errorf("style: no tristate for %v", v)
}

// IntValue returns the integer encoding of t: True is 1, False is 0 and
// Undefined is nil, which binds as SQL NULL.
func (t TriState) IntValue() any {
	switch t {
	case True:
		return int64(1)
	case False:
		return int64(0)
	default:
		return nil
	}
}

// String returns "true", "false" or "undefined".
func (t TriState) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "undefined"
	}
}

// Character is a single character value.
type Character rune

// String returns the character as a string.
func (c Character) String() string { return string(rune(c)) }

// LocalDate is a date value bound with the Date type code.
type LocalDate struct {
	time.Time
}

// DateOf returns the LocalDate of t, keeping its location.
func DateOf(t time.Time) LocalDate {
	y, m, d := t.Date()
	return LocalDate{time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// ClobHandle is a character large object handle.
type ClobHandle interface {
	// Length returns the advertised length in bytes. Zero or a negative value
	// means the length is not known up front.
	Length() (int64, error)
	// CharacterStream opens a reader over the content. The caller closes it.
	CharacterStream() (io.ReadCloser, error)
}

// BlobHandle is a binary large object handle.
type BlobHandle interface {
	// Length returns the size in bytes.
	Length() (int64, error)
	// Bytes returns n bytes starting at the 1-based position pos.
	Bytes(pos int64, n int) ([]byte, error)
}

// StringClob is an in-memory ClobHandle.
type StringClob string

// Length implements ClobHandle.
func (c StringClob) Length() (int64, error) { return int64(len(c)), nil }

// CharacterStream implements ClobHandle.
func (c StringClob) CharacterStream() (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader(string(c))), nil
}

// ByteBlob is an in-memory BlobHandle.
type ByteBlob []byte

// Length implements BlobHandle.
func (b ByteBlob) Length() (int64, error) { return int64(len(b)), nil }

// Bytes implements BlobHandle.
func (b ByteBlob) Bytes(pos int64, n int) ([]byte, error) {
	if pos < 1 || n < 0 || pos-1+int64(n) > int64(len(b)) {
		return nil, fmt.Errorf("style: blob range [%d, %d) out of bounds (length %d)", pos, pos+int64(n), len(b))
	}
	return bytes.Clone(b[pos-1 : pos-1+int64(n)]), nil
}

// errNoHolderType is returned when a holder type hint cannot be resolved.
var errNoHolderType = errors.New("style: holder type has no element type")

// holderElem resolves the declared element type of a Holder type. It calls
// HolderType on the zero value of t, which for pointer types is a typed nil.
func holderElem(t reflect.Type) (et reflect.Type, err error) {
	defer func() {
		if r := recover(); r != nil {
			et, err = nil, fmt.Errorf("%w: %v", errNoHolderType, r)
		}
	}()
	if !t.Implements(holderType) {
		t = reflect.PointerTo(t)
	}
	h, ok := reflect.Zero(t).Interface().(Holder)
	if !ok {
		return nil, errNoHolderType
	}
	if et = h.HolderType(); et == nil {
		return nil, errNoHolderType
	}
	return et, nil
}
