package style

import "fmt"

// Bind pairs a driver type code with a value. It is the unit handed from
// BuildBindFor to WriteBind. A Bind is never modified after construction.
type Bind struct {
	code  TypeCode
	value any
}

// NewBind returns a Bind of the given type code and value.
func NewBind(code TypeCode, value any) Bind {
	return Bind{code: code, value: value}
}

// NullBind returns a null Bind of the given type code.
func NullBind(code TypeCode) Bind {
	return Bind{code: code}
}

// TypeCode returns the driver type code of the bind.
func (b Bind) TypeCode() TypeCode { return b.code }

// Value returns the bound value, nil for SQL NULL.
func (b Bind) Value() any { return b.value }

// IsNull reports whether the bind carries SQL NULL.
func (b Bind) IsNull() bool { return b.value == nil }

// String implements fmt.Stringer.
func (b Bind) String() string {
	if b.value == nil {
		return fmt.Sprintf("%s(null)", b.code)
	}
	switch v := b.value.(type) {
	case string:
		if len(v) > 64 {
			return fmt.Sprintf("%s(%q...)", b.code, v[:64])
		}
		return fmt.Sprintf("%s(%q)", b.code, v)
	case []byte:
		return fmt.Sprintf("%s(%d bytes)", b.code, len(v))
	}
	return fmt.Sprintf("%s(%v)", b.code, b.value)
}
