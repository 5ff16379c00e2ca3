package main

import (
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/syssam/sqlstyle/dialect/sql/style"
)

// valueTypes maps the names accepted by --type to the Go type a value is
// parsed into. It also serves as the null type hint of the bind command.
var valueTypes = map[string]reflect.Type{
	"string":    reflect.TypeFor[string](),
	"int":       reflect.TypeFor[int64](),
	"float":     reflect.TypeFor[float64](),
	"decimal":   reflect.TypeFor[decimal.Decimal](),
	"bool":      reflect.TypeFor[bool](),
	"tristate":  reflect.TypeFor[style.TriState](),
	"date":      reflect.TypeFor[style.LocalDate](),
	"timestamp": reflect.TypeFor[time.Time](),
	"bytes":     reflect.TypeFor[[]byte](),
	"char":      reflect.TypeFor[style.Character](),
	"uuid":      reflect.TypeFor[uuid.UUID](),
}

// typeNames returns the accepted --type names for help texts.
func typeNames() string {
	names := lo.Keys(valueTypes)
	names = append(names, "null")
	slices.Sort(names)
	return strings.Join(names, "|")
}

// parseValue parses raw as a value of the named type.
func parseValue(typ, raw string) (any, error) {
	switch strings.ToLower(typ) {
	case "", "string":
		return raw, nil
	case "int":
		return strconv.ParseInt(raw, 10, 64)
	case "float":
		return strconv.ParseFloat(raw, 64)
	case "decimal":
		return decimal.NewFromString(raw)
	case "bool":
		return strconv.ParseBool(raw)
	case "tristate":
		if raw == "" || strings.EqualFold(raw, "undefined") {
			return style.Undefined, nil
		}
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, err
		}
		return style.TriStateOf(b), nil
	case "date":
		t, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return nil, err
		}
		return style.DateOf(t), nil
	case "timestamp":
		if t, err := time.Parse(time.DateTime, raw); err == nil {
			return t, nil
		}
		return time.Parse(time.RFC3339, raw)
	case "bytes":
		return []byte(raw), nil
	case "char":
		runes := []rune(raw)
		if len(runes) != 1 {
			return nil, fmt.Errorf("char value must be one character, got %q", raw)
		}
		return style.Character(runes[0]), nil
	case "uuid":
		return uuid.Parse(raw)
	case "null":
		return nil, nil
	}
	return nil, fmt.Errorf("unknown value type %q, expected one of %s", typ, typeNames())
}

// parseValues parses every raw argument as a value of the named type.
func parseValues(typ string, raw []string) ([]any, error) {
	values := make([]any, 0, len(raw))
	for _, r := range raw {
		v, err := parseValue(typ, r)
		if err != nil {
			return nil, fmt.Errorf("parse %q: %w", r, err)
		}
		values = append(values, v)
	}
	return values, nil
}
