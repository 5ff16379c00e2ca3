package style

import (
	"database/sql/driver"
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Literal layouts of date values.
const (
	dateLiteralLayout = "02.01.2006 15:04:05"
	dateLiteralFormat = "dd.mm.yyyy hh24:mi:ss"
)

// ToPlainText renders v as an SQL literal for direct embedding into a
// statement. Strings longer than the configured maximum are truncated and
// byte slices render as NULL; both cases are logged.
func (s *Style) ToPlainText(v any) string {
	if h, ok := v.(Holder); ok {
		v = h.HolderValue()
	}
	v, _ = indirect(v, nil)
	switch v := v.(type) {
	case nil:
		return "null"
	case bool:
		if v {
			return "1"
		}
		return "0"
	case TriState:
		return v.String()
	case string:
		return s.quote(v)
	case Character:
		return s.quote(v.String())
	case []rune:
		return s.quote(string(v))
	case []byte:
		s.log.Warn("byte slice can not be rendered as literal; using NULL", zap.Int("length", len(v)))
		return "NULL"
	case time.Time:
		return dateLiteral(v)
	case LocalDate:
		return dateLiteral(v.Time)
	case decimal.Decimal:
		return v.String()
	case *big.Int:
		return v.String()
	case uuid.UUID:
		return s.quote(v.String())
	case driver.Valuer:
		if _, ok := v.(ClobHandle); ok {
			break
		}
		if _, ok := v.(BlobHandle); ok {
			break
		}
		dv, err := v.Value()
		if err != nil {
			s.log.Warn("literal value failed; using NULL", zap.String("type", fmt.Sprintf("%T", v)), zap.Error(err))
			return "NULL"
		}
		return s.ToPlainText(dv)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return s.quote(rv.String())
	case reflect.Bool:
		return s.ToPlainText(rv.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return s.ToPlainText(rv.Bytes())
		}
		return s.literalList(elements(v))
	}
	return fmt.Sprint(v)
}

// literalList renders a parenthesized list. An empty list renders as (-1),
// which matches no key.
func (s *Style) literalList(elems []any) string {
	if len(elems) == 0 {
		return "(-1)"
	}
	return "(" + strings.Join(lo.Map(elems, func(e any, _ int) string {
		return s.ToPlainText(e)
	}), ",") + ")"
}

func (s *Style) quote(str string) string {
	if limit := s.cfg.MaxLiteralLength; len(str) > limit && utf8.RuneCountInString(str) > limit {
		n := utf8.RuneCountInString(str)
		str = string([]rune(str)[:limit])
		s.log.Warn("string literal truncated",
			zap.Int("length", n),
			zap.Int("max_length", limit),
			zap.String("truncated", str),
		)
	}
	return "'" + strings.ReplaceAll(str, "'", "''") + "'"
}

func dateLiteral(t time.Time) string {
	return "to_date('" + t.Format(dateLiteralLayout) + "','" + dateLiteralFormat + "')"
}

// elements returns the elements of a slice or array. Nil yields no elements
// and any other value a single element.
func elements(v any) []any {
	if v == nil {
		return nil
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []any{v}
	}
	return lo.Times(rv.Len(), func(i int) any {
		return rv.Index(i).Interface()
	})
}

// ToLikePattern converts a user pattern with '*' wildcards into a LIKE
// pattern.
func (s *Style) ToLikePattern(v any) string {
	if v == nil {
		return ""
	}
	return strings.ReplaceAll(fmt.Sprint(v), "*", s.LikeWildcard())
}

// ConcatOp returns the string concatenation operator.
func (s *Style) ConcatOp() string { return "||" }

// LikeWildcard returns the multi character LIKE wildcard.
func (s *Style) LikeWildcard() string { return "%" }
