package style

import (
	"context"
	"reflect"
)

// SQLStyle is the contract of a dialect style. Bind names passed to the
// predicate methods are parameter names, or rendered literals when they start
// with the plain marker.
type SQLStyle interface {
	Dialect() string
	IsBlobEnabled() bool
	IsClobEnabled() bool
	IsLargeString(s string) bool
	MaxListSize() int

	// Value marshalling.
	BuildBindFor(v any, nullType reflect.Type) (Bind, error)
	WriteBind(stmt Statement, index int, b Bind) error
	ReadBind(row Row, meta ColumnMeta, code TypeCode, index int) (any, error)
	TypeCodeFor(t reflect.Type) TypeCode
	RegisterOutput(stmt OutputRegistrar, index int, t reflect.Type) error

	// Literals.
	ToPlainText(v any) string
	ToLikePattern(v any) string
	ConcatOp() string
	LikeWildcard() string

	// Comparisons.
	EQ(attr, b string) string
	NEQ(attr, b string) string
	LT(attr, b string) string
	LTE(attr, b string) string
	GT(attr, b string) string
	GTE(attr, b string) string
	DateEQ(attr, b string) string
	DateNEQ(attr, b string) string
	DateLT(attr, b string) string
	DateLTE(attr, b string) string
	DateGT(attr, b string) string
	DateGTE(attr, b string) string
	DateTimeEQ(attr, b string) string
	DateTimeNEQ(attr, b string) string
	DateTimeLT(attr, b string) string
	DateTimeLTE(attr, b string) string
	DateTimeGT(attr, b string) string
	DateTimeGTE(attr, b string) string
	Between(attr, b1, b2 string) string
	DateBetween(attr, b1, b2 string) string
	DateTimeBetween(attr, b1, b2 string) string

	// Pattern matching.
	HasPrefix(attr, b string) string
	NotHasPrefix(attr, b string) string
	HasSuffix(attr, b string) string
	NotHasSuffix(attr, b string) string
	Contains(attr, b string) string
	NotContains(attr, b string) string
	Like(attr, b string) string
	NotLike(attr, b string) string

	// Null checks.
	IsNull(attr string) string
	NotNull(attr string) string
	NumberIsNull(attr string) string
	NumberNotNull(attr string) string
	TextIsNull(attr string) string
	TextNotNull(attr string) string

	// Membership.
	In(attr, b string) string
	NotIn(attr, b string) string
	InList(attr string, values any) string
	NotInList(attr string, values any) string
	IsCreatingInListGeneratingBind(values any) bool

	// Relative date windows.
	DateIsToday(attr string) string
	DateIsNotToday(attr string) string
	DateIsInLastDays(attr, b string) string
	DateIsInNextDays(attr, b string) string
	DateIsInDays(attr, b string) string
	DateIsInWeeks(attr, b string) string
	DateIsInLastMonths(attr, b string) string
	DateIsInNextMonths(attr, b string) string
	DateIsInMonths(attr, b string) string
	DateIsInLEDays(attr, b string) string
	DateIsInLEWeeks(attr, b string) string
	DateIsInLEMonths(attr, b string) string
	DateIsInGEDays(attr, b string) string
	DateIsInGEWeeks(attr, b string) string
	DateIsInGEMonths(attr, b string) string
	DateTimeIsNow(attr string) string
	DateTimeIsNotNow(attr string) string
	DateTimeIsInLEMinutes(attr, b string) string
	DateTimeIsInLEHours(attr, b string) string
	DateTimeIsInGEMinutes(attr, b string) string
	DateTimeIsInGEHours(attr, b string) string
	TimeIsNow(attr string) string
	TimeIsNotNow(attr string) string
	TimeIsInMinutes(attr, b string) string
	TimeIsInHours(attr, b string) string
	TimeIsInLEMinutes(attr, b string) string
	TimeIsInLEHours(attr, b string) string
	TimeIsInGEMinutes(attr, b string) string
	TimeIsInGEHours(attr, b string) string

	// Aggregations and tokens.
	Count(attr string) string
	Min(attr string) string
	Max(attr string) string
	Sum(attr string) string
	Avg(attr string) string
	Median(attr string) string
	SysdateToken() string
	UpperToken() string
	LowerToken() string
	TrimToken() string
	NvlToken() string

	// Lifecycle hooks.
	TestConnection(ctx context.Context, db Pinger) error
	Commit()
	Rollback()
}

var _ SQLStyle = (*Style)(nil)
