package style

import (
	"strings"

	"github.com/samber/lo"
)

// InList renders attr IN (values...) as literal lists of at most MaxListSize
// elements, OR-combined. values may be nil, a single value or a slice or
// array; no values render as attr IS NULL.
func (s *Style) InList(attr string, values any) string {
	return s.inList(attr, " IN ", " OR ", values, s.IsNull)
}

// NotInList renders attr NOT IN (values...) as literal lists of at most
// MaxListSize elements, AND-combined. No values render as attr IS NOT NULL.
func (s *Style) NotInList(attr string, values any) string {
	return s.inList(attr, " NOT IN ", " AND ", values, s.NotNull)
}

// IsCreatingInListGeneratingBind reports whether InList renders bind
// parameters for values. The style always renders literals.
func (s *Style) IsCreatingInListGeneratingBind(any) bool { return false }

func (s *Style) inList(attr, op, join string, values any, empty func(string) string) string {
	elems := elements(values)
	if len(elems) == 0 {
		return empty(attr)
	}
	chunks := lo.Map(lo.Chunk(elems, s.cfg.MaxListSize), func(chunk []any, _ int) string {
		return "( " + attr + op + s.literalList(chunk) + ")"
	})
	return "(" + strings.Join(chunks, join) + ")"
}
