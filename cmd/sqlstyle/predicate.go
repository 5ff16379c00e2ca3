package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/syssam/sqlstyle/dialect/sql/style"
)

// Predicate operators by arity, keyed by their command line name.
var (
	unaryOps = map[string]func(style.SQLStyle, string) string{
		"is-null":             style.SQLStyle.IsNull,
		"not-null":            style.SQLStyle.NotNull,
		"number-is-null":      style.SQLStyle.NumberIsNull,
		"number-not-null":     style.SQLStyle.NumberNotNull,
		"text-is-null":        style.SQLStyle.TextIsNull,
		"text-not-null":       style.SQLStyle.TextNotNull,
		"date-is-today":       style.SQLStyle.DateIsToday,
		"date-is-not-today":   style.SQLStyle.DateIsNotToday,
		"datetime-is-now":     style.SQLStyle.DateTimeIsNow,
		"datetime-is-not-now": style.SQLStyle.DateTimeIsNotNow,
		"time-is-now":         style.SQLStyle.TimeIsNow,
		"time-is-not-now":     style.SQLStyle.TimeIsNotNow,
		"count":               style.SQLStyle.Count,
		"min":                 style.SQLStyle.Min,
		"max":                 style.SQLStyle.Max,
		"sum":                 style.SQLStyle.Sum,
		"avg":                 style.SQLStyle.Avg,
		"median":              style.SQLStyle.Median,
	}
	binaryOps = map[string]func(style.SQLStyle, string, string) string{
		"eq":                     style.SQLStyle.EQ,
		"neq":                    style.SQLStyle.NEQ,
		"lt":                     style.SQLStyle.LT,
		"lte":                    style.SQLStyle.LTE,
		"gt":                     style.SQLStyle.GT,
		"gte":                    style.SQLStyle.GTE,
		"date-eq":                style.SQLStyle.DateEQ,
		"date-neq":               style.SQLStyle.DateNEQ,
		"date-lt":                style.SQLStyle.DateLT,
		"date-lte":               style.SQLStyle.DateLTE,
		"date-gt":                style.SQLStyle.DateGT,
		"date-gte":               style.SQLStyle.DateGTE,
		"datetime-eq":            style.SQLStyle.DateTimeEQ,
		"datetime-neq":           style.SQLStyle.DateTimeNEQ,
		"datetime-lt":            style.SQLStyle.DateTimeLT,
		"datetime-lte":           style.SQLStyle.DateTimeLTE,
		"datetime-gt":            style.SQLStyle.DateTimeGT,
		"datetime-gte":           style.SQLStyle.DateTimeGTE,
		"has-prefix":             style.SQLStyle.HasPrefix,
		"not-has-prefix":         style.SQLStyle.NotHasPrefix,
		"has-suffix":             style.SQLStyle.HasSuffix,
		"not-has-suffix":         style.SQLStyle.NotHasSuffix,
		"contains":               style.SQLStyle.Contains,
		"not-contains":           style.SQLStyle.NotContains,
		"like":                   style.SQLStyle.Like,
		"not-like":               style.SQLStyle.NotLike,
		"in":                     style.SQLStyle.In,
		"not-in":                 style.SQLStyle.NotIn,
		"date-in-last-days":      style.SQLStyle.DateIsInLastDays,
		"date-in-next-days":      style.SQLStyle.DateIsInNextDays,
		"date-in-days":           style.SQLStyle.DateIsInDays,
		"date-in-weeks":          style.SQLStyle.DateIsInWeeks,
		"date-in-last-months":    style.SQLStyle.DateIsInLastMonths,
		"date-in-next-months":    style.SQLStyle.DateIsInNextMonths,
		"date-in-months":         style.SQLStyle.DateIsInMonths,
		"date-in-le-days":        style.SQLStyle.DateIsInLEDays,
		"date-in-le-weeks":       style.SQLStyle.DateIsInLEWeeks,
		"date-in-le-months":      style.SQLStyle.DateIsInLEMonths,
		"date-in-ge-days":        style.SQLStyle.DateIsInGEDays,
		"date-in-ge-weeks":       style.SQLStyle.DateIsInGEWeeks,
		"date-in-ge-months":      style.SQLStyle.DateIsInGEMonths,
		"datetime-in-le-minutes": style.SQLStyle.DateTimeIsInLEMinutes,
		"datetime-in-le-hours":   style.SQLStyle.DateTimeIsInLEHours,
		"datetime-in-ge-minutes": style.SQLStyle.DateTimeIsInGEMinutes,
		"datetime-in-ge-hours":   style.SQLStyle.DateTimeIsInGEHours,
		"time-in-minutes":        style.SQLStyle.TimeIsInMinutes,
		"time-in-hours":          style.SQLStyle.TimeIsInHours,
		"time-in-le-minutes":     style.SQLStyle.TimeIsInLEMinutes,
		"time-in-le-hours":       style.SQLStyle.TimeIsInLEHours,
		"time-in-ge-minutes":     style.SQLStyle.TimeIsInGEMinutes,
		"time-in-ge-hours":       style.SQLStyle.TimeIsInGEHours,
	}
	ternaryOps = map[string]func(style.SQLStyle, string, string, string) string{
		"between":          style.SQLStyle.Between,
		"date-between":     style.SQLStyle.DateBetween,
		"datetime-between": style.SQLStyle.DateTimeBetween,
	}
)

// operators returns every operator name, sorted.
func operators() []string {
	names := slices.Concat(lo.Keys(unaryOps), lo.Keys(binaryOps), lo.Keys(ternaryOps))
	slices.Sort(names)
	return names
}

func newPredicateCmd(a *app) *cobra.Command {
	var attr, bind, bind2 string
	cmd := &cobra.Command{
		Use:     "predicate OPERATOR",
		Aliases: []string{"pred"},
		Short:   "Render a predicate or aggregation fragment",
		Long: `Render a predicate or aggregation fragment.

Bind names are rendered as parameters, prefixed with the bind marker. A bind
name starting with the plain marker is emitted as is, without the marker.

Operators: ` + strings.Join(operators(), ", "),
		Example: `  sqlstyle predicate eq --attr NAME --bind name
  sqlstyle predicate between --attr PRICE --bind "&10" --bind2 "&20"
  sqlstyle predicate date-is-today --attr CREATED`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return operators(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			op := strings.ToLower(args[0])
			out, err := buildPredicate(a.style, op, attr, bind, bind2)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}
	cmd.Flags().StringVarP(&attr, "attr", "a", "", "attribute (column) name")
	cmd.Flags().StringVarP(&bind, "bind", "b", "", "bind name, or a literal prefixed with the plain marker")
	cmd.Flags().StringVar(&bind2, "bind2", "", "second bind name for between operators")
	_ = cmd.MarkFlagRequired("attr")
	return cmd
}

func buildPredicate(s style.SQLStyle, op, attr, bind, bind2 string) (string, error) {
	if f, ok := unaryOps[op]; ok {
		return f(s, attr), nil
	}
	if f, ok := binaryOps[op]; ok {
		if bind == "" {
			return "", fmt.Errorf("operator %q needs --bind", op)
		}
		return f(s, attr, bind), nil
	}
	if f, ok := ternaryOps[op]; ok {
		if bind == "" || bind2 == "" {
			return "", fmt.Errorf("operator %q needs --bind and --bind2", op)
		}
		return f(s, attr, bind, bind2), nil
	}
	return "", fmt.Errorf("unknown operator %q", op)
}
