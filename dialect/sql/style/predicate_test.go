package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPredicates(t *testing.T) {
	s := MustNew()
	tests := []struct {
		got  string
		want string
	}{
		{s.EQ("a", "b"), "a=:b"},
		{s.NEQ("a", "b"), "a<>:b"},
		{s.LT("a", "b"), "a<:b"},
		{s.LTE("a", "b"), "a<=:b"},
		{s.GT("a", "b"), "a>:b"},
		{s.GTE("a", "b"), "a>=:b"},
		{s.DateEQ("a", "b"), "a=TRUNC(:b)"},
		{s.DateNEQ("a", "b"), "a<>TRUNC(:b)"},
		{s.DateLT("a", "b"), "a<TRUNC(:b)"},
		{s.DateLTE("a", "b"), "a<=(TRUNC(:b)+(86399/86400))"},
		{s.DateGT("a", "b"), "a>TRUNC(:b)"},
		{s.DateGTE("a", "b"), "a>=TRUNC(:b)"},
		{s.DateTimeEQ("a", "b"), "a=TRUNC(:b,'MI')"},
		{s.DateTimeNEQ("a", "b"), "a<>TRUNC(:b,'MI')"},
		{s.DateTimeLT("a", "b"), "a<TRUNC(:b,'MI')"},
		{s.DateTimeLTE("a", "b"), "a<=(TRUNC(:b,'MI')+(59/86400))"},
		{s.DateTimeGT("a", "b"), "a>TRUNC(:b,'MI')"},
		{s.DateTimeGTE("a", "b"), "a>=TRUNC(:b,'MI')"},
		{s.Between("a", "b", "c"), "a BETWEEN :b AND :c"},
		{s.DateBetween("a", "b", "c"), "a BETWEEN TRUNC(:b) AND (TRUNC(:c)+(86399/86400))"},
		{s.DateTimeBetween("a", "b", "c"), "a BETWEEN TRUNC(:b,'MI') AND (TRUNC(:c,'MI')+(59/86400))"},
		{s.HasPrefix("a", "b"), "UPPER(a) LIKE UPPER(:b||'%')"},
		{s.NotHasPrefix("a", "b"), "UPPER(a) NOT LIKE UPPER(:b||'%')"},
		{s.HasSuffix("a", "b"), "UPPER(a) LIKE UPPER('%'||:b)"},
		{s.NotHasSuffix("a", "b"), "UPPER(a) NOT LIKE UPPER('%'||:b)"},
		{s.Contains("a", "b"), "UPPER(a) LIKE UPPER('%'||:b||'%')"},
		{s.NotContains("a", "b"), "UPPER(a) NOT LIKE UPPER('%'||:b||'%')"},
		{s.Like("a", "b"), "UPPER(a) LIKE UPPER(:b)"},
		{s.NotLike("a", "b"), "UPPER(a) NOT LIKE UPPER(:b)"},
		{s.IsNull("a"), "a IS NULL"},
		{s.NotNull("a"), "a IS NOT NULL"},
		{s.NumberIsNull("a"), "NVL(a,0)=0"},
		{s.NumberNotNull("a"), "NVL(a,0)<>0"},
		{s.TextIsNull("a"), "NVL(a,'0')='0'"},
		{s.TextNotNull("a"), "NVL(a,'0')<>'0'"},
		{s.In("a", "b"), "a=:b"},
		{s.NotIn("a", "b"), "NOT(a=:b)"},
		{s.Count("a"), "COUNT(a)"},
		{s.Min("a"), "MIN(a)"},
		{s.Max("a"), "MAX(a)"},
		{s.Sum("a"), "SUM(a)"},
		{s.Avg("a"), "AVG(a)"},
		{s.Median("a"), "MEDIAN(a)"},
		{s.SysdateToken(), "SYSDATE"},
		{s.UpperToken(), "UPPER"},
		{s.LowerToken(), "LOWER"},
		{s.TrimToken(), "TRIM"},
		{s.NvlToken(), "NVL"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.got)
	}
}

func TestPredicates_RelativeDates(t *testing.T) {
	s := MustNew()
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"today", s.DateIsToday("d"), "d>=TRUNC(SYSDATE) AND d<TRUNC(SYSDATE+1)"},
		{"not today", s.DateIsNotToday("d"), "(d<TRUNC(SYSDATE) OR d>=TRUNC(SYSDATE+1))"},
		{"last days", s.DateIsInLastDays("d", "n"), "d>=TRUNC(SYSDATE-(:n)) AND d<TRUNC(SYSDATE+1)"},
		{"next days", s.DateIsInNextDays("d", "n"), "d>=TRUNC(SYSDATE) AND d<TRUNC(SYSDATE+:n+1)"},
		{"days", s.DateIsInDays("d", "n"), "d>=TRUNC(SYSDATE+:n) AND d<TRUNC(SYSDATE+:n+1)"},
		{"weeks", s.DateIsInWeeks("d", "n"), "d>=TRUNC(SYSDATE+((:n)*7)) AND d<TRUNC(SYSDATE+((:n)*7)+1)"},
		{"last months", s.DateIsInLastMonths("d", "n"), "d>=TRUNC(ADD_MONTHS(SYSDATE,(-1)*(:n))) AND d<TRUNC(SYSDATE+1)"},
		{"next months", s.DateIsInNextMonths("d", "n"), "d>=TRUNC(SYSDATE) AND d<TRUNC(ADD_MONTHS(SYSDATE,:n)+1)"},
		{"months", s.DateIsInMonths("d", "n"), "d>=TRUNC(ADD_MONTHS(SYSDATE,:n)) AND d<TRUNC(ADD_MONTHS(SYSDATE,:n)+1)"},
		{"le days", s.DateIsInLEDays("d", "n"), "d<TRUNC(SYSDATE+:n+1)"},
		{"le weeks", s.DateIsInLEWeeks("d", "n"), "d<TRUNC(SYSDATE+((:n)*7)+1)"},
		{"le months", s.DateIsInLEMonths("d", "n"), "d<TRUNC(ADD_MONTHS(SYSDATE,:n)+1)"},
		{"ge days", s.DateIsInGEDays("d", "n"), "d>=TRUNC(SYSDATE+:n)"},
		{"ge weeks", s.DateIsInGEWeeks("d", "n"), "d>=TRUNC(SYSDATE+((:n)*7))"},
		{"ge months", s.DateIsInGEMonths("d", "n"), "d>=TRUNC(ADD_MONTHS(SYSDATE,:n))"},
		{"now", s.DateTimeIsNow("d"), "(d>=TRUNC(SYSDATE,'MI') AND d<(TRUNC(SYSDATE,'MI')+(1/24/60)))"},
		{"not now", s.DateTimeIsNotNow("d"), "(d<TRUNC(SYSDATE,'MI') OR d>=(TRUNC(SYSDATE,'MI')+(1/24/60)))"},
		{"le minutes", s.DateTimeIsInLEMinutes("d", "n"), "d<(TRUNC(SYSDATE,'MI')+((:n+1)/24/60))"},
		{"le hours", s.DateTimeIsInLEHours("d", "n"), "d<(TRUNC(SYSDATE,'MI')+((1/24/60)+(:n/24)))"},
		{"ge minutes", s.DateTimeIsInGEMinutes("d", "n"), "d>=(TRUNC(SYSDATE,'MI')+(:n/24/60))"},
		{"ge hours", s.DateTimeIsInGEHours("d", "n"), "d>=(TRUNC(SYSDATE,'MI')+(:n/24))"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestPredicates_TimeOfDay(t *testing.T) {
	const clk = "(TO_CHAR(SYSDATE,'HH24')*60)+TO_CHAR(SYSDATE,'MI')"
	s := MustNew()
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"now", s.TimeIsNow("t"), "t>=(" + clk + ")/24/60 AND t<(" + clk + "+(1/24/60))/24/60"},
		{"not now", s.TimeIsNotNow("t"), "(t<(" + clk + ")/24/60 OR t>(" + clk + "+(1/24/60))/24/60)"},
		{"minutes", s.TimeIsInMinutes("t", "n"), "t>=(" + clk + "+(:n/24/60))/24/60 AND t<(" + clk + "+((:n+1)/24/60))/24/60"},
		{"hours", s.TimeIsInHours("t", "n"), "t>=(" + clk + "+(:n/24))/24/60 AND t<(" + clk + "+(:n/24)+(1/24/60))/24/60"},
		{"le minutes", s.TimeIsInLEMinutes("t", "n"), "t<(" + clk + "+((:n+1)/24/60))/24/60"},
		{"le hours", s.TimeIsInLEHours("t", "n"), "t<(" + clk + "+(:n/24)+(1/24/60))/24/60"},
		{"ge minutes", s.TimeIsInGEMinutes("t", "n"), "t>=(" + clk + "+(:n/24/60))/24/60"},
		{"ge hours", s.TimeIsInGEHours("t", "n"), "t>=(" + clk + "+(:n/24))/24/60"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestPredicates_PlainBindNames(t *testing.T) {
	s := MustNew()
	assert.Equal(t, "P.NAME=42", s.EQ("P.NAME", "&42"))
	assert.Equal(t, "UPPER(P.NAME) NOT LIKE UPPER('%test')", s.NotLike("P.NAME", "&'%test'"))
	assert.Equal(t, "d<TRUNC(SYSDATE+3+1)", s.DateIsInLEDays("d", "&3"))
	assert.Equal(t, "a BETWEEN 1 AND :hi", s.Between("a", "&1", "hi"))

	custom := MustNew(WithConfig(Config{
		Dialect:          "postgres",
		MaxListSize:      10,
		MaxLiteralLength: 10,
		BindMarker:       "@",
		PlainMarker:      "#",
	}))
	assert.Equal(t, "a=@b", custom.EQ("a", "b"))
	assert.Equal(t, "a=@&b", custom.EQ("a", "&b"))
	assert.Equal(t, "a=b", custom.EQ("a", "#b"))
}
