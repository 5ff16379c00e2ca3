package style

import "strings"

const (
	sysdate = "SYSDATE"

	// oneMinute is one minute as a fraction of a day.
	oneMinute = "(1/24/60)"

	// endOfDay and endOfMinute approximate the last second of a day or
	// minute. They are part of the rendered boundary and must not be replaced
	// by half-open ranges.
	endOfDay    = "(86399/86400)"
	endOfMinute = "(59/86400)"

	// clock is the current time of day in minutes.
	clock = "(TO_CHAR(SYSDATE,'HH24')*60)+TO_CHAR(SYSDATE,'MI')"
)

// bind renders a bind name reference. A name starting with the plain marker
// is an already rendered literal and is used without the marker; any other
// name is prefixed with the bind marker.
func (s *Style) bind(name string) string {
	if strings.HasPrefix(name, s.cfg.PlainMarker) {
		return name[len(s.cfg.PlainMarker):]
	}
	return s.cfg.BindMarker + name
}

func truncDay(x string) string    { return "TRUNC(" + x + ")" }
func truncMinute(x string) string { return "TRUNC(" + x + ",'MI')" }
func addDays(x, n string) string  { return x + "+" + n }
func subDays(x, n string) string  { return x + "-(" + n + ")" }
func addWeeks(x, n string) string { return x + "+((" + n + ")*7)" }
func addMonths(x, n string) string {
	return "ADD_MONTHS(" + x + "," + n + ")"
}
func negate(n string) string      { return "(-1)*(" + n + ")" }
func minutes(n string) string     { return "(" + n + "/24/60)" }
func hours(n string) string       { return "(" + n + "/24)" }
func plus(x, y string) string     { return "(" + x + "+" + y + ")" }
func paren(x string) string       { return "(" + x + ")" }
func dayFraction(m string) string { return "(" + m + ")/24/60" }
func nextDay(x string) string     { return truncDay(addDays(x, "1")) }
func within(a, lo, hi string) string {
	return a + ">=" + lo + " AND " + a + "<" + hi
}
func outside(a, lo, hi string) string {
	return "(" + a + "<" + lo + " OR " + a + ">=" + hi + ")"
}

// EQ returns a predicate that checks if attr equals the bind.
func (s *Style) EQ(attr, b string) string { return attr + "=" + s.bind(b) }

// NEQ returns a predicate that checks if attr does not equal the bind.
func (s *Style) NEQ(attr, b string) string { return attr + "<>" + s.bind(b) }

// LT returns a predicate that checks if attr is less than the bind.
func (s *Style) LT(attr, b string) string { return attr + "<" + s.bind(b) }

// LTE returns a predicate that checks if attr is less than or equal to the bind.
func (s *Style) LTE(attr, b string) string { return attr + "<=" + s.bind(b) }

// GT returns a predicate that checks if attr is greater than the bind.
func (s *Style) GT(attr, b string) string { return attr + ">" + s.bind(b) }

// GTE returns a predicate that checks if attr is greater than or equal to the bind.
func (s *Style) GTE(attr, b string) string { return attr + ">=" + s.bind(b) }

// DateEQ returns a predicate that checks if attr equals the start of the bound day.
func (s *Style) DateEQ(attr, b string) string { return attr + "=" + truncDay(s.bind(b)) }

// DateNEQ returns a predicate that checks if attr differs from the start of the bound day.
func (s *Style) DateNEQ(attr, b string) string { return attr + "<>" + truncDay(s.bind(b)) }

// DateLT returns a predicate that checks if attr is before the bound day.
func (s *Style) DateLT(attr, b string) string { return attr + "<" + truncDay(s.bind(b)) }

// DateLTE returns a predicate that checks if attr is at or before the end of the bound day.
func (s *Style) DateLTE(attr, b string) string {
	return attr + "<=" + plus(truncDay(s.bind(b)), endOfDay)
}

// DateGT returns a predicate that checks if attr is after the start of the bound day.
func (s *Style) DateGT(attr, b string) string { return attr + ">" + truncDay(s.bind(b)) }

// DateGTE returns a predicate that checks if attr is at or after the start of the bound day.
func (s *Style) DateGTE(attr, b string) string { return attr + ">=" + truncDay(s.bind(b)) }

// DateTimeEQ returns a predicate that checks if attr equals the start of the bound minute.
func (s *Style) DateTimeEQ(attr, b string) string { return attr + "=" + truncMinute(s.bind(b)) }

// DateTimeNEQ returns a predicate that checks if attr differs from the start of the bound minute.
func (s *Style) DateTimeNEQ(attr, b string) string { return attr + "<>" + truncMinute(s.bind(b)) }

// DateTimeLT returns a predicate that checks if attr is before the bound minute.
func (s *Style) DateTimeLT(attr, b string) string { return attr + "<" + truncMinute(s.bind(b)) }

// DateTimeLTE returns a predicate that checks if attr is at or before the end of the bound minute.
func (s *Style) DateTimeLTE(attr, b string) string {
	return attr + "<=" + plus(truncMinute(s.bind(b)), endOfMinute)
}

// DateTimeGT returns a predicate that checks if attr is after the start of the bound minute.
func (s *Style) DateTimeGT(attr, b string) string { return attr + ">" + truncMinute(s.bind(b)) }

// DateTimeGTE returns a predicate that checks if attr is at or after the start of the bound minute.
func (s *Style) DateTimeGTE(attr, b string) string { return attr + ">=" + truncMinute(s.bind(b)) }

// Between renders an inclusive range.
func (s *Style) Between(attr, b1, b2 string) string {
	return attr + " BETWEEN " + s.bind(b1) + " AND " + s.bind(b2)
}

// DateBetween renders a range from the start of the first day to the end of
// the last day.
func (s *Style) DateBetween(attr, b1, b2 string) string {
	return attr + " BETWEEN " + truncDay(s.bind(b1)) + " AND " + plus(truncDay(s.bind(b2)), endOfDay)
}

// DateTimeBetween renders a range from the start of the first minute to the
// end of the last minute.
func (s *Style) DateTimeBetween(attr, b1, b2 string) string {
	return attr + " BETWEEN " + truncMinute(s.bind(b1)) + " AND " + plus(truncMinute(s.bind(b2)), endOfMinute)
}

// like compares both sides upper cased.
func (s *Style) like(attr, op, pattern string) string {
	return "UPPER(" + attr + ") " + op + " UPPER(" + pattern + ")"
}

// HasPrefix returns a predicate that checks if attr starts with the bind (case-insensitive).
func (s *Style) HasPrefix(attr, b string) string { return s.like(attr, "LIKE", s.bind(b)+"||'%'") }

// NotHasPrefix returns a predicate that checks if attr does not start with the bind (case-insensitive).
func (s *Style) NotHasPrefix(attr, b string) string {
	return s.like(attr, "NOT LIKE", s.bind(b)+"||'%'")
}

// HasSuffix returns a predicate that checks if attr ends with the bind (case-insensitive).
func (s *Style) HasSuffix(attr, b string) string { return s.like(attr, "LIKE", "'%'||"+s.bind(b)) }

// NotHasSuffix returns a predicate that checks if attr does not end with the bind (case-insensitive).
func (s *Style) NotHasSuffix(attr, b string) string {
	return s.like(attr, "NOT LIKE", "'%'||"+s.bind(b))
}

// Contains returns a predicate that checks if attr contains the bind (case-insensitive).
func (s *Style) Contains(attr, b string) string {
	return s.like(attr, "LIKE", "'%'||"+s.bind(b)+"||'%'")
}

// NotContains returns a predicate that checks if attr does not contain the bind (case-insensitive).
func (s *Style) NotContains(attr, b string) string {
	return s.like(attr, "NOT LIKE", "'%'||"+s.bind(b)+"||'%'")
}

// Like returns a predicate that matches attr against the bound pattern (case-insensitive).
func (s *Style) Like(attr, b string) string { return s.like(attr, "LIKE", s.bind(b)) }

// NotLike returns a predicate that checks if attr does not match the bound pattern (case-insensitive).
func (s *Style) NotLike(attr, b string) string { return s.like(attr, "NOT LIKE", s.bind(b)) }

// IsNull returns a predicate that checks if attr is null.
func (s *Style) IsNull(attr string) string { return attr + " IS NULL" }

// NotNull returns a predicate that checks if attr is not null.
func (s *Style) NotNull(attr string) string { return attr + " IS NOT NULL" }

// NumberIsNull returns a predicate that checks if attr is null or 0.
func (s *Style) NumberIsNull(attr string) string { return "NVL(" + attr + ",0)=0" }

// NumberNotNull returns a predicate that checks if attr is neither null nor 0.
func (s *Style) NumberNotNull(attr string) string { return "NVL(" + attr + ",0)<>0" }

// TextIsNull returns a predicate that checks if attr is null or '0'.
func (s *Style) TextIsNull(attr string) string { return "NVL(" + attr + ",'0')='0'" }

// TextNotNull returns a predicate that checks if attr is neither null nor '0'.
func (s *Style) TextNotNull(attr string) string { return "NVL(" + attr + ",'0')<>'0'" }

// In compares attr with a single bind. Use InList for value lists.
func (s *Style) In(attr, b string) string { return attr + "=" + s.bind(b) }

// NotIn is the negation of In.
func (s *Style) NotIn(attr, b string) string { return "NOT(" + attr + "=" + s.bind(b) + ")" }

// Relative date windows are computed from SYSDATE. A window starts at the
// beginning of its first day and ends before the beginning of the day after
// its last.

// DateIsToday returns a predicate that checks if attr falls on the current day.
func (s *Style) DateIsToday(attr string) string {
	return within(attr, truncDay(sysdate), nextDay(sysdate))
}

// DateIsNotToday returns a predicate that checks if attr falls outside the current day.
func (s *Style) DateIsNotToday(attr string) string {
	return outside(attr, truncDay(sysdate), nextDay(sysdate))
}

// DateIsInLastDays returns a predicate that checks if attr falls within the
// bound number of past days, today included.
func (s *Style) DateIsInLastDays(attr, b string) string {
	return within(attr, truncDay(subDays(sysdate, s.bind(b))), nextDay(sysdate))
}

// DateIsInNextDays returns a predicate that checks if attr falls within the
// bound number of coming days, today included.
func (s *Style) DateIsInNextDays(attr, b string) string {
	return within(attr, truncDay(sysdate), nextDay(addDays(sysdate, s.bind(b))))
}

// DateIsInDays returns a predicate that checks if attr falls on the day the
// bound number of days from today.
func (s *Style) DateIsInDays(attr, b string) string {
	day := addDays(sysdate, s.bind(b))
	return within(attr, truncDay(day), nextDay(day))
}

// DateIsInWeeks returns a predicate that checks if attr falls on the day the
// bound number of weeks from today.
func (s *Style) DateIsInWeeks(attr, b string) string {
	day := addWeeks(sysdate, s.bind(b))
	return within(attr, truncDay(day), nextDay(day))
}

// DateIsInLastMonths returns a predicate that checks if attr falls within the
// bound number of past months, today included.
func (s *Style) DateIsInLastMonths(attr, b string) string {
	return within(attr, truncDay(addMonths(sysdate, negate(s.bind(b)))), nextDay(sysdate))
}

// DateIsInNextMonths returns a predicate that checks if attr falls within the
// bound number of coming months, today included.
func (s *Style) DateIsInNextMonths(attr, b string) string {
	return within(attr, truncDay(sysdate), nextDay(addMonths(sysdate, s.bind(b))))
}

// DateIsInMonths returns a predicate that checks if attr falls on the day the
// bound number of months from today.
func (s *Style) DateIsInMonths(attr, b string) string {
	day := addMonths(sysdate, s.bind(b))
	return within(attr, truncDay(day), nextDay(day))
}

// DateIsInLEDays returns a predicate that checks if attr is at most the bound number of days from today.
func (s *Style) DateIsInLEDays(attr, b string) string {
	return attr + "<" + nextDay(addDays(sysdate, s.bind(b)))
}

// DateIsInLEWeeks returns a predicate that checks if attr is at most the bound number of weeks from today.
func (s *Style) DateIsInLEWeeks(attr, b string) string {
	return attr + "<" + nextDay(addWeeks(sysdate, s.bind(b)))
}

// DateIsInLEMonths returns a predicate that checks if attr is at most the bound number of months from today.
func (s *Style) DateIsInLEMonths(attr, b string) string {
	return attr + "<" + nextDay(addMonths(sysdate, s.bind(b)))
}

// DateIsInGEDays returns a predicate that checks if attr is at least the bound number of days from today.
func (s *Style) DateIsInGEDays(attr, b string) string {
	return attr + ">=" + truncDay(addDays(sysdate, s.bind(b)))
}

// DateIsInGEWeeks returns a predicate that checks if attr is at least the bound number of weeks from today.
func (s *Style) DateIsInGEWeeks(attr, b string) string {
	return attr + ">=" + truncDay(addWeeks(sysdate, s.bind(b)))
}

// DateIsInGEMonths returns a predicate that checks if attr is at least the bound number of months from today.
func (s *Style) DateIsInGEMonths(attr, b string) string {
	return attr + ">=" + truncDay(addMonths(sysdate, s.bind(b)))
}

// DateTimeIsNow returns a predicate that checks if attr falls within the current minute.
func (s *Style) DateTimeIsNow(attr string) string {
	now := truncMinute(sysdate)
	return "(" + within(attr, now, plus(now, oneMinute)) + ")"
}

// DateTimeIsNotNow returns a predicate that checks if attr falls outside the current minute.
func (s *Style) DateTimeIsNotNow(attr string) string {
	now := truncMinute(sysdate)
	return outside(attr, now, plus(now, oneMinute))
}

// DateTimeIsInLEMinutes returns a predicate that checks if attr is at most the bound number of minutes from now.
func (s *Style) DateTimeIsInLEMinutes(attr, b string) string {
	return attr + "<" + plus(truncMinute(sysdate), minutes(paren(s.bind(b)+"+1")))
}

// DateTimeIsInLEHours returns a predicate that checks if attr is at most the bound number of hours from now.
func (s *Style) DateTimeIsInLEHours(attr, b string) string {
	return attr + "<" + plus(truncMinute(sysdate), plus(oneMinute, hours(s.bind(b))))
}

// DateTimeIsInGEMinutes returns a predicate that checks if attr is at least the bound number of minutes from now.
func (s *Style) DateTimeIsInGEMinutes(attr, b string) string {
	return attr + ">=" + plus(truncMinute(sysdate), minutes(s.bind(b)))
}

// DateTimeIsInGEHours returns a predicate that checks if attr is at least the bound number of hours from now.
func (s *Style) DateTimeIsInGEHours(attr, b string) string {
	return attr + ">=" + plus(truncMinute(sysdate), hours(s.bind(b)))
}

// Time of day windows compare attr, a fraction of a day, with the current
// clock time.

// TimeIsNow returns a predicate that checks if the time of day in attr is the current minute.
func (s *Style) TimeIsNow(attr string) string {
	return within(attr, dayFraction(clock), dayFraction(clock+"+"+oneMinute))
}

// TimeIsNotNow returns a predicate that checks if the time of day in attr is not the current minute.
func (s *Style) TimeIsNotNow(attr string) string {
	return "(" + attr + "<" + dayFraction(clock) + " OR " + attr + ">" + dayFraction(clock+"+"+oneMinute) + ")"
}

// TimeIsInMinutes returns a predicate that checks if the time of day in attr
// is the minute the bound number of minutes from now.
func (s *Style) TimeIsInMinutes(attr, b string) string {
	n := s.bind(b)
	return within(attr,
		dayFraction(clock+"+"+minutes(n)),
		dayFraction(clock+"+"+minutes(paren(n+"+1"))))
}

// TimeIsInHours returns a predicate that checks if the time of day in attr
// is the minute the bound number of hours from now.
func (s *Style) TimeIsInHours(attr, b string) string {
	n := s.bind(b)
	return within(attr,
		dayFraction(clock+"+"+hours(n)),
		dayFraction(clock+"+"+hours(n)+"+"+oneMinute))
}

// TimeIsInLEMinutes returns a predicate that checks if the time of day in attr is at most the bound number of minutes from now.
func (s *Style) TimeIsInLEMinutes(attr, b string) string {
	return attr + "<" + dayFraction(clock+"+"+minutes(paren(s.bind(b)+"+1")))
}

// TimeIsInLEHours returns a predicate that checks if the time of day in attr is at most the bound number of hours from now.
func (s *Style) TimeIsInLEHours(attr, b string) string {
	return attr + "<" + dayFraction(clock+"+"+hours(s.bind(b))+"+"+oneMinute)
}

// TimeIsInGEMinutes returns a predicate that checks if the time of day in attr is at least the bound number of minutes from now.
func (s *Style) TimeIsInGEMinutes(attr, b string) string {
	return attr + ">=" + dayFraction(clock+"+"+minutes(s.bind(b)))
}

// TimeIsInGEHours returns a predicate that checks if the time of day in attr is at least the bound number of hours from now.
func (s *Style) TimeIsInGEHours(attr, b string) string {
	return attr + ">=" + dayFraction(clock+"+"+hours(s.bind(b)))
}

// Count returns the COUNT aggregation of attr.
func (s *Style) Count(attr string) string { return "COUNT(" + attr + ")" }

// Min returns the MIN aggregation of attr.
func (s *Style) Min(attr string) string { return "MIN(" + attr + ")" }

// Max returns the MAX aggregation of attr.
func (s *Style) Max(attr string) string { return "MAX(" + attr + ")" }

// Sum returns the SUM aggregation of attr.
func (s *Style) Sum(attr string) string { return "SUM(" + attr + ")" }

// Avg returns the AVG aggregation of attr.
func (s *Style) Avg(attr string) string { return "AVG(" + attr + ")" }

// Median returns the MEDIAN aggregation of attr.
func (s *Style) Median(attr string) string { return "MEDIAN(" + attr + ")" }

// SysdateToken returns the current date time function.
func (s *Style) SysdateToken() string { return sysdate }

// UpperToken returns the upper case function name.
func (s *Style) UpperToken() string { return "UPPER" }

// LowerToken returns the lower case function name.
func (s *Style) LowerToken() string { return "LOWER" }

// TrimToken returns the trim function name.
func (s *Style) TrimToken() string { return "TRIM" }

// NvlToken returns the null replacement function name.
func (s *Style) NvlToken() string { return "NVL" }
