package pos

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Period is a half-open interval [Start, End) over business dates plus a
// human-readable label such as "2026-W04" or "2025-10".
type Period struct {
	Start time.Time
	End   time.Time
	Label string
}

// Contains reports whether the business date d falls inside the period.
func (p Period) Contains(d time.Time) bool {
	day := DateOnly(d)
	return !day.Before(DateOnly(p.Start)) && day.Before(DateOnly(p.End))
}

// IsZero reports whether the period is unset.
func (p Period) IsZero() bool {
	return p.Start.IsZero() && p.End.IsZero()
}

// MonthPeriod returns the period covering the given calendar month.
func MonthPeriod(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Period{
		Start: start,
		End:   start.AddDate(0, 1, 0),
		Label: fmt.Sprintf("%04d-%02d", year, int(month)),
	}
}

// ISOWeeks returns the number of ISO weeks in the given ISO year, 52 or 53.
func ISOWeeks(isoYear int) int {
	// December 28th is always inside the last ISO week.
	_, week := time.Date(isoYear, time.December, 28, 0, 0, 0, 0, time.UTC).ISOWeek()
	return week
}

// ISOWeekPeriod returns the period covering the given ISO week, running
// Monday through the following Monday. The week must exist in the given ISO
// year: week 53 of a 52-week year lands in the following year's week 1, so
// callers validate against ISOWeeks first.
func ISOWeekPeriod(isoYear, isoWeek int) Period {
	// January 4th is always inside ISO week 1.
	jan4 := time.Date(isoYear, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	week1Monday := jan4.AddDate(0, 0, 1-weekday)
	start := week1Monday.AddDate(0, 0, (isoWeek-1)*7)
	return Period{
		Start: start,
		End:   start.AddDate(0, 0, 7),
		Label: fmt.Sprintf("%04d-W%02d", isoYear, isoWeek),
	}
}

// RangePeriod returns the half-open period [start, end).
func RangePeriod(start, end time.Time, label string) Period {
	if label == "" {
		label = fmt.Sprintf("%s..%s", start.Format(time.DateOnly), end.Format(time.DateOnly))
	}
	return Period{Start: DateOnly(start), End: DateOnly(end), Label: label}
}

var (
	monthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)
	weekPattern  = regexp.MustCompile(`^(\d{4})-W(\d{1,2})$`)
)

// ParsePeriod parses a period argument: "2026-01" (calendar month),
// "2026-W04" (ISO week), or "2026-01-05..2026-02-01" (explicit half-open
// date range).
func ParsePeriod(arg string) (Period, error) {
	trimmed := strings.TrimSpace(arg)
	if trimmed == "" {
		return Period{}, fmt.Errorf("empty period")
	}
	if m := monthPattern.FindStringSubmatch(trimmed); m != nil {
		year, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		if month < 1 || month > 12 {
			return Period{}, fmt.Errorf("period %q: month out of range", trimmed)
		}
		return MonthPeriod(year, time.Month(month)), nil
	}
	if m := weekPattern.FindStringSubmatch(trimmed); m != nil {
		year, _ := strconv.Atoi(m[1])
		week, _ := strconv.Atoi(m[2])
		if week < 1 || week > ISOWeeks(year) {
			return Period{}, fmt.Errorf("period %q: ISO week out of range, %d has %d weeks", trimmed, year, ISOWeeks(year))
		}
		return ISOWeekPeriod(year, week), nil
	}
	if start, end, ok := strings.Cut(trimmed, ".."); ok {
		startDate, err := time.Parse(time.DateOnly, strings.TrimSpace(start))
		if err != nil {
			return Period{}, fmt.Errorf("period %q: %w", trimmed, err)
		}
		endDate, err := time.Parse(time.DateOnly, strings.TrimSpace(end))
		if err != nil {
			return Period{}, fmt.Errorf("period %q: %w", trimmed, err)
		}
		if !startDate.Before(endDate) {
			return Period{}, fmt.Errorf("period %q: start must precede end", trimmed)
		}
		return RangePeriod(startDate, endDate, trimmed), nil
	}
	return Period{}, fmt.Errorf("period %q: expected YYYY-MM, YYYY-Www, or YYYY-MM-DD..YYYY-MM-DD", trimmed)
}

// Previous returns the period immediately before p at the same granularity.
// Month periods step back one month, week periods one week, and explicit
// ranges shift back by their own length.
func (p Period) Previous() Period {
	switch {
	case monthPattern.MatchString(p.Label):
		prev := p.Start.AddDate(0, -1, 0)
		return MonthPeriod(prev.Year(), prev.Month())
	case weekPattern.MatchString(p.Label):
		prevStart := p.Start.AddDate(0, 0, -7)
		isoYear, isoWeek := prevStart.ISOWeek()
		return ISOWeekPeriod(isoYear, isoWeek)
	default:
		length := p.End.Sub(p.Start)
		return RangePeriod(p.Start.Add(-length), p.Start, "")
	}
}

// YearAgo returns the same period shifted back one year. Month periods keep
// the calendar month, week periods keep the ISO week number; week 53 of a
// long ISO year clamps to the prior year's last week.
func (p Period) YearAgo() Period {
	switch {
	case monthPattern.MatchString(p.Label):
		return MonthPeriod(p.Start.Year()-1, p.Start.Month())
	case weekPattern.MatchString(p.Label):
		isoYear, isoWeek := p.Start.ISOWeek()
		if last := ISOWeeks(isoYear - 1); isoWeek > last {
			isoWeek = last
		}
		return ISOWeekPeriod(isoYear-1, isoWeek)
	default:
		return RangePeriod(p.Start.AddDate(-1, 0, 0), p.End.AddDate(-1, 0, 0), "")
	}
}

// DateOnly truncates t to midnight UTC of its calendar date, giving a value
// suitable for business-date comparisons regardless of source location.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
