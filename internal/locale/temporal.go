package locale

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// isoStrictRe accepts only a full ISO 8601 date-time, with optional
// zone designator. Anything looser goes through the heuristic paths.
var isoStrictRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?$`)

// RelativePattern matches relative time expressions like "3 hours",
// "٥ دقائق" (after digit normalization) in either locale. Latin unit
// forms carry a trailing \b so that "12 March" is not read as
// "12 minutes"; \b is useless on Arabic letters so the Arabic forms go
// bare.
var RelativePattern *regexp.Regexp

// AbsolutePattern matches absolute expressions of the form
// "<day> <month-name> at <hour>:<minute> [period]", e.g.
// "12 March at 7:45 PM" or "٢٥ أكتوبر في ٩:١٥ م" (after digit
// normalization).
var AbsolutePattern *regexp.Regexp

func init() {
	var units []string
	for _, u := range relativeUnits {
		for _, f := range u.Forms {
			if f[0] < 0x80 {
				units = append(units, f+`\b`)
			} else {
				units = append(units, f)
			}
		}
	}
	RelativePattern = regexp.MustCompile(`(?i)\b(\d+)\s*(` + strings.Join(units, "|") + `)`)

	var months []string
	for _, entry := range monthNames {
		months = append(months, entry...)
	}
	period := `مساءً|مساء|صباحاً|صباح|م|ص|pm\b|am\b`
	AbsolutePattern = regexp.MustCompile(
		`(?i)\b(\d{1,2})\s+(` + strings.Join(months, "|") + `)\s+(?:` +
			strings.Join(atWords, "|") + `)\s+(\d{1,2}):(\d{2})(?:\s*(` + period + `))?`)
}

// ParseTimestamp converts a raw temporal expression into an absolute
// time. Strict ISO input parses directly; otherwise a relative
// expression is resolved backward from now, then an absolute
// day/month/clock expression with the year defaulting to now's year.
// The second return value is false for anything unrecognized.
func ParseTimestamp(raw string, now time.Time) (time.Time, bool) {
	s := strings.TrimSpace(NormalizeDigits(raw))
	if s == "" {
		return time.Time{}, false
	}

	if isoStrictRe.MatchString(s) {
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05.999999999", "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	}

	if m := RelativePattern.FindStringSubmatch(s); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return time.Time{}, false
		}
		switch unitFor(m[2]) {
		case UnitHour:
			return now.Add(-time.Duration(n) * time.Hour), true
		case UnitMinute:
			return now.Add(-time.Duration(n) * time.Minute), true
		case UnitDay:
			return now.AddDate(0, 0, -n), true
		case UnitYear:
			return now.AddDate(-n, 0, 0), true
		}
		return time.Time{}, false
	}

	if m := AbsolutePattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, ok := monthFor(m[2])
		if !ok {
			return time.Time{}, false
		}
		hour, _ := strconv.Atoi(m[3])
		minute, _ := strconv.Atoi(m[4])
		if hour > 23 || minute > 59 {
			return time.Time{}, false
		}
		// The period marker selects the half of the day; without one
		// the clock reading is taken as-is, so 24-hour forms like
		// "15:30" pass through unchanged.
		switch {
		case isPM(m[5]):
			hour = hour%12 + 12
		case m[5] != "":
			hour = hour % 12
		}
		// Year defaults to the current year; the source text omits it.
		t := time.Date(now.Year(), month, day, hour, minute, 0, 0, now.Location())
		if t.Day() != day || t.Month() != month {
			// time.Date normalized an impossible date like 31 February.
			return time.Time{}, false
		}
		return t, true
	}

	return time.Time{}, false
}

// NormalizeTimestamp is ParseTimestamp with an RFC 3339 string result.
func NormalizeTimestamp(raw string, now time.Time) (string, bool) {
	t, ok := ParseTimestamp(raw, now)
	if !ok {
		return "", false
	}
	return t.Format(time.RFC3339), true
}

// FindTemporalExpression scans free text for the first relative or
// absolute temporal expression and returns the matched substring (of
// the digit-normalized text), unparsed.
func FindTemporalExpression(s string) (string, bool) {
	normalized := NormalizeDigits(s)
	if m := isoScanRe.FindString(normalized); m != "" {
		return m, true
	}
	if m := RelativePattern.FindString(normalized); m != "" {
		return m, true
	}
	if m := AbsolutePattern.FindString(normalized); m != "" {
		return m, true
	}
	return "", false
}

// isoScanRe is the unanchored form of isoStrictRe, for scanning inside
// larger text.
var isoScanRe = regexp.MustCompile(`\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?(?:Z|[+-]\d{2}:\d{2})?`)

func unitFor(form string) RelativeUnit {
	lf := strings.ToLower(form)
	for _, u := range relativeUnits {
		for _, f := range u.Forms {
			if lf == f {
				return u.Unit
			}
		}
	}
	return ""
}

func monthFor(form string) (time.Month, bool) {
	lf := strings.ToLower(form)
	for i, entry := range monthNames {
		for _, f := range entry {
			if lf == f {
				return time.Month(i + 1), true
			}
		}
	}
	return 0, false
}

func isPM(marker string) bool {
	lm := strings.ToLower(strings.TrimSpace(marker))
	for _, p := range pmMarkers {
		if lm == p {
			return true
		}
	}
	return false
}
