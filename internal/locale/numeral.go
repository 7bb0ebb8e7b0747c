package locale

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// numberTokenRe matches the first numeric token in a string: digits
// with optional grouping commas and an optional decimal part, followed
// by an optional Latin magnitude suffix. The \b keeps "3 minutes" from
// reading as a "m" suffix.
var numberTokenRe = regexp.MustCompile(`(?i)(\d[\d,]*(?:\.\d+)?)\s*([kmb]\b)?`)

var nonDigitRe = regexp.MustCompile(`[^\d]`)

// NormalizeDigits maps Arabic-Indic digit glyphs onto Latin digits and
// rewrites the Arabic grouping/decimal separators into their Latin
// equivalents. All other runes pass through unchanged.
func NormalizeDigits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case arabicDigits[r] != 0:
			b.WriteRune(arabicDigits[r])
		case r == '٬': // Arabic thousands separator
			b.WriteRune(',')
		case r == '٫': // Arabic decimal separator
			b.WriteRune('.')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseCount converts a noisy counter string ("1.5k", "2,300",
// "٣ آلاف", "12 مليون متابع") into an integer. The second return value
// is false when no count could be recovered; that is not an error
// condition for the caller.
func ParseCount(raw string) (int64, bool) {
	s := NormalizeDigits(raw)

	m := numberTokenRe.FindStringSubmatch(s)
	if m == nil {
		// No numeric token at all: strip everything that is not a
		// digit and try the remainder.
		digits := nonDigitRe.ReplaceAllString(s, "")
		if digits == "" {
			return 0, false
		}
		n, err := strconv.ParseInt(digits, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}

	value, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0, false
	}

	factor := 1.0
	if m[2] != "" {
		factor = suffixFactors[strings.ToLower(m[2])]
	} else if f, ok := magnitudeWordFactor(s); ok {
		factor = f
	}

	result := math.Round(value * factor)
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0, false
	}
	// Products beyond int64 would wrap on conversion; no real counter
	// gets anywhere near this range.
	if result < 0 || result >= math.MaxInt64 {
		return 0, false
	}
	return int64(result), true
}

// magnitudeWordFactor scans the string for a localized magnitude word,
// matched as a whole word anywhere (not only adjacent to the digits).
func magnitudeWordFactor(s string) (float64, bool) {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		lw := strings.ToLower(w)
		for _, mag := range magnitudeWords {
			for _, form := range mag.Words {
				if lw == form {
					return mag.Factor, true
				}
			}
		}
	}
	return 0, false
}
