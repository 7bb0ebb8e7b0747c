package extract

import "strings"

// CleanText turns raw item text into canonical record text: expand
// affordances stripped, everything from the first action-bar label on
// discarded, whitespace collapsed. An empty result means the item
// carried no real content and is dropped downstream.
func CleanText(raw string) string {
	s := raw
	for _, label := range expandLabels {
		s = strings.ReplaceAll(s, label, " ")
	}
	if idx := firstIndexAny(s, actionBarLabels); idx >= 0 {
		s = s[:idx]
	}
	return strings.Join(strings.Fields(s), " ")
}

// firstIndexAny returns the smallest index at which any of the needles
// occurs in s, or -1 when none do.
func firstIndexAny(s string, needles []string) int {
	first := -1
	for _, n := range needles {
		if idx := strings.Index(s, n); idx >= 0 && (first < 0 || idx < first) {
			first = idx
		}
	}
	return first
}
