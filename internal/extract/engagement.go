package extract

import (
	"regexp"
	"strings"

	"github.com/IshaanNene/FeedStalk/internal/locale"
	"github.com/IshaanNene/FeedStalk/internal/types"
)

// countTokenRe matches one token of the numeric run that follows an
// interaction summary label (after digit normalization).
var countTokenRe = regexp.MustCompile(`(?i)^\d[\d.,]*[kmb]?$`)

var anyDigitRe = regexp.MustCompile(`\d`)

// interactionSummary reads the "All reactions: N N N N" summary run.
// With four or more integers the run is
// [reactions, emoji breakdown, comments, shares]; with exactly two it
// is [reactions, comments] and shares defaults to 0; with exactly one,
// only reactions is known and the other metrics stay absent.
func interactionSummary(item types.ContentItem, metric types.Metric) (int64, bool) {
	text := locale.NormalizeDigits(item.Text())

	idx := -1
	var label string
	for _, l := range interactionSummaryLabels {
		if i := strings.Index(text, l); i >= 0 && (idx < 0 || i < idx) {
			idx, label = i, l
		}
	}
	if idx < 0 {
		return 0, false
	}

	run := numericRun(text[idx+len(label):])
	switch {
	case len(run) >= 4:
		switch metric {
		case types.MetricReactions:
			return run[0], true
		case types.MetricComments:
			return run[2], true
		case types.MetricShares:
			return run[3], true
		}
	case len(run) >= 2:
		switch metric {
		case types.MetricReactions:
			return run[0], true
		case types.MetricComments:
			return run[1], true
		case types.MetricShares:
			if len(run) == 2 {
				return 0, true
			}
		}
	case len(run) == 1:
		if metric == types.MetricReactions {
			return run[0], true
		}
	}
	return 0, false
}

// numericRun parses the leading consecutive numeric tokens of s.
func numericRun(s string) []int64 {
	var counts []int64
	for _, field := range strings.Fields(s) {
		if !countTokenRe.MatchString(field) {
			break
		}
		n, ok := locale.ParseCount(field)
		if !ok {
			break
		}
		counts = append(counts, n)
	}
	return counts
}

// accessibleLabels scans descendant accessible labels for one that
// names the target metric, and pulls the first embedded number out of
// it.
func accessibleLabels(item types.ContentItem, metric types.Metric) (int64, bool) {
	var found int64
	var ok bool
	walk(item, func(el types.ContentItem) bool {
		label, has := el.Attr("aria-label")
		if !has || !mentionsMetric(label, metric) {
			return true
		}
		normalized := locale.NormalizeDigits(label)
		if !anyDigitRe.MatchString(normalized) {
			return true
		}
		if n, parsed := locale.ParseCount(normalized); parsed {
			found, ok = n, true
			return false
		}
		return true
	})
	return found, ok
}

// labeledFragments scans visible text fragments for one that carries
// both a digit and a metric synonym.
func labeledFragments(item types.ContentItem, metric types.Metric) (int64, bool) {
	for _, frag := range item.Fragments() {
		normalized := locale.NormalizeDigits(frag)
		if !anyDigitRe.MatchString(normalized) || !mentionsMetric(frag, metric) {
			continue
		}
		if n, ok := locale.ParseCount(normalized); ok {
			return n, true
		}
	}
	return 0, false
}

// mentionsMetric reports whether s names the metric in any locale.
func mentionsMetric(s string, metric types.Metric) bool {
	ls := strings.ToLower(s)
	for _, syn := range metricSynonyms[metric] {
		if strings.Contains(ls, syn) {
			return true
		}
	}
	return false
}

// walk visits item and every descendant in document order until fn
// returns false.
func walk(item types.ContentItem, fn func(types.ContentItem) bool) bool {
	if !fn(item) {
		return false
	}
	for _, child := range item.Children() {
		if !walk(child, fn) {
			return false
		}
	}
	return true
}
