package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/IshaanNene/FeedStalk/internal/locale"
	"github.com/IshaanNene/FeedStalk/internal/types"
)

// leadingTextWindow bounds the fallback scan; timestamps render near
// the top of an item, and deep text is full of digit noise.
const leadingTextWindow = 300

var epochRe = regexp.MustCompile(`^\d{9,13}$`)

// machineAttribute prefers a structured time element's
// machine-readable attribute: an ISO "datetime", or an epoch
// "data-utime" which is rewritten to its ISO form.
func machineAttribute(item types.ContentItem) (string, bool) {
	var raw string
	walk(item, func(el types.ContentItem) bool {
		for _, attr := range machineTimeAttrs {
			v, has := el.Attr(attr)
			if !has || v == "" {
				continue
			}
			if epochRe.MatchString(v) {
				secs, err := strconv.ParseInt(v, 10, 64)
				if err != nil {
					continue
				}
				if secs > 1e12 {
					secs /= 1000
				}
				raw = time.Unix(secs, 0).UTC().Format(time.RFC3339)
				return false
			}
			raw = v
			return false
		}
		return true
	})
	return raw, raw != ""
}

// permalinkText inspects permalink-like descendant links, whose anchor
// text usually holds the posting time.
func permalinkText(item types.ContentItem) (string, bool) {
	var raw string
	walk(item, func(el types.ContentItem) bool {
		if !looksLikePermalink(el) {
			return true
		}
		if expr, ok := locale.FindTemporalExpression(el.Text()); ok {
			raw = expr
			return false
		}
		return true
	})
	return raw, raw != ""
}

// leadingText scans the first few hundred characters of the item's
// readable text with the same relative/absolute pattern families.
func leadingText(item types.ContentItem) (string, bool) {
	text := item.Text()
	if runes := []rune(text); len(runes) > leadingTextWindow {
		text = string(runes[:leadingTextWindow])
	}
	return locale.FindTemporalExpression(text)
}

func looksLikePermalink(el types.ContentItem) bool {
	if role, ok := el.Attr("role"); ok && role == "link" {
		return true
	}
	href, ok := el.Attr("href")
	if !ok {
		return false
	}
	for _, hint := range permalinkHints {
		if strings.Contains(href, hint) {
			return true
		}
	}
	return false
}
