package extract

import "github.com/IshaanNene/FeedStalk/internal/types"

// UI label tables. These are surface forms of feed chrome, not
// content; the extractor strips or anchors on them. Adding a locale
// means extending these lists, nothing else.

// expandLabels are the "expand truncated text" affordances appended to
// item text by the renderer.
var expandLabels = []string{
	"See more",
	"See More",
	"عرض المزيد",
	"المزيد",
}

// actionBarLabels mark the start of the like/comment/share action bar.
// Item text is cut at the first occurrence of any of them; everything
// after is chrome, not content.
var actionBarLabels = []string{
	"Like",
	"Comment",
	"Share",
	"أعجبني",
	"إعجاب",
	"تعليق",
	"مشاركة",
}

// interactionSummaryLabels precede the "N N N N" numeric run that
// summarizes reactions, emoji breakdown, comments and shares.
var interactionSummaryLabels = []string{
	"All reactions:",
	"All reactions",
	"كل التفاعلات:",
	"كل التفاعلات",
}

// metricSynonyms are the words that identify a counter as belonging to
// a given engagement metric, in accessible labels and visible text.
var metricSynonyms = map[types.Metric][]string{
	types.MetricReactions: {"reactions", "reaction", "likes", "like", "إعجابات", "إعجاب", "تفاعلات", "تفاعل"},
	types.MetricComments:  {"comments", "comment", "تعليقات", "تعليق"},
	types.MetricShares:    {"shares", "share", "مشاركات", "مشاركة"},
}

// machineTimeAttrs are attributes that carry a machine-readable
// timestamp on structured time elements, in preference order.
var machineTimeAttrs = []string{"datetime", "data-utime"}

// permalinkHints identify a descendant link as the item's permalink,
// whose text usually carries the posting time.
var permalinkHints = []string{"/posts/", "/permalink", "story_fbid", "/videos/"}
