package types

// ContentItem is a read-only view of one revealed feed element. The
// rendering collaborator owns the underlying element; the core only
// ever reads text and attributes through this interface and never
// mutates anything behind it.
type ContentItem interface {
	// Text returns the full readable text of the element, including
	// descendant text, in document order.
	Text() string

	// Attr returns the value of the named attribute on the element
	// itself, and whether it was present.
	Attr(name string) (string, bool)

	// Children returns the element's direct child elements.
	Children() []ContentItem

	// Fragments returns the visible leaf text fragments of the subtree,
	// in document order. Used by heuristics that need to pair a digit
	// with a nearby label without crossing element boundaries.
	Fragments() []string
}

// Metric identifies which engagement counter an extraction run targets.
type Metric string

const (
	MetricReactions Metric = "reactions"
	MetricComments  Metric = "comments"
	MetricShares    Metric = "shares"
)

// Valid reports whether m is a known metric.
func (m Metric) Valid() bool {
	switch m {
	case MetricReactions, MetricComments, MetricShares:
		return true
	}
	return false
}
