package feed

import (
	"context"

	"github.com/IshaanNene/FeedStalk/internal/types"
)

// Source is the rendering collaborator's view of one feed document.
// Every call is a suspension point: callers must await completion
// before issuing the next call, because the collaborator exposes one
// mutable view of a single document. Independent sources may be used
// concurrently from separate sessions.
type Source interface {
	// Items returns a snapshot of the currently revealed items, in
	// document order.
	Items(ctx context.Context) ([]types.ContentItem, error)

	// RevealMore triggers one incremental load action. It may be a
	// no-op when nothing new can load.
	RevealMore(ctx context.Context) error

	// ItemCount returns the current item count, consistent with the
	// length of Items at the same point in time.
	ItemCount(ctx context.Context) (int, error)
}

// Navigator reaches a source URL, retrying as configured.
type Navigator interface {
	Navigate(ctx context.Context, url string) error
}

// Session is a Source that can also be pointed at a URL.
type Session interface {
	Source
	Navigator

	// Close releases the underlying rendering resources.
	Close() error
}
