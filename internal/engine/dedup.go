package engine

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
)

// Deduplicator tracks canonical text keys within one run so that the
// output never contains two records with identical cleaned text.
// Near-duplicate items (the same post rendered twice while scrolling)
// collapse to their first occurrence.
type Deduplicator struct {
	mu   sync.RWMutex
	seen map[string]struct{}
}

// NewDeduplicator creates a Deduplicator with the given estimated capacity.
func NewDeduplicator(estimatedCapacity int) *Deduplicator {
	return &Deduplicator{
		seen: make(map[string]struct{}, estimatedCapacity),
	}
}

// IsSeen returns true if the canonical key for text has been seen.
func (d *Deduplicator) IsSeen(text string) bool {
	hash := hashKey(CanonicalKey(text))

	d.mu.RLock()
	defer d.mu.RUnlock()
	_, ok := d.seen[hash]
	return ok
}

// MarkSeen marks the canonical key for text as seen.
func (d *Deduplicator) MarkSeen(text string) {
	hash := hashKey(CanonicalKey(text))

	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen[hash] = struct{}{}
}

// Count returns the number of unique keys seen.
func (d *Deduplicator) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.seen)
}

// Reset clears all seen keys.
func (d *Deduplicator) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seen = make(map[string]struct{})
}

// CanonicalKey normalizes record text for duplicate detection. Exact
// match on whitespace-collapsed text; no fuzzy matching.
func CanonicalKey(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// hashKey creates a compact hash of a canonical key.
func hashKey(key string) string {
	h := sha256.Sum256([]byte(key))
	return hex.EncodeToString(h[:16]) // 128-bit hash
}
