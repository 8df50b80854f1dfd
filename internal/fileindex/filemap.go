// Package fileindex implements the FileMap inverted index and the
// Indexer task that keeps it synchronized with the current working
// directory (spec §3, §4.2).
package fileindex

import (
	"sync"

	"github.com/JustBobinAround/jef/internal/hashkernel"
)

// bucket is one StackHash's path list. It is independently lockable from
// the map itself so the searcher can scan a bucket while the indexer
// inserts into a different one (spec §5).
type bucket struct {
	mu    sync.Mutex
	paths []string
}

func (b *bucket) append(path string) {
	b.mu.Lock()
	b.paths = append(b.paths, path)
	b.mu.Unlock()
}

// Snapshot returns a copy of the bucket's paths, safe to range over
// without holding any lock.
func (b *bucket) Snapshot() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.paths))
	copy(out, b.paths)
	return out
}

// FileMap is the inverted index: StackHash -> path list, plus the
// maximum observed depth and a done-indexing flag set once a full walk
// completes (spec §3).
type FileMap struct {
	mu           sync.Mutex
	buckets      map[hashkernel.StackHash]*bucket
	stack        uint16
	doneIndexing bool
}

// NewFileMap creates an empty FileMap.
func NewFileMap() *FileMap {
	return &FileMap{buckets: make(map[hashkernel.StackHash]*bucket)}
}

// clear empties the map and resets generation state. Invariant 4 (spec
// §3): between generations the map is fully cleared; no stale entries
// may leak across a CWD change. The caller must ensure clear happens
// before the first insert of the new walk (spec §4.2's concurrency
// contract).
func (m *FileMap) clear() {
	m.mu.Lock()
	m.buckets = make(map[hashkernel.StackHash]*bucket)
	m.stack = 0
	m.doneIndexing = false
	m.mu.Unlock()
}

// insert appends path to every bucket in hashes, creating buckets on
// first insertion (invariant 3: empty lists are never inserted), and
// raises Stack to depth if depth is larger than what's been seen so far
// (invariant 2: Stack() >= depth for every inserted entry).
func (m *FileMap) insert(depth uint16, hashes []hashkernel.StackHash, path string) {
	m.mu.Lock()
	if depth > m.stack {
		m.stack = depth
	}
	bs := make([]*bucket, len(hashes))
	for i, h := range hashes {
		b, ok := m.buckets[h]
		if !ok {
			b = &bucket{}
			m.buckets[h] = b
		}
		bs[i] = b
	}
	m.mu.Unlock()

	for _, b := range bs {
		b.append(path)
	}
}

// markDone sets the done-indexing flag. The search loop never gates on
// this (spec §9: it's advisory only, preserved for parity with the
// original, which set it but never read it back).
func (m *FileMap) markDone() {
	m.mu.Lock()
	m.doneIndexing = true
	m.mu.Unlock()
}

// DoneIndexing reports whether the current generation's walk has
// completed. Advisory only; see markDone.
func (m *FileMap) DoneIndexing() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.doneIndexing
}

// Stack returns the maximum depth observed in the current generation.
func (m *FileMap) Stack() uint16 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stack
}

// Len returns the number of distinct buckets (StackHash keys) currently
// in the map. The searcher uses a change in this value, alongside the
// search term, to decide whether to rescan (spec §4.4 step 1-2).
func (m *FileMap) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}

// Bucket returns the bucket for hash, or nil if none exists. The map
// lock is held only long enough to look up the bucket pointer; the
// caller scans the returned bucket's Snapshot without the map lock held
// (spec §5: "the map lock must never be held across a bucket scan").
func (m *FileMap) Bucket(hash hashkernel.StackHash) *bucket {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buckets[hash]
}
