// Package search implements the index-search task (spec §4.4): it fans a
// search term out into the set of buckets that could contain a match at
// any observed depth, scans each bucket in parallel, and keeps only
// paths whose basename truly begins with the term.
package search

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/JustBobinAround/jef/internal/core"
	"github.com/JustBobinAround/jef/internal/fileindex"
	"github.com/JustBobinAround/jef/internal/hashkernel"
)

// pollInterval is the searcher's poll cadence (spec §4.4 step 6).
const pollInterval = 150 * time.Millisecond

// scanConcurrency bounds how many buckets are scanned in parallel for a
// single search pass.
const scanConcurrency = 16

// Searcher is the background task of spec §4.4.
type Searcher struct {
	Map        *fileindex.FileMap
	SearchTerm *core.Cell[string]
	Halt       *core.HaltFlag
	Log        *zap.SugaredLogger

	results *core.Cell[[]string]

	lastSearch string
	lastSize   int
}

// New creates a Searcher over map, with an empty result cell.
func New(m *fileindex.FileMap, searchTerm *core.Cell[string], halt *core.HaltFlag, log *zap.SugaredLogger) *Searcher {
	return &Searcher{
		Map:        m,
		SearchTerm: searchTerm,
		Halt:       halt,
		Log:        log,
		results:    core.NewCell[[]string](nil),
	}
}

// Results returns a snapshot of the current match set. Order is
// unspecified (spec §1: ranking is a non-goal).
func (s *Searcher) Results() []string {
	return s.results.Get()
}

// Run executes the searcher loop until Halt is set.
func (s *Searcher) Run(ctx context.Context) {
	for {
		if s.Halt.Halted() {
			return
		}

		stack := s.Map.Stack()
		size := s.Map.Len()
		term := s.SearchTerm.Get()

		if term != s.lastSearch || size != s.lastSize {
			s.lastSearch = term
			s.lastSize = size
			s.scan(ctx, stack, term)
		}

		select {
		case <-time.After(pollInterval):
		case <-ctx.Done():
			return
		}
	}
}

// scan computes the candidate hash set for term at every depth up to
// stack, scans each bucket in parallel, and replaces the result list
// with whatever survives the basename prefix check.
func (s *Searcher) scan(ctx context.Context, stack uint16, term string) {
	hashes := hashkernel.PossibleHashes(stack, term)

	var found core.ResultList

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scanConcurrency)

	for _, h := range hashes {
		h := h
		g.Go(func() error {
			if s.Halt.Halted() {
				return nil
			}
			b := s.Map.Bucket(h)
			if b == nil {
				return nil
			}
			for _, p := range b.Snapshot() {
				select {
				case <-gctx.Done():
					return nil
				default:
				}
				if hashkernel.HasPrefixFold(hashkernel.LastPathSegment(p), term) {
					found.Append(p)
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	s.results.Set(found.Snapshot())
	if s.Log != nil {
		s.Log.Debugw("search pass", "term", term, "stack", stack, "hits", len(found.Snapshot()))
	}
}
