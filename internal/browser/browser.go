// Package browser implements the depth-1 current-directory listing view
// (spec §4.3): the immediate children of CWD, sorted ascending by name
// and filtered by a case-insensitive prefix on the search term.
package browser

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/JustBobinAround/jef/internal/core"
)

// pollInterval is the browser's poll cadence (spec §4.3 step 4).
const pollInterval = 100 * time.Millisecond

// Entry is one listed child of the current directory. Size/IsDir/Human
// are supplemented over the original Rust browser (which tracked only a
// path) per SPEC_FULL §4: a terminal file explorer conventionally shows
// at least a directory marker and a human-readable size.
type Entry struct {
	Path  string
	Name  string
	IsDir bool
	Size  int64
	Human string
}

// Browser is the background task of spec §4.3.
type Browser struct {
	SearchTerm *core.Cell[string]
	Halt       *core.HaltFlag
	Log        *zap.SugaredLogger

	results *core.Cell[[]Entry]

	prevDir    string
	prevSearch string
}

// New creates a Browser with an empty result cell.
func New(searchTerm *core.Cell[string], halt *core.HaltFlag, log *zap.SugaredLogger) *Browser {
	return &Browser{
		SearchTerm: searchTerm,
		Halt:       halt,
		Log:        log,
		results:    core.NewCell[[]Entry](nil),
	}
}

// Results returns a snapshot of the current browser listing.
func (b *Browser) Results() []Entry {
	return b.results.Get()
}

// Run executes the browser loop until Halt is set.
func (b *Browser) Run(ctx context.Context) {
	// Run once unconditionally on start (spec §4.3 step 1: "On start
	// and whenever CWD or search_term has changed...").
	b.refresh()

	for {
		if b.Halt.Halted() {
			return
		}

		cwd, err := os.Getwd()
		term := b.SearchTerm.Get()
		if err == nil && (cwd != b.prevDir || term != b.prevSearch) {
			b.refresh()
		}

		select {
		case <-time.After(pollInterval):
		case <-ctx.Done():
			return
		}
		if b.Halt.Halted() {
			return
		}
	}
}

func (b *Browser) refresh() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}
	term := strings.ToLower(b.SearchTerm.Get())

	entries, err := os.ReadDir(cwd)
	if err != nil {
		if b.Log != nil {
			b.Log.Debugw("browser readdir failed, leaving previous state", "cwd", cwd, "err", err)
		}
		b.prevDir = cwd
		b.prevSearch = term
		return
	}

	out := make([]Entry, 0, len(entries))
	for _, d := range entries {
		if b.Halt.Halted() {
			break
		}
		name := d.Name()
		if term != "" && !strings.HasPrefix(strings.ToLower(name), term) {
			continue
		}
		info, infoErr := d.Info()
		var size int64
		if infoErr == nil {
			size = info.Size()
		}
		out = append(out, Entry{
			Path:  filepath.Join(cwd, name),
			Name:  name,
			IsDir: d.IsDir(),
			Size:  size,
			Human: humanize.Bytes(uint64(size)),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	b.results.Set(out)
	b.prevDir = cwd
	b.prevSearch = term
}
