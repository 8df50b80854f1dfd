// Package tui is the modal, vi-inspired interface described in spec §6:
// it owns stdin/stdout, reads the browser and search result lists,
// mutates the shared search term and the current working directory, and
// sets halt on exit. Nothing in the core (internal/fileindex,
// internal/browser, internal/search) imports this package — the
// coupling is one-directional, exactly as spec §4.5 describes it.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/JustBobinAround/jef/internal/browser"
	"github.com/JustBobinAround/jef/internal/config"
	"github.com/JustBobinAround/jef/internal/core"
	"github.com/JustBobinAround/jef/internal/search"
)

// mode is the modal state machine of spec §6's key table.
type mode int

const (
	modeNormal mode = iota
	modeFuzzy
	modeMatch
	modeCommand
	modeShell
)

// pane selects which result list is displayed and moved over.
type pane int

const (
	paneBrowser pane = iota
	paneSearch
)

// refreshInterval is how often the TUI re-reads the shared result cells.
// It is independent of, and faster than, the workers' own poll intervals
// (100/150/200ms) so the display never lags a full worker tick behind.
const refreshInterval = 50 * time.Millisecond

// Model is the bubbletea model driving the whole interface.
type Model struct {
	browser *browser.Browser
	search  *search.Searcher
	halt    *core.HaltFlag
	term    *core.Cell[string]
	cfg     config.Config
	log     *zap.SugaredLogger

	mode mode
	pane pane

	input        string // text typed in fuzzy/match/command/shell modes
	pendingCount int    // accumulated digits for j/k repeat counts

	browserEntries []browser.Entry
	searchResults  []string
	cursor         int

	width, height int

	statusMsg string
	quitting  bool
}

// New builds a Model wired to the given background tasks and shared
// cells. cfg is used to resolve the opener for Enter on a file and the
// special_rule command for `$`.
func New(b *browser.Browser, s *search.Searcher, halt *core.HaltFlag, term *core.Cell[string], cfg config.Config, log *zap.SugaredLogger) Model {
	return Model{
		browser: b,
		search:  s,
		halt:    halt,
		term:    term,
		cfg:     cfg,
		log:     log,
		width:   80,
		height:  24,
	}
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Init starts the refresh loop.
func (m Model) Init() tea.Cmd {
	return tick()
}

// selectedPath returns the path under the cursor in the active pane, or
// "" if the pane is empty.
func (m Model) selectedPath() string {
	switch m.pane {
	case paneBrowser:
		if m.cursor < 0 || m.cursor >= len(m.browserEntries) {
			return ""
		}
		return m.browserEntries[m.cursor].Path
	default:
		if m.cursor < 0 || m.cursor >= len(m.searchResults) {
			return ""
		}
		return m.searchResults[m.cursor]
	}
}

func (m Model) activeLen() int {
	if m.pane == paneBrowser {
		return len(m.browserEntries)
	}
	return len(m.searchResults)
}

func (m *Model) clampCursor() {
	n := m.activeLen()
	if n == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// takeCount consumes and resets the accumulated repeat count, defaulting
// to 1 (spec §6: "N=prefix digits, default 1").
func (m *Model) takeCount() int {
	n := m.pendingCount
	if n <= 0 {
		n = 1
	}
	m.pendingCount = 0
	return n
}
