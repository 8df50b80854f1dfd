// Command jef is a vi-inspired terminal file explorer backed by a
// concurrent, depth-aware prefix index of the current working
// directory's subtree.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"

	"github.com/JustBobinAround/jef/internal/browser"
	"github.com/JustBobinAround/jef/internal/config"
	"github.com/JustBobinAround/jef/internal/core"
	"github.com/JustBobinAround/jef/internal/corelog"
	"github.com/JustBobinAround/jef/internal/cwdwatch"
	"github.com/JustBobinAround/jef/internal/fileindex"
	"github.com/JustBobinAround/jef/internal/search"
	"github.com/JustBobinAround/jef/internal/tui"
)

// version is set at build time via -ldflags "-X main.version=...". It is
// left as a plain var, not a const, so packagers can stamp it.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("jef", version)
		return
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Fprintln(os.Stderr, "jef: stdout is not a terminal")
		os.Exit(1)
	}

	log := corelog.New()
	defer log.Sync() //nolint:errcheck

	halt := &core.HaltFlag{}
	searchTerm := core.NewCell("")

	ix := fileindex.NewIndexer(".", halt, corelog.Component(log, "indexer"))
	br := browser.New(searchTerm, halt, corelog.Component(log, "browser"))
	se := search.New(ix.Map, searchTerm, halt, corelog.Component(log, "search"))

	if watcher, err := cwdwatch.New(corelog.Component(log, "cwdwatch")); err == nil {
		ix.EarlyWake = watcher.Wake()
		ix.Watcher = watcher
		defer watcher.Close()
	} else {
		log.Debugw("cwdwatch unavailable, falling back to poll-only", "err", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() { defer wg.Done(); ix.Run(ctx) }()
	go func() { defer wg.Done(); br.Run(ctx) }()
	go func() { defer wg.Done(); se.Run(ctx) }()

	cfg := config.Load(corelog.Component(log, "config"))
	model := tui.New(br, se, halt, searchTerm, cfg, corelog.Component(log, "tui"))

	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		log.Errorw("tui exited with error", "err", err)
	}

	// Mirrors the original's shutdown sequence: set halt, then join
	// every worker before returning (src/main.rs).
	halt.Set(core.Halt)
	cancel()
	wg.Wait()
}
