// Package opener resolves a file's extension to a configured
// application and builds the *exec.Cmd needed to run it (spec §4.5,
// §6). TUI suspension/restoration around the child process is the
// caller's responsibility (internal/tui wires this through bubbletea's
// own ExecProcess, which already knows how to give a child raw control
// of the terminal and restore the alternate screen afterwards) — this
// package only decides WHAT to run and HOW to wait for it.
package opener

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/JustBobinAround/jef/internal/config"
	"github.com/JustBobinAround/jef/internal/jeferr"
)

// Resolution is what to do with a selected path: either hand it to a
// configured application, or fall back to the platform's default opener.
type Resolution struct {
	Path string
	App  string
	TUI  bool
	// UseDefault is true when no app_rule matched extension; the caller
	// should hand the path to the OS's own "open" mechanism.
	UseDefault bool
}

// Resolve decides how path should be opened, per the extension ->
// AppRule lookup of spec §6 ("file_types are extensions without the
// leading dot; matching is exact-case").
func Resolve(cfg config.Config, path string) Resolution {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return Resolution{Path: path, UseDefault: true}
	}
	rule, ok := cfg.AppForExtension(ext)
	if !ok {
		return Resolution{Path: path, UseDefault: true}
	}
	return Resolution{Path: path, App: rule.App, TUI: rule.TUI}
}

// Command builds the *exec.Cmd for a TUI resolution (app_rule.tui ==
// true): the child inherits the controlling terminal so it can draw
// directly, same as open_tui_app's "run synchronously, wait for exit".
func Command(r Resolution) (*exec.Cmd, error) {
	if r.UseDefault || r.App == "" {
		return nil, jeferr.New("opener: no application resolved for " + r.Path)
	}
	cmd := exec.Command(r.App, r.Path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd, nil
}

// OpenDetached spawns a non-TUI app_rule's application without waiting
// for it and without attaching it to the controlling terminal, mirroring
// open::with_detached. Spawn failure aborts the open per spec §7; the
// caller is expected to stay in the UI.
func OpenDetached(r Resolution) error {
	if r.UseDefault || r.App == "" {
		return jeferr.New("opener: no application resolved for " + r.Path)
	}
	cmd := exec.Command(r.App, r.Path)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	if err := cmd.Start(); err != nil {
		return jeferr.Wrap("opener: failed to start detached app", err)
	}
	// Reap the child in the background without blocking the caller; a
	// detached app is never waited on by the UI itself.
	go func() { _ = cmd.Wait() }()
	return nil
}

// SpecialRuleCommand builds the shell command run for the `$` key (spec
// §6's `[special_rule]`), echoing it first the way returning_terminal_at
// does ("!<command>") before executing, and pausing for Enter afterward.
func SpecialRuleCommand(cfg config.Config) (*exec.Cmd, error) {
	if cfg.SpecialRule.App == "" {
		return nil, jeferr.New("opener: no special_rule configured")
	}
	return ShellCommand(cfg.SpecialRule.App), nil
}

// loginShell returns $SHELL, falling back to /bin/sh.
func loginShell() string {
	shell := os.Getenv("SHELL")
	if shell == "" {
		shell = "/bin/sh"
	}
	return shell
}

// shellSingleQuote single-quotes s for safe interpolation into a shell
// script, escaping any embedded single quotes.
func shellSingleQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// pauseScript is appended to every command run through ShellCommand and
// InteractiveShellCommand: returning_terminal_at prints "\n Press enter
// to continue..." and blocks on a line read before restoring the TUI, so
// the user has a chance to read the child's output.
const pauseScript = `; printf '\nPress enter to continue...\n'; read -r _`

// ShellCommand wraps command in the user's login shell ($SHELL, falling
// back to /bin/sh), echoing "!<command>" before running it and pausing
// for Enter afterward — returning_terminal_at's echo-and-wait behavior,
// used for both the `!` (shell command) and `$` (special rule) bindings.
func ShellCommand(command string) *exec.Cmd {
	shell := loginShell()
	script := "printf '%s\\n' " + shellSingleQuote("!"+command) + "; " + command + pauseScript
	cmd := exec.Command(shell, "-c", script)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}

// InteractiveShellCommand builds the command for the `#` key: an
// interactive login shell with no command argument, per
// returning_terminal_at's "open an interactive shell" behavior when
// invoked without a command. There's no command line to echo, but the
// same "press enter to continue" pause applies once the shell exits.
func InteractiveShellCommand() *exec.Cmd {
	shell := loginShell()
	script := shellSingleQuote(shell) + pauseScript
	cmd := exec.Command(shell, "-c", script)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd
}
