package tui

import (
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JustBobinAround/jef/internal/core"
	"github.com/JustBobinAround/jef/internal/opener"
)

// execFinishedMsg reports that a suspended child process (opener,
// special_rule, or an interactive/one-shot shell) has returned control.
type execFinishedMsg struct{ err error }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tickMsg:
		m.browserEntries = m.browser.Results()
		m.searchResults = m.search.Results()
		m.clampCursor()
		return m, tick()

	case execFinishedMsg:
		m.statusMsg = ""
		if msg.err != nil {
			m.statusMsg = "command failed: " + msg.err.Error()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeFuzzy, modeMatch:
		return m.handleTypingKey(msg)
	case modeCommand:
		return m.handleCommandKey(msg)
	case modeShell:
		return m.handleShellKey(msg)
	default:
		return m.handleNormalKey(msg)
	}
}

func (m Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	s := msg.String()

	// 0-9: accumulate repeat count (spec §6). A leading zero with no
	// prior digits is treated as a literal count of zero, consistent
	// with vi's own "0 moves to column 0" being a separate, unmodeled
	// binding here.
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		m.pendingCount = m.pendingCount*10 + int(s[0]-'0')
		return m, nil
	}

	switch s {
	case "f":
		m.mode = modeFuzzy
		m.pane = paneSearch
		m.input = m.term.Get()
		return m, nil
	case "/":
		m.mode = modeMatch
		m.pane = paneBrowser
		m.input = m.term.Get()
		return m, nil
	case ":":
		m.mode = modeCommand
		m.input = ""
		return m, nil
	case "!":
		m.mode = modeShell
		m.input = ""
		return m, nil
	case "$":
		cmd, err := opener.SpecialRuleCommand(m.cfg)
		if err != nil {
			m.statusMsg = err.Error()
			return m, nil
		}
		return m, tea.ExecProcess(cmd, func(err error) tea.Msg { return execFinishedMsg{err} })
	case "#":
		cmd := opener.InteractiveShellCommand()
		return m, tea.ExecProcess(cmd, func(err error) tea.Msg { return execFinishedMsg{err} })
	case "j", "down":
		n := m.takeCount()
		m.cursor += n
		m.clampCursor()
		return m, nil
	case "k", "up":
		n := m.takeCount()
		m.cursor -= n
		m.clampCursor()
		return m, nil
	case "enter":
		if m.pendingCount > 0 {
			n := m.takeCount()
			m.cursor += n
			m.clampCursor()
			return m, nil
		}
		return m.openSelection()
	case "backspace":
		m.pendingCount = 0
		_ = os.Chdir("..")
		m.cursor = 0
		return m, nil
	case "esc":
		m.pendingCount = 0
		m.term.Set("")
		m.mode = modeNormal
		return m, nil
	case "q", "ctrl+c":
		m.halt.Set(core.Halt)
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// openSelection implements Enter's "else open selection" branch: a
// directory triggers chdir, a file is handed to the opener.
func (m Model) openSelection() (tea.Model, tea.Cmd) {
	path := m.selectedPath()
	if path == "" {
		return m, nil
	}

	if m.pane == paneBrowser {
		for _, e := range m.browserEntries {
			if e.Path == path && e.IsDir {
				_ = os.Chdir(path)
				m.cursor = 0
				return m, nil
			}
		}
	}

	res := opener.Resolve(m.cfg, path)
	if res.UseDefault {
		m.statusMsg = "no app configured for " + path
		return m, nil
	}
	if !res.TUI {
		if err := opener.OpenDetached(res); err != nil {
			m.statusMsg = err.Error()
		}
		return m, nil
	}
	cmd, err := opener.Command(res)
	if err != nil {
		m.statusMsg = err.Error()
		return m, nil
	}
	return m, tea.ExecProcess(cmd, func(err error) tea.Msg { return execFinishedMsg{err} })
}

func (m Model) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input = ""
		m.term.Set("")
		m.mode = modeNormal
		return m, nil
	case "enter":
		return m.openSelection()
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		m.term.Set(m.input)
		return m, nil
	default:
		if len(msg.Runes) > 0 {
			m.input += string(msg.Runes)
			m.term.Set(m.input)
		}
		return m, nil
	}
}

func (m Model) handleCommandKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input = ""
		m.mode = modeNormal
		return m, nil
	case "enter":
		cmd := strings.TrimSpace(m.input)
		m.input = ""
		m.mode = modeNormal
		switch cmd {
		case "q", "q!", "wq":
			m.halt.Set(core.Halt)
			m.quitting = true
			return m, tea.Quit
		}
		// Anything else returns to normal mode with no error surfaced
		// (spec §6/§7).
		return m, nil
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	default:
		if len(msg.Runes) > 0 {
			m.input += string(msg.Runes)
		}
		return m, nil
	}
}

func (m Model) handleShellKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input = ""
		m.mode = modeNormal
		return m, nil
	case "enter":
		command := m.input
		m.input = ""
		m.mode = modeNormal
		if strings.TrimSpace(command) == "" {
			return m, nil
		}
		cmd := opener.ShellCommand(command)
		return m, tea.ExecProcess(cmd, func(err error) tea.Msg { return execFinishedMsg{err} })
	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		return m, nil
	default:
		if len(msg.Runes) > 0 {
			m.input += string(msg.Runes)
		}
		return m, nil
	}
}
