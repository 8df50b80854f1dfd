package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/JustBobinAround/jef/internal/browser"
)

var (
	styleTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	styleDim   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	styleSel   = lipgloss.NewStyle().Reverse(true)
	styleDir   = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	styleInput = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	styleError = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(styleTitle.Render(m.headerLine()))
	b.WriteString("\n\n")

	switch m.pane {
	case paneBrowser:
		b.WriteString(renderBrowserList(m.browserEntries, m.cursor, m.width))
	default:
		b.WriteString(renderSearchList(m.searchResults, m.cursor, m.width))
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())

	return b.String()
}

func (m Model) headerLine() string {
	switch m.mode {
	case modeFuzzy:
		return "jef — fuzzy: " + styleInput.Render(m.input)
	case modeMatch:
		return "jef — match: " + styleInput.Render(m.input)
	case modeCommand:
		return "jef — :" + styleInput.Render(m.input)
	case modeShell:
		return "jef — !" + styleInput.Render(m.input)
	default:
		if m.pane == paneSearch {
			return "jef — search results"
		}
		return "jef — browser"
	}
}

func (m Model) statusLine() string {
	if m.statusMsg != "" {
		return styleError.Render(m.statusMsg)
	}
	count := ""
	if m.pendingCount > 0 {
		count = fmt.Sprintf(" count=%d", m.pendingCount)
	}
	return styleDim.Render(fmt.Sprintf("f:fuzzy /:match j/k:move :cmd !:shell $:special #:shell-interactive%s", count))
}

func renderBrowserList(entries []browser.Entry, cursor, width int) string {
	if len(entries) == 0 {
		return styleDim.Render("(empty)")
	}
	var b strings.Builder
	for i, e := range entries {
		line := truncate(e.Name, width-12)
		if e.IsDir {
			line = styleDir.Render(line + "/")
		} else {
			line = fmt.Sprintf("%-*s %8s", width-12, line, e.Human)
		}
		if i == cursor {
			line = styleSel.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func renderSearchList(results []string, cursor, width int) string {
	if len(results) == 0 {
		return styleDim.Render("(no matches)")
	}
	var b strings.Builder
	for i, p := range results {
		line := truncate(p, width-2)
		if i == cursor {
			line = styleSel.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// truncate shortens s to fit within width display columns, counting
// wide (CJK/emoji) runes correctly via go-runewidth rather than byte or
// rune count.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
