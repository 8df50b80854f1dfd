package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/JustBobinAround/jef/internal/browser"
	"github.com/JustBobinAround/jef/internal/config"
	"github.com/JustBobinAround/jef/internal/core"
	"github.com/JustBobinAround/jef/internal/search"
)

func newTestModel() Model {
	halt := &core.HaltFlag{}
	term := core.NewCell("")
	b := browser.New(term, halt, nil)
	s := search.New(nil, term, halt, nil)
	return New(b, s, halt, term, config.Default(), nil)
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDigitsAccumulateRepeatCount(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(runeKey('1'))
	m = next.(Model)
	next, _ = m.Update(runeKey('2'))
	m = next.(Model)
	require.Equal(t, 12, m.pendingCount)
}

func TestEscClearsSearchTermAndReturnsToNormal(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(runeKey('f'))
	m = next.(Model)
	require.Equal(t, modeFuzzy, m.mode)

	next, _ = m.Update(runeKey('c'))
	m = next.(Model)
	require.Equal(t, "c", m.term.Get())

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(Model)
	require.Equal(t, modeNormal, m.mode)
	require.Equal(t, "", m.term.Get())
}

func TestTakeCountDefaultsToOne(t *testing.T) {
	m := newTestModel()
	require.Equal(t, 1, m.takeCount())
	m.pendingCount = 7
	require.Equal(t, 7, m.takeCount())
	require.Equal(t, 0, m.pendingCount)
}

func TestTruncateLeavesShortStringsUntouched(t *testing.T) {
	require.Equal(t, "hello", truncate("hello", 10))
}

func TestTruncateShortensLongStrings(t *testing.T) {
	got := truncate("a-very-long-file-name.txt", 10)
	require.LessOrEqual(t, len(got), 10+len("…"))
}

func TestCommandModeQExits(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(runeKey(':'))
	m = next.(Model)
	require.Equal(t, modeCommand, m.mode)

	next, _ = m.Update(runeKey('q'))
	m = next.(Model)
	require.Equal(t, "q", m.input)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.True(t, m.quitting)
	require.True(t, m.halt.Halted())
	require.NotNil(t, cmd)
}

func TestCommandModeUnknownReturnsToNormal(t *testing.T) {
	m := newTestModel()
	next, _ := m.Update(runeKey(':'))
	m = next.(Model)
	next, _ = m.Update(runeKey('z'))
	m = next.(Model)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(Model)
	require.Equal(t, modeNormal, m.mode)
	require.False(t, m.quitting)
}
