package repl

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
)

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(
		m.ctxFunc(),
		"repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.altNav = nil
		m.historyIdx = m.history.Len()
		refreshMatches(&m, false)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		m.altNav = nil

		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		refreshMatches(&m, true)

		return m, nil

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		if msg.Alt {
			return m.ctrlHistory(-1), nil
		}

		return m.stepHistory(-1, false), nil

	case tea.KeyDown:
		if msg.Alt {
			return m.ctrlHistory(1), nil
		}

		return m.stepHistory(1, false), nil

	case tea.KeyShiftUp:
		return m.stepHistory(-1, true), nil

	case tea.KeyShiftDown:
		return m.stepHistory(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m, false)

			return m, nil
		}

		m.altNav = nil

		if m.mode == modeEval {
			return m.switchToMode(modeCtrl), nil
		}

		return m.switchToMode(modeEval), nil

	case tea.KeyRunes:
		// Space breaks out of tab-cycling, keeping the candidate.
		if m.tabActive && msg.String() == " " {
			m.tabActive = false
		}

		var cmd tea.Cmd

		m.historyIdx = m.history.Len()
		m.input, cmd = m.input.Update(msg)
		refreshMatches(&m, true)

		return m, cmd
	}

	// Deletions and cursor movement never auto-confirm a completion.
	var cmd tea.Cmd

	m.tabActive = false
	m.altNav = nil
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m, false)

	return m, cmd
}

// cycle moves the selected candidate by delta (1 for Tab, -1 for
// Shift-Tab), wrapping at either end. A sole candidate is completed and
// confirmed immediately.
func (m model) cycle(delta int) model {
	n := len(m.matches)
	if n == 0 {
		return m
	}

	if n == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + delta + n) % n
	case delta < 0:
		m.suggIdx = n - 1
	default:
		m.suggIdx = 0
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// replaceCurrentWord replaces the current word boundaries in the input with
// the given replacement text and repositions the cursor.
func replaceCurrentWord(m *model, replacement string) {
	input := m.input.Value()
	newInput := input[:m.wordStart] + replacement + input[m.wordEnd:]
	newCursor := m.wordStart + len(replacement)

	m.input.SetValue(newInput)
	m.input.SetCursor(newCursor)

	m.wordEnd = newCursor
}

// refreshMatches recomputes fuzzy matches for the current input state.
// When autoConfirm is true it also confirms the completion when exactly
// one candidate remains and the typed word already equals it.
func refreshMatches(m *model, autoConfirm bool) {
	m.matches, m.candidates, m.wordStart, m.wordEnd = m.computeMatches()

	if !m.tabActive {
		m.suggIdx = -1
	}

	if !autoConfirm || len(m.matches) != 1 {
		return
	}

	candidate := m.matches[0].Str
	if m.input.Value()[m.wordStart:m.wordEnd] == candidate {
		replaceCurrentWord(m, candidate)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil
	}
}

// show loads history entry i into the input.
func (m model) show(i int, entry HistoryEntry) model {
	if m.mode != entry.Mode {
		m = m.switchToMode(entry.Mode)
	}

	m.historyIdx = i
	m.input.SetValue(entry.Line)
	m.input.SetCursor(len(entry.Line))
	refreshMatches(&m, false)

	return m
}

// findHistory returns the nearest entry from the current position in
// direction dir (-1 older, 1 newer) that match accepts.
func (m model) findHistory(dir int, match func(HistoryEntry) bool) (int, HistoryEntry, bool) {
	for i := m.historyIdx + dir; i >= 0 && i < m.history.Len(); i += dir {
		if entry, err := m.history.GetEntry(i); err == nil && match(entry) {
			return i, entry, true
		}
	}

	return 0, HistoryEntry{}, false
}

// stepHistory moves through history in direction dir. Unless inMode is set,
// the input switches mode to match each entry. Stepping past the newest
// entry clears the input.
func (m model) stepHistory(dir int, inMode bool) model {
	mode := m.mode
	match := func(e HistoryEntry) bool { return !inMode || e.Mode == mode }

	if i, entry, ok := m.findHistory(dir, match); ok {
		return m.show(i, entry)
	}

	if dir > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m, false)
	}

	return m
}

// ctrlHistory navigates command history only, switching to command mode on
// first use. Running off either end restores the input that was there
// before navigation began.
func (m model) ctrlHistory(dir int) model {
	if m.altNav == nil {
		m.altNav = &savedInput{
			mode:   m.mode,
			text:   m.input.Value(),
			cursor: m.input.Position(),
		}

		if m.mode != modeCtrl {
			m = m.switchToMode(modeCtrl)
		}
	}

	isCtrl := func(e HistoryEntry) bool { return e.Mode == modeCtrl }

	if i, entry, ok := m.findHistory(dir, isCtrl); ok {
		return m.show(i, entry)
	}

	orig := *m.altNav
	m.altNav = nil

	if orig.mode != m.mode {
		m = m.switchToMode(orig.mode)
	}

	m.input.SetValue(orig.text)
	m.input.SetCursor(orig.cursor)
	m.historyIdx = m.history.Len()
	refreshMatches(&m, false)

	return m
}

// switchToMode switches to the specified mode, preserving the input of the
// mode being left.
func (m model) switchToMode(mode inputMode) model {
	m.saved[m.mode] = savedInput{
		mode:   m.mode,
		text:   m.input.Value(),
		cursor: m.input.Position(),
	}

	m.mode = mode
	if mode == modeEval {
		m.input.Prompt = promptStyle.Render(evalPrompt)
	} else {
		m.input.Prompt = ctrlPromptStyle.Render(ctrlPrompt)
	}

	m.input.SetValue(m.saved[mode].text)
	m.input.SetCursor(m.saved[mode].cursor)
	refreshMatches(&m, false)

	return m
}
