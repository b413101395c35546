package repl

// setInput replaces the input line, leaves history browsing, and recomputes
// completions.
func (m model) setInput(b buffer) model {
	m.pos = m.history.Len()

	return m.show(b)
}

// show replaces the input line and recomputes completions.
func (m model) show(b buffer) model {
	m.input.SetValue(b.text)
	m.input.SetCursor(b.cursor)
	m.complete(false)

	return m
}

func (m model) showEntry(e HistoryEntry) model {
	return m.show(buffer{e.Line, len(e.Line)})
}

// browsing reports whether the input shows a history entry.
func (m model) browsing() bool { return m.pos < m.history.Len() }

// historyStep moves through history by step, switching mode to match each
// entry. Moving past the newest entry clears the input.
func (m model) historyStep(step int) model {
	i := m.pos + step

	switch {
	case i < 0:
		return m

	case i >= m.history.Len():
		return m.setInput(buffer{})
	}

	e, err := m.history.Entry(i)
	if err != nil {
		return m
	}

	m.pos = i

	return m.switchToMode(e.Mode).showEntry(e)
}

// historyInMode moves through history by step, skipping entries of other
// modes. Moving past the newest entry clears the input.
func (m model) historyInMode(step int) model {
	if i, e, ok := m.seek(step, m.mode); ok {
		m.pos = i

		return m.showEntry(e)
	}

	if step > 0 && m.browsing() {
		return m.setInput(buffer{})
	}

	return m
}

// historyCtrl browses command history from either mode. Running off either
// end restores the mode and input from before browsing began.
func (m model) historyCtrl(step int) model {
	if !m.alt.active {
		m.alt = altNav{
			active: true,
			mode:   m.mode,
			before: buffer{m.input.Value(), m.input.Position()},
		}
		m = m.switchToMode(modeCtrl)
	}

	if i, e, ok := m.seek(step, modeCtrl); ok {
		m.pos = i

		return m.showEntry(e)
	}

	m.alt.active = false

	return m.switchToMode(m.alt.mode).setInput(m.alt.before)
}

// seek finds the nearest history entry of mode in the direction of step.
func (m model) seek(step int, mode inputMode) (int, HistoryEntry, bool) {
	for i := m.pos + step; i >= 0 && i < m.history.Len(); i += step {
		if e, err := m.history.Entry(i); err == nil && e.Mode == mode {
			return i, e, true
		}
	}

	return 0, HistoryEntry{}, false
}

func (m model) toggleMode() model {
	return m.switchToMode(1 - m.mode)
}

// switchToMode shows the input of mode, saving the input of the current
// mode for when it is shown again.
func (m model) switchToMode(mode inputMode) model {
	if mode == m.mode {
		return m
	}

	m.saved[m.mode] = buffer{m.input.Value(), m.input.Position()}
	m.mode = mode
	m.input.Prompt = promptFor(mode)

	return m.show(m.saved[mode])
}
