package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/skillshare/internal/talks"
)

// updateList re-renders the talk list into the viewport and keeps the
// selected talk visible.
func (m *Model) updateList() {
	if !m.ready {
		return
	}
	m.list.Width = m.width
	m.list.Height = m.listHeight()

	content, start, end := m.renderTalks()
	m.list.SetContent(content)

	switch {
	case start < m.list.YOffset:
		m.list.SetYOffset(start)
	case end > m.list.YOffset+m.list.Height:
		m.list.SetYOffset(end - m.list.Height)
	}
}

// renderTalks returns the list content and the line span of the selected
// talk.
func (m Model) renderTalks() (string, int, int) {
	styles := m.theme.Styles()

	if !m.hasState {
		return styles.MutedText.Render("  Waiting for the talk list..."), 0, 0
	}
	if len(m.app.Talks) == 0 {
		return styles.MutedText.Render("  No talks yet. Press n to propose one."), 0, 0
	}

	width := m.width
	if width < 20 {
		width = 20
	}
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BorderMuted)).Render(strings.Repeat("─", width))

	var lines []string
	start, end := 0, 0
	for i, t := range m.app.Talks {
		block := renderTalk(t, styles, width)
		if i == m.selected {
			start = len(lines)
			for j, line := range block {
				block[j] = styles.Selected.Width(width).Render(line)
			}
			end = start + len(block)
		}
		lines = append(lines, block...)
		lines = append(lines, sep)
	}
	return strings.Join(lines, "\n"), start, end
}

func renderTalk(t talks.Talk, styles Styles, width int) []string {
	title := t.Title
	if title == "" {
		title = "(untitled)"
	}
	lines := []string{
		" " + styles.Text.Bold(true).Render(truncate(title, width-20)) +
			styles.FaintText.Render("  by ") + styles.AccentText.Render(t.Presenter),
	}
	if t.Summary != "" {
		lines = append(lines, "   "+styles.MutedText.Render(truncate(t.Summary, width-4)))
	}
	for _, c := range t.Comments {
		lines = append(lines, "     "+styles.InfoText.Render(c.Author+":")+" "+
			styles.Text.Render(truncate(c.Message, width-len(c.Author)-8)))
	}
	return lines
}
