package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// syncState classifies the sync snapshot for the header badge.
func syncState(snap syncView) string {
	switch {
	case snap.offline:
		return syncOffline
	case snap.failures > 0:
		return syncRetrying
	case snap.live:
		return syncLive
	default:
		return syncConnecting
	}
}

// syncView is the subset of the sync snapshot the header renders.
type syncView struct {
	live     bool
	offline  bool
	failures int
	updated  string
}

func (m Model) syncSummary() syncView {
	v := syncView{
		live:     m.sync.Live,
		offline:  m.sync.IsOffline(),
		failures: m.sync.ConsecutiveFailures,
	}
	if !m.sync.LastUpdated.IsZero() {
		v.updated = m.sync.LastUpdated.Format("15:04:05")
	}
	return v
}

// renderHeader renders the status bar: name, talk count and sync health.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	sv := m.syncSummary()
	state := syncState(sv)
	label := state
	if state == syncRetrying || state == syncOffline {
		label = fmt.Sprintf("%s (%d)", state, sv.failures)
	}

	parts := []string{
		bg.Render("skillshare", styles.Logo),
		styles.SyncStyle(state).Render(strings.ToUpper(label)),
	}

	if m.hasState {
		parts = append(parts,
			bg.Render("as", styles.FaintText)+bg.Spaces(1)+bg.Render(m.app.User, styles.AccentText),
			bg.Render(pluralize(len(m.app.Talks), "talk", "talks"), styles.Text),
		)
	}
	if sv.updated != "" {
		parts = append(parts, bg.Render(sv.updated, freshnessStyle(styles, state)))
	}
	if m.serverURL != "" && m.width >= 100 {
		parts = append(parts, bg.Render(truncate(m.serverURL, 40), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// freshnessStyle colors the last-update time by how much it can be trusted.
func freshnessStyle(styles Styles, state string) lipgloss.Style {
	switch state {
	case syncLive:
		return styles.SuccessText
	case syncRetrying:
		return styles.WarningText
	case syncOffline:
		return styles.DangerText
	default:
		return styles.MutedText
	}
}

// renderCommandBar renders the key hints line.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	k := m.keys

	segments := []string{
		shortcut(bg, styles, k.NewTalk, "New"),
		shortcut(bg, styles, k.Comment, "Comment"),
		shortcut(bg, styles, k.DeleteTalk, "Delete"),
		shortcut(bg, styles, k.SetName, "Name"),
		shortcut(bg, styles, k.Down, "Navigate"),
		shortcut(bg, styles, k.Help, "More"),
		shortcut(bg, styles, k.CycleTheme, m.theme.Name),
	}
	return styles.Header.Width(m.width).Render(bg.Join(segments, "  "))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

// truncate shortens a string to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
