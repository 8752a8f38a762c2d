package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/skillshare/internal/state"
)

// Modal is the interface for modal dialogs.
// Update returns the updated modal, a command, and whether the modal closed.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// submitMsg carries the action a form produced.
type submitMsg struct {
	action state.Action
}

const maxFields = 2

// form is a one- or two-field text form that turns into an action on enter.
type form struct {
	title  string
	hint   string
	labels [maxFields]string
	inputs [maxFields]textinput.Model
	n      int
	focus  int
	build  func(values []string) state.Action
}

func newInput(placeholder string, limit int) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	return in
}

func newTalkForm() form {
	f := form{
		title:  "New Talk",
		hint:   "Presented under your current name.",
		labels: [maxFields]string{"Title:   ", "Summary: "},
		n:      2,
		build: func(v []string) state.Action {
			return state.NewTalk{Title: v[0], Summary: v[1]}
		},
	}
	f.inputs[0] = newInput("e.g. Unifying Go error handling", 120)
	f.inputs[1] = newInput("one line about the talk", 400)
	f.inputs[0].Focus()
	return f
}

func newCommentForm(talk string) form {
	f := form{
		title:  "Comment",
		hint:   "On " + talk,
		labels: [maxFields]string{"Message: "},
		n:      1,
		build: func(v []string) state.Action {
			return state.NewComment{Talk: talk, Message: v[0]}
		},
	}
	f.inputs[0] = newInput("say something nice", 400)
	f.inputs[0].Focus()
	return f
}

func newNameForm(current string) form {
	f := form{
		title:  "Display Name",
		hint:   "Saved to your preferences.",
		labels: [maxFields]string{"Name:    "},
		n:      1,
		build: func(v []string) state.Action {
			return state.SetUser{User: v[0]}
		},
	}
	f.inputs[0] = newInput(state.DefaultUser, 60)
	f.inputs[0].SetValue(current)
	f.inputs[0].CursorEnd()
	f.inputs[0].Focus()
	return f
}

// Update implements Modal.
func (f form) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
		return f, cmd, false
	}

	switch {
	case key.Matches(keyMsg, keys.Escape):
		return f, nil, true

	case key.Matches(keyMsg, keys.Confirm):
		a := f.build(f.values())
		return f, func() tea.Msg { return submitMsg{action: a} }, true

	case key.Matches(keyMsg, keys.Tab):
		f.moveFocus(1)
		return f, nil, false

	case key.Matches(keyMsg, keys.ShiftTab):
		f.moveFocus(-1)
		return f, nil, false
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(keyMsg)
	return f, cmd, false
}

func (f *form) moveFocus(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + f.n) % f.n
	f.inputs[f.focus].Focus()
}

// values returns the raw field values. Titles and messages are sent as
// typed; the server decides what is valid.
func (f form) values() []string {
	out := make([]string, f.n)
	for i := 0; i < f.n; i++ {
		out[i] = f.inputs[i].Value()
	}
	return out
}

// View implements Modal.
func (f form) View(theme Theme, width, height int) string {
	styles := theme.Styles()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render(f.title))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 40)))
	b.WriteString("\n\n")
	if f.hint != "" {
		b.WriteString(styles.MutedText.Render(f.hint))
		b.WriteString("\n\n")
	}

	for i := 0; i < f.n; i++ {
		label := styles.MutedText.Render(f.labels[i])
		if i == f.focus {
			label = styles.AccentText.Render(f.labels[i])
		}
		b.WriteString(label)
		b.WriteString(f.inputs[i].View())
		b.WriteString("\n\n")
	}
	b.WriteString(styles.FaintText.Render("enter submit · esc cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.BorderFocus)).
		Padding(1, 2).
		Width(60)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal.Render(b.String()))
}
