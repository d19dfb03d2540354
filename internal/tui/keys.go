package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/quill/internal/app"
)

// Terminals report ctrl+i as tab and cannot tell shift+enter from enter,
// so the editor shortcuts get alt aliases.
var aliases = map[app.Action][]string{
	app.ActionItalic:    {"alt+i"},
	app.ActionLineBreak: {"alt+enter"},
}

type keyMap struct {
	actions   map[app.Action]key.Binding
	order     []app.Action
	link      key.Binding
	publish   key.Binding
	delete    key.Binding
	nextFocus key.Binding
	prevFocus key.Binding
	up        key.Binding
	down      key.Binding
	open      key.Binding
	selectAll key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	km := keyMap{
		actions: make(map[app.Action]key.Binding, len(app.Shortcuts)),
		link: key.NewBinding(
			key.WithKeys("ctrl+k"),
			key.WithHelp("ctrl+k", "link"),
		),
		publish: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "publish"),
		),
		delete: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "delete"),
		),
		nextFocus: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next pane"),
		),
		prevFocus: key.NewBinding(
			key.WithKeys("shift+tab"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
		),
		open: key.NewBinding(
			key.WithKeys("enter"),
		),
		selectAll: key.NewBinding(
			key.WithKeys("ctrl+a"),
		),
		quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("ctrl+q", "quit"),
		),
	}
	for _, s := range app.Shortcuts {
		keys := append([]string{s.Chord}, aliases[s.Action]...)
		helpKey := s.Chord
		if a := aliases[s.Action]; len(a) > 0 {
			helpKey = a[0]
		}
		km.actions[s.Action] = key.NewBinding(
			key.WithKeys(keys...),
			key.WithHelp(helpKey, s.Help),
		)
		km.order = append(km.order, s.Action)
	}
	return km
}

// action returns the editor action bound to msg.
func (km keyMap) action(msg tea.KeyMsg) (app.Action, bool) {
	for _, a := range km.order {
		if key.Matches(msg, km.actions[a]) {
			return a, true
		}
	}
	return "", false
}

func (km keyMap) help() []key.Binding {
	out := make([]key.Binding, 0, len(km.order)+4)
	for _, a := range km.order {
		out = append(out, km.actions[a])
	}
	return append(out, km.link, km.publish, km.delete, km.nextFocus, km.quit)
}
