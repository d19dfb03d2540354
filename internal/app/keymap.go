package app

import (
	"context"

	"github.com/aretw0/quill/pkg/format"
)

// Action is a command reachable from the keyboard.
type Action string

const (
	ActionSave      Action = "save"
	ActionNewNote   Action = "new-note"
	ActionBold      Action = "bold"
	ActionItalic    Action = "italic"
	ActionDismiss   Action = "dismiss"
	ActionLineBreak Action = "line-break"
)

// Shortcut binds a key chord to an Action.
type Shortcut struct {
	Chord  string
	Action Action
	Help   string
}

// Shortcuts is the fixed keyboard table.
var Shortcuts = []Shortcut{
	{Chord: "ctrl+s", Action: ActionSave, Help: "save"},
	{Chord: "ctrl+n", Action: ActionNewNote, Help: "new note"},
	{Chord: "ctrl+b", Action: ActionBold, Help: "bold"},
	{Chord: "ctrl+i", Action: ActionItalic, Help: "italic"},
	{Chord: "esc", Action: ActionDismiss, Help: "close note"},
	{Chord: "shift+enter", Action: ActionLineBreak, Help: "line break"},
}

// Lookup returns the action bound to chord.
func Lookup(chord string) (Action, bool) {
	for _, s := range Shortcuts {
		if s.Chord == chord {
			return s.Action, true
		}
	}
	return "", false
}

// HandleKey runs the action bound to chord. It reports whether the chord is
// a shortcut; errors have already been surfaced through the Prompter.
func (c *Controller) HandleKey(ctx context.Context, chord string) (bool, error) {
	action, ok := Lookup(chord)
	if !ok {
		return false, nil
	}
	return true, c.Do(ctx, action)
}

// Do runs action.
func (c *Controller) Do(ctx context.Context, action Action) error {
	switch action {
	case ActionSave:
		return c.Save(ctx, false)
	case ActionNewNote:
		return c.NewNote(ctx)
	case ActionBold:
		_, err := c.ApplyFormat(ctx, format.Bold)
		return err
	case ActionItalic:
		_, err := c.ApplyFormat(ctx, format.Italic)
		return err
	case ActionDismiss:
		c.Dismiss(ctx)
		return nil
	case ActionLineBreak:
		c.Edit(func(b *format.Buffer) { b.InsertLineBreak() })
		return nil
	default:
		return nil
	}
}
