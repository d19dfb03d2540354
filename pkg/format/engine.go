package format

import (
	"context"
	"errors"
	"strings"
)

// ErrUnknownKind is returned for a command name that is not a Kind.
var ErrUnknownKind = errors.New("unknown format")

// Range is a half-open [Start, End) span of rune offsets into the markup.
// A collapsed range (Start == End) is a caret.
type Range struct {
	Start int
	End   int
}

// Len returns the number of runes covered.
func (r Range) Len() int { return r.End - r.Start }

// Collapsed reports whether the range is a caret.
func (r Range) Collapsed() bool { return r.Start == r.End }

// Surface is the editable region the engine operates on.
type Surface interface {
	// Selection returns the active selection, if there is one.
	Selection() (Range, bool)
	// Wrap surrounds r with m and returns the range now covering the
	// wrapped markup, delimiters included.
	Wrap(r Range, m Markup) (Range, error)
	// ClearSelection drops the active selection.
	ClearSelection()
	// Focus returns input focus to the surface.
	Focus()
}

// URLPrompter asks the user for a hyperlink target.
// ok is false when the user cancels.
type URLPrompter interface {
	PromptURL(ctx context.Context) (url string, ok bool)
}

// URLFunc adapts a function to URLPrompter.
type URLFunc func(ctx context.Context) (string, bool)

// PromptURL implements URLPrompter.
func (f URLFunc) PromptURL(ctx context.Context) (string, bool) { return f(ctx) }

// StaticURL is a URLPrompter that always answers with the same URL.
// An empty StaticURL behaves like a cancelled prompt.
type StaticURL string

// PromptURL implements URLPrompter.
func (s StaticURL) PromptURL(context.Context) (string, bool) {
	return string(s), s != ""
}

// Engine applies formatting commands to a Surface.
type Engine struct {
	prompter URLPrompter
}

// NewEngine creates an Engine. The prompter is consulted for links; with a
// nil prompter every link command is a no-op.
func NewEngine(prompter URLPrompter) *Engine {
	return &Engine{prompter: prompter}
}

// Apply wraps the current selection of s in the markup for kind.
// It returns the range covering the new markup and whether anything changed.
// Without a selection, or when a link prompt is cancelled or left empty, it
// is a no-op and the selection is left untouched.
func (e *Engine) Apply(ctx context.Context, kind Kind, s Surface) (Range, bool, error) {
	if _, err := markupFor(kind, ""); err != nil {
		return Range{}, false, err
	}

	sel, ok := s.Selection()
	if !ok {
		return Range{}, false, nil
	}

	var href string
	if kind == Link {
		if e.prompter == nil {
			return Range{}, false, nil
		}
		url, ok := e.prompter.PromptURL(ctx)
		url = strings.TrimSpace(url)
		if !ok || url == "" {
			return Range{}, false, nil
		}
		href = url
	}

	m, err := markupFor(kind, href)
	if err != nil {
		return Range{}, false, err
	}

	mutated, err := s.Wrap(sel, m)
	if err != nil {
		return Range{}, false, err
	}

	s.ClearSelection()
	s.Focus()
	return mutated, true, nil
}
