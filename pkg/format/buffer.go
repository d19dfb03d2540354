package format

import "fmt"

// LineBreak is inserted by the soft line break command.
const LineBreak = "<br>"

// Buffer is an in-memory Surface over a markup string, with a rune cursor
// and an optional selection anchor. While focused, the caret itself counts
// as a collapsed selection.
type Buffer struct {
	text    []rune
	cursor  int
	anchor  int // -1 when nothing is selected
	focused bool
}

// NewBuffer returns a focused buffer holding text, with the caret at the end.
func NewBuffer(text string) *Buffer {
	b := &Buffer{anchor: -1, focused: true}
	b.SetText(text)
	return b
}

// String returns the markup.
func (b *Buffer) String() string { return string(b.text) }

// Len returns the length in runes.
func (b *Buffer) Len() int { return len(b.text) }

// Cursor returns the caret position.
func (b *Buffer) Cursor() int { return b.cursor }

// Focused reports whether the buffer has input focus.
func (b *Buffer) Focused() bool { return b.focused }

// SetText replaces the whole content and moves the caret to the end.
func (b *Buffer) SetText(text string) {
	b.text = []rune(text)
	b.cursor = len(b.text)
	b.anchor = -1
}

// Selection implements Surface.
func (b *Buffer) Selection() (Range, bool) {
	if b.anchor >= 0 {
		return order(b.anchor, b.cursor), true
	}
	if b.focused {
		return Range{Start: b.cursor, End: b.cursor}, true
	}
	return Range{}, false
}

// SelectedText returns the text under a non-collapsed selection.
func (b *Buffer) SelectedText() string {
	r, ok := b.Selection()
	if !ok {
		return ""
	}
	return string(b.text[r.Start:r.End])
}

// Select sets the selection to [start, end) and focuses the buffer.
func (b *Buffer) Select(start, end int) error {
	if err := b.check(order(start, end)); err != nil {
		return err
	}
	b.anchor = start
	b.cursor = end
	b.focused = true
	return nil
}

// SelectAll selects the whole content.
func (b *Buffer) SelectAll() {
	b.anchor = 0
	b.cursor = len(b.text)
	b.focused = true
}

// ClearSelection implements Surface. The caret stays where it is.
func (b *Buffer) ClearSelection() { b.anchor = -1 }

// Focus implements Surface.
func (b *Buffer) Focus() { b.focused = true }

// Blur drops focus and selection.
func (b *Buffer) Blur() {
	b.focused = false
	b.anchor = -1
}

// Wrap implements Surface. The wrapped markup becomes the selection.
func (b *Buffer) Wrap(r Range, m Markup) (Range, error) {
	if err := b.check(r); err != nil {
		return Range{}, err
	}

	open, close := []rune(m.Open), []rune(m.Close)
	out := make([]rune, 0, len(b.text)+len(open)+len(close))
	out = append(out, b.text[:r.Start]...)
	out = append(out, open...)
	out = append(out, b.text[r.Start:r.End]...)
	out = append(out, close...)
	out = append(out, b.text[r.End:]...)
	b.text = out

	mutated := Range{Start: r.Start, End: r.End + len(open) + len(close)}
	b.anchor = mutated.Start
	b.cursor = mutated.End
	return mutated, nil
}

// Insert types s at the caret, replacing a non-collapsed selection.
func (b *Buffer) Insert(s string) {
	b.deleteSelection()
	ins := []rune(s)
	out := make([]rune, 0, len(b.text)+len(ins))
	out = append(out, b.text[:b.cursor]...)
	out = append(out, ins...)
	out = append(out, b.text[b.cursor:]...)
	b.text = out
	b.cursor += len(ins)
	b.anchor = -1
}

// InsertLineBreak inserts a soft line break at the caret.
func (b *Buffer) InsertLineBreak() { b.Insert(LineBreak) }

// Backspace deletes the selection, or the rune before the caret.
func (b *Buffer) Backspace() bool {
	if b.deleteSelection() {
		return true
	}
	b.anchor = -1
	if b.cursor == 0 {
		return false
	}
	b.text = append(b.text[:b.cursor-1], b.text[b.cursor:]...)
	b.cursor--
	return true
}

// Delete deletes the selection, or the rune after the caret.
func (b *Buffer) Delete() bool {
	if b.deleteSelection() {
		return true
	}
	b.anchor = -1
	if b.cursor >= len(b.text) {
		return false
	}
	b.text = append(b.text[:b.cursor], b.text[b.cursor+1:]...)
	return true
}

// MoveLeft moves the caret one rune left. With extend, the selection grows;
// without it a non-collapsed selection collapses to its start.
func (b *Buffer) MoveLeft(extend bool) {
	if !extend {
		if r, ok := b.activeRange(); ok {
			b.cursor, b.anchor = r.Start, -1
			return
		}
	}
	b.prepare(extend)
	if b.cursor > 0 {
		b.cursor--
	}
}

// MoveRight mirrors MoveLeft.
func (b *Buffer) MoveRight(extend bool) {
	if !extend {
		if r, ok := b.activeRange(); ok {
			b.cursor, b.anchor = r.End, -1
			return
		}
	}
	b.prepare(extend)
	if b.cursor < len(b.text) {
		b.cursor++
	}
}

// Home moves the caret to the start of the content.
func (b *Buffer) Home(extend bool) {
	b.prepare(extend)
	b.cursor = 0
}

// End moves the caret to the end of the content.
func (b *Buffer) End(extend bool) {
	b.prepare(extend)
	b.cursor = len(b.text)
}

func (b *Buffer) prepare(extend bool) {
	b.focused = true
	if !extend {
		b.anchor = -1
		return
	}
	if b.anchor < 0 {
		b.anchor = b.cursor
	}
}

// activeRange returns the selection when it covers at least one rune.
func (b *Buffer) activeRange() (Range, bool) {
	if b.anchor < 0 || b.anchor == b.cursor {
		return Range{}, false
	}
	return order(b.anchor, b.cursor), true
}

func (b *Buffer) deleteSelection() bool {
	r, ok := b.activeRange()
	if !ok {
		return false
	}
	b.text = append(b.text[:r.Start], b.text[r.End:]...)
	b.cursor = r.Start
	b.anchor = -1
	return true
}

func (b *Buffer) check(r Range) error {
	if r.Start < 0 || r.End > len(b.text) || r.Start > r.End {
		return fmt.Errorf("range [%d,%d) out of bounds (len %d)", r.Start, r.End, len(b.text))
	}
	return nil
}

func order(a, b int) Range {
	if a > b {
		a, b = b, a
	}
	return Range{Start: a, End: b}
}

var _ Surface = (*Buffer)(nil)
