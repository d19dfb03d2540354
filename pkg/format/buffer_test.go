package format_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/format"
)

func TestBuffer_Typing(t *testing.T) {
	b := format.NewBuffer("")
	b.Insert("héllo")
	assert.Equal(t, 5, b.Cursor())

	b.MoveLeft(false)
	b.MoveLeft(false)
	b.Insert("X")
	assert.Equal(t, "hélXlo", b.String())

	assert.True(t, b.Backspace())
	assert.True(t, b.Delete())
	assert.Equal(t, "hélo", b.String())

	b.Home(false)
	assert.False(t, b.Backspace())
	b.End(false)
	assert.False(t, b.Delete())
}

func TestBuffer_ExtendSelection(t *testing.T) {
	b := format.NewBuffer("abcdef")
	b.Home(false)
	b.MoveRight(false)
	b.MoveRight(true)
	b.MoveRight(true)
	assert.Equal(t, "bc", b.SelectedText())

	// Collapses to the edge without moving further.
	b.MoveRight(false)
	assert.Equal(t, 3, b.Cursor())
	assert.Empty(t, b.SelectedText())

	b.End(true)
	b.Insert("!")
	assert.Equal(t, "abc!", b.String())
}

func TestBuffer_BackwardSelection(t *testing.T) {
	b := format.NewBuffer("abcdef")
	require.NoError(t, b.Select(4, 1))

	sel, ok := b.Selection()
	require.True(t, ok)
	assert.Equal(t, format.Range{Start: 1, End: 4}, sel)
	assert.True(t, b.Backspace())
	assert.Equal(t, "aef", b.String())
}

func TestBuffer_LineBreak(t *testing.T) {
	b := format.NewBuffer("onetwo")
	require.NoError(t, b.Select(3, 3))
	b.InsertLineBreak()
	assert.Equal(t, "one<br>two", b.String())
	assert.Equal(t, 7, b.Cursor())
}

func TestBuffer_WrapOutOfBounds(t *testing.T) {
	b := format.NewBuffer("abc")
	_, err := b.Wrap(format.Range{Start: 2, End: 9}, format.Markup{Open: "<b>", Close: "</b>"})
	assert.Error(t, err)
	assert.Error(t, b.Select(-1, 2))
	assert.Equal(t, "abc", b.String())
}
