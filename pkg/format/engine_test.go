package format_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/quill/pkg/format"
)

func selectWord(t *testing.T, text, word string) *format.Buffer {
	t.Helper()
	b := format.NewBuffer(text)
	start := -1
	runes := []rune(text)
	w := []rune(word)
	for i := 0; i+len(w) <= len(runes); i++ {
		if string(runes[i:i+len(w)]) == word {
			start = i
			break
		}
	}
	require.GreaterOrEqual(t, start, 0, "word %q not in %q", word, text)
	require.NoError(t, b.Select(start, start+len(w)))
	return b
}

func TestApply_EachKind(t *testing.T) {
	cases := map[format.Kind]string{
		format.Bold:          "say <strong>hi</strong> now",
		format.Italic:        "say <em>hi</em> now",
		format.Underline:     "say <u>hi</u> now",
		format.Strikethrough: "say <s>hi</s> now",
		format.Heading1:      "say <h1>hi</h1> now",
		format.Heading2:      "say <h2>hi</h2> now",
		format.Heading3:      "say <h3>hi</h3> now",
		format.UnorderedList: "say <ul><li>hi</li></ul> now",
		format.OrderedList:   "say <ol><li>hi</li></ol> now",
		format.Blockquote:    "say <blockquote>hi</blockquote> now",
		format.Code:          "say <code>hi</code> now",
	}
	require.Len(t, cases, len(format.Kinds)-1, "every non-link kind is covered")

	e := format.NewEngine(nil)
	for kind, want := range cases {
		t.Run(string(kind), func(t *testing.T) {
			b := selectWord(t, "say hi now", "hi")

			r, changed, err := e.Apply(context.Background(), kind, b)
			require.NoError(t, err)
			assert.True(t, changed)
			assert.Equal(t, want, b.String())
			assert.Equal(t, 4, r.Start)
			assert.Equal(t, len([]rune(want))-4, r.End)
		})
	}
}

func TestApply_ClearsSelectionAndFocuses(t *testing.T) {
	b := selectWord(t, "say hi now", "hi")
	b.Blur()
	require.NoError(t, b.Select(4, 6))

	_, changed, err := format.NewEngine(nil).Apply(context.Background(), format.Bold, b)
	require.NoError(t, err)
	require.True(t, changed)

	assert.True(t, b.Focused())
	sel, ok := b.Selection()
	require.True(t, ok)
	assert.True(t, sel.Collapsed(), "selection should be cleared to a caret")
	assert.Empty(t, b.SelectedText())
}

func TestApply_BoldTwiceNests(t *testing.T) {
	e := format.NewEngine(nil)
	b := selectWord(t, "hello", "hello")

	_, _, err := e.Apply(context.Background(), format.Bold, b)
	require.NoError(t, err)
	assert.Equal(t, "<strong>hello</strong>", b.String())

	require.NoError(t, b.Select(8, 13))
	assert.Equal(t, "hello", b.SelectedText())

	_, _, err = e.Apply(context.Background(), format.Bold, b)
	require.NoError(t, err)
	assert.Equal(t, "<strong><strong>hello</strong></strong>", b.String())
}

func TestApply_CollapsedSelectionInsertsEmptyWrapper(t *testing.T) {
	b := format.NewBuffer("ab")
	require.NoError(t, b.Select(1, 1))

	_, changed, err := format.NewEngine(nil).Apply(context.Background(), format.Italic, b)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "a<em></em>b", b.String())
}

func TestApply_NoSelectionIsNoop(t *testing.T) {
	b := format.NewBuffer("text")
	b.Blur()

	_, changed, err := format.NewEngine(nil).Apply(context.Background(), format.Bold, b)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "text", b.String())
	assert.False(t, b.Focused())
}

func TestApply_Link(t *testing.T) {
	t.Run("wraps with escaped href", func(t *testing.T) {
		b := selectWord(t, "see docs", "docs")
		e := format.NewEngine(format.StaticURL(`https://example.com/?a=1&b="2"`))

		_, changed, err := e.Apply(context.Background(), format.Link, b)
		require.NoError(t, err)
		assert.True(t, changed)
		assert.Equal(t, `see <a href="https://example.com/?a=1&amp;b=&#34;2&#34;">docs</a>`, b.String())
	})

	noops := map[string]format.URLPrompter{
		"nil prompter": nil,
		"cancelled":    format.URLFunc(func(context.Context) (string, bool) { return "https://x", false }),
		"empty":        format.StaticURL(""),
		"blank":        format.URLFunc(func(context.Context) (string, bool) { return "   ", true }),
	}
	for name, prompter := range noops {
		t.Run(name, func(t *testing.T) {
			b := selectWord(t, "see docs", "docs")

			_, changed, err := format.NewEngine(prompter).Apply(context.Background(), format.Link, b)
			require.NoError(t, err)
			assert.False(t, changed)
			assert.Equal(t, "see docs", b.String())
			assert.Equal(t, "docs", b.SelectedText(), "selection is left untouched")
		})
	}
}

func TestApply_UnknownKind(t *testing.T) {
	b := selectWord(t, "x", "x")
	_, _, err := format.NewEngine(nil).Apply(context.Background(), format.Kind("marquee"), b)
	assert.ErrorIs(t, err, format.ErrUnknownKind)
	assert.Equal(t, "x", b.String())
}

func TestParseKind(t *testing.T) {
	for _, k := range format.Kinds {
		got, err := format.ParseKind(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := format.ParseKind("blink")
	assert.ErrorIs(t, err, format.ErrUnknownKind)
}
