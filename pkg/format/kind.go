// Package format applies inline and block markup to a selected range of an
// editable surface. Markup is raw HTML text; nothing is parsed, so applying
// the same format twice nests the wrapper instead of toggling it.
package format

import (
	"fmt"
	"html"
)

// Kind identifies a formatting command.
type Kind string

const (
	Bold          Kind = "bold"
	Italic        Kind = "italic"
	Underline     Kind = "underline"
	Strikethrough Kind = "strikethrough"
	Heading1      Kind = "h1"
	Heading2      Kind = "h2"
	Heading3      Kind = "h3"
	UnorderedList Kind = "ul"
	OrderedList   Kind = "ol"
	Blockquote    Kind = "blockquote"
	Link          Kind = "link"
	Code          Kind = "code"
)

// Kinds lists every recognized Kind in toolbar order.
var Kinds = []Kind{
	Bold, Italic, Underline, Strikethrough,
	Heading1, Heading2, Heading3,
	UnorderedList, OrderedList, Blockquote,
	Link, Code,
}

// ParseKind resolves a command name such as "bold" or "h2".
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Markup is the pair of strings placed around a selection.
type Markup struct {
	Open  string
	Close string
}

// markupFor returns the wrapper for k. href is only used by Link.
func markupFor(k Kind, href string) (Markup, error) {
	switch k {
	case Bold:
		return element("strong"), nil
	case Italic:
		return element("em"), nil
	case Underline:
		return element("u"), nil
	case Strikethrough:
		return element("s"), nil
	case Heading1, Heading2, Heading3:
		return element(string(k)), nil
	case UnorderedList:
		return Markup{Open: "<ul><li>", Close: "</li></ul>"}, nil
	case OrderedList:
		return Markup{Open: "<ol><li>", Close: "</li></ol>"}, nil
	case Blockquote:
		return element("blockquote"), nil
	case Link:
		return Markup{Open: `<a href="` + html.EscapeString(href) + `">`, Close: "</a>"}, nil
	case Code:
		return element("code"), nil
	default:
		return Markup{}, fmt.Errorf("%w: %q", ErrUnknownKind, string(k))
	}
}

func element(tag string) Markup {
	return Markup{Open: "<" + tag + ">", Close: "</" + tag + ">"}
}
