package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aretw0/quill/internal/app"
	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/format"
)

const sidebarWidth = 32

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFDF5")).
			Background(lipgloss.Color("#25A065")).
			Padding(0, 1)

	paneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	focusedPaneStyle = paneStyle.
				BorderForeground(lipgloss.Color("#25A065"))

	activeItemStyle   = lipgloss.NewStyle().Bold(true)
	cursorItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#25A065"))
	dateStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	placeholderStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	selectionStyle    = lipgloss.NewStyle().Reverse(true)
	indicatorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#25A065"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	alertStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFDF5")).Background(lipgloss.Color("#C0392B")).Padding(0, 1)
	modalStyle        = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("#E5C07B")).Padding(0, 1)
	welcomeTitleStyle = lipgloss.NewStyle().Bold(true)
)

func (m *Model) View() string {
	header := headerStyle.Render(m.ctl.HeaderTitle()) + " " + m.renderIndicators()

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderList(), m.renderEditor())

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m *Model) renderIndicators() string {
	ind := m.ctl.Indicators()
	var parts []string
	if ind.Saving {
		parts = append(parts, "saving…")
	}
	if ind.Saved {
		parts = append(parts, "saved")
	}
	if ind.Published {
		parts = append(parts, "published")
	}
	return indicatorStyle.Render(strings.Join(parts, " · "))
}

func (m *Model) renderList() string {
	items := m.ctl.ListItems()

	var b strings.Builder
	if len(items) == 0 {
		b.WriteString(placeholderStyle.Render(app.EmptyListPlaceholder))
	}
	for i, it := range items {
		marker := "  "
		if m.focus == paneList && i == m.cursor {
			marker = cursorItemStyle.Render("> ")
		}
		title := it.Title
		if it.Active {
			title = activeItemStyle.Render(title)
		}
		fmt.Fprintf(&b, "%s%s %s\n  %s\n", marker, it.Icon, title, dateStyle.Render(it.Date))
	}

	style := paneStyle
	if m.focus == paneList {
		style = focusedPaneStyle
	}
	return style.Width(sidebarWidth).Height(m.paneHeight()).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderEditor() string {
	width := m.editorWidth()

	if m.ctl.Screen() != app.ScreenEditing {
		text := welcomeTitleStyle.Render("Quill") + "\n\n" +
			"Select a note from the list or press ctrl+n to create one."
		return paneStyle.Width(width).Height(m.paneHeight()).Render(text)
	}

	titleStyle := paneStyle
	if m.focus == paneTitle {
		titleStyle = focusedPaneStyle
	}
	bodyStyle := paneStyle
	if m.focus == paneBody {
		bodyStyle = focusedPaneStyle
	}

	title := titleStyle.Width(width).Render(m.title.View())
	content := bodyStyle.Width(width).Height(m.paneHeight() - 3).Render(renderBuffer(m.ctl.Content()))
	return lipgloss.JoinVertical(lipgloss.Left, title, content)
}

func (m *Model) renderFooter() string {
	if m.prompter.alert != "" {
		return alertStyle.Render(m.prompter.alert + "  (press any key)")
	}
	switch m.modal {
	case modalConfirmDelete:
		return modalStyle.Render(core.DeletePrompt + " [y/N]")
	case modalLinkURL:
		return modalStyle.Render(m.urlInput.View())
	}

	bindings := m.keys.help()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(hints, " • "))
}

// renderBuffer shows the markup with the selection reversed. A collapsed
// selection is drawn as a block caret.
func renderBuffer(b *format.Buffer) string {
	text := []rune(b.String())
	sel, ok := b.Selection()
	if !ok {
		return breakLines(string(text))
	}

	before := breakLines(string(text[:sel.Start]))
	after := breakLines(string(text[sel.End:]))
	if sel.Collapsed() {
		caret := " "
		if sel.Start < len(text) && text[sel.Start] != '\n' {
			caret = string(text[sel.Start])
			after = breakLines(string(text[sel.Start+1:]))
		}
		return before + selectionStyle.Render(caret) + after
	}
	return before + selectionStyle.Render(breakLines(string(text[sel.Start:sel.End]))) + after
}

func breakLines(s string) string {
	return strings.ReplaceAll(s, format.LineBreak, format.LineBreak+"\n")
}

func (m *Model) editorWidth() int {
	w := m.width - sidebarWidth - 6
	if w < 20 {
		return 20
	}
	return w
}

func (m *Model) paneHeight() int {
	h := m.height - 6
	if h < 5 {
		return 5
	}
	return h
}
