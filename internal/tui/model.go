// Package tui is the terminal front end of Quill. It hosts an app.Controller
// in a bubbletea program: note list on the left, title and content editor on
// the right.
package tui

import (
	"context"
	"strings"

	"github.com/aretw0/lifecycle"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/aretw0/quill/internal/app"
	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/format"
)

type pane int

const (
	paneList pane = iota
	paneTitle
	paneBody
)

type modal int

const (
	modalNone modal = iota
	modalConfirmDelete
	modalLinkURL
)

// storageChangedMsg reports a write made by another process.
type storageChangedMsg struct {
	event lifecycle.Event
}

// prompter collects alerts for the banner. Confirmations and URL entry are
// modal dialogs driven by Update, so the blocking variants always decline.
type prompter struct {
	alert string
}

func (p *prompter) Confirm(context.Context, string) bool     { return false }
func (p *prompter) PromptURL(context.Context) (string, bool) { return "", false }
func (p *prompter) Alert(_ context.Context, message string)  { p.alert = message }

// Model is the bubbletea model of the editor.
type Model struct {
	ctx      context.Context
	ctl      *app.Controller
	prompter *prompter
	keys     keyMap
	events   <-chan lifecycle.Event

	focus    pane
	cursor   int
	modal    modal
	title    textinput.Model
	urlInput textinput.Model
	activeID string

	width  int
	height int
}

// NewModel creates the model for svc. Controller options such as the clock
// and the autosave delay are passed through.
func NewModel(ctx context.Context, svc *core.Service, opts ...app.Option) *Model {
	p := &prompter{}
	opts = append([]app.Option{app.WithContext(ctx)}, opts...)

	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = core.DefaultTitle
	title.CharLimit = 200

	url := textinput.New()
	url.Prompt = "URL: "
	url.Placeholder = "https://"

	return &Model{
		ctx:      ctx,
		ctl:      app.New(svc, p, opts...),
		prompter: p,
		keys:     newKeyMap(),
		title:    title,
		urlInput: url,
	}
}

// Controller returns the hosted controller.
func (m *Model) Controller() *app.Controller { return m.ctl }

// WatchEvents makes the model reload the collection on every event received.
func (m *Model) WatchEvents(events <-chan lifecycle.Event) {
	m.events = events
}

func (m *Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m *Model) waitForChange() tea.Cmd {
	if m.events == nil {
		return nil
	}
	events := m.events
	return func() tea.Msg {
		e, ok := <-events
		if !ok {
			return nil
		}
		return storageChangedMsg{event: e}
	}
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.title.Width = m.editorWidth() - 2

	case timerMsg:
		msg.timer.run()

	case storageChangedMsg:
		m.ctl.Reload(m.ctx)
		cmd = m.waitForChange()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			m.ctl.Flush()
			return m, tea.Quit
		}
		cmd = m.handleKey(msg)
	}

	m.sync()
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	// An alert must be acknowledged before anything else happens.
	if m.prompter.alert != "" {
		m.prompter.alert = ""
		return nil
	}

	switch m.modal {
	case modalConfirmDelete:
		m.modal = modalNone
		if strings.EqualFold(msg.String(), "y") {
			_ = m.ctl.DeleteWith(m.ctx, core.Confirmed)
		}
		return nil
	case modalLinkURL:
		return m.handleURLKey(msg)
	}

	if a, ok := m.keys.action(msg); ok {
		_ = m.ctl.Do(m.ctx, a)
		if a == app.ActionNewNote {
			m.setFocus(paneBody)
		}
		if a == app.ActionDismiss {
			m.setFocus(paneList)
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.nextFocus):
		m.cycleFocus(1)
		return nil
	case key.Matches(msg, m.keys.prevFocus):
		m.cycleFocus(-1)
		return nil
	}

	if m.ctl.Screen() == app.ScreenEditing {
		switch {
		case key.Matches(msg, m.keys.publish):
			_ = m.ctl.Publish(m.ctx)
			return nil
		case key.Matches(msg, m.keys.delete):
			m.modal = modalConfirmDelete
			return nil
		case key.Matches(msg, m.keys.link):
			if _, ok := m.ctl.Content().Selection(); !ok {
				return nil
			}
			m.modal = modalLinkURL
			m.urlInput.SetValue("")
			return m.urlInput.Focus()
		}
	}

	switch m.focus {
	case paneList:
		m.handleListKey(msg)
	case paneTitle:
		var cmd tea.Cmd
		m.title, cmd = m.title.Update(msg)
		m.ctl.SetTitle(m.title.Value())
		return cmd
	case paneBody:
		m.handleBodyKey(msg)
	}
	return nil
}

func (m *Model) handleURLKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeURLModal()
		return nil
	case tea.KeyEnter:
		url := format.StaticURL(strings.TrimSpace(m.urlInput.Value()))
		m.closeURLModal()
		_, _ = m.ctl.ApplyFormatWith(m.ctx, format.Link, format.NewEngine(url))
		return nil
	}
	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return cmd
}

func (m *Model) closeURLModal() {
	m.modal = modalNone
	m.urlInput.Blur()
}

func (m *Model) handleListKey(msg tea.KeyMsg) {
	items := m.ctl.ListItems()
	switch {
	case key.Matches(msg, m.keys.up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.open):
		if m.cursor < len(items) && m.ctl.Open(items[m.cursor].ID) {
			m.setFocus(paneBody)
		}
	}
}

func (m *Model) handleBodyKey(msg tea.KeyMsg) {
	if m.ctl.Screen() != app.ScreenEditing {
		return
	}
	m.ctl.Edit(func(b *format.Buffer) {
		switch msg.Type {
		case tea.KeyRunes:
			if !msg.Alt {
				b.Insert(string(msg.Runes))
			}
		case tea.KeySpace:
			b.Insert(" ")
		case tea.KeyEnter:
			b.InsertLineBreak()
		case tea.KeyBackspace:
			b.Backspace()
		case tea.KeyDelete:
			b.Delete()
		case tea.KeyLeft:
			b.MoveLeft(false)
		case tea.KeyRight:
			b.MoveRight(false)
		case tea.KeyShiftLeft:
			b.MoveLeft(true)
		case tea.KeyShiftRight:
			b.MoveRight(true)
		case tea.KeyHome:
			b.Home(false)
		case tea.KeyEnd:
			b.End(false)
		case tea.KeyShiftHome:
			b.Home(true)
		case tea.KeyShiftEnd:
			b.End(true)
		case tea.KeyCtrlA:
			b.SelectAll()
		}
	})
}

func (m *Model) cycleFocus(step int) {
	if m.ctl.Screen() != app.ScreenEditing {
		m.setFocus(paneList)
		return
	}
	next := (int(m.focus) + step + 3) % 3
	m.setFocus(pane(next))
}

func (m *Model) setFocus(p pane) {
	m.focus = p
	if p == paneTitle {
		m.title.Focus()
	} else {
		m.title.Blur()
	}
	if p == paneBody {
		m.ctl.Content().Focus()
	} else {
		m.ctl.Content().Blur()
	}
}

// sync mirrors controller state into the widgets after every message.
func (m *Model) sync() {
	id := m.ctl.ActiveID()
	if id != m.activeID {
		m.activeID = id
		m.title.SetValue(m.ctl.Title())
		m.title.CursorEnd()
		if id == "" && m.focus != paneList {
			m.setFocus(paneList)
		}
	}

	items := m.ctl.ListItems()
	if id != "" && m.focus != paneList {
		for i, it := range items {
			if it.Active {
				m.cursor = i
				break
			}
		}
	}
	if m.cursor >= len(items) {
		m.cursor = len(items) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
