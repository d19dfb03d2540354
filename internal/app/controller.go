// Package app holds the presentation-agnostic state of the Quill editor:
// which screen is shown, the note being edited, the debounced autosave and
// the transient indicators. Front ends render it and forward input to it.
//
// A Controller is not safe for concurrent use. Timer callbacks are delivered
// through the injected clock, which must run them on the goroutine that owns
// the Controller (the terminal UI marshals them onto its event loop).
package app

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/quill/pkg/clock"
	"github.com/aretw0/quill/pkg/core"
	"github.com/aretw0/quill/pkg/debounce"
	"github.com/aretw0/quill/pkg/format"
)

// Screen is one of the two mutually exclusive views.
type Screen int

const (
	ScreenWelcome Screen = iota
	ScreenEditing
)

func (s Screen) String() string {
	if s == ScreenEditing {
		return "editing"
	}
	return "welcome"
}

// Timings of the editor feedback.
const (
	DefaultAutosaveDelay = 2 * time.Second
	SavedIndicatorTime   = 1 * time.Second
	PublishIndicatorTime = 2 * time.Second
	WelcomeTitle         = "Welcome"
)

// Indicators is the transient feedback shown next to the note actions.
type Indicators struct {
	Saving    bool
	Saved     bool
	Published bool
}

// Controller is the application state object.
type Controller struct {
	ctx      context.Context
	svc      *core.Service
	prompter Prompter
	engine   *format.Engine
	clock    clock.Clock
	delay    time.Duration
	autosave *debounce.Debouncer
	logger   *slog.Logger
	location *time.Location

	screen   Screen
	activeID string
	title    string
	content  *format.Buffer

	indicators     Indicators
	savedTimer     clock.Timer
	publishedTimer clock.Timer
}

// Option configures a Controller.
type Option func(*Controller)

// WithClock sets the clock driving autosave and indicators.
func WithClock(c clock.Clock) Option {
	return func(ctl *Controller) {
		if c != nil {
			ctl.clock = c
		}
	}
}

// WithAutosaveDelay sets the autosave quiet period.
func WithAutosaveDelay(d time.Duration) Option {
	return func(ctl *Controller) {
		if d > 0 {
			ctl.delay = d
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(ctl *Controller) {
		if logger != nil {
			ctl.logger = logger
		}
	}
}

// WithLocation sets the time zone used to format list dates.
func WithLocation(loc *time.Location) Option {
	return func(ctl *Controller) {
		if loc != nil {
			ctl.location = loc
		}
	}
}

// WithContext sets the context used by timer-driven saves.
func WithContext(ctx context.Context) Option {
	return func(ctl *Controller) {
		if ctx != nil {
			ctl.ctx = ctx
		}
	}
}

// New creates a Controller on the welcome screen. A nil prompter means Headless.
func New(svc *core.Service, prompter Prompter, opts ...Option) *Controller {
	c := &Controller{
		ctx:      context.Background(),
		svc:      svc,
		prompter: prompter,
		clock:    clock.Real{},
		delay:    DefaultAutosaveDelay,
		logger:   slog.Default(),
		location: time.Local,
		content:  format.NewBuffer(""),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.prompter == nil {
		c.prompter = Headless{Logger: c.logger}
	}
	c.autosave = debounce.New(c.delay, c.clock)
	c.engine = format.NewEngine(c.prompter)
	c.content.Blur()
	return c
}

// Screen returns the current view.
func (c *Controller) Screen() Screen { return c.screen }

// ActiveID returns the ID of the note being edited, or "".
func (c *Controller) ActiveID() string { return c.activeID }

// Title returns the raw title field.
func (c *Controller) Title() string { return c.title }

// Content returns the editor buffer. Mutate it through Edit so changes
// reach the autosave.
func (c *Controller) Content() *format.Buffer { return c.content }

// Indicators returns the current transient feedback.
func (c *Controller) Indicators() Indicators { return c.indicators }

// AutosaveDelay returns the autosave quiet period.
func (c *Controller) AutosaveDelay() time.Duration { return c.autosave.Delay() }

// HeaderTitle is the heading shown above the editor.
func (c *Controller) HeaderTitle() string {
	if c.screen != ScreenEditing {
		return WelcomeTitle
	}
	return core.NormalizeTitle(c.title)
}

// Active returns the stored version of the note being edited.
func (c *Controller) Active() (core.Note, bool) {
	if c.activeID == "" {
		return core.Note{}, false
	}
	n, err := c.svc.GetNote(c.activeID)
	return n, err == nil
}

// NewNote creates a note and opens it.
func (c *Controller) NewNote(ctx context.Context) error {
	c.flushAutosave()

	n, err := c.svc.CreateNote(ctx)
	if err != nil {
		c.reportStorageError(ctx, err)
		return err
	}
	c.Open(n.ID)
	return nil
}

// Open loads a note into the editor. Unknown IDs are ignored.
func (c *Controller) Open(id string) bool {
	if id != "" && id == c.activeID {
		return true
	}
	n, err := c.svc.GetNote(id)
	if err != nil {
		return false
	}
	c.flushAutosave()

	c.activeID = n.ID
	c.title = n.Title
	c.content.SetText(n.Content)
	c.content.Focus()
	c.screen = ScreenEditing
	return true
}

// Dismiss returns to the welcome screen. Pending edits are saved first.
func (c *Controller) Dismiss(ctx context.Context) {
	if c.activeID == "" {
		return
	}
	c.flushAutosave()
	c.showWelcome()
}

// SetTitle updates the title field. The title is saved with the next save.
func (c *Controller) SetTitle(title string) {
	if c.screen != ScreenEditing {
		return
	}
	c.title = title
}

// Edit applies fn to the content buffer and schedules an autosave when the
// markup changed.
func (c *Controller) Edit(fn func(b *format.Buffer)) {
	if c.screen != ScreenEditing {
		return
	}
	before := c.content.String()
	fn(c.content)
	if c.content.String() != before {
		c.contentChanged()
	}
}

// ApplyFormat wraps the selection of the editor in the markup for kind,
// asking the Prompter for link targets.
func (c *Controller) ApplyFormat(ctx context.Context, kind format.Kind) (bool, error) {
	return c.ApplyFormatWith(ctx, kind, c.engine)
}

// ApplyFormatWith is ApplyFormat with a specific engine, for front ends that
// collect the link target themselves.
func (c *Controller) ApplyFormatWith(ctx context.Context, kind format.Kind, engine *format.Engine) (bool, error) {
	if c.screen != ScreenEditing {
		return false, nil
	}
	_, changed, err := engine.Apply(ctx, kind, c.content)
	if err != nil {
		return false, err
	}
	if changed {
		c.contentChanged()
	}
	return changed, nil
}

// Save stores the title and content of the active note. A non-silent save
// flashes the saved indicator.
func (c *Controller) Save(ctx context.Context, silent bool) error {
	if c.activeID == "" {
		return nil
	}
	c.autosave.Cancel()
	c.indicators.Saving = false

	if _, err := c.svc.GetNote(c.activeID); err != nil {
		c.logger.Info("active note removed externally", "id", c.activeID)
		c.showWelcome()
		return nil
	}
	if err := c.svc.UpdateNote(ctx, c.activeID, c.title, c.content.String()); err != nil {
		c.reportStorageError(ctx, err)
		return err
	}
	if !silent {
		c.flash(&c.indicators.Saved, &c.savedTimer, SavedIndicatorTime)
	}
	return nil
}

// Publish stores and publishes the active note. Empty content is refused
// with an alert.
func (c *Controller) Publish(ctx context.Context) error {
	if c.activeID == "" {
		return nil
	}

	err := c.svc.PublishNote(ctx, c.activeID, c.title, c.content.String())
	switch {
	case errors.Is(err, core.ErrEmptyContent):
		c.prompter.Alert(ctx, EmptyPublishMessage)
		return err
	case err != nil:
		c.reportStorageError(ctx, err)
		return err
	}

	c.autosave.Cancel()
	c.indicators.Saving = false
	c.flash(&c.indicators.Published, &c.publishedTimer, PublishIndicatorTime)
	return nil
}

// Delete asks the Prompter for confirmation and removes the active note.
func (c *Controller) Delete(ctx context.Context) error {
	return c.DeleteWith(ctx, c.prompter)
}

// DeleteWith is Delete with a specific Confirmer, for front ends that ask
// for confirmation themselves.
func (c *Controller) DeleteWith(ctx context.Context, confirm core.Confirmer) error {
	if c.activeID == "" {
		return nil
	}

	err := c.svc.DeleteNote(ctx, c.activeID, confirm)
	switch {
	case errors.Is(err, core.ErrNotConfirmed):
		return nil
	case err != nil:
		c.reportStorageError(ctx, err)
		return err
	}

	c.autosave.Cancel()
	c.showWelcome()
	return nil
}

// Reload picks up a collection changed outside this process. The editor
// keeps its unsaved state unless the active note disappeared.
func (c *Controller) Reload(ctx context.Context) {
	c.svc.Reload(ctx)
	if c.activeID == "" {
		return
	}
	if _, err := c.svc.GetNote(c.activeID); err != nil {
		c.logger.Info("active note removed externally", "id", c.activeID)
		c.autosave.Cancel()
		c.showWelcome()
	}
}

// Flush runs a pending autosave now.
func (c *Controller) Flush() {
	c.flushAutosave()
}

func (c *Controller) contentChanged() {
	c.indicators.Saving = true
	c.autosave.Schedule(c.autosaveFire)
}

func (c *Controller) autosaveFire() {
	c.indicators.Saving = false
	if c.activeID == "" {
		return
	}
	if err := c.Save(c.ctx, true); err != nil {
		c.logger.Debug("autosave failed", "id", c.activeID, "error", err)
	}
}

func (c *Controller) flushAutosave() {
	c.autosave.Flush()
}

func (c *Controller) showWelcome() {
	c.screen = ScreenWelcome
	c.activeID = ""
	c.title = ""
	c.content.SetText("")
	c.content.Blur()
	c.indicators.Saving = false
}

func (c *Controller) flash(flag *bool, timer *clock.Timer, d time.Duration) {
	if *timer != nil {
		(*timer).Stop()
	}
	*flag = true
	*timer = c.clock.AfterFunc(d, func() { *flag = false })
}

func (c *Controller) reportStorageError(ctx context.Context, err error) {
	c.logger.Error("failed to save notes", "error", err)
	c.prompter.Alert(ctx, SaveFailedMessage)
}
