package app

import (
	"context"
	"log/slog"
)

// User-facing messages.
const (
	SaveFailedMessage   = "Failed to save notes. Please check your storage settings."
	EmptyPublishMessage = "Please add some content before publishing."
)

// Prompter covers the blocking interactions with the user: a yes/no
// confirmation, a URL entry and a notification that must be acknowledged.
type Prompter interface {
	Confirm(ctx context.Context, message string) bool
	PromptURL(ctx context.Context) (string, bool)
	Alert(ctx context.Context, message string)
}

// Headless is a Prompter for non-interactive use: it refuses every
// confirmation, cancels every URL prompt and logs alerts.
type Headless struct {
	Logger *slog.Logger
}

// Confirm implements Prompter.
func (Headless) Confirm(context.Context, string) bool { return false }

// PromptURL implements Prompter.
func (Headless) PromptURL(context.Context) (string, bool) { return "", false }

// Alert implements Prompter.
func (h Headless) Alert(_ context.Context, message string) {
	logger := h.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn(message)
}
