package app

import (
	"time"

	"github.com/aretw0/quill/pkg/core"
)

// List rendering constants.
const (
	EmptyListPlaceholder = "No notes yet"
	DateLayout           = "Jan 2, 2006"
	IconPublished        = "🌐"
	IconDraft            = "📄"
)

// ListItem is one row of the note list.
type ListItem struct {
	ID        string
	Icon      string
	Title     string
	Date      string
	Published bool
	Active    bool
}

// ListItems renders the collection in display order. The active note, if
// any, is flagged.
func (c *Controller) ListItems() []ListItem {
	notes := c.svc.ListNotes()
	items := make([]ListItem, 0, len(notes))
	for _, n := range notes {
		items = append(items, c.listItem(n))
	}
	return items
}

func (c *Controller) listItem(n core.Note) ListItem {
	icon := IconDraft
	if n.Published {
		icon = IconPublished
	}
	return ListItem{
		ID:        n.ID,
		Icon:      icon,
		Title:     core.NormalizeTitle(n.Title),
		Date:      formatDate(n.DisplayDate(), c.location),
		Published: n.Published,
		Active:    n.ID == c.activeID,
	}
}

func formatDate(t time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	return t.In(loc).Format(DateLayout)
}
