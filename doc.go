// Package quill is the composition root of Quill, a single-user note editor.
//
// Quill keeps an ordered collection of notes (title, markup content,
// timestamps and a published flag) and persists the whole collection as one
// serialized blob in a key-value store. The store is pluggable: a data
// directory on disk (the default), memory, Redis or any gocloud.dev bucket.
//
// The package wires the domain in pkg/core to a storage adapter using
// functional options, the same way the CLI in cmd/quill does:
//
//	ws, err := quill.Open(ctx, "./notes",
//		quill.WithCodec("yaml"),
//		quill.WithLogger(logger),
//	)
//	if err != nil {
//		return err
//	}
//	defer ws.Close(ctx)
//
//	note, err := ws.Service.CreateNote(ctx)
//	err = ws.Service.UpdateNote(ctx, note.ID, "Groceries", "<p>milk</p>")
//
// Publishing can be announced on a gocloud.dev pubsub topic with WithFeedURL.
package quill
