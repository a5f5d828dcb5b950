// Package app is the composition root for a warden session.
//
// Run wires the pieces together in dependency order: the TOML config
// collaborator supplies paths and limits, one shared logwriter.Writer is
// constructed for the process lifetime, a logbuf.Buffer is created for
// the ingested stream, and the viewer UI runs until quit. The writer is
// explicitly closed on the way out so queued writes get a bounded chance
// to drain.
//
// The ingest side reads raw chunks from the producer (stdin for the
// standalone binary) on its own goroutine and hands them to the UI loop
// over a channel. The buffer itself is only ever touched from the UI
// goroutine, honoring its single-caller contract; the chunk reader never
// blocks on disk because persistence happens behind the writer's queue.
package app
