// Package logbuf implements the per-stream log buffer at the heart of the
// warden log core.
//
// # Overview
//
// Each monitored process stream gets one Buffer. Raw output chunks flow in
// through Append; the buffer normalizes line endings, reassembles lines
// split across chunk boundaries, stamps each completed line with a
// wall-clock timestamp, and keeps the rendered result in a bounded ring
// for the live view. The plain-text form of every line is handed to the
// shared logwriter for append-only persistence, so the producing path
// never touches the disk.
//
// # Ingestion
//
// Append accepts arbitrary chunking: input may arrive split mid-line,
// mid-escape-sequence, or in large bursts with many embedded newlines.
// The unterminated tail of a chunk is held as the partial fragment and
// prepended to the next chunk, so a line is rendered exactly once, when
// its newline arrives. ANSI color codes pass through to the display
// rendering untouched and are stripped from the file rendering. A \r\n
// pair split across two chunks is recognized and collapsed.
//
// # Live and historical reads
//
// Recent returns the ring contents with no I/O. LineCount, LoadChunk, and
// Search operate on the full history: the backing file when it exists,
// else the ring contents for buffers that have not reached disk yet.
// LoadChunk pages backward: it returns the lines ending at a caller
// supplied index along with the chunk's start index, which becomes the
// next call's end. History lines come back recolorized: the bracketed
// timestamp prefix regains its display color while the content is left
// as read.
//
// # Caching
//
// The parsed file content is memoized against the file's modification
// time. Repeated pagination or search between writes costs one stat call;
// the file is re-read and re-split only when the mtime moves or a new
// Append invalidates the cache. Filesystem timestamp granularity
// (typically one second) is an accepted limit on the check's precision.
//
// # Concurrency
//
// A Buffer is single-caller: ring, partial fragment, and cache are
// mutated without locks, and the owner must serialize calls per buffer.
// The one shared piece, the logwriter, is safe for concurrent enqueue
// from many buffers and applies writes per file in FIFO order.
package logbuf
