// Package logwriter provides the asynchronous file appender behind every
// log buffer.
//
// # Overview
//
// Process output is delivered on latency-sensitive paths that must never
// stall on disk I/O. This package decouples those producers from the
// filesystem with a bounded queue and a single worker goroutine: callers
// enqueue (path, text) jobs with Write and move on; the worker opens each
// destination in append mode and writes on its own schedule.
//
// # Backpressure
//
// The queue is bounded. When producers outrun the disk, Write drops the
// job and increments a counter rather than blocking or growing the queue.
// After the next successful write the worker appends a single line
//
//	[log-writer] dropped <N> chunks due to backpressure
//
// to that file and resets the counter. Data loss under sustained
// backpressure is deliberate, bounded, and visible to anyone reading the
// file later.
//
// # Ordering
//
// One worker serves all destinations, so jobs for a given file land in
// enqueue order. There is no ordering relationship between files.
//
// # Failure handling
//
// Write never returns an error and the worker never exits because of one.
// A failed append is skipped; the drop counter is preserved across
// failures so the eventual annotation still reflects every rejected job.
//
// # Shutdown
//
// Close signals the worker, which drains the jobs already queued and
// exits. Close waits up to its timeout and then returns regardless, so
// shutdown is best-effort rather than a guarantee of a fully flushed
// queue.
package logwriter
