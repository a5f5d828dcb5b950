package logwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// DefaultQueueSize bounds the number of pending write jobs.
	DefaultQueueSize = 10000

	defaultCloseTimeout = 2 * time.Second
)

type job struct {
	path string
	text string
}

// Writer appends log text to files from a single background goroutine.
// Many log buffers share one Writer; enqueueing is safe from any
// goroutine and never blocks. When the queue is full, jobs are dropped
// and counted, and the count is later surfaced as an in-band annotation
// in the next file that receives a successful write.
type Writer struct {
	jobs    chan job
	stop    chan struct{}
	done    chan struct{}
	dropped atomic.Uint64

	closeOnce sync.Once
}

// New creates a Writer and starts its worker goroutine. queueSize <= 0
// uses DefaultQueueSize.
func New(queueSize int) *Writer {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	w := &Writer{
		jobs: make(chan job, queueSize),
		stop: make(chan struct{}),
		done: make(chan struct{}),
	}
	go w.run()
	return w
}

// Write enqueues text for appending to the file at path. It returns
// immediately under every queue state: when the queue is at capacity the
// job is dropped and the drop counter incremented instead.
func (w *Writer) Write(path, text string) {
	if text == "" {
		return
	}
	select {
	case w.jobs <- job{path: path, text: text}:
	default:
		w.dropped.Add(1)
	}
}

// Dropped reports how many jobs have been rejected since the last drop
// annotation was flushed.
func (w *Writer) Dropped() uint64 {
	return w.dropped.Load()
}

// Close signals the worker to finish draining and waits up to timeout for
// it to exit. It returns unconditionally; a slow disk can leave queued
// jobs unwritten. timeout <= 0 uses a two second default. Close is safe
// to call more than once.
func (w *Writer) Close(timeout time.Duration) {
	if timeout <= 0 {
		timeout = defaultCloseTimeout
	}
	w.closeOnce.Do(func() { close(w.stop) })
	select {
	case <-w.done:
	case <-time.After(timeout):
	}
}

func (w *Writer) run() {
	defer close(w.done)
	for {
		select {
		case j := <-w.jobs:
			w.apply(j)
		case <-w.stop:
			// Drain whatever is already queued, then exit.
			for {
				select {
				case j := <-w.jobs:
					w.apply(j)
				default:
					return
				}
			}
		}
	}
}

// apply performs a single append. I/O errors are discarded here and only
// here; the worker must outlive any write failure. The drop counter is
// reset only after a successful write so that drops survive failed
// attempts and still get annotated.
func (w *Writer) apply(j job) {
	if err := appendFile(j.path, j.text); err != nil {
		return
	}
	if n := w.dropped.Swap(0); n > 0 {
		note := fmt.Sprintf("[log-writer] dropped %d chunks due to backpressure\n", n)
		_ = appendFile(j.path, note)
	}
}

func appendFile(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	_, err = f.WriteString(text)
	return err
}
