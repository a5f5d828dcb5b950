package app

import (
	"context"
	"fmt"
	"io"

	"github.com/wardenhq/warden/internal/config"
	"github.com/wardenhq/warden/internal/logbuf"
	"github.com/wardenhq/warden/internal/logwriter"
	"github.com/wardenhq/warden/internal/ui"
)

// Options configure a warden session.
type Options struct {
	ConfigPath string
	StreamName string    // names the stream and its log file; empty uses "stdin"
	Input      io.Reader // producer stream; nil starts a read-only session
}

// Run boots the log viewer until the user quits or the context is
// cancelled. Pending background writes are drained (bounded by the
// configured shutdown timeout) before Run returns.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	writer := logwriter.New(cfg.WriterQueue)
	defer writer.Close(cfg.ShutdownTimeout)

	name := opts.StreamName
	if name == "" {
		name = "stdin"
	}
	buffer := logbuf.New(name, logbuf.Options{
		Dir:          cfg.LogDir,
		MaxLines:     cfg.MaxLogLines,
		HistoryChunk: cfg.HistoryChunk,
		Writer:       writer,
	})

	// Chunks flow through a channel into the UI loop rather than being
	// appended here: the buffer is single-caller and the UI goroutine is
	// that caller.
	var feed chan string
	if opts.Input != nil {
		feed = make(chan string, 64)
		go func() {
			defer close(feed)
			readChunks(ctx, opts.Input, feed)
		}()
	}

	return ui.Run(ui.Options{
		Context: ctx,
		Buffer:  buffer,
		Writer:  writer,
		Feed:    feed,
	})
}
