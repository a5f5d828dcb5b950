package logbuf

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/wardenhq/warden/internal/logtext"
	"github.com/wardenhq/warden/internal/logwriter"
)

const (
	// DefaultMaxLines caps the in-memory ring when Options leaves it unset.
	DefaultMaxLines = 2000
	// DefaultHistoryChunk is the LoadChunk page size when size <= 0.
	DefaultHistoryChunk = 500

	timestampLayout = "2006-01-02 15:04:05"
)

// timestampStyle colors the bracketed timestamp prefix of display lines.
// Bright blue; degrades with the terminal color profile.
var timestampStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))

// Options configure a Buffer.
type Options struct {
	// Dir is the directory holding per-stream log files.
	Dir string
	// MaxLines caps the in-memory ring. <= 0 uses DefaultMaxLines.
	MaxLines int
	// HistoryChunk is the default LoadChunk page size. <= 0 uses
	// DefaultHistoryChunk.
	HistoryChunk int
	// Writer is the shared async appender. nil disables persistence.
	Writer *logwriter.Writer
}

// Buffer collects the streamed output of one monitored process: a bounded
// ring of timestamped display lines for the live view, plus an append-only
// backing file for full history. Raw chunks may arrive split anywhere,
// including mid-line and mid-escape-sequence; only newline-terminated
// lines are ever rendered.
//
// A Buffer is not safe for concurrent use. The producing side must
// serialize calls per buffer; the shared Writer handles its own
// synchronization.
type Buffer struct {
	name string
	file string

	ring      *ring
	partial   string
	pendingCR bool

	chunk  int
	writer *logwriter.Writer

	cache      []string
	cacheMtime time.Time

	now func() time.Time // test seam
}

// New creates a buffer for the named stream, backed by <dir>/<name>.log.
func New(name string, opts Options) *Buffer {
	maxLines := opts.MaxLines
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	chunk := opts.HistoryChunk
	if chunk <= 0 {
		chunk = DefaultHistoryChunk
	}
	_ = os.MkdirAll(opts.Dir, 0o755)
	return &Buffer{
		name:   name,
		file:   filepath.Join(opts.Dir, name+".log"),
		ring:   newRing(maxLines),
		chunk:  chunk,
		writer: opts.Writer,
		now:    time.Now,
	}
}

// Name returns the stream identifier the buffer was created with.
func (b *Buffer) Name() string { return b.name }

// FilePath returns the backing log file path.
func (b *Buffer) FilePath() string { return b.file }

// Append ingests one raw chunk of process output and returns the display
// rendering (timestamped, color codes preserved) and the plain-text
// rendering handed to the async writer. A chunk without a completing
// newline is held as the partial fragment and yields empty results.
func (b *Buffer) Append(text string) (display, file string) {
	if text == "" {
		return "", ""
	}
	text = logtext.Sanitize(text)

	// A \r\n pair split across two chunks must not become two newlines.
	if b.pendingCR && strings.HasPrefix(text, "\n") {
		text = text[1:]
	}
	b.pendingCR = strings.HasSuffix(text, "\r")

	data := b.partial + logtext.Normalize(text)
	b.partial = ""

	if !strings.Contains(data, "\n") {
		b.partial = data
		return "", ""
	}

	segments := strings.SplitAfter(data, "\n")
	last := segments[len(segments)-1]
	segments = segments[:len(segments)-1]
	if last != "" {
		b.partial = last
	}

	ts := b.now().Format(timestampLayout)
	coloredTS := timestampStyle.Render(ts)

	var disp, out strings.Builder
	for _, seg := range segments {
		content := strings.TrimSuffix(seg, "\n")
		line := "[" + coloredTS + "] " + content + "\n"
		b.ring.push(line)
		disp.WriteString(line)
		out.WriteString("[" + ts + "] " + logtext.StripANSI(content) + "\n")
	}

	// New lines are on their way to disk; any memoized file parse is stale.
	b.cache = nil

	if b.writer != nil {
		b.writer.Write(b.file, out.String())
	}
	return disp.String(), out.String()
}

// Recent returns every line currently in the ring, oldest first. No I/O.
func (b *Buffer) Recent() string {
	return strings.Join(b.ring.lines(), "")
}

// Clear empties the ring, drops the history cache, and truncates the
// backing file. A failed truncation still leaves in-memory state cleared.
func (b *Buffer) Clear() {
	b.ring.reset()
	b.cache = nil
	_ = os.WriteFile(b.file, nil, 0o644)
}
