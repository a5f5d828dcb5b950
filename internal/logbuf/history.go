package logbuf

import (
	"os"
	"strings"

	"github.com/wardenhq/warden/internal/logtext"
)

// historyLines returns the authoritative line list: the parsed backing
// file when it exists, otherwise the ring contents. File parses are
// memoized against the file's mtime, so repeated pagination and search
// between writes cost a stat call each. Filesystem timestamp granularity
// (commonly one second) bounds how precise that check can be; a rewrite
// landing within the same tick can serve a stale parse until the next
// Append invalidates it.
func (b *Buffer) historyLines() []string {
	info, err := os.Stat(b.file)
	if err != nil {
		return b.ringLines()
	}
	mtime := info.ModTime()
	if b.cache != nil && mtime.Equal(b.cacheMtime) {
		return b.cache
	}
	data, err := os.ReadFile(b.file)
	if err != nil {
		return b.ringLines()
	}
	b.cache = splitLines(logtext.Normalize(string(data)))
	b.cacheMtime = mtime
	return b.cache
}

// ringLines is the in-memory fallback for buffers whose file does not
// exist yet, with trailing newlines stripped to match file parsing.
func (b *Buffer) ringLines() []string {
	lines := b.ring.lines()
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\n")
	}
	return lines
}

// splitLines splits on \n, dropping the empty segment a trailing newline
// produces.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// LineCount reports the number of lines in the authoritative history
// source.
func (b *Buffer) LineCount() int {
	return len(b.historyLines())
}

// LoadChunk returns up to size history lines ending at index end
// (exclusive), recolorized for display, plus the start index of the
// returned chunk. Callers paginate backward by passing the returned start
// as the next end. end <= 0 yields an empty chunk; size <= 0 uses the
// configured page size.
func (b *Buffer) LoadChunk(end, size int) (string, int) {
	lines := b.historyLines()
	if len(lines) == 0 || end <= 0 {
		return "", 0
	}
	if size <= 0 {
		size = b.chunk
	}
	start := end - size
	if start < 0 {
		start = 0
	}
	if start >= len(lines) {
		return "", 0
	}
	if end > len(lines) {
		end = len(lines)
	}

	var sb strings.Builder
	for _, l := range lines[start:end] {
		sb.WriteString(recolor(l))
		sb.WriteByte('\n')
	}
	return sb.String(), start
}

// Search returns every history line containing pattern, matched
// case-insensitively, recolorized and concatenated, plus the match count.
// An empty pattern matches every line.
func (b *Buffer) Search(pattern string) (string, int) {
	p := strings.ToLower(pattern)
	var sb strings.Builder
	count := 0
	for _, l := range b.historyLines() {
		if !strings.Contains(strings.ToLower(l), p) {
			continue
		}
		sb.WriteString(recolor(l))
		sb.WriteByte('\n')
		count++
	}
	if count == 0 {
		return "", 0
	}
	return sb.String(), count
}

// recolor reapplies the timestamp color to a plain history line. Any
// leading bracketed prefix is treated as the timestamp; a line whose
// content begins with a literal [ is indistinguishable and gets the same
// treatment.
func recolor(line string) string {
	if !strings.HasPrefix(line, "[") {
		return line
	}
	end := strings.IndexByte(line, ']')
	if end <= 0 {
		return line
	}
	return "[" + timestampStyle.Render(line[1:end]) + "]" + line[end+1:]
}
