package app

import (
	"context"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/wardenhq/warden/internal/logbuf"
)

// scriptedReader returns one scripted chunk per Read call.
type scriptedReader struct {
	chunks [][]byte
}

func (r *scriptedReader) Read(p []byte) (int, error) {
	if len(r.chunks) == 0 {
		return 0, io.EOF
	}
	c := r.chunks[0]
	r.chunks = r.chunks[1:]
	return copy(p, c), nil
}

func collect(t *testing.T, r io.Reader) []string {
	t.Helper()
	feed := make(chan string, 64)
	go func() {
		defer close(feed)
		readChunks(context.Background(), r, feed)
	}()
	var out []string
	for chunk := range feed {
		out = append(out, chunk)
	}
	return out
}

func TestReadChunksForwardsEverything(t *testing.T) {
	const input = "one\ntwo\nthree without end"
	r := &scriptedReader{chunks: [][]byte{
		[]byte("one\ntw"),
		[]byte("o\nthree"),
		[]byte(" without end"),
	}}

	got := collect(t, r)
	if joined := strings.Join(got, ""); joined != input {
		t.Fatalf("delivered %q, want %q", joined, input)
	}
}

func TestReadChunksCarriesSplitRune(t *testing.T) {
	const input = "héllo wörld\n"
	raw := []byte(input)

	// Split inside both multibyte runes.
	r := &scriptedReader{chunks: [][]byte{raw[:2], raw[2:9], raw[9:]}}

	got := collect(t, r)
	for _, chunk := range got {
		if !utf8.ValidString(chunk) {
			t.Fatalf("delivered invalid UTF-8 chunk %q", chunk)
		}
	}
	if joined := strings.Join(got, ""); joined != input {
		t.Fatalf("delivered %q, want %q", joined, input)
	}
}

func TestReadChunksFlushesDanglingCarryAtEOF(t *testing.T) {
	// Input ends mid-rune; the fragment must still be delivered so the
	// sanitizer can account for it.
	raw := []byte("tail é")
	r := &scriptedReader{chunks: [][]byte{raw[:len(raw)-1]}}

	got := collect(t, r)
	if joined := strings.Join(got, ""); joined != string(raw[:len(raw)-1]) {
		t.Fatalf("delivered %q, want %q", joined, raw[:len(raw)-1])
	}
}

func TestIngestIntoBufferReassemblesLines(t *testing.T) {
	b := logbuf.New("proc", logbuf.Options{Dir: t.TempDir(), MaxLines: 10})
	r := &scriptedReader{chunks: [][]byte{
		[]byte("one\ntw"),
		[]byte("o\nthr"),
		[]byte("ee\n"),
	}}

	for _, chunk := range collect(t, r) {
		b.Append(chunk)
	}

	if got := b.LineCount(); got != 3 {
		t.Fatalf("LineCount = %d, want 3", got)
	}
	recent := b.Recent()
	for _, want := range []string{"one", "two", "three"} {
		if !strings.Contains(recent, want) {
			t.Fatalf("Recent = %q, missing %q", recent, want)
		}
	}
}
