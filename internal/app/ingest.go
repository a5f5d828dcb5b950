package app

import (
	"context"
	"io"
	"unicode/utf8"
)

const readBufferSize = 32 * 1024

// readChunks reads raw producer output from r and delivers it to feed
// until EOF, a read error, or context cancellation. Chunks are forwarded
// as read, except that a UTF-8 rune split across two reads is carried
// into the next chunk so delivered text stays valid.
func readChunks(ctx context.Context, r io.Reader, feed chan<- string) {
	buf := make([]byte, readBufferSize)
	var carry []byte
	for {
		n, err := r.Read(buf)
		if n > 0 {
			data := make([]byte, 0, len(carry)+n)
			data = append(data, carry...)
			data = append(data, buf[:n]...)
			data, carry = splitIncompleteRune(data)
			if len(data) > 0 {
				select {
				case feed <- string(data):
				case <-ctx.Done():
					return
				}
			}
		}
		if err != nil {
			// Flush a dangling carry; Sanitize downstream replaces it.
			if len(carry) > 0 {
				select {
				case feed <- string(carry):
				case <-ctx.Done():
				}
			}
			return
		}
		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// splitIncompleteRune splits off a trailing incomplete UTF-8 sequence.
// Invalid bytes that can never complete a rune are left in place for the
// downstream sanitizer.
func splitIncompleteRune(data []byte) (complete, rest []byte) {
	n := len(data)
	for i := 1; i <= utf8.UTFMax && i <= n; i++ {
		b := data[n-i]
		if !utf8.RuneStart(b) {
			continue
		}
		if utf8.FullRune(data[n-i:]) {
			return data, nil
		}
		return data[:n-i], append([]byte(nil), data[n-i:]...)
	}
	return data, nil
}
