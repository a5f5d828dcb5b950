// Package ui implements a minimal terminal viewer over the log core's
// read interface.
//
// The viewer is deliberately thin: it consumes exactly the surface a
// presentation layer gets (Recent for the live tail, LoadChunk for
// backward pagination, Search for history search, LineCount and Clear)
// and owns no log state of its own. Producer chunks arrive over a channel
// and are appended inside the bubbletea update loop, which keeps every
// buffer call on one goroutine as the buffer's single-caller contract
// requires.
package ui
