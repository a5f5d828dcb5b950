package logbuf

// ring is a fixed-capacity FIFO of rendered log lines. Pushing beyond
// capacity evicts the oldest entry.
type ring struct {
	entries []string
	head    int
	count   int
}

func newRing(capacity int) *ring {
	return &ring{entries: make([]string, capacity)}
}

func (r *ring) push(line string) {
	r.entries[(r.head+r.count)%len(r.entries)] = line
	if r.count < len(r.entries) {
		r.count++
	} else {
		r.head = (r.head + 1) % len(r.entries)
	}
}

func (r *ring) size() int { return r.count }

// lines returns the buffered entries oldest first.
func (r *ring) lines() []string {
	out := make([]string, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.entries[(r.head+i)%len(r.entries)]
	}
	return out
}

func (r *ring) reset() {
	r.head = 0
	r.count = 0
	clear(r.entries)
}
