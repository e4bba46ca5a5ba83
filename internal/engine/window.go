package engine

const defaultWindowCap = 60

// outcomeBucket holds one step's request outcomes for a single district.
type outcomeBucket struct {
	Total    int64
	Rejected int64
}

// outcomeWindow is a fixed-size ring buffer of outcomeBuckets.
// When the buffer is full, new pushes overwrite the oldest entry.
type outcomeWindow struct {
	buf  []outcomeBucket
	head int // index of the next write position
	size int // number of valid entries
}

// newOutcomeWindow creates a window with the given capacity.
// If capacity <= 0, defaultWindowCap (60) is used.
func newOutcomeWindow(capacity int) *outcomeWindow {
	if capacity <= 0 {
		capacity = defaultWindowCap
	}
	return &outcomeWindow{
		buf: make([]outcomeBucket, capacity),
	}
}

// Push appends a bucket, overwriting the oldest if full.
func (w *outcomeWindow) Push(b outcomeBucket) {
	w.buf[w.head] = b
	w.head = (w.head + 1) % len(w.buf)
	if w.size < len(w.buf) {
		w.size++
	}
}

// Len returns the number of valid buckets.
func (w *outcomeWindow) Len() int {
	return w.size
}

// Sum returns the totals over every valid bucket.
func (w *outcomeWindow) Sum() outcomeBucket {
	var out outcomeBucket
	start := (w.head - w.size + len(w.buf)) % len(w.buf)
	for i := 0; i < w.size; i++ {
		b := w.buf[(start+i)%len(w.buf)]
		out.Total += b.Total
		out.Rejected += b.Rejected
	}
	return out
}
