package particlefilter

// Snapshot is one recorded state of the ensemble. Step 0 is the initial
// uniform seeding; step k is the state after the k-th FilterStep. The
// slices are private copies, safe to retain.
type Snapshot struct {
	Step      int
	Particles []float64
	Weights   []float64
}

// HistoryRecorder receives ensemble snapshots for diagnostics or
// visualization. Recording is opt-in via WithHistory; the filter itself
// never reads history back.
type HistoryRecorder interface {
	Record(Snapshot)
}

// RingHistory keeps the most recent snapshots up to a fixed capacity.
type RingHistory struct {
	buf   []Snapshot
	start int
	n     int
}

// NewRingHistory returns a recorder holding at most capacity snapshots;
// older ones are overwritten. capacity must be positive.
func NewRingHistory(capacity int) *RingHistory {
	if capacity <= 0 {
		panic("particlefilter: ring history capacity must be positive")
	}
	return &RingHistory{buf: make([]Snapshot, capacity)}
}

// Record implements HistoryRecorder.
func (r *RingHistory) Record(s Snapshot) {
	if r.n < len(r.buf) {
		r.buf[(r.start+r.n)%len(r.buf)] = s
		r.n++
		return
	}
	r.buf[r.start] = s
	r.start = (r.start + 1) % len(r.buf)
}

// Len returns the number of snapshots currently held.
func (r *RingHistory) Len() int { return r.n }

// Snapshots returns the held snapshots, oldest first.
func (r *RingHistory) Snapshots() []Snapshot {
	out := make([]Snapshot, 0, r.n)
	for i := 0; i < r.n; i++ {
		out = append(out, r.buf[(r.start+i)%len(r.buf)])
	}
	return out
}
