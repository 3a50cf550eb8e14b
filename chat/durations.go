package chat

// Durations maps a message id to its observed response latency in
// milliseconds. Keys are assistant messages whose generation was timed.
type Durations map[string]int64

// Set returns a new ledger with id recorded; the receiver is never mutated,
// so callers must adopt the returned value as the new state. Overwriting an
// existing id is allowed.
func (d Durations) Set(id string, ms int64) Durations {
	out := make(Durations, len(d)+1)
	for k, v := range d {
		out[k] = v
	}
	out[id] = ms
	return out
}

// Get returns the recorded latency for id, if any.
func (d Durations) Get(id string) (int64, bool) {
	ms, ok := d[id]
	return ms, ok
}

// Clone returns an independent copy. A nil ledger clones to an empty one.
func (d Durations) Clone() Durations {
	out := make(Durations, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}
