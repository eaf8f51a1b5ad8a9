package pipeline

import "sync"

// Holder keeps the latest successfully built Snapshot. Publish swaps the
// whole snapshot at once, so readers always see either the previous
// complete dataset or the new one, never a mix. A failed run simply never
// publishes, which is the entire retention contract.
type Holder struct {
	mu   sync.RWMutex
	snap *Snapshot
}

// Publish installs snap as the latest dataset.
func (h *Holder) Publish(snap *Snapshot) {
	h.mu.Lock()
	h.snap = snap
	h.mu.Unlock()
}

// Latest returns the current snapshot, or false before the first
// successful run.
func (h *Holder) Latest() (*Snapshot, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.snap, h.snap != nil
}
