package autodiff

// Node identifiers are allocated from a process-wide monotonic counter.
// Identity matters in two places: Der(x, x) at a leaf, and the per-call
// memo table that keys derivative results by (node ID, wrt ID).
//
// The counter is single-threaded by contract: graph construction is not
// specified to happen concurrently, and the evaluation path never
// allocates.
var lastID uint64

// nextID returns a fresh identifier. IDs are never reused or mutated.
func nextID() uint64 {
	lastID++
	return lastID
}

// resetIDs rewinds the allocator. Exposed to this package's tests only
// (see export_test.go); application code must never observe a reset.
func resetIDs() {
	lastID = 0
}
