// Package metrics provides per-traversal metrics collection.
//
// The Collector accumulates counters during a single generate or confirm
// traversal. It is a leaf package with no internal dependencies; the engine
// records evaluation outcomes live and the CLI absorbs the final snapshot
// into its result output.
package metrics

import "sync"

// Snapshot is an immutable point-in-time view of all traversal metrics.
// Returned by Collector.Snapshot(). Safe to read concurrently after creation.
type Snapshot struct {
	// Traversal
	ItemsGenerated int64
	Evaluations    int64
	EvalErrors     int64
	EmptyOutputs   int64

	// Confirmation
	BitsMatched    int64
	BitsMismatched int64

	// Store
	StoreWriteSuccess int64
	StoreWriteFailure int64
	StoreReadSuccess  int64
	StoreReadFailure  int64

	// Dimensions (informational, set at construction)
	Evaluator  string
	SeedDigest string
}

// Collector accumulates metrics during a single traversal.
// Thread-safe via sync.Mutex. All increment methods are nil-receiver safe,
// so the engine can run without a collector attached.
type Collector struct {
	mu sync.Mutex

	itemsGenerated int64
	evaluations    int64
	evalErrors     int64
	emptyOutputs   int64

	bitsMatched    int64
	bitsMismatched int64

	storeWriteSuccess int64
	storeWriteFailure int64
	storeReadSuccess  int64
	storeReadFailure  int64

	evaluator  string
	seedDigest string
}

// NewCollector creates a Collector with dimension labels.
func NewCollector(evaluator, seedDigest string) *Collector {
	return &Collector{
		evaluator:  evaluator,
		seedDigest: seedDigest,
	}
}

// --- Traversal ---

// IncItemsGenerated records a stream item production.
func (c *Collector) IncItemsGenerated() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.itemsGenerated++
	c.mu.Unlock()
}

// IncEvaluations records a candidate function evaluation.
func (c *Collector) IncEvaluations() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.evaluations++
	c.mu.Unlock()
}

// IncEvalErrors records a candidate function failure.
func (c *Collector) IncEvalErrors() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.evalErrors++
	c.mu.Unlock()
}

// IncEmptyOutputs records a degenerate (zero-length) candidate output.
func (c *Collector) IncEmptyOutputs() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.emptyOutputs++
	c.mu.Unlock()
}

// --- Confirmation ---

// IncBitsMatched records a confirmed position.
func (c *Collector) IncBitsMatched() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.bitsMatched++
	c.mu.Unlock()
}

// IncBitsMismatched records a mismatched position.
func (c *Collector) IncBitsMismatched() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.bitsMismatched++
	c.mu.Unlock()
}

// --- Store ---
// Store counters are per-call, not per-byte. A single Save or Load counts
// as one operation regardless of record size.

// IncStoreWriteSuccess records a successful fingerprint write.
func (c *Collector) IncStoreWriteSuccess() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.storeWriteSuccess++
	c.mu.Unlock()
}

// IncStoreWriteFailure records a failed fingerprint write.
func (c *Collector) IncStoreWriteFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.storeWriteFailure++
	c.mu.Unlock()
}

// IncStoreReadSuccess records a successful fingerprint read.
func (c *Collector) IncStoreReadSuccess() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.storeReadSuccess++
	c.mu.Unlock()
}

// IncStoreReadFailure records a failed fingerprint read.
func (c *Collector) IncStoreReadFailure() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.storeReadFailure++
	c.mu.Unlock()
}

// --- Snapshot ---

// Snapshot returns an immutable point-in-time view of all metrics.
// The returned Snapshot is safe to read concurrently; the Collector can
// continue to be mutated independently.
func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		ItemsGenerated: c.itemsGenerated,
		Evaluations:    c.evaluations,
		EvalErrors:     c.evalErrors,
		EmptyOutputs:   c.emptyOutputs,

		BitsMatched:    c.bitsMatched,
		BitsMismatched: c.bitsMismatched,

		StoreWriteSuccess: c.storeWriteSuccess,
		StoreWriteFailure: c.storeWriteFailure,
		StoreReadSuccess:  c.storeReadSuccess,
		StoreReadFailure:  c.storeReadFailure,

		Evaluator:  c.evaluator,
		SeedDigest: c.seedDigest,
	}
}
