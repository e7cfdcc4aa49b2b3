package foundry

// Config holds global, process-wide knobs for the ECS core: chunk
// sizing, worker pool sizing, and system-local storage bucketing.
var Config config = config{
	chunkSizeBytes:    defaultChunkSizeBytes,
	workerPoolSize:    0,
	localStoreBuckets: defaultLocalStoreBuckets,
}

const (
	// defaultChunkSizeBytes is the archetype chunk size specified by the
	// data model: 12 KiB per chunk, structure-of-arrays within.
	defaultChunkSizeBytes = 12 * 1024

	defaultLocalStoreBuckets = 8
)

type config struct {
	chunkSizeBytes    int
	workerPoolSize    int
	localStoreBuckets int
}

// SetChunkSizeBytes overrides the archetype chunk size. Intended for
// tests that want to exercise multi-chunk archetypes without allocating
// thousands of entities; production code should leave the 12 KiB default.
func (c *config) SetChunkSizeBytes(n int) {
	if n <= 0 {
		panic("foundry: chunk size must be positive")
	}
	c.chunkSizeBytes = n
}

// SetWorkerPoolSize overrides the scheduler's worker pool size. Zero (the
// default) means derive it from runtime.GOMAXPROCS at world build time.
func (c *config) SetWorkerPoolSize(n int) {
	c.workerPoolSize = n
}
