package scanner

import "sync"

// LoadOptions defines how discovered files are loaded
type LoadOptions struct {
	MaxWorkers   int    // 0 or 1 loads sequentially
	SkipFailures bool   // record failures instead of aborting
	DebugMode    bool
	Label        string // names the load in log output
}

// LoadResult holds the outcome of loading one file. Results are returned
// in the order their paths were given.
type LoadResult[T any] struct {
	Path  string
	Value T
	Error error
}

// ProgressTracker counts loaded and failed files across workers
type ProgressTracker struct {
	processed int
	errors    int
	total     int
	mu        sync.Mutex
}
