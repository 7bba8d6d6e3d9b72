package scanner

import (
	"time"

	"skydb/logging"
)

// NewProgressTracker initializes a tracker expecting total files
func NewProgressTracker(total int) *ProgressTracker {
	return &ProgressTracker{total: total}
}

// Record updates the tracker with the outcome of loading path
func (p *ProgressTracker) Record(path string, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.processed++
	if err != nil {
		p.errors++
		logging.LogProbeLoaded(path, false, err.Error())
		return
	}
	logging.LogProbeLoaded(path, true, "")
}

// Counts returns the number of processed and failed files so far
func (p *ProgressTracker) Counts() (processed, errors int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processed, p.errors
}

// LogCompletion writes a summary line for a finished load
func (p *ProgressTracker) LogCompletion(label string, startTime time.Time) {
	p.mu.Lock()
	defer p.mu.Unlock()

	elapsed := time.Since(startTime)
	if p.errors > 0 {
		logging.LogWarning("Loaded %d/%d probes from %s in %v (%d errors)",
			p.processed-p.errors, p.total, label, elapsed.Round(time.Millisecond), p.errors)
		return
	}
	logging.DebugLog("Loaded %d/%d probes from %s in %v",
		p.processed, p.total, label, elapsed.Round(time.Millisecond))
}
