// Package database indexes a directory tree of sky probes:
//
//	<root>/<interval-dir>/<probe-dir>/envmap.exr
//
// Interval directories are usually named YYYYMMDD and probe directories
// HHMMSS. All scanning and decoding happens when the database is opened;
// the resulting values are read-only.
package database

import (
	"time"

	"skydb/envmap"
	"skydb/logging"
	"skydb/scanner"
)

// Database is the root of a probe tree
type Database struct {
	root      string
	intervals []*IntervalIndex
}

// OpenDatabase scans root and builds one IntervalIndex per immediate
// subdirectory, in directory listing order. An error listing root is
// returned unmodified.
func OpenDatabase(root string, decoder envmap.Decoder, opts ...Option) (*Database, error) {
	if decoder == nil {
		return nil, ErrNoDecoder
	}
	o := newOptions(opts)
	startTime := time.Now()

	dirs, err := scanner.ListIntervalDirs(root)
	if err != nil {
		return nil, err
	}
	logging.DebugLog("Scanning %d interval directories under %s", len(dirs), root)

	db := &Database{
		root:      root,
		intervals: make([]*IntervalIndex, 0, len(dirs)),
	}
	for _, dir := range dirs {
		interval, err := newIntervalIndex(dir, decoder, o)
		if err != nil {
			logging.LogWarning("Error scanning interval %s: %v", dir, err)
			return nil, err
		}
		db.intervals = append(db.intervals, interval)
	}

	stats := db.Stats()
	logging.DebugLog("Scan of %s completed in %v: %d intervals, %d probes",
		root, time.Since(startTime).Round(time.Millisecond), stats.Intervals, stats.Probes)
	return db, nil
}

// Root is the directory the database was opened from
func (db *Database) Root() string {
	return db.root
}

// Len is the number of intervals
func (db *Database) Len() int {
	return len(db.intervals)
}

// Intervals returns the intervals in listing order
func (db *Database) Intervals() []*IntervalIndex {
	out := make([]*IntervalIndex, len(db.intervals))
	copy(out, db.intervals)
	return out
}

// ScanStats contains totals across a database
type ScanStats struct {
	Intervals   int
	Probes      int
	SunnyProbes int
}

// Stats counts intervals, probes and probes that see the sun
func (db *Database) Stats() ScanStats {
	stats := ScanStats{Intervals: len(db.intervals)}
	for _, iv := range db.intervals {
		stats.Probes += iv.Len()
		for _, e := range iv.entries {
			if e.probe.SunVisible() {
				stats.SunnyProbes++
			}
		}
	}
	return stats
}
