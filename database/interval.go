package database

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"skydb/envmap"
	"skydb/logging"
	"skydb/scanner"
	"skydb/types"

	"gonum.org/v1/gonum/stat"
)

// probeEntry pairs a probe with its reference time so the two can never
// drift apart when entries are reordered.
type probeEntry struct {
	probe     *ProbeIndex
	reference time.Time
}

// IntervalIndex is the set of probes captured during one interval,
// usually a calendar day.
//
// Probes are kept in the order the directory walk found them, which is
// lexical by path and not guaranteed to be chronological (unless
// WithChronologicalOrder is used). ClosestProbe scans every entry and does
// not rely on ordering.
type IntervalIndex struct {
	path          string
	entries       []probeEntry
	sunVisibility float64
}

// referenceTime anchors a time of day to 0001-01-01 UTC so that only the
// wall-clock part takes part in comparisons.
func referenceTime(hours, minutes, seconds int) time.Time {
	return time.Date(1, time.January, 1, hours, minutes, seconds, 0, time.UTC)
}

func validateClock(hours, minutes, seconds int) error {
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 || seconds < 0 || seconds > 59 {
		return fmt.Errorf("%02d:%02d:%02d out of range", hours, minutes, seconds)
	}
	return nil
}

// NewIntervalIndex walks path for probe images and decodes each of them.
// Walk errors are returned unmodified; the first probe that fails to
// decode aborts the scan unless WithSkipUndecodable is set.
func NewIntervalIndex(path string, decoder envmap.Decoder, opts ...Option) (*IntervalIndex, error) {
	if decoder == nil {
		return nil, ErrNoDecoder
	}
	return newIntervalIndex(path, decoder, newOptions(opts))
}

func newIntervalIndex(path string, decoder envmap.Decoder, o options) (*IntervalIndex, error) {
	files, err := scanner.FindProbeFiles(path, o.probeFilename)
	if err != nil {
		return nil, err
	}

	// Timestamps come from the path, so malformed layouts fail before any
	// image is decoded.
	refs := make(map[string]time.Time, len(files))
	for _, f := range files {
		name, err := probeTime(f)
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", f, err)
		}
		h, m, s, err := parseClock(name)
		if err != nil {
			return nil, fmt.Errorf("probe %s: %w", f, err)
		}
		refs[f] = referenceTime(h, m, s)
	}

	results, err := scanner.LoadOrdered(files, scanner.LoadOptions{
		MaxWorkers:   o.workers,
		SkipFailures: o.skipUndecodable,
		DebugMode:    o.debug,
		Label:        path,
	}, func(f string) (*ProbeIndex, error) {
		return newProbeIndex(f, decoder, o)
	})
	if err != nil {
		return nil, err
	}

	interval := &IntervalIndex{path: path}
	for _, r := range results {
		if r.Error != nil {
			logging.LogWarning("Skipping undecodable probe %s: %v", r.Path, r.Error)
			continue
		}
		interval.entries = append(interval.entries, probeEntry{probe: r.Value, reference: refs[r.Path]})
	}

	if o.chronological {
		sort.SliceStable(interval.entries, func(i, j int) bool {
			return interval.entries[i].reference.Before(interval.entries[j].reference)
		})
	}

	if len(interval.entries) > 0 {
		visible := make([]float64, len(interval.entries))
		for i, e := range interval.entries {
			if e.probe.SunVisible() {
				visible[i] = 1
			}
		}
		interval.sunVisibility = stat.Mean(visible, nil)
	}

	return interval, nil
}

// Path is the directory the interval was scanned from
func (iv *IntervalIndex) Path() string {
	return iv.path
}

// Date is the interval identifier: the last segment of its path
func (iv *IntervalIndex) Date() string {
	return filepath.Base(filepath.Clean(iv.path))
}

// Len is the number of probes in the interval
func (iv *IntervalIndex) Len() int {
	return len(iv.entries)
}

// Probes returns the probes in index order
func (iv *IntervalIndex) Probes() []*ProbeIndex {
	probes := make([]*ProbeIndex, len(iv.entries))
	for i, e := range iv.entries {
		probes[i] = e.probe
	}
	return probes
}

// Probe returns the probe at index i
func (iv *IntervalIndex) Probe(i int) *ProbeIndex {
	return iv.entries[i].probe
}

// ReferenceTime returns the time of day of probe i anchored to 0001-01-01
func (iv *IntervalIndex) ReferenceTime(i int) time.Time {
	return iv.entries[i].reference
}

// SunVisibility is the fraction of probes that see the sun, 0 when the
// interval is empty.
func (iv *IntervalIndex) SunVisibility() float64 {
	return iv.sunVisibility
}

// ClosestProbe returns the probe whose time of day is nearest to
// hours:minutes:seconds. Ties go to the lowest index.
//
// Known limitation: times are compared within a single day, without
// wrapping at midnight. Asking for 06:00 against probes spanning
// 19:00-21:00 returns the 19:00 probe although 21:00 is closer across
// midnight.
func (iv *IntervalIndex) ClosestProbe(hours, minutes, seconds int) (*ProbeIndex, error) {
	if len(iv.entries) == 0 {
		return nil, fmt.Errorf("closest probe in %s: %w", iv.Date(), ErrEmptyInterval)
	}
	if err := validateClock(hours, minutes, seconds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTimeOfDay, err)
	}

	target := referenceTime(hours, minutes, seconds)
	best := 0
	bestDiff := absSeconds(target.Sub(iv.entries[0].reference))
	for i := 1; i < len(iv.entries); i++ {
		diff := absSeconds(target.Sub(iv.entries[i].reference))
		if diff < bestDiff {
			best, bestDiff = i, diff
		}
	}
	return iv.entries[best].probe, nil
}

func absSeconds(d time.Duration) float64 {
	if d < 0 {
		d = -d
	}
	return d.Seconds()
}

// ObservationTime combines the interval date (YYYYMMDD) with the probe
// time (HHMMSS) in loc, which defaults to UTC.
func (iv *IntervalIndex) ObservationTime(p *ProbeIndex, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	date := iv.Date()
	day, err := time.ParseInLocation("20060102", date, loc)
	if err != nil || len(date) != 8 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, date)
	}
	clock, err := p.Time()
	if err != nil {
		return time.Time{}, err
	}
	h, m, s, err := parseClock(clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, s, 0, loc), nil
}

// Summary collects the derived properties of the interval
func (iv *IntervalIndex) Summary() types.IntervalSummary {
	summary := types.IntervalSummary{
		Date:          iv.Date(),
		Path:          iv.path,
		Probes:        len(iv.entries),
		SunVisibility: iv.sunVisibility,
	}
	if len(iv.entries) == 0 {
		return summary
	}

	earliest, latest := iv.entries[0], iv.entries[0]
	for _, e := range iv.entries[1:] {
		if e.reference.Before(earliest.reference) {
			earliest = e
		}
		if e.reference.After(latest.reference) {
			latest = e
		}
	}
	summary.Earliest, _ = earliest.probe.Time()
	summary.Latest, _ = latest.probe.Time()
	return summary
}
