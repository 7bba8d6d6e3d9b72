package database

import (
	"skydb/envmap"
	"skydb/scanner"
	"skydb/types"
)

// SunLocator finds the sun in a decoded environment map
type SunLocator interface {
	Locate(em *envmap.EnvironmentMap) (types.SunPosition, error)
}

// Option configures how a Database, IntervalIndex or ProbeIndex is built
type Option func(*options)

type options struct {
	format          envmap.Format
	probeFilename   string
	workers         int
	sunLocator      SunLocator
	skipUndecodable bool
	chronological   bool
	debug           bool
}

func newOptions(opts []Option) options {
	o := options{
		format:        envmap.DefaultFormat,
		probeFilename: scanner.ProbeFilename,
		workers:       1,
		sunLocator:    envmap.BrightestPixelLocator{},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithFormat sets the projection probes are decoded as (default angular)
func WithFormat(format envmap.Format) Option {
	return func(o *options) {
		if format != "" {
			o.format = format
		}
	}
}

// WithProbeFilename changes the file name the interval scan looks for
func WithProbeFilename(name string) Option {
	return func(o *options) {
		if name != "" {
			o.probeFilename = name
		}
	}
}

// WithWorkers decodes up to n probes of an interval concurrently. Probe
// order is unaffected.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithSunLocator replaces the brightest-pixel sun locator
func WithSunLocator(locator SunLocator) Option {
	return func(o *options) {
		if locator != nil {
			o.sunLocator = locator
		}
	}
}

// WithSkipUndecodable logs and drops probes whose image fails to decode
// instead of failing the whole scan.
func WithSkipUndecodable() Option {
	return func(o *options) {
		o.skipUndecodable = true
	}
}

// WithChronologicalOrder sorts each interval's probes by time of day
// (stable, so equal times keep scan order).
func WithChronologicalOrder() Option {
	return func(o *options) {
		o.chronological = true
	}
}

// WithDebug enables per-interval load summaries in the debug log
func WithDebug() Option {
	return func(o *options) {
		o.debug = true
	}
}
