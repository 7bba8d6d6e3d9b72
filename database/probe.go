package database

import (
	"fmt"
	"path/filepath"
	"strconv"

	"skydb/envmap"
	"skydb/types"
)

// SunVisibleThreshold is the radiance above which a probe is considered
// to see the sun. It is a saturation heuristic, not a physical test.
const SunVisibleThreshold = 5000.0

// timestampLength is the length of an HHMMSS probe directory name
const timestampLength = 6

// ProbeIndex is a single timestamped sky measurement
type ProbeIndex struct {
	path    string
	envmap  *envmap.EnvironmentMap
	locator SunLocator
}

// NewProbeIndex decodes the environment map at path. A decode failure is
// returned as the construction error.
func NewProbeIndex(path string, decoder envmap.Decoder, opts ...Option) (*ProbeIndex, error) {
	if decoder == nil {
		return nil, ErrNoDecoder
	}
	return newProbeIndex(path, decoder, newOptions(opts))
}

func newProbeIndex(path string, decoder envmap.Decoder, o options) (*ProbeIndex, error) {
	em, err := decoder.Decode(path, o.format)
	if err != nil {
		return nil, fmt.Errorf("decode probe %s: %w", path, err)
	}
	if em == nil || em.Data == nil || em.Data.Len() == 0 {
		return nil, fmt.Errorf("decode probe %s: %w", path, envmap.ErrEmptyImage)
	}
	return &ProbeIndex{
		path:    path,
		envmap:  em,
		locator: o.sunLocator,
	}, nil
}

// Path is the location of the probe image
func (p *ProbeIndex) Path() string {
	return p.path
}

// Format is the projection the probe was decoded as
func (p *ProbeIndex) Format() envmap.Format {
	return p.envmap.Format
}

// EnvironmentMap returns the decoded map
func (p *ProbeIndex) EnvironmentMap() *envmap.EnvironmentMap {
	return p.envmap
}

// Time returns the name of the directory holding the probe, which must
// be an HHMMSS string. It is read from the path on every call.
func (p *ProbeIndex) Time() (string, error) {
	return probeTime(p.path)
}

func probeTime(path string) (string, error) {
	name := filepath.Base(filepath.Dir(filepath.Clean(path)))
	if len(name) != timestampLength {
		return "", fmt.Errorf("%w: probe directory %q is not HHMMSS", ErrMalformedTimestamp, name)
	}
	return name, nil
}

// parseClock splits an HHMMSS string into its components
func parseClock(s string) (hours, minutes, seconds int, err error) {
	if len(s) != timestampLength {
		return 0, 0, 0, fmt.Errorf("%w: %q is not HHMMSS", ErrMalformedTimestamp, s)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, 0, 0, fmt.Errorf("%w: %q is not numeric", ErrMalformedTimestamp, s)
		}
	}
	hours, _ = strconv.Atoi(s[0:2])
	minutes, _ = strconv.Atoi(s[2:4])
	seconds, _ = strconv.Atoi(s[4:6])
	if err := validateClock(hours, minutes, seconds); err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q: %v", ErrMalformedTimestamp, s, err)
	}
	return hours, minutes, seconds, nil
}

// PictureHDR returns the decoded pixel buffer. Callers must not modify it.
func (p *ProbeIndex) PictureHDR() *envmap.HDR {
	return p.envmap.Data
}

// MaxRadiance is the largest sample of the probe image
func (p *ProbeIndex) MaxRadiance() float64 {
	return p.envmap.Data.Max()
}

// MeanRadiance is the average sample of the probe image
func (p *ProbeIndex) MeanRadiance() float64 {
	return p.envmap.Data.Mean()
}

// SunVisible reports whether any sample exceeds SunVisibleThreshold
func (p *ProbeIndex) SunVisible() bool {
	return p.MaxRadiance() > SunVisibleThreshold
}

// MeanLightVector always fails with ErrNotImplemented
func (p *ProbeIndex) MeanLightVector() ([3]float64, error) {
	return [3]float64{}, fmt.Errorf("mean light vector: %w", ErrNotImplemented)
}

// SunPosition locates the sun in the probe image
func (p *ProbeIndex) SunPosition() (types.SunPosition, error) {
	return p.locator.Locate(p.envmap)
}

// TmoReinhard2002 tone maps the probe with the Reinhard 2002 operator.
// envmap.DefaultReinhardScale is the usual scale.
func (p *ProbeIndex) TmoReinhard2002(scale float64) *envmap.LDR {
	return envmap.Reinhard2002(p.envmap.Data, scale)
}

// TmoGamma tone maps the probe with a gamma curve after shifting its
// minimum to zero. envmap.DefaultGammaScale is the usual scale.
func (p *ProbeIndex) TmoGamma(gamma, scale float64) (*envmap.LDR, error) {
	return envmap.Gamma(p.envmap.Data, gamma, scale)
}

// Summary collects the derived properties of the probe
func (p *ProbeIndex) Summary() types.ProbeSummary {
	t, _ := p.Time()
	return types.ProbeSummary{
		Path:         p.path,
		Time:         t,
		Format:       string(p.envmap.Format),
		Width:        p.envmap.Data.Width,
		Height:       p.envmap.Data.Height,
		SunVisible:   p.SunVisible(),
		MaxRadiance:  p.MaxRadiance(),
		MeanRadiance: p.MeanRadiance(),
	}
}
