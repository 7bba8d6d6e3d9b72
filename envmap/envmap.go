// Package envmap holds decoded HDR environment maps and the pixel-level
// operations performed on them: projection lookups, tone mapping and
// locating the sun.
package envmap

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Format is the projection an environment map is stored in
type Format string

// Projection formats with full projection support. Other projections
// (mirror sphere, cube map) are not accepted until ImageToWorld covers them.
const (
	FormatAngular Format = "angular"
	FormatLatLong Format = "latlong"
)

// DefaultFormat is the projection sky probes are captured in
const DefaultFormat = FormatAngular

var knownFormats = map[string]Format{
	"angular": FormatAngular,
	"latlong": FormatLatLong,
}

// ParseFormat returns the Format named by s (case-insensitive)
func ParseFormat(s string) (Format, error) {
	format, ok := knownFormats[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
	return format, nil
}

// HDR is a floating-point pixel buffer laid out row-major as
// Height x Width x Channels.
type HDR struct {
	Height   int
	Width    int
	Channels int
	Pix      []float64
}

// NewHDR allocates a zeroed buffer
func NewHDR(height, width, channels int) *HDR {
	return &HDR{
		Height:   height,
		Width:    width,
		Channels: channels,
		Pix:      make([]float64, height*width*channels),
	}
}

func (b *HDR) offset(y, x, c int) int {
	return (y*b.Width+x)*b.Channels + c
}

// At returns the value of channel c at row y, column x
func (b *HDR) At(y, x, c int) float64 {
	return b.Pix[b.offset(y, x, c)]
}

// Set stores v in channel c at row y, column x
func (b *HDR) Set(y, x, c int, v float64) {
	b.Pix[b.offset(y, x, c)] = v
}

// Len is the number of samples in the buffer
func (b *HDR) Len() int {
	return len(b.Pix)
}

// Max is the largest sample across every pixel and channel
func (b *HDR) Max() float64 {
	if len(b.Pix) == 0 {
		return math.NaN()
	}
	return floats.Max(b.Pix)
}

// Min is the smallest sample across every pixel and channel
func (b *HDR) Min() float64 {
	if len(b.Pix) == 0 {
		return math.NaN()
	}
	return floats.Min(b.Pix)
}

// Mean is the average sample value
func (b *HDR) Mean() float64 {
	if len(b.Pix) == 0 {
		return math.NaN()
	}
	return stat.Mean(b.Pix, nil)
}

// Luminance returns the Rec. 709 luminance of the pixel at (y, x).
// Buffers without three colour channels average their channels instead.
func (b *HDR) Luminance(y, x int) float64 {
	i := b.offset(y, x, 0)
	if b.Channels >= 3 {
		return 0.2126*b.Pix[i] + 0.7152*b.Pix[i+1] + 0.0722*b.Pix[i+2]
	}
	var sum float64
	for c := 0; c < b.Channels; c++ {
		sum += b.Pix[i+c]
	}
	return sum / float64(b.Channels)
}

func (b *HDR) validate() error {
	if b == nil || b.Height <= 0 || b.Width <= 0 || b.Channels <= 0 {
		return ErrEmptyImage
	}
	if len(b.Pix) != b.Height*b.Width*b.Channels {
		return fmt.Errorf("pixel buffer holds %d samples, want %dx%dx%d", len(b.Pix), b.Height, b.Width, b.Channels)
	}
	return nil
}

// EnvironmentMap is a decoded panoramic HDR image together with the
// projection it is stored in.
type EnvironmentMap struct {
	Format Format
	Data   *HDR
}

// New wraps data as an environment map, checking that the buffer is
// non-empty and consistently sized.
func New(format Format, data *HDR) (*EnvironmentMap, error) {
	if err := data.validate(); err != nil {
		return nil, err
	}
	if format == "" {
		format = DefaultFormat
	}
	return &EnvironmentMap{Format: format, Data: data}, nil
}

// Decoder turns an image file into an environment map
type Decoder interface {
	Decode(path string, format Format) (*EnvironmentMap, error)
}

// DecoderFunc adapts a plain function to the Decoder interface
type DecoderFunc func(path string, format Format) (*EnvironmentMap, error)

// Decode calls f(path, format)
func (f DecoderFunc) Decode(path string, format Format) (*EnvironmentMap, error) {
	return f(path, format)
}
