package envmap

import "math"

// Tone mapping defaults
const (
	DefaultReinhardScale = 700.0
	DefaultGammaScale    = 1.0
)

// LDR is an 8-bit pixel buffer with the same layout as HDR
type LDR struct {
	Height   int
	Width    int
	Channels int
	Pix      []uint8
}

// At returns the value of channel c at row y, column x
func (b *LDR) At(y, x, c int) uint8 {
	return b.Pix[(y*b.Width+x)*b.Channels+c]
}

func newLDRLike(src *HDR) *LDR {
	return &LDR{
		Height:   src.Height,
		Width:    src.Width,
		Channels: src.Channels,
		Pix:      make([]uint8, len(src.Pix)),
	}
}

// quantize clips v to [0, 255] before truncating so out-of-range values
// saturate instead of wrapping. NaN maps to 0.
func quantize(v float64) uint8 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 255:
		return 255
	default:
		return uint8(v)
	}
}

// Reinhard2002 applies the global photographic operator of Reinhard et
// al., "Photographic tone reproduction for digital images" (SIGGRAPH 2002):
// clip(scale * L / (1 + L), 0, 255) for every sample L.
func Reinhard2002(src *HDR, scale float64) *LDR {
	dst := newLDRLike(src)
	for i, l := range src.Pix {
		dst.Pix[i] = quantize(scale * l / (1 + l))
	}
	return dst
}

// Gamma compresses src as scale * (L - min)^(1/gamma), where min is the
// smallest sample of the whole buffer.
func Gamma(src *HDR, gamma, scale float64) (*LDR, error) {
	if gamma == 0 {
		return nil, ErrZeroGamma
	}
	dst := newLDRLike(src)
	if len(src.Pix) == 0 {
		return dst, nil
	}
	lo := src.Min()
	inv := 1 / gamma
	for i, l := range src.Pix {
		dst.Pix[i] = quantize(scale * math.Pow(l-lo, inv))
	}
	return dst, nil
}
