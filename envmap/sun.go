package envmap

import (
	"fmt"
	"math"

	"skydb/types"

	"gonum.org/v1/gonum/floats"
)

// BrightestPixelLocator places the sun at the brightest pixel of an
// environment map. Pixels that fall outside the projection are ignored.
type BrightestPixelLocator struct{}

// Locate returns the sun position for em
func (BrightestPixelLocator) Locate(em *EnvironmentMap) (types.SunPosition, error) {
	var pos types.SunPosition
	if em == nil || em.Data == nil || em.Data.Len() == 0 {
		return pos, ErrEmptyImage
	}

	if _, err := ImageToWorld(em.Format, 0.5, 0.5); err != nil {
		return pos, err
	}

	data := em.Data
	lum := make([]float64, data.Height*data.Width)
	for y := 0; y < data.Height; y++ {
		for x := 0; x < data.Width; x++ {
			i := y*data.Width + x
			if _, err := PixelToWorld(em.Format, y, x, data.Height, data.Width); err != nil {
				lum[i] = math.Inf(-1)
				continue
			}
			lum[i] = data.Luminance(y, x)
		}
	}

	idx := floats.MaxIdx(lum)
	if math.IsInf(lum[idx], -1) {
		return pos, fmt.Errorf("%w: no pixel inside the %s projection", ErrEmptyImage, em.Format)
	}

	dir, err := PixelToWorld(em.Format, idx/data.Width, idx%data.Width, data.Height, data.Width)
	if err != nil {
		return pos, err
	}
	pos.Direction = dir
	pos.Elevation, pos.Azimuth = ElevationAzimuth(dir)
	return pos, nil
}
