package envmap

import (
	"fmt"
	"math"
)

// ImageToWorld maps normalized image coordinates (u to the right, v down,
// both in [0, 1]) to a unit direction. The world frame is right-handed
// with +Y up and -Z forward.
func ImageToWorld(format Format, u, v float64) ([3]float64, error) {
	switch format {
	case FormatAngular:
		uu, vv := 2*u-1, 2*v-1
		r := math.Hypot(uu, vv)
		if r > 1 {
			return [3]float64{}, ErrOutsideProjection
		}
		theta := math.Atan2(-vv, uu)
		phi := math.Pi * r
		return [3]float64{
			math.Sin(phi) * math.Cos(theta),
			math.Sin(phi) * math.Sin(theta),
			-math.Cos(phi),
		}, nil
	case FormatLatLong:
		if u < 0 || u > 1 || v < 0 || v > 1 {
			return [3]float64{}, ErrOutsideProjection
		}
		lon := math.Pi * (2*u - 1)
		colat := math.Pi * v
		return [3]float64{
			math.Sin(lon) * math.Sin(colat),
			math.Cos(colat),
			-math.Cos(lon) * math.Sin(colat),
		}, nil
	default:
		return [3]float64{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// PixelToWorld maps the center of pixel (row, col) of a height x width
// image to a unit direction.
func PixelToWorld(format Format, row, col, height, width int) ([3]float64, error) {
	u := (float64(col) + 0.5) / float64(width)
	v := (float64(row) + 0.5) / float64(height)
	return ImageToWorld(format, u, v)
}

// ElevationAzimuth converts a unit direction to elevation and azimuth in
// degrees.
func ElevationAzimuth(dir [3]float64) (elevation, azimuth float64) {
	y := math.Max(-1, math.Min(1, dir[1]))
	elevation = math.Asin(y) * 180 / math.Pi
	azimuth = math.Atan2(dir[0], -dir[2]) * 180 / math.Pi
	return elevation, azimuth
}
