// Package solar computes where the sun should be for a capture time and
// site, for comparison with the position measured from a probe.
package solar

import (
	"math"
	"time"

	"skydb/types"

	"github.com/soniakeys/meeus/v3/julian"
)

func degToRad(deg float64) float64 { return deg * math.Pi / 180.0 }
func radToDeg(rad float64) float64 { return rad * 180.0 / math.Pi }
func fixAngle(a float64) float64   { return a - 360.0*math.Floor(a/360.0) }

// Ephemeris holds the intermediate solar quantities for one instant
type Ephemeris struct {
	JulianDay      float64
	DeclinationDeg float64
	EqOfTimeMin    float64
	HourAngleDeg   float64
	ElevationDeg   float64
	AzimuthDeg     float64 // clockwise from true north
}

// Compute evaluates the low-precision NOAA solar model at t for the
// given site. Elevation is geometric (no refraction correction).
func Compute(t time.Time, site types.Site) Ephemeris {
	t = t.UTC()
	jd := julian.TimeToJD(t)
	T := (jd - 2451545.0) / 36525.0

	L0 := fixAngle(280.46646 + T*(36000.76983+T*0.0003032))
	M := fixAngle(357.52911 + T*(35999.05029-T*0.0001537))
	e := 0.016708634 - T*(0.000042037+T*0.0000001267)
	C := math.Sin(degToRad(M))*(1.914602-T*(0.004817+T*0.000014)) +
		math.Sin(degToRad(2*M))*(0.019993-T*0.000101) +
		math.Sin(degToRad(3*M))*0.000289
	omega := 125.04 - 1934.136*T
	lambda := L0 + C - 0.00569 - 0.00478*math.Sin(degToRad(omega))
	eps0 := 23 + (26+(21.448-T*(46.815+T*(0.00059-T*0.001813)))/60)/60
	eps := eps0 + 0.00256*math.Cos(degToRad(omega))
	decl := math.Asin(math.Sin(degToRad(eps)) * math.Sin(degToRad(lambda)))

	y := math.Tan(degToRad(eps)/2) * math.Tan(degToRad(eps)/2)
	eqTimeMin := radToDeg(y*math.Sin(degToRad(2*L0))-
		2*e*math.Sin(degToRad(M))+
		4*e*y*math.Sin(degToRad(M))*math.Cos(degToRad(2*L0))-
		0.5*y*y*math.Sin(degToRad(4*L0))-
		1.25*e*e*math.Sin(degToRad(2*M))) * 4

	utcMin := float64(t.Hour()*60+t.Minute()) + float64(t.Second())/60.0
	tst := utcMin + eqTimeMin + 4*site.Longitude
	ha := fixAngle(tst/4) - 180

	lat := degToRad(site.Latitude)
	cosZen := math.Sin(lat)*math.Sin(decl) + math.Cos(lat)*math.Cos(decl)*math.Cos(degToRad(ha))
	cosZen = math.Max(-1, math.Min(1, cosZen))
	zen := math.Acos(cosZen)

	// azimuth from north, clockwise
	az := math.Atan2(
		math.Sin(degToRad(ha)),
		math.Cos(degToRad(ha))*math.Sin(lat)-math.Tan(decl)*math.Cos(lat),
	)

	return Ephemeris{
		JulianDay:      jd,
		DeclinationDeg: radToDeg(decl),
		EqOfTimeMin:    eqTimeMin,
		HourAngleDeg:   ha,
		ElevationDeg:   90 - radToDeg(zen),
		AzimuthDeg:     fixAngle(radToDeg(az) + 180),
	}
}

// Position returns the sun position at t for site. Azimuth is clockwise
// from north. The direction vector uses +Y up, -Z north and +X east.
func Position(t time.Time, site types.Site) types.SunPosition {
	eph := Compute(t, site)
	el := degToRad(eph.ElevationDeg)
	az := degToRad(eph.AzimuthDeg)
	return types.SunPosition{
		Elevation: eph.ElevationDeg,
		Azimuth:   eph.AzimuthDeg,
		Direction: [3]float64{
			math.Cos(el) * math.Sin(az),
			math.Sin(el),
			-math.Cos(el) * math.Cos(az),
		},
	}
}
