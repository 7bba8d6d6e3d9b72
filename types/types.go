package types

// SunPosition describes where the sun sits on the sky dome. Angles are in
// degrees; azimuth is measured from the forward (-Z) axis towards +X and
// elevation from the horizon towards +Y.
type SunPosition struct {
	Elevation float64    `json:"elevation"`
	Azimuth   float64    `json:"azimuth"`
	Direction [3]float64 `json:"direction"`
}

// Site is the geographic location a sky probe was captured from
type Site struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Altitude  float64 `json:"altitude"`
}

// ProbeSummary holds the derived properties of one probe
type ProbeSummary struct {
	Path         string  `json:"path"`
	Time         string  `json:"time"`
	Format       string  `json:"format"`
	Width        int     `json:"width"`
	Height       int     `json:"height"`
	SunVisible   bool    `json:"sun_visible"`
	MaxRadiance  float64 `json:"max_radiance"`
	MeanRadiance float64 `json:"mean_radiance"`
}

// IntervalSummary holds the derived properties of one interval
type IntervalSummary struct {
	Date          string  `json:"date"`
	Path          string  `json:"path"`
	Probes        int     `json:"probes"`
	SunVisibility float64 `json:"sun_visibility"`
	Earliest      string  `json:"earliest,omitempty"`
	Latest        string  `json:"latest,omitempty"`
}
