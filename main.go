// Command skydb inspects a database of sky probes.
//
// Usage:
//
//	skydb --root /data/sky list
//	skydb --root /data/sky closest 20130619 10:30
//	skydb --root /data/sky tonemap 20130619 10:30 --op gamma --out sky.png
//	skydb --root /data/sky sun 20130619 10:30 --lat 46.78 --lon -71.27 --tz -04:00
package main

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/alecthomas/kong"

	"skydb/database"
	"skydb/envmap"
	"skydb/imageprocessor"
	"skydb/logging"
	"skydb/signalhandler"
	"skydb/solar"
	"skydb/types"
	"skydb/utils"
)

// CLI defines the command-line interface.
type CLI struct {
	Version VersionCmd `cmd:"" help:"Show version information."`
	List    ListCmd    `cmd:"" help:"Summarize every interval in the database."`
	Closest ClosestCmd `cmd:"" help:"Find the probe nearest to a time of day."`
	Tonemap TonemapCmd `cmd:"" help:"Write a tone mapped copy of a probe."`
	Sun     SunCmd     `cmd:"" help:"Locate the sun in a probe and compare it with the ephemeris."`

	Root            string `short:"r" help:"Database root directory." type:"path" env:"SKYDB_ROOT" default:"."`
	Format          string `help:"Projection of the probe images (angular, latlong)." default:"angular"`
	Probe           string `help:"File name of the probe image inside each probe directory." default:"envmap.exr"`
	Workers         int    `short:"j" help:"Number of parallel decoders (0 = based on CPU count)." default:"0"`
	SkipUndecodable bool   `name:"skip-undecodable" help:"Log and skip probes that fail to decode instead of aborting."`
	Sorted          bool   `help:"Order probes chronologically instead of by path."`
	Debug           bool   `help:"Enable debug logging."`
	LogFile         string `help:"Log file path (empty = stderr)." type:"path"`
	JSON            bool   `name:"json" help:"Print results as JSON."`
}

func (cli *CLI) options() ([]database.Option, error) {
	format, err := envmap.ParseFormat(cli.Format)
	if err != nil {
		return nil, err
	}
	if !imageprocessor.NewImageLoaderRegistry().CanLoadFile(cli.Probe) {
		logging.LogWarning("Probe file name %s has no known image extension, using the default loader", cli.Probe)
	}

	workers := cli.Workers
	if workers <= 0 {
		workers = signalhandler.GetOptimalProcs()
	}

	opts := []database.Option{
		database.WithFormat(format),
		database.WithProbeFilename(cli.Probe),
		database.WithWorkers(workers),
	}
	if cli.SkipUndecodable {
		opts = append(opts, database.WithSkipUndecodable())
	}
	if cli.Sorted {
		opts = append(opts, database.WithChronologicalOrder())
	}
	if cli.Debug {
		opts = append(opts, database.WithDebug())
	}
	return opts, nil
}

// openInterval scans a single interval directory instead of the whole tree
func (cli *CLI) openInterval(date string) (*database.IntervalIndex, error) {
	name, err := utils.NormalizeDate(date)
	if err != nil {
		return nil, err
	}
	opts, err := cli.options()
	if err != nil {
		return nil, err
	}
	return database.NewIntervalIndex(filepath.Join(cli.Root, name), imageprocessor.NewDecoder(), opts...)
}

// closest resolves a date and a time of day to a probe
func (cli *CLI) closest(date, at string) (*database.IntervalIndex, *database.ProbeIndex, error) {
	h, m, s, err := utils.ParseClock(at)
	if err != nil {
		return nil, nil, err
	}
	iv, err := cli.openInterval(date)
	if err != nil {
		return nil, nil, err
	}
	probe, err := iv.ClosestProbe(h, m, s)
	if err != nil {
		return nil, nil, err
	}
	return iv, probe, nil
}

func (cli *CLI) printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("skydb version %s\n", version)
	return nil
}

// ListCmd prints one line per interval.
type ListCmd struct {
	Probes bool `help:"Also list the probes of each interval."`
}

func (c *ListCmd) Run(cli *CLI) error {
	opts, err := cli.options()
	if err != nil {
		return err
	}

	startTime := time.Now()
	db, err := database.OpenDatabase(cli.Root, imageprocessor.NewDecoder(), opts...)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}

	if cli.JSON {
		type intervalOut struct {
			types.IntervalSummary
			ProbeList []types.ProbeSummary `json:"probe_list,omitempty"`
		}
		out := make([]intervalOut, 0, db.Len())
		for _, iv := range db.Intervals() {
			entry := intervalOut{IntervalSummary: iv.Summary()}
			if c.Probes {
				for _, p := range iv.Probes() {
					entry.ProbeList = append(entry.ProbeList, p.Summary())
				}
			}
			out = append(out, entry)
		}
		return cli.printJSON(out)
	}

	for _, iv := range db.Intervals() {
		s := iv.Summary()
		fmt.Printf("%s  %3d probes  sun %5.1f%%", s.Date, s.Probes, 100*s.SunVisibility)
		if s.Probes > 0 {
			fmt.Printf("  %s-%s", s.Earliest, s.Latest)
		}
		fmt.Println()
		if c.Probes {
			for _, p := range iv.Probes() {
				ps := p.Summary()
				fmt.Printf("    %s  max %10.2f  mean %8.4f  sun %v\n", ps.Time, ps.MaxRadiance, ps.MeanRadiance, ps.SunVisible)
			}
		}
	}

	stats := db.Stats()
	fmt.Printf("\nSummary:\n")
	fmt.Printf("- Intervals: %d\n", stats.Intervals)
	fmt.Printf("- Probes: %d\n", stats.Probes)
	fmt.Printf("- Probes with the sun visible: %d\n", stats.SunnyProbes)
	fmt.Printf("Total scan time: %v\n", time.Since(startTime).Round(time.Millisecond))
	return nil
}

// ClosestCmd prints the probe nearest to a time of day.
type ClosestCmd struct {
	Date string `arg:"" help:"Interval date (YYYYMMDD or YYYY-MM-DD)."`
	At   string `arg:"" help:"Time of day (HH:MM[:SS])."`
}

func (c *ClosestCmd) Run(cli *CLI) error {
	_, probe, err := cli.closest(c.Date, c.At)
	if err != nil {
		return err
	}

	s := probe.Summary()
	if cli.JSON {
		return cli.printJSON(s)
	}
	fmt.Printf("Probe: %s\n", s.Path)
	fmt.Printf("Time: %s\n", s.Time)
	fmt.Printf("Size: %dx%d (%s)\n", s.Width, s.Height, s.Format)
	fmt.Printf("Max radiance: %.2f\n", s.MaxRadiance)
	fmt.Printf("Sun visible: %v\n", s.SunVisible)
	return nil
}

// TonemapCmd writes an 8-bit rendition of a probe.
type TonemapCmd struct {
	Date  string  `arg:"" help:"Interval date (YYYYMMDD or YYYY-MM-DD)."`
	At    string  `arg:"" help:"Time of day (HH:MM[:SS])."`
	Op    string  `help:"Tone mapping operator." enum:"reinhard,gamma" default:"reinhard"`
	Scale float64 `help:"Output scale (default 700 for reinhard, 1 for gamma)."`
	Gamma float64 `help:"Gamma for the gamma operator." default:"2.2"`
	Out   string  `short:"o" help:"Output image (.png, .jpg or .tiff). Defaults to <date>_<HHMMSS>_<op>.png." type:"path"`
}

func (c *TonemapCmd) Run(cli *CLI) error {
	if c.Out != "" {
		if f := imageprocessor.GetFileFormat(c.Out); f == imageprocessor.FormatUnknown || imageprocessor.IsHDRFormat(f) {
			return fmt.Errorf("output %s must be an 8-bit image format", c.Out)
		}
	}

	iv, probe, err := cli.closest(c.Date, c.At)
	if err != nil {
		return err
	}

	out := c.Out
	if out == "" {
		clock, _ := probe.Time()
		out = fmt.Sprintf("%s_%s_%s", iv.Date(), clock, c.Op) + imageprocessor.FormatToExtension(imageprocessor.FormatPNG)
	}

	var ldr *envmap.LDR
	switch c.Op {
	case "gamma":
		scale := c.Scale
		if scale == 0 {
			scale = envmap.DefaultGammaScale
		}
		ldr, err = probe.TmoGamma(c.Gamma, scale)
		if err != nil {
			return err
		}
	default:
		scale := c.Scale
		if scale == 0 {
			scale = envmap.DefaultReinhardScale
		}
		ldr = probe.TmoReinhard2002(scale)
	}

	if err := imageprocessor.WriteLDR(out, ldr); err != nil {
		return err
	}
	logging.LogInfo("Tone mapped %s to %s with %s", probe.Path(), out, c.Op)
	fmt.Printf("Wrote %s\n", out)
	return nil
}

// SunCmd locates the sun in a probe. With a site it also prints the
// ephemeris position at the observation time.
type SunCmd struct {
	Date string   `arg:"" help:"Interval date (YYYYMMDD or YYYY-MM-DD)."`
	At   string   `arg:"" help:"Time of day (HH:MM[:SS])."`
	Lat  *float64 `help:"Site latitude in degrees, north positive."`
	Lon  *float64 `help:"Site longitude in degrees, east positive."`
	Alt  float64  `help:"Site altitude in meters."`
	TZ   string   `name:"tz" help:"Time zone of the probe timestamps (IANA name or offset like -04:00)." default:"UTC"`
}

type sunReport struct {
	Probe     types.ProbeSummary `json:"probe"`
	Located   *types.SunPosition `json:"located,omitempty"`
	LocateErr string             `json:"locate_error,omitempty"`
	Ephemeris *types.SunPosition `json:"ephemeris,omitempty"`
	Observed  *time.Time         `json:"observed,omitempty"`
}

func (c *SunCmd) Run(cli *CLI) error {
	if (c.Lat == nil) != (c.Lon == nil) {
		return fmt.Errorf("--lat and --lon must be given together")
	}
	loc, err := utils.ParseLocation(c.TZ)
	if err != nil {
		return err
	}

	iv, probe, err := cli.closest(c.Date, c.At)
	if err != nil {
		return err
	}

	report := sunReport{Probe: probe.Summary()}
	if pos, err := probe.SunPosition(); err != nil {
		report.LocateErr = err.Error()
	} else {
		report.Located = &pos
	}

	if c.Lat != nil {
		at, err := iv.ObservationTime(probe, loc)
		if err != nil {
			return err
		}
		site := types.Site{Latitude: *c.Lat, Longitude: *c.Lon, Altitude: c.Alt}
		pos := solar.Position(at, site)
		report.Ephemeris = &pos
		report.Observed = &at
	}

	if cli.JSON {
		return cli.printJSON(report)
	}

	fmt.Printf("Probe: %s (sun visible: %v)\n", report.Probe.Path, report.Probe.SunVisible)
	if report.Located != nil {
		fmt.Printf("Brightest direction: elevation %.2f°, azimuth %.2f°\n", report.Located.Elevation, report.Located.Azimuth)
	} else {
		fmt.Printf("Brightest direction: unavailable (%s)\n", report.LocateErr)
	}
	if report.Ephemeris != nil {
		fmt.Printf("Ephemeris at %s: elevation %.2f°, azimuth %.2f° from north\n",
			report.Observed.Format(time.RFC3339), report.Ephemeris.Elevation, report.Ephemeris.Azimuth)
		if report.Located != nil {
			fmt.Printf("Elevation difference: %.2f°\n", math.Abs(report.Located.Elevation-report.Ephemeris.Elevation))
		}
	}
	return nil
}

func main() {
	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("skydb"),
		kong.Description("Query a database of HDR sky probes."),
		kong.UsageOnError(),
	)

	if err := logging.SetupLogger(cli.LogFile, cli.Debug); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	signalhandler.SetupHandler(logging.CloseLogger)

	err := ctx.Run(&cli)
	logging.CloseLogger()
	ctx.FatalIfErrorf(err)
}
