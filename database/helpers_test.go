package database

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync/atomic"
	"testing"

	"skydb/envmap"

	"github.com/stretchr/testify/require"
)

var errCorrupt = errors.New("corrupt image")

// fakeDecoder builds a 2x2 RGB map whose brightest sample is the number
// written in the probe file (1 when the file is empty). A file holding
// "corrupt" fails to decode.
type fakeDecoder struct {
	calls atomic.Int32
}

func (d *fakeDecoder) Decode(path string, format envmap.Format) (*envmap.EnvironmentMap, error) {
	d.calls.Add(1)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text := strings.TrimSpace(string(content))
	if text == "corrupt" {
		return nil, errCorrupt
	}
	peak := 1.0
	if text != "" {
		peak, err = strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, err
		}
	}

	data := envmap.NewHDR(2, 2, 3)
	for i := range data.Pix {
		data.Pix[i] = 0.5
	}
	data.Set(0, 1, 0, peak)
	return envmap.New(format, data)
}

// writeProbe creates <parts...>/envmap.exr holding content
func writeProbe(t *testing.T, content string, parts ...string) string {
	t.Helper()
	dir := filepath.Join(parts...)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	path := filepath.Join(dir, "envmap.exr")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func probeTimes(t *testing.T, iv *IntervalIndex) []string {
	t.Helper()
	var times []string
	for _, p := range iv.Probes() {
		tm, err := p.Time()
		require.NoError(t, err)
		times = append(times, tm)
	}
	return times
}
