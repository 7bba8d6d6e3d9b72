package database

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalIndex_ClosestProbe(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "20130619")
	writeProbe(t, "", dir, "102639")
	writeProbe(t, "", dir, "150000")

	iv, err := NewIntervalIndex(dir, &fakeDecoder{})
	require.NoError(t, err)

	probe, err := iv.ClosestProbe(10, 30, 0)
	require.NoError(t, err)
	tm, err := probe.Time()
	require.NoError(t, err)
	assert.Equal(t, "102639", tm)

	probe, err = iv.ClosestProbe(13, 0, 0)
	require.NoError(t, err)
	tm, _ = probe.Time()
	assert.Equal(t, "150000", tm)
}

func TestIntervalIndex_ClosestProbe_TieGoesToFirstIndex(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "20130619")
	writeProbe(t, "", dir, "100000")
	writeProbe(t, "", dir, "110000")

	iv, err := NewIntervalIndex(dir, &fakeDecoder{})
	require.NoError(t, err)

	probe, err := iv.ClosestProbe(10, 30, 0)
	require.NoError(t, err)
	assert.Same(t, iv.Probe(0), probe)
}

func TestIntervalIndex_ClosestProbe_UnsortedScan(t *testing.T) {
	// walk order is by path, so these probes are not chronological
	dir := filepath.Join(t.TempDir(), "20130619")
	writeProbe(t, "", dir, "a", "150000")
	writeProbe(t, "", dir, "b", "090000")
	writeProbe(t, "", dir, "c", "120000")

	iv, err := NewIntervalIndex(dir, &fakeDecoder{})
	require.NoError(t, err)
	assert.Equal(t, []string{"150000", "090000", "120000"}, probeTimes(t, iv))

	for i := 0; i < iv.Len(); i++ {
		tm, _ := iv.Probe(i).Time()
		h, m, s, err := parseClock(tm)
		require.NoError(t, err)
		assert.Equal(t, referenceTime(h, m, s), iv.ReferenceTime(i), "reference time stays with its probe")
	}

	probe, err := iv.ClosestProbe(12, 10, 0)
	require.NoError(t, err)
	assert.Same(t, iv.Probe(2), probe)

	probe, err = iv.ClosestProbe(0, 0, 0)
	require.NoError(t, err)
	assert.Same(t, iv.Probe(1), probe)
}

func TestIntervalIndex_ChronologicalOrder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "20130619")
	writeProbe(t, "", dir, "a", "150000")
	writeProbe(t, "", dir, "b", "090000")
	writeProbe(t, "", dir, "c", "120000")

	iv, err := NewIntervalIndex(dir, &fakeDecoder{}, WithChronologicalOrder())
	require.NoError(t, err)
	assert.Equal(t, []string{"090000", "120000", "150000"}, probeTimes(t, iv))
	for i := 1; i < iv.Len(); i++ {
		assert.True(t, iv.ReferenceTime(i-1).Before(iv.ReferenceTime(i)))
	}
}

func TestIntervalIndex_ClosestProbe_DoesNotWrapMidnight(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "20130619")
	writeProbe(t, "", dir, "190000")
	writeProbe(t, "", dir, "210000")

	iv, err := NewIntervalIndex(dir, &fakeDecoder{})
	require.NoError(t, err)

	// 21:00 is 9h away across midnight, but comparisons stay within the day
	probe, err := iv.ClosestProbe(6, 0, 0)
	require.NoError(t, err)
	tm, _ := probe.Time()
	assert.Equal(t, "190000", tm)
}

func TestIntervalIndex_ClosestProbe_InvalidQuery(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "20130619")
	writeProbe(t, "", dir, "102639")

	iv, err := NewIntervalIndex(dir, &fakeDecoder{})
	require.NoError(t, err)

	for _, q := range [][3]int{{24, 0, 0}, {-1, 0, 0}, {10, 60, 0}, {10, 0, 60}} {
		_, err := iv.ClosestProbe(q[0], q[1], q[2])
		assert.ErrorIs(t, err, ErrInvalidTimeOfDay, "query %v", q)
	}
}

func TestIntervalIndex_Empty(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "20130619")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "102639"), 0o755))

	iv, err := NewIntervalIndex(dir, &fakeDecoder{})
	require.NoError(t, err)
	assert.Equal(t, 0, iv.Len())
	assert.Equal(t, 0.0, iv.SunVisibility())

	_, err = iv.ClosestProbe(10, 0, 0)
	assert.ErrorIs(t, err, ErrEmptyInterval)

	summary := iv.Summary()
	assert.Equal(t, 0, summary.Probes)
	assert.Empty(t, summary.Earliest)
}

func TestIntervalIndex_SunVisibility(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "20130619")
	writeProbe(t, "120", dir, "090000")
	writeProbe(t, "5000", dir, "100000")
	writeProbe(t, "5000.5", dir, "110000")

	iv, err := NewIntervalIndex(dir, &fakeDecoder{})
	require.NoError(t, err)
	assert.InDelta(t, 1.0/3.0, iv.SunVisibility(), 1e-12)

	visible := 0
	for _, p := range iv.Probes() {
		if p.SunVisible() {
			visible++
		}
	}
	assert.Equal(t, 1, visible, "5000 itself is not above the threshold")
}

func TestIntervalIndex_MissingDirectory(t *testing.T) {
	_, err := NewIntervalIndex(filepath.Join(t.TempDir(), "20130619"), &fakeDecoder{})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestIntervalIndex_MalformedTimestamps(t *testing.T) {
	for _, name := range []string{"1026", "1026390", "10a639", "256000", "106000"} {
		t.Run(name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "20130619")
			writeProbe(t, "", dir, name)

			_, err := NewIntervalIndex(dir, &fakeDecoder{})
			assert.ErrorIs(t, err, ErrMalformedTimestamp)
		})
	}
}

func TestIntervalIndex_CustomProbeFilename(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "20130619")
	writeProbe(t, "", dir, "102639")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "102639", "sky.exr"), nil, 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "110000"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "110000", "sky.exr"), nil, 0o644))

	iv, err := NewIntervalIndex(dir, &fakeDecoder{}, WithProbeFilename("sky.exr"))
	require.NoError(t, err)
	assert.Equal(t, 2, iv.Len())
}

func TestIntervalIndex_ObservationTime(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "20130619")
	writeProbe(t, "", dir, "102639")

	iv, err := NewIntervalIndex(dir, &fakeDecoder{})
	require.NoError(t, err)

	at, err := iv.ObservationTime(iv.Probe(0), nil)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2013, 6, 19, 10, 26, 39, 0, time.UTC), at)

	loc := time.FixedZone("EDT", -4*3600)
	at, err = iv.ObservationTime(iv.Probe(0), loc)
	require.NoError(t, err)
	assert.Equal(t, 14, at.UTC().Hour())
}

func TestIntervalIndex_ObservationTime_MalformedDate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "june")
	writeProbe(t, "", dir, "102639")

	iv, err := NewIntervalIndex(dir, &fakeDecoder{})
	require.NoError(t, err)
	assert.Equal(t, "june", iv.Date())

	_, err = iv.ObservationTime(iv.Probe(0), nil)
	assert.ErrorIs(t, err, ErrMalformedDate)
}

func TestIntervalIndex_Summary(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "20130619")
	writeProbe(t, "", dir, "a", "150000")
	writeProbe(t, "9000", dir, "b", "090000")
	writeProbe(t, "", dir, "c", "120000")

	iv, err := NewIntervalIndex(dir, &fakeDecoder{})
	require.NoError(t, err)

	summary := iv.Summary()
	assert.Equal(t, "20130619", summary.Date)
	assert.Equal(t, 3, summary.Probes)
	assert.Equal(t, "090000", summary.Earliest)
	assert.Equal(t, "150000", summary.Latest)
	assert.InDelta(t, 1.0/3.0, summary.SunVisibility, 1e-12)
}

func TestNewIntervalIndex_NoDecoder(t *testing.T) {
	_, err := NewIntervalIndex(t.TempDir(), nil)
	assert.ErrorIs(t, err, ErrNoDecoder)
}
