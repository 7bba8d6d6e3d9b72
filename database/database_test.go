package database

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenDatabase_RoundTrip(t *testing.T) {
	root := t.TempDir()
	writeProbe(t, "", root, "20130619", "102639")

	db, err := OpenDatabase(root, &fakeDecoder{})
	require.NoError(t, err)
	require.Equal(t, 1, db.Len())

	iv := db.Intervals()[0]
	assert.Equal(t, "20130619", iv.Date())
	require.Equal(t, 1, iv.Len())
	tm, err := iv.Probe(0).Time()
	require.NoError(t, err)
	assert.Equal(t, "102639", tm)
	assert.Equal(t, root, db.Root())
}

func TestOpenDatabase_MultipleIntervals(t *testing.T) {
	root := t.TempDir()
	writeProbe(t, "", root, "20130619", "102639")
	writeProbe(t, "9000", root, "20130619", "120000")
	writeProbe(t, "", root, "20130620", "080000")
	require.NoError(t, os.MkdirAll(filepath.Join(root, "20130621"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README"), []byte("not an interval"), 0o644))

	db, err := OpenDatabase(root, &fakeDecoder{})
	require.NoError(t, err)
	require.Equal(t, 3, db.Len())

	dates := map[string]int{}
	for _, iv := range db.Intervals() {
		dates[iv.Date()] = iv.Len()
	}
	assert.Equal(t, map[string]int{"20130619": 2, "20130620": 1, "20130621": 0}, dates)

	stats := db.Stats()
	assert.Equal(t, ScanStats{Intervals: 3, Probes: 3, SunnyProbes: 1}, stats)
}

func TestOpenDatabase_IntervalsIsCopy(t *testing.T) {
	root := t.TempDir()
	writeProbe(t, "", root, "20130619", "102639")

	db, err := OpenDatabase(root, &fakeDecoder{})
	require.NoError(t, err)
	intervals := db.Intervals()
	intervals[0] = nil
	assert.NotNil(t, db.Intervals()[0])
}

func TestOpenDatabase_RootErrors(t *testing.T) {
	t.Run("missing root", func(t *testing.T) {
		_, err := OpenDatabase(filepath.Join(t.TempDir(), "nope"), &fakeDecoder{})
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("root is a file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "file")
		require.NoError(t, os.WriteFile(file, nil, 0o644))
		_, err := OpenDatabase(file, &fakeDecoder{})
		require.Error(t, err)
		var pathErr *fs.PathError
		assert.True(t, errors.As(err, &pathErr))
	})

	t.Run("no decoder", func(t *testing.T) {
		_, err := OpenDatabase(t.TempDir(), nil)
		assert.ErrorIs(t, err, ErrNoDecoder)
	})
}

func TestOpenDatabase_DecodeFailureIsFatal(t *testing.T) {
	root := t.TempDir()
	writeProbe(t, "", root, "20130619", "102639")
	writeProbe(t, "corrupt", root, "20130619", "110000")

	_, err := OpenDatabase(root, &fakeDecoder{})
	assert.ErrorIs(t, err, errCorrupt)
}

func TestOpenDatabase_SkipUndecodable(t *testing.T) {
	root := t.TempDir()
	writeProbe(t, "", root, "20130619", "102639")
	writeProbe(t, "corrupt", root, "20130619", "110000")
	writeProbe(t, "", root, "20130619", "120000")

	db, err := OpenDatabase(root, &fakeDecoder{}, WithSkipUndecodable())
	require.NoError(t, err)
	assert.Equal(t, []string{"102639", "120000"}, probeTimes(t, db.Intervals()[0]))
}

func TestOpenDatabase_MalformedProbeDirectory(t *testing.T) {
	root := t.TempDir()
	writeProbe(t, "", root, "20130619", "1026")

	decoder := &fakeDecoder{}
	_, err := OpenDatabase(root, decoder)
	assert.ErrorIs(t, err, ErrMalformedTimestamp)
	assert.Equal(t, int32(0), decoder.calls.Load(), "layout errors surface before decoding")
}

func TestOpenDatabase_Workers(t *testing.T) {
	root := t.TempDir()
	for _, clock := range []string{"150000", "090000", "120000", "060000", "180000"} {
		writeProbe(t, "", root, "20130619", clock)
	}

	sequential, err := OpenDatabase(root, &fakeDecoder{})
	require.NoError(t, err)
	parallel, err := OpenDatabase(root, &fakeDecoder{}, WithWorkers(4), WithDebug())
	require.NoError(t, err)

	assert.Equal(t, probeTimes(t, sequential.Intervals()[0]), probeTimes(t, parallel.Intervals()[0]))
}
