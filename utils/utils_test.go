package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	cases := map[string][3]int{
		"10:30":    {10, 30, 0},
		"10:30:15": {10, 30, 15},
		"103015":   {10, 30, 15},
		" 00:00 ":  {0, 0, 0},
		"23:59:59": {23, 59, 59},
	}
	for in, want := range cases {
		h, m, s, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, [3]int{h, m, s}, in)
	}

	for _, bad := range []string{"", "10", "24:00", "10:60", "10:00:60", "1030", "aa:bb", "10:-1", "1:2:3:4"} {
		_, _, _, err := ParseClock(bad)
		assert.Error(t, err, bad)
	}
}

func TestNormalizeDate(t *testing.T) {
	got, err := NormalizeDate("2013-06-19")
	require.NoError(t, err)
	assert.Equal(t, "20130619", got)

	got, err = NormalizeDate("20130619")
	require.NoError(t, err)
	assert.Equal(t, "20130619", got)

	_, err = NormalizeDate("19/06/2013")
	assert.Error(t, err)
	_, err = NormalizeDate("20131319")
	assert.Error(t, err)
}

func TestParseLocation(t *testing.T) {
	loc, err := ParseLocation("")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)

	loc, err = ParseLocation("-04:00")
	require.NoError(t, err)
	_, offset := time.Date(2013, 6, 19, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, -4*3600, offset)

	loc, err = ParseLocation("+05:30")
	require.NoError(t, err)
	_, offset = time.Date(2013, 6, 19, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 5*3600+30*60, offset)

	loc, err = ParseLocation("UTC")
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = ParseLocation("Mars/Olympus")
	assert.Error(t, err)
	_, err = ParseLocation("+4h")
	assert.Error(t, err)
}
