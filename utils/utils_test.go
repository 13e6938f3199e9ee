package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateFormats(t *testing.T) {
	cases := []string{
		"1990-06-15",
		"15-06-1990",
		"1990-06-15T08:30:00",
		"1990-06-15T08:30:00Z",
	}
	for _, s := range cases {
		got, err := ParseDate(s)
		require.NoError(t, err, "format %q", s)
		assert.Equal(t, 1990, got.Year())
		assert.Equal(t, time.June, got.Month())
		assert.Equal(t, 15, got.Day())
	}

	_, err := ParseDate("June the fifteenth")
	assert.Error(t, err)
}

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8, h)
	assert.Equal(t, 30, m)

	h, m, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23, h)
	assert.Equal(t, 59, m)

	// Unpadded hours are accepted, unpadded minutes are not.
	h, m, err = ParseClock("8:30")
	require.NoError(t, err)
	assert.Equal(t, 8, h)
	assert.Equal(t, 30, m)

	for _, bad := range []string{"25:00", "12:60", "8:3", "08:30xyz", "noon", ""} {
		_, _, err := ParseClock(bad)
		assert.Error(t, err, "clock %q", bad)
	}
}

func TestCreatePagination(t *testing.T) {
	p := CreatePagination(45, 2, 10)
	assert.Equal(t, 45, p.TotalItems)
	assert.Equal(t, 2, p.CurrentPage)
	assert.Equal(t, 5, p.TotalPages)

	// Defaults kick in for nonsense inputs.
	p = CreatePagination(3, 0, -1)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 10, p.PageSize)
	assert.Equal(t, 1, p.TotalPages)
}
