package ephemeris

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/models"
)

func TestCachedProviderNilPoolPassThrough(t *testing.T) {
	c := NewCachedProvider(NewMeeusProvider(), nil)
	jd := JulianDay(time.Date(1990, 6, 15, 3, 0, 0, 0, time.UTC))

	direct, err := NewMeeusProvider().PlanetPositions(jd)
	require.NoError(t, err)
	cached, err := c.PlanetPositions(jd)
	require.NoError(t, err)
	assert.Equal(t, direct, cached)

	h, err := c.PlaceHouses(jd, 13.0827, 80.2707)
	require.NoError(t, err)
	assert.Less(t, h.Ascendant, 360.0)
}

func TestCachedProviderNilPoolSurfacesError(t *testing.T) {
	c := NewCachedProvider(NewMeeusProvider(), nil)
	_, err := c.PlanetPositions(JulianDay(time.Date(2405, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.ErrorIs(t, err, models.ErrEphemerisUnavailable)
}

func TestRoundJD(t *testing.T) {
	assert.InDelta(t, 2451545.1234, roundJD(2451545.12341), 1e-12)
	assert.Equal(t, roundJD(2451545.12339), roundJD(2451545.12341))
}
