// Package ephemeris wraps the planetary-position provider behind a small
// interface. The rest of the engine only ever sees sidereal longitudes,
// retrograde flags and house cusps keyed by Julian Day; which theory produced
// them is this package's concern.
package ephemeris

import (
	"time"

	"github.com/soniakeys/meeus/v3/julian"

	"app/models"
)

// RawPosition is the provider-level position of one body: sidereal longitude
// plus motion state. The chart builder derives everything else from it.
type RawPosition struct {
	Planet     models.Planet
	Longitude  float64 // sidereal, degrees [0,360)
	Retrograde bool
}

// Houses carries the house cusps for an instant and place. Cusp 1 is the
// sidereal ascendant; the engine uses whole-sign houses counted from it.
type Houses struct {
	Ascendant float64     // sidereal longitude of the ascendant, degrees [0,360)
	Cusps     [12]float64 // equal cusps from the ascendant, degrees [0,360)
}

// Provider computes positions for a Julian Day. Implementations must be
// deterministic for a given timestamp and safe for concurrent use.
type Provider interface {
	// PlanetPositions returns the nine grahas in Sun..Ketu order.
	// Fails with models.ErrEphemerisUnavailable when jd is outside the
	// provider's supported range.
	PlanetPositions(jd float64) ([]RawPosition, error)

	// PlaceHouses returns the house cusps for jd at a geographic location.
	PlaceHouses(jd, latitude, longitude float64) (Houses, error)
}

// JulianDay converts a UTC instant to a Julian Day.
func JulianDay(t time.Time) float64 {
	return julian.TimeToJD(t.UTC())
}

// FromJulianDay converts a Julian Day back to a UTC instant.
func FromJulianDay(jd float64) time.Time {
	return julian.JDToTime(jd).UTC()
}
