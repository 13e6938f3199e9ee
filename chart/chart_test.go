package chart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/ephemeris"
	"app/models"
)

// fakeProvider returns a fixed set of longitudes so every derived value is
// known in advance.
type fakeProvider struct {
	positions []ephemeris.RawPosition
	ascendant float64
}

func (f *fakeProvider) PlanetPositions(jd float64) ([]ephemeris.RawPosition, error) {
	return f.positions, nil
}

func (f *fakeProvider) PlaceHouses(jd, lat, lon float64) (ephemeris.Houses, error) {
	var h ephemeris.Houses
	h.Ascendant = f.ascendant
	for i := 0; i < 12; i++ {
		h.Cusps[i] = f.ascendant + float64(i)*30
	}
	return h, nil
}

func fixtureProvider() *fakeProvider {
	return &fakeProvider{
		ascendant: 125, // Leo 5°
		positions: []ephemeris.RawPosition{
			{Planet: models.Sun, Longitude: 10},                    // Aries 10°, exalted
			{Planet: models.Moon, Longitude: 46},                   // Taurus 16°, exalted, vargottama
			{Planet: models.Mars, Longitude: 100},                  // Cancer 10°, debilitated
			{Planet: models.Mercury, Longitude: 20},                // Aries 20°, combust (10° from Sun)
			{Planet: models.Jupiter, Longitude: 95},                // Cancer 5°, exalted
			{Planet: models.Venus, Longitude: 185},                 // Libra 5°, moolatrikona
			{Planet: models.Saturn, Longitude: 195, Retrograde: true}, // Libra 15°, exalted
			{Planet: models.Rahu, Longitude: 250, Retrograde: true},
			{Planet: models.Ketu, Longitude: 70, Retrograde: true},
		},
	}
}

func buildFixture(t *testing.T) *models.BirthChart {
	t.Helper()
	birth := time.Date(1990, 6, 15, 3, 0, 0, 0, time.UTC)
	bc, err := Build(fixtureProvider(), birth, 13.0827, 80.2707, true)
	require.NoError(t, err)
	return bc
}

func TestBuildInvariants(t *testing.T) {
	bc := buildFixture(t)

	assert.Len(t, bc.Planets, 9)
	assert.Equal(t, models.Sign(4), bc.LagnaSign) // Leo
	assert.InDelta(t, 125.0, bc.LagnaDegree, 1e-9)
	assert.True(t, bc.LagnaDegree >= 0 && bc.LagnaDegree < 360)

	for _, p := range bc.Planets {
		assert.GreaterOrEqual(t, p.House, 1)
		assert.LessOrEqual(t, p.House, 12)
		assert.GreaterOrEqual(t, int(p.Sign), 0)
		assert.LessOrEqual(t, int(p.Sign), 11)
		assert.GreaterOrEqual(t, p.DegreeInSign, 0.0)
		assert.Less(t, p.DegreeInSign, 30.0)
		assert.GreaterOrEqual(t, p.Nakshatra, 0)
		assert.LessOrEqual(t, p.Nakshatra, 26)
		assert.GreaterOrEqual(t, p.Pada, 1)
		assert.LessOrEqual(t, p.Pada, 4)
	}

	// Whole-sign houses from the lagna.
	sun := bc.Position(models.Sun)
	require.NotNil(t, sun)
	assert.Equal(t, 9, sun.House) // Aries from Leo lagna

	moon := bc.Position(models.Moon)
	require.NotNil(t, moon)
	assert.Equal(t, 10, moon.House)
	assert.Equal(t, models.Sign(1), bc.MoonSign)
	assert.Equal(t, 3, bc.MoonNakshatra) // Rohini
}

func TestDignities(t *testing.T) {
	bc := buildFixture(t)

	assert.Equal(t, models.DignityExalted, bc.Position(models.Sun).Dignity)
	assert.Equal(t, models.DignityExalted, bc.Position(models.Moon).Dignity)
	assert.Equal(t, models.DignityDebilitated, bc.Position(models.Mars).Dignity)
	assert.Equal(t, models.DignityExalted, bc.Position(models.Jupiter).Dignity)
	assert.Equal(t, models.DignityMoolatrikona, bc.Position(models.Venus).Dignity)
	assert.Equal(t, models.DignityExalted, bc.Position(models.Saturn).Dignity)
}

func TestCombustion(t *testing.T) {
	bc := buildFixture(t)

	assert.True(t, bc.Position(models.Mercury).Combust, "mercury 10° from sun should be combust")
	assert.False(t, bc.Position(models.Venus).Combust)
	assert.False(t, bc.Position(models.Sun).Combust, "sun never combusts itself")
	assert.False(t, bc.Position(models.Rahu).Combust, "nodes never combust")
}

func TestVargottama(t *testing.T) {
	bc := buildFixture(t)

	// Taurus 16°: earth sign starts at Capricorn, part 4 lands back in Taurus.
	assert.True(t, bc.Position(models.Moon).Vargottama)
	assert.False(t, bc.Position(models.Sun).Vargottama)

	// Every sign has exactly one navamsa part that returns to itself.
	for sign := 0; sign < 12; sign++ {
		matches := 0
		for part := 0; part < 9; part++ {
			lon := float64(sign)*30 + float64(part)*navamsaSpan + 1
			if Navamsa(lon) == models.Sign(sign) {
				matches++
			}
		}
		assert.Equal(t, 1, matches, "sign %d should be vargottama in exactly one part", sign)
	}
}

func TestNavamsaElementStarts(t *testing.T) {
	cases := []struct {
		lon  float64
		want models.Sign
	}{
		{1, 0},    // Aries (fire) -> Aries
		{31, 9},   // Taurus (earth) -> Capricorn
		{61, 6},   // Gemini (air) -> Libra
		{91, 3},   // Cancer (water) -> Cancer
		{121, 0},  // Leo (fire) -> Aries
		{331, 3},  // Pisces (water) -> Cancer
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Navamsa(c.lon), "navamsa of %.0f", c.lon)
	}
}

func TestCuspBoundaryRounding(t *testing.T) {
	// 29°59'59.99" of Aries stays in Aries; values that round to 30° move on.
	assert.Equal(t, models.Sign(0), SignOf(29.999999))
	assert.Equal(t, models.Sign(1), SignOf(29.9999996))
	assert.Equal(t, models.Sign(1), SignOf(30))
	assert.Equal(t, models.Sign(0), SignOf(360))
	assert.Equal(t, models.Sign(11), SignOf(359.999))
}

func TestNakshatraAndPada(t *testing.T) {
	assert.Equal(t, 0, NakshatraOf(0))
	assert.Equal(t, 1, PadaOf(0))
	assert.Equal(t, 1, NakshatraOf(13.34))
	assert.Equal(t, 26, NakshatraOf(359.9))
	assert.Equal(t, 4, PadaOf(359.9))
	// The longitude is rounded to 1e-6° before the fraction is taken.
	assert.InDelta(t, 0.5, NakshatraFraction(360.0/27/2), 1e-6)
}

func TestMoonRequired(t *testing.T) {
	p := fixtureProvider()
	trimmed := make([]ephemeris.RawPosition, 0, 8)
	for _, pos := range p.positions {
		if pos.Planet != models.Moon {
			trimmed = append(trimmed, pos)
		}
	}
	p.positions = trimmed

	_, err := Build(p, time.Date(1990, 6, 15, 3, 0, 0, 0, time.UTC), 13, 80, true)
	assert.ErrorIs(t, err, models.ErrInvalidBirthChart)
}
