// Package chart builds the immutable D1 (Rasi) and D9 (Navamsa) birth chart
// from ephemeris output.
package chart

import (
	"math"
	"time"

	"app/ephemeris"
	"app/models"
	"app/tables"
)

const (
	nakshatraSpan = 360.0 / 27 // 13°20'
	padaSpan      = 360.0 / 108
	navamsaSpan   = 30.0 / 9 // 3°20'
)

// Build converts raw longitudes for a birth instant into a BirthChart.
// birthUTC must already be in UTC; timeKnown records whether the caller
// supplied an exact birth time (it feeds the confidence blend, not the math).
func Build(provider ephemeris.Provider, birthUTC time.Time, latitude, longitude float64, timeKnown bool) (*models.BirthChart, error) {
	jd := ephemeris.JulianDay(birthUTC)

	raw, err := provider.PlanetPositions(jd)
	if err != nil {
		return nil, err
	}
	if len(raw) != models.PlanetCount {
		return nil, &models.InvalidBirthChartError{Reason: "ephemeris returned an incomplete planet set"}
	}

	houses, err := provider.PlaceHouses(jd, latitude, longitude)
	if err != nil {
		return nil, err
	}

	lagnaSign := SignOf(houses.Ascendant)

	var sunLon float64
	for _, r := range raw {
		if r.Planet == models.Sun {
			sunLon = r.Longitude
		}
	}

	bc := &models.BirthChart{
		LagnaSign:   lagnaSign,
		LagnaDegree: roundDeg(houses.Ascendant),
		BirthJD:     jd,
		TimeKnown:   timeKnown,
		Latitude:    latitude,
		Longitude:   longitude,
		Planets:     make([]models.PlanetPosition, 0, models.PlanetCount),
	}

	for _, r := range raw {
		pos := derivePosition(r, lagnaSign, sunLon)
		bc.Planets = append(bc.Planets, pos)
	}

	moon := bc.Position(models.Moon)
	if moon == nil {
		return nil, &models.InvalidBirthChartError{Reason: "moon position missing from ephemeris output"}
	}
	bc.MoonSign = moon.Sign
	bc.MoonNakshatra = moon.Nakshatra
	bc.MoonPada = moon.Pada

	for i := 0; i < 12; i++ {
		bc.HouseSigns[i] = models.Sign((int(lagnaSign) + i) % 12)
	}
	d9Lagna := Navamsa(houses.Ascendant)
	for i := 0; i < 12; i++ {
		bc.NavamsaHouses[i] = models.Sign((int(d9Lagna) + i) % 12)
	}

	return bc, nil
}

func derivePosition(r ephemeris.RawPosition, lagnaSign models.Sign, sunLon float64) models.PlanetPosition {
	lon := roundDeg(r.Longitude)
	sign := SignOf(lon)
	degIn := lon - float64(sign)*30
	if degIn >= 30 {
		degIn = 0
		sign = models.Sign((int(sign) + 1) % 12)
	}
	nak := NakshatraOf(lon)
	d9 := Navamsa(lon)

	pos := models.PlanetPosition{
		Planet:       r.Planet,
		PlanetName:   r.Planet.String(),
		Longitude:    lon,
		Sign:         sign,
		SignNumber:   sign.Number(),
		DegreeInSign: degIn,
		House:        HouseOf(sign, lagnaSign),
		Nakshatra:    nak,
		Pada:         PadaOf(lon),
		NavamsaSign:  d9,
		Retrograde:   r.Retrograde,
		Vargottama:   sign == d9,
	}
	pos.Dignity = dignityOf(r.Planet, sign, degIn)
	pos.Combust = isCombust(r.Planet, lon, sunLon)
	return pos
}

// SignOf returns the sign containing a longitude. The longitude is rounded to
// 1e-6 degrees first so cusp-boundary values (29°59'59.99") land consistently.
func SignOf(lon float64) models.Sign {
	s := int(roundDeg(lon) / 30)
	if s > 11 {
		s = 0
	}
	return models.Sign(s)
}

// HouseOf returns the whole-sign house (1..12) of a sign relative to the lagna.
func HouseOf(sign, lagna models.Sign) int {
	return (int(sign)-int(lagna)+12)%12 + 1
}

// NakshatraOf returns the lunar mansion index (0..26) of a longitude.
func NakshatraOf(lon float64) int {
	n := int(roundDeg(lon) / nakshatraSpan)
	if n > 26 {
		n = 0
	}
	return n
}

// PadaOf returns the quarter (1..4) of the nakshatra containing a longitude.
func PadaOf(lon float64) int {
	return int(math.Mod(roundDeg(lon), nakshatraSpan)/padaSpan) + 1
}

// NakshatraFraction returns how far through its nakshatra a longitude sits,
// in [0,1). The dasha engine uses this for the opening balance period.
func NakshatraFraction(lon float64) float64 {
	return math.Mod(roundDeg(lon), nakshatraSpan) / nakshatraSpan
}

// Navamsa returns the D9 sign for a longitude: each sign splits into nine
// 3°20' parts, starting from Aries, Capricorn, Libra or Cancer according to
// the sign's element.
func Navamsa(lon float64) models.Sign {
	lon = roundDeg(lon)
	sign := SignOf(lon)
	degIn := lon - float64(sign)*30
	part := int(degIn / navamsaSpan)
	if part > 8 {
		part = 8
	}
	var start int
	switch int(sign) % 4 {
	case 0: // fire
		start = 0 // Aries
	case 1: // earth
		start = 9 // Capricorn
	case 2: // air
		start = 6 // Libra
	default: // water
		start = 3 // Cancer
	}
	return models.Sign((start + part) % 12)
}

func dignityOf(p models.Planet, sign models.Sign, degIn float64) models.Dignity {
	if tables.InMoolatrikona(p, sign, degIn) {
		d := SignDignity(p, sign)
		if d != models.DignityExalted && d != models.DignityDebilitated {
			return models.DignityMoolatrikona
		}
		return d
	}
	return SignDignity(p, sign)
}

// SignDignity classifies a planet's dignity in a bare sign, ignoring degree
// spans. Divisional charts use this where only the sign is known.
func SignDignity(p models.Planet, sign models.Sign) models.Dignity {
	if exalt, ok := tables.ExaltationSign[p]; ok {
		if sign == exalt {
			return models.DignityExalted
		}
		if sign == models.Sign((int(exalt)+6)%12) {
			return models.DignityDebilitated
		}
	}
	lord := tables.SignLords[sign]
	if lord == p {
		return models.DignityOwn
	}
	return tables.Relation(p, lord)
}

func isCombust(p models.Planet, lon, sunLon float64) bool {
	orb, ok := tables.CombustionOrb[p]
	if !ok {
		return false
	}
	return math.Abs(DeltaDeg(lon, sunLon)) <= orb
}

// DeltaDeg returns the signed shortest arc from b to a, in (-180,180].
func DeltaDeg(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}

func roundDeg(d float64) float64 {
	d = math.Round(d*1e6) / 1e6
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}
