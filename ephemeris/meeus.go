package ephemeris

import (
	"math"

	"github.com/soniakeys/meeus/v3/base"
	"github.com/soniakeys/meeus/v3/julian"
	"github.com/soniakeys/meeus/v3/moonposition"
	"github.com/soniakeys/meeus/v3/nutation"
	"github.com/soniakeys/meeus/v3/planetelements"
	"github.com/soniakeys/meeus/v3/sidereal"
	"github.com/soniakeys/meeus/v3/solar"

	"app/models"
)

// Supported range of the mean-element planetary theory. Outside it the
// provider refuses to answer rather than extrapolate.
var (
	minJD = julian.CalendarGregorianToJD(600, 1, 1)
	maxJD = julian.CalendarGregorianToJD(2400, 1, 1)
)

// MeeusProvider computes positions from Meeus' Astronomical Algorithms as
// implemented by soniakeys/meeus: solar theory for the Sun, the lunar series
// for the Moon, mean orbital elements with an equation-of-centre correction
// and geocentric reduction for Mercury through Saturn, and the mean lunar
// node for Rahu/Ketu. Longitudes are converted to the sidereal zodiac with
// the Lahiri ayanamsa.
//
// Accuracy is arcminute-level, which is ample for sign, nakshatra and house
// work; a deployment needing sub-arcsecond transits can swap in a different
// Provider without touching the engine.
type MeeusProvider struct{}

// NewMeeusProvider returns the built-in provider.
func NewMeeusProvider() *MeeusProvider { return &MeeusProvider{} }

func (m *MeeusProvider) checkRange(jd float64) error {
	if jd < minJD || jd >= maxJD {
		return &models.EphemerisError{JD: jd, Reason: "date outside supported range (600-2400 CE)"}
	}
	return nil
}

// PlanetPositions implements Provider.
func (m *MeeusProvider) PlanetPositions(jd float64) ([]RawPosition, error) {
	if err := m.checkRange(jd); err != nil {
		return nil, err
	}
	ayan := Ayanamsa(jd)
	out := make([]RawPosition, 0, models.PlanetCount)
	for p := models.Sun; p <= models.Ketu; p++ {
		trop := tropicalLongitude(p, jd)
		out = append(out, RawPosition{
			Planet:     p,
			Longitude:  norm360(trop - ayan),
			Retrograde: isRetrograde(p, jd),
		})
	}
	return out, nil
}

// PlaceHouses implements Provider. Latitude/longitude are geographic degrees,
// east and north positive.
func (m *MeeusProvider) PlaceHouses(jd, latitude, longitude float64) (Houses, error) {
	if err := m.checkRange(jd); err != nil {
		return Houses{}, err
	}
	asc := norm360(tropicalAscendant(jd, latitude, longitude) - Ayanamsa(jd))
	var h Houses
	h.Ascendant = asc
	for i := 0; i < 12; i++ {
		h.Cusps[i] = norm360(asc + float64(i)*30)
	}
	return h, nil
}

// Ayanamsa returns the Lahiri ayanamsa in degrees for a Julian Day, using the
// standard linear-plus-quadratic approximation from the 1900 epoch value.
func Ayanamsa(jd float64) float64 {
	T := (jd - 2415020.0) / 36525 // centuries from 1900.0
	return 22.460148 + 1.396042*T + 0.000308*T*T
}

// tropicalLongitude returns the geocentric tropical ecliptic longitude of a
// graha in degrees.
func tropicalLongitude(p models.Planet, jd float64) float64 {
	switch p {
	case models.Sun:
		return norm360(solar.ApparentLongitude(base.J2000Century(jd)).Deg())
	case models.Moon:
		lam, _, _ := moonposition.Position(jd)
		return norm360(lam.Deg())
	case models.Rahu:
		return meanLunarNode(jd)
	case models.Ketu:
		return norm360(meanLunarNode(jd) + 180)
	default:
		return geocentricPlanet(p, jd)
	}
}

var elementIndex = map[models.Planet]int{
	models.Mercury: planetelements.Mercury,
	models.Venus:   planetelements.Venus,
	models.Mars:    planetelements.Mars,
	models.Jupiter: planetelements.Jupiter,
	models.Saturn:  planetelements.Saturn,
}

// helio returns the heliocentric ecliptic longitude (radians) and radius (AU)
// of a planet from its mean orbital elements, with the equation of centre
// applied to second order in the eccentricity.
func helio(idx int, jd float64) (lon, r float64) {
	var e planetelements.Elements
	planetelements.Mean(idx, jd, &e)
	M := (e.Lon - e.Peri).Mod1().Rad()
	ecc := e.Ecc
	nu := M + (2*ecc-ecc*ecc*ecc/4)*math.Sin(M) + 1.25*ecc*ecc*math.Sin(2*M)
	r = e.Axis * (1 - ecc*ecc) / (1 + ecc*math.Cos(nu))
	lon = nu + e.Peri.Rad()
	return lon, r
}

// geocentricPlanet reduces a planet's heliocentric position against Earth's
// to a geocentric tropical longitude in degrees. The reduction is done in the
// ecliptic plane; the planets' small latitudes do not move them across sign
// boundaries at the precision this engine needs.
func geocentricPlanet(p models.Planet, jd float64) float64 {
	pl, pr := helio(elementIndex[p], jd)
	el, er := earthHelio(jd)
	x := pr*math.Cos(pl) - er*math.Cos(el)
	y := pr*math.Sin(pl) - er*math.Sin(el)
	return norm360(math.Atan2(y, x) * 180 / math.Pi)
}

// earthHelio returns Earth's heliocentric ecliptic longitude (radians) and
// radius (AU) from solar theory: Earth stands opposite the Sun's true
// geometric longitude at the Sun-Earth distance. The mean-element table has
// no usable Earth entry, so Earth is the one body not computed through helio.
func earthHelio(jd float64) (lon, r float64) {
	T := base.J2000Century(jd)
	s, _ := solar.True(T)
	return s.Rad() + math.Pi, solar.Radius(T)
}

// meanLunarNode returns the mean longitude of the Moon's ascending node in
// degrees (Meeus ch. 47 polynomial).
func meanLunarNode(jd float64) float64 {
	T := base.J2000Century(jd)
	om := 125.0445479 - 1934.1362891*T + 0.0020754*T*T + T*T*T/467441 - T*T*T*T/60616000
	return norm360(om)
}

// isRetrograde reports apparent retrograde motion by differencing the
// geocentric longitude half a day either side of jd. The luminaries never
// retrograde; the nodes always do.
func isRetrograde(p models.Planet, jd float64) bool {
	switch p {
	case models.Sun, models.Moon:
		return false
	case models.Rahu, models.Ketu:
		return true
	}
	const dt = 0.5
	before := geocentricPlanet(p, jd-dt)
	after := geocentricPlanet(p, jd+dt)
	return wrapDelta(after-before) < 0
}

// tropicalAscendant returns the tropical ecliptic longitude of the ascendant
// in degrees for an instant and place.
func tropicalAscendant(jd, latitude, longitude float64) float64 {
	gst := sidereal.Apparent(jd).Angle().Rad()
	lst := gst + longitude*math.Pi/180 // east longitudes positive
	eps := nutation.MeanObliquity(jd).Rad()
	phi := latitude * math.Pi / 180
	asc := math.Atan2(math.Cos(lst), -(math.Sin(lst)*math.Cos(eps) + math.Tan(phi)*math.Sin(eps)))
	return norm360(asc * 180 / math.Pi)
}

// norm360 wraps a degree value into [0,360).
func norm360(d float64) float64 {
	d = math.Mod(d, 360)
	if d < 0 {
		d += 360
	}
	return d
}

// wrapDelta maps a degree difference into (-180,180].
func wrapDelta(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}
