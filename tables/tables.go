// Package tables holds the classical lookup data the scoring engine is built
// on: sign lordships, dignity tables, nakshatra lords, aspect patterns,
// combustion orbs and the Vimshottari constants. Everything here is loaded
// once and read-only at runtime; evaluators receive it by reference and never
// mutate it.
package tables

import "app/models"

// NakshatraNames lists the 27 lunar mansions in zodiac order.
var NakshatraNames = [27]string{
	"Ashwini", "Bharani", "Krittika", "Rohini", "Mrigashira", "Ardra",
	"Punarvasu", "Pushya", "Ashlesha", "Magha", "Purva Phalguni", "Uttara Phalguni",
	"Hasta", "Chitra", "Swati", "Vishakha", "Anuradha", "Jyeshtha",
	"Mula", "Purva Ashadha", "Uttara Ashadha", "Shravana", "Dhanishta", "Shatabhisha",
	"Purva Bhadrapada", "Uttara Bhadrapada", "Revati",
}

// DashaOrder is the canonical Vimshottari lord sequence, starting from Ketu.
var DashaOrder = [9]models.Planet{
	models.Ketu, models.Venus, models.Sun, models.Moon, models.Mars,
	models.Rahu, models.Jupiter, models.Saturn, models.Mercury,
}

// DashaYears maps each lord to its Mahadasha length. The nine sum to 120.
var DashaYears = map[models.Planet]float64{
	models.Ketu:    7,
	models.Venus:   20,
	models.Sun:     6,
	models.Moon:    10,
	models.Mars:    7,
	models.Rahu:    18,
	models.Jupiter: 16,
	models.Saturn:  19,
	models.Mercury: 17,
}

// NakshatraLord returns the Vimshottari lord of a nakshatra. The lord sequence
// repeats three times across the 27 mansions.
func NakshatraLord(nakshatra int) models.Planet {
	return DashaOrder[nakshatra%9]
}

// SignLords maps each sign to its ruling planet.
var SignLords = [12]models.Planet{
	models.Mars,    // Aries
	models.Venus,   // Taurus
	models.Mercury, // Gemini
	models.Moon,    // Cancer
	models.Sun,     // Leo
	models.Mercury, // Virgo
	models.Venus,   // Libra
	models.Mars,    // Scorpio
	models.Jupiter, // Sagittarius
	models.Saturn,  // Capricorn
	models.Saturn,  // Aquarius
	models.Jupiter, // Pisces
}

// ExaltationSign maps each planet to its exaltation sign. Debilitation is the
// seventh sign from exaltation.
var ExaltationSign = map[models.Planet]models.Sign{
	models.Sun:     0,  // Aries
	models.Moon:    1,  // Taurus
	models.Mars:    9,  // Capricorn
	models.Mercury: 5,  // Virgo
	models.Jupiter: 3,  // Cancer
	models.Venus:   11, // Pisces
	models.Saturn:  6,  // Libra
	models.Rahu:    1,  // Taurus
	models.Ketu:    7,  // Scorpio
}

// moolatrikonaSpan is a sign with a degree range.
type moolatrikonaSpan struct {
	Sign models.Sign
	From float64
	To   float64
}

// moolatrikona maps the seven classical planets to their moolatrikona spans.
var moolatrikona = map[models.Planet]moolatrikonaSpan{
	models.Sun:     {4, 0, 20},   // Leo 0–20
	models.Moon:    {1, 3, 30},   // Taurus 3–30
	models.Mars:    {0, 0, 12},   // Aries 0–12
	models.Mercury: {5, 15, 20},  // Virgo 15–20
	models.Jupiter: {8, 0, 10},   // Sagittarius 0–10
	models.Venus:   {6, 0, 15},   // Libra 0–15
	models.Saturn:  {10, 0, 20},  // Aquarius 0–20
}

// InMoolatrikona reports whether a placement falls in the planet's
// moolatrikona span.
func InMoolatrikona(p models.Planet, sign models.Sign, deg float64) bool {
	span, ok := moolatrikona[p]
	if !ok {
		return false
	}
	return sign == span.Sign && deg >= span.From && deg < span.To
}

// friends maps each planet to its natural friends (classical panchadha
// maitri, compounded to the simple natural table).
var friends = map[models.Planet][]models.Planet{
	models.Sun:     {models.Moon, models.Mars, models.Jupiter},
	models.Moon:    {models.Sun, models.Mercury},
	models.Mars:    {models.Sun, models.Moon, models.Jupiter},
	models.Mercury: {models.Sun, models.Venus},
	models.Jupiter: {models.Sun, models.Moon, models.Mars},
	models.Venus:   {models.Mercury, models.Saturn},
	models.Saturn:  {models.Mercury, models.Venus},
	models.Rahu:    {models.Venus, models.Saturn},
	models.Ketu:    {models.Mars, models.Jupiter},
}

// enemies maps each planet to its natural enemies.
var enemies = map[models.Planet][]models.Planet{
	models.Sun:     {models.Venus, models.Saturn},
	models.Moon:    {},
	models.Mars:    {models.Mercury},
	models.Mercury: {models.Moon},
	models.Jupiter: {models.Mercury, models.Venus},
	models.Venus:   {models.Sun, models.Moon},
	models.Saturn:  {models.Sun, models.Moon, models.Mars},
	models.Rahu:    {models.Sun, models.Moon},
	models.Ketu:    {models.Sun, models.Moon},
}

// Relation classifies the lord of a sign as friend, neutral, or enemy of p.
func Relation(p models.Planet, signLord models.Planet) models.Dignity {
	for _, f := range friends[p] {
		if f == signLord {
			return models.DignityFriend
		}
	}
	for _, e := range enemies[p] {
		if e == signLord {
			return models.DignityEnemy
		}
	}
	return models.DignityNeutral
}

// DignityScores maps each dignity to its base strength on the 0–10 scale.
var DignityScores = map[models.Dignity]float64{
	models.DignityExalted:      10,
	models.DignityMoolatrikona: 8.5,
	models.DignityOwn:          8,
	models.DignityFriend:       6.5,
	models.DignityNeutral:      5,
	models.DignityEnemy:        3,
	models.DignityDebilitated:  1,
}

// CombustionOrb maps each planet to the maximum separation from the Sun (in
// degrees of longitude) at which it counts as combust. The Sun itself and the
// nodes never combust.
var CombustionOrb = map[models.Planet]float64{
	models.Moon:    12,
	models.Mars:    17,
	models.Mercury: 14,
	models.Jupiter: 11,
	models.Venus:   10,
	models.Saturn:  15,
}

// SpecialAspects maps each planet to the houses it aspects, counted inclusively
// from its own position. Every planet has the 7th aspect; Mars, Jupiter,
// Saturn and the nodes add their special aspects.
var SpecialAspects = map[models.Planet][]int{
	models.Sun:     {7},
	models.Moon:    {7},
	models.Mars:    {4, 7, 8},
	models.Mercury: {7},
	models.Jupiter: {5, 7, 9},
	models.Venus:   {7},
	models.Saturn:  {3, 7, 10},
	models.Rahu:    {5, 7, 9},
	models.Ketu:    {5, 7, 9},
}

// NaturalBenefics and NaturalMalefics split the grahas by natural temperament.
// Mercury and the Moon are treated as benefic in this table; affliction is
// handled separately by the aspect evaluator.
var (
	NaturalBenefics = map[models.Planet]bool{
		models.Jupiter: true,
		models.Venus:   true,
		models.Mercury: true,
		models.Moon:    true,
	}
	NaturalMalefics = map[models.Planet]bool{
		models.Sun:    true,
		models.Mars:   true,
		models.Saturn: true,
		models.Rahu:   true,
		models.Ketu:   true,
	}
)

// GocharaFavorable maps each transiting planet to the favorable house counts
// from the natal Moon (classical gochara table).
var GocharaFavorable = map[models.Planet][]int{
	models.Sun:     {3, 6, 10, 11},
	models.Moon:    {1, 3, 6, 7, 10, 11},
	models.Mars:    {3, 6, 11},
	models.Mercury: {2, 4, 6, 8, 10, 11},
	models.Jupiter: {2, 5, 7, 9, 11},
	models.Venus:   {1, 2, 3, 4, 5, 8, 9, 11, 12},
	models.Saturn:  {3, 6, 11},
	models.Rahu:    {3, 6, 11},
	models.Ketu:    {3, 6, 11},
}

// LifeAreaHouses maps each life area to the houses whose activation drives it.
var LifeAreaHouses = map[models.LifeArea][]int{
	models.AreaGeneral:       {1, 9, 10},
	models.AreaCareer:        {10, 6, 2},
	models.AreaFinance:       {2, 11, 9},
	models.AreaHealth:        {1, 6, 8},
	models.AreaRelationships: {7, 5, 11},
}

// LifeAreaSignificators maps each life area to its karaka planets.
var LifeAreaSignificators = map[models.LifeArea][]models.Planet{
	models.AreaGeneral:       {models.Sun, models.Moon, models.Jupiter},
	models.AreaCareer:        {models.Sun, models.Saturn, models.Mercury},
	models.AreaFinance:       {models.Jupiter, models.Venus, models.Mercury},
	models.AreaHealth:        {models.Sun, models.Mars, models.Moon},
	models.AreaRelationships: {models.Venus, models.Moon, models.Jupiter},
}

// KendraHouses and TrikonaHouses are the angular and trine house sets.
var (
	KendraHouses  = map[int]bool{1: true, 4: true, 7: true, 10: true}
	TrikonaHouses = map[int]bool{1: true, 5: true, 9: true}
)
