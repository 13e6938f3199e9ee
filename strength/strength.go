// Package strength derives the two composite indices the scoring modules
// consume: the Planet Operating Index (POI) and the House Activation Index
// (HAI). Both are pure functions of a BirthChart (plus, for HAI's Saturn
// pressure, an optional transit Saturn sign); nothing here touches external
// state.
package strength

import (
	"fmt"
	"math"

	"app/models"
	"app/tables"
)

// Index is one computed strength value with its component breakdown.
type Index struct {
	Score   float64         // 0..10
	Grade   string          // A/B/C/D
	Factors []models.Factor // signed components summing (pre-clamp) to Score
}

const (
	vargottamaBoost   = 1.15
	retroPenalty      = 1.0
	combustionPenalty = 1.5
	aspectEffect      = 0.6
	houseBase         = 3.0
	saturnPressure    = 0.8
)

// Grade maps a 0..10 index onto the fixed letter cutoffs.
func Grade(score float64) string {
	switch {
	case score >= 8:
		return "A"
	case score >= 6:
		return "B"
	case score >= 4:
		return "C"
	default:
		return "D"
	}
}

// PlanetOperatingIndex computes the POI of one planet. retroSoftening scales
// the retrograde penalty (1.0 = full, 0.7 = softened 30%), per the active
// time-mode profile.
func PlanetOperatingIndex(bc *models.BirthChart, p models.Planet, retroSoftening float64) Index {
	pos := bc.Position(p)
	if pos == nil {
		return Index{Grade: "D"}
	}

	factors := make([]models.Factor, 0, 4)

	dignity := tables.DignityScores[pos.Dignity]
	if pos.Vargottama {
		dignity *= vargottamaBoost
	}
	factors = append(factors, models.Factor{
		Name:         fmt.Sprintf("%s dignity (%s)", pos.PlanetName, pos.Dignity),
		Value:        dignity,
		Contribution: dignity,
	})

	if pos.Retrograde {
		adj := -retroPenalty * retroSoftening
		factors = append(factors, models.Factor{
			Name:         fmt.Sprintf("%s retrograde", pos.PlanetName),
			Value:        retroSoftening,
			Contribution: adj,
		})
	}

	if pos.Combust {
		factors = append(factors, models.Factor{
			Name:         fmt.Sprintf("%s combust", pos.PlanetName),
			Value:        combustionPenalty,
			Contribution: -combustionPenalty,
		})
	}

	if aspect := aspectModifier(bc, pos); aspect != 0 {
		factors = append(factors, models.Factor{
			Name:         fmt.Sprintf("aspects received by %s", pos.PlanetName),
			Value:        math.Abs(aspect),
			Contribution: aspect,
		})
	}

	score := 0.0
	for _, f := range factors {
		score += f.Contribution
	}
	score = clamp10(score)
	return Index{Score: score, Grade: Grade(score), Factors: factors}
}

// AllPOI computes the POI of every graha in the chart.
func AllPOI(bc *models.BirthChart, retroSoftening float64) map[models.Planet]Index {
	out := make(map[models.Planet]Index, models.PlanetCount)
	for p := models.Sun; p <= models.Ketu; p++ {
		out[p] = PlanetOperatingIndex(bc, p, retroSoftening)
	}
	return out
}

// aspectModifier sums the benefic/malefic aspects target receives, each
// weighted by how tight the in-sign degree orb is.
func aspectModifier(bc *models.BirthChart, target *models.PlanetPosition) float64 {
	total := 0.0
	for i := range bc.Planets {
		src := &bc.Planets[i]
		if src.Planet == target.Planet {
			continue
		}
		if !AspectsHouse(src, target.House) {
			continue
		}
		orb := 1 - math.Abs(src.DegreeInSign-target.DegreeInSign)/30
		if tables.NaturalBenefics[src.Planet] {
			total += aspectEffect * orb
		} else {
			total -= aspectEffect * orb
		}
	}
	return total
}

// AspectsHouse reports whether src casts one of its aspects onto house
// (whole-sign counting, inclusive of the occupied house as 1).
func AspectsHouse(src *models.PlanetPosition, house int) bool {
	count := (house-src.House+12)%12 + 1
	for _, a := range tables.SpecialAspects[src.Planet] {
		if a == count {
			return true
		}
	}
	return false
}

// HouseActivationIndex computes the HAI of one house (1..12) from occupant
// strengths, the house lord's condition, and Saturn pressure.
// transitSaturnSign, when known, exaggerates the pressure during Sade Sati
// (transit Saturn within one sign of the natal Moon); pass nil if no transit
// data is available.
func HouseActivationIndex(bc *models.BirthChart, house int, poi map[models.Planet]Index, transitSaturnSign *models.Sign) Index {
	factors := make([]models.Factor, 0, 4)
	score := houseBase

	for i := range bc.Planets {
		pos := &bc.Planets[i]
		if pos.House != house {
			continue
		}
		occ := poi[pos.Planet].Score * 0.35
		if tables.NaturalBenefics[pos.Planet] {
			occ += 0.3
		}
		factors = append(factors, models.Factor{
			Name:         fmt.Sprintf("%s occupies house %d", pos.PlanetName, house),
			Value:        poi[pos.Planet].Score,
			Contribution: occ,
		})
		score += occ
	}

	houseSign := bc.HouseSigns[house-1]
	lord := tables.SignLords[houseSign]
	lordIdx := poi[lord]
	lordContrib := lordIdx.Score * 0.5
	factors = append(factors, models.Factor{
		Name:         fmt.Sprintf("house %d lord %s strength", house, lord),
		Value:        lordIdx.Score,
		Contribution: lordContrib,
	})
	score += lordContrib

	if lordPos := bc.Position(lord); lordPos != nil {
		placement := 0.0
		switch {
		case tables.KendraHouses[lordPos.House] || tables.TrikonaHouses[lordPos.House]:
			placement = 0.75
		case lordPos.House == 6 || lordPos.House == 8 || lordPos.House == 12:
			placement = -0.75
		}
		if placement != 0 {
			factors = append(factors, models.Factor{
				Name:         fmt.Sprintf("house %d lord placed in house %d", house, lordPos.House),
				Value:        float64(lordPos.House),
				Contribution: placement,
			})
			score += placement
		}
	}

	if pressure := saturnPressureOn(bc, house, transitSaturnSign); pressure != 0 {
		factors = append(factors, models.Factor{
			Name:         fmt.Sprintf("saturn pressure on house %d", house),
			Value:        math.Abs(pressure),
			Contribution: pressure,
		})
		score += pressure
	}

	score = clamp10(score)
	return Index{Score: score, Grade: Grade(score), Factors: factors}
}

// saturnPressureOn returns the (negative) Saturn adjustment for a house.
// Occupancy or aspect applies the base pressure; an active Sade Sati
// configuration doubles it.
func saturnPressureOn(bc *models.BirthChart, house int, transitSaturnSign *models.Sign) float64 {
	sat := bc.Position(models.Saturn)
	if sat == nil {
		return 0
	}
	if sat.House != house && !AspectsHouse(sat, house) {
		return 0
	}
	pressure := -saturnPressure
	if transitSaturnSign != nil && SadeSatiActive(bc.MoonSign, *transitSaturnSign) {
		pressure *= 2
	}
	return pressure
}

// SadeSatiActive reports whether transit Saturn sits within one sign of the
// natal Moon, the Sade Sati configuration.
func SadeSatiActive(moonSign, transitSaturnSign models.Sign) bool {
	d := (int(transitSaturnSign) - int(moonSign) + 12) % 12
	return d == 0 || d == 1 || d == 11
}

func clamp10(v float64) float64 {
	return math.Max(0, math.Min(10, v))
}
