package engine

import (
	"fmt"
	"math"
	"time"

	"app/chart"
	"app/ephemeris"
	"app/models"
	"app/strength"
	"app/tables"
)

// moduleInput is the shared immutable input every module scorer reads. No
// scorer writes to it, which is what lets them run in parallel.
type moduleInput struct {
	engine        *timeAdaptiveEngine
	bc            *models.BirthChart
	snap          models.DashaSnapshot
	area          models.LifeArea
	profile       models.TimeModeProfile
	poi           map[models.Planet]strength.Index
	transits      []ephemeris.RawPosition
	transitErr    error
	transitSaturn *models.Sign
	birthUTC      time.Time
	targetUTC     time.Time
}

// scoreDashaBhukti rates the running MD/AD/PD chain: lord strengths weighted
// by level, plus a relevance bonus when a period lord rules or occupies one
// of the life area's houses.
func scoreDashaBhukti(in *moduleInput) models.ModuleScore {
	ms := models.ModuleScore{Name: models.ModuleDashaBhukti}

	chain := []struct {
		label  string
		period models.DashaPeriod
		weight float64
	}{
		{"mahadasha", in.snap.Mahadasha, 0.5},
		{"antardasha", in.snap.Antardasha, 0.3},
		{"pratyantardasha", in.snap.Pratyantardasha, 0.2},
	}

	raw := 0.0
	for _, c := range chain {
		lordScore := in.poi[c.period.Lord].Score
		contrib := lordScore * c.weight
		ms.Factors = append(ms.Factors, models.Factor{
			Name:         fmt.Sprintf("%s lord %s strength", c.label, c.period.LordName),
			Value:        lordScore,
			Contribution: contrib,
		})
		raw += contrib
	}

	if bonus := areaRelevance(in.bc, in.snap.Mahadasha.Lord, in.area); bonus != 0 {
		ms.Factors = append(ms.Factors, models.Factor{
			Name:         fmt.Sprintf("mahadasha lord %s activates %s houses", in.snap.Mahadasha.LordName, in.area),
			Value:        bonus,
			Contribution: bonus,
		})
		raw += bonus
	}
	if bonus := areaRelevance(in.bc, in.snap.Antardasha.Lord, in.area) / 2; bonus != 0 {
		ms.Factors = append(ms.Factors, models.Factor{
			Name:         fmt.Sprintf("antardasha lord %s activates %s houses", in.snap.Antardasha.LordName, in.area),
			Value:        bonus,
			Contribution: bonus,
		})
		raw += bonus
	}

	ms.Raw = clampRaw(raw)
	return ms
}

// areaRelevance returns +1.0 when the lord rules or occupies one of the life
// area's houses, -0.5 when it sits in a dusthana instead.
func areaRelevance(bc *models.BirthChart, lord models.Planet, area models.LifeArea) float64 {
	pos := bc.Position(lord)
	if pos == nil {
		return 0
	}
	for _, h := range tables.LifeAreaHouses[area] {
		if pos.House == h {
			return 1.0
		}
		if tables.SignLords[bc.HouseSigns[h-1]] == lord {
			return 1.0
		}
	}
	if pos.House == 6 || pos.House == 8 || pos.House == 12 {
		return -0.5
	}
	return 0
}

// scoreHousePower averages the HAI of the life area's houses.
func scoreHousePower(in *moduleInput) models.ModuleScore {
	ms := models.ModuleScore{Name: models.ModuleHousePower}

	houses := tables.LifeAreaHouses[in.area]
	total := 0.0
	for _, h := range houses {
		idx := strength.HouseActivationIndex(in.bc, h, in.poi, in.transitSaturn)
		contrib := idx.Score / float64(len(houses))
		ms.Factors = append(ms.Factors, models.Factor{
			Name:         fmt.Sprintf("house %d activation (grade %s)", h, idx.Grade),
			Value:        idx.Score,
			Contribution: contrib,
		})
		total += contrib
	}

	ms.Raw = clampRaw(total)
	return ms
}

// scorePlanetPower averages the POI of the life area's significators.
func scorePlanetPower(in *moduleInput) models.ModuleScore {
	ms := models.ModuleScore{Name: models.ModulePlanetPower}

	sigs := tables.LifeAreaSignificators[in.area]
	total := 0.0
	for _, p := range sigs {
		idx := in.poi[p]
		contrib := idx.Score / float64(len(sigs))
		ms.Factors = append(ms.Factors, models.Factor{
			Name:         fmt.Sprintf("significator %s operating index (grade %s)", p, idx.Grade),
			Value:        idx.Score,
			Contribution: contrib,
		})
		total += contrib
	}

	ms.Raw = clampRaw(total)
	return ms
}

// scoreTransit rates the gochara picture at the target date: each transiting
// planet's house from the natal Moon against the classical favorable sets,
// Jupiter and Saturn counted double. month_wise power-means daily sub-scores
// across the month; year_overlay folds in the Muntha adjustment. When transit
// data is unavailable the module reports degraded and its weight is
// redistributed by the aggregator.
func scoreTransit(in *moduleInput) models.ModuleScore {
	ms := models.ModuleScore{Name: models.ModuleTransit}

	if in.transitErr != nil {
		ms.Degraded = true
		ms.Factors = append(ms.Factors, models.Factor{
			Name:         "transit data unavailable",
			Value:        0,
			Contribution: 0,
		})
		return ms
	}

	if in.profile.Mode == models.ModeMonthWise && in.profile.SmoothingPower > 0 {
		return scoreTransitMonth(in)
	}

	raw, factors := gocharaScore(in.bc, in.transits)
	ms.Factors = append(ms.Factors, factors...)

	if window := int(in.profile.TransitWindowDays); window > 0 {
		avg, counted := windowedGochara(in, clampRaw(raw), window)
		if counted > 1 {
			ms.Factors = append(ms.Factors, models.Factor{
				Name:         fmt.Sprintf("gochara averaged over ±%d day window (%d days)", window, counted),
				Value:        float64(counted),
				Contribution: avg - clampRaw(raw),
			})
			raw = avg
		}
	}

	if in.profile.MunthaAdjust {
		adj, f := munthaAdjustment(in.bc, in.birthUTC, in.targetUTC)
		ms.Factors = append(ms.Factors, f)
		raw += adj
	}

	ms.Raw = clampRaw(raw)
	return ms
}

// gocharaScore computes the transit sub-score for one instant's positions.
func gocharaScore(bc *models.BirthChart, transits []ephemeris.RawPosition) (float64, []models.Factor) {
	raw := 5.0
	factors := make([]models.Factor, 0, models.PlanetCount)
	for _, t := range transits {
		sign := chart.SignOf(t.Longitude)
		houseFromMoon := (int(sign)-int(bc.MoonSign)+12)%12 + 1

		favorable := false
		for _, h := range tables.GocharaFavorable[t.Planet] {
			if h == houseFromMoon {
				favorable = true
				break
			}
		}

		effect := 0.0
		switch {
		case favorable && tables.NaturalBenefics[t.Planet]:
			effect = 0.5
		case favorable:
			effect = 0.4
		case tables.NaturalBenefics[t.Planet]:
			effect = -0.3
		default:
			effect = -0.5
		}
		if t.Planet == models.Jupiter || t.Planet == models.Saturn {
			effect *= 2
		}

		factors = append(factors, models.Factor{
			Name:         fmt.Sprintf("transit %s in house %d from moon", t.Planet, houseFromMoon),
			Value:        float64(houseFromMoon),
			Contribution: effect,
		})
		raw += effect
	}
	return raw, factors
}

// windowedGochara averages the target instant's gochara sub-score with the
// days around it, per the profile's transit window. Days the provider cannot
// answer are skipped; the instant itself is already resolved.
func windowedGochara(in *moduleInput, instant float64, window int) (float64, int) {
	sum := instant
	counted := 1
	for off := -window; off <= window; off++ {
		if off == 0 {
			continue
		}
		day := in.targetUTC.AddDate(0, 0, off)
		positions, err := in.engine.cfg.Provider.PlanetPositions(ephemeris.JulianDay(day))
		if err != nil {
			continue
		}
		daily, _ := gocharaScore(in.bc, positions)
		sum += clampRaw(daily)
		counted++
	}
	return sum / float64(counted), counted
}

// scoreTransitMonth averages daily gochara sub-scores across the target month
// under the profile's smoothing power. Days the provider cannot answer are
// skipped; if no day resolves, the module degrades.
func scoreTransitMonth(in *moduleInput) models.ModuleScore {
	ms := models.ModuleScore{Name: models.ModuleTransit}
	p := in.profile.SmoothingPower

	year, month, _ := in.targetUTC.Date()
	days := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()

	sum := 0.0
	counted := 0
	for d := 1; d <= days; d++ {
		instant := time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
		positions, err := in.engine.cfg.Provider.PlanetPositions(ephemeris.JulianDay(instant))
		if err != nil {
			continue
		}
		daily, _ := gocharaScore(in.bc, positions)
		sum += math.Pow(clampRaw(daily), p)
		counted++
	}

	if counted == 0 {
		ms.Degraded = true
		ms.Factors = append(ms.Factors, models.Factor{
			Name: "transit data unavailable for entire month", Value: 0, Contribution: 0,
		})
		return ms
	}

	smoothed := math.Pow(sum/float64(counted), 1/p)
	ms.Raw = clampRaw(smoothed)
	ms.Factors = append(ms.Factors, models.Factor{
		Name:         fmt.Sprintf("month-wise gochara over %d days (smoothing %.2f)", counted, p),
		Value:        float64(counted),
		Contribution: ms.Raw,
	})
	return ms
}

// munthaAdjustment applies the Varshaphal Muntha: the lagna sign progressed
// one sign per completed year of age. A Muntha in a kendra or trikona lifts
// the year; one in a dusthana drags it.
func munthaAdjustment(bc *models.BirthChart, birth, target time.Time) (float64, models.Factor) {
	age := int(target.Sub(birth).Hours() / 24 / 365.25)
	munthaSign := models.Sign((int(bc.LagnaSign) + age) % 12)
	house := chart.HouseOf(munthaSign, bc.LagnaSign)

	adj := 0.0
	switch {
	case tables.KendraHouses[house] || tables.TrikonaHouses[house]:
		adj = 0.75
	case house == 6 || house == 8 || house == 12:
		adj = -0.5
	}
	return adj, models.Factor{
		Name:         fmt.Sprintf("muntha in house %d (%s)", house, munthaSign),
		Value:        float64(house),
		Contribution: adj,
	}
}

// scoreYogaDosha checks the classical combinations the product reports on.
// Sade Sati needs transit data; when that is missing the check is skipped
// without degrading the module, since the natal yogas still resolve.
func scoreYogaDosha(in *moduleInput) models.ModuleScore {
	ms := models.ModuleScore{Name: models.ModuleYogaDosha}
	raw := 5.0

	add := func(name string, contrib float64) {
		ms.Factors = append(ms.Factors, models.Factor{Name: name, Value: math.Abs(contrib), Contribution: contrib})
		raw += contrib
	}

	bc := in.bc
	moon := bc.Position(models.Moon)
	jup := bc.Position(models.Jupiter)
	sun := bc.Position(models.Sun)
	mer := bc.Position(models.Mercury)
	mars := bc.Position(models.Mars)

	// Gajakesari: Jupiter in a kendra from the Moon.
	if moon != nil && jup != nil {
		d := (int(jup.Sign)-int(moon.Sign)+12)%12 + 1
		if d == 1 || d == 4 || d == 7 || d == 10 {
			add("gajakesari yoga (jupiter in kendra from moon)", 1.2)
		}
	}

	// Budha-Aditya: Sun and Mercury conjunct, Mercury not combust.
	if sun != nil && mer != nil && sun.Sign == mer.Sign && !mer.Combust {
		add("budha-aditya yoga (sun-mercury conjunction)", 0.8)
	}

	// Chandra-Mangala: Moon and Mars conjunct.
	if moon != nil && mars != nil && moon.Sign == mars.Sign {
		add("chandra-mangala yoga (moon-mars conjunction)", 0.6)
	}

	// Raja yoga (simplified): lords of the 9th and 10th conjunct.
	lord9 := tables.SignLords[bc.HouseSigns[8]]
	lord10 := tables.SignLords[bc.HouseSigns[9]]
	if lord9 != lord10 {
		p9, p10 := bc.Position(lord9), bc.Position(lord10)
		if p9 != nil && p10 != nil && p9.Sign == p10.Sign {
			add("raja yoga (9th and 10th lords conjunct)", 1.5)
		}
	}

	// Kuja dosha: Mars in 1, 2, 4, 7, 8 or 12 from the lagna. Weighs heavier
	// on relationship questions.
	if mars != nil {
		switch mars.House {
		case 1, 2, 4, 7, 8, 12:
			penalty := -0.8
			if in.area == models.AreaRelationships {
				penalty = -1.2
			}
			add(fmt.Sprintf("kuja dosha (mars in house %d)", mars.House), penalty)
		}
	}

	// Kemadruma: no planet (other than the Sun) in the 2nd or 12th from the Moon.
	if moon != nil && kemadruma(bc, moon.Sign) {
		add("kemadruma dosha (moon unsupported)", -1.0)
	}

	// Sade Sati from the transit picture.
	if in.transitSaturn != nil && strength.SadeSatiActive(bc.MoonSign, *in.transitSaturn) {
		add("sade sati active (transit saturn near natal moon)", -1.0)
	}

	ms.Raw = clampRaw(raw)
	return ms
}

func kemadruma(bc *models.BirthChart, moonSign models.Sign) bool {
	second := models.Sign((int(moonSign) + 1) % 12)
	twelfth := models.Sign((int(moonSign) + 11) % 12)
	for i := range bc.Planets {
		p := &bc.Planets[i]
		if p.Planet == models.Moon || p.Planet == models.Sun {
			continue
		}
		if p.Planet == models.Rahu || p.Planet == models.Ketu {
			continue
		}
		if p.Sign == second || p.Sign == twelfth {
			return false
		}
	}
	return true
}

// scoreNavamsa cross-validates the D1 picture against the D9 chart: D9
// dignities of the area significators, vargottama reinforcement, and the D9
// lagna lord's operating index.
func scoreNavamsa(in *moduleInput) models.ModuleScore {
	ms := models.ModuleScore{Name: models.ModuleNavamsa}
	bc := in.bc

	sigs := tables.LifeAreaSignificators[in.area]
	total := 0.0
	for _, p := range sigs {
		pos := bc.Position(p)
		if pos == nil {
			continue
		}
		d9Dignity := chart.SignDignity(p, pos.NavamsaSign)
		score := tables.DignityScores[d9Dignity]
		contrib := score / float64(len(sigs)) * 0.7
		ms.Factors = append(ms.Factors, models.Factor{
			Name:         fmt.Sprintf("%s navamsa dignity (%s in %s)", p, d9Dignity, pos.NavamsaSign),
			Value:        score,
			Contribution: contrib,
		})
		total += contrib
	}

	vargottamas := 0
	for i := range bc.Planets {
		if bc.Planets[i].Vargottama {
			vargottamas++
		}
	}
	if vargottamas > 0 {
		bonus := math.Min(1.5, float64(vargottamas)*0.5)
		ms.Factors = append(ms.Factors, models.Factor{
			Name:         fmt.Sprintf("%d vargottama planet(s)", vargottamas),
			Value:        float64(vargottamas),
			Contribution: bonus,
		})
		total += bonus
	}

	d9Lord := tables.SignLords[bc.NavamsaHouses[0]]
	lordIdx := in.poi[d9Lord]
	lordContrib := lordIdx.Score * 0.3
	ms.Factors = append(ms.Factors, models.Factor{
		Name:         fmt.Sprintf("navamsa lagna lord %s strength", d9Lord),
		Value:        lordIdx.Score,
		Contribution: lordContrib,
	})
	total += lordContrib

	ms.Raw = clampRaw(total)
	return ms
}
