package engine

import (
	"fmt"
	"math"
	"sort"

	"app/models"
)

// Confidence blend weights. Completeness dominates: a degraded module costs
// more certainty than mild disagreement between healthy modules.
const (
	confCompleteness = 0.45
	confAgreement    = 0.35
	confChartQuality = 0.20

	// Flat deduction per degraded module, larger than the whole agreement
	// component: a module dropping out can never raise the blend, however
	// the surviving scores line up.
	confDegradedPenalty = confAgreement*100 + 1
)

// buildConfidence blends data completeness, inter-module agreement and chart
// quality into the 0-100 confidence score.
func buildConfidence(scores []models.ModuleScore, timeKnown bool) models.Confidence {
	healthy := 0
	normalized := make([]float64, 0, len(scores))
	for _, s := range scores {
		if !s.Degraded {
			healthy++
			normalized = append(normalized, s.Normalized)
		}
	}

	completeness := float64(healthy) / float64(len(scores)) * 100

	// Agreement: low variance across the healthy normalized scores means the
	// independent projections point the same way. A 50-point spread on the
	// 0-100 scale zeroes this component.
	agreement := 0.0
	if len(normalized) > 1 {
		agreement = math.Max(0, 1-stddev(normalized)/50) * 100
	}

	quality := 55.0
	if timeKnown {
		quality = 95.0
	}

	score := confCompleteness*completeness + confAgreement*agreement + confChartQuality*quality
	score -= confDegradedPenalty * float64(len(scores)-healthy)
	return models.Confidence{
		Score: int(math.Round(math.Max(0, math.Min(100, score)))),
		Breakdown: models.ConfidenceBreakdown{
			DataCompleteness: round2(completeness),
			ModelAgreement:   round2(agreement),
			ChartQuality:     quality,
		},
	}
}

func stddev(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		variance += (v - mean) * (v - mean)
	}
	variance /= float64(len(values))
	return math.Sqrt(variance)
}

// topDrivers collects every factor across the modules and returns the three
// strongest positive and three strongest negative, ordered by |contribution|.
func topDrivers(scores []models.ModuleScore) (positive, negative []models.Factor) {
	var all []models.Factor
	for _, s := range scores {
		all = append(all, s.Factors...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return math.Abs(all[i].Contribution) > math.Abs(all[j].Contribution)
	})
	for _, f := range all {
		switch {
		case f.Contribution > 0 && len(positive) < 3:
			positive = append(positive, f)
		case f.Contribution < 0 && len(negative) < 3:
			negative = append(negative, f)
		}
	}
	return positive, negative
}

// buildTrace emits the ordered calculation record: chart summary, dasha
// chain, weight profile, one step per module, the redistribution step when
// modules degraded, the final weighted sum, and the confidence blend. The
// steps carry enough numbers to recompute the score by hand.
func buildTrace(
	bc *models.BirthChart,
	snap models.DashaSnapshot,
	profile models.TimeModeProfile,
	scores []models.ModuleScore,
	redistributed []models.ModuleName,
	finalRaw float64,
	final int,
	conf models.Confidence,
) []models.TraceStep {
	steps := make([]models.TraceStep, 0, len(scores)+5)
	n := 0
	next := func(name, formula string, inputs map[string]interface{}, output interface{}) {
		n++
		steps = append(steps, models.TraceStep{Step: n, Name: name, Formula: formula, Inputs: inputs, Output: output})
	}

	next("birth_chart", "lagna from cusp 1; whole-sign houses; D9 by 3°20' subdivision",
		map[string]interface{}{
			"lagna_sign":     bc.LagnaSign.String(),
			"lagna_degree":   round2(bc.LagnaDegree),
			"moon_sign":      bc.MoonSign.String(),
			"moon_nakshatra": bc.MoonNakshatra,
			"planets":        len(bc.Planets),
		},
		fmt.Sprintf("%s lagna, moon in %s", bc.LagnaSign, bc.MoonSign))

	next("dasha_chain", "vimshottari: (elapsed_days mod 120y) -> (cycle, period, offset)",
		map[string]interface{}{
			"mahadasha":       snap.Mahadasha.LordName,
			"antardasha":      snap.Antardasha.LordName,
			"pratyantardasha": snap.Pratyantardasha.LordName,
			"cycle":           snap.Mahadasha.Cycle,
		},
		fmt.Sprintf("%s/%s/%s", snap.Mahadasha.LordName, snap.Antardasha.LordName, snap.Pratyantardasha.LordName))

	next("weight_profile", "mode adjustments applied to base weights, renormalized to 1.0",
		map[string]interface{}{
			"mode":                 string(profile.Mode),
			"weights":              roundWeights(profile.Weights),
			"navamsa_factor":       profile.NavamsaFactor,
			"retrograde_softening": profile.RetrogradeSoftening,
		},
		string(profile.Mode))

	for _, s := range scores {
		inputs := map[string]interface{}{"factors": s.Factors}
		output := fmt.Sprintf("raw %.2f", s.Raw)
		if s.Degraded {
			inputs["degraded"] = true
			output = "degraded"
		}
		next("module_"+string(s.Name), "raw = clamp(sum(factor contributions), 0, 10)", inputs, output)
	}

	if len(redistributed) > 0 {
		names := make([]string, len(redistributed))
		for i, m := range redistributed {
			names[i] = string(m)
		}
		next("weight_redistribution", "degraded weights shared proportionally among healthy modules",
			map[string]interface{}{"degraded_modules": names},
			roundWeights(weightsOf(scores)))
	}

	next("final_score", "round(clamp(sum(raw_i * weight_i) * 10, 0, 100))",
		map[string]interface{}{"weighted_sum": round2(finalRaw)},
		final)

	degradedCount := 0
	for _, s := range scores {
		if s.Degraded {
			degradedCount++
		}
	}
	next("confidence", "0.45*completeness + 0.35*agreement + 0.20*chart_quality - 36*degraded_modules",
		map[string]interface{}{
			"completeness":     conf.Breakdown.DataCompleteness,
			"agreement":        conf.Breakdown.ModelAgreement,
			"chart_quality":    conf.Breakdown.ChartQuality,
			"degraded_modules": degradedCount,
		},
		conf.Score)

	return steps
}

func weightsOf(scores []models.ModuleScore) map[models.ModuleName]float64 {
	out := make(map[models.ModuleName]float64, len(scores))
	for _, s := range scores {
		out[s.Name] = s.Weight
	}
	return out
}

func roundWeights(w map[models.ModuleName]float64) map[string]float64 {
	out := make(map[string]float64, len(w))
	for k, v := range w {
		out[string(k)] = math.Round(v*1e4) / 1e4
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
