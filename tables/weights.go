package tables

import "app/models"

// DefaultWeights is the baseline weight vector over the six scoring modules.
// Per-mode adjustments below multiply individual entries before the classifier
// renormalizes the vector to sum to 1.0.
//
// These constants (and the mode multipliers) come from the product's tuning
// history, not from a derivation; treat them as configuration pending
// domain-expert validation, not as ground truth.
var DefaultWeights = map[models.ModuleName]float64{
	models.ModuleDashaBhukti: 0.25,
	models.ModuleHousePower:  0.18,
	models.ModulePlanetPower: 0.12,
	models.ModuleTransit:     0.20,
	models.ModuleYogaDosha:   0.12,
	models.ModuleNavamsa:     0.13,
}

// ModeAdjustment is the multiplier set a time mode applies on top of
// DefaultWeights.
type ModeAdjustment struct {
	TransitWeight       float64 // absolute replacement for the transit weight; 0 = keep default
	TransitFactor       float64 // multiplier on the transit weight; 0 = keep
	NavamsaFactor       float64 // multiplier on the navamsa weight; 0 = keep
	RetrogradeSoftening float64 // 1.0 = full retrograde penalty
	TransitWindowDays   float64
	SmoothingPower      float64
	MunthaAdjust        bool
}

// ModeAdjustments maps each time mode to its adjustment set.
var ModeAdjustments = map[models.TimeMode]ModeAdjustment{
	models.ModePastAnalysis: {
		// Past events lean on natal dasha rather than transit extrapolation.
		TransitWeight:       0.28,
		NavamsaFactor:       0.80,
		RetrogradeSoftening: 1.0,
		TransitWindowDays:   1,
	},
	models.ModePresent: {
		RetrogradeSoftening: 1.0,
		TransitWindowDays:   1,
	},
	models.ModeMonthWise: {
		RetrogradeSoftening: 1.0,
		TransitWindowDays:   15,
		SmoothingPower:      0.92,
	},
	models.ModeYearOverlay: {
		TransitFactor:       0.75,
		RetrogradeSoftening: 1.0,
		TransitWindowDays:   183,
		MunthaAdjust:        true,
	},
	models.ModeFuturePrediction: {
		NavamsaFactor:       1.15,
		RetrogradeSoftening: 0.70,
		TransitWindowDays:   3,
	},
}
