// Package timemode classifies the temporal relationship between a target date
// and the reference date ("today") and selects the module weight profile for
// it. Classification is a pure function of its inputs; nothing here reads the
// wall clock.
package timemode

import (
	"fmt"
	"math"
	"time"

	"app/models"
	"app/tables"
)

// DefaultPastThresholdDays is how far behind the reference date a target must
// sit before it counts as past analysis rather than present.
const DefaultPastThresholdDays = 1.0

const weightEpsilon = 1e-6

// Classify applies the decision rules in priority order, first match wins:
//
//  1. target more than the threshold before reference    -> past_analysis
//  2. within one day of reference, no aggregation hint   -> present
//  3. monthly hint                                       -> month_wise
//  4. yearly hint                                        -> year_overlay
//  5. otherwise                                          -> future_prediction
func Classify(target, reference time.Time, hint models.ModeHint) models.TimeMode {
	return ClassifyWithThreshold(target, reference, hint, DefaultPastThresholdDays)
}

// ClassifyWithThreshold is Classify with an explicit past threshold in days.
func ClassifyWithThreshold(target, reference time.Time, hint models.ModeHint, thresholdDays float64) models.TimeMode {
	diffDays := target.Sub(reference).Hours() / 24

	if diffDays < -thresholdDays {
		return models.ModePastAnalysis
	}
	if math.Abs(diffDays) <= 1 && hint != models.HintMonthly && hint != models.HintYearly {
		return models.ModePresent
	}
	if hint == models.HintMonthly {
		return models.ModeMonthWise
	}
	if hint == models.HintYearly {
		return models.ModeYearOverlay
	}
	return models.ModeFuturePrediction
}

// Profile builds the weight profile for a mode: the baseline vector with the
// mode's adjustments applied and the result renormalized to sum to 1.0.
// A vector that fails the sum check after renormalization is a configuration
// bug and surfaces as ErrConfigInconsistent.
func Profile(mode models.TimeMode) (models.TimeModeProfile, error) {
	adj, ok := tables.ModeAdjustments[mode]
	if !ok {
		return models.TimeModeProfile{}, fmt.Errorf("%w: no adjustment set for mode %q", models.ErrConfigInconsistent, mode)
	}

	weights := make(map[models.ModuleName]float64, len(tables.DefaultWeights))
	for name, w := range tables.DefaultWeights {
		weights[name] = w
	}

	if adj.TransitFactor > 0 {
		weights[models.ModuleTransit] *= adj.TransitFactor
	}
	navFactor := 1.0
	if adj.NavamsaFactor > 0 {
		weights[models.ModuleNavamsa] *= adj.NavamsaFactor
		navFactor = adj.NavamsaFactor
	}

	// An absolute transit weight is pinned: the other five modules are
	// renormalized around it so the pinned value survives the sum-to-one
	// invariant.
	if adj.TransitWeight > 0 {
		weights[models.ModuleTransit] = adj.TransitWeight
		if err := renormalizeAround(weights, models.ModuleTransit); err != nil {
			return models.TimeModeProfile{}, err
		}
	} else if err := Renormalize(weights); err != nil {
		return models.TimeModeProfile{}, err
	}

	softening := adj.RetrogradeSoftening
	if softening == 0 {
		softening = 1.0
	}

	return models.TimeModeProfile{
		Mode:                mode,
		Weights:             weights,
		NavamsaFactor:       navFactor,
		RetrogradeSoftening: softening,
		TransitWindowDays:   adj.TransitWindowDays,
		SmoothingPower:      adj.SmoothingPower,
		MunthaAdjust:        adj.MunthaAdjust,
	}, nil
}

// renormalizeAround scales every weight except pinned so the full vector sums
// to 1.0 with the pinned weight untouched.
func renormalizeAround(weights map[models.ModuleName]float64, pinned models.ModuleName) error {
	pinnedW := weights[pinned]
	if pinnedW < 0 || pinnedW >= 1 {
		return fmt.Errorf("%w: pinned weight %.4f out of range", models.ErrConfigInconsistent, pinnedW)
	}
	rest := 0.0
	for name, w := range weights {
		if name != pinned {
			rest += w
		}
	}
	if rest <= 0 {
		return fmt.Errorf("%w: nothing to renormalize around pinned weight", models.ErrConfigInconsistent)
	}
	scale := (1 - pinnedW) / rest
	for name, w := range weights {
		if name != pinned {
			weights[name] = w * scale
		}
	}
	return Validate(weights)
}

// Renormalize scales a weight map in place so its values sum to 1.0 and
// verifies the result.
func Renormalize(weights map[models.ModuleName]float64) error {
	sum := 0.0
	for _, w := range weights {
		if w < 0 {
			return fmt.Errorf("%w: negative module weight %.4f", models.ErrConfigInconsistent, w)
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("%w: weight vector sums to zero", models.ErrConfigInconsistent)
	}
	for name := range weights {
		weights[name] /= sum
	}
	return Validate(weights)
}

// Validate checks the sum-to-one invariant without modifying the map.
func Validate(weights map[models.ModuleName]float64) error {
	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	if math.Abs(sum-1.0) > weightEpsilon {
		return fmt.Errorf("%w: weights sum to %.8f, want 1.0", models.ErrConfigInconsistent, sum)
	}
	return nil
}
