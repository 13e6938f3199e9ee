package models

import "time"

// ModuleName identifies one of the six scoring modules.
type ModuleName string

const (
	ModuleDashaBhukti ModuleName = "dasha_bhukti"
	ModuleHousePower  ModuleName = "house_power"
	ModulePlanetPower ModuleName = "planet_power"
	ModuleTransit     ModuleName = "transit"
	ModuleYogaDosha   ModuleName = "yoga_dosha"
	ModuleNavamsa     ModuleName = "navamsa"
)

// ModuleNames is the canonical ordering of the six modules, used for weight
// maps, the trace, and deterministic iteration.
var ModuleNames = []ModuleName{
	ModuleDashaBhukti, ModuleHousePower, ModulePlanetPower,
	ModuleTransit, ModuleYogaDosha, ModuleNavamsa,
}

// Factor is one named, signed contribution inside a module score.
type Factor struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	Contribution float64 `json:"contribution"` // signed effect on the module's raw score
}

// ModuleScore is the outcome of one scoring module.
type ModuleScore struct {
	Name       ModuleName `json:"name"`
	Raw        float64    `json:"raw"`        // 0..10
	Normalized float64    `json:"normalized"` // 0..100
	Weight     float64    `json:"weight"`     // post-redistribution weight actually applied
	Contribution float64  `json:"contribution"` // Raw × Weight × 10, the module's share of the final score
	Degraded   bool       `json:"degraded"`
	Factors    []Factor   `json:"factors"`
}

// TimeModeProfile is the weight vector and multiplier set selected for a query.
type TimeModeProfile struct {
	Mode                TimeMode               `json:"mode"`
	Weights             map[ModuleName]float64 `json:"weights"` // sums to 1.0 ± 1e-6
	NavamsaFactor       float64                `json:"navamsa_factor"`       // multiplier already folded into Weights; kept for the trace
	RetrogradeSoftening float64                `json:"retrograde_softening"` // 1.0 = full penalty, 0.7 = softened 30%
	TransitWindowDays   float64                `json:"transit_window_days"`
	SmoothingPower      float64                `json:"smoothing_power"` // month_wise daily smoothing exponent
	MunthaAdjust        bool                   `json:"muntha_adjust"`   // year_overlay Varshaphal adjustment
}

// TraceStep is one record in the reasoning trace. The sequence of steps is
// sufficient to reconstruct the final score by hand.
type TraceStep struct {
	Step    int                    `json:"step"`
	Name    string                 `json:"name"`
	Formula string                 `json:"formula"`
	Inputs  map[string]interface{} `json:"inputs"`
	Output  interface{}            `json:"output"`
}

// ConfidenceBreakdown itemizes the confidence blend.
type ConfidenceBreakdown struct {
	DataCompleteness float64 `json:"data_completeness"` // 0..100
	ModelAgreement   float64 `json:"model_agreement"`   // 0..100
	ChartQuality     float64 `json:"chart_quality"`     // 0..100
}

// Confidence is the overall confidence score with its component breakdown.
type Confidence struct {
	Score     int                 `json:"score"` // 0..100
	Breakdown ConfidenceBreakdown `json:"breakdown"`
}

// PredictionRequest is the full input accepted by the scoring engine.
// Language affects labels only, never scoring math.
type PredictionRequest struct {
	Name       string   `json:"name"`
	BirthDate  string   `json:"birthDate"` // ISO date, e.g. 1990-06-15
	BirthTime  string   `json:"birthTime"` // HH:MM, empty if unknown
	BirthPlace string   `json:"birthPlace"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	TargetDate string   `json:"targetDate"` // ISO date
	LifeArea   LifeArea `json:"lifeArea"`
	ModeHint   ModeHint `json:"modeHint,omitempty"`
	Language   Language `json:"language"`
}

// PredictionResult is the engine's complete answer for one query. Built once,
// never mutated, returned to the caller.
type PredictionResult struct {
	FinalScore         int           `json:"final_score"` // 0..100
	TimeMode           TimeMode      `json:"time_mode"`
	EngineVersion      string        `json:"engine_version"`
	LifeArea           LifeArea      `json:"life_area"`
	TargetDate         time.Time     `json:"target_date"`
	ModuleScores       []ModuleScore `json:"module_scores"`
	Confidence         Confidence    `json:"confidence"`
	ReasoningTrace     []TraceStep   `json:"reasoning_trace"`
	TopPositiveDrivers []Factor      `json:"top_positive_drivers"`
	TopNegativeDrivers []Factor      `json:"top_negative_drivers"`
}
