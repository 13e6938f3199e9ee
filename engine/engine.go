// Package engine turns a birth chart, a dasha snapshot and the strength
// indices into the final prediction score. Six scoring modules run fork-join,
// mode-specific weights combine them, and every numeric step lands in the
// reasoning trace so a reader can reconstruct the score by hand.
package engine

import (
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"app/chart"
	"app/dasha"
	"app/ephemeris"
	"app/models"
	"app/strength"
	"app/timemode"
	"app/utils"
)

// ScoringEngine is the single entry point the transport layer talks to.
// Implementations are stateless: reference is injected so a prediction is a
// pure function of (request, reference date).
type ScoringEngine interface {
	Version() string
	Predict(req models.PredictionRequest, reference time.Time) (*models.PredictionResult, error)
}

// Config carries the collaborators an engine needs.
type Config struct {
	Provider          ephemeris.Provider
	PastThresholdDays float64
}

type factory func(Config) ScoringEngine

var registry = map[string]factory{
	VersionTimeAdaptive: func(cfg Config) ScoringEngine { return &timeAdaptiveEngine{cfg: cfg} },
	VersionClassic:      func(cfg Config) ScoringEngine { return &classicEngine{inner: timeAdaptiveEngine{cfg: cfg}} },
}

// Engine version tags. Selection is explicit configuration; there is no
// availability probing.
const (
	VersionTimeAdaptive = "time_adaptive"
	VersionClassic      = "classic"
)

// New returns the engine registered under version.
func New(version string, cfg Config) (ScoringEngine, error) {
	f, ok := registry[version]
	if !ok {
		return nil, fmt.Errorf("%w: unknown engine version %q", models.ErrConfigInconsistent, version)
	}
	if cfg.PastThresholdDays <= 0 {
		cfg.PastThresholdDays = timemode.DefaultPastThresholdDays
	}
	return f(cfg), nil
}

// Versions lists the registered engine versions.
func Versions() []string {
	out := make([]string, 0, len(registry))
	for v := range registry {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// timeAdaptiveEngine is the full six-module engine with time-mode weighting.
type timeAdaptiveEngine struct {
	cfg Config
}

func (e *timeAdaptiveEngine) Version() string { return VersionTimeAdaptive }

func (e *timeAdaptiveEngine) Predict(req models.PredictionRequest, reference time.Time) (*models.PredictionResult, error) {
	return e.predict(req, reference, nil)
}

// classicEngine scores with the baseline weight vector regardless of time
// mode. Kept as the explicitly selectable fallback strategy.
type classicEngine struct {
	inner timeAdaptiveEngine
}

func (e *classicEngine) Version() string { return VersionClassic }

func (e *classicEngine) Predict(req models.PredictionRequest, reference time.Time) (*models.PredictionResult, error) {
	res, err := e.inner.predict(req, reference, classicProfile)
	if err != nil {
		return nil, err
	}
	res.EngineVersion = VersionClassic
	return res, nil
}

// classicProfile flattens a profile to the baseline weights and neutral
// multipliers, keeping only the classified mode tag.
func classicProfile(p models.TimeModeProfile) (models.TimeModeProfile, error) {
	base, err := timemode.Profile(models.ModePresent)
	if err != nil {
		return models.TimeModeProfile{}, err
	}
	base.Mode = p.Mode
	base.TransitWindowDays = p.TransitWindowDays
	return base, nil
}

// parsedRequest is the validated, time-resolved form of a request.
type parsedRequest struct {
	birthUTC  time.Time
	targetUTC time.Time
	timeKnown bool
	area      models.LifeArea
	hint      models.ModeHint
}

func (e *timeAdaptiveEngine) parse(req models.PredictionRequest) (parsedRequest, error) {
	var out parsedRequest

	if req.BirthDate == "" {
		return out, &models.InvalidBirthChartError{Reason: "birthDate is required"}
	}
	if req.TargetDate == "" {
		return out, &models.InvalidBirthChartError{Reason: "targetDate is required"}
	}
	if req.Latitude < -90 || req.Latitude > 90 || req.Longitude < -180 || req.Longitude > 180 {
		return out, &models.InvalidBirthChartError{Reason: "latitude/longitude out of range"}
	}
	if !req.LifeArea.Valid() {
		return out, &models.InvalidBirthChartError{Reason: fmt.Sprintf("unknown life area %q", req.LifeArea)}
	}
	if !req.ModeHint.Valid() {
		return out, &models.InvalidBirthChartError{Reason: fmt.Sprintf("unknown mode hint %q", req.ModeHint)}
	}

	birthDate, err := utils.ParseDate(req.BirthDate)
	if err != nil {
		return out, &models.InvalidBirthChartError{Reason: fmt.Sprintf("bad birthDate: %v", err)}
	}
	targetDate, err := utils.ParseDate(req.TargetDate)
	if err != nil {
		return out, &models.InvalidBirthChartError{Reason: fmt.Sprintf("bad targetDate: %v", err)}
	}

	// Unknown birth time falls back to local noon; the chart is still built
	// but confidence takes the chart-quality hit.
	hour, minute := 12, 0
	out.timeKnown = false
	if req.BirthTime != "" {
		hour, minute, err = utils.ParseClock(req.BirthTime)
		if err != nil {
			return out, &models.InvalidBirthChartError{Reason: fmt.Sprintf("bad birthTime: %v", err)}
		}
		out.timeKnown = true
	}

	local := time.Date(birthDate.Year(), birthDate.Month(), birthDate.Day(), hour, minute, 0, 0, time.UTC)
	out.birthUTC = local.Add(-longitudeOffset(req.Longitude))
	out.targetUTC = time.Date(targetDate.Year(), targetDate.Month(), targetDate.Day(), 12, 0, 0, 0, time.UTC)
	out.area = req.LifeArea
	out.hint = req.ModeHint
	return out, nil
}

// longitudeOffset approximates the birth place's clock offset from its
// longitude (15° per hour). Good to the half-zone the source data carries.
func longitudeOffset(lon float64) time.Duration {
	return time.Duration(lon / 15 * float64(time.Hour))
}

func (e *timeAdaptiveEngine) predict(req models.PredictionRequest, reference time.Time, override func(models.TimeModeProfile) (models.TimeModeProfile, error)) (*models.PredictionResult, error) {
	parsed, err := e.parse(req)
	if err != nil {
		return nil, err
	}

	bc, err := chart.Build(e.cfg.Provider, parsed.birthUTC, req.Latitude, req.Longitude, parsed.timeKnown)
	if err != nil {
		return nil, err
	}

	snap, err := dasha.SnapshotAt(bc, parsed.birthUTC, parsed.targetUTC)
	if err != nil {
		return nil, err
	}

	mode := timemode.ClassifyWithThreshold(parsed.targetUTC, reference, parsed.hint, e.cfg.PastThresholdDays)
	profile, err := timemode.Profile(mode)
	if err != nil {
		return nil, err
	}
	if override != nil {
		profile, err = override(profile)
		if err != nil {
			return nil, err
		}
	}

	// Transit context. month_wise evaluates strength at mid-month; failures
	// degrade the transit module instead of killing the request.
	evalDate := parsed.targetUTC
	if mode == models.ModeMonthWise {
		evalDate = midMonth(parsed.targetUTC)
	}
	transits, transitErr := e.cfg.Provider.PlanetPositions(ephemeris.JulianDay(evalDate))

	var transitSaturn *models.Sign
	if transitErr == nil {
		for _, t := range transits {
			if t.Planet == models.Saturn {
				s := chart.SignOf(t.Longitude)
				transitSaturn = &s
			}
		}
	}

	poi := strength.AllPOI(bc, profile.RetrogradeSoftening)

	in := &moduleInput{
		engine:        e,
		bc:            bc,
		snap:          snap,
		area:          parsed.area,
		profile:       profile,
		poi:           poi,
		transits:      transits,
		transitErr:    transitErr,
		transitSaturn: transitSaturn,
		birthUTC:      parsed.birthUTC,
		targetUTC:     parsed.targetUTC,
	}

	scores := runModules(in)

	weights, redistributed, err := applyDegradation(profile.Weights, scores)
	if err != nil {
		return nil, err
	}

	finalRaw := 0.0
	for i := range scores {
		scores[i].Weight = weights[scores[i].Name]
		scores[i].Contribution = scores[i].Raw * scores[i].Weight * 10
		scores[i].Normalized = scores[i].Raw * 10
		finalRaw += scores[i].Contribution
	}
	final := int(math.Round(math.Max(0, math.Min(100, finalRaw))))

	conf := buildConfidence(scores, bc.TimeKnown)
	positive, negative := topDrivers(scores)
	trace := buildTrace(bc, snap, profile, scores, redistributed, finalRaw, final, conf)

	return &models.PredictionResult{
		FinalScore:         final,
		TimeMode:           mode,
		EngineVersion:      VersionTimeAdaptive,
		LifeArea:           parsed.area,
		TargetDate:         parsed.targetUTC,
		ModuleScores:       scores,
		Confidence:         conf,
		ReasoningTrace:     trace,
		TopPositiveDrivers: positive,
		TopNegativeDrivers: negative,
	}, nil
}

// applyDegradation zeroes the weights of degraded modules and scales the
// healthy weights proportionally so the vector still sums to 1.0. Returns the
// adjusted map and the list of degraded module names for the trace.
func applyDegradation(base map[models.ModuleName]float64, scores []models.ModuleScore) (map[models.ModuleName]float64, []models.ModuleName, error) {
	weights := make(map[models.ModuleName]float64, len(base))
	for k, v := range base {
		weights[k] = v
	}

	var degraded []models.ModuleName
	lost := 0.0
	for _, s := range scores {
		if s.Degraded {
			degraded = append(degraded, s.Name)
			lost += weights[s.Name]
			weights[s.Name] = 0
		}
	}
	if len(degraded) == 0 {
		return weights, nil, timemode.Validate(weights)
	}
	if lost >= 1.0-1e-9 {
		return nil, nil, fmt.Errorf("%w: every module degraded, nothing to score", models.ErrConfigInconsistent)
	}
	scale := 1.0 / (1.0 - lost)
	for name, w := range weights {
		weights[name] = w * scale
	}
	return weights, degraded, timemode.Validate(weights)
}

// moduleScorers maps each module to its scorer; models.ModuleNames fixes the
// evaluation slot order.
var moduleScorers = map[models.ModuleName]func(*moduleInput) models.ModuleScore{
	models.ModuleDashaBhukti: scoreDashaBhukti,
	models.ModuleHousePower:  scoreHousePower,
	models.ModulePlanetPower: scorePlanetPower,
	models.ModuleTransit:     scoreTransit,
	models.ModuleYogaDosha:   scoreYogaDosha,
	models.ModuleNavamsa:     scoreNavamsa,
}

// runModules evaluates the six modules fork-join into the canonical
// models.ModuleNames order. They are independent given the shared immutable
// input, so scheduling between them does not matter.
func runModules(in *moduleInput) []models.ModuleScore {
	out := make([]models.ModuleScore, len(models.ModuleNames))
	var wg sync.WaitGroup
	for i, name := range models.ModuleNames {
		wg.Add(1)
		go func(i int, fn func(*moduleInput) models.ModuleScore) {
			defer wg.Done()
			out[i] = fn(in)
		}(i, moduleScorers[name])
	}
	wg.Wait()
	return out
}

func midMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 15, 12, 0, 0, 0, time.UTC)
}

func clampRaw(v float64) float64 {
	return math.Max(0, math.Min(10, v))
}
