package engine

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"app/ephemeris"
	"app/models"
)

// Chennai birth, the standing worked example across the suite.
func chennaiRequest() models.PredictionRequest {
	return models.PredictionRequest{
		BirthDate:  "1990-06-15",
		BirthTime:  "08:30",
		Latitude:   13.0827,
		Longitude:  80.2707,
		TargetDate: "2020-06-15",
		LifeArea:   models.AreaCareer,
		Language:   models.LangEnglish,
	}
}

func newTestEngine(t *testing.T, version string) ScoringEngine {
	t.Helper()
	e, err := New(version, Config{Provider: ephemeris.NewMeeusProvider()})
	require.NoError(t, err)
	return e
}

var futureReference = time.Date(2020, 6, 10, 9, 0, 0, 0, time.UTC)

func TestPredictEndToEnd(t *testing.T) {
	e := newTestEngine(t, VersionTimeAdaptive)

	res, err := e.Predict(chennaiRequest(), futureReference)
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.FinalScore, 0)
	assert.LessOrEqual(t, res.FinalScore, 100)
	assert.Equal(t, models.ModeFuturePrediction, res.TimeMode)
	assert.Equal(t, VersionTimeAdaptive, res.EngineVersion)
	assert.Equal(t, models.AreaCareer, res.LifeArea)
	assert.Len(t, res.ModuleScores, 6)

	sum := 0.0
	weighted := 0.0
	for i, s := range res.ModuleScores {
		assert.Equal(t, models.ModuleNames[i], s.Name, "modules come back in canonical order")
		assert.GreaterOrEqual(t, s.Raw, 0.0)
		assert.LessOrEqual(t, s.Raw, 10.0)
		assert.False(t, s.Degraded, "module %s should be healthy in range", s.Name)
		sum += s.Weight
		weighted += s.Contribution
	}
	assert.InDelta(t, 1.0, sum, 1e-6, "applied weights must sum to 1")
	assert.Equal(t, res.FinalScore, int(weighted+0.5), "final score is the rounded weighted sum")

	assert.GreaterOrEqual(t, res.Confidence.Score, 0)
	assert.LessOrEqual(t, res.Confidence.Score, 100)
	assert.InDelta(t, 100, res.Confidence.Breakdown.DataCompleteness, 1e-9)
	assert.InDelta(t, 95, res.Confidence.Breakdown.ChartQuality, 1e-9)

	assert.GreaterOrEqual(t, len(res.ReasoningTrace), 6)
	assert.Equal(t, "birth_chart", res.ReasoningTrace[0].Name)
	last := res.ReasoningTrace[len(res.ReasoningTrace)-1]
	assert.Equal(t, "confidence", last.Name)
	for i, step := range res.ReasoningTrace {
		assert.Equal(t, i+1, step.Step, "trace steps are numbered consecutively")
		assert.NotEmpty(t, step.Formula)
	}

	assert.LessOrEqual(t, len(res.TopPositiveDrivers), 3)
	assert.LessOrEqual(t, len(res.TopNegativeDrivers), 3)
	for _, f := range res.TopPositiveDrivers {
		assert.Greater(t, f.Contribution, 0.0)
	}
	for _, f := range res.TopNegativeDrivers {
		assert.Less(t, f.Contribution, 0.0)
	}
}

func TestPredictIsDeterministic(t *testing.T) {
	e := newTestEngine(t, VersionTimeAdaptive)
	req := chennaiRequest()

	first, err := e.Predict(req, futureReference)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := e.Predict(req, futureReference)
		require.NoError(t, err)
		assert.Equal(t, first.FinalScore, again.FinalScore)
		assert.Equal(t, first.TimeMode, again.TimeMode)
		assert.Equal(t, first.Confidence, again.Confidence)
		require.Len(t, again.ModuleScores, len(first.ModuleScores))
		for j := range first.ModuleScores {
			assert.Equal(t, first.ModuleScores[j].Name, again.ModuleScores[j].Name)
			assert.InDelta(t, first.ModuleScores[j].Raw, again.ModuleScores[j].Raw, 1e-12)
			assert.InDelta(t, first.ModuleScores[j].Weight, again.ModuleScores[j].Weight, 1e-12)
		}
	}
}

func TestPastAnalysisAppliesPinnedTransitWeight(t *testing.T) {
	e := newTestEngine(t, VersionTimeAdaptive)
	req := chennaiRequest()
	req.TargetDate = "2015-06-15"

	res, err := e.Predict(req, futureReference)
	require.NoError(t, err)
	assert.Equal(t, models.ModePastAnalysis, res.TimeMode)

	for _, s := range res.ModuleScores {
		if s.Name == models.ModuleTransit {
			assert.InDelta(t, 0.28, s.Weight, 1e-9)
		}
	}
}

func TestMonthWiseHint(t *testing.T) {
	e := newTestEngine(t, VersionTimeAdaptive)
	req := chennaiRequest()
	req.TargetDate = "2020-08-01"
	req.ModeHint = models.HintMonthly

	res, err := e.Predict(req, futureReference)
	require.NoError(t, err)
	assert.Equal(t, models.ModeMonthWise, res.TimeMode)
}

func TestYearOverlayHint(t *testing.T) {
	e := newTestEngine(t, VersionTimeAdaptive)
	req := chennaiRequest()
	req.TargetDate = "2021-06-15"
	req.ModeHint = models.HintYearly

	res, err := e.Predict(req, futureReference)
	require.NoError(t, err)
	assert.Equal(t, models.ModeYearOverlay, res.TimeMode)
}

func TestTransitDegradesOutsideEphemerisRange(t *testing.T) {
	e := newTestEngine(t, VersionTimeAdaptive)
	req := chennaiRequest()
	req.TargetDate = "2405-06-15" // beyond the supported ephemeris range

	res, err := e.Predict(req, futureReference)
	require.NoError(t, err, "transit failure degrades the module, not the request")

	var transit *models.ModuleScore
	sum := 0.0
	for i := range res.ModuleScores {
		sum += res.ModuleScores[i].Weight
		if res.ModuleScores[i].Name == models.ModuleTransit {
			transit = &res.ModuleScores[i]
		}
	}
	require.NotNil(t, transit)
	assert.True(t, transit.Degraded)
	assert.Zero(t, transit.Weight, "degraded module carries no weight")
	assert.InDelta(t, 1.0, sum, 1e-6, "redistributed weights still sum to 1")

	assert.Less(t, res.Confidence.Breakdown.DataCompleteness, 100.0)

	found := false
	for _, step := range res.ReasoningTrace {
		if step.Name == "weight_redistribution" {
			found = true
		}
	}
	assert.True(t, found, "redistribution must appear in the trace")
}

func TestClassicEngineIgnoresModeWeights(t *testing.T) {
	classic := newTestEngine(t, VersionClassic)
	req := chennaiRequest()
	req.TargetDate = "2015-06-15" // past_analysis territory

	res, err := classic.Predict(req, futureReference)
	require.NoError(t, err)

	assert.Equal(t, VersionClassic, res.EngineVersion)
	assert.Equal(t, models.ModePastAnalysis, res.TimeMode, "classification still runs")
	for _, s := range res.ModuleScores {
		if s.Name == models.ModuleTransit {
			assert.InDelta(t, 0.20, s.Weight, 1e-9, "classic keeps the baseline transit weight")
		}
	}
}

func TestNewRejectsUnknownVersion(t *testing.T) {
	_, err := New("psychic", Config{Provider: ephemeris.NewMeeusProvider()})
	assert.ErrorIs(t, err, models.ErrConfigInconsistent)
}

func TestVersions(t *testing.T) {
	assert.Equal(t, []string{VersionClassic, VersionTimeAdaptive}, Versions())
}

func TestParseValidation(t *testing.T) {
	e := &timeAdaptiveEngine{}
	cases := []struct {
		name   string
		mutate func(*models.PredictionRequest)
	}{
		{"missing birth date", func(r *models.PredictionRequest) { r.BirthDate = "" }},
		{"missing target date", func(r *models.PredictionRequest) { r.TargetDate = "" }},
		{"bad latitude", func(r *models.PredictionRequest) { r.Latitude = 91 }},
		{"bad longitude", func(r *models.PredictionRequest) { r.Longitude = -181 }},
		{"unknown life area", func(r *models.PredictionRequest) { r.LifeArea = "luck" }},
		{"garbage birth date", func(r *models.PredictionRequest) { r.BirthDate = "yesterday" }},
		{"garbage birth time", func(r *models.PredictionRequest) { r.BirthTime = "25:00" }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := chennaiRequest()
			c.mutate(&req)
			_, err := e.parse(req)
			assert.ErrorIs(t, err, models.ErrInvalidBirthChart)
		})
	}
}

func TestParseUnknownBirthTimeDefaultsToNoon(t *testing.T) {
	e := &timeAdaptiveEngine{}
	req := chennaiRequest()
	req.BirthTime = ""

	parsed, err := e.parse(req)
	require.NoError(t, err)
	assert.False(t, parsed.timeKnown)

	// Local noon shifted back by the longitude offset.
	wantUTC := time.Date(1990, 6, 15, 12, 0, 0, 0, time.UTC).Add(-longitudeOffset(req.Longitude))
	assert.Equal(t, wantUTC, parsed.birthUTC)
}

func TestLongitudeOffset(t *testing.T) {
	assert.Equal(t, time.Duration(0), longitudeOffset(0))
	assert.InDelta(t, 5.351, longitudeOffset(80.2707).Hours(), 0.01)
	assert.InDelta(t, -5.0, longitudeOffset(-75).Hours(), 1e-9)
}

func TestUnknownBirthTimeLowersConfidence(t *testing.T) {
	e := newTestEngine(t, VersionTimeAdaptive)

	known, err := e.Predict(chennaiRequest(), futureReference)
	require.NoError(t, err)

	req := chennaiRequest()
	req.BirthTime = ""
	unknown, err := e.Predict(req, futureReference)
	require.NoError(t, err)

	assert.InDelta(t, 55, unknown.Confidence.Breakdown.ChartQuality, 1e-9)
	assert.Less(t, unknown.Confidence.Breakdown.ChartQuality, known.Confidence.Breakdown.ChartQuality)
}

func TestApplyDegradation(t *testing.T) {
	base := map[models.ModuleName]float64{
		models.ModuleDashaBhukti: 0.25, models.ModuleHousePower: 0.18,
		models.ModulePlanetPower: 0.12, models.ModuleTransit: 0.20,
		models.ModuleYogaDosha: 0.12, models.ModuleNavamsa: 0.13,
	}
	scores := []models.ModuleScore{
		{Name: models.ModuleDashaBhukti}, {Name: models.ModuleHousePower},
		{Name: models.ModulePlanetPower}, {Name: models.ModuleTransit, Degraded: true},
		{Name: models.ModuleYogaDosha}, {Name: models.ModuleNavamsa},
	}

	weights, degraded, err := applyDegradation(base, scores)
	require.NoError(t, err)
	assert.Equal(t, []models.ModuleName{models.ModuleTransit}, degraded)
	assert.Zero(t, weights[models.ModuleTransit])

	sum := 0.0
	for _, w := range weights {
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	assert.InDelta(t, 0.25/0.80, weights[models.ModuleDashaBhukti], 1e-9)

	// Untouched when nothing degraded.
	for i := range scores {
		scores[i].Degraded = false
	}
	weights, degraded, err = applyDegradation(base, scores)
	require.NoError(t, err)
	assert.Nil(t, degraded)
	assert.InDelta(t, 0.20, weights[models.ModuleTransit], 1e-9)
}

func TestApplyDegradationAllDegradedFails(t *testing.T) {
	base := map[models.ModuleName]float64{models.ModuleTransit: 1.0}
	scores := []models.ModuleScore{{Name: models.ModuleTransit, Degraded: true}}
	_, _, err := applyDegradation(base, scores)
	assert.ErrorIs(t, err, models.ErrConfigInconsistent)
}

func TestBuildConfidenceDegradationCostsMore(t *testing.T) {
	healthy := make([]models.ModuleScore, 6)
	for i := range healthy {
		healthy[i].Normalized = 60
	}
	full := buildConfidence(healthy, true)
	assert.Equal(t, 99, full.Score) // 0.45*100 + 0.35*100 + 0.20*95

	damaged := make([]models.ModuleScore, 6)
	copy(damaged, healthy)
	damaged[3].Degraded = true
	partial := buildConfidence(damaged, true)
	assert.Less(t, partial.Score, full.Score)
	assert.Equal(t, 56, partial.Score) // 0.45*83.33 + 0.35*100 + 0.20*95 - 36
	assert.InDelta(t, 100.0/6*5, partial.Breakdown.DataCompleteness, 0.01)
}

func TestBuildConfidenceDegradingOutlierStillLowers(t *testing.T) {
	// Losing a disagreeing module tightens the surviving scores; the flat
	// degradation penalty must outweigh that agreement gain.
	scores := []models.ModuleScore{
		{Normalized: 50}, {Normalized: 50}, {Normalized: 50},
		{Normalized: 50}, {Normalized: 50}, {Normalized: 95},
	}
	full := buildConfidence(scores, true)
	assert.Equal(t, 87, full.Score)

	scores[5].Degraded = true
	partial := buildConfidence(scores, true)
	assert.Less(t, partial.Score, full.Score)
}

func TestBuildConfidenceAgreement(t *testing.T) {
	aligned := []models.ModuleScore{{Normalized: 50}, {Normalized: 50}, {Normalized: 50}}
	spread := []models.ModuleScore{{Normalized: 10}, {Normalized: 50}, {Normalized: 90}}

	assert.Greater(t, buildConfidence(aligned, true).Score, buildConfidence(spread, true).Score)
	assert.InDelta(t, 100, buildConfidence(aligned, true).Breakdown.ModelAgreement, 1e-9)
}

// transitBlackoutProvider answers normally before the cutoff JD and fails
// after it, so the birth chart builds but target-date transits do not.
type transitBlackoutProvider struct {
	inner ephemeris.Provider
	after float64
}

func (p *transitBlackoutProvider) PlanetPositions(jd float64) ([]ephemeris.RawPosition, error) {
	if jd >= p.after {
		return nil, &models.EphemerisError{JD: jd, Reason: "no data"}
	}
	return p.inner.PlanetPositions(jd)
}

func (p *transitBlackoutProvider) PlaceHouses(jd, lat, lon float64) (ephemeris.Houses, error) {
	return p.inner.PlaceHouses(jd, lat, lon)
}

func TestForcedTransitFailureLowersConfidence(t *testing.T) {
	req := chennaiRequest()

	healthyEngine := newTestEngine(t, VersionTimeAdaptive)
	healthy, err := healthyEngine.Predict(req, futureReference)
	require.NoError(t, err)

	blackout := &transitBlackoutProvider{
		inner: ephemeris.NewMeeusProvider(),
		after: ephemeris.JulianDay(time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
	degradedEngine, err := New(VersionTimeAdaptive, Config{Provider: blackout})
	require.NoError(t, err)
	degraded, err := degradedEngine.Predict(req, futureReference)
	require.NoError(t, err)

	var transitDegraded bool
	for _, s := range degraded.ModuleScores {
		if s.Name == models.ModuleTransit {
			transitDegraded = s.Degraded
		}
	}
	assert.True(t, transitDegraded)

	// Same chart, same target, same reference: the forced failure must cost
	// overall confidence, not just the completeness component.
	assert.Less(t, degraded.Confidence.Score, healthy.Confidence.Score)
}

// countingProvider serves a fixed sky for every instant and counts position
// lookups.
type countingProvider struct {
	calls int32
}

func (p *countingProvider) PlanetPositions(jd float64) ([]ephemeris.RawPosition, error) {
	atomic.AddInt32(&p.calls, 1)
	return []ephemeris.RawPosition{
		{Planet: models.Sun, Longitude: 10},
		{Planet: models.Moon, Longitude: 46},
		{Planet: models.Mars, Longitude: 100},
		{Planet: models.Mercury, Longitude: 20},
		{Planet: models.Jupiter, Longitude: 95},
		{Planet: models.Venus, Longitude: 185},
		{Planet: models.Saturn, Longitude: 195},
		{Planet: models.Rahu, Longitude: 250, Retrograde: true},
		{Planet: models.Ketu, Longitude: 70, Retrograde: true},
	}, nil
}

func (p *countingProvider) PlaceHouses(jd, lat, lon float64) (ephemeris.Houses, error) {
	var h ephemeris.Houses
	h.Ascendant = 125
	for i := 0; i < 12; i++ {
		h.Cusps[i] = 125 + float64(i)*30
	}
	return h, nil
}

func TestTransitWindowSampling(t *testing.T) {
	reference := time.Date(2020, 6, 15, 12, 0, 0, 0, time.UTC)

	predictWith := func(targetDate string) int32 {
		p := &countingProvider{}
		e, err := New(VersionTimeAdaptive, Config{Provider: p})
		require.NoError(t, err)
		req := chennaiRequest()
		req.TargetDate = targetDate
		_, err = e.Predict(req, reference)
		require.NoError(t, err)
		return atomic.LoadInt32(&p.calls)
	}

	// One lookup for the birth chart, one for the target instant, plus two
	// per window day.
	presentCalls := predictWith("2020-06-15") // window ±1
	futureCalls := predictWith("2020-07-15")  // window ±3
	assert.Equal(t, int32(4), presentCalls)
	assert.Equal(t, int32(8), futureCalls)
}

func TestTopDrivers(t *testing.T) {
	scores := []models.ModuleScore{
		{Factors: []models.Factor{
			{Name: "a", Contribution: 3.0},
			{Name: "b", Contribution: -2.5},
			{Name: "c", Contribution: 0.1},
		}},
		{Factors: []models.Factor{
			{Name: "d", Contribution: 1.2},
			{Name: "e", Contribution: -0.4},
			{Name: "f", Contribution: 2.0},
			{Name: "g", Contribution: 0.5},
		}},
	}
	positive, negative := topDrivers(scores)

	require.Len(t, positive, 3)
	assert.Equal(t, "a", positive[0].Name)
	assert.Equal(t, "f", positive[1].Name)
	assert.Equal(t, "d", positive[2].Name)

	require.Len(t, negative, 2)
	assert.Equal(t, "b", negative[0].Name)
	assert.Equal(t, "e", negative[1].Name)
}
