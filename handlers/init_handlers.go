package handlers

import (
	"app/engine"
	"app/ephemeris"
)

// Package-level collaborators, wired once at startup from main.
var (
	scoringEngine engine.ScoringEngine
	provider      ephemeris.Provider
)

// Setup injects the scoring engine and ephemeris provider the handlers use.
func Setup(e engine.ScoringEngine, p ephemeris.Provider) {
	scoringEngine = e
	provider = p
}
