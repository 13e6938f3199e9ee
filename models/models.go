package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// --- JWT & Auth ---

type JwtClaims struct {
	ClientID string `json:"clientId"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	ClientID string `json:"clientId"`
	Password string `json:"password"`
}

// --- Enums ---

// Planet identifies one of the nine grahas.
type Planet int

const (
	Sun Planet = iota
	Moon
	Mars
	Mercury
	Jupiter
	Venus
	Saturn
	Rahu
	Ketu
	PlanetCount = 9
)

var planetNames = [PlanetCount]string{
	"Sun", "Moon", "Mars", "Mercury", "Jupiter", "Venus", "Saturn", "Rahu", "Ketu",
}

func (p Planet) String() string {
	if p < 0 || int(p) >= PlanetCount {
		return "Unknown"
	}
	return planetNames[p]
}

// Valid reports whether p is one of the nine grahas.
func (p Planet) Valid() bool { return p >= 0 && int(p) < PlanetCount }

// Sign is a zodiac sign index, 0 (Aries) .. 11 (Pisces).
type Sign int

var signNames = [12]string{
	"Aries", "Taurus", "Gemini", "Cancer", "Leo", "Virgo",
	"Libra", "Scorpio", "Sagittarius", "Capricorn", "Aquarius", "Pisces",
}

func (s Sign) String() string {
	if s < 0 || s > 11 {
		return "Unknown"
	}
	return signNames[s]
}

// Number returns the 1-based sign number used on the wire.
func (s Sign) Number() int { return int(s) + 1 }

// Dignity is the classical placement dignity of a planet in a sign.
type Dignity string

const (
	DignityExalted      Dignity = "exalted"
	DignityMoolatrikona Dignity = "moolatrikona"
	DignityOwn          Dignity = "own"
	DignityFriend       Dignity = "friend"
	DignityNeutral      Dignity = "neutral"
	DignityEnemy        Dignity = "enemy"
	DignityDebilitated  Dignity = "debilitated"
)

// TimeMode is the temporal classification of a query relative to "now".
type TimeMode string

const (
	ModePastAnalysis     TimeMode = "past_analysis"
	ModeFuturePrediction TimeMode = "future_prediction"
	ModeMonthWise        TimeMode = "month_wise"
	ModeYearOverlay      TimeMode = "year_overlay"
	ModePresent          TimeMode = "present"
)

// LifeArea selects which houses and significators a prediction focuses on.
type LifeArea string

const (
	AreaGeneral       LifeArea = "general"
	AreaCareer        LifeArea = "career"
	AreaFinance       LifeArea = "finance"
	AreaHealth        LifeArea = "health"
	AreaRelationships LifeArea = "relationships"
)

func (a LifeArea) Valid() bool {
	switch a {
	case AreaGeneral, AreaCareer, AreaFinance, AreaHealth, AreaRelationships:
		return true
	}
	return false
}

// ModeHint is an optional caller hint for time-mode classification.
type ModeHint string

const (
	HintNone    ModeHint = ""
	HintPast    ModeHint = "past"
	HintFuture  ModeHint = "future"
	HintMonthly ModeHint = "monthly"
	HintYearly  ModeHint = "yearly"
)

func (h ModeHint) Valid() bool {
	switch h {
	case HintNone, HintPast, HintFuture, HintMonthly, HintYearly:
		return true
	}
	return false
}

// Language selects the label set for downstream display. It never affects scoring.
type Language string

const (
	LangTamil   Language = "ta"
	LangEnglish Language = "en"
	LangKannada Language = "kn"
)

func (l Language) Valid() bool {
	switch l {
	case LangTamil, LangEnglish, LangKannada:
		return true
	}
	return false
}

// --- Chart types ---

// PlanetPosition is the fully derived placement of one planet in a birth chart.
// It is built once by the chart builder and never mutated afterwards.
type PlanetPosition struct {
	Planet       Planet  `json:"planet"`
	PlanetName   string  `json:"planet_name"`
	Longitude    float64 `json:"longitude"` // sidereal, [0,360)
	Sign         Sign    `json:"sign"`      // D1 sign
	SignNumber   int     `json:"sign_number"`
	DegreeInSign float64 `json:"degree_in_sign"` // [0,30)
	House        int     `json:"house"`          // 1..12, whole-sign from lagna
	Nakshatra    int     `json:"nakshatra"`      // 0..26
	Pada         int     `json:"pada"`           // 1..4
	NavamsaSign  Sign    `json:"navamsa_sign"`   // D9 sign
	Retrograde   bool    `json:"retrograde"`
	Combust      bool    `json:"combust"`
	Dignity      Dignity `json:"dignity"`
	Vargottama   bool    `json:"vargottama"`
}

// BirthChart is the immutable D1/D9 projection of a birth instant.
type BirthChart struct {
	LagnaSign     Sign             `json:"lagna_sign"`
	LagnaDegree   float64          `json:"lagna_degree"` // sidereal longitude of the ascendant, [0,360)
	MoonSign      Sign             `json:"moon_sign"`
	MoonNakshatra int              `json:"moon_nakshatra"`
	MoonPada      int              `json:"moon_pada"`
	Planets       []PlanetPosition `json:"planets"`        // exactly nine, Sun..Ketu order
	HouseSigns    [12]Sign         `json:"house_signs"`    // D1 house -> sign (index 0 = house 1)
	NavamsaHouses [12]Sign         `json:"navamsa_houses"` // D9 house -> sign
	BirthJD       float64          `json:"birth_jd"`       // Julian Day of birth (UT)
	TimeKnown     bool             `json:"time_known"`     // exact birth time supplied by caller
	Latitude      float64          `json:"latitude"`
	Longitude     float64          `json:"longitude"`
}

// Position returns the placement of p, or nil if the chart lacks it.
func (bc *BirthChart) Position(p Planet) *PlanetPosition {
	for i := range bc.Planets {
		if bc.Planets[i].Planet == p {
			return &bc.Planets[i]
		}
	}
	return nil
}

// --- Dasha types ---

// DashaPeriod is one planetary period in the Vimshottari timeline. Levels nest:
// a Mahadasha contains nine Antardashas, each of which contains nine
// Pratyantardashas, all partitioning the parent span exactly.
type DashaPeriod struct {
	Lord     Planet    `json:"lord"`
	LordName string    `json:"lord_name"`
	Level    int       `json:"level"` // 1 = Mahadasha, 2 = Antardasha, 3 = Pratyantardasha
	Start    time.Time `json:"start"`
	End      time.Time `json:"end"`
	Years    float64   `json:"years"`
	Cycle    int       `json:"cycle"` // 0 for the natal 120-year cycle, 1 for the first wrap, ...
}

// Contains reports whether t falls inside the period's half-open span [Start, End).
func (p DashaPeriod) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// DashaSnapshot is the MD/AD/PD chain active at a single instant.
type DashaSnapshot struct {
	Mahadasha       DashaPeriod `json:"mahadasha"`
	Antardasha      DashaPeriod `json:"antardasha"`
	Pratyantardasha DashaPeriod `json:"pratyantardasha"`
}
