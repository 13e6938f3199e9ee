// Package dasha computes the Vimshottari Mahadasha/Antardasha/Pratyantardasha
// timeline. The 120-year cycle is modelled as nine canonical period templates
// rotated to start at the birth Moon's nakshatra lord; locating the current
// period is a pure modulo mapping over elapsed days, so queries many cycles
// past the natal one never re-derive start dates step by step.
package dasha

import (
	"math"
	"time"

	"app/chart"
	"app/models"
	"app/tables"
)

const (
	// YearDays is the Vimshottari year length in days.
	YearDays = 365.25
	// CycleYears is the full Vimshottari cycle.
	CycleYears = 120.0
	// CycleDays is the cycle length in days.
	CycleDays = CycleYears * YearDays
)

// template is one canonical period of the cycle.
type template struct {
	Lord  models.Planet
	Years float64
}

// rotation returns the nine templates starting from the lord at startIdx in
// the canonical order, wrapping after Mercury back to Ketu.
func rotation(startIdx int) [9]template {
	var out [9]template
	for i := 0; i < 9; i++ {
		lord := tables.DashaOrder[(startIdx+i)%9]
		out[i] = template{Lord: lord, Years: tables.DashaYears[lord]}
	}
	return out
}

// Anchor returns the virtual start instant of the first Mahadasha: birth
// minus the portion of the opening period already elapsed, which the Moon's
// progress through its nakshatra determines.
func Anchor(bc *models.BirthChart, birth time.Time) (time.Time, error) {
	moon := bc.Position(models.Moon)
	if moon == nil {
		return time.Time{}, &models.InvalidBirthChartError{Reason: "moon position required for dasha timeline"}
	}
	frac := chart.NakshatraFraction(moon.Longitude)
	lord := tables.NakshatraLord(moon.Nakshatra)
	elapsedDays := frac * tables.DashaYears[lord] * YearDays
	return birth.Add(-duration(elapsedDays)), nil
}

// Locate maps days elapsed since the anchor to (cycle, period index, offset
// days within the period). Pure arithmetic; negative elapsed days resolve to
// negative cycles.
func Locate(elapsedDays float64, order [9]template) (cycle int, index int, offsetDays float64) {
	cycle = int(math.Floor(elapsedDays / CycleDays))
	off := elapsedDays - float64(cycle)*CycleDays
	for i, t := range order {
		span := t.Years * YearDays
		if off < span || i == 8 {
			return cycle, i, off
		}
		off -= span
	}
	return cycle, 8, off
}

// MahadashaTimeline returns the nine Mahadashas of one cycle (cycle 0 begins
// with the balance period running at birth).
func MahadashaTimeline(bc *models.BirthChart, birth time.Time, cycle int) ([]models.DashaPeriod, error) {
	anchor, err := Anchor(bc, birth)
	if err != nil {
		return nil, err
	}
	moon := bc.Position(models.Moon)
	order := rotation(moon.Nakshatra % 9)

	periods := make([]models.DashaPeriod, 0, 9)
	start := anchor.Add(duration(float64(cycle) * CycleDays))
	for _, t := range order {
		end := start.Add(duration(t.Years * YearDays))
		periods = append(periods, models.DashaPeriod{
			Lord:     t.Lord,
			LordName: t.Lord.String(),
			Level:    1,
			Start:    start,
			End:      end,
			Years:    t.Years,
			Cycle:    cycle,
		})
		start = end
	}
	return periods, nil
}

// SnapshotAt returns the MD/AD/PD chain active at target. Exactly one chain
// is current for any instant; period spans are half-open [start, end).
func SnapshotAt(bc *models.BirthChart, birth, target time.Time) (models.DashaSnapshot, error) {
	anchor, err := Anchor(bc, birth)
	if err != nil {
		return models.DashaSnapshot{}, err
	}
	moon := bc.Position(models.Moon)
	order := rotation(moon.Nakshatra % 9)

	elapsed := target.Sub(anchor).Hours() / 24
	cycle, idx, _ := Locate(elapsed, order)

	// Mahadasha span.
	mdStart := anchor.Add(duration(float64(cycle) * CycleDays))
	for i := 0; i < idx; i++ {
		mdStart = mdStart.Add(duration(order[i].Years * YearDays))
	}
	md := models.DashaPeriod{
		Lord:     order[idx].Lord,
		LordName: order[idx].Lord.String(),
		Level:    1,
		Start:    mdStart,
		End:      mdStart.Add(duration(order[idx].Years * YearDays)),
		Years:    order[idx].Years,
		Cycle:    cycle,
	}

	ad := subPeriodAt(md, 2, target)
	pd := subPeriodAt(ad, 3, target)
	return models.DashaSnapshot{Mahadasha: md, Antardasha: ad, Pratyantardasha: pd}, nil
}

// subPeriodAt splits parent into nine proportional sub-periods starting from
// the parent's own lord and returns the one containing target. The last
// sub-period absorbs any floating-point remainder so the children partition
// the parent exactly.
func subPeriodAt(parent models.DashaPeriod, level int, target time.Time) models.DashaPeriod {
	startIdx := orderIndex(parent.Lord)
	start := parent.Start
	for i := 0; i < 9; i++ {
		lord := tables.DashaOrder[(startIdx+i)%9]
		years := tables.DashaYears[lord] / CycleYears * parent.Years
		end := start.Add(duration(years * YearDays))
		if i == 8 {
			end = parent.End
		}
		p := models.DashaPeriod{
			Lord:     lord,
			LordName: lord.String(),
			Level:    level,
			Start:    start,
			End:      end,
			Years:    years,
			Cycle:    parent.Cycle,
		}
		if p.Contains(target) || i == 8 {
			return p
		}
		start = end
	}
	// Unreachable: the nine children cover the parent span.
	return parent
}

func orderIndex(p models.Planet) int {
	for i, l := range tables.DashaOrder {
		if l == p {
			return i
		}
	}
	return 0
}

func duration(days float64) time.Duration {
	return time.Duration(days * 24 * float64(time.Hour))
}
