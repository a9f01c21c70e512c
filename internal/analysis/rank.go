package analysis

import (
	"math"
	"sort"

	"energy-mix-sim/internal/report"
)

// Gates a portfolio must clear before cost is worth comparing: near-full
// energy fulfilment and at most one critical interruption over the horizon.
const (
	MinFulfilmentPct         = 99.0
	MaxCriticalInterruptions = 1
)

// Score weights delivered-energy cost against interruption losses. Lower is
// better; portfolios failing the gates score +Inf and sort last.
func Score(k report.KPIs) float64 {
	if k.AvgFulfilmentPct < MinFulfilmentPct || k.CriticalInterruptions > MaxCriticalInterruptions {
		return math.Inf(1)
	}
	return k.AvgUnitCost*0.9 + k.InterruptionLossM*0.1
}

// RankedScenario is one scenario's position in a comparison.
type RankedScenario struct {
	Scenario string
	KPIs     report.KPIs
	Score    float64
	Feasible bool
}

// Rank orders completed scenario results best-first: feasible portfolios by
// ascending score, infeasible ones after them by fulfilment then
// interruption count.
func Rank(results []*report.Result) []RankedScenario {
	out := make([]RankedScenario, 0, len(results))
	for _, r := range results {
		s := Score(r.KPIs)
		out = append(out, RankedScenario{
			Scenario: r.Scenario,
			KPIs:     r.KPIs,
			Score:    s,
			Feasible: !math.IsInf(s, 1),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Feasible != b.Feasible {
			return a.Feasible
		}
		if a.Feasible {
			return a.Score < b.Score
		}
		if a.KPIs.AvgFulfilmentPct != b.KPIs.AvgFulfilmentPct {
			return a.KPIs.AvgFulfilmentPct > b.KPIs.AvgFulfilmentPct
		}
		return a.KPIs.CriticalInterruptions < b.KPIs.CriticalInterruptions
	})
	return out
}
