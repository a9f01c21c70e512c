package report

import (
	"energy-mix-sim/internal/model"
	"energy-mix-sim/internal/sim"
)

// SourceYearSummary is the per-source slice of a YearRecord.
type SourceYearSummary struct {
	Name string `json:"name"`
	// EnergyMWh is delivered energy over the year.
	EnergyMWh float64 `json:"energy_mwh"`
	// OperatingHourFraction is the share of the year's hours the source ran.
	OperatingHourFraction float64 `json:"operating_hour_fraction"`
	TotalCost             float64 `json:"total_cost"`
	UnitCost              float64 `json:"unit_cost"`
	EmissionsTonnes       float64 `json:"emissions_tonnes"`
}

// YearRecord is one year of scenario-level output.
type YearRecord struct {
	Year int `json:"year"`
	// EnergyReqMWh is the total demanded energy.
	EnergyReqMWh float64 `json:"energy_req_mwh"`
	// EnergyDeliveredMWh is the total energy all sources delivered.
	EnergyDeliveredMWh float64 `json:"energy_delivered_mwh"`
	// FulfilmentPct is the share of hours fully served, percent.
	FulfilmentPct float64 `json:"fulfilment_pct"`
	// CriticalInterruptions counts outage events: maximal runs of hours with
	// unserved demand or unabsorbed sudden drops. An hour contributes to at
	// most one event even when both occur.
	CriticalInterruptions int `json:"critical_interruptions"`
	// SheddingEvents counts hours with non-critical load shed.
	SheddingEvents int     `json:"shedding_events"`
	TotalCost      float64 `json:"total_cost"`
	UnitCost       float64 `json:"unit_cost"`

	Sources []SourceYearSummary `json:"sources"`
}

// KPIs are the scenario-level key performance indicators.
type KPIs struct {
	// AvgUnitCost is the mean yearly unit cost, currency per kWh.
	AvgUnitCost float64 `json:"avg_unit_cost"`
	// AvgFulfilmentPct is the mean yearly fulfilment ratio, percent.
	AvgFulfilmentPct float64 `json:"avg_fulfilment_pct"`
	// CriticalInterruptions is the total over the horizon.
	CriticalInterruptions int `json:"critical_interruptions"`
	// InterruptionLossM is the estimated monetary loss from interruptions,
	// in millions of currency units.
	InterruptionLossM float64 `json:"interruption_loss_m"`
	// SheddingEvents is the total over the horizon.
	SheddingEvents int `json:"shedding_events"`
}

// Result bundles everything the rollup produces for one scenario.
type Result struct {
	Scenario string             `json:"scenario"`
	Years    []YearRecord       `json:"years"`
	KPIs     KPIs               `json:"kpis"`
	Sources  []*SourceAggregate `json:"-"`
}

// Rollup collapses a completed scenario into per-source aggregates, yearly
// records and scenario KPIs. Pure over the final state: repeated calls yield
// identical records.
func Rollup(sc *sim.Scenario) *Result {
	res := &Result{Scenario: sc.Name}
	for _, src := range sc.Sources {
		res.Sources = append(res.Sources, AggregateSource(src))
	}

	for y := 1; y <= model.Years; y++ {
		yr := YearRecord{Year: y}
		hours, served := 0, 0
		prevInterrupted := false
		for m := 1; m <= model.MonthsPerYear; m++ {
			for d := 1; d <= model.DaysInMonth(m); d++ {
				for h := 0; h < model.HoursPerDay; h++ {
					hr := sc.ResultAt(y, m, d, h)
					hours++
					yr.EnergyReqMWh += hr.PowerReq
					interrupted := hr.UnservedPowerReq > sim.Tolerance || hr.UnservedPowerDrop > sim.Tolerance
					if hr.UnservedPowerReq <= sim.Tolerance {
						served++
					}
					// Contiguous interrupted hours are one outage event.
					if interrupted && !prevInterrupted {
						yr.CriticalInterruptions++
					}
					prevInterrupted = interrupted
					if hr.LoadShed > sim.Tolerance {
						yr.SheddingEvents++
					}
				}
			}
		}
		if hours > 0 {
			yr.FulfilmentPct = float64(served) / float64(hours) * 100
		}

		for i, src := range sc.Sources {
			ys := res.Sources[i].Years[y-1]
			yr.EnergyDeliveredMWh += ys.EnergyMWh
			yr.TotalCost += ys.TotalCost
			yr.Sources = append(yr.Sources, SourceYearSummary{
				Name:                  src.Name,
				EnergyMWh:             ys.EnergyMWh,
				OperatingHourFraction: float64(ys.OperationHours) / float64(hours),
				TotalCost:             ys.TotalCost,
				UnitCost:              ys.UnitCost,
				EmissionsTonnes:       ys.EmissionsTonnes,
			})
		}
		if yr.EnergyDeliveredMWh > 0 {
			yr.UnitCost = yr.TotalCost / (yr.EnergyDeliveredMWh * 1000)
		}
		res.Years = append(res.Years, yr)
	}

	res.KPIs = computeKPIs(res.Years, sc.Project.Site.LossDuringFailure)
	return res
}

func computeKPIs(years []YearRecord, lossPerInterruption float64) KPIs {
	var k KPIs
	if len(years) == 0 {
		return k
	}
	for _, yr := range years {
		k.AvgUnitCost += yr.UnitCost
		k.AvgFulfilmentPct += yr.FulfilmentPct
		k.CriticalInterruptions += yr.CriticalInterruptions
		k.SheddingEvents += yr.SheddingEvents
	}
	n := float64(len(years))
	k.AvgUnitCost /= n
	k.AvgFulfilmentPct /= n
	k.InterruptionLossM = float64(k.CriticalInterruptions) * lossPerInterruption / 1e6
	return k
}
