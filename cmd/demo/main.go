package main

import (
	"fmt"

	"energy-mix-sim/internal/model"
	"energy-mix-sim/internal/report"
	"energy-mix-sim/internal/sim"
)

// The demo runs a mixed portfolio (solar + captive gas + PPA + BESS) against
// a synthetic project: flat 8 MW demand and a bell-shaped solar day. No
// input files needed.
func main() {
	project := demoProject()
	sources := demoPortfolio()

	params := sim.Params{
		SpinningReservePerc: 10,
		BessNonEmergencyUse: sim.BessNonEmergencySequential,
		BessChargeHours:     2,
		ChargeRatioNight:    60,
		Seed:                7,
	}

	sc, err := sim.NewScenario("demo", project, params, sources)
	if err != nil {
		panic(err)
	}
	if err := sc.Simulate(); err != nil {
		panic(err)
	}

	res := report.Rollup(sc)
	fmt.Printf("%-5s %-14s %-12s %-12s %-8s %-8s\n",
		"year", "energy-req", "fulfilment%", "unit-cost", "intrpts", "shed")
	for _, yr := range res.Years {
		fmt.Printf("%-5d %-14.0f %-12.2f %-12.4f %-8d %-8d\n",
			yr.Year, yr.EnergyReqMWh, yr.FulfilmentPct, yr.UnitCost,
			yr.CriticalInterruptions, yr.SheddingEvents)
	}
	k := res.KPIs
	fmt.Printf("\nKPIs: avg unit cost=%.4f /kWh, avg fulfilment=%.2f%%, interruptions=%d, loss=%.2fM, shedding events=%d\n",
		k.AvgUnitCost, k.AvgFulfilmentPct, k.CriticalInterruptions, k.InterruptionLossM, k.SheddingEvents)
}

func demoProject() *model.Project {
	p := &model.Project{}
	p.Site.LossDuringFailure = 250000

	var load, solar [model.HoursPerDay]float64
	for h := 0; h < model.HoursPerDay; h++ {
		load[h] = 8
		// Daylight between 07:00 and 18:00, peaking at noon.
		if h >= 7 && h <= 18 {
			mid := 12.5
			dist := float64(h) - mid
			if dist < 0 {
				dist = -dist
			}
			solar[h] = 5 * (1 - dist/6)
			if solar[h] < 0 {
				solar[h] = 0
			}
		}
	}

	for m := 1; m <= model.MonthsPerYear; m++ {
		for d := 1; d <= model.DaysInMonth(m); d++ {
			p.SetSolarDay(m, d, solar)
			for y := 1; y <= model.Years; y++ {
				p.SetLoadDay(y, m, d, load)
			}
		}
	}
	for y := 1; y <= model.Years; y++ {
		p.LoadProjection[y-1] = model.LoadPoint{CriticalLoad: 5, TotalLoad: 8}
	}
	return p
}

func demoPortfolio() []*model.Source {
	solarType := &model.SourceType{
		Name:              "SOLAR",
		Kind:              model.KindRenewable,
		Finance:           model.FinanceCaptive,
		AnnualDegradation: 0.005,
		SolarSuddenDrops:  1,
		CapitalCostBaseline: 900000,
		FixedOpexBaseline:   12000,
		UsefulLife:          25,
		InflationRate:       0.05,
	}
	gasType := &model.SourceType{
		Name:                "GAS_GEN",
		Kind:                model.KindThermal,
		Finance:             model.FinanceCaptive,
		Fuel:                "gas",
		AnnualDegradation:   0.01,
		NumAnnualFails:      4,
		DowntimePerFail:     3,
		BlockLoadAcceptance: 40,
		MinLoading:          30,
		MaxLoading:          100,
		CapitalCostBaseline: 650000,
		FuelCost:            9,
		FuelConsumption:     0.28,
		FixedOpexBaseline:   18000,
		VarOpexBaseline:     2.5,
		UsefulLife:          20,
		InflationRate:       0.06,
		CO2Emission:         450,
	}
	ppaType := &model.SourceType{
		Name:             "PPA_FEED",
		Kind:             model.KindPPAFeed,
		Finance:          model.FinancePPA,
		NumAnnualFails:   6,
		DowntimePerFail:  2,
		BlockLoadAcceptance: 20,
		TariffFixed:      45000,
		TariffVar:        95,
		MinAnnualOfftake: 10000,
		InflationRate:    0.04,
		CO2Emission:      380,
	}
	bessType := &model.SourceType{
		Name:                "BESS",
		Kind:                model.KindBESS,
		Finance:             model.FinanceCaptive,
		BlockLoadAcceptance: 100,
		CapitalCostBaseline: 400000,
		FixedOpexBaseline:   6000,
		UsefulLife:          12,
		InflationRate:       0.05,
	}

	mk := func(name string, t *model.SourceType, cfg model.SourceConfig) *model.Source {
		src, err := model.NewSource(name, t, cfg)
		if err != nil {
			panic(err)
		}
		return src
	}

	return []*model.Source{
		mk("solar-1", solarType, model.SourceConfig{
			StartYear: 1, EndYear: 12, Rating: 5, Unit: "MW", Priority: 1,
		}),
		mk("gas-1", gasType, model.SourceConfig{
			StartYear: 1, EndYear: 12, Rating: 6, Unit: "MW", Priority: 2,
			SpinningReserve: 50, MinLoading: 30, MaxLoading: 100,
		}),
		mk("gas-2", gasType, model.SourceConfig{
			StartYear: 3, EndYear: 12, Rating: 6, Unit: "MW", Priority: 2,
			SpinningReserve: 50, MinLoading: 30, MaxLoading: 100,
		}),
		mk("ppa-1", ppaType, model.SourceConfig{
			StartYear: 1, EndYear: 12, Rating: 4, Unit: "MW", Priority: 3,
		}),
		mk("bess-1", bessType, model.SourceConfig{
			StartYear: 2, EndYear: 12, Rating: 4, Unit: "MWh", Priority: 4,
		}),
	}
}
