package report

import (
	"math"

	"energy-mix-sim/internal/model"
)

// DayStats is the day-level rollup of one source's hourly cells.
type DayStats struct {
	AvgPower       float64
	MinPower       float64
	MaxPower       float64
	EnergyMWh      float64
	Failures       int
	DowntimeHours  int
	OperationHours int
}

// MonthStats is the month-level rollup.
type MonthStats struct {
	EnergyMWh      float64
	Failures       int
	DowntimeHours  int
	OperationHours int
}

// YearStats is the year-level rollup plus the cost arithmetic.
type YearStats struct {
	EnergyMWh      float64
	Failures       int
	DowntimeHours  int
	OperationHours int

	FuelCost     float64
	FixedOpex    float64
	VarOpex      float64
	Depreciation float64
	PPACost      float64
	TotalCost    float64
	// UnitCost is currency per kWh delivered; zero when nothing was delivered.
	UnitCost float64
	// EmissionsTonnes is CO2 from delivered energy.
	EmissionsTonnes float64
}

// SourceAggregate collapses one source's ops tensor into day, month and year
// statistics. The day, month and year arrays are indexed by calendar
// coordinate minus one: Days[y-1][m-1][d-1], Months[y-1][m-1], Years[y-1].
type SourceAggregate struct {
	Name   string
	Days   [model.Years][model.MonthsPerYear][model.MaxDaysPerMonth]DayStats
	Months [model.Years][model.MonthsPerYear]MonthStats
	Years  [model.Years]YearStats
}

// AggregateSource is a pure function over the final ops tensor: running it
// twice yields identical statistics.
func AggregateSource(src *model.Source) *SourceAggregate {
	agg := &SourceAggregate{Name: src.Name}
	for y := 1; y <= model.Years; y++ {
		ys := &agg.Years[y-1]
		for m := 1; m <= model.MonthsPerYear; m++ {
			ms := &agg.Months[y-1][m-1]
			for d := 1; d <= model.DaysInMonth(m); d++ {
				ds := &agg.Days[y-1][m-1][d-1]
				ds.MinPower = math.Inf(1)
				var sum float64
				for h := 0; h < model.HoursPerDay; h++ {
					cell := src.At(y, m, d, h)
					sum += cell.PowerOutput
					if cell.PowerOutput < ds.MinPower {
						ds.MinPower = cell.PowerOutput
					}
					if cell.PowerOutput > ds.MaxPower {
						ds.MaxPower = cell.PowerOutput
					}
					ds.EnergyMWh += cell.EnergyOutput
					switch cell.Status {
					case model.StatusFailed:
						ds.Failures++
					case model.StatusDowntime:
						ds.DowntimeHours++
					case model.StatusOn, model.StatusCharging:
						ds.OperationHours++
					}
				}
				ds.AvgPower = sum / model.HoursPerDay
				if math.IsInf(ds.MinPower, 1) {
					ds.MinPower = 0
				}

				ms.EnergyMWh += ds.EnergyMWh
				ms.Failures += ds.Failures
				ms.DowntimeHours += ds.DowntimeHours
				ms.OperationHours += ds.OperationHours
			}
			ys.EnergyMWh += ms.EnergyMWh
			ys.Failures += ms.Failures
			ys.DowntimeHours += ms.DowntimeHours
			ys.OperationHours += ms.OperationHours
		}
		costYear(src, y, ys)
	}
	return agg
}

// costYear applies the catalogue type's financial arithmetic to one year's
// delivered energy. OPEX, fuel and tariff baselines inflate by
// (1+inflation)^(year-1); straight-line depreciation does not inflate.
func costYear(src *model.Source, y int, ys *YearStats) {
	if !src.PresentIn(y) {
		return
	}
	t := src.Type
	infl := math.Pow(1+t.InflationRate, float64(y-1))

	switch t.Finance {
	case model.FinanceCaptive:
		ys.FuelCost = ys.EnergyMWh * t.FuelConsumption * t.FuelCost * infl
		ys.FixedOpex = src.Config.Rating * t.FixedOpexBaseline * infl
		ys.VarOpex = ys.EnergyMWh * t.VarOpexBaseline * infl
		if t.UsefulLife > 0 {
			ys.Depreciation = src.Config.Rating * t.CapitalCostBaseline / t.UsefulLife
		}
	case model.FinancePPA:
		ys.FuelCost = ys.EnergyMWh * t.FuelCost * infl
		billed := ys.EnergyMWh
		if t.MinAnnualOfftake > billed {
			billed = t.MinAnnualOfftake
		}
		ys.PPACost = (src.Config.Rating*t.TariffFixed + billed*t.TariffVar) * infl
	}
	ys.EmissionsTonnes = ys.EnergyMWh * t.CO2Emission / 1000

	ys.TotalCost = ys.FuelCost + ys.FixedOpex + ys.VarOpex + ys.Depreciation + ys.PPACost
	if ys.EnergyMWh > 0 {
		ys.UnitCost = ys.TotalCost / (ys.EnergyMWh * 1000)
	}
}
