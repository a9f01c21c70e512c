package report

import (
	"encoding/csv"
	"os"
	"strconv"

	"energy-mix-sim/internal/model"
	"energy-mix-sim/internal/sim"
)

// WriteHourlyCSV writes the scenario's per-hour ledger. One row per
// simulated hour, in simulation order.
func WriteHourlyCSV(path string, sc *sim.Scenario) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"year",
		"month",
		"day",
		"hour",
		"power_req_mw",
		"unserved_power_req_mw",
		"sudden_power_drop_mw",
		"unserved_power_drop_mw",
		"load_shed_mw",
		"bess_charge_mw",
		"log",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for y := 1; y <= model.Years; y++ {
		for m := 1; m <= model.MonthsPerYear; m++ {
			for d := 1; d <= model.DaysInMonth(m); d++ {
				for h := 0; h < model.HoursPerDay; h++ {
					r := sc.ResultAt(y, m, d, h)
					row := []string{
						strconv.Itoa(y),
						strconv.Itoa(m),
						strconv.Itoa(d),
						strconv.Itoa(h),
						fmtFloat(r.PowerReq),
						fmtFloat(r.UnservedPowerReq),
						fmtFloat(r.SuddenPowerDrop),
						fmtFloat(r.UnservedPowerDrop),
						fmtFloat(r.LoadShed),
						fmtFloat(r.BessCharge),
						r.Log,
					}
					if err := w.Write(row); err != nil {
						return err
					}
				}
			}
		}
	}

	return w.Error()
}

// WriteSourceHourlyCSV writes one source's per-hour operational ledger.
func WriteSourceHourlyCSV(path string, src *model.Source) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"year", "month", "day", "hour",
		"capacity", "power_output_mw", "energy_output_mwh",
		"reserve", "mandatory_reserve_mw", "status",
	}
	if err := w.Write(header); err != nil {
		return err
	}
	for y := 1; y <= model.Years; y++ {
		for m := 1; m <= model.MonthsPerYear; m++ {
			for d := 1; d <= model.DaysInMonth(m); d++ {
				for h := 0; h < model.HoursPerDay; h++ {
					cell := src.At(y, m, d, h)
					row := []string{
						strconv.Itoa(y),
						strconv.Itoa(m),
						strconv.Itoa(d),
						strconv.Itoa(h),
						fmtFloat(cell.Capacity),
						fmtFloat(cell.PowerOutput),
						fmtFloat(cell.EnergyOutput),
						fmtFloat(cell.Reserve),
						fmtFloat(cell.MandatoryReserve),
						cell.Status.String(),
					}
					if err := w.Write(row); err != nil {
						return err
					}
				}
			}
		}
	}
	return w.Error()
}

// WriteYearlyCSV writes the yearly summary records.
func WriteYearlyCSV(path string, res *Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"year",
		"energy_req_mwh",
		"energy_delivered_mwh",
		"fulfilment_pct",
		"critical_interruptions",
		"shedding_events",
		"total_cost",
		"unit_cost",
	}
	for _, s := range res.Years[0].Sources {
		header = append(header,
			s.Name+"_energy_mwh",
			s.Name+"_operating_hour_fraction",
			s.Name+"_total_cost",
			s.Name+"_unit_cost",
		)
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, yr := range res.Years {
		row := []string{
			strconv.Itoa(yr.Year),
			fmtFloat(yr.EnergyReqMWh),
			fmtFloat(yr.EnergyDeliveredMWh),
			fmtFloat(yr.FulfilmentPct),
			strconv.Itoa(yr.CriticalInterruptions),
			strconv.Itoa(yr.SheddingEvents),
			fmtFloat(yr.TotalCost),
			fmtFloat(yr.UnitCost),
		}
		for _, s := range yr.Sources {
			row = append(row,
				fmtFloat(s.EnergyMWh),
				fmtFloat(s.OperatingHourFraction),
				fmtFloat(s.TotalCost),
				fmtFloat(s.UnitCost),
			)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}
