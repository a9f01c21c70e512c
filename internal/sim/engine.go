package sim

import (
	"fmt"
	"strings"

	"energy-mix-sim/internal/model"
)

// Simulate walks the full horizon hour by hour, strictly in order. Each hour
// runs: BESS start-of-hour, priority dispatch, residual-reserve drain, BESS
// non-emergency discharge, BESS charging, sudden-drop handling, result
// recording. Hour h+1 never starts before hour h is fully processed.
func (sc *Scenario) Simulate() error {
	for y := 1; y <= model.Years; y++ {
		for m := 1; m <= model.MonthsPerYear; m++ {
			for d := 1; d <= model.DaysInMonth(m); d++ {
				for h := 0; h < model.HoursPerDay; h++ {
					if err := sc.simulateHour(y, m, d, h); err != nil {
						return err
					}
				}
			}
		}
	}
	return nil
}

func (sc *Scenario) simulateHour(y, m, d, h int) error {
	powerReq, err := sc.Project.Load(y, m, d, h)
	if err != nil {
		return &DataGapError{Year: y, Month: m, Day: d, Hour: h, Err: err}
	}
	res := sc.ResultAt(y, m, d, h)
	res.PowerReq = powerReq

	sc.bessStartOfHour(y, m, d, h)

	rem, drop := sc.dispatch(y, m, d, h, powerReq)
	if rem > 0 {
		rem = sc.drainResidualReserve(y, m, d, h, rem)
	}
	if rem > 0 && sc.Params.BessNonEmergencyUse != BessNonEmergencyNone && !sc.Params.BessPriorityWiseUse {
		rem = sc.bessContribute(y, m, d, h, rem)
	}
	res.SuddenPowerDrop = drop
	if rem <= 0 {
		res.BessCharge = sc.chargeBESS(y, m, d, h)
		if drop > 0 {
			sc.handleSuddenDrop(y, m, d, h, drop, res)
		}
	}
	res.UnservedPowerReq = rem

	if err := sc.finalizeHour(y, m, d, h); err != nil {
		return err
	}
	res.Log = sc.logLine(y, m, d, h, res)
	sc.sortByPriority()
	return nil
}

// finalizeHour settles the invariants the dispatch passes rely on: failed or
// recovering units deliver nothing, transient allocation markers are
// cleared, float dust is snapped to zero, and every cell's bounds are
// verified before the next hour may begin.
func (sc *Scenario) finalizeHour(y, m, d, h int) error {
	for _, src := range sc.Sources {
		cell := src.At(y, m, d, h)
		cell.ClearParticipant()

		// A source staged for reserve that the load pass never reached keeps
		// spinning at minimum load.
		if cell.Status == model.StatusSRStaged {
			cell.Status = model.StatusOn
		}
		if !src.IsBESS() {
			switch cell.Status {
			case model.StatusFailed, model.StatusDowntime:
				cell.PowerOutput = 0
				cell.EnergyOutput = 0
				cell.Reserve = 0
			}
		}
		snap(&cell.PowerOutput)
		snap(&cell.EnergyOutput)
		snap(&cell.Reserve)

		if err := sc.checkCell(src, cell, y, m, d, h); err != nil {
			return err
		}
	}
	return nil
}

func snap(v *float64) {
	if *v < 0 && *v > -Tolerance {
		*v = 0
	}
}

func (sc *Scenario) checkCell(src *model.Source, cell *model.HourCell, y, m, d, h int) error {
	fail := func(format string, args ...any) error {
		return &InvariantError{Year: y, Month: m, Day: d, Hour: h, Source: src.Name,
			Detail: fmt.Sprintf(format, args...)}
	}
	const eps = 1e-6
	if cell.PowerOutput < -eps {
		return fail("negative power output %.6f", cell.PowerOutput)
	}
	if !src.IsBESS() && cell.PowerOutput > cell.Capacity+eps {
		return fail("power output %.6f exceeds capacity %.6f", cell.PowerOutput, cell.Capacity)
	}
	if cell.EnergyOutput < -eps {
		return fail("negative energy output %.6f", cell.EnergyOutput)
	}
	if cell.Reserve < -eps {
		return fail("negative reserve %.6f", cell.Reserve)
	}
	if src.IsBESS() && cell.Reserve > cell.Capacity+eps {
		return fail("stored energy %.6f exceeds capacity %.6f", cell.Reserve, cell.Capacity)
	}
	if present := src.PresentIn(y); present == (cell.Status == model.StatusAbsent) {
		return fail("status %s inconsistent with presence %v", cell.Status, present)
	}
	return nil
}

// logLine renders the hour's single human-readable log entry.
func (sc *Scenario) logLine(y, m, d, h int, res *HourlyResult) string {
	if res.UnservedPowerReq > Tolerance {
		return fmt.Sprintf("Total power requirements could not be satisfied. Shortfall = %.2f MW", res.UnservedPowerReq)
	}
	var parts []string
	for _, src := range sc.Sources {
		switch src.At(y, m, d, h).Status {
		case model.StatusFailed:
			parts = append(parts, fmt.Sprintf("Failure of %s", src.Name))
		case model.StatusReduced:
			parts = append(parts, fmt.Sprintf("Output reduction of %s", src.Name))
		}
	}
	if res.LoadShed > Tolerance {
		parts = append(parts, fmt.Sprintf("Load shed of %.2f MW", res.LoadShed))
	}
	if len(parts) == 0 {
		return "Normal Operation"
	}
	return strings.Join(parts, "; ")
}
