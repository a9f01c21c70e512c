package sim

import (
	"fmt"

	"energy-mix-sim/internal/model"
)

// The seeding pass runs once per scenario, before any dispatch. It fills
// capacities for operable years and pre-determines every failure, downtime
// window and renewable output drop, so the hourly loop sees a fully decided
// availability mask.

// hourCoord identifies an hour within a year.
type hourCoord struct {
	m, d, h int
}

// failureCandidates lists every hour of the synthetic year eligible for a
// seeded failure (hour 0 excluded so a reduction delta always has a
// predecessor on the same day).
func failureCandidates() []hourCoord {
	var out []hourCoord
	for m := 1; m <= model.MonthsPerYear; m++ {
		for d := 1; d <= model.DaysInMonth(m); d++ {
			for h := 1; h < model.HoursPerDay; h++ {
				out = append(out, hourCoord{m, d, h})
			}
		}
	}
	return out
}

func (sc *Scenario) seedAll() error {
	if sc.seeded {
		return nil
	}
	candidates := failureCandidates()
	for _, src := range sc.Sources {
		if err := sc.fillCapacity(src); err != nil {
			return err
		}
		sc.seedFailures(src, candidates)
		if src.Type.Kind == model.KindRenewable && src.Type.SolarSuddenDrops > 0 {
			sc.seedSolarDrops(src)
		}
	}
	sc.seeded = true
	return nil
}

// fillCapacity opens the operable years of the tensor: status Off and the
// capacity rule for the source kind. Cells outside [StartYear, EndYear] stay
// Absent with zero capacity. BESS cells start with a full reserve; the
// start-of-hour pass carries the previous hour's reserve forward from the
// second simulated hour on.
func (sc *Scenario) fillCapacity(src *model.Source) error {
	for y := src.Config.StartYear; y <= src.Config.EndYear; y++ {
		for m := 1; m <= model.MonthsPerYear; m++ {
			for d := 1; d <= model.DaysInMonth(m); d++ {
				for h := 0; h < model.HoursPerDay; h++ {
					if src.Type.Kind == model.KindRenewable {
						if _, err := sc.Project.Solar(m, d, h); err != nil {
							return fmt.Errorf("source %s: %w", src.Name, err)
						}
					}
					cell := src.At(y, m, d, h)
					cell.Status = model.StatusOff
					cell.Capacity = src.HourCapacity(sc.Project, y, m, d, h)
					if src.IsBESS() {
						cell.Reserve = cell.Capacity
					}
				}
			}
		}
	}
	return nil
}

// drawFailureCount biases the planned annual failure count per year: one
// third of years honour the plan, one third see half of it (rounded up, at
// least one), the rest none. Models better and worse than average years.
func (sc *Scenario) drawFailureCount(planned int) int {
	if planned <= 0 {
		return 0
	}
	switch r := sc.rng.Float64(); {
	case r < 1.0/3.0:
		return planned
	case r < 2.0/3.0:
		half := (planned + 1) / 2
		if half < 1 {
			half = 1
		}
		return half
	default:
		return 0
	}
}

// seedFailures marks failure hours and their downtime windows for every
// operable year. Downtime walks forward across day, month and year
// boundaries, never overwriting a failure or an absent cell.
func (sc *Scenario) seedFailures(src *model.Source, candidates []hourCoord) {
	if src.Type.NumAnnualFails <= 0 {
		return
	}
	for y := src.Config.StartYear; y <= src.Config.EndYear; y++ {
		count := sc.drawFailureCount(src.Type.NumAnnualFails)
		if count > len(candidates) {
			count = len(candidates)
		}
		picked := make(map[int]struct{}, count)
		for len(picked) < count {
			idx := sc.rng.Intn(len(candidates))
			if _, dup := picked[idx]; dup {
				continue
			}
			picked[idx] = struct{}{}
			c := candidates[idx]
			src.At(y, c.m, c.d, c.h).Status = model.StatusFailed
			sc.markDowntime(src, y, c)
		}
	}
}

func (sc *Scenario) markDowntime(src *model.Source, y int, c hourCoord) {
	cy, cm, cd, ch := y, c.m, c.d, c.h
	for i := 0; i < src.Type.DowntimePerFail-1; i++ {
		ny, nm, nd, nh, ok := model.NextHour(cy, cm, cd, ch)
		if !ok {
			return
		}
		cy, cm, cd, ch = ny, nm, nd, nh
		cell := src.At(cy, cm, cd, ch)
		if cell.Status == model.StatusFailed || cell.Status == model.StatusAbsent {
			continue
		}
		cell.Status = model.StatusDowntime
	}
}

// seedSolarDrops flags renewable hours with a falling capacity profile as
// sudden-reduction hours, up to the type's daily quota.
func (sc *Scenario) seedSolarDrops(src *model.Source) {
	for y := src.Config.StartYear; y <= src.Config.EndYear; y++ {
		for m := 1; m <= model.MonthsPerYear; m++ {
			for d := 1; d <= model.DaysInMonth(m); d++ {
				var cand []int
				for h := 1; h < model.HoursPerDay; h++ {
					cell := src.At(y, m, d, h)
					if cell.Status != model.StatusOff {
						continue
					}
					if cell.Capacity < src.At(y, m, d, h-1).Capacity {
						cand = append(cand, h)
					}
				}
				want := src.Type.SolarSuddenDrops
				if want > len(cand) {
					want = len(cand)
				}
				for i := 0; i < want; i++ {
					j := i + sc.rng.Intn(len(cand)-i)
					cand[i], cand[j] = cand[j], cand[i]
					src.At(y, m, d, cand[i]).Status = model.StatusReduced
				}
			}
		}
	}
}
