package sim

import (
	"testing"

	"energy-mix-sim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failingThermal(name string, fails, downtime int) *model.SourceType {
	t := reliableThermal(name)
	t.NumAnnualFails = fails
	t.DowntimePerFail = downtime
	return t
}

// Equal seeds and equal inputs must produce identical availability masks.
func TestSeedingDeterministic(t *testing.T) {
	p := flatProject(5, nil)
	build := func() *Scenario {
		gen := mustSource(t, "gas-1", failingThermal("GAS_GEN", 6, 4), model.SourceConfig{
			StartYear: 1, EndYear: 12, Rating: 10, Priority: 1, MaxLoading: 100,
		})
		solar := mustSource(t, "solar-1", &model.SourceType{
			Name: "SOLAR", Kind: model.KindRenewable, Finance: model.FinanceCaptive,
			SolarSuddenDrops: 1,
		}, model.SourceConfig{StartYear: 1, EndYear: 12, Rating: 5, Priority: 2})
		return mustScenario(t, p, Params{Seed: 99}, gen, solar)
	}
	a, b := build(), build()

	for i := range a.Sources {
		for idx := range a.Sources[i].Ops {
			require.Equal(t, a.Sources[i].Ops[idx].Status, b.Sources[i].Ops[idx].Status,
				"mask diverged at source %d cell %d", i, idx)
		}
	}
}

// Different seeds should (for a failure-prone source) produce different masks.
func TestSeedingVariesWithSeed(t *testing.T) {
	p := flatProject(5, nil)
	build := func(seed int64) *Scenario {
		gen := mustSource(t, "gas-1", failingThermal("GAS_GEN", 8, 6), model.SourceConfig{
			StartYear: 1, EndYear: 12, Rating: 10, Priority: 1, MaxLoading: 100,
		})
		return mustScenario(t, p, Params{Seed: seed}, gen)
	}
	a, b := build(1), build(2)

	same := true
	for idx := range a.Sources[0].Ops {
		if a.Sources[0].Ops[idx].Status != b.Sources[0].Ops[idx].Status {
			same = false
			break
		}
	}
	assert.False(t, same, "masks identical across different seeds")
}

// Per year, the failed-hour count must be the plan, half of it, or zero, and
// every failure must drag a full downtime window behind it.
func TestSeededFailureCounts(t *testing.T) {
	const planned, downtime = 4, 3
	p := flatProject(5, nil)
	gen := mustSource(t, "gas-1", failingThermal("GAS_GEN", planned, downtime), model.SourceConfig{
		StartYear: 1, EndYear: 12, Rating: 10, Priority: 1, MaxLoading: 100,
	})
	mustScenario(t, p, Params{Seed: 5}, gen)

	sawFailure := false
	for y := 1; y <= model.Years; y++ {
		failed := 0
		for m := 1; m <= model.MonthsPerYear; m++ {
			for d := 1; d <= model.DaysInMonth(m); d++ {
				for h := 0; h < model.HoursPerDay; h++ {
					cell := gen.At(y, m, d, h)
					if cell.Status == model.StatusFailed {
						failed++
						assert.NotEqual(t, 0, h, "failures are never seeded at hour 0")
						assertDowntimeWindow(t, gen, y, m, d, h, downtime)
					}
				}
			}
		}
		assert.Contains(t, []int{0, 2, planned}, failed, "year %d failure count", y)
		if failed > 0 {
			sawFailure = true
		}
	}
	assert.True(t, sawFailure, "no failures seeded over 12 years")
}

// assertDowntimeWindow checks that the downtime-1 in-horizon hours after a
// failure are Downtime (unless another failure overlaps them).
func assertDowntimeWindow(t *testing.T, src *model.Source, y, m, d, h, downtime int) {
	t.Helper()
	cy, cm, cd, ch := y, m, d, h
	for i := 0; i < downtime-1; i++ {
		ny, nm, nd, nh, ok := model.NextHour(cy, cm, cd, ch)
		if !ok {
			return
		}
		cy, cm, cd, ch = ny, nm, nd, nh
		status := src.At(cy, cm, cd, ch).Status
		if status == model.StatusFailed {
			continue
		}
		assert.Equal(t, model.StatusDowntime, status,
			"expected downtime at y%d m%d d%d h%d", cy, cm, cd, ch)
	}
}

// Reductions land only on hours whose capacity fell versus the previous
// hour, at most the configured count per day.
func TestSeededSolarDrops(t *testing.T) {
	p := flatProject(1, func(h int) float64 {
		switch {
		case h >= 9 && h <= 12:
			return 5
		case h >= 13 && h <= 15:
			return 3
		default:
			return 0
		}
	})
	solar := mustSource(t, "solar-1", &model.SourceType{
		Name: "SOLAR", Kind: model.KindRenewable, Finance: model.FinanceCaptive,
		SolarSuddenDrops: 1,
	}, model.SourceConfig{StartYear: 1, EndYear: 12, Rating: 5, Priority: 1})
	mustScenario(t, p, Params{Seed: 11}, solar)

	for _, day := range [][2]int{{1, 1}, {6, 15}, {12, 31}} {
		reduced := 0
		for h := 1; h < model.HoursPerDay; h++ {
			cell := solar.At(3, day[0], day[1], h)
			if cell.Status == model.StatusReduced {
				reduced++
				assert.Less(t, cell.Capacity, solar.At(3, day[0], day[1], h-1).Capacity,
					"reduction seeded on a non-falling hour %d", h)
			}
		}
		assert.Equal(t, 1, reduced, "month %d day %d", day[0], day[1])
	}
}
