package sim

import (
	"testing"

	"energy-mix-sim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Solar with a daily seeded reduction: the hour after noon loses the whole
// profile, so every day books exactly one sudden drop.
func TestSolarSuddenDropBooked(t *testing.T) {
	p := flatProject(1, func(h int) float64 {
		if h == 12 {
			return 5
		}
		return 0
	})
	solar := mustSource(t, "solar-1", &model.SourceType{
		Name: "SOLAR", Kind: model.KindRenewable, Finance: model.FinanceCaptive,
		SolarSuddenDrops: 1,
	}, model.SourceConfig{StartYear: 1, EndYear: 12, Rating: 5, Priority: 1})
	sc := mustScenario(t, p, Params{Seed: 3}, solar)
	require.NoError(t, sc.Simulate())

	for _, day := range [][3]int{{1, 1, 1}, {2, 7, 15}, {12, 12, 31}} {
		y, m, d := day[0], day[1], day[2]

		// Noon: full profile, load served.
		noon := solar.At(y, m, d, 12)
		assert.InDelta(t, 5, noon.Capacity, 1e-6)
		assert.InDelta(t, 1, noon.PowerOutput, 1e-6)
		assert.InDelta(t, 0, sc.ResultAt(y, m, d, 12).UnservedPowerReq, 1e-6)

		// The only falling-capacity hour is 13, so the reduction lands there
		// and the drop equals the previous hour's output.
		after := solar.At(y, m, d, 13)
		assert.Equal(t, model.StatusReduced, after.Status)
		res := sc.ResultAt(y, m, d, 13)
		assert.InDelta(t, 1, res.SuddenPowerDrop, 1e-6)
		assert.InDelta(t, 1, res.UnservedPowerReq, 1e-6)

		// Exactly one drop hour per day.
		drops := 0
		for h := 0; h < model.HoursPerDay; h++ {
			if sc.ResultAt(y, m, d, h).SuddenPowerDrop > Tolerance {
				drops++
			}
		}
		assert.Equal(t, 1, drops)
	}
}

// A failure with a downtime tail: the failed hour surfaces as an unabsorbed
// sudden drop, the recovery hours as plain unserved demand, and the whole
// outage counts as one critical interruption.
func TestFailureOutageWindow(t *testing.T) {
	p := flatProject(8, nil)
	gen := mustSource(t, "gas-1", reliableThermal("GAS_GEN"), model.SourceConfig{
		StartYear: 1, EndYear: 12, Rating: 10, Priority: 1, MaxLoading: 100,
	})
	sc := mustScenario(t, p, Params{}, gen)
	gen.At(1, 6, 15, 10).Status = model.StatusFailed
	gen.At(1, 6, 15, 11).Status = model.StatusDowntime
	gen.At(1, 6, 15, 12).Status = model.StatusDowntime
	require.NoError(t, sc.Simulate())

	// Failed hour: the booked allocation is lost within the hour; nothing
	// can absorb it, and the critical share goes unserved.
	res10 := sc.ResultAt(1, 6, 15, 10)
	assert.InDelta(t, 8, res10.SuddenPowerDrop, 1e-6)
	assert.InDelta(t, 8, res10.UnservedPowerDrop+res10.LoadShed+res10.UnservedPowerReq, 1e-6)
	cell10 := gen.At(1, 6, 15, 10)
	assert.InDelta(t, 0, cell10.PowerOutput, 1e-9)
	assert.InDelta(t, 0, cell10.EnergyOutput, 1e-9)
	assert.InDelta(t, 0, cell10.Reserve, 1e-9)

	// Downtime hours: the source is out of the merit order entirely.
	for _, h := range []int{11, 12} {
		res := sc.ResultAt(1, 6, 15, h)
		assert.InDelta(t, 8, res.UnservedPowerReq, 1e-6, "hour %d", h)
		assert.Equal(t, model.StatusDowntime, gen.At(1, 6, 15, h).Status)
	}

	// Back to normal the hour after.
	assert.InDelta(t, 0, sc.ResultAt(1, 6, 15, 13).UnservedPowerReq, 1e-6)
	assert.InDelta(t, 8, gen.At(1, 6, 15, 13).PowerOutput, 1e-6)
}

// Block-load-capable backup absorbs a drop: the deficit moves from critical
// interruption to absorbed output.
func TestBlockLoadAbsorption(t *testing.T) {
	p := flatProject(4, nil)
	failType := reliableThermal("GAS_A")
	backType := reliableThermal("GAS_B")
	backType.BlockLoadAcceptance = 50

	g1 := mustSource(t, "gas-a", failType, model.SourceConfig{
		StartYear: 1, EndYear: 12, Rating: 6, Priority: 1, MaxLoading: 100,
	})
	g2 := mustSource(t, "gas-b", backType, model.SourceConfig{
		StartYear: 1, EndYear: 12, Rating: 6, Priority: 1, MaxLoading: 100,
	})
	sc := mustScenario(t, p, Params{}, g1, g2)
	g1.At(1, 3, 3, 9).Status = model.StatusFailed
	require.NoError(t, sc.Simulate())

	// Shared group, loading factor 4/12: the failed unit books a 2 MW drop,
	// the running one delivers 2 MW and holds 4 MW of reserve. Its block
	// capability (6 MW * 50% = 3 MW) covers the whole transient.
	res := sc.ResultAt(1, 3, 3, 9)
	assert.InDelta(t, 2, res.SuddenPowerDrop, 1e-6)
	assert.InDelta(t, 0, res.UnservedPowerReq, 1e-6)
	assert.InDelta(t, 0, res.UnservedPowerDrop, 1e-6)
	assert.InDelta(t, 0, res.LoadShed, 1e-6)
	// Load share plus absorbed transient.
	assert.InDelta(t, 4, g2.At(1, 3, 3, 9).PowerOutput, 1e-6)
}

// Non-critical load shedding caps the interruption: only the critical share
// of an unabsorbed drop is counted as unserved.
func TestLoadShedCoversNonCritical(t *testing.T) {
	p := flatProject(8, nil)
	for y := 1; y <= model.Years; y++ {
		p.LoadProjection[y-1] = model.LoadPoint{CriticalLoad: 5, TotalLoad: 8}
	}
	gen := mustSource(t, "gas-1", reliableThermal("GAS_GEN"), model.SourceConfig{
		StartYear: 1, EndYear: 12, Rating: 10, Priority: 1, MaxLoading: 100,
	})
	sc := mustScenario(t, p, Params{}, gen)
	gen.At(1, 1, 2, 5).Status = model.StatusFailed
	require.NoError(t, sc.Simulate())

	// Drop of 8 MW, nothing absorbs it; 3 MW of non-critical load is shed
	// and the remaining 5 MW hit critical load.
	res := sc.ResultAt(1, 1, 2, 5)
	assert.InDelta(t, 8, res.SuddenPowerDrop, 1e-6)
	assert.InDelta(t, 3, res.LoadShed, 1e-6)
	assert.InDelta(t, 5, res.UnservedPowerDrop, 1e-6)
}
