package sim

import (
	"testing"

	"energy-mix-sim/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Single captive generator, demand below capacity: runs every hour at the
// demanded level with the rest as spinning headroom.
func TestSingleGeneratorServesLoad(t *testing.T) {
	p := flatProject(5, nil)
	gen := mustSource(t, "gas-1", reliableThermal("GAS_GEN"), model.SourceConfig{
		StartYear: 1, EndYear: 12, Rating: 10, Priority: 1,
		MinLoading: 10, MaxLoading: 100,
	})
	sc := mustScenario(t, p, Params{}, gen)
	require.NoError(t, sc.Simulate())

	for _, c := range [][4]int{{1, 1, 1, 0}, {1, 6, 15, 12}, {7, 3, 28, 23}, {12, 12, 31, 23}} {
		cell := gen.At(c[0], c[1], c[2], c[3])
		assert.Equal(t, model.StatusOn, cell.Status)
		assert.InDelta(t, 5, cell.PowerOutput, 1e-6)
		assert.InDelta(t, 5, cell.Reserve, 1e-6)
		assert.InDelta(t, 5, cell.EnergyOutput, 1e-6)

		res := sc.ResultAt(c[0], c[1], c[2], c[3])
		assert.InDelta(t, 0, res.UnservedPowerReq, 1e-6)
		assert.InDelta(t, 0, res.LoadShed, 1e-6)
		assert.Equal(t, "Normal Operation", res.Log)
	}
}

// Single generator, demand above capacity: full output every hour and a
// constant 2 MW shortfall; no hour is fully served.
func TestSingleGeneratorOverload(t *testing.T) {
	p := flatProject(12, nil)
	gen := mustSource(t, "gas-1", reliableThermal("GAS_GEN"), model.SourceConfig{
		StartYear: 1, EndYear: 12, Rating: 10, Priority: 1,
		MinLoading: 10, MaxLoading: 100,
	})
	sc := mustScenario(t, p, Params{}, gen)
	require.NoError(t, sc.Simulate())

	for _, c := range [][4]int{{1, 1, 1, 0}, {4, 8, 20, 6}, {12, 12, 31, 23}} {
		cell := gen.At(c[0], c[1], c[2], c[3])
		assert.Equal(t, model.StatusOn, cell.Status)
		assert.InDelta(t, 10, cell.PowerOutput, 1e-6)

		res := sc.ResultAt(c[0], c[1], c[2], c[3])
		assert.InDelta(t, 2, res.UnservedPowerReq, 1e-6)
	}
}

// Two generators sharing a priority group with a spinning-reserve
// obligation: the group delivers the full demand while holding at least its
// required reserve.
func TestSpinningReserveStaging(t *testing.T) {
	p := flatProject(6, nil)
	typ := reliableThermal("GAS_GEN")
	g1 := mustSource(t, "gas-1", typ, model.SourceConfig{
		StartYear: 1, EndYear: 12, Rating: 5, Priority: 1,
		SpinningReserve: 50, MinLoading: 10, MaxLoading: 100,
	})
	g2 := mustSource(t, "gas-2", typ, model.SourceConfig{
		StartYear: 1, EndYear: 12, Rating: 5, Priority: 1,
		SpinningReserve: 50, MinLoading: 10, MaxLoading: 100,
	})
	sc := mustScenario(t, p, Params{SpinningReservePerc: 20}, g1, g2)
	require.NoError(t, sc.Simulate())

	// Required group reserve: 6 MW * 20% * 50 / 100 = 0.6 MW.
	for _, c := range [][4]int{{1, 1, 1, 0}, {5, 5, 5, 5}} {
		c1 := g1.At(c[0], c[1], c[2], c[3])
		c2 := g2.At(c[0], c[1], c[2], c[3])
		assert.Equal(t, model.StatusOn, c1.Status)
		assert.Equal(t, model.StatusOn, c2.Status)
		assert.InDelta(t, 6, c1.PowerOutput+c2.PowerOutput, 1e-6)
		assert.GreaterOrEqual(t, c1.Reserve+c2.Reserve, 0.6-1e-6)

		res := sc.ResultAt(c[0], c[1], c[2], c[3])
		assert.InDelta(t, 0, res.UnservedPowerReq, 1e-6)
	}
}

// A renewable-only portfolio cannot serve load outside daylight hours.
func TestRenewableOnlyShortfall(t *testing.T) {
	p := flatProject(1, func(h int) float64 {
		if h >= 10 && h <= 14 {
			return 5
		}
		return 0
	})
	solar := mustSource(t, "solar-1", &model.SourceType{
		Name: "SOLAR", Kind: model.KindRenewable, Finance: model.FinanceCaptive,
	}, model.SourceConfig{StartYear: 1, EndYear: 12, Rating: 5, Priority: 1})
	sc := mustScenario(t, p, Params{}, solar)
	require.NoError(t, sc.Simulate())

	for h := 0; h < model.HoursPerDay; h++ {
		cell := solar.At(2, 6, 10, h)
		res := sc.ResultAt(2, 6, 10, h)
		if h >= 10 && h <= 14 {
			assert.InDelta(t, 5, cell.Capacity, 1e-6, "hour %d", h)
			assert.InDelta(t, 1, cell.PowerOutput, 1e-6, "hour %d", h)
			assert.InDelta(t, 0, res.UnservedPowerReq, 1e-6, "hour %d", h)
		} else {
			assert.InDelta(t, 0, cell.Capacity, 1e-6, "hour %d", h)
			assert.InDelta(t, 1, res.UnservedPowerReq, 1e-6, "hour %d", h)
		}
	}
}

// A source commissioned mid-horizon is absent, with zero output, before its
// start year and productive from it.
func TestLateStartYear(t *testing.T) {
	p := flatProject(5, nil)
	gen := mustSource(t, "gas-1", reliableThermal("GAS_GEN"), model.SourceConfig{
		StartYear: 5, EndYear: 12, Rating: 10, Priority: 1, MaxLoading: 100,
	})
	sc := mustScenario(t, p, Params{}, gen)
	require.NoError(t, sc.Simulate())

	for y := 1; y <= 4; y++ {
		cell := gen.At(y, 7, 10, 12)
		assert.Equal(t, model.StatusAbsent, cell.Status)
		assert.InDelta(t, 0, cell.Capacity, 1e-9)
		assert.InDelta(t, 0, cell.EnergyOutput, 1e-9)
		assert.InDelta(t, 5, sc.ResultAt(y, 7, 10, 12).UnservedPowerReq, 1e-6)
	}
	for _, y := range []int{5, 8, 12} {
		cell := gen.At(y, 7, 10, 12)
		assert.Equal(t, model.StatusOn, cell.Status)
		assert.Greater(t, cell.Capacity, 0.0)
		assert.InDelta(t, 5, cell.PowerOutput, 1e-6)
	}
}

// Residual reserve utilisation: reserve still held by a running unit after
// the load pass is drained into output before demand goes unserved.
func TestResidualReserveDrain(t *testing.T) {
	p := flatProject(6, nil)
	typ := reliableThermal("GAS_GEN")
	// Group 1 holds mandatory reserve; staged headroom beyond the
	// allocation gets drained to close the gap left by its obligation.
	g1 := mustSource(t, "gas-1", typ, model.SourceConfig{
		StartYear: 1, EndYear: 12, Rating: 6, Priority: 1,
		SpinningReserve: 100, MinLoading: 10, MaxLoading: 100,
	})
	g2 := mustSource(t, "gas-2", typ, model.SourceConfig{
		StartYear: 1, EndYear: 12, Rating: 2, Priority: 2, MaxLoading: 100,
	})
	sc := mustScenario(t, p, Params{SpinningReservePerc: 50}, g1, g2)
	require.NoError(t, sc.Simulate())

	res := sc.ResultAt(1, 1, 1, 0)
	assert.InDelta(t, 0, res.UnservedPowerReq, 1e-6)
	total := g1.At(1, 1, 1, 0).PowerOutput + g2.At(1, 1, 1, 0).PowerOutput
	assert.GreaterOrEqual(t, total, 6-1e-6)
}
