package sim

import "energy-mix-sim/internal/model"

// HourlyResult is one row of per-hour scenario output.
// This is the primary artifact for "what happened" in a simulated hour.
type HourlyResult struct {
	PowerReq          float64 // site demand, MW
	UnservedPowerReq  float64 // demand no source could cover, MW
	SuddenPowerDrop   float64 // within-hour loss from failures/reductions, MW
	UnservedPowerDrop float64 // drop not absorbed by block-load sources, MW
	LoadShed          float64 // non-critical load dropped to cover the deficit, MW
	BessCharge        float64 // generation diverted into BESS charging, MW
	Log               string
}

// newResultGrid allocates the dense per-hour result grid, indexed by
// model.CellIndex like the per-source tensors.
func newResultGrid() []HourlyResult {
	return make([]HourlyResult, model.CellsPerSource)
}
