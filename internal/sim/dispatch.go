package sim

import "energy-mix-sim/internal/model"

// dispatch runs the two-pass priority allocation for one hour and returns
// the unserved demand and the accumulated within-hour sudden power drop.
//
// Pass A forces the groups contractually obligated to hold spinning reserve
// to run at minimum load, so pass B can compute available headroom without
// double-committing capacity.
func (sc *Scenario) dispatch(y, m, d, h int, powerReq float64) (rem, drop float64) {
	groups := sc.priorityGroups()
	sc.stageSpinningReserve(groups, y, m, d, h, powerReq)
	return sc.satisfyLoad(groups, y, m, d, h, powerReq)
}

// stageSpinningReserve is pass A. For every non-BESS group with a non-zero
// reserve contribution, members run up at minimum load until the group's
// headroom covers its share of the scenario reserve requirement; the
// requirement is then spread evenly over the staged members as mandatory
// reserve.
func (sc *Scenario) stageSpinningReserve(groups [][]*model.Source, y, m, d, h int, powerReq float64) {
	s := sc.Params.SpinningReservePerc
	if s <= 0 {
		return
	}
	for _, group := range groups {
		if group[0].IsBESS() {
			continue
		}
		contrib := group[0].Config.SpinningReserve
		reqGrp := powerReq * s * contrib / 10000
		if reqGrp <= 0 {
			continue
		}

		var staged []*model.HourCell
		grpReserve := 0.0
		for _, src := range group {
			cell := src.At(y, m, d, h)
			switch cell.Status {
			case model.StatusOff, model.StatusOn, model.StatusFailed, model.StatusReduced:
			default:
				continue
			}
			if cell.Capacity <= 0 {
				continue
			}
			cell.PowerOutput = cell.Capacity * src.MinLoading() / 100
			if cell.Status == model.StatusOff {
				cell.Status = model.StatusSRStaged
			}
			grpReserve += cell.Capacity - cell.PowerOutput
			staged = append(staged, cell)
			if grpReserve >= reqGrp {
				break
			}
		}
		if len(staged) == 0 {
			continue
		}
		each := reqGrp / float64(len(staged))
		for _, cell := range staged {
			cell.MandatoryReserve = each
			cell.Reserve = cell.Capacity - cell.PowerOutput
			cell.EnergyOutput = cell.PowerOutput
		}
	}
}

// satisfyLoad is pass B. Groups are drained in priority order; within a
// group every operable member is loaded by a common factor of its headroom
// beyond pass A output and mandatory reserve. Sources seeded to fail or
// reduce this hour book their would-be output as a sudden power drop.
func (sc *Scenario) satisfyLoad(groups [][]*model.Source, y, m, d, h int, powerReq float64) (rem, drop float64) {
	rem = powerReq
	for _, group := range groups {
		if rem < Tolerance {
			rem = 0
			break
		}
		if group[0].IsBESS() {
			if sc.Params.BessPriorityWiseUse && sc.Params.BessNonEmergencyUse != BessNonEmergencyNone {
				rem = sc.bessContribute(y, m, d, h, rem)
				if rem == 0 {
					break
				}
			}
			continue
		}

		grpPotential := 0.0
		participants := 0
		for _, src := range group {
			cell := src.At(y, m, d, h)
			switch cell.Status {
			case model.StatusOff, model.StatusOn, model.StatusSRStaged, model.StatusFailed, model.StatusReduced:
			default:
				continue
			}
			// A reduced source with no capacity left still participates so
			// its output drop gets booked.
			if cell.Capacity <= 0 && cell.Status != model.StatusReduced {
				continue
			}
			avail := cell.Capacity - cell.PowerOutput - cell.MandatoryReserve
			if avail < 0 {
				avail = 0
			}
			cell.MarkParticipant()
			participants++
			grpPotential += avail
		}
		if participants == 0 {
			continue
		}

		lf := 0.0
		if grpPotential > 0 {
			lf = rem / grpPotential
			if lf > 1 {
				lf = 1
			}
		}
		grpOutput := 0.0
		for _, src := range group {
			cell := src.At(y, m, d, h)
			ok, staged := cell.Participant()
			if !ok {
				continue
			}
			avail := cell.Capacity - staged - cell.MandatoryReserve
			if avail < 0 {
				avail = 0
			}
			out := lf * avail
			switch cell.Status {
			case model.StatusFailed:
				// Booked into the allocation, lost within the hour. The
				// sudden-drop handler re-procures it from block-load
				// capable sources.
				drop += out
				cell.PowerOutput = out
				cell.EnergyOutput = 0
			case model.StatusReduced:
				prev := sc.previousOutput(src, y, m, d, h)
				if delta := prev - out; delta > 0 {
					drop += delta
				}
				cell.PowerOutput = out
				cell.EnergyOutput = out
			default:
				cell.PowerOutput = out
				cell.Reserve = cell.Capacity - out
				cell.EnergyOutput = out
				cell.Status = model.StatusOn
			}
			grpOutput += out
		}

		rem -= grpOutput
		if rem < Tolerance {
			rem = 0
			break
		}
	}
	if rem < Tolerance {
		rem = 0
	}
	return rem, drop
}

// previousOutput returns the source's delivered power in the preceding hour,
// or zero at the start of the horizon.
func (sc *Scenario) previousOutput(src *model.Source, y, m, d, h int) float64 {
	py, pm, pd, ph, ok := model.PrevHour(y, m, d, h)
	if !ok {
		return 0
	}
	return src.At(py, pm, pd, ph).PowerOutput
}

// drainResidualReserve transfers held spinning reserve into output, in
// priority order, until the remaining demand is covered.
func (sc *Scenario) drainResidualReserve(y, m, d, h int, rem float64) float64 {
	for _, src := range sc.Sources {
		if src.IsBESS() {
			continue
		}
		cell := src.At(y, m, d, h)
		if cell.Status != model.StatusOn || cell.Capacity <= 0 || cell.Reserve <= 0 {
			continue
		}
		contribution := rem
		if contribution > cell.Reserve {
			contribution = cell.Reserve
		}
		cell.PowerOutput += contribution
		cell.EnergyOutput += contribution
		cell.Reserve -= contribution
		rem -= contribution
		if rem < Tolerance {
			return 0
		}
	}
	return rem
}
