package sim

import (
	"sort"

	"energy-mix-sim/internal/model"
)

// handleSuddenDrop determines how much of a within-hour power drop can be
// absorbed by block-load-capable sources. The residual is shed from
// non-critical load where possible; anything beyond that is a critical
// interruption.
func (sc *Scenario) handleSuddenDrop(y, m, d, h int, drop float64, res *HourlyResult) {
	deficit := drop

	// Non-critical headroom available for shedding, scaled to the hour's
	// share of the reference year-1 load.
	sheddable := 0.0
	proj := sc.Project.LoadProjection[0]
	if proj.TotalLoad > 0 {
		frac := res.PowerReq / proj.TotalLoad
		if frac > 1 {
			frac = 1
		}
		sheddable = (proj.TotalLoad - proj.CriticalLoad) * frac
	}

	// Block-load groups pick up the drop in order of acceptance capability.
	ordered := make([]*model.Source, len(sc.Sources))
	copy(ordered, sc.Sources)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Type.BlockLoadAcceptance > ordered[j].Type.BlockLoadAcceptance
	})

	for i := 0; i < len(ordered) && deficit >= Tolerance; {
		block := ordered[i].Type.BlockLoadAcceptance
		j := i + 1
		for j < len(ordered) && ordered[j].Type.BlockLoadAcceptance == block {
			j++
		}
		group := ordered[i:j]
		i = j
		if block <= 0 {
			continue
		}
		deficit = sc.absorbWithGroup(group, y, m, d, h, block, deficit)
	}
	if deficit < Tolerance {
		deficit = 0
	}

	// A failed source contributes nothing, whatever was booked for it.
	for _, src := range sc.Sources {
		cell := src.At(y, m, d, h)
		if cell.Status == model.StatusFailed {
			cell.PowerOutput = 0
			cell.EnergyOutput = 0
			cell.Reserve = 0
		}
	}

	res.LoadShed = deficit
	if res.LoadShed > sheddable {
		res.LoadShed = sheddable
	}
	res.UnservedPowerDrop = deficit - res.LoadShed
}

// absorbWithGroup lets one block-acceptance group pick up as much of the
// deficit as its instantaneous block capability and held reserve allow,
// pro rata to each member's reserve. A BESS that contributed only a sliver
// of its reserve returns to its prior state within the hour.
func (sc *Scenario) absorbWithGroup(group []*model.Source, y, m, d, h int, block, deficit float64) float64 {
	type member struct {
		src  *model.Source
		cell *model.HourCell
		was  model.Status
	}
	var members []member
	blockCap, grpReserve := 0.0, 0.0
	for _, src := range group {
		cell := src.At(y, m, d, h)
		if src.IsBESS() {
			if !cell.Status.Operable() {
				continue
			}
		} else if cell.Status != model.StatusOn {
			continue
		}
		if cell.Reserve <= 0 {
			continue
		}
		members = append(members, member{src: src, cell: cell, was: cell.Status})
		blockCap += src.Config.Rating * block / 100
		grpReserve += cell.Reserve
	}
	if len(members) == 0 {
		return deficit
	}

	contribution := deficit
	if contribution > blockCap {
		contribution = blockCap
	}
	if contribution > grpReserve {
		contribution = grpReserve
	}
	if contribution <= 0 {
		return deficit
	}

	for _, mb := range members {
		before := mb.cell.Reserve
		share := before / grpReserve * contribution
		mb.cell.PowerOutput += share
		mb.cell.EnergyOutput += share
		mb.cell.Reserve -= share
		mb.cell.Status = model.StatusOn
		if mb.src.IsBESS() && share/before <= 0.2 {
			// Sub-hour support only: the unit returns to idle with its
			// charge intact.
			mb.cell.Reserve = before
			mb.cell.Status = mb.was
		}
	}
	return deficit - contribution
}
