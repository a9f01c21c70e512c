package sim

import "energy-mix-sim/internal/model"

// BESS state handling: start-of-hour reserve carry-over, non-emergency
// discharge, and charging from surplus generation headroom.

// bessStartOfHour resets every BESS to idle and carries the stored energy
// across the hour boundary. The very first hour of the simulation keeps the
// reserve the seeding pass left in place. Failed, recovering or absent units
// hold neither capacity nor charge.
func (sc *Scenario) bessStartOfHour(y, m, d, h int) {
	for _, src := range sc.Sources {
		if !src.IsBESS() {
			continue
		}
		cell := src.At(y, m, d, h)
		switch cell.Status {
		case model.StatusOff, model.StatusOn, model.StatusCharging:
			cell.Status = model.StatusOff
			if py, pm, pd, ph, ok := model.PrevHour(y, m, d, h); ok {
				cell.Reserve = src.At(py, pm, pd, ph).Reserve
			}
		case model.StatusFailed, model.StatusDowntime, model.StatusAbsent:
			cell.Capacity = 0
			cell.Reserve = 0
		}
	}
}

// bessContribute serves residual demand from stored energy per the
// configured non-emergency mode and returns the demand still unserved.
func (sc *Scenario) bessContribute(y, m, d, h int, rem float64) float64 {
	switch sc.Params.BessNonEmergencyUse {
	case BessNonEmergencyEqual:
		rem = sc.bessContributeEqual(y, m, d, h, rem)
	case BessNonEmergencySequential:
		rem = sc.bessContributeSequential(y, m, d, h, rem)
	}
	if rem < Tolerance {
		return 0
	}
	return rem
}

// Equal distribution: every operable BESS discharges the same fraction of
// its stored energy.
func (sc *Scenario) bessContributeEqual(y, m, d, h int, rem float64) float64 {
	total := 0.0
	for _, src := range sc.Sources {
		if !src.IsBESS() {
			continue
		}
		cell := src.At(y, m, d, h)
		if cell.Status.Operable() && cell.Reserve > 0 {
			total += cell.Reserve
		}
	}
	if total <= 0 {
		return rem
	}
	lf := rem / total
	if lf > 1 {
		lf = 1
	}
	for _, src := range sc.Sources {
		if !src.IsBESS() {
			continue
		}
		cell := src.At(y, m, d, h)
		if !cell.Status.Operable() || cell.Reserve <= 0 {
			continue
		}
		delivery := cell.Reserve * lf
		cell.PowerOutput = delivery
		cell.EnergyOutput = delivery
		cell.Reserve -= delivery
		cell.Status = model.StatusOn
		rem -= delivery
	}
	return rem
}

// Selection utilisation: drain units one by one in list order until demand
// is met. A unit emptied by its delivery returns to idle.
func (sc *Scenario) bessContributeSequential(y, m, d, h int, rem float64) float64 {
	for _, src := range sc.Sources {
		if !src.IsBESS() {
			continue
		}
		cell := src.At(y, m, d, h)
		if !cell.Status.Operable() || cell.Reserve <= 0 {
			continue
		}
		delivery := rem
		if delivery > cell.Reserve {
			delivery = cell.Reserve
		}
		cell.PowerOutput = delivery
		cell.EnergyOutput = delivery
		cell.Reserve -= delivery
		if cell.Reserve > Tolerance {
			cell.Status = model.StatusOn
		} else {
			cell.Status = model.StatusOff
		}
		rem -= delivery
		if rem < Tolerance {
			return 0
		}
	}
	return rem
}

// chargeBESS runs only when demand is satisfied. It sizes the hour's
// charging draw from the total charge deficit, procures it from non-BESS
// group headroom in priority order, and apportions the delivered energy
// across the deficient units. Returns the charging power drawn this hour.
func (sc *Scenario) chargeBESS(y, m, d, h int) float64 {
	var deficient []*model.HourCell
	totalDeficit := 0.0
	for _, src := range sc.Sources {
		if !src.IsBESS() {
			continue
		}
		cell := src.At(y, m, d, h)
		switch cell.Status {
		case model.StatusOn, model.StatusFailed, model.StatusDowntime, model.StatusAbsent:
			continue
		}
		if deficit := cell.Capacity - cell.Reserve; deficit > Tolerance {
			totalDeficit += deficit
			deficient = append(deficient, cell)
		}
	}
	if len(deficient) == 0 {
		return 0
	}

	required := totalDeficit
	if h >= 19 || h <= 8 {
		required *= sc.Params.ChargeRatioNight / 100
	}
	if sc.Params.BessChargeHours > 0 {
		required /= sc.Params.BessChargeHours
	}
	if required <= Tolerance {
		return 0
	}

	delivered := sc.procureCharge(y, m, d, h, required)
	if delivered <= Tolerance {
		return 0
	}

	// Each unit's deficit shrinks by the requirement-to-availability ratio,
	// so the stored total matches the energy actually procured.
	ratio := totalDeficit / delivered
	for _, cell := range deficient {
		cell.Reserve += (cell.Capacity - cell.Reserve) / ratio
		if cell.Reserve >= cell.Capacity-Tolerance {
			cell.Reserve = cell.Capacity
			cell.Status = model.StatusOff
		} else {
			cell.Status = model.StatusCharging
		}
	}
	return delivered
}

// procureCharge draws charging power from non-BESS groups in priority order,
// splitting each group's contribution over its members pro rata to their
// headroom. Captive diesel is excluded from charging during daytime hours.
func (sc *Scenario) procureCharge(y, m, d, h int, chargeReq float64) float64 {
	delivered := 0.0
	for _, group := range sc.priorityGroups() {
		if group[0].IsBESS() {
			continue
		}
		if h >= 9 && h <= 17 && group[0].Type.Fuel == model.FuelDiesel && group[0].Type.Finance == model.FinanceCaptive {
			continue
		}

		grpReserve := 0.0
		for _, src := range group {
			cell := src.At(y, m, d, h)
			if !chargeableStatus(cell.Status) || cell.Capacity <= 0 {
				continue
			}
			if headroom := cell.Capacity - cell.PowerOutput; headroom > 0 {
				grpReserve += headroom
			}
		}
		if grpReserve <= 0 {
			continue
		}

		contribution := chargeReq - delivered
		if contribution > grpReserve {
			contribution = grpReserve
		}
		for _, src := range group {
			cell := src.At(y, m, d, h)
			if !chargeableStatus(cell.Status) || cell.Capacity <= 0 {
				continue
			}
			headroom := cell.Capacity - cell.PowerOutput
			if headroom <= 0 {
				continue
			}
			share := headroom / grpReserve * contribution
			cell.PowerOutput += share
			cell.EnergyOutput += share
			cell.Reserve = cell.Capacity - cell.PowerOutput
			if cell.Status == model.StatusOff {
				cell.Status = model.StatusOn
			}
		}
		delivered += contribution
		if chargeReq-delivered < Tolerance {
			break
		}
	}
	return delivered
}

func chargeableStatus(s model.Status) bool {
	return s == model.StatusOff || s == model.StatusOn
}
