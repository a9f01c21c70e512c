package model

// The simulation runs on a fixed synthetic calendar: February has 28 days,
// April/June/September/November have 30, every other month 31. No leap years.

const (
	// Years is the simulation horizon.
	Years = 12
	// MonthsPerYear is fixed at 12.
	MonthsPerYear = 12
	// MaxDaysPerMonth sizes the dense tensors; cells for days beyond a
	// month's length stay Absent and are never visited.
	MaxDaysPerMonth = 31
	// HoursPerDay is fixed at 24.
	HoursPerDay = 24

	// CellsPerSource is the flat tensor length per source.
	CellsPerSource = Years * MonthsPerYear * MaxDaysPerMonth * HoursPerDay
)

// DaysInMonth returns the day count for month m (1..12).
func DaysInMonth(m int) int {
	switch m {
	case 2:
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}

// HoursInYear is the number of simulated hours per year (8760).
func HoursInYear() int {
	total := 0
	for m := 1; m <= MonthsPerYear; m++ {
		total += DaysInMonth(m) * HoursPerDay
	}
	return total
}

// CellIndex maps (y,m,d,h) with y,m,d 1-based and h 0-based onto the flat
// tensor offset. Callers are responsible for passing in-range coordinates.
func CellIndex(y, m, d, h int) int {
	return ((((y-1)*MonthsPerYear+(m-1))*MaxDaysPerMonth+(d-1))*HoursPerDay + h)
}

// NextHour advances one hour, crossing day, month and year boundaries.
// Returns ok=false past the end of the horizon.
func NextHour(y, m, d, h int) (ny, nm, nd, nh int, ok bool) {
	h++
	if h >= HoursPerDay {
		h = 0
		d++
		if d > DaysInMonth(m) {
			d = 1
			m++
			if m > MonthsPerYear {
				m = 1
				y++
				if y > Years {
					return 0, 0, 0, 0, false
				}
			}
		}
	}
	return y, m, d, h, true
}

// PrevHour steps one hour back, crossing boundaries. Returns ok=false before
// the first hour of the horizon.
func PrevHour(y, m, d, h int) (py, pm, pd, ph int, ok bool) {
	h--
	if h < 0 {
		h = HoursPerDay - 1
		d--
		if d < 1 {
			m--
			if m < 1 {
				m = MonthsPerYear
				y--
				if y < 1 {
					return 0, 0, 0, 0, false
				}
			}
			d = DaysInMonth(m)
		}
	}
	return y, m, d, h, true
}
