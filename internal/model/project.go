package model

import "fmt"

// SolarProfileBaseMW is the installed capacity the irradiance profile is
// normalised against: profile values are MW produced per 5 MW installed.
const SolarProfileBaseMW = 5.0

// LoadPoint is one year of the load projection.
type LoadPoint struct {
	CriticalLoad float64 `json:"critical_load"`
	TotalLoad    float64 `json:"total"`
}

// SiteData holds scalar site parameters.
type SiteData struct {
	// LossDuringFailure is the monetary loss per critical-load interruption,
	// in currency units per event.
	LossDuringFailure float64 `json:"loss_during_failure"`
}

// Project is the static input context shared by every source and scenario:
// the demand tensor, the solar irradiance profile, the load projection and
// site parameters. Read once, immutable during simulation.
type Project struct {
	// LoadData[y-1][m-1][d-1][h] is the site demand in MW.
	LoadData [Years][MonthsPerYear][MaxDaysPerMonth][HoursPerDay]float64
	// SolarProfile[m-1][d-1][h] is MW output per SolarProfileBaseMW installed.
	SolarProfile [MonthsPerYear][MaxDaysPerMonth][HoursPerDay]float64
	// LoadProjection[y-1] carries the critical and total load per year.
	LoadProjection [Years]LoadPoint

	Site SiteData

	// loadSet / solarSet track which cells were actually supplied by the
	// loader, so a read of a missing cell can fail instead of silently
	// returning zero.
	loadSet  [Years][MonthsPerYear][MaxDaysPerMonth]bool
	solarSet [MonthsPerYear][MaxDaysPerMonth]bool
}

// SetLoadDay fills one day (24 values) of the demand tensor.
func (p *Project) SetLoadDay(y, m, d int, hours [HoursPerDay]float64) {
	p.LoadData[y-1][m-1][d-1] = hours
	p.loadSet[y-1][m-1][d-1] = true
}

// SetSolarDay fills one day (24 values) of the irradiance profile.
func (p *Project) SetSolarDay(m, d int, hours [HoursPerDay]float64) {
	p.SolarProfile[m-1][d-1] = hours
	p.solarSet[m-1][d-1] = true
}

// Load returns the demand for (y,m,d,h) or a DataGap error if the loader
// never supplied the day.
func (p *Project) Load(y, m, d, h int) (float64, error) {
	if !p.loadSet[y-1][m-1][d-1] {
		return 0, fmt.Errorf("load data gap at year %d month %d day %d", y, m, d)
	}
	return p.LoadData[y-1][m-1][d-1][h], nil
}

// Solar returns the irradiance profile value for (m,d,h) or a DataGap error.
func (p *Project) Solar(m, d, h int) (float64, error) {
	if !p.solarSet[m-1][d-1] {
		return 0, fmt.Errorf("solar profile gap at month %d day %d", m, d)
	}
	return p.SolarProfile[m-1][d-1][h], nil
}

// Complete verifies every calendar day has load and solar data.
func (p *Project) Complete() error {
	for m := 1; m <= MonthsPerYear; m++ {
		for d := 1; d <= DaysInMonth(m); d++ {
			if !p.solarSet[m-1][d-1] {
				return fmt.Errorf("solar profile gap at month %d day %d", m, d)
			}
			for y := 1; y <= Years; y++ {
				if !p.loadSet[y-1][m-1][d-1] {
					return fmt.Errorf("load data gap at year %d month %d day %d", y, m, d)
				}
			}
		}
	}
	return nil
}
