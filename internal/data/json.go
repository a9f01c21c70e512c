package data

import (
	"encoding/json"
	"fmt"
	"os"

	"energy-mix-sim/internal/model"
)

// projectDocument matches the JSON shape the out-of-core loader produces.
//
// Tensors are nested arrays sized by the simulation calendar:
// load_data[year][month][day][hour], solar_profile[month][day][hour].
// Days follow the 28/30/31 synthetic calendar.
type projectDocument struct {
	Site           model.SiteData      `json:"site"`
	LoadProjection []model.LoadPoint   `json:"load_projection"`
	SolarProfile   [][][]float64       `json:"solar_profile"`
	LoadData       [][][][]float64     `json:"load_data"`
}

// LoadProjectJSON reads the project input document and validates it against
// the calendar. Every missing or short-sized day is an error here rather
// than a silent zero during simulation.
func LoadProjectJSON(path string) (*model.Project, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var doc projectDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return buildProject(&doc)
}

func buildProject(doc *projectDocument) (*model.Project, error) {
	p := &model.Project{Site: doc.Site}

	if len(doc.LoadProjection) != model.Years {
		return nil, fmt.Errorf("load_projection has %d years, want %d", len(doc.LoadProjection), model.Years)
	}
	copy(p.LoadProjection[:], doc.LoadProjection)

	if len(doc.SolarProfile) != model.MonthsPerYear {
		return nil, fmt.Errorf("solar_profile has %d months, want %d", len(doc.SolarProfile), model.MonthsPerYear)
	}
	for m := 1; m <= model.MonthsPerYear; m++ {
		days := doc.SolarProfile[m-1]
		if len(days) != model.DaysInMonth(m) {
			return nil, fmt.Errorf("solar_profile month %d has %d days, want %d", m, len(days), model.DaysInMonth(m))
		}
		for d := 1; d <= model.DaysInMonth(m); d++ {
			hours, err := dayHours(days[d-1])
			if err != nil {
				return nil, fmt.Errorf("solar_profile month %d day %d: %w", m, d, err)
			}
			p.SetSolarDay(m, d, hours)
		}
	}

	if len(doc.LoadData) != model.Years {
		return nil, fmt.Errorf("load_data has %d years, want %d", len(doc.LoadData), model.Years)
	}
	for y := 1; y <= model.Years; y++ {
		months := doc.LoadData[y-1]
		if len(months) != model.MonthsPerYear {
			return nil, fmt.Errorf("load_data year %d has %d months, want %d", y, len(months), model.MonthsPerYear)
		}
		for m := 1; m <= model.MonthsPerYear; m++ {
			days := months[m-1]
			if len(days) != model.DaysInMonth(m) {
				return nil, fmt.Errorf("load_data year %d month %d has %d days, want %d", y, m, len(days), model.DaysInMonth(m))
			}
			for d := 1; d <= model.DaysInMonth(m); d++ {
				hours, err := dayHours(days[d-1])
				if err != nil {
					return nil, fmt.Errorf("load_data year %d month %d day %d: %w", y, m, d, err)
				}
				p.SetLoadDay(y, m, d, hours)
			}
		}
	}

	return p, nil
}

func dayHours(vals []float64) ([model.HoursPerDay]float64, error) {
	var out [model.HoursPerDay]float64
	if len(vals) != model.HoursPerDay {
		return out, fmt.Errorf("has %d hours, want %d", len(vals), model.HoursPerDay)
	}
	copy(out[:], vals)
	return out, nil
}
