package sim

import (
	"testing"

	"energy-mix-sim/internal/model"

	"github.com/stretchr/testify/require"
)

// flatProject builds a project with a constant load and an optional hourly
// solar shape, repeated across the whole calendar.
func flatProject(loadMW float64, solar func(h int) float64) *model.Project {
	p := &model.Project{}
	p.Site.LossDuringFailure = 100000

	var load, sun [model.HoursPerDay]float64
	for h := 0; h < model.HoursPerDay; h++ {
		load[h] = loadMW
		if solar != nil {
			sun[h] = solar(h)
		}
	}
	for m := 1; m <= model.MonthsPerYear; m++ {
		for d := 1; d <= model.DaysInMonth(m); d++ {
			p.SetSolarDay(m, d, sun)
			for y := 1; y <= model.Years; y++ {
				p.SetLoadDay(y, m, d, load)
			}
		}
	}
	for y := 1; y <= model.Years; y++ {
		p.LoadProjection[y-1] = model.LoadPoint{CriticalLoad: loadMW, TotalLoad: loadMW}
	}
	return p
}

func reliableThermal(name string) *model.SourceType {
	return &model.SourceType{
		Name:    name,
		Kind:    model.KindThermal,
		Finance: model.FinanceCaptive,
		Fuel:    "gas",
	}
}

func mustSource(t *testing.T, name string, typ *model.SourceType, cfg model.SourceConfig) *model.Source {
	t.Helper()
	src, err := model.NewSource(name, typ, cfg)
	require.NoError(t, err)
	return src
}

func mustScenario(t *testing.T, p *model.Project, params Params, sources ...*model.Source) *Scenario {
	t.Helper()
	sc, err := NewScenario("test", p, params, sources)
	require.NoError(t, err)
	return sc
}
