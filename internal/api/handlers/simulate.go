package handlers

import (
	"fmt"
	"net/http"

	"energy-mix-sim/internal/api/models"
	"energy-mix-sim/internal/data"
	"energy-mix-sim/internal/model"
	"energy-mix-sim/internal/report"
	"energy-mix-sim/internal/sim"

	"github.com/gin-gonic/gin"
)

// SimulateHandler runs scenario simulations.
type SimulateHandler struct {
	cache *data.ProjectCache
}

func NewSimulateHandler(cache *data.ProjectCache) *SimulateHandler {
	if cache == nil {
		cache = data.GetCache()
	}
	return &SimulateHandler{cache: cache}
}

// Simulate handles POST /api/v1/simulate.
func (h *SimulateHandler) Simulate(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}

	project, err := h.cache.Load(req.ProjectFile)
	if err != nil {
		badRequest(c, fmt.Sprintf("load project: %v", err))
		return
	}

	res, sc, err := runScenario(project, req.Scenario)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	resp := models.SimulateResponse{
		Status: "completed",
		Years:  res.Years,
		KPIs:   res.KPIs,
	}
	if req.Options.IncludeHourly {
		resp.Hourly = hourlyRows(sc)
	}
	c.JSON(http.StatusOK, resp)
}

// runScenario builds and simulates one scenario spec against a loaded
// project, returning the rollup.
func runScenario(project *model.Project, spec models.ScenarioSpec) (*report.Result, *sim.Scenario, error) {
	types := make(map[string]*model.SourceType, len(spec.Catalogue))
	for i := range spec.Catalogue {
		types[spec.Catalogue[i].Name] = &spec.Catalogue[i]
	}
	var sources []*model.Source
	for _, s := range spec.Sources {
		typ, ok := types[s.Type]
		if !ok {
			return nil, nil, fmt.Errorf("source %q references unknown type %q", s.Name, s.Type)
		}
		cfg := s.Config
		if cfg.EndYear == 0 {
			cfg.EndYear = model.Years
		}
		src, err := model.NewSource(s.Name, typ, cfg)
		if err != nil {
			return nil, nil, err
		}
		sources = append(sources, src)
	}

	sc, err := sim.NewScenario(spec.Name, project, spec.Params, sources)
	if err != nil {
		return nil, nil, err
	}
	if err := sc.Simulate(); err != nil {
		return nil, nil, err
	}
	return report.Rollup(sc), sc, nil
}

func hourlyRows(sc *sim.Scenario) []models.HourlyRow {
	rows := make([]models.HourlyRow, 0, model.Years*model.HoursInYear())
	for y := 1; y <= model.Years; y++ {
		for m := 1; m <= model.MonthsPerYear; m++ {
			for d := 1; d <= model.DaysInMonth(m); d++ {
				for h := 0; h < model.HoursPerDay; h++ {
					r := sc.ResultAt(y, m, d, h)
					rows = append(rows, models.HourlyRow{
						Year: y, Month: m, Day: d, Hour: h,
						PowerReq:          r.PowerReq,
						UnservedPowerReq:  r.UnservedPowerReq,
						SuddenPowerDrop:   r.SuddenPowerDrop,
						UnservedPowerDrop: r.UnservedPowerDrop,
						LoadShed:          r.LoadShed,
						BessCharge:        r.BessCharge,
						Log:               r.Log,
					})
				}
			}
		}
	}
	return rows
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error": gin.H{
			"code":    "BAD_REQUEST",
			"message": msg,
		},
	})
}
