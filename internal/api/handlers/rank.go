package handlers

import (
	"fmt"
	"net/http"

	"energy-mix-sim/internal/analysis"
	"energy-mix-sim/internal/api/models"
	"energy-mix-sim/internal/data"
	"energy-mix-sim/internal/report"

	"github.com/gin-gonic/gin"
)

// RankHandler compares several scenarios over the same project inputs.
type RankHandler struct {
	cache *data.ProjectCache
}

func NewRankHandler(cache *data.ProjectCache) *RankHandler {
	if cache == nil {
		cache = data.GetCache()
	}
	return &RankHandler{cache: cache}
}

// Rank handles POST /api/v1/rank.
func (h *RankHandler) Rank(c *gin.Context) {
	var req models.RankRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err.Error())
		return
	}
	if len(req.Scenarios) == 0 {
		badRequest(c, "at least one scenario is required")
		return
	}

	project, err := h.cache.Load(req.ProjectFile)
	if err != nil {
		badRequest(c, fmt.Sprintf("load project: %v", err))
		return
	}

	var results []*report.Result
	for _, spec := range req.Scenarios {
		res, _, err := runScenario(project, spec)
		if err != nil {
			badRequest(c, fmt.Sprintf("scenario %q: %v", spec.Name, err))
			return
		}
		results = append(results, res)
	}

	ranked := analysis.Rank(results)
	resp := models.RankResponse{}
	for i, r := range ranked {
		resp.Rankings = append(resp.Rankings, models.RankingFrom(i+1, r))
	}
	c.JSON(http.StatusOK, resp)
}
