package models

import (
	"energy-mix-sim/internal/model"
	"energy-mix-sim/internal/sim"
)

// SimulateRequest represents the request body for running a scenario.
type SimulateRequest struct {
	// ProjectFile points at the project input document (JSON) on the server.
	ProjectFile string         `json:"project_file" binding:"required"`
	Scenario    ScenarioSpec   `json:"scenario" binding:"required"`
	Options     SimulateOptions `json:"options,omitempty"`
}

// ScenarioSpec carries the scenario identity, policy and portfolio inline.
type ScenarioSpec struct {
	Name      string             `json:"name" binding:"required"`
	Params    sim.Params         `json:"params"`
	Catalogue []model.SourceType `json:"catalogue" binding:"required"`
	Sources   []SourceSpec       `json:"sources" binding:"required"`
}

// SourceSpec configures one instance of a catalogue type.
type SourceSpec struct {
	Type   string             `json:"type" binding:"required"`
	Name   string             `json:"name,omitempty"`
	Config model.SourceConfig `json:"config"`
}

// SimulateOptions contains optional run parameters.
type SimulateOptions struct {
	// IncludeHourly returns the full per-hour ledger (~100k rows).
	IncludeHourly bool `json:"include_hourly,omitempty"`
}

// RankRequest runs several scenarios against the same project inputs and
// ranks them by KPI score.
type RankRequest struct {
	ProjectFile string         `json:"project_file" binding:"required"`
	Scenarios   []ScenarioSpec `json:"scenarios" binding:"required"`
}
