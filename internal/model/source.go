package model

import (
	"errors"
	"fmt"
)

// HourCell is the per-hour operational record of one source.
//
// Units: Capacity and PowerOutput in MW (for BESS, Capacity and Reserve are
// MWh of stored energy), EnergyOutput in MWh over the hour, Reserve in MW of
// spinning headroom (non-BESS) or MWh stored (BESS), MandatoryReserve in MW.
type HourCell struct {
	Capacity         float64
	PowerOutput      float64
	EnergyOutput     float64
	Reserve          float64
	MandatoryReserve float64
	Status           Status

	// participated flags a source the load pass has committed to this hour's
	// allocation; stagedOutput remembers its pre-pass output. Both are
	// dispatch-internal and reset every hour.
	participated bool
	stagedOutput float64
}

// MarkParticipant records the source into the current allocation round,
// remembering its pre-pass output.
func (c *HourCell) MarkParticipant() {
	c.participated = true
	c.stagedOutput = c.PowerOutput
}

// Participant reports whether the cell was marked for the current round and
// returns the remembered pre-pass output.
func (c *HourCell) Participant() (bool, float64) {
	return c.participated, c.stagedOutput
}

// ClearParticipant resets the allocation marker.
func (c *HourCell) ClearParticipant() {
	c.participated = false
	c.stagedOutput = 0
}

// SourceConfig is the per-instance configuration of a catalogue type.
//
// Rating is MW for generating sources and MWh for BESS. SpinningReserve is
// the instance's percentage contribution to the scenario-level spinning
// reserve requirement. MinLoading/MaxLoading override the type defaults when
// non-zero.
type SourceConfig struct {
	StartYear       int     `yaml:"start_year" json:"start_year"`
	EndYear         int     `yaml:"end_year" json:"end_year"`
	Rating          float64 `yaml:"rating" json:"rating"`
	Unit            string  `yaml:"unit" json:"unit"`
	Priority        int     `yaml:"priority" json:"priority"`
	SpinningReserve float64 `yaml:"spinning_reserve" json:"spinning_reserve"`
	MinLoading      float64 `yaml:"min_loading" json:"min_loading"`
	MaxLoading      float64 `yaml:"max_loading" json:"max_loading"`
}

func (c SourceConfig) Validate() error {
	if c.StartYear < 1 || c.StartYear > Years {
		return fmt.Errorf("start_year %d outside horizon [1, %d]", c.StartYear, Years)
	}
	if c.EndYear < c.StartYear || c.EndYear > Years {
		return fmt.Errorf("end_year %d invalid for start_year %d", c.EndYear, c.StartYear)
	}
	if c.Rating <= 0 {
		return errors.New("rating must be > 0")
	}
	if c.MinLoading < 0 || c.MaxLoading < 0 || c.MaxLoading > 100 {
		return errors.New("loading percentages must be within [0, 100]")
	}
	if c.MaxLoading > 0 && c.MinLoading > c.MaxLoading {
		return fmt.Errorf("min_loading %.1f exceeds max_loading %.1f", c.MinLoading, c.MaxLoading)
	}
	if c.SpinningReserve < 0 || c.SpinningReserve > 100 {
		return errors.New("spinning_reserve must be within [0, 100]")
	}
	return nil
}

// Source is a configured instance of a catalogue type plus its dense
// operational tensor, indexed by CellIndex. The scenario owns the source
// list exclusively; only the dispatch engine mutates Ops.
type Source struct {
	Name   string
	Type   *SourceType
	Config SourceConfig

	Ops []HourCell
}

// NewSource validates the configuration against the type and allocates the
// operational tensor. Every cell starts Absent; the seeding pass opens the
// operable years.
func NewSource(name string, typ *SourceType, cfg SourceConfig) (*Source, error) {
	if typ == nil {
		return nil, errors.New("source type is nil")
	}
	if name == "" {
		name = typ.Name
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("source %s config invalid: %w", name, err)
	}
	return &Source{
		Name:   name,
		Type:   typ,
		Config: cfg,
		Ops:    make([]HourCell, CellsPerSource),
	}, nil
}

// At returns the cell for (y,m,d,h).
func (s *Source) At(y, m, d, h int) *HourCell {
	return &s.Ops[CellIndex(y, m, d, h)]
}

// PresentIn reports whether the instance exists in the given year.
func (s *Source) PresentIn(year int) bool {
	return year >= s.Config.StartYear && year <= s.Config.EndYear
}

// IsBESS reports whether the instance is a battery storage system.
func (s *Source) IsBESS() bool {
	return s.Type.Kind == KindBESS
}

// MinLoading returns the effective minimum loading percent, preferring the
// instance override.
func (s *Source) MinLoading() float64 {
	if s.Config.MinLoading > 0 {
		return s.Config.MinLoading
	}
	return s.Type.MinLoading
}

// MaxLoading returns the effective maximum loading percent, preferring the
// instance override. Defaults to 100 when neither is set.
func (s *Source) MaxLoading() float64 {
	if s.Config.MaxLoading > 0 {
		return s.Config.MaxLoading
	}
	if s.Type.MaxLoading > 0 {
		return s.Type.MaxLoading
	}
	return 100
}

// HourCapacity computes the hour's available capacity per the type rules:
// thermal captive units derate with age and run up to max loading, PPA feeds
// hold rated capacity, renewables follow the irradiance profile, BESS
// capacity is the rated energy content.
func (s *Source) HourCapacity(p *Project, y, m, d, h int) float64 {
	switch s.Type.Kind {
	case KindBESS:
		return s.Config.Rating
	case KindPPAFeed:
		return s.Config.Rating
	case KindRenewable:
		return p.SolarProfile[m-1][d-1][h] / SolarProfileBaseMW * s.Config.Rating
	default:
		yearsOp := y - s.Config.StartYear
		return s.Config.Rating * s.MaxLoading() / 100 * s.Type.DegradationFactor(yearsOp)
	}
}
