package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"

	"energy-mix-sim/internal/model"
)

// Tolerance snaps near-zero residuals (MW) to exact zero, so accumulated
// floating-point drift cannot produce spurious shortfalls.
const Tolerance = 0.01

// BESS non-emergency discharge policies.
const (
	BessNonEmergencyNone       = 0 // BESS only reacts to sudden drops
	BessNonEmergencyEqual      = 1 // split residual demand across BESS by reserve
	BessNonEmergencySequential = 2 // drain BESS units one by one in list order
)

// Params are the scenario-level operating policy knobs.
type Params struct {
	// SpinningReservePerc is the global percentage S of hourly demand held as
	// spinning reserve by contributing priority groups.
	SpinningReservePerc float64 `yaml:"spinning_reserve_perc" json:"spinning_reserve_perc"`
	// BessNonEmergencyUse selects the non-emergency BESS discharge mode.
	BessNonEmergencyUse int `yaml:"bess_non_emergency_use" json:"bess_non_emergency_use"`
	// BessPriorityWiseUse folds BESS discharge into the priority pass at the
	// BESS group's own priority instead of running it after all groups.
	BessPriorityWiseUse bool `yaml:"bess_priority_wise_use" json:"bess_priority_wise_use"`
	// BessChargeHours divides a BESS charge deficit into an hourly allowance.
	BessChargeHours float64 `yaml:"bess_charge_hours" json:"bess_charge_hours"`
	// ChargeRatioNight scales charging during night hours, percent.
	ChargeRatioNight float64 `yaml:"charge_ratio_night" json:"charge_ratio_night"`
	// Seed drives the failure/reduction seeding stream. Equal seeds and equal
	// inputs reproduce identical runs.
	Seed int64 `yaml:"seed" json:"seed"`
}

func (p Params) Validate() error {
	if p.SpinningReservePerc < 0 || p.SpinningReservePerc > 100 {
		return errors.New("spinning_reserve_perc must be within [0, 100]")
	}
	switch p.BessNonEmergencyUse {
	case BessNonEmergencyNone, BessNonEmergencyEqual, BessNonEmergencySequential:
	default:
		return fmt.Errorf("bess_non_emergency_use must be 0, 1 or 2, got %d", p.BessNonEmergencyUse)
	}
	if p.BessChargeHours < 0 {
		return errors.New("bess_charge_hours must be >= 0")
	}
	if p.ChargeRatioNight < 0 || p.ChargeRatioNight > 100 {
		return errors.New("charge_ratio_night must be within [0, 100]")
	}
	return nil
}

// Scenario bundles a source portfolio, the shared project context and the
// operating policy, and owns the per-hour result grid.
type Scenario struct {
	Name    string
	Project *model.Project
	Params  Params
	Sources []*model.Source

	Results []HourlyResult

	seeded bool
	rng    *rand.Rand
}

// NewScenario validates the portfolio and seeds every source's availability
// mask from a single pseudo-random stream. Source order matters to the
// stream, so equal inputs reproduce identical masks.
func NewScenario(name string, project *model.Project, params Params, sources []*model.Source) (*Scenario, error) {
	if project == nil {
		return nil, errors.New("project is nil")
	}
	if len(sources) == 0 {
		return nil, errors.New("no sources configured")
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	for _, src := range sources {
		if err := src.Type.Validate(); err != nil {
			return nil, err
		}
		if err := src.Config.Validate(); err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Name, err)
		}
	}

	sc := &Scenario{
		Name:    name,
		Project: project,
		Params:  params,
		Sources: sources,
		Results: newResultGrid(),
		rng:     rand.New(rand.NewSource(params.Seed)),
	}
	sc.sortByPriority()
	if err := sc.seedAll(); err != nil {
		return nil, err
	}
	return sc, nil
}

// sortByPriority restores ascending priority order (lower value dispatches
// first). Stable so equal-priority sources keep their configured order.
func (sc *Scenario) sortByPriority() {
	sort.SliceStable(sc.Sources, func(i, j int) bool {
		return sc.Sources[i].Config.Priority < sc.Sources[j].Config.Priority
	})
}

// priorityGroups returns the source list split into runs of equal priority.
// Must be called while the list is priority-sorted.
func (sc *Scenario) priorityGroups() [][]*model.Source {
	var groups [][]*model.Source
	for i := 0; i < len(sc.Sources); {
		j := i + 1
		for j < len(sc.Sources) && sc.Sources[j].Config.Priority == sc.Sources[i].Config.Priority {
			j++
		}
		groups = append(groups, sc.Sources[i:j])
		i = j
	}
	return groups
}

// SourceByName returns the configured instance with the given name, or nil.
func (sc *Scenario) SourceByName(name string) *model.Source {
	for _, src := range sc.Sources {
		if src.Name == name {
			return src
		}
	}
	return nil
}

// ResultAt returns the hourly result row for (y,m,d,h).
func (sc *Scenario) ResultAt(y, m, d, h int) *HourlyResult {
	return &sc.Results[model.CellIndex(y, m, d, h)]
}
