package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"energy-mix-sim/internal/model"
	"energy-mix-sim/internal/sim"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk scenario configuration shape (YAML).
type Config struct {
	Scenario ScenarioConfig `yaml:"scenario"`
	// CatalogueFile optionally points at a source-type catalogue (YAML).
	// If both CatalogueFile and Catalogue are provided, inline entries
	// override file entries with the same name.
	CatalogueFile string             `yaml:"catalogue_file"`
	Catalogue     []model.SourceType `yaml:"catalogue"`
	Sources       []SourceEntry      `yaml:"sources"`
}

// ScenarioConfig carries the scenario identity and operating policy.
type ScenarioConfig struct {
	Name   string     `yaml:"name"`
	Client string     `yaml:"client"`
	Params sim.Params `yaml:",inline"`
}

// SourceEntry configures one instance of a catalogue type.
type SourceEntry struct {
	Type   string             `yaml:"type"`
	Name   string             `yaml:"name"`
	Config model.SourceConfig `yaml:",inline"`
}

// Load reads and validates a scenario configuration, resolving the catalogue
// file relative to the config directory when the path is not absolute.
func Load(path string) (*Config, error) {
	c, err := LoadUnchecked(path)
	if err != nil {
		return nil, err
	}
	// Sources that omit end_year run to the end of the horizon; this keeps
	// configs concise.
	for i := range c.Sources {
		if c.Sources[i].Config.EndYear == 0 {
			c.Sources[i].Config.EndYear = model.Years
		}
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadUnchecked loads and merges config, but does not validate it.
// Useful for debugging/printing partial configs.
func LoadUnchecked(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	if c.CatalogueFile != "" {
		cataloguePath := c.CatalogueFile
		if !filepath.IsAbs(cataloguePath) {
			cand := filepath.Join(filepath.Dir(path), cataloguePath)
			if _, err := os.Stat(cand); err == nil {
				cataloguePath = cand
			}
		}
		loaded, err := loadCatalogueFile(cataloguePath)
		if err != nil {
			return nil, err
		}
		c.Catalogue = MergeCatalogue(loaded, c.Catalogue)
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	if c.Scenario.Name == "" {
		return errors.New("scenario.name is required")
	}
	if err := c.Scenario.Params.Validate(); err != nil {
		return fmt.Errorf("scenario params invalid: %w", err)
	}
	if len(c.Sources) == 0 {
		return errors.New("at least one source is required")
	}
	types := c.CatalogueByName()
	for _, t := range types {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, s := range c.Sources {
		typ, ok := types[s.Type]
		if !ok {
			return fmt.Errorf("source %q references unknown type %q", s.Name, s.Type)
		}
		// Validate by constructing the instance.
		if _, err := model.NewSource(s.Name, typ, s.Config); err != nil {
			return err
		}
	}
	return nil
}

// CatalogueByName indexes the merged catalogue.
func (c *Config) CatalogueByName() map[string]*model.SourceType {
	out := make(map[string]*model.SourceType, len(c.Catalogue))
	for i := range c.Catalogue {
		out[c.Catalogue[i].Name] = &c.Catalogue[i]
	}
	return out
}

// BuildSources instantiates the configured portfolio against the catalogue.
func (c *Config) BuildSources() ([]*model.Source, error) {
	types := c.CatalogueByName()
	out := make([]*model.Source, 0, len(c.Sources))
	for _, s := range c.Sources {
		typ, ok := types[s.Type]
		if !ok {
			return nil, fmt.Errorf("source %q references unknown type %q", s.Name, s.Type)
		}
		src, err := model.NewSource(s.Name, typ, s.Config)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

type catalogueFileWrapper struct {
	Catalogue []model.SourceType `yaml:"catalogue"`
}

func loadCatalogueFile(path string) ([]model.SourceType, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var w catalogueFileWrapper
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return nil, err
	}
	return w.Catalogue, nil
}

// MergeCatalogue overlays inline entries onto the file catalogue by name.
func MergeCatalogue(base, override []model.SourceType) []model.SourceType {
	out := make([]model.SourceType, len(base))
	copy(out, base)
	index := make(map[string]int, len(out))
	for i := range out {
		index[out[i].Name] = i
	}
	for _, t := range override {
		if i, ok := index[t.Name]; ok {
			out[i] = t
		} else {
			out = append(out, t)
		}
	}
	return out
}
