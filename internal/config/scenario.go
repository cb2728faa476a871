package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"realestate-sim/internal/model"

	"gopkg.in/yaml.v3"
)

// Scenario is a portfolio run described on disk (YAML).
type Scenario struct {
	Simulations int     `yaml:"simulations"`
	Seed        *uint64 `yaml:"seed"`
	Workers     int     `yaml:"workers"`

	Properties []PropertySpec `yaml:"properties"`
}

// PropertySpec is one property in a scenario. If PresetFile is set it is
// loaded first and the inline fields are overlaid on top of it.
type PropertySpec struct {
	PresetFile          string `yaml:"preset_file"`
	model.PropertyInput `yaml:",inline"`
}

// Preset is a named property template (e.g. examples/properties/*.yaml).
type Preset struct {
	ID       string              `json:"id"`
	File     string              `json:"file"`
	Property model.PropertyInput `json:"property"`
}

type presetFileWrapper struct {
	Property model.PropertyInput `yaml:"property"`
}

// LoadScenario reads a scenario file and resolves every property against the
// market defaults and its preset file. The returned properties are validated.
func LoadScenario(path string) (*Scenario, []model.PropertyInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, nil, fmt.Errorf("parse %s: %w", path, err)
	}
	props, err := s.Resolve(filepath.Dir(path))
	if err != nil {
		return nil, nil, err
	}
	return &s, props, nil
}

// Resolve turns the scenario's specs into validated properties. Relative
// preset paths are tried against baseDir first, then the working directory.
func (s *Scenario) Resolve(baseDir string) ([]model.PropertyInput, error) {
	if len(s.Properties) == 0 {
		return nil, errors.New("scenario has no properties")
	}
	out := make([]model.PropertyInput, 0, len(s.Properties))
	for i, spec := range s.Properties {
		base := model.DefaultProperty()
		if spec.PresetFile != "" {
			loaded, err := LoadPreset(resolvePath(baseDir, spec.PresetFile))
			if err != nil {
				return nil, fmt.Errorf("properties[%d]: %w", i, err)
			}
			base = loaded
		}
		prop, err := model.NewProperty(MergeProperty(base, spec.PropertyInput))
		if err != nil {
			return nil, fmt.Errorf("properties[%d] (%s): %w", i, spec.Name, err)
		}
		out = append(out, prop)
	}
	return out, nil
}

func resolvePath(baseDir, p string) string {
	if filepath.IsAbs(p) || baseDir == "" {
		return p
	}
	cand := filepath.Join(baseDir, p)
	if _, err := os.Stat(cand); err == nil {
		return cand
	}
	return p
}

// LoadPreset reads a single `property:` file. Missing keys keep the market
// defaults from model.DefaultProperty; a missing name stays empty.
func LoadPreset(path string) (model.PropertyInput, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.PropertyInput{}, err
	}
	def := model.DefaultProperty()
	def.Name = ""
	w := presetFileWrapper{Property: def}
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return model.PropertyInput{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return w.Property, nil
}

// ListPresets loads every *.yaml file in dir, sorted by ID. Files that fail to
// parse are skipped and reported through the returned error slice.
func ListPresets(dir string) ([]Preset, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []error{err}
	}
	var (
		out  []Preset
		errs []error
	)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !(strings.HasSuffix(name, ".yaml") || strings.HasSuffix(name, ".yml")) {
			continue
		}
		path := filepath.Join(dir, name)
		prop, err := LoadPreset(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		// "1_duplex.yaml" -> "1_duplex"
		id := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		if strings.TrimSpace(prop.Name) == "" {
			prop.Name = id
		}
		out = append(out, Preset{ID: id, File: path, Property: prop})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, errs
}

// FindPreset returns the preset with the given ID from dir.
func FindPreset(dir, id string) (Preset, error) {
	presets, _ := ListPresets(dir)
	for _, p := range presets {
		if p.ID == id {
			return p, nil
		}
	}
	return Preset{}, fmt.Errorf("preset %q not found in %s", id, dir)
}

// MergeProperty overlays non-zero fields from override onto base.
// Fields that are legitimately zero (e.g. a 0% vacancy) cannot be expressed as
// an override; set them in the preset file instead.
func MergeProperty(base, override model.PropertyInput) model.PropertyInput {
	out := base
	if override.Name != "" {
		out.Name = override.Name
	}
	overlay := func(dst *float64, v float64) {
		if v != 0 {
			*dst = v
		}
	}
	overlay(&out.PurchasePrice, override.PurchasePrice)
	overlay(&out.MonthlyRent, override.MonthlyRent)
	overlay(&out.MonthlyExpenses, override.MonthlyExpenses)
	overlay(&out.TaxesInsuranceMonthly, override.TaxesInsuranceMonthly)
	overlay(&out.CapexReserveMonthly, override.CapexReserveMonthly)
	overlay(&out.RentGrowthMean, override.RentGrowthMean)
	overlay(&out.RentGrowthStd, override.RentGrowthStd)
	overlay(&out.ExpenseGrowthMean, override.ExpenseGrowthMean)
	overlay(&out.ExpenseGrowthStd, override.ExpenseGrowthStd)
	overlay(&out.VacancyRateAnnual, override.VacancyRateAnnual)
	overlay(&out.VacancyVolatility, override.VacancyVolatility)
	overlay(&out.AppreciationMean, override.AppreciationMean)
	overlay(&out.AppreciationStd, override.AppreciationStd)
	overlay(&out.MaintenanceShockLambda, override.MaintenanceShockLambda)
	overlay(&out.MaintenanceShockAvgCost, override.MaintenanceShockAvgCost)
	if override.HoldYears != 0 {
		out.HoldYears = override.HoldYears
	}
	if override.Loan != nil {
		l := *override.Loan
		out.Loan = &l
	} else if base.Loan != nil {
		l := *base.Loan
		out.Loan = &l
	}
	return out
}
