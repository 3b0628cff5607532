package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/craftkit/internal/ir"
	"github.com/roach88/craftkit/internal/modifier"
)

// Scenario defines one craft simulation and what must hold afterwards.
type Scenario struct {
	// Name uniquely identifies this scenario. It prefixes execution ids
	// and names the golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Recipe is a recipe YAML file, or a directory of YAML and CUE
	// recipes in which case RecipeID selects one.
	// Relative paths are resolved against the scenario file location.
	Recipe string `yaml:"recipe"`

	// RecipeID selects a recipe when Recipe is a directory.
	RecipeID string `yaml:"recipe_id,omitempty"`

	// Machine names the machine in the journal. Default: "machine".
	Machine string `yaml:"machine,omitempty"`

	// Seed is the first chance seed; each start and finish pass takes the
	// next one.
	Seed int64 `yaml:"seed"`

	// Ticks is the number of machine steps to run.
	Ticks int `yaml:"ticks"`

	// MaxStalls is the consecutive stall limit. 0 uses the machine default;
	// a negative value disables the limit.
	MaxStalls int `yaml:"max_stalls,omitempty"`

	// Components are attached to the machine in declaration order.
	Components []ComponentSpec `yaml:"components"`

	// Modifiers apply to every craft.
	Modifiers []modifier.Definition `yaml:"modifiers,omitempty"`

	// Assertions validate the final state and trace.
	Assertions []Assertion `yaml:"assertions"`
}

// ComponentSpec declares one component and its initial contents.
type ComponentSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
	IO   string `yaml:"io"`

	// Capacity bounds an energy buffer, or the total contents of an
	// inventory. 0 means unlimited for inventories.
	Capacity int64 `yaml:"capacity,omitempty"`

	// Energy is the initial charge of an energy component.
	Energy int64 `yaml:"energy,omitempty"`

	// Stock is the initial contents of an item or fluid component.
	Stock map[string]int64 `yaml:"stock,omitempty"`
}

// Assertion validates the outcome of a scenario.
type Assertion struct {
	// Type specifies the assertion type:
	// - "probe": the first probe reported Expect ("success" or "failure")
	// - "crafts_completed", "crafts_aborted", "stalls": a counter equals Count
	// - "stock": Component holds Amount of Key
	// - "energy": Component stores Amount
	// - "trace_count": Count events match Phase and, if set, Outcome
	Type string `yaml:"type"`

	Expect    string `yaml:"expect,omitempty"`
	Count     *int   `yaml:"count,omitempty"`
	Component string `yaml:"component,omitempty"`
	Key       string `yaml:"key,omitempty"`
	Amount    *int64 `yaml:"amount,omitempty"`
	Phase     string `yaml:"phase,omitempty"`
	Outcome   string `yaml:"outcome,omitempty"`
}

// Assertion type constants.
const (
	AssertProbe           = "probe"
	AssertCraftsCompleted = "crafts_completed"
	AssertCraftsAborted   = "crafts_aborted"
	AssertStalls          = "stalls"
	AssertStock           = "stock"
	AssertEnergy          = "energy"
	AssertTraceCount      = "trace_count"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
//
// A relative recipe path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if scenario.Recipe != "" && !filepath.IsAbs(scenario.Recipe) {
		scenario.Recipe = filepath.Join(filepath.Dir(path), scenario.Recipe)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarioDir loads every *.yaml and *.yml scenario in dir, sorted by
// file name. Errors are collected per file.
func LoadScenarioDir(dir string) ([]*Scenario, []error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []error{fmt.Errorf("failed to read scenario directory: %w", err)}
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	scenarios := []*Scenario{}
	var errs []error
	for _, name := range names {
		s, err := LoadScenario(filepath.Join(dir, name))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, errs
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Recipe == "" {
		return fmt.Errorf("recipe is required")
	}
	info, err := os.Stat(s.Recipe)
	if err != nil {
		return fmt.Errorf("recipe not found: %s", s.Recipe)
	}
	if info.IsDir() && s.RecipeID == "" {
		return fmt.Errorf("recipe_id is required when recipe is a directory")
	}

	if s.Ticks <= 0 {
		return fmt.Errorf("ticks must be positive")
	}

	if len(s.Components) == 0 {
		return fmt.Errorf("components list is required and must be non-empty")
	}

	seen := make(map[string]bool, len(s.Components))
	for i, c := range s.Components {
		if err := validateComponent(i, c); err != nil {
			return err
		}
		if seen[c.Name] {
			return fmt.Errorf("components[%d]: duplicate name %q", i, c.Name)
		}
		seen[c.Name] = true
	}

	if _, err := modifier.FromDefinitions(s.Modifiers); err != nil {
		return err
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, seen); err != nil {
			return err
		}
	}

	return nil
}

func validateComponent(index int, c ComponentSpec) error {
	if c.Name == "" {
		return fmt.Errorf("components[%d]: name is required", index)
	}
	rt := ir.ResourceType(c.Type)
	if !rt.Known() {
		return fmt.Errorf("components[%d]: unknown resource type %q", index, c.Type)
	}
	if _, err := ir.ParseIOType(c.IO); err != nil {
		return fmt.Errorf("components[%d]: %w", index, err)
	}
	if c.Capacity < 0 || c.Energy < 0 {
		return fmt.Errorf("components[%d]: capacity and energy must be non-negative", index)
	}
	if rt.Is(ir.ResourceEnergy) {
		if len(c.Stock) > 0 {
			return fmt.Errorf("components[%d]: energy components take energy, not stock", index)
		}
		if c.Capacity == 0 {
			return fmt.Errorf("components[%d]: capacity is required for energy components", index)
		}
		return nil
	}
	if c.Energy != 0 {
		return fmt.Errorf("components[%d]: energy is only valid on energy components", index)
	}
	for key, n := range c.Stock {
		if n < 0 {
			return fmt.Errorf("components[%d]: stock %q must be non-negative", index, key)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, components map[string]bool) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertProbe:
		if a.Expect != "success" && a.Expect != "failure" {
			return fmt.Errorf("assertions[%d]: expect must be success or failure for probe", index)
		}
	case AssertCraftsCompleted, AssertCraftsAborted, AssertStalls:
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for %s", index, a.Type)
		}
	case AssertStock:
		if a.Key == "" {
			return fmt.Errorf("assertions[%d]: key is required for stock", index)
		}
		fallthrough
	case AssertEnergy:
		if !components[a.Component] {
			return fmt.Errorf("assertions[%d]: unknown component %q", index, a.Component)
		}
		if a.Amount == nil {
			return fmt.Errorf("assertions[%d]: amount is required for %s", index, a.Type)
		}
	case AssertTraceCount:
		if a.Phase == "" {
			return fmt.Errorf("assertions[%d]: phase is required for trace_count", index)
		}
		if a.Count == nil || *a.Count < 0 {
			return fmt.Errorf("assertions[%d]: non-negative count is required for trace_count", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
