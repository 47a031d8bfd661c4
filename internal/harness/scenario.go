package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/suryaravikumar-space/loopkit/internal/demos"
)

// Scenario defines one conformance check: run a demo, assert on its
// transcript.
type Scenario struct {
	// Name uniquely identifies this scenario. It is also the golden
	// file name.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Demo is the catalog name of the demo to run.
	Demo string `yaml:"demo"`

	// RunToken is an optional fixed run token for deterministic
	// snapshots. If empty, DefaultRunToken is used.
	RunToken string `yaml:"run_token,omitempty"`

	// Assertions validate the transcript. At least one is required.
	Assertions []Assertion `yaml:"assertions"`
}

// Assertion is one check over the transcript lines.
type Assertion struct {
	// Type selects the check:
	//   - "output_contains": some line contains Line as a substring
	//   - "output_order": Lines appear as a subsequence, by substring
	//   - "output_count": exactly Count lines contain Match
	//   - "final_line": the last line equals Line exactly
	Type string `yaml:"type"`

	// Line is the expected line (output_contains, final_line).
	Line string `yaml:"line,omitempty"`

	// Lines is the expected order (output_order).
	Lines []string `yaml:"lines,omitempty"`

	// Match is the substring to count (output_count).
	Match string `yaml:"match,omitempty"`

	// Count is the expected number of matching lines (output_count).
	Count int `yaml:"count,omitempty"`
}

// Assertion type constants.
const (
	AssertOutputContains = "output_contains"
	AssertOutputOrder    = "output_order"
	AssertOutputCount    = "output_count"
	AssertFinalLine      = "final_line"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields,
// missing required fields and unknown demo or assertion types are all
// load errors.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}

	// Strict decoding catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", filepath.Base(path), err)
	}
	return &scenario, nil
}

// LoadScenarioDir loads every *.yaml file in dir, sorted by file name.
func LoadScenarioDir(dir string) ([]*Scenario, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("listing scenarios in %s: %w", dir, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no *.yaml scenarios in %s", dir)
	}
	sort.Strings(matches)

	scenarios := make([]*Scenario, 0, len(matches))
	seen := make(map[string]string)
	for _, path := range matches {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		if prev, dup := seen[s.Name]; dup {
			return nil, fmt.Errorf("scenario name %q used by both %s and %s", s.Name, prev, filepath.Base(path))
		}
		seen[s.Name] = filepath.Base(path)
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Demo == "" {
		return fmt.Errorf("demo is required")
	}
	if _, ok := demos.Find(s.Demo); !ok {
		return fmt.Errorf("unknown demo %q", s.Demo)
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}
	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}
	switch a.Type {
	case AssertOutputContains:
		if a.Line == "" {
			return fmt.Errorf("assertions[%d]: line is required for output_contains", index)
		}
	case AssertOutputOrder:
		if len(a.Lines) == 0 {
			return fmt.Errorf("assertions[%d]: lines list is required for output_order", index)
		}
	case AssertOutputCount:
		if a.Match == "" {
			return fmt.Errorf("assertions[%d]: match is required for output_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for output_count", index)
		}
	case AssertFinalLine:
		if a.Line == "" {
			return fmt.Errorf("assertions[%d]: line is required for final_line", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
