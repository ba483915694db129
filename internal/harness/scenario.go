package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/weekreview/internal/day"
)

// Scenario modes.
const (
	ModeWeek  = "week"
	ModeMonth = "month"
)

// Scenario defines one report conformance test.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Mode is "week" or "month".
	Mode string `yaml:"mode"`

	// Date is the target day, YYYY-MM-DD.
	Date string `yaml:"date"`

	// Spec is the report spec source, inline YAML.
	Spec string `yaml:"spec"`

	// Days are the input records. Names are not checked on load so that
	// scenarios can exercise INPUT_SHAPE failures.
	Days []DayStep `yaml:"days"`

	// Expect describes the outcome.
	Expect Expect `yaml:"expect"`
}

// DayStep is one input record.
type DayStep struct {
	Name       string         `yaml:"name"`
	Properties map[string]any `yaml:"properties"`
}

// Expect is the expected outcome of a scenario. Unset fields are not
// checked.
type Expect struct {
	Error   string           `yaml:"error,omitempty"`
	Days    []string         `yaml:"days,omitempty"`
	Weeks   []int            `yaml:"weeks,omitempty"`
	Headers []string         `yaml:"headers,omitempty"`
	Totals  map[string]any   `yaml:"totals,omitempty"`
	Rows    map[string][]any `yaml:"rows,omitempty"`
	List    []string         `yaml:"list,omitempty"`
	NoTable bool             `yaml:"no_table,omitempty"`
	NoList  bool             `yaml:"no_list,omitempty"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "expects:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// LoadDir loads every *.yaml and *.yml scenario in dir, sorted by file
// name. Scenarios whose name does not contain filter are skipped.
func LoadDir(dir, filter string) ([]*Scenario, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	var scenarios []*Scenario
	for _, name := range files {
		s, err := LoadScenario(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if filter != "" && !strings.Contains(s.Name, filter) {
			continue
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if s.Mode != ModeWeek && s.Mode != ModeMonth {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeWeek, ModeMonth, s.Mode)
	}

	if _, err := day.ParseName(s.Date); err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD, got %q", s.Date)
	}

	if strings.TrimSpace(s.Spec) == "" {
		return fmt.Errorf("spec is required")
	}

	for i, d := range s.Days {
		if d.Name == "" {
			return fmt.Errorf("days[%d]: name is required", i)
		}
	}

	if s.Expect.Error != "" {
		if len(s.Expect.Days) > 0 || len(s.Expect.Weeks) > 0 || len(s.Expect.Totals) > 0 ||
			len(s.Expect.Rows) > 0 || len(s.Expect.List) > 0 || len(s.Expect.Headers) > 0 {
			return fmt.Errorf("expect.error cannot be combined with report expectations")
		}
	}

	return nil
}
