package harness

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot is what a golden file records for a scenario.
type Snapshot struct {
	Scenario  string      `json:"scenario"`
	ErrorCode string      `json:"error_code,omitempty"`
	Report    interface{} `json:"report,omitempty"`
}

// RunWithGolden runs a scenario, fails the test on any expectation
// mismatch, and compares the report JSON with testdata/golden/<name>.golden.
//
// Run with -update to regenerate golden files.
func RunWithGolden(t *testing.T, scenario *Scenario) error {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return err
	}
	if !result.Pass {
		for _, msg := range result.Errors {
			t.Errorf("%s: %s", scenario.Name, msg)
		}
	}
	return AssertGolden(t, scenario.Name, result)
}

// AssertGolden compares a result's snapshot against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := SnapshotJSON(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)

	return nil
}

// SnapshotJSON renders the golden snapshot of a result.
func SnapshotJSON(scenarioName string, result *Result) ([]byte, error) {
	snap := Snapshot{Scenario: scenarioName, ErrorCode: result.ErrorCode}
	if result.Report != nil {
		snap.Report = result.Report
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return append(data, '\n'), nil
}
