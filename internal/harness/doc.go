// Package harness runs report scenarios as executable conformance tests.
//
// A scenario bundles a report spec, a set of day records, a target date,
// and the expected outcome. The harness builds the report with the real
// review engine and checks it against the expectations, optionally
// comparing the JSON rendering with a golden file.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: february_totals
//	description: "Monthly rollup over four ISO weeks"
//	mode: month
//	date: 2026-02-15
//	spec: |
//	  table:
//	    - name: minutes
//	      aggregation: sum
//	  list: tags
//	days:
//	  - name: 2026-02-02
//	    properties: { minutes: 90, tags: a }
//	expect:
//	  weeks: [6, 7, 8, 9]
//	  totals: { minutes: 300 }
//	  list: [a]
//
// An expected error is written as expect.error with either an engine code
// (INPUT_SHAPE, CONFIG_REFERENCE, MONTH_REQUIRES_AGGREGATION) or a spec
// code (E200-E299).
//
// # Expectations
//
//   - error: the build fails with this code
//   - days: record names in display order (week mode)
//   - weeks: ISO week numbers that contributed (month mode)
//   - headers: table headers as rendered in JSON
//   - totals: last cell of each named row, compared as displayed text
//   - rows: every cell of each named row, compared as displayed text
//   - list: list values in order
//   - no_table / no_list: the report omits the table or list
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/week_basic.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
