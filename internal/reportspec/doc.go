// Package reportspec holds the report configuration: which properties make
// up the table rows, how each row is totalled, which rows are derived, and
// which property feeds the list.
//
// A spec is written as YAML:
//
//	table:
//	  - name: tasks
//	    aggregation: sum
//	  - name: time_spent
//	    aggregation: sum
//	  - name: tasks_per_hour
//	    generate: [tasks, time_spent]
//	list: tags
//
// Parse decodes the YAML, checks it against an embedded CUE schema and then
// runs the cross-row checks in Validate. The core packages trust the
// resulting ReportSpec and do not re-check it.
package reportspec
