// Package review builds week and month reports from day records.
//
// An Engine is created once per request from the full set of day records
// and a parsed report spec. New rejects the whole set when any record is
// not named like a daily note, so a bad file never drops out silently.
//
// Week selects the records in the target's ISO week, orders them Monday to
// Sunday and builds the table and list the spec asks for.
//
// Month calls Week for every Sunday of the target's month, keeps each
// week's Total column, relabels it with the week number, merges the weeks
// and totals them again:
//
//	week 9   week 10  week 11  ->  9   10   11   Total
//	[.. 90]  [.. 60]  [.. 120]     90  60   120  270
//
// Derived rows are recomputed at every grain from the totals of their
// source rows rather than aggregated from finer ratios.
//
// The engine does no I/O and keeps no state between calls; reports built
// by different engines may be built concurrently.
package review
