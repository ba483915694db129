// Package day holds day records and the calendar helpers used to group
// them into weeks and months.
//
// All dates are calendar days at midnight UTC. Weeks follow ISO 8601:
// Monday to Sunday, and week 1 is the week containing January 4th.
package day

import (
	"fmt"
	"regexp"
	"slices"
	"time"

	"github.com/roach88/weekreview/internal/value"
)

// Layout is the daily note name format.
const Layout = "2006-01-02"

var namePattern = regexp.MustCompile(`^\d\d\d\d-\d\d-\d\d$`)

// Record is one day's properties, identified by its note name.
type Record struct {
	Name       string
	Date       time.Time
	Properties value.Object
}

// NewRecord builds a record from a YYYY-MM-DD name.
func NewRecord(name string, props value.Object) (Record, error) {
	date, err := ParseName(name)
	if err != nil {
		return Record{}, err
	}
	if props == nil {
		props = value.Object{}
	}
	return Record{Name: name, Date: date, Properties: props}, nil
}

// Get returns the named property, or nil when the day does not have it.
func (r Record) Get(name string) value.Value {
	if r.Properties == nil {
		return nil
	}
	return r.Properties.Get(name)
}

// IsName reports whether name has the YYYY-MM-DD shape.
func IsName(name string) bool {
	return namePattern.MatchString(name)
}

// ParseName parses a daily note name. The name must have the YYYY-MM-DD
// shape and be a real calendar date.
func ParseName(name string) (time.Time, error) {
	if !IsName(name) {
		return time.Time{}, fmt.Errorf("%q is not named like YYYY-MM-DD", name)
	}
	t, err := time.ParseInLocation(Layout, name, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%q is not a calendar date", name)
	}
	return t, nil
}

// Truncate drops the clock part of t, keeping its calendar day.
func Truncate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Week returns the ISO week number of t.
func Week(t time.Time) int {
	_, w := t.ISOWeek()
	return w
}

// SameWeek reports whether a and b fall in the same ISO week of the same
// ISO year.
func SameWeek(a, b time.Time) bool {
	ay, aw := a.ISOWeek()
	by, bw := b.ISOWeek()
	return ay == by && aw == bw
}

// SundaysInMonth returns every Sunday in t's month, in order.
func SundaysInMonth(t time.Time) []time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	offset := (7 - int(first.Weekday())) % 7

	var sundays []time.Time
	for d := first.AddDate(0, 0, offset); d.Month() == first.Month(); d = d.AddDate(0, 0, 7) {
		sundays = append(sundays, d)
	}
	return sundays
}

// displayIndex orders Monday first and Sunday last.
func displayIndex(t time.Time) int {
	if t.Weekday() == time.Sunday {
		return 7
	}
	return int(t.Weekday())
}

// SortForDisplay returns a copy of records ordered by weekday, Monday first
// and Sunday last. Records on the same weekday keep their input order.
func SortForDisplay(records []Record) []Record {
	out := slices.Clone(records)
	slices.SortStableFunc(out, func(a, b Record) int {
		return displayIndex(a.Date) - displayIndex(b.Date)
	})
	return out
}

// InWeek returns the records in target's ISO week, in input order.
func InWeek(records []Record, target time.Time) []Record {
	var out []Record
	for _, r := range records {
		if SameWeek(r.Date, target) {
			out = append(out, r)
		}
	}
	return out
}
