package reportspec

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/roach88/weekreview/internal/aggregate"
)

// hashDomain prefixes spec hashes so a future change of encoding can be
// told apart from old archived hashes.
const hashDomain = "weekreview/spec/v1"

// PropertySpec declares one table row.
type PropertySpec struct {
	Name        string         `json:"name" yaml:"name"`
	Aggregation aggregate.Mode `json:"aggregation,omitempty" yaml:"aggregation,omitempty"`
	// Generate names the (numerator, duration) rows of a derived row.
	Generate *[2]string `json:"generate,omitempty" yaml:"generate,omitempty"`
}

// Derived reports whether the row is computed from two other rows.
func (p PropertySpec) Derived() bool {
	return p.Generate != nil
}

// ReportSpec is a parsed report configuration. A nil Table means no table
// is built; an empty List means no list is built.
type ReportSpec struct {
	Table []PropertySpec `json:"table,omitempty" yaml:"table,omitempty"`
	List  string         `json:"list,omitempty" yaml:"list,omitempty"`
}

// HasTable reports whether a table section was given.
func (s ReportSpec) HasTable() bool {
	return s.Table != nil
}

// HasList reports whether a list property was given.
func (s ReportSpec) HasList() bool {
	return s.List != ""
}

// HasAggregation reports whether any row declares an aggregation.
func (s ReportSpec) HasAggregation() bool {
	return HasAggregation(s.Table)
}

// HasAggregation reports whether any of rows declares an aggregation.
func HasAggregation(rows []PropertySpec) bool {
	for _, r := range rows {
		if r.Aggregation != "" {
			return true
		}
	}
	return false
}

// Hash returns a stable SHA-256 of the spec, used to group archived reports
// built from the same configuration.
// Format: SHA256(domain + 0x00 + json)
func (s ReportSpec) Hash() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("hash spec: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(hashDomain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
