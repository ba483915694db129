// Package value provides the recursive property value type shared by every
// weekreview package.
//
// Values come from note frontmatter: scalars (string, number, bool, null),
// ordered arrays and string-keyed objects. Value is a sealed interface; only
// the types in this package implement it. A property that is missing from a
// day is represented by a nil Value, which is distinct from Null.
//
// This package imports nothing internal.
package value
