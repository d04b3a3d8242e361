// Package parse turns the raw, concatenated C/I/D rows of a NEM report
// bundle into typed domain records. A registry of (family, subtype) ->
// parser function replaces the inline switch a first-pass implementation
// would reach for: each parser is a pure function over a positional row,
// and cross-record merging (PRICE + REGIONSUM, etc.) is an explicit
// post-pass over the parsed slices, not something baked into the parsers
// themselves.
package parse

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aristath/nem-sentinel/internal/domain"
)

// Row is one CSV data row split on commas, with helpers for the
// positional field-extraction every fixed-position parser shares.
type Row []string

// Field returns the value at idx, or an error if idx is out of range. All
// positional parsers go through this so a short/malformed row is reported
// uniformly rather than panicking on an out-of-range index.
func (r Row) Field(idx int) (string, error) {
	if idx < 0 || idx >= len(r) {
		return "", fmt.Errorf("parse: field index %d out of range (row has %d fields)", idx, len(r))
	}
	return strings.TrimSpace(r[idx]), nil
}

// Str is Field with empty-on-error semantics, for optional trailing
// columns that upstream sometimes omits.
func (r Row) Str(idx int) string {
	v, err := r.Field(idx)
	if err != nil {
		return ""
	}
	return v
}

// Float parses the field at idx as a float64. An empty string maps to 0,
// per spec.md §6 ("Empty strings map to 0 for numeric columns").
func (r Row) Float(idx int) (float64, error) {
	v, err := r.Field(idx)
	if err != nil {
		return 0, err
	}
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parse: field %d %q is not a number: %w", idx, v, err)
	}
	return f, nil
}

// Int parses the field at idx as an int, with the same empty-is-zero rule
// as Float.
func (r Row) Int(idx int) (int, error) {
	v, err := r.Field(idx)
	if err != nil {
		return 0, err
	}
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse: field %d %q is not an integer: %w", idx, v, err)
	}
	return n, nil
}

// Bool interprets "1"/"Y"/"TRUE" (case-insensitive) as true, anything else
// (including empty) as false.
func (r Row) Bool(idx int) bool {
	v := strings.ToUpper(r.Str(idx))
	return v == "1" || v == "Y" || v == "TRUE"
}

// ClampedPrice parses idx as a price, clamping into
// [domain.MinPrice, domain.MaxPrice] and reporting whether clamping
// occurred so callers can log a warning without aborting the row.
func (r Row) ClampedPrice(idx int) (value float64, clamped bool, err error) {
	f, err := r.Float(idx)
	if err != nil {
		return 0, false, err
	}
	value, clamped = domain.ClampPrice(f)
	return value, clamped, nil
}

// ClampedMW is ClampedPrice for MW-range fields.
func (r Row) ClampedMW(idx int) (value float64, clamped bool, err error) {
	f, err := r.Float(idx)
	if err != nil {
		return 0, false, err
	}
	value, clamped = domain.ClampMW(f)
	return value, clamped, nil
}

// SplitRows splits a bundle's text into non-empty, comma-split rows,
// preserving on-disk order. Comment rows (tag "C") are dropped here since
// no parser ever needs them.
func SplitRows(text string) []Row {
	lines := strings.Split(text, "\n")
	rows := make([]Row, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) < 3 {
			continue
		}
		if strings.EqualFold(fields[0], "C") {
			continue
		}
		rows = append(rows, Row(fields))
	}
	return rows
}

// Tag is the (recordType, family, subtype) triple every I/D row's first
// three fields form.
type Tag struct {
	RecordType string // "I" or "D"
	Family     string
	Subtype    string
}

// TagOf extracts the tag from a row's first three fields.
func TagOf(r Row) Tag {
	return Tag{
		RecordType: strings.ToUpper(r.Str(0)),
		Family:     strings.ToUpper(r.Str(1)),
		Subtype:    strings.ToUpper(r.Str(2)),
	}
}
