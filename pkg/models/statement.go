// Package models defines the tabular inputs the analysis engines operate on:
// financial statement tables, price series, and dividend series.
package models

import (
	"math"
	"sort"
)

// StatementKind identifies which financial statement a table represents.
type StatementKind string

const (
	IncomeStatement   StatementKind = "income"
	BalanceSheet      StatementKind = "balance"
	CashFlowStatement StatementKind = "cashflow"
)

// StatementTable is a financial statement keyed by line-item label (rows)
// and reporting period (columns). Periods are stored chronologically
// ascending; accessors index periods from the most recent (0 = latest).
// Values are nullable: a nil cell means the vendor did not report the item
// for that period.
type StatementTable struct {
	Kind    StatementKind
	periods []string
	labels  []string
	rows    map[string][]*float64
}

// NewStatementTable creates an empty table with the given period columns.
// Periods are kept in the order given; call SortPeriods to normalize.
func NewStatementTable(kind StatementKind, periods []string) *StatementTable {
	p := make([]string, len(periods))
	copy(p, periods)
	return &StatementTable{
		Kind:    kind,
		periods: p,
		rows:    make(map[string][]*float64),
	}
}

// AddRow appends a row under label. Values are aligned with Periods();
// shorter slices are padded with nil. A duplicate label is rejected so that
// the resolver's ambiguity policy stays explicit.
func (t *StatementTable) AddRow(label string, values []*float64) bool {
	if _, exists := t.rows[label]; exists {
		return false
	}
	row := make([]*float64, len(t.periods))
	copy(row, values)
	t.rows[label] = row
	t.labels = append(t.labels, label)
	return true
}

// Periods returns the period columns, oldest first.
func (t *StatementTable) Periods() []string {
	out := make([]string, len(t.periods))
	copy(out, t.periods)
	return out
}

// NumPeriods returns the number of period columns.
func (t *StatementTable) NumPeriods() int { return len(t.periods) }

// Labels returns row labels in insertion order.
func (t *StatementTable) Labels() []string {
	out := make([]string, len(t.labels))
	copy(out, t.labels)
	return out
}

// HasRow reports whether a row exists under label.
func (t *StatementTable) HasRow(label string) bool {
	_, ok := t.rows[label]
	return ok
}

// Row returns the raw value slice for label, aligned with Periods().
func (t *StatementTable) Row(label string) ([]*float64, bool) {
	row, ok := t.rows[label]
	if !ok {
		return nil, false
	}
	out := make([]*float64, len(row))
	copy(out, row)
	return out, true
}

// Value returns the cell for label at the given period index, where
// period 0 is the most recent column. NaN cells are treated as missing.
func (t *StatementTable) Value(label string, period int) *float64 {
	row, ok := t.rows[label]
	if !ok {
		return nil
	}
	idx := len(t.periods) - 1 - period
	if idx < 0 || idx >= len(row) {
		return nil
	}
	v := row[idx]
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return nil
	}
	return v
}

// SortPeriods reorders the columns chronologically ascending. Period labels
// are compared lexically, which is correct for ISO dates and plain years.
func (t *StatementTable) SortPeriods() {
	idx := make([]int, len(t.periods))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return t.periods[idx[a]] < t.periods[idx[b]]
	})

	sorted := make([]string, len(t.periods))
	for i, j := range idx {
		sorted[i] = t.periods[j]
	}
	for label, row := range t.rows {
		newRow := make([]*float64, len(row))
		for i, j := range idx {
			if j < len(row) {
				newRow[i] = row[j]
			}
		}
		t.rows[label] = newRow
	}
	t.periods = sorted
}

// Clone returns a deep copy. Resolution works on copies so the raw vendor
// table survives untouched for diagnostics.
func (t *StatementTable) Clone() *StatementTable {
	out := NewStatementTable(t.Kind, t.periods)
	for _, label := range t.labels {
		out.AddRow(label, t.rows[label])
	}
	return out
}

// Float is a convenience for building nullable cells in literals and tests.
func Float(v float64) *float64 { return &v }
