// Package resolve maps vendor-specific financial statement line items onto
// the canonical schema the calculation engines operate on. Resolution is a
// single pass per statement: after it, downstream code reads fixed labels
// and never repeats fallback-chain lookups.
package resolve

import (
	"strings"

	"equity_research/pkg/models"
)

// Result carries the canonicalized table plus the resolution diagnostics.
// Nothing disappears silently: unmapped rows keep their vendor label, an
// ambiguous second hit on an already-used canonical label keeps its vendor
// label rather than overwriting the first, and any label collision that
// prevents a row from being kept is surfaced in Ambiguous.
type Result struct {
	Table     *models.StatementTable `json:"-"`
	Mapped    int                    `json:"mapped"`
	Unmapped  []string               `json:"unmapped_fields"`
	Ambiguous []string               `json:"ambiguous_fields"`
}

// Resolve renames the rows of raw onto the canonical schema for its
// statement kind and re-sorts periods chronologically ascending. Pure:
// raw is not modified.
func Resolve(raw *models.StatementTable, kind models.StatementKind) Result {
	aliases := aliasTable(kind)
	out := models.NewStatementTable(kind, raw.Periods())

	res := Result{Table: out}
	for _, vendorLabel := range raw.Labels() {
		clean := strings.TrimSpace(vendorLabel)
		row, _ := raw.Row(vendorLabel)

		canonical, ok := aliases[clean]
		if !ok {
			// No mapping: preserve the vendor label verbatim. A label that
			// collides with an already-present row (two raw labels trimming
			// to the same string, or a vendor label equal to a claimed
			// canonical name) is recorded as ambiguous, never dropped
			// without a trace.
			if out.AddRow(clean, row) {
				res.Unmapped = append(res.Unmapped, clean)
			} else {
				res.Ambiguous = append(res.Ambiguous, clean)
			}
			continue
		}

		if out.HasRow(canonical) {
			// A different vendor label already claimed this canonical name.
			// Keep this row under its original label so no data is lost.
			out.AddRow(clean, row)
			res.Ambiguous = append(res.Ambiguous, clean)
			continue
		}

		out.AddRow(canonical, row)
		res.Mapped++
	}

	out.SortPeriods()
	return res
}

// Validation reports which critical canonical fields are present after
// resolution. It never fails; callers decide whether a missing field is
// worth aborting over.
type Validation struct {
	OK      bool     `json:"ok"`
	Missing []string `json:"missing"`
	Present []string `json:"present"`
}

// ValidateCritical checks the fixed required-field list for a statement kind.
func ValidateCritical(table *models.StatementTable, kind models.StatementKind) Validation {
	v := Validation{}
	for _, field := range criticalFields[kind] {
		if table.HasRow(field) {
			v.Present = append(v.Present, field)
		} else {
			v.Missing = append(v.Missing, field)
		}
	}
	v.OK = len(v.Missing) == 0
	return v
}
