package resolve

import (
	"testing"

	"equity_research/pkg/models"
)

func TestResolveMapsAliases(t *testing.T) {
	raw := models.NewStatementTable(models.IncomeStatement, []string{"2022", "2023"})
	raw.AddRow("Revenue", []*float64{models.Float(100), models.Float(110)})
	raw.AddRow("Cost of Goods Sold", []*float64{models.Float(40), models.Float(44)})
	raw.AddRow("Totally Custom Line", []*float64{models.Float(1), models.Float(2)})

	res := Resolve(raw, models.IncomeStatement)

	if res.Mapped != 2 {
		t.Errorf("expected 2 mapped fields, got %d", res.Mapped)
	}
	if !res.Table.HasRow("Total Revenue") || !res.Table.HasRow("Cost Of Revenue") {
		t.Error("canonical labels missing after resolution")
	}
	if len(res.Unmapped) != 1 || res.Unmapped[0] != "Totally Custom Line" {
		t.Errorf("unexpected unmapped list: %v", res.Unmapped)
	}
	// Unmapped rows keep their vendor label and data.
	if v := res.Table.Value("Totally Custom Line", 0); v == nil || *v != 2 {
		t.Errorf("unmapped row data lost: %v", v)
	}
}

func TestResolveAmbiguousSecondHitKeepsVendorLabel(t *testing.T) {
	// Both vendor labels map to "Total Revenue"; the second must not
	// overwrite the first.
	raw := models.NewStatementTable(models.IncomeStatement, []string{"2023"})
	raw.AddRow("Revenue", []*float64{models.Float(100)})
	raw.AddRow("Sales & Services Revenue", []*float64{models.Float(95)})

	res := Resolve(raw, models.IncomeStatement)

	if res.Mapped != 1 {
		t.Errorf("expected 1 mapped field, got %d", res.Mapped)
	}
	if len(res.Ambiguous) != 1 || res.Ambiguous[0] != "Sales & Services Revenue" {
		t.Errorf("unexpected ambiguous list: %v", res.Ambiguous)
	}
	if v := res.Table.Value("Total Revenue", 0); v == nil || *v != 100 {
		t.Errorf("first mapping overwritten: %v", v)
	}
	if v := res.Table.Value("Sales & Services Revenue", 0); v == nil || *v != 95 {
		t.Errorf("ambiguous row data lost: %v", v)
	}
}

func TestResolveRecordsLabelCollisions(t *testing.T) {
	// Two raw labels trimming to the same string: the duplicate cannot be
	// kept, but it must show up in the diagnostics.
	raw := models.NewStatementTable(models.IncomeStatement, []string{"2023"})
	raw.AddRow("Custom Item", []*float64{models.Float(10)})
	raw.AddRow(" Custom Item ", []*float64{models.Float(20)})

	res := Resolve(raw, models.IncomeStatement)
	if len(res.Unmapped) != 1 || res.Unmapped[0] != "Custom Item" {
		t.Errorf("unexpected unmapped list: %v", res.Unmapped)
	}
	if len(res.Ambiguous) != 1 || res.Ambiguous[0] != "Custom Item" {
		t.Errorf("duplicate label not diagnosed: %v", res.Ambiguous)
	}
	if v := res.Table.Value("Custom Item", 0); v == nil || *v != 10 {
		t.Errorf("first row lost: %v", v)
	}

	// An unmapped vendor label equal to an already-claimed canonical name is
	// diagnosed the same way.
	raw = models.NewStatementTable(models.IncomeStatement, []string{"2023"})
	raw.AddRow("Revenue", []*float64{models.Float(100)})
	raw.AddRow("Total Revenue", []*float64{models.Float(90)})

	res = Resolve(raw, models.IncomeStatement)
	if len(res.Ambiguous) != 1 || res.Ambiguous[0] != "Total Revenue" {
		t.Errorf("canonical collision not diagnosed: %v", res.Ambiguous)
	}
	if v := res.Table.Value("Total Revenue", 0); v == nil || *v != 100 {
		t.Errorf("mapped row overwritten: %v", v)
	}
}

func TestResolveTrimsWhitespaceAndSortsPeriods(t *testing.T) {
	raw := models.NewStatementTable(models.BalanceSheet, []string{"2023", "2022"})
	raw.AddRow("  Total Assets ", []*float64{models.Float(500), models.Float(450)})

	res := Resolve(raw, models.BalanceSheet)

	periods := res.Table.Periods()
	if periods[0] != "2022" || periods[1] != "2023" {
		t.Fatalf("periods not sorted ascending: %v", periods)
	}
	// Most recent (2023) value must follow the sort.
	if v := res.Table.Value("Total Assets", 0); v == nil || *v != 500 {
		t.Errorf("expected 500 at period 0, got %v", v)
	}
}

func TestValidateCritical(t *testing.T) {
	tbl := models.NewStatementTable(models.CashFlowStatement, []string{"2023"})
	tbl.AddRow("Operating Cash Flow", []*float64{models.Float(80)})
	tbl.AddRow("Investing Cash Flow", []*float64{models.Float(-30)})

	v := ValidateCritical(tbl, models.CashFlowStatement)
	if v.OK {
		t.Error("validation should fail with Financing Cash Flow missing")
	}
	if len(v.Missing) != 1 || v.Missing[0] != "Financing Cash Flow" {
		t.Errorf("unexpected missing list: %v", v.Missing)
	}
	if len(v.Present) != 2 {
		t.Errorf("expected 2 present fields, got %v", v.Present)
	}

	tbl.AddRow("Financing Cash Flow", []*float64{models.Float(-20)})
	if v := ValidateCritical(tbl, models.CashFlowStatement); !v.OK {
		t.Errorf("validation should pass, missing: %v", v.Missing)
	}
}
