package models

import "testing"

func TestCriteria_SetNeutralRemoves(t *testing.T) {
	cr := Criteria{}
	cr.Set(2, PatternCriterion("abc"))
	if len(cr) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(cr))
	}

	cr.Set(2, PatternCriterion(""))
	if _, ok := cr[2]; ok {
		t.Error("expected empty pattern to remove column 2")
	}

	cr.Set(3, StateCriterion(Checked))
	cr.Set(3, StateCriterion(Indeterminate))
	if len(cr) != 0 {
		t.Errorf("expected empty criteria, got %v", cr)
	}
}

func TestCriteria_Clone(t *testing.T) {
	cr := Criteria{}
	cr.Set(0, PatternCriterion("a*"))
	clone := cr.Clone()
	clone.Set(0, PatternCriterion(""))

	if _, ok := cr[0]; !ok {
		t.Error("clone mutation leaked into original")
	}
}

func TestCheckState_NextCycles(t *testing.T) {
	s := Indeterminate
	expected := []CheckState{Checked, Unchecked, Indeterminate}
	for i, want := range expected {
		s = s.Next()
		if s != want {
			t.Errorf("step %d: expected %s, got %s", i, want, s)
		}
	}
}

func TestParseCheckState(t *testing.T) {
	cases := map[string]CheckState{
		"true":  Checked,
		" YES ": Checked,
		"0":     Unchecked,
		"f":     Unchecked,
		"NULL":  Indeterminate,
		"":      Indeterminate,
	}
	for in, want := range cases {
		if got := ParseCheckState(in); got != want {
			t.Errorf("ParseCheckState(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestTable_MarkCheckable(t *testing.T) {
	tbl := NewTable("t", []string{"name", "active"})
	tbl.AppendTextRow([]string{"a", "true"})
	tbl.AppendTextRow([]string{"b", "false"})
	tbl.AppendTextRow([]string{"c"})

	tbl.MarkCheckable(1, 7)

	if !tbl.IsCheckable(1) {
		t.Fatal("expected column 1 to be checkable")
	}
	if tbl.IsCheckable(7) {
		t.Error("out of range column must be ignored")
	}
	if tbl.Cell(0, 1).State != Checked {
		t.Errorf("expected checked, got %s", tbl.Cell(0, 1).State)
	}
	if tbl.Cell(1, 1).State != Unchecked {
		t.Errorf("expected unchecked, got %s", tbl.Cell(1, 1).State)
	}
	if tbl.Cell(2, 1).State != Indeterminate {
		t.Errorf("missing cell should be indeterminate, got %s", tbl.Cell(2, 1).State)
	}
	if cols := tbl.CheckableColumns(); len(cols) != 1 || cols[0] != 1 {
		t.Errorf("expected [1], got %v", cols)
	}
}
