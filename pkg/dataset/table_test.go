package dataset

import (
	"math"
	"strings"
	"testing"

	"github.com/plotwire/plotwire/pkg/errors"
)

func TestFromColumns(t *testing.T) {
	tbl, err := FromColumns(
		[]string{"x", "label"},
		map[string]Column{
			"x":     {1.0, 2.0, 3.0},
			"label": {"a", "b", "c"},
		},
	)
	if err != nil {
		t.Fatalf("FromColumns() error = %v", err)
	}

	if got := tbl.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
	if got := tbl.Names(); len(got) != 2 || got[0] != "x" || got[1] != "label" {
		t.Errorf("Names() = %v, want [x label]", got)
	}

	col, err := tbl.Column("label")
	if err != nil {
		t.Fatalf("Column(label) error = %v", err)
	}
	if col[1] != "b" {
		t.Errorf("Column(label)[1] = %v, want b", col[1])
	}
}

func TestFromColumnsLengthMismatch(t *testing.T) {
	_, err := FromColumns(
		[]string{"x", "y"},
		map[string]Column{
			"x": {1.0, 2.0},
			"y": {1.0},
		},
	)
	if !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Errorf("error = %v, want INVALID_DATASET", err)
	}
}

func TestColumnMissing(t *testing.T) {
	tbl, err := FromColumns([]string{"x"}, map[string]Column{"x": {1.0}})
	if err != nil {
		t.Fatalf("FromColumns() error = %v", err)
	}
	if _, err := tbl.Column("nope"); !errors.Is(err, errors.ErrCodeColumnNotFound) {
		t.Errorf("error = %v, want COLUMN_NOT_FOUND", err)
	}
}

func TestColumnFloats(t *testing.T) {
	tests := []struct {
		name   string
		col    Column
		wantOK bool
	}{
		{"all numeric", Column{1.0, 2.0, 3.0}, true},
		{"with missing", Column{1.0, nil, 3.0}, true},
		{"with ints", Column{1, 2}, true},
		{"with strings", Column{1.0, "a"}, false},
		{"empty", Column{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.col.Floats()
			if ok != tt.wantOK {
				t.Fatalf("Floats() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && len(got) != len(tt.col) {
				t.Errorf("Floats() len = %d, want %d", len(got), len(tt.col))
			}
		})
	}
}

func TestColumnFloatsMissingIsNaN(t *testing.T) {
	got, ok := Column{1.0, nil}.Floats()
	if !ok {
		t.Fatal("Floats() ok = false, want true")
	}
	if !math.IsNaN(got[1]) {
		t.Errorf("missing cell = %v, want NaN", got[1])
	}
}

func TestShare(t *testing.T) {
	tbl, _ := FromColumns([]string{"x"}, map[string]Column{"x": {1.0}})
	shared := Share(tbl, "linked")

	if shared.Group != "linked" {
		t.Errorf("Group = %q, want %q", shared.Group, "linked")
	}
	// Wrapper must still behave as the underlying table.
	if shared.Len() != 1 {
		t.Errorf("Len() = %d, want 1", shared.Len())
	}
}

func TestReadCSV(t *testing.T) {
	input := "x,species\n5.1,setosa\n4.9,setosa\n,virginica\n"
	tbl, err := ReadCSV(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}

	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}

	x, _ := tbl.Column("x")
	if !x.IsNumeric() {
		t.Error("column x should be numeric")
	}
	if x[0] != 5.1 {
		t.Errorf("x[0] = %v, want 5.1", x[0])
	}
	if x[2] != nil {
		t.Errorf("x[2] = %v, want nil (missing)", x[2])
	}

	species, _ := tbl.Column("species")
	if species[2] != "virginica" {
		t.Errorf("species[2] = %v, want virginica", species[2])
	}
}

func TestReadCSVEmpty(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); !errors.Is(err, errors.ErrCodeInvalidDataset) {
		t.Errorf("error = %v, want INVALID_DATASET", err)
	}
}

func TestReadJSON(t *testing.T) {
	input := `[{"x": 1, "label": "a"}, {"x": 2}, {"x": 3, "label": "c"}]`
	tbl, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if tbl.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tbl.Len())
	}

	label, err := tbl.Column("label")
	if err != nil {
		t.Fatalf("Column(label) error = %v", err)
	}
	if label[1] != nil {
		t.Errorf("label[1] = %v, want nil (missing key)", label[1])
	}

	x, _ := tbl.Column("x")
	if !x.IsNumeric() {
		t.Error("column x should be numeric")
	}
}

func TestExprEval(t *testing.T) {
	tbl, _ := FromColumns([]string{"x"}, map[string]Column{"x": {1.0, 2.0}})

	col, err := Col("x").Eval(tbl)
	if err != nil {
		t.Fatalf("Eval() error = %v", err)
	}
	if len(col) != 2 {
		t.Errorf("len = %d, want 2", len(col))
	}

	if _, err := Col("missing").Eval(tbl); !errors.Is(err, errors.ErrCodeColumnNotFound) {
		t.Errorf("error = %v, want COLUMN_NOT_FOUND", err)
	}

	if _, err := Col("").Eval(tbl); !errors.Is(err, errors.ErrCodeInvalidColumn) {
		t.Errorf("error = %v, want INVALID_COLUMN", err)
	}
}

func TestExprString(t *testing.T) {
	if got := Col("species").String(); got != "~species" {
		t.Errorf("String() = %q, want %q", got, "~species")
	}
}
