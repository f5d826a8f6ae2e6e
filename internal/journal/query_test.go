package journal

import (
	"reflect"
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		cols []string
		rows []string
	}{
		{name: "empty", raw: "", cols: nil, rows: nil},
		{name: "whitespace only", raw: "   \t ", cols: nil, rows: nil},
		{name: "single row term", raw: "hello", cols: nil, rows: []string{"hello"}},
		{
			name: "mixed syntax",
			raw:  "(#work stuff) #urgent deadline|review",
			cols: []string{"work stuff", "urgent"},
			rows: []string{"deadline", "review"},
		},
		{name: "bare column only", raw: "#Gym", cols: []string{"gym"}, rows: nil},
		{
			name: "paren term keeps spaces",
			raw:  "(# Deep Work )",
			cols: []string{"deep work"},
			rows: nil,
		},
		{
			name: "row terms trimmed and lowercased",
			raw:  " Foo | BAR |  ",
			cols: nil,
			rows: []string{"foo", "bar"},
		},
		{
			name: "duplicate terms collapse",
			raw:  "#a #a (#a) x|x",
			cols: []string{"a"},
			rows: []string{"x"},
		},
		{
			name: "unclosed paren falls through to bare pass",
			raw:  "(#work",
			cols: []string{"work"},
			rows: []string{"("},
		},
		{
			name: "lone hash is row residue",
			raw:  "#",
			cols: nil,
			rows: []string{"#"},
		},
		{
			name: "empty pipe pieces discarded",
			raw:  "a||b",
			cols: nil,
			rows: []string{"a", "b"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseQuery(tt.raw)
			if !reflect.DeepEqual(got.ColumnTerms, tt.cols) {
				t.Fatalf("ParseQuery(%q) columns=%v want %v", tt.raw, got.ColumnTerms, tt.cols)
			}
			if !reflect.DeepEqual(got.RowTerms, tt.rows) {
				t.Fatalf("ParseQuery(%q) rows=%v want %v", tt.raw, got.RowTerms, tt.rows)
			}
		})
	}
}

// Re-parsing the residue after term extraction must never surface new
// column terms: extraction consumes its matches completely.
func TestParseQueryResidueStable(t *testing.T) {
	raws := []string{
		"(#work stuff) #urgent deadline|review",
		"#a #b plain",
		"(#one) (#two) three",
		"text only",
	}
	for _, raw := range raws {
		residue, _ := extractParenTerms(raw)
		residue, _ = extractBareTerms(residue)
		again := ParseQuery(residue)
		if len(again.ColumnTerms) != 0 {
			t.Fatalf("residue of %q re-parsed to column terms %v", raw, again.ColumnTerms)
		}
	}
}

func TestFilterEmpty(t *testing.T) {
	if !ParseQuery("").Empty() {
		t.Fatal("empty query must produce an empty filter")
	}
	if ParseQuery("#x").Empty() {
		t.Fatal("column term must produce a non-empty filter")
	}
	if ParseQuery("row").Empty() {
		t.Fatal("row term must produce a non-empty filter")
	}
	if ParseQuery("row").HasColumnFilter() {
		t.Fatal("row-only query must not report a column filter")
	}
}
