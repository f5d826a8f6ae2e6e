package journal

import "testing"

// testDoc builds a document with two live topics, one archived topic, and
// free cells spread over three days.
func testDoc(t *testing.T) *Document {
	t.Helper()
	doc := NewDocument()
	doc.Topics = []Topic{
		{ID: "t-work", Name: "Work"},
		{ID: "t-food", Name: "Food"},
		{ID: "t-old", Name: "Workout", Archived: true},
	}
	doc.Entries = map[string]*Entry{
		"2026-08-01": {
			Pinned: map[string]string{"t-work": "ship the release", "t-old": "bench press"},
			Free:   []FreeCell{{ID: "f1", Name: "Gym", Text: "leg day"}},
		},
		"2026-08-02": {
			Pinned: map[string]string{"t-food": "pasta"},
			Free:   []FreeCell{},
		},
		"2026-08-03": {
			Pinned: map[string]string{},
			Free:   []FreeCell{},
		},
	}
	return doc
}

var testDays = []string{"2026-08-01", "2026-08-02", "2026-08-03"}

func TestApplyFilterEmptyQuery(t *testing.T) {
	doc := testDoc(t)
	res := ApplyFilter(doc, ParseQuery(""), testDays, true)

	if res.Filtered {
		t.Fatal("empty filter must not report filtering")
	}
	if len(res.Ghosts) != 0 {
		t.Fatalf("empty filter must synthesize no ghosts, got %d", len(res.Ghosts))
	}
	for id, visible := range res.TopicVisible {
		if !visible {
			t.Fatalf("topic %s hidden under empty filter", id)
		}
	}
	for _, day := range testDays {
		if !res.RowVisible[day] {
			t.Fatalf("row %s hidden under empty filter", day)
		}
	}
	if !res.FreeVisible[FreeCellKey("2026-08-01", "f1")] {
		t.Fatal("free cell hidden under empty filter")
	}
}

func TestApplyFilterColumnOnly(t *testing.T) {
	doc := testDoc(t)
	res := ApplyFilter(doc, ParseQuery("#work"), testDays, true)

	if !res.TopicVisible["t-work"] {
		t.Fatal("Work must match column term \"work\"")
	}
	if res.TopicVisible["t-food"] {
		t.Fatal("Food must be hidden by column term \"work\"")
	}
	if res.FreeVisible[FreeCellKey("2026-08-01", "f1")] {
		t.Fatal("free cell Gym must be hidden by column term \"work\"")
	}
	// Row filter is a no-op when rowTerms is empty.
	for _, day := range testDays {
		if !res.RowVisible[day] {
			t.Fatalf("row %s hidden although row filter empty", day)
		}
	}
	// Archived "Workout" contains "work" and ghosts are enabled.
	if len(res.Ghosts) != 1 || res.Ghosts[0].ID != "t-old" {
		t.Fatalf("expected one ghost t-old, got %v", res.Ghosts)
	}
}

func TestApplyFilterGhosts(t *testing.T) {
	doc := testDoc(t)

	// Row-only filter, no column terms: every archived topic ghosts.
	res := ApplyFilter(doc, ParseQuery("anything"), testDays, true)
	if len(res.Ghosts) != 1 || res.Ghosts[0].ID != "t-old" {
		t.Fatalf("row-only filter: expected all archived topics as ghosts, got %v", res.Ghosts)
	}

	// Column filter that misses the archived name: no ghost.
	res = ApplyFilter(doc, ParseQuery("#food"), testDays, true)
	if len(res.Ghosts) != 0 {
		t.Fatalf("column filter food: expected no ghosts, got %v", res.Ghosts)
	}

	// Ghosts disabled.
	res = ApplyFilter(doc, ParseQuery("#work"), testDays, false)
	if len(res.Ghosts) != 0 {
		t.Fatalf("ghosts disabled: got %v", res.Ghosts)
	}
}

func TestApplyFilterRows(t *testing.T) {
	doc := testDoc(t)

	tests := []struct {
		name    string
		raw     string
		visible map[string]bool
	}{
		{
			name: "row term matches pinned text",
			raw:  "release",
			visible: map[string]bool{
				"2026-08-01": true, "2026-08-02": false, "2026-08-03": false,
			},
		},
		{
			name: "row term matches free cell text",
			raw:  "leg",
			visible: map[string]bool{
				"2026-08-01": true, "2026-08-02": false, "2026-08-03": false,
			},
		},
		{
			name: "or terms widen the match",
			raw:  "release|pasta",
			visible: map[string]bool{
				"2026-08-01": true, "2026-08-02": true, "2026-08-03": false,
			},
		},
		{
			name: "ghost text counts toward row match",
			raw:  "bench",
			visible: map[string]bool{
				"2026-08-01": true, "2026-08-02": false, "2026-08-03": false,
			},
		},
		{
			name: "column-hidden text does not count",
			raw:  "#food pasta",
			visible: map[string]bool{
				"2026-08-01": false, "2026-08-02": true, "2026-08-03": false,
			},
		},
		{
			name: "empty day is vacuously hidden",
			raw:  "zzz",
			visible: map[string]bool{
				"2026-08-01": false, "2026-08-02": false, "2026-08-03": false,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ApplyFilter(doc, ParseQuery(tt.raw), testDays, true)
			for day, want := range tt.visible {
				if got := res.RowVisible[day]; got != want {
					t.Fatalf("%q: row %s visible=%v want %v", tt.raw, day, got, want)
				}
			}
		})
	}
}

// A day with no entry at all behaves like a day with no visible cells.
func TestApplyFilterMissingEntry(t *testing.T) {
	doc := testDoc(t)
	days := append([]string{}, testDays...)
	days = append(days, "2026-08-04")

	res := ApplyFilter(doc, ParseQuery("release"), days, true)
	if res.RowVisible["2026-08-04"] {
		t.Fatal("day without entry must be hidden under a row filter")
	}
	res = ApplyFilter(doc, ParseQuery(""), days, true)
	if !res.RowVisible["2026-08-04"] {
		t.Fatal("day without entry must be visible without a row filter")
	}
}

func TestApplyFilterCaseInsensitive(t *testing.T) {
	doc := testDoc(t)
	res := ApplyFilter(doc, ParseQuery("#WORK RELEASE"), testDays, true)
	if !res.TopicVisible["t-work"] {
		t.Fatal("column match must ignore case")
	}
	if !res.RowVisible["2026-08-01"] {
		t.Fatal("row match must ignore case")
	}
}
