package journal

import "testing"

func TestEntryForLazyMaterialization(t *testing.T) {
	doc := NewDocument()
	if len(doc.Entries) != 0 {
		t.Fatal("new document must have no entries")
	}

	e := doc.EntryFor("2026-08-31")
	if e == nil || e.Pinned == nil || e.Free == nil {
		t.Fatalf("materialized entry not initialized: %+v", e)
	}
	if _, ok := doc.Entries["2026-08-31"]; !ok {
		t.Fatal("EntryFor must insert the entry into the document")
	}

	e.Pinned["t1"] = "kept"
	if doc.EntryFor("2026-08-31").Pinned["t1"] != "kept" {
		t.Fatal("EntryFor must return the same entry on repeat access")
	}
	if len(doc.Entries) != 1 {
		t.Fatalf("repeat access created entries, have %d", len(doc.Entries))
	}
}

func TestNormalize(t *testing.T) {
	doc := &Document{
		Topics: []Topic{{ID: "t1", Name: "Work"}},
		Entries: map[string]*Entry{
			"2026-08-01": {
				Pinned: map[string]string{"t1": "keep", "orphan": "drop"},
			},
			"2026-08-02": nil,
		},
	}
	doc.Normalize()

	e := doc.Entries["2026-08-01"]
	if _, ok := e.Pinned["orphan"]; ok {
		t.Fatal("orphaned pinned key must be dropped")
	}
	if e.Pinned["t1"] != "keep" {
		t.Fatal("live pinned key must be kept")
	}
	if e.Free == nil {
		t.Fatal("missing free list must default to empty")
	}
	if doc.Entries["2026-08-02"] == nil {
		t.Fatal("nil entry must be replaced with an empty one")
	}

	var zero Document
	zero.Normalize()
	if zero.Topics == nil || zero.Entries == nil {
		t.Fatal("zero document must normalize to empty fields")
	}
}

func TestLiveTopicNames(t *testing.T) {
	doc := NewDocument()
	doc.Topics = []Topic{
		{ID: "a", Name: "Work"},
		{ID: "b", Name: "Gym", Archived: true},
		{ID: "c", Name: "Food"},
	}
	names := doc.LiveTopicNames()
	if len(names) != 2 || names[0] != "work" || names[1] != "food" {
		t.Fatalf("LiveTopicNames()=%v", names)
	}
}
