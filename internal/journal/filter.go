package journal

import "strings"

// FilterResult is the visibility decision set for one application of a
// filter to a document: which live topics stay visible, which archived
// topics are synthesized as read-only ghosts, which free cells survive the
// column filter, and which day rows remain visible.
//
// Visibility is a set of independent boolean decisions; ordering always
// follows the document's persisted order.
type FilterResult struct {
	Filtered     bool
	TopicVisible map[string]bool // live topic id -> visible
	Ghosts       []Topic         // archived topics rendered read-only
	FreeVisible  map[string]bool // dateKey + "/" + cell id -> visible
	RowVisible   map[string]bool // dateKey -> visible
}

// FreeCellKey identifies a free cell across the whole document. Cell ids
// are only guaranteed unique within their entry.
func FreeCellKey(dateKey, cellID string) string {
	return dateKey + "/" + cellID
}

// ApplyFilter computes visibility for the given day rows. Ghosts are only
// synthesized when showGhosts is set and the filter is non-empty: archived
// topics matching the column filter, or all archived topics when no column
// filter is present.
//
// The result is derived fresh from the filter and document on every call;
// applying an empty filter yields everything visible and no ghosts.
func ApplyFilter(doc *Document, f Filter, days []string, showGhosts bool) FilterResult {
	res := FilterResult{
		Filtered:     !f.Empty(),
		TopicVisible: map[string]bool{},
		FreeVisible:  map[string]bool{},
		RowVisible:   map[string]bool{},
	}

	for _, t := range doc.Topics {
		if t.Archived {
			continue
		}
		res.TopicVisible[t.ID] = columnVisible(f, t.Name)
	}

	if showGhosts && res.Filtered {
		for _, t := range doc.Topics {
			if !t.Archived {
				continue
			}
			if !f.HasColumnFilter() || columnVisible(f, t.Name) {
				res.Ghosts = append(res.Ghosts, t)
			}
		}
	}

	for _, day := range days {
		entry := doc.Entries[day]
		if entry != nil {
			for _, cell := range entry.Free {
				res.FreeVisible[FreeCellKey(day, cell.ID)] = columnVisible(f, cell.Name)
			}
		}
		res.RowVisible[day] = rowVisible(doc, f, res, day, entry)
	}
	return res
}

// columnVisible reports whether a live column named name survives the
// column filter: no filter, or a case-insensitive substring match against
// at least one term.
func columnVisible(f Filter, name string) bool {
	if !f.HasColumnFilter() {
		return true
	}
	lower := strings.ToLower(name)
	for _, term := range f.ColumnTerms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}

// rowVisible concatenates the text of every currently-visible cell on the
// day, ghost cells included, and matches the row terms against it. A day
// with no visible cells and a non-empty row filter is hidden.
func rowVisible(doc *Document, f Filter, res FilterResult, day string, entry *Entry) bool {
	if len(f.RowTerms) == 0 {
		return true
	}
	var b strings.Builder
	if entry != nil {
		for _, t := range doc.Topics {
			if t.Archived || !res.TopicVisible[t.ID] {
				continue
			}
			b.WriteString(entry.Pinned[t.ID])
		}
		for _, cell := range entry.Free {
			if res.FreeVisible[FreeCellKey(day, cell.ID)] {
				b.WriteString(cell.Text)
			}
		}
		for _, ghost := range res.Ghosts {
			b.WriteString(entry.Pinned[ghost.ID])
		}
	}
	haystack := strings.ToLower(b.String())
	for _, term := range f.RowTerms {
		if strings.Contains(haystack, term) {
			return true
		}
	}
	return false
}
