package web

import "html/template"

// ViewData is the payload handed to page templates.
type ViewData struct {
	Title           string
	ContentTemplate string
	ContentHTML     template.HTML
	User            string // authenticated user, empty on ungated installs
	Grid            GridView
	RenderedHTML    template.HTML
}

// GridView is the fully resolved grid for one month under the current
// filter: visible live columns, ghost columns, and one row per visible
// day.
type GridView struct {
	Month   Month
	Query   string
	Columns []ColumnView
	Rows    []RowView
	Error   string // validation rejection to surface, if any

	// Editing and ActiveDraft expose the active edit session so every
	// open-editor form can round-trip the in-flight draft: switching
	// cells must commit the draft, never discard it.
	Editing     bool
	ActiveDraft string
}

// ColumnView is one grid column header. Ghost columns are archived topics
// surfaced read-only by an active search.
type ColumnView struct {
	ID    string
	Name  string
	Ghost bool
}

// CellView is one rendered cell. Pinned cells carry the topic id in ID;
// free cells carry the cell id and their display name.
type CellView struct {
	Kind    string // "pinned" or "free"
	ID      string
	Name    string
	Raw     string
	HTML    template.HTML
	Editing bool
	Ghost   bool
}

// RowView is one day row: pinned cells aligned with GridView.Columns,
// then that day's visible free cells.
type RowView struct {
	Day    MonthDay
	Pinned []CellView
	Free   []CellView
}
