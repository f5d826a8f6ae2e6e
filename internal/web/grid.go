package web

import (
	"html/template"
	"log/slog"

	"daygrid/internal/journal"
	"daygrid/internal/markdown"
)

// buildGrid resolves the document, filter, and edit state into the view
// the grid template renders. Column and row order follow the document's
// persisted order; ghost columns come after live ones.
func buildGrid(doc *journal.Document, state *journal.AppState, month Month, query string, showGhosts bool) GridView {
	filter := journal.ParseQuery(query)
	res := journal.ApplyFilter(doc, filter, month.dayKeys(), showGhosts)

	view := GridView{Month: month, Query: query}
	if state.Active != nil {
		view.Editing = true
		view.ActiveDraft = state.Active.Draft
	}

	for _, t := range doc.Topics {
		if t.Archived || !res.TopicVisible[t.ID] {
			continue
		}
		view.Columns = append(view.Columns, ColumnView{ID: t.ID, Name: t.Name})
	}
	for _, g := range res.Ghosts {
		view.Columns = append(view.Columns, ColumnView{ID: g.ID, Name: g.Name, Ghost: true})
	}

	for _, day := range month.Days {
		if !res.RowVisible[day.DateKey] {
			continue
		}
		row := RowView{Day: day}
		entry := doc.Entries[day.DateKey]

		for _, col := range view.Columns {
			text := ""
			if entry != nil {
				text = entry.Pinned[col.ID]
			}
			cell := CellView{
				Kind:  string(journal.TargetPinned),
				ID:    col.ID,
				Raw:   text,
				HTML:  renderCell(text),
				Ghost: col.Ghost,
			}
			if !col.Ghost && state.Editing(journal.TargetPinned, day.DateKey, col.ID) {
				cell.Editing = true
				cell.Raw = state.Active.Draft
			}
			row.Pinned = append(row.Pinned, cell)
		}

		if entry != nil {
			for _, fc := range entry.Free {
				if !res.FreeVisible[journal.FreeCellKey(day.DateKey, fc.ID)] {
					continue
				}
				cell := CellView{
					Kind: string(journal.TargetFree),
					ID:   fc.ID,
					Name: fc.Name,
					Raw:  fc.Text,
					HTML: renderCell(fc.Text),
				}
				if state.Editing(journal.TargetFree, day.DateKey, fc.ID) {
					cell.Editing = true
					cell.Raw = state.Active.Draft
				}
				row.Free = append(row.Free, cell)
			}
		}
		view.Rows = append(view.Rows, row)
	}
	return view
}

// renderCell converts note text to HTML for the preview state. A renderer
// failure falls back to the escaped raw text; it never blocks the grid.
func renderCell(text string) template.HTML {
	out, err := markdown.Render(text)
	if err != nil {
		slog.Warn("render cell", "err", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(out)
}
