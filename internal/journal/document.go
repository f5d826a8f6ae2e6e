// Package journal holds the journaling grid document model: pinned topic
// columns, per-day entries, ad-hoc free cells, the search filter, and the
// operations that keep the topic list and the per-day entries consistent.
package journal

import "strings"

// DateKeyLayout is the entry key format, e.g. "2026-08-31".
const DateKeyLayout = "2006-01-02"

// Topic is a pinned, globally visible column definition.
type Topic struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Archived bool   `json:"archived,omitempty"`
}

// FreeCell is an ad-hoc, day-scoped note not tied to a global column.
// IDs are unique within their entry; names may repeat across days.
type FreeCell struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Text string `json:"text"`
}

// Entry is the record for one calendar day. Pinned maps topic id to note
// text; Free is the ordered list of free cells attached to that day.
type Entry struct {
	Pinned map[string]string `json:"pinned"`
	Free   []FreeCell        `json:"free"`
}

// Document is the sole persisted aggregate. Topics keep insertion order;
// Entries are keyed by date key and never deleted once created.
type Document struct {
	Topics  []Topic           `json:"topics"`
	Entries map[string]*Entry `json:"entries"`
}

func NewDocument() *Document {
	return &Document{
		Topics:  []Topic{},
		Entries: map[string]*Entry{},
	}
}

// EntryFor returns the entry for dateKey, materializing an empty one on
// first access.
func (d *Document) EntryFor(dateKey string) *Entry {
	if d.Entries == nil {
		d.Entries = map[string]*Entry{}
	}
	if e, ok := d.Entries[dateKey]; ok {
		e.ensure()
		return e
	}
	e := &Entry{Pinned: map[string]string{}, Free: []FreeCell{}}
	d.Entries[dateKey] = e
	return e
}

func (e *Entry) ensure() {
	if e.Pinned == nil {
		e.Pinned = map[string]string{}
	}
	if e.Free == nil {
		e.Free = []FreeCell{}
	}
}

// Normalize defaults missing fields after a load and drops pinned values
// whose topic id no longer exists. Orphaned pinned data carries no
// cascading-delete guarantee, so it is discarded rather than surfaced.
func (d *Document) Normalize() {
	if d.Topics == nil {
		d.Topics = []Topic{}
	}
	if d.Entries == nil {
		d.Entries = map[string]*Entry{}
	}
	known := make(map[string]bool, len(d.Topics))
	for _, t := range d.Topics {
		known[t.ID] = true
	}
	for key, e := range d.Entries {
		if e == nil {
			d.Entries[key] = &Entry{Pinned: map[string]string{}, Free: []FreeCell{}}
			continue
		}
		e.ensure()
		for id := range e.Pinned {
			if !known[id] {
				delete(e.Pinned, id)
			}
		}
	}
}

// Topic returns the topic with the given id.
func (d *Document) Topic(id string) (*Topic, bool) {
	for i := range d.Topics {
		if d.Topics[i].ID == id {
			return &d.Topics[i], true
		}
	}
	return nil, false
}

// LiveTopicNames returns the lowercased names of all non-archived topics.
// Archived topics do not reserve their name.
func (d *Document) LiveTopicNames() []string {
	names := make([]string, 0, len(d.Topics))
	for _, t := range d.Topics {
		if !t.Archived {
			names = append(names, strings.ToLower(t.Name))
		}
	}
	return names
}

func (e *Entry) freeCell(id string) (*FreeCell, bool) {
	for i := range e.Free {
		if e.Free[i].ID == id {
			return &e.Free[i], true
		}
	}
	return nil, false
}
