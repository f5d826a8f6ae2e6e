package journal

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// Validation rejections surface before any mutation; a failed operation
// leaves the document untouched.
var (
	ErrEmptyName = errors.New("journal: name must not be empty")
	ErrNameTaken = errors.New("journal: name already in use")
	ErrNotFound  = errors.New("journal: not found")
)

// AddTopic appends a new pinned column. The name must be non-blank and
// unique (case-insensitive) among non-archived topics.
func (d *Document) AddTopic(name string) (Topic, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name, "", d.LiveTopicNames()); err != nil {
		return Topic{}, err
	}
	t := Topic{ID: uuid.NewString(), Name: name}
	d.Topics = append(d.Topics, t)
	return t, nil
}

// RenameTopic updates a topic's name in place under the same uniqueness
// rule as AddTopic, excluding the topic itself.
func (d *Document) RenameTopic(topicID, newName string) error {
	t, ok := d.Topic(topicID)
	if !ok {
		return ErrNotFound
	}
	newName = strings.TrimSpace(newName)
	if err := ValidateName(newName, t.Name, d.LiveTopicNames()); err != nil {
		return err
	}
	t.Name = newName
	return nil
}

// ArchiveTopic hides a topic from default rendering. Its id, name, and
// pinned data are retained and it stays filter-addressable as a ghost.
func (d *Document) ArchiveTopic(topicID string) error {
	t, ok := d.Topic(topicID)
	if !ok {
		return ErrNotFound
	}
	t.Archived = true
	return nil
}

func (d *Document) UnarchiveTopic(topicID string) error {
	t, ok := d.Topic(topicID)
	if !ok {
		return ErrNotFound
	}
	t.Archived = false
	return nil
}

// DeleteTopic removes the topic and purges its id from every entry's
// pinned map. Free cells are untouched. Irreversible.
func (d *Document) DeleteTopic(topicID string) error {
	if _, ok := d.Topic(topicID); !ok {
		return ErrNotFound
	}
	d.removeTopic(topicID)
	for _, e := range d.Entries {
		if e != nil && e.Pinned != nil {
			delete(e.Pinned, topicID)
		}
	}
	return nil
}

// UnpinTopic demotes a pinned column back to free cells: every non-empty
// pinned value becomes a new free cell on its day, named after the topic;
// empty values are dropped. The topic is then removed entirely.
func (d *Document) UnpinTopic(topicID string) error {
	t, ok := d.Topic(topicID)
	if !ok {
		return ErrNotFound
	}
	name := t.Name
	for _, e := range d.Entries {
		if e == nil || e.Pinned == nil {
			continue
		}
		text, ok := e.Pinned[topicID]
		if !ok {
			continue
		}
		delete(e.Pinned, topicID)
		if text == "" {
			continue
		}
		e.ensure()
		e.Free = append(e.Free, FreeCell{ID: uuid.NewString(), Name: name, Text: text})
	}
	d.removeTopic(topicID)
	return nil
}

// AddFreeCell attaches an empty ad-hoc cell to one day. The name must not
// collide (case-insensitive) with a live topic name or another free cell
// name already on that day.
func (d *Document) AddFreeCell(dateKey, name string) (FreeCell, error) {
	name = strings.TrimSpace(name)
	if err := ValidateName(name, "", d.dayNames(dateKey, "")); err != nil {
		return FreeCell{}, err
	}
	e := d.EntryFor(dateKey)
	cell := FreeCell{ID: uuid.NewString(), Name: name, Text: ""}
	e.Free = append(e.Free, cell)
	return cell, nil
}

// RenameFreeCell applies the AddFreeCell collision rule scoped to the
// cell's own day, excluding the cell being renamed.
func (d *Document) RenameFreeCell(dateKey, cellID, newName string) error {
	e, ok := d.Entries[dateKey]
	if !ok || e == nil {
		return ErrNotFound
	}
	cell, ok := e.freeCell(cellID)
	if !ok {
		return ErrNotFound
	}
	newName = strings.TrimSpace(newName)
	if err := ValidateName(newName, cell.Name, d.dayNames(dateKey, cellID)); err != nil {
		return err
	}
	cell.Name = newName
	return nil
}

// DeleteFreeCell removes the cell from its day's free list only.
func (d *Document) DeleteFreeCell(dateKey, cellID string) error {
	e, ok := d.Entries[dateKey]
	if !ok || e == nil {
		return ErrNotFound
	}
	for i := range e.Free {
		if e.Free[i].ID == cellID {
			e.Free = append(e.Free[:i], e.Free[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// PromoteFreeCell pins a free cell as a global column. A new topic named
// resolvedName is created, then every free cell document-wide whose name
// matches the promoted cell's name (case-insensitive, no date scoping) is
// migrated into the new topic's pinned slot on its day and removed.
//
// Naming collisions must be resolved by the caller before the call; the
// engine rejects a colliding resolvedName but never prompts.
func (d *Document) PromoteFreeCell(dateKey, cellID, resolvedName string) (Topic, error) {
	e, ok := d.Entries[dateKey]
	if !ok || e == nil {
		return Topic{}, ErrNotFound
	}
	cell, ok := e.freeCell(cellID)
	if !ok {
		return Topic{}, ErrNotFound
	}
	matchName := cell.Name

	resolvedName = strings.TrimSpace(resolvedName)
	if err := ValidateName(resolvedName, "", d.LiveTopicNames()); err != nil {
		return Topic{}, err
	}

	t := Topic{ID: uuid.NewString(), Name: resolvedName}
	d.Topics = append(d.Topics, t)

	for _, entry := range d.Entries {
		if entry == nil || len(entry.Free) == 0 {
			continue
		}
		kept := entry.Free[:0]
		for _, fc := range entry.Free {
			if strings.EqualFold(fc.Name, matchName) {
				entry.ensure()
				entry.Pinned[t.ID] = fc.Text
				continue
			}
			kept = append(kept, fc)
		}
		entry.Free = kept
	}
	return t, nil
}

// SetPinnedText overwrites the note for one (topic, day) pair. No length
// limit, no markdown validation.
func (d *Document) SetPinnedText(dateKey, topicID, text string) error {
	if _, ok := d.Topic(topicID); !ok {
		return ErrNotFound
	}
	d.EntryFor(dateKey).Pinned[topicID] = text
	return nil
}

// SetFreeCellText overwrites a free cell's note.
func (d *Document) SetFreeCellText(dateKey, cellID, text string) error {
	e, ok := d.Entries[dateKey]
	if !ok || e == nil {
		return ErrNotFound
	}
	cell, ok := e.freeCell(cellID)
	if !ok {
		return ErrNotFound
	}
	cell.Text = text
	return nil
}

func (d *Document) removeTopic(topicID string) {
	for i := range d.Topics {
		if d.Topics[i].ID == topicID {
			d.Topics = append(d.Topics[:i], d.Topics[i+1:]...)
			return
		}
	}
}

// dayNames is the forbidden-name set for a free cell on one day: every
// live topic name plus the other free cell names already on that day.
func (d *Document) dayNames(dateKey, excludeCellID string) []string {
	names := d.LiveTopicNames()
	e, ok := d.Entries[dateKey]
	if !ok || e == nil {
		return names
	}
	for _, cell := range e.Free {
		if cell.ID != excludeCellID {
			names = append(names, strings.ToLower(cell.Name))
		}
	}
	return names
}
