package journal

import "strings"

// TargetKind says which kind of cell an edit session targets.
type TargetKind string

const (
	TargetPinned TargetKind = "pinned"
	TargetFree   TargetKind = "free"
)

// EditSession is the active edit of one cell: raw text exposed, draft held
// until the session ends. The cell identity travels with the session so no
// rendered element needs to carry a hidden callback.
type EditSession struct {
	Kind    TargetKind
	DateKey string
	ID      string // topic id for pinned cells, cell id for free cells
	Draft   string
}

func (s EditSession) Targets(kind TargetKind, dateKey, id string) bool {
	return s.Kind == kind && s.DateKey == dateKey && s.ID == id
}

// AppState is the per-presentation-session UI state: the single active
// edit session. At most one cell document-wide may be editing at a time.
type AppState struct {
	Active *EditSession
}

// Begin activates an edit session. If another cell is already editing, it
// is forced through its implicit-save transition first: the previous
// session is returned and the caller must commit its draft.
func (st *AppState) Begin(sess EditSession) *EditSession {
	prev := st.Active
	if prev != nil && prev.Targets(sess.Kind, sess.DateKey, sess.ID) {
		prev = nil
	}
	st.Active = &sess
	return prev
}

// End closes the active session. With commit set the returned session's
// draft must be written through; otherwise the draft is discarded and the
// cell reverts to its last-saved text.
func (st *AppState) End(commit bool) (EditSession, bool) {
	if st.Active == nil {
		return EditSession{}, false
	}
	sess := *st.Active
	st.Active = nil
	if !commit {
		return sess, false
	}
	return sess, true
}

// Editing reports whether the given cell is the active edit target.
func (st *AppState) Editing(kind TargetKind, dateKey, id string) bool {
	return st.Active != nil && st.Active.Targets(kind, dateKey, id)
}

// ValidateName is the naming-collision rule every create/rename/promote
// runs through: a name must be non-blank and must not equal
// (case-insensitive) any forbidden name other than the current one.
func ValidateName(name, current string, forbidden []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if strings.EqualFold(name, current) {
		return nil
	}
	for _, f := range forbidden {
		if strings.EqualFold(name, f) {
			return ErrNameTaken
		}
	}
	return nil
}
