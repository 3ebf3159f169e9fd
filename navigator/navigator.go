// Package navigator holds the per-session browse position inside the
// Batch -> Subject -> Chapter hierarchy. It is pure state: no I/O, one
// instance per user session, safe for concurrent use.
package navigator

import "sync"

// Selection is the current position. Zero means unset; a set SubjectID
// implies a set BatchID and a set ChapterID implies a set SubjectID, so the
// selection is always a valid prefix of a hierarchy path.
type Selection struct {
	BatchID   uint `json:"batch_id,omitempty"`
	SubjectID uint `json:"subject_id,omitempty"`
	ChapterID uint `json:"chapter_id,omitempty"`
}

// Navigator owns one session's selection. Every change bumps Generation, so
// a read issued against an older selection can be recognized and its late
// result dropped instead of corrupting the current view.
type Navigator struct {
	mu         sync.Mutex
	sel        Selection
	generation uint64
	stale      bool
}

// Snapshot is the externally visible navigator state.
type Snapshot struct {
	Selection  Selection `json:"selection"`
	Generation uint64    `json:"generation"`
	Stale      bool      `json:"stale"`
}

// SelectBatch sets the batch and clears the deeper levels.
func (n *Navigator) SelectBatch(id uint) uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sel = Selection{BatchID: id}
	return n.bump()
}

// SelectSubject sets the subject under its batch and clears the chapter.
// Passing the batch keeps the prefix invariant even when the session jumps
// straight to a subject.
func (n *Navigator) SelectSubject(batchID, subjectID uint) uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sel = Selection{BatchID: batchID, SubjectID: subjectID}
	return n.bump()
}

// SelectChapter sets the full path down to a chapter.
func (n *Navigator) SelectChapter(batchID, subjectID, chapterID uint) uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sel = Selection{BatchID: batchID, SubjectID: subjectID, ChapterID: chapterID}
	return n.bump()
}

// Back pops the deepest set level.
func (n *Navigator) Back() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	switch {
	case n.sel.ChapterID != 0:
		n.sel.ChapterID = 0
	case n.sel.SubjectID != 0:
		n.sel.SubjectID = 0
	case n.sel.BatchID != 0:
		n.sel.BatchID = 0
	}
	return n.bump()
}

// Reset clears the whole selection.
func (n *Navigator) Reset() uint64 {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sel = Selection{}
	return n.bump()
}

// bump must be called with the lock held. A selection change supersedes any
// staleness from earlier catalog mutations.
func (n *Navigator) bump() uint64 {
	n.generation++
	n.stale = false
	return n.generation
}

// StillCurrent reports whether a result produced for the given generation
// may still be applied to this navigator.
func (n *Navigator) StillCurrent(generation uint64) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.generation == generation
}

// MarkStale flags the current view as out of date after a catalog mutation.
func (n *Navigator) MarkStale() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stale = true
}

// Snapshot returns a copy of the current state.
func (n *Navigator) Snapshot() Snapshot {
	n.mu.Lock()
	defer n.mu.Unlock()
	return Snapshot{Selection: n.sel, Generation: n.generation, Stale: n.stale}
}

// Store hands out one Navigator per user session.
type Store struct {
	mu       sync.Mutex
	sessions map[uint]*Navigator
}

func NewStore() *Store {
	return &Store{sessions: make(map[uint]*Navigator)}
}

// Get returns the session's navigator, creating it on first use.
func (s *Store) Get(userID uint) *Navigator {
	s.mu.Lock()
	defer s.mu.Unlock()
	nav, ok := s.sessions[userID]
	if !ok {
		nav = &Navigator{}
		s.sessions[userID] = nav
	}
	return nav
}

// MarkAllStale flags every session after a catalog mutation.
func (s *Store) MarkAllStale() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, nav := range s.sessions {
		nav.MarkStale()
	}
}

// Drop forgets a session, e.g. after logout.
func (s *Store) Drop(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
