package navigator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelectionIsAlwaysAValidPrefix(t *testing.T) {
	nav := &Navigator{}

	nav.SelectChapter(1, 2, 3)
	snap := nav.Snapshot()
	assert.Equal(t, Selection{BatchID: 1, SubjectID: 2, ChapterID: 3}, snap.Selection)

	// Selecting a level clears everything deeper.
	nav.SelectSubject(1, 5)
	assert.Equal(t, Selection{BatchID: 1, SubjectID: 5}, nav.Snapshot().Selection)

	nav.SelectBatch(9)
	assert.Equal(t, Selection{BatchID: 9}, nav.Snapshot().Selection)
}

func TestBackPopsDeepestLevel(t *testing.T) {
	nav := &Navigator{}
	nav.SelectChapter(1, 2, 3)

	nav.Back()
	assert.Equal(t, Selection{BatchID: 1, SubjectID: 2}, nav.Snapshot().Selection)
	nav.Back()
	assert.Equal(t, Selection{BatchID: 1}, nav.Snapshot().Selection)
	nav.Back()
	assert.Equal(t, Selection{}, nav.Snapshot().Selection)

	// Back on an empty selection stays empty.
	nav.Back()
	assert.Equal(t, Selection{}, nav.Snapshot().Selection)
}

func TestReset(t *testing.T) {
	nav := &Navigator{}
	nav.SelectChapter(1, 2, 3)
	nav.Reset()
	assert.Equal(t, Selection{}, nav.Snapshot().Selection)
}

func TestGenerationGuardsLateResults(t *testing.T) {
	nav := &Navigator{}

	gen := nav.SelectBatch(1)
	assert.True(t, nav.StillCurrent(gen))

	// The user navigated away before the read for gen came back.
	nav.SelectBatch(2)
	assert.False(t, nav.StillCurrent(gen))
}

func TestStaleFlagLifecycle(t *testing.T) {
	nav := &Navigator{}
	nav.SelectBatch(1)

	nav.MarkStale()
	assert.True(t, nav.Snapshot().Stale)

	// A fresh selection supersedes staleness.
	nav.SelectBatch(1)
	assert.False(t, nav.Snapshot().Stale)
}

func TestStoreSessionsAreIndependent(t *testing.T) {
	store := NewStore()

	store.Get(1).SelectBatch(10)
	store.Get(2).SelectBatch(20)

	assert.Equal(t, Selection{BatchID: 10}, store.Get(1).Snapshot().Selection)
	assert.Equal(t, Selection{BatchID: 20}, store.Get(2).Snapshot().Selection)

	store.MarkAllStale()
	assert.True(t, store.Get(1).Snapshot().Stale)
	assert.True(t, store.Get(2).Snapshot().Stale)

	store.Drop(1)
	// A dropped session comes back fresh.
	assert.Equal(t, Selection{}, store.Get(1).Snapshot().Selection)
}
