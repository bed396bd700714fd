package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_CreateAndGet(t *testing.T) {
	manager := NewManager(nil, nil)

	id, store := manager.Create()
	assert.NotEmpty(t, id)
	require.NotNil(t, store)

	found, ok := manager.Get(id)
	assert.True(t, ok)
	assert.Same(t, store, found)

	_, ok = manager.Get("missing")
	assert.False(t, ok)
}

func TestManager_Dispose(t *testing.T) {
	manager := NewManager(nil, nil)
	id, _ := manager.Create()
	require.Equal(t, 1, manager.Count())

	manager.Dispose(id)
	assert.Equal(t, 0, manager.Count())
	_, ok := manager.Get(id)
	assert.False(t, ok)

	// Disposing twice is harmless.
	manager.Dispose(id)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	manager := NewManager(nil, nil)

	_, a := manager.Create()
	_, b := manager.Create()
	require.NoError(t, a.StartSession(7, testExercises()))

	assert.True(t, a.Snapshot().Active)
	assert.False(t, b.Snapshot().Active)
}

func TestManager_StoresShareProgress(t *testing.T) {
	manager := NewManager(nil, nil)

	idA, a := manager.Create()
	_, b := manager.Create()

	require.NoError(t, a.StartSession(7, testExercises()))
	a.SetCurrentAnswer("bună")
	correct, submitted := a.SubmitAnswer()
	require.True(t, correct)
	require.True(t, submitted)

	assert.Equal(t, 1, b.Progress().TotalExercisesCompleted())
	assert.True(t, manager.Progress().HasCompletedExercise(1))

	// Progress outlives the store that produced it.
	manager.Dispose(idA)
	assert.Equal(t, 1, manager.Progress().TotalExercisesCompleted())
}
