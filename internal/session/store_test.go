package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ads6495/infrunta/internal/models"
)

func testExercises() []models.Exercise {
	return []models.Exercise{
		{ID: 1, Type: models.AudioTyping, LessonID: 7, OrderNumber: 1, CorrectAnswer: "bună"},
		{ID: 2, Type: models.WordOrder, LessonID: 7, OrderNumber: 2, CorrectAnswer: "bună ziua"},
		{ID: 3, Type: models.AudioTyping, LessonID: 7, OrderNumber: 3, CorrectAnswer: "la revedere"},
	}
}

func startedStore(t *testing.T) *Store {
	t.Helper()
	store := NewStore(nil, nil)
	require.NoError(t, store.StartSession(7, testExercises()))
	return store
}

func TestStartSession(t *testing.T) {
	t.Run("initial state", func(t *testing.T) {
		store := startedStore(t)

		snap := store.Snapshot()
		assert.True(t, snap.Active)
		assert.False(t, snap.Completed)
		assert.Equal(t, uint(7), snap.LessonID)
		assert.Equal(t, 0, snap.CurrentIndex)
		assert.Equal(t, 3, snap.TotalExercises)
		assert.Equal(t, "", snap.CurrentAnswer)
		assert.False(t, snap.HasSubmitted)
		assert.Nil(t, snap.IsCorrect)
		require.NotNil(t, snap.CurrentExercise)
		assert.Equal(t, uint(1), snap.CurrentExercise.ID)
	})

	t.Run("empty exercise list rejected", func(t *testing.T) {
		store := NewStore(nil, nil)
		err := store.StartSession(7, nil)
		assert.ErrorIs(t, err, ErrNoExercises)
		assert.False(t, store.Snapshot().Active)
	})

	t.Run("exercise list is snapshotted", func(t *testing.T) {
		store := NewStore(nil, nil)
		exercises := testExercises()
		require.NoError(t, store.StartSession(7, exercises))

		exercises[0].CorrectAnswer = "mutated"
		assert.Equal(t, "bună", store.CurrentExercise().CorrectAnswer)
	})

	t.Run("restart replaces session but keeps progress", func(t *testing.T) {
		store := startedStore(t)
		store.SetCurrentAnswer("bună")
		correct, submitted := store.SubmitAnswer()
		require.True(t, correct)
		require.True(t, submitted)

		require.NoError(t, store.StartSession(9, testExercises()))
		snap := store.Snapshot()
		assert.Equal(t, uint(9), snap.LessonID)
		assert.Equal(t, 0, snap.CurrentIndex)
		assert.False(t, snap.HasSubmitted)
		assert.Equal(t, 1, store.Progress().TotalExercisesCompleted())
	})
}

func TestSubmitAnswer(t *testing.T) {
	t.Run("correct answer", func(t *testing.T) {
		store := startedStore(t)
		store.SetCurrentAnswer("Bună ")

		correct, submitted := store.SubmitAnswer()
		assert.True(t, correct)
		assert.True(t, submitted)
		assert.True(t, store.HasSubmitted())
		require.NotNil(t, store.IsCorrect())
		assert.True(t, *store.IsCorrect())

		answer, ok := store.ExerciseAnswer(1)
		assert.True(t, ok)
		assert.Equal(t, "Bună ", answer)
	})

	t.Run("incorrect answer", func(t *testing.T) {
		store := startedStore(t)
		store.SetCurrentAnswer("greșit")

		correct, submitted := store.SubmitAnswer()
		assert.False(t, correct)
		assert.True(t, submitted)
		require.NotNil(t, store.IsCorrect())
		assert.False(t, *store.IsCorrect())
	})

	t.Run("double submit is a no-op", func(t *testing.T) {
		store := startedStore(t)
		store.SetCurrentAnswer("bună")
		_, submitted := store.SubmitAnswer()
		require.True(t, submitted)

		correct, submitted := store.SubmitAnswer()
		assert.False(t, correct)
		assert.False(t, submitted)
		assert.Equal(t, 1, store.Progress().TotalExercisesCompleted())
	})

	t.Run("answer edits blocked after submit", func(t *testing.T) {
		store := startedStore(t)
		store.SetCurrentAnswer("bună")
		store.SubmitAnswer()

		store.SetCurrentAnswer("changed")
		assert.Equal(t, "bună", store.CurrentAnswer())
	})
}

func TestRetryCurrentExercise(t *testing.T) {
	store := startedStore(t)
	store.SetCurrentAnswer("greșit")
	store.SubmitAnswer()

	store.RetryCurrentExercise()

	assert.Equal(t, "", store.CurrentAnswer())
	assert.False(t, store.HasSubmitted())
	assert.Nil(t, store.IsCorrect())
	_, ok := store.ExerciseAnswer(1)
	assert.False(t, ok, "stored answer should be forgotten")
}

func TestNavigation(t *testing.T) {
	t.Run("next resets cursor", func(t *testing.T) {
		store := startedStore(t)
		store.SetCurrentAnswer("bună")
		store.SubmitAnswer()

		completed := store.NextExercise()
		assert.False(t, completed)
		assert.Equal(t, 1, store.CurrentIndex())
		assert.Equal(t, "", store.CurrentAnswer())
		assert.False(t, store.HasSubmitted())
		assert.Nil(t, store.IsCorrect())
	})

	t.Run("previous restores answer text but not submission", func(t *testing.T) {
		store := startedStore(t)
		store.SetCurrentAnswer("bună")
		store.SubmitAnswer()
		store.NextExercise()

		store.PreviousExercise()
		assert.Equal(t, 0, store.CurrentIndex())
		assert.Equal(t, "bună", store.CurrentAnswer())
		assert.False(t, store.HasSubmitted())
		assert.Nil(t, store.IsCorrect())
	})

	t.Run("previous at first exercise is a no-op", func(t *testing.T) {
		store := startedStore(t)
		store.PreviousExercise()
		assert.Equal(t, 0, store.CurrentIndex())
	})

	t.Run("goto jumps and restores", func(t *testing.T) {
		store := startedStore(t)
		store.SetCurrentAnswer("bună")
		store.SubmitAnswer()

		store.GoToExercise(2)
		assert.Equal(t, 2, store.CurrentIndex())
		assert.Equal(t, "", store.CurrentAnswer())

		store.GoToExercise(0)
		assert.Equal(t, "bună", store.CurrentAnswer())
		assert.False(t, store.HasSubmitted())
	})

	t.Run("goto out of range is a no-op", func(t *testing.T) {
		store := startedStore(t)
		store.GoToExercise(-1)
		assert.Equal(t, 0, store.CurrentIndex())
		store.GoToExercise(3)
		assert.Equal(t, 0, store.CurrentIndex())
	})

	t.Run("navigation clears toggles and audio", func(t *testing.T) {
		store := startedStore(t)
		store.ToggleHint()
		store.ToggleTranslation()
		store.SetAudioPlaying(true)

		store.NextExercise()
		snap := store.Snapshot()
		assert.False(t, snap.ShowHint)
		assert.False(t, snap.ShowTranslation)
		assert.False(t, snap.IsAudioPlaying)
	})
}

func TestSessionCompletion(t *testing.T) {
	t.Run("next at last exercise completes", func(t *testing.T) {
		store := startedStore(t)
		store.NextExercise()
		store.NextExercise()
		assert.Equal(t, 2, store.CurrentIndex())

		completed := store.NextExercise()
		assert.True(t, completed)
		assert.True(t, store.IsSessionCompleted())
		assert.True(t, store.Progress().HasCompletedLesson(7))
	})

	t.Run("completion happens exactly once", func(t *testing.T) {
		store := startedStore(t)
		store.NextExercise()
		store.NextExercise()
		require.True(t, store.NextExercise())

		assert.False(t, store.NextExercise())
		assert.Equal(t, 2, store.CurrentIndex())
	})

	t.Run("single exercise session", func(t *testing.T) {
		store := NewStore(nil, nil)
		require.NoError(t, store.StartSession(7, testExercises()[:1]))

		store.SetCurrentAnswer("bună")
		correct, _ := store.SubmitAnswer()
		assert.True(t, correct)
		assert.True(t, store.NextExercise())
		assert.True(t, store.IsSessionCompleted())
	})

	t.Run("mutations blocked after completion", func(t *testing.T) {
		store := NewStore(nil, nil)
		require.NoError(t, store.StartSession(7, testExercises()[:1]))
		require.True(t, store.NextExercise())

		store.SetCurrentAnswer("late")
		assert.Equal(t, "", store.CurrentAnswer())

		_, submitted := store.SubmitAnswer()
		assert.False(t, submitted)

		store.GoToExercise(0)
		assert.True(t, store.IsSessionCompleted())
	})
}

func TestResetSession(t *testing.T) {
	store := startedStore(t)
	store.SetCurrentAnswer("bună")
	store.SubmitAnswer()

	store.ResetSession()

	snap := store.Snapshot()
	assert.False(t, snap.Active)
	assert.Nil(t, snap.CurrentExercise)
	assert.Equal(t, "", snap.CurrentAnswer)
	assert.Equal(t, 1, store.Progress().TotalExercisesCompleted(), "progress survives reset")

	_, ok := store.LessonID()
	assert.False(t, ok)
}

func TestNoSessionNoOps(t *testing.T) {
	store := NewStore(nil, nil)

	store.SetCurrentAnswer("x")
	assert.Equal(t, "", store.CurrentAnswer())

	correct, submitted := store.SubmitAnswer()
	assert.False(t, correct)
	assert.False(t, submitted)

	store.RetryCurrentExercise()
	assert.False(t, store.NextExercise())
	store.PreviousExercise()
	store.GoToExercise(0)
	store.SetAudioPlaying(true)
	store.ToggleHint()
	store.ToggleTranslation()

	snap := store.Snapshot()
	assert.False(t, snap.Active)
	assert.False(t, snap.IsAudioPlaying)
	assert.False(t, snap.ShowHint)
	assert.Nil(t, store.CurrentExercise())
}

func TestToggles(t *testing.T) {
	store := startedStore(t)

	store.ToggleHint()
	assert.True(t, store.Snapshot().ShowHint)
	store.ToggleHint()
	assert.False(t, store.Snapshot().ShowHint)

	store.ToggleTranslation()
	assert.True(t, store.Snapshot().ShowTranslation)

	store.SetAudioPlaying(true)
	assert.True(t, store.Snapshot().IsAudioPlaying)
	store.SetAudioPlaying(false)
	assert.False(t, store.Snapshot().IsAudioPlaying)
}

func TestSubscribers(t *testing.T) {
	t.Run("notified on every change", func(t *testing.T) {
		store := NewStore(nil, nil)

		var snaps []Snapshot
		store.Subscribe(func(snap Snapshot) {
			snaps = append(snaps, snap)
		})

		require.NoError(t, store.StartSession(7, testExercises()))
		store.SetCurrentAnswer("bună")
		store.SubmitAnswer()

		require.Len(t, snaps, 3)
		assert.True(t, snaps[0].Active)
		assert.Equal(t, "bună", snaps[1].CurrentAnswer)
		assert.True(t, snaps[2].HasSubmitted)
	})

	t.Run("no-ops do not notify", func(t *testing.T) {
		store := startedStore(t)

		calls := 0
		store.Subscribe(func(Snapshot) { calls++ })

		store.PreviousExercise()
		store.GoToExercise(99)
		store.SubmitAnswer() // empty answer still counts as a submission attempt
		assert.Equal(t, 1, calls)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		store := startedStore(t)

		calls := 0
		unsubscribe := store.Subscribe(func(Snapshot) { calls++ })
		store.SetCurrentAnswer("a")
		unsubscribe()
		store.SetCurrentAnswer("b")

		assert.Equal(t, 1, calls)
	})

	t.Run("subscriber can read the store", func(t *testing.T) {
		store := startedStore(t)

		var seenIndex int
		store.Subscribe(func(Snapshot) {
			seenIndex = store.CurrentIndex()
		})

		store.NextExercise()
		assert.Equal(t, 1, seenIndex)
	})
}

func TestSnapshotProgressPercent(t *testing.T) {
	store := startedStore(t)
	assert.InDelta(t, 33.33, store.Snapshot().Progress, 0.01)

	store.NextExercise()
	assert.InDelta(t, 66.66, store.Snapshot().Progress, 0.01)

	store.NextExercise()
	assert.InDelta(t, 100.0, store.Snapshot().Progress, 0.01)
}
