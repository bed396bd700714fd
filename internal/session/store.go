package session

import (
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/ads6495/infrunta/internal/models"
	"github.com/ads6495/infrunta/internal/validation"
)

// ErrNoExercises is returned by StartSession when the exercise list is
// empty. A session never starts without at least one exercise.
var ErrNoExercises = errors.New("session requires at least one exercise")

// Session is one learner's traversal of one ordered exercise list
// belonging to one lesson. The exercise list is a snapshot taken at
// start: later catalog edits do not affect an in-progress session.
type Session struct {
	LessonID    uint
	Exercises   []models.Exercise
	Answers     map[uint]string
	StartedAt   time.Time
	CompletedAt *time.Time
}

// Snapshot is a fully-consistent read of the store, produced under the
// store lock. Consumers never observe a partial update.
type Snapshot struct {
	Active    bool `json:"active"`
	Completed bool `json:"completed"`

	LessonID       uint    `json:"lesson_id"`
	CurrentIndex   int     `json:"current_index"`
	TotalExercises int     `json:"total_exercises"`
	Progress       float64 `json:"progress"`

	CurrentExercise *models.Exercise `json:"current_exercise,omitempty"`
	CurrentAnswer   string           `json:"current_answer"`
	HasSubmitted    bool             `json:"has_submitted"`
	IsCorrect       *bool            `json:"is_correct"`

	IsAudioPlaying  bool `json:"is_audio_playing"`
	ShowHint        bool `json:"show_hint"`
	ShowTranslation bool `json:"show_translation"`
}

// Subscriber receives a consistent snapshot after every state change.
type Subscriber func(Snapshot)

// Store owns the mutable session state: the exercise list, the cursor
// position, per-exercise answers and the transient UI flags. Every
// operation is synchronous and serialized by an internal mutex, so
// transitions that read-then-write several fields stay atomic when the
// store is driven from concurrent HTTP handlers.
//
// Invalid transitions (operating with no session, submitting twice,
// navigating out of range) are silent no-ops rather than errors: the
// preconditions are all checkable by the caller, and a violation is a
// UI-logic bug rather than a runtime failure to surface.
type Store struct {
	mu       sync.Mutex
	logger   *slog.Logger
	progress *ProgressTracker

	session *Session
	index   int

	// Cursor state: tied to the exercise currently being looked at and
	// reset on every navigation event.
	currentAnswer   string
	hasSubmitted    bool
	isCorrect       *bool
	isAudioPlaying  bool
	showHint        bool
	showTranslation bool

	nextSubID   int
	subscribers map[int]Subscriber
}

// NewStore creates an explicitly owned store instance. Progress is shared
// process-wide and injected; everything else is per-store.
func NewStore(progress *ProgressTracker, logger *slog.Logger) *Store {
	if progress == nil {
		progress = NewProgressTracker()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		logger:      logger,
		progress:    progress,
		subscribers: make(map[int]Subscriber),
	}
}

// Progress returns the shared progress tracker.
func (s *Store) Progress() *ProgressTracker {
	return s.progress
}

// Subscribe registers a callback invoked with a consistent snapshot after
// every state change. The returned function unsubscribes.
func (s *Store) Subscribe(fn Subscriber) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}

// StartSession snapshots the exercise list and resets the cursor to the
// first exercise. Progress is deliberately preserved across sessions.
func (s *Store) StartSession(lessonID uint, exercises []models.Exercise) error {
	if len(exercises) == 0 {
		return ErrNoExercises
	}

	s.mu.Lock()
	snapshot := make([]models.Exercise, len(exercises))
	copy(snapshot, exercises)

	s.session = &Session{
		LessonID:  lessonID,
		Exercises: snapshot,
		Answers:   make(map[uint]string),
		StartedAt: time.Now(),
	}
	s.index = 0
	s.resetCursorLocked()
	s.logger.Info("exercise session started",
		"lesson_id", lessonID,
		"exercise_count", len(snapshot))
	s.notifyLocked()
	return nil
}

// SetCurrentAnswer updates the in-edit answer text. No-op once the
// current exercise has been submitted or when no session is active.
func (s *Store) SetCurrentAnswer(answer string) {
	s.mu.Lock()
	if !s.inProgressLocked() || s.hasSubmitted {
		s.mu.Unlock()
		return
	}
	s.currentAnswer = answer
	s.notifyLocked()
}

// SubmitAnswer records the current answer, grades it and updates the
// shared progress. The correctness result is returned directly so the
// caller can react at the exact moment of the transition; submitted
// reports false when the submission was a no-op (no active session, or
// already submitted without an intervening retry/navigation).
func (s *Store) SubmitAnswer() (correct bool, submitted bool) {
	s.mu.Lock()
	if !s.inProgressLocked() || s.hasSubmitted {
		s.mu.Unlock()
		return false, false
	}

	exercise := &s.session.Exercises[s.index]
	s.session.Answers[exercise.ID] = s.currentAnswer

	correct = validation.ValidateAnswer(exercise, s.currentAnswer)
	s.progress.RecordSubmission(exercise.ID, correct)

	s.hasSubmitted = true
	result := correct
	s.isCorrect = &result

	s.logger.Info("answer submitted",
		"lesson_id", s.session.LessonID,
		"exercise_id", exercise.ID,
		"exercise_type", exercise.Type,
		"correct", correct)
	s.notifyLocked()
	return correct, true
}

// RetryCurrentExercise forgets the stored answer for the current exercise
// and resets the cursor so the learner starts over cleanly.
func (s *Store) RetryCurrentExercise() {
	s.mu.Lock()
	if !s.inProgressLocked() {
		s.mu.Unlock()
		return
	}

	exercise := &s.session.Exercises[s.index]
	delete(s.session.Answers, exercise.ID)
	s.resetCursorLocked()
	s.notifyLocked()
}

// NextExercise advances the cursor. Invoked while already at the last
// exercise it completes the session instead: this is the only path into
// the completed state, and it happens exactly once.
func (s *Store) NextExercise() (completedSession bool) {
	s.mu.Lock()
	if !s.inProgressLocked() {
		s.mu.Unlock()
		return false
	}

	next := s.index + 1
	if next >= len(s.session.Exercises) {
		now := time.Now()
		s.session.CompletedAt = &now
		s.progress.RecordLessonCompleted(s.session.LessonID)
		s.logger.Info("exercise session completed",
			"lesson_id", s.session.LessonID,
			"duration", now.Sub(s.session.StartedAt).String())
		s.notifyLocked()
		return true
	}

	s.index = next
	s.restoreCursorLocked()
	s.notifyLocked()
	return false
}

// PreviousExercise moves the cursor back one exercise.
func (s *Store) PreviousExercise() {
	s.mu.Lock()
	if !s.inProgressLocked() || s.index <= 0 {
		s.mu.Unlock()
		return
	}

	s.index--
	s.restoreCursorLocked()
	s.notifyLocked()
}

// GoToExercise jumps to an arbitrary position. Out-of-range indexes are
// ignored.
func (s *Store) GoToExercise(index int) {
	s.mu.Lock()
	if !s.inProgressLocked() || index < 0 || index >= len(s.session.Exercises) {
		s.mu.Unlock()
		return
	}

	s.index = index
	s.restoreCursorLocked()
	s.notifyLocked()
}

// ResetSession clears the session entirely. Progress survives.
func (s *Store) ResetSession() {
	s.mu.Lock()
	s.session = nil
	s.index = 0
	s.resetCursorLocked()
	s.notifyLocked()
}

// SetAudioPlaying tracks the presentation layer's playback flag. Cleared
// automatically on every navigation so a stale "playing" indicator never
// survives an exercise change.
func (s *Store) SetAudioPlaying(playing bool) {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return
	}
	s.isAudioPlaying = playing
	s.notifyLocked()
}

func (s *Store) ToggleHint() {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return
	}
	s.showHint = !s.showHint
	s.notifyLocked()
}

func (s *Store) ToggleTranslation() {
	s.mu.Lock()
	if s.session == nil {
		s.mu.Unlock()
		return
	}
	s.showTranslation = !s.showTranslation
	s.notifyLocked()
}

// ===== READ ACCESSORS =====

// CurrentExercise returns the exercise under the cursor, or nil when no
// session is active.
func (s *Store) CurrentExercise() *models.Exercise {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return nil
	}
	exercise := s.session.Exercises[s.index]
	return &exercise
}

func (s *Store) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

func (s *Store) CurrentAnswer() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentAnswer
}

func (s *Store) HasSubmitted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hasSubmitted
}

// IsCorrect reports the graded result of the current submission, nil
// until the learner submits.
func (s *Store) IsCorrect() *bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.isCorrect == nil {
		return nil
	}
	v := *s.isCorrect
	return &v
}

// ExerciseAnswer returns the last submitted answer for an exercise,
// retrievable for the lifetime of the session.
func (s *Store) ExerciseAnswer(exerciseID uint) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return "", false
	}
	answer, ok := s.session.Answers[exerciseID]
	return answer, ok
}

func (s *Store) IsSessionCompleted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session != nil && s.session.CompletedAt != nil
}

func (s *Store) LessonID() (uint, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.session == nil {
		return 0, false
	}
	return s.session.LessonID, true
}

// Snapshot returns the full derived state in one consistent read.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// ===== INTERNAL =====

func (s *Store) inProgressLocked() bool {
	return s.session != nil && s.session.CompletedAt == nil
}

// resetCursorLocked restores the cursor defaults: empty answer, not
// submitted, no verdict, toggles closed, audio stopped.
func (s *Store) resetCursorLocked() {
	s.currentAnswer = ""
	s.hasSubmitted = false
	s.isCorrect = nil
	s.isAudioPlaying = false
	s.showHint = false
	s.showTranslation = false
}

// restoreCursorLocked resets the cursor for a navigation event, then
// restores the stored answer text for the new exercise so the learner
// sees what they previously typed. The submitted flag is never restored:
// revisiting always requires a fresh submission to see feedback.
func (s *Store) restoreCursorLocked() {
	s.resetCursorLocked()
	exercise := s.session.Exercises[s.index]
	if answer, ok := s.session.Answers[exercise.ID]; ok {
		s.currentAnswer = answer
	}
}

func (s *Store) snapshotLocked() Snapshot {
	snap := Snapshot{
		CurrentAnswer:   s.currentAnswer,
		HasSubmitted:    s.hasSubmitted,
		IsAudioPlaying:  s.isAudioPlaying,
		ShowHint:        s.showHint,
		ShowTranslation: s.showTranslation,
	}
	if s.isCorrect != nil {
		v := *s.isCorrect
		snap.IsCorrect = &v
	}
	if s.session == nil {
		return snap
	}

	snap.Active = true
	snap.Completed = s.session.CompletedAt != nil
	snap.LessonID = s.session.LessonID
	snap.CurrentIndex = s.index
	snap.TotalExercises = len(s.session.Exercises)
	snap.Progress = float64(s.index+1) / float64(len(s.session.Exercises)) * 100

	exercise := s.session.Exercises[s.index]
	snap.CurrentExercise = &exercise
	return snap
}

// notifyLocked computes the snapshot under the lock, releases it and then
// invokes subscribers, so a subscriber can call back into the store.
func (s *Store) notifyLocked() {
	snap := s.snapshotLocked()
	subs := make([]Subscriber, 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}
