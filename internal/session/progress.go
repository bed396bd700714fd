package session

import "sync"

// ProgressSnapshot is an immutable copy of the aggregate progress state.
type ProgressSnapshot struct {
	CompletedExercises      []uint `json:"completed_exercises"`
	CompletedLessons        []uint `json:"completed_lessons"`
	TotalExercisesCompleted int    `json:"total_exercises_completed"`
	CurrentStreak           int    `json:"current_streak"`
}

// ProgressTracker is the process-wide aggregate across sessions: completed
// exercise and lesson sets, completion totals and the consecutive-correct
// streak. It is shared by every Store, so it carries its own lock.
//
// Counters only ever grow; the streak reset on a wrong answer is the one
// exception.
type ProgressTracker struct {
	mu sync.Mutex

	completedExercises      map[uint]struct{}
	completedLessons        map[uint]struct{}
	totalExercisesCompleted int
	currentStreak           int
}

func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{
		completedExercises: make(map[uint]struct{}),
		completedLessons:   make(map[uint]struct{}),
	}
}

// RecordSubmission updates the aggregate for one graded submission.
func (p *ProgressTracker) RecordSubmission(exerciseID uint, correct bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if correct {
		p.completedExercises[exerciseID] = struct{}{}
		p.totalExercisesCompleted++
		p.currentStreak++
		return
	}
	p.currentStreak = 0
}

// RecordLessonCompleted adds a lesson to the completed set.
func (p *ProgressTracker) RecordLessonCompleted(lessonID uint) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completedLessons[lessonID] = struct{}{}
}

func (p *ProgressTracker) HasCompletedExercise(exerciseID uint) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.completedExercises[exerciseID]
	return ok
}

func (p *ProgressTracker) HasCompletedLesson(lessonID uint) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.completedLessons[lessonID]
	return ok
}

func (p *ProgressTracker) TotalExercisesCompleted() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalExercisesCompleted
}

func (p *ProgressTracker) CurrentStreak() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentStreak
}

// Snapshot returns a copy safe to hand to consumers.
func (p *ProgressTracker) Snapshot() ProgressSnapshot {
	p.mu.Lock()
	defer p.mu.Unlock()

	snap := ProgressSnapshot{
		CompletedExercises:      make([]uint, 0, len(p.completedExercises)),
		CompletedLessons:        make([]uint, 0, len(p.completedLessons)),
		TotalExercisesCompleted: p.totalExercisesCompleted,
		CurrentStreak:           p.currentStreak,
	}
	for id := range p.completedExercises {
		snap.CompletedExercises = append(snap.CompletedExercises, id)
	}
	for id := range p.completedLessons {
		snap.CompletedLessons = append(snap.CompletedLessons, id)
	}
	return snap
}
