package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ads6495/infrunta/internal/models"
)

// EventType identifies the learning events emitted by the player.
type EventType string

const (
	// Session events
	EventSessionStarted EventType = "session.started"
	EventSessionReset   EventType = "session.reset"

	// Submission events
	EventAnswerSubmitted EventType = "answer.submitted"

	// Completion events
	EventLessonCompleted EventType = "lesson.completed"
)

// LearningEvent is the envelope shared by every published event.
type LearningEvent struct {
	ID        string                 `json:"id"`
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Source    string                 `json:"source"`
	Version   string                 `json:"version"`
	Data      interface{}            `json:"data"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Event payloads

type SessionStartedEvent struct {
	SessionID     string    `json:"session_id"`
	LessonID      uint      `json:"lesson_id"`
	ExerciseCount int       `json:"exercise_count"`
	StartedAt     time.Time `json:"started_at"`
}

type AnswerSubmittedEvent struct {
	SessionID    string              `json:"session_id"`
	LessonID     uint                `json:"lesson_id"`
	ExerciseID   uint                `json:"exercise_id"`
	ExerciseType models.ExerciseType `json:"exercise_type"`
	Answer       string              `json:"answer"`
	Correct      bool                `json:"correct"`
	SubmittedAt  time.Time           `json:"submitted_at"`
}

type SessionResetEvent struct {
	SessionID string `json:"session_id"`
	LessonID  uint   `json:"lesson_id"`
}

type LessonCompletedEvent struct {
	SessionID   string    `json:"session_id"`
	LessonID    uint      `json:"lesson_id"`
	CompletedAt time.Time `json:"completed_at"`
}

// Event factory functions

func NewSessionStartedEvent(sessionID string, lessonID uint, exerciseCount int) *LearningEvent {
	return &LearningEvent{
		ID:        generateEventID(),
		Type:      EventSessionStarted,
		Timestamp: time.Now(),
		Source:    "infrunta",
		Version:   "1.0",
		Data: SessionStartedEvent{
			SessionID:     sessionID,
			LessonID:      lessonID,
			ExerciseCount: exerciseCount,
			StartedAt:     time.Now(),
		},
	}
}

func NewAnswerSubmittedEvent(sessionID string, lessonID, exerciseID uint, exerciseType models.ExerciseType, answer string, correct bool) *LearningEvent {
	return &LearningEvent{
		ID:        generateEventID(),
		Type:      EventAnswerSubmitted,
		Timestamp: time.Now(),
		Source:    "infrunta",
		Version:   "1.0",
		Data: AnswerSubmittedEvent{
			SessionID:    sessionID,
			LessonID:     lessonID,
			ExerciseID:   exerciseID,
			ExerciseType: exerciseType,
			Answer:       answer,
			Correct:      correct,
			SubmittedAt:  time.Now(),
		},
	}
}

func NewSessionResetEvent(sessionID string, lessonID uint) *LearningEvent {
	return &LearningEvent{
		ID:        generateEventID(),
		Type:      EventSessionReset,
		Timestamp: time.Now(),
		Source:    "infrunta",
		Version:   "1.0",
		Data: SessionResetEvent{
			SessionID: sessionID,
			LessonID:  lessonID,
		},
	}
}

func NewLessonCompletedEvent(sessionID string, lessonID uint) *LearningEvent {
	return &LearningEvent{
		ID:        generateEventID(),
		Type:      EventLessonCompleted,
		Timestamp: time.Now(),
		Source:    "infrunta",
		Version:   "1.0",
		Data: LessonCompletedEvent{
			SessionID:   sessionID,
			LessonID:    lessonID,
			CompletedAt: time.Now(),
		},
	}
}

func generateEventID() string {
	return uuid.NewString()
}
