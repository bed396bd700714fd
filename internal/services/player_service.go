package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ads6495/infrunta/internal/events"
	"github.com/ads6495/infrunta/internal/session"
)

// SessionResponse is the player-facing view of one session: its handle
// plus a consistent snapshot of the store.
type SessionResponse struct {
	SessionID string `json:"session_id"`
	session.Snapshot
}

// SubmitResponse carries the grading outcome alongside the new snapshot.
// Submitted is false when the call was a no-op (already submitted, or the
// session is done).
type SubmitResponse struct {
	Correct   bool `json:"correct"`
	Submitted bool `json:"submitted"`
	SessionResponse
}

// PlayerService drives learner sessions: it loads a lesson's exercises
// from the catalog, owns one session store per active session and emits
// learning events at the submission and completion hook points.
type PlayerService interface {
	StartSession(ctx context.Context, lessonID uint) (*SessionResponse, error)
	GetSession(ctx context.Context, sessionID string) (*SessionResponse, error)
	SetAnswer(ctx context.Context, sessionID, answer string) (*SessionResponse, error)
	SubmitAnswer(ctx context.Context, sessionID string) (*SubmitResponse, error)
	NextExercise(ctx context.Context, sessionID string) (*SessionResponse, error)
	PreviousExercise(ctx context.Context, sessionID string) (*SessionResponse, error)
	GoToExercise(ctx context.Context, sessionID string, index int) (*SessionResponse, error)
	RetryExercise(ctx context.Context, sessionID string) (*SessionResponse, error)
	ToggleHint(ctx context.Context, sessionID string) (*SessionResponse, error)
	ToggleTranslation(ctx context.Context, sessionID string) (*SessionResponse, error)
	SetAudioPlaying(ctx context.Context, sessionID string, playing bool) (*SessionResponse, error)
	ResetSession(ctx context.Context, sessionID string) error
	GetProgress(ctx context.Context) session.ProgressSnapshot
}

type playerService struct {
	catalog   CatalogService
	sessions  *session.Manager
	publisher events.EventPublisher
	logger    *slog.Logger
}

func NewPlayerService(catalog CatalogService, sessions *session.Manager, publisher events.EventPublisher, logger *slog.Logger) PlayerService {
	if logger == nil {
		logger = slog.Default()
	}
	return &playerService{
		catalog:   catalog,
		sessions:  sessions,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *playerService) StartSession(ctx context.Context, lessonID uint) (*SessionResponse, error) {
	exercises, err := s.catalog.GetLessonExercises(ctx, lessonID)
	if err != nil {
		return nil, err
	}
	if len(exercises) == 0 {
		return nil, ErrLessonEmpty
	}

	sessionID, store := s.sessions.Create()
	if err := store.StartSession(lessonID, exercises); err != nil {
		s.sessions.Dispose(sessionID)
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	s.publish(ctx, events.NewSessionStartedEvent(sessionID, lessonID, len(exercises)))

	return s.buildResponse(sessionID, store), nil
}

func (s *playerService) GetSession(ctx context.Context, sessionID string) (*SessionResponse, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s.buildResponse(sessionID, store), nil
}

func (s *playerService) SetAnswer(ctx context.Context, sessionID, answer string) (*SessionResponse, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	store.SetCurrentAnswer(answer)
	return s.buildResponse(sessionID, store), nil
}

func (s *playerService) SubmitAnswer(ctx context.Context, sessionID string) (*SubmitResponse, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	exercise := store.CurrentExercise()
	answer := store.CurrentAnswer()

	correct, submitted := store.SubmitAnswer()
	if submitted && exercise != nil {
		lessonID, _ := store.LessonID()
		s.publish(ctx, events.NewAnswerSubmittedEvent(
			sessionID, lessonID, exercise.ID, exercise.Type, answer, correct))
	}

	return &SubmitResponse{
		Correct:         correct,
		Submitted:       submitted,
		SessionResponse: *s.buildResponse(sessionID, store),
	}, nil
}

func (s *playerService) NextExercise(ctx context.Context, sessionID string) (*SessionResponse, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	if completed := store.NextExercise(); completed {
		lessonID, _ := store.LessonID()
		s.publish(ctx, events.NewLessonCompletedEvent(sessionID, lessonID))
	}

	return s.buildResponse(sessionID, store), nil
}

func (s *playerService) PreviousExercise(ctx context.Context, sessionID string) (*SessionResponse, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	store.PreviousExercise()
	return s.buildResponse(sessionID, store), nil
}

func (s *playerService) GoToExercise(ctx context.Context, sessionID string, index int) (*SessionResponse, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	store.GoToExercise(index)
	return s.buildResponse(sessionID, store), nil
}

func (s *playerService) RetryExercise(ctx context.Context, sessionID string) (*SessionResponse, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	store.RetryCurrentExercise()
	return s.buildResponse(sessionID, store), nil
}

func (s *playerService) ToggleHint(ctx context.Context, sessionID string) (*SessionResponse, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	store.ToggleHint()
	return s.buildResponse(sessionID, store), nil
}

func (s *playerService) ToggleTranslation(ctx context.Context, sessionID string) (*SessionResponse, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	store.ToggleTranslation()
	return s.buildResponse(sessionID, store), nil
}

func (s *playerService) SetAudioPlaying(ctx context.Context, sessionID string, playing bool) (*SessionResponse, error) {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, ErrSessionNotFound
	}
	store.SetAudioPlaying(playing)
	return s.buildResponse(sessionID, store), nil
}

// ResetSession clears the store and disposes it. Progress is shared and
// survives.
func (s *playerService) ResetSession(ctx context.Context, sessionID string) error {
	store, ok := s.sessions.Get(sessionID)
	if !ok {
		return ErrSessionNotFound
	}
	lessonID, hadSession := store.LessonID()
	store.ResetSession()
	s.sessions.Dispose(sessionID)

	if hadSession {
		s.publish(ctx, events.NewSessionResetEvent(sessionID, lessonID))
	}
	return nil
}

func (s *playerService) GetProgress(ctx context.Context) session.ProgressSnapshot {
	return s.sessions.Progress().Snapshot()
}

func (s *playerService) buildResponse(sessionID string, store *session.Store) *SessionResponse {
	return &SessionResponse{
		SessionID: sessionID,
		Snapshot:  store.Snapshot(),
	}
}

// publish sends an event, logging rather than failing the learner
// operation when the broker is down.
func (s *playerService) publish(ctx context.Context, event *events.LearningEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishLearningEvent(ctx, event); err != nil {
		s.logger.Error("failed to publish learning event",
			"event_type", event.Type,
			"error", err)
	}
}
