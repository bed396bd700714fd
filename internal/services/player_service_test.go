package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ads6495/infrunta/internal/events"
	"github.com/ads6495/infrunta/internal/models"
	"github.com/ads6495/infrunta/internal/repositories"
	"github.com/ads6495/infrunta/internal/session"
)

// MockCatalogService is a mock implementation of CatalogService
type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListLanguages(ctx context.Context) ([]*models.Language, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Language), args.Error(1)
}

func (m *MockCatalogService) GetLanguage(ctx context.Context, code string) (*models.Language, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Language), args.Error(1)
}

func (m *MockCatalogService) GetUnit(ctx context.Context, id uint) (*models.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Unit), args.Error(1)
}

func (m *MockCatalogService) ListLessons(ctx context.Context, filters repositories.LessonFilters) ([]*models.Lesson, int64, error) {
	args := m.Called(ctx, filters)
	return args.Get(0).([]*models.Lesson), args.Get(1).(int64), args.Error(2)
}

func (m *MockCatalogService) GetLesson(ctx context.Context, id uint) (*models.Lesson, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lesson), args.Error(1)
}

func (m *MockCatalogService) GetLessonExercises(ctx context.Context, lessonID uint) ([]models.Exercise, error) {
	args := m.Called(ctx, lessonID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Exercise), args.Error(1)
}

func lessonExercises() []models.Exercise {
	return []models.Exercise{
		{ID: 1, Type: models.AudioTyping, LessonID: 7, OrderNumber: 1, CorrectAnswer: "bună"},
		{ID: 2, Type: models.AudioTyping, LessonID: 7, OrderNumber: 2, CorrectAnswer: "la revedere"},
	}
}

func newTestPlayer(t *testing.T, catalog *MockCatalogService) (PlayerService, *events.MockEventPublisher) {
	t.Helper()
	publisher := events.NewMockEventPublisher(nil)
	manager := session.NewManager(nil, nil)
	return NewPlayerService(catalog, manager, publisher, nil), publisher
}

func startTestSession(t *testing.T, player PlayerService, catalog *MockCatalogService) string {
	t.Helper()
	catalog.On("GetLessonExercises", mock.Anything, uint(7)).Return(lessonExercises(), nil)
	resp, err := player.StartSession(context.Background(), 7)
	require.NoError(t, err)
	return resp.SessionID
}

func TestPlayerService_StartSession(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		catalog := new(MockCatalogService)
		player, publisher := newTestPlayer(t, catalog)
		catalog.On("GetLessonExercises", mock.Anything, uint(7)).Return(lessonExercises(), nil)

		resp, err := player.StartSession(context.Background(), 7)

		require.NoError(t, err)
		assert.NotEmpty(t, resp.SessionID)
		assert.True(t, resp.Active)
		assert.Equal(t, uint(7), resp.LessonID)
		assert.Equal(t, 2, resp.TotalExercises)

		published := publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventSessionStarted, published[0].Type)
	})

	t.Run("lesson not found", func(t *testing.T) {
		catalog := new(MockCatalogService)
		player, _ := newTestPlayer(t, catalog)
		catalog.On("GetLessonExercises", mock.Anything, uint(99)).Return(nil, ErrLessonNotFound)

		_, err := player.StartSession(context.Background(), 99)
		assert.ErrorIs(t, err, ErrLessonNotFound)
	})

	t.Run("empty lesson", func(t *testing.T) {
		catalog := new(MockCatalogService)
		player, publisher := newTestPlayer(t, catalog)
		catalog.On("GetLessonExercises", mock.Anything, uint(7)).Return([]models.Exercise{}, nil)

		_, err := player.StartSession(context.Background(), 7)
		assert.ErrorIs(t, err, ErrLessonEmpty)
		assert.Empty(t, publisher.GetPublishedEvents())
	})
}

func TestPlayerService_GetSession(t *testing.T) {
	catalog := new(MockCatalogService)
	player, _ := newTestPlayer(t, catalog)
	sessionID := startTestSession(t, player, catalog)

	resp, err := player.GetSession(context.Background(), sessionID)
	require.NoError(t, err)
	assert.Equal(t, sessionID, resp.SessionID)

	_, err = player.GetSession(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestPlayerService_SubmitAnswer(t *testing.T) {
	t.Run("correct answer publishes event", func(t *testing.T) {
		catalog := new(MockCatalogService)
		player, publisher := newTestPlayer(t, catalog)
		sessionID := startTestSession(t, player, catalog)
		publisher.ClearEvents()

		_, err := player.SetAnswer(context.Background(), sessionID, "bună")
		require.NoError(t, err)

		resp, err := player.SubmitAnswer(context.Background(), sessionID)
		require.NoError(t, err)
		assert.True(t, resp.Correct)
		assert.True(t, resp.Submitted)
		assert.True(t, resp.HasSubmitted)

		published := publisher.GetPublishedEvents()
		require.Len(t, published, 1)
		assert.Equal(t, events.EventAnswerSubmitted, published[0].Type)
	})

	t.Run("double submit reports no-op without event", func(t *testing.T) {
		catalog := new(MockCatalogService)
		player, publisher := newTestPlayer(t, catalog)
		sessionID := startTestSession(t, player, catalog)

		player.SetAnswer(context.Background(), sessionID, "bună")
		_, err := player.SubmitAnswer(context.Background(), sessionID)
		require.NoError(t, err)
		publisher.ClearEvents()

		resp, err := player.SubmitAnswer(context.Background(), sessionID)
		require.NoError(t, err)
		assert.False(t, resp.Submitted)
		assert.Empty(t, publisher.GetPublishedEvents())
	})

	t.Run("unknown session", func(t *testing.T) {
		catalog := new(MockCatalogService)
		player, _ := newTestPlayer(t, catalog)

		_, err := player.SubmitAnswer(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})
}

func TestPlayerService_Navigation(t *testing.T) {
	catalog := new(MockCatalogService)
	player, _ := newTestPlayer(t, catalog)
	sessionID := startTestSession(t, player, catalog)
	ctx := context.Background()

	resp, err := player.NextExercise(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.CurrentIndex)

	resp, err = player.PreviousExercise(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, 0, resp.CurrentIndex)

	resp, err = player.GoToExercise(ctx, sessionID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.CurrentIndex)

	// Out-of-range jump leaves the cursor alone.
	resp, err = player.GoToExercise(ctx, sessionID, 99)
	require.NoError(t, err)
	assert.Equal(t, 1, resp.CurrentIndex)
}

func TestPlayerService_CompletionPublishesEvent(t *testing.T) {
	catalog := new(MockCatalogService)
	player, publisher := newTestPlayer(t, catalog)
	sessionID := startTestSession(t, player, catalog)
	ctx := context.Background()

	player.NextExercise(ctx, sessionID)
	publisher.ClearEvents()

	resp, err := player.NextExercise(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, resp.Completed)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventLessonCompleted, published[0].Type)

	// Completion fires once.
	publisher.ClearEvents()
	_, err = player.NextExercise(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, publisher.GetPublishedEvents())
}

func TestPlayerService_RetryAndToggles(t *testing.T) {
	catalog := new(MockCatalogService)
	player, _ := newTestPlayer(t, catalog)
	sessionID := startTestSession(t, player, catalog)
	ctx := context.Background()

	player.SetAnswer(ctx, sessionID, "greșit")
	player.SubmitAnswer(ctx, sessionID)

	resp, err := player.RetryExercise(ctx, sessionID)
	require.NoError(t, err)
	assert.False(t, resp.HasSubmitted)
	assert.Equal(t, "", resp.CurrentAnswer)

	resp, err = player.ToggleHint(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, resp.ShowHint)

	resp, err = player.ToggleTranslation(ctx, sessionID)
	require.NoError(t, err)
	assert.True(t, resp.ShowTranslation)

	resp, err = player.SetAudioPlaying(ctx, sessionID, true)
	require.NoError(t, err)
	assert.True(t, resp.IsAudioPlaying)
}

func TestPlayerService_ResetSession(t *testing.T) {
	catalog := new(MockCatalogService)
	player, publisher := newTestPlayer(t, catalog)
	sessionID := startTestSession(t, player, catalog)
	ctx := context.Background()

	player.SetAnswer(ctx, sessionID, "bună")
	player.SubmitAnswer(ctx, sessionID)
	publisher.ClearEvents()

	require.NoError(t, player.ResetSession(ctx, sessionID))

	_, err := player.GetSession(ctx, sessionID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	published := publisher.GetPublishedEvents()
	require.Len(t, published, 1)
	assert.Equal(t, events.EventSessionReset, published[0].Type)

	// Progress survives the disposed session.
	snapshot := player.GetProgress(ctx)
	assert.Equal(t, 1, snapshot.TotalExercisesCompleted)

	assert.ErrorIs(t, player.ResetSession(ctx, "missing"), ErrSessionNotFound)
}
