package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ads6495/infrunta/internal/cache"
	"github.com/ads6495/infrunta/internal/models"
	"github.com/ads6495/infrunta/internal/repositories"
)

const exerciseCacheTTL = 10 * time.Minute

// CatalogService exposes the read side of the content hierarchy:
// languages, units, lessons and their exercises. Content is managed
// elsewhere; this service only reads it.
type CatalogService interface {
	ListLanguages(ctx context.Context) ([]*models.Language, error)
	GetLanguage(ctx context.Context, code string) (*models.Language, error)
	GetUnit(ctx context.Context, id uint) (*models.Unit, error)
	ListLessons(ctx context.Context, filters repositories.LessonFilters) ([]*models.Lesson, int64, error)
	GetLesson(ctx context.Context, id uint) (*models.Lesson, error)
	GetLessonExercises(ctx context.Context, lessonID uint) ([]models.Exercise, error)
}

type catalogService struct {
	repo   repositories.Repository
	cache  cache.CacheService
	logger *slog.Logger
}

func NewCatalogService(repo repositories.Repository, cacheService cache.CacheService, logger *slog.Logger) CatalogService {
	if cacheService == nil {
		cacheService = cache.NoopCache{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &catalogService{
		repo:   repo,
		cache:  cacheService,
		logger: logger,
	}
}

func (s *catalogService) ListLanguages(ctx context.Context) ([]*models.Language, error) {
	languages, err := s.repo.Language().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	return languages, nil
}

func (s *catalogService) GetLanguage(ctx context.Context, code string) (*models.Language, error) {
	language, err := s.repo.Language().GetByCodeWithUnits(ctx, code)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLanguageNotFound
		}
		return nil, fmt.Errorf("failed to get language: %w", err)
	}
	return language, nil
}

func (s *catalogService) GetUnit(ctx context.Context, id uint) (*models.Unit, error) {
	unit, err := s.repo.Unit().GetByIDWithLessons(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUnitNotFound
		}
		return nil, fmt.Errorf("failed to get unit: %w", err)
	}
	return unit, nil
}

func (s *catalogService) ListLessons(ctx context.Context, filters repositories.LessonFilters) ([]*models.Lesson, int64, error) {
	lessons, total, err := s.repo.Lesson().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list lessons: %w", err)
	}
	return lessons, total, nil
}

func (s *catalogService) GetLesson(ctx context.Context, id uint) (*models.Lesson, error) {
	lesson, err := s.repo.Lesson().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrLessonNotFound
		}
		return nil, fmt.Errorf("failed to get lesson: %w", err)
	}
	return lesson, nil
}

// GetLessonExercises loads a lesson's ordered exercise list, read-through
// cached: session starts hit this for every learner on the same lesson.
func (s *catalogService) GetLessonExercises(ctx context.Context, lessonID uint) ([]models.Exercise, error) {
	key := exerciseCacheKey(lessonID)

	var cached []models.Exercise
	err := s.cache.Get(ctx, key, &cached)
	if err == nil {
		return cached, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.logger.Warn("exercise cache read failed, falling back to database",
			"lesson_id", lessonID,
			"error", err)
	}

	if _, err := s.GetLesson(ctx, lessonID); err != nil {
		return nil, err
	}

	exercises, err := s.repo.Lesson().GetExercises(ctx, lessonID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, key, exercises, exerciseCacheTTL); err != nil {
		s.logger.Warn("exercise cache write failed",
			"lesson_id", lessonID,
			"error", err)
	}

	return exercises, nil
}

func exerciseCacheKey(lessonID uint) string {
	return fmt.Sprintf("lesson:%d:exercises", lessonID)
}
