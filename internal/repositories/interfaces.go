package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/ads6495/infrunta/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

type LessonFilters struct {
	UnitID    *uint  `json:"unit_id"`
	Premium   *bool  `json:"premium"`
	Limit     int    `json:"limit"`
	Offset    int    `json:"offset"`
	SortBy    string `json:"sort_by"`    // "order_number", "created_at", "title"
	SortOrder string `json:"sort_order"` // "asc", "desc"
}

type ExerciseFilters struct {
	LessonID *uint                `json:"lesson_id"`
	Type     *models.ExerciseType `json:"type"`
	Limit    int                  `json:"limit"`
	Offset   int                  `json:"offset"`
}

// ===== REPOSITORY INTERFACES =====

// LanguageRepository gives read access to the language catalog.
type LanguageRepository interface {
	List(ctx context.Context) ([]*models.Language, error)
	GetByCode(ctx context.Context, code string) (*models.Language, error)
	GetByCodeWithUnits(ctx context.Context, code string) (*models.Language, error)
}

// UnitRepository gives read access to units and their lessons.
type UnitRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Unit, error)
	GetByIDWithLessons(ctx context.Context, id uint) (*models.Unit, error)
	GetByLanguage(ctx context.Context, languageID uint) ([]*models.Unit, error)
}

// LessonRepository gives read access to lessons and their exercises.
type LessonRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Lesson, error)
	List(ctx context.Context, filters LessonFilters) ([]*models.Lesson, int64, error)
	// GetExercises returns the lesson's exercises ordered by order number,
	// with options and components preloaded in display order.
	GetExercises(ctx context.Context, lessonID uint) ([]models.Exercise, error)
}

// ExerciseRepository gives read access to individual exercises.
type ExerciseRepository interface {
	GetByID(ctx context.Context, id uint) (*models.Exercise, error)
	List(ctx context.Context, filters ExerciseFilters) ([]*models.Exercise, int64, error)
}

// Repository bundles all catalog repositories.
type Repository interface {
	Language() LanguageRepository
	Unit() UnitRepository
	Lesson() LessonRepository
	Exercise() ExerciseRepository
}

// IsNotFoundError reports whether the error is a missing-record error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
