package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ads6495/infrunta/internal/models"
	"github.com/ads6495/infrunta/internal/repositories"
)

// CatalogPostgreSQL implements every catalog repository on one gorm
// handle. The catalog is read-mostly: sessions snapshot exercise lists
// out of it and never write back.
type CatalogPostgreSQL struct {
	db *gorm.DB
}

func NewCatalogPostgreSQL(db *gorm.DB) *CatalogPostgreSQL {
	return &CatalogPostgreSQL{db: db}
}

func (c *CatalogPostgreSQL) Language() repositories.LanguageRepository { return (*languagePG)(c) }
func (c *CatalogPostgreSQL) Unit() repositories.UnitRepository         { return (*unitPG)(c) }
func (c *CatalogPostgreSQL) Lesson() repositories.LessonRepository     { return (*lessonPG)(c) }
func (c *CatalogPostgreSQL) Exercise() repositories.ExerciseRepository { return (*exercisePG)(c) }

// ===== LANGUAGES =====

type languagePG CatalogPostgreSQL

func (l *languagePG) List(ctx context.Context) ([]*models.Language, error) {
	var languages []*models.Language
	err := l.db.WithContext(ctx).
		Order("code asc").
		Find(&languages).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list languages: %w", err)
	}
	return languages, nil
}

func (l *languagePG) GetByCode(ctx context.Context, code string) (*models.Language, error) {
	var language models.Language
	err := l.db.WithContext(ctx).
		Where("code = ?", code).
		First(&language).Error
	if err != nil {
		return nil, err
	}
	return &language, nil
}

func (l *languagePG) GetByCodeWithUnits(ctx context.Context, code string) (*models.Language, error) {
	var language models.Language
	err := l.db.WithContext(ctx).
		Preload("Units", func(db *gorm.DB) *gorm.DB {
			return db.Order("units.order_number asc")
		}).
		Preload("Units.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.order_number asc")
		}).
		Where("code = ?", code).
		First(&language).Error
	if err != nil {
		return nil, err
	}
	return &language, nil
}

// ===== UNITS =====

type unitPG CatalogPostgreSQL

func (u *unitPG) GetByID(ctx context.Context, id uint) (*models.Unit, error) {
	var unit models.Unit
	if err := u.db.WithContext(ctx).First(&unit, id).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (u *unitPG) GetByIDWithLessons(ctx context.Context, id uint) (*models.Unit, error) {
	var unit models.Unit
	err := u.db.WithContext(ctx).
		Preload("Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.order_number asc")
		}).
		First(&unit, id).Error
	if err != nil {
		return nil, err
	}
	return &unit, nil
}

func (u *unitPG) GetByLanguage(ctx context.Context, languageID uint) ([]*models.Unit, error) {
	var units []*models.Unit
	err := u.db.WithContext(ctx).
		Where("language_id = ?", languageID).
		Order("order_number asc").
		Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list units for language %d: %w", languageID, err)
	}
	return units, nil
}

// ===== LESSONS =====

type lessonPG CatalogPostgreSQL

func (l *lessonPG) GetByID(ctx context.Context, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := l.db.WithContext(ctx).First(&lesson, id).Error; err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (l *lessonPG) List(ctx context.Context, filters repositories.LessonFilters) ([]*models.Lesson, int64, error) {
	query := l.db.WithContext(ctx).Model(&models.Lesson{})

	if filters.UnitID != nil {
		query = query.Where("unit_id = ?", *filters.UnitID)
	}
	if filters.Premium != nil {
		query = query.Where("premium = ?", *filters.Premium)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count lessons: %w", err)
	}

	sortBy := filters.SortBy
	if sortBy == "" {
		sortBy = "order_number"
	}
	sortOrder := filters.SortOrder
	if sortOrder != "desc" {
		sortOrder = "asc"
	}
	query = query.Order(fmt.Sprintf("%s %s", sortBy, sortOrder))

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var lessons []*models.Lesson
	if err := query.Find(&lessons).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list lessons: %w", err)
	}

	return lessons, total, nil
}

func (l *lessonPG) GetExercises(ctx context.Context, lessonID uint) ([]models.Exercise, error) {
	var exercises []models.Exercise
	err := l.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_options.order_index asc")
		}).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_components.order_index asc")
		}).
		Where("lesson_id = ?", lessonID).
		Order("order_number asc").
		Find(&exercises).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load exercises for lesson %d: %w", lessonID, err)
	}
	return exercises, nil
}

// ===== EXERCISES =====

type exercisePG CatalogPostgreSQL

func (e *exercisePG) GetByID(ctx context.Context, id uint) (*models.Exercise, error) {
	var exercise models.Exercise
	err := e.db.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_options.order_index asc")
		}).
		Preload("Components", func(db *gorm.DB) *gorm.DB {
			return db.Order("exercise_components.order_index asc")
		}).
		First(&exercise, id).Error
	if err != nil {
		return nil, err
	}
	return &exercise, nil
}

func (e *exercisePG) List(ctx context.Context, filters repositories.ExerciseFilters) ([]*models.Exercise, int64, error) {
	query := e.db.WithContext(ctx).Model(&models.Exercise{})

	if filters.LessonID != nil {
		query = query.Where("lesson_id = ?", *filters.LessonID)
	}
	if filters.Type != nil {
		query = query.Where("type = ?", *filters.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count exercises: %w", err)
	}

	query = query.Order("order_number asc")
	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}

	var exercises []*models.Exercise
	if err := query.Find(&exercises).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list exercises: %w", err)
	}

	return exercises, total, nil
}
