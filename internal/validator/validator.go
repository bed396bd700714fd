package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ads6495/infrunta/internal/models"
)

// Validator is the central validator instance combining struct-tag
// validation with exercise-specific content checks.
type Validator struct {
	structValidator   *validator.Validate
	exerciseValidator *ExerciseValidator
}

// New creates a new centralized validator instance
func New() *Validator {
	structValidator := validator.New()
	registerCustomValidators(structValidator)

	return &Validator{
		structValidator:   structValidator,
		exerciseValidator: NewExerciseValidator(),
	}
}

// ValidateStruct validates struct tags only
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.structValidator.Struct(s)
}

// Validate performs complete validation: struct tags first, then content
// rules for types that have them.
func (v *Validator) Validate(s interface{}) error {
	if err := v.structValidator.Struct(s); err != nil {
		return ToValidationErrors(err)
	}

	if exercise, ok := s.(*models.Exercise); ok {
		return v.exerciseValidator.ValidateExercise(exercise)
	}

	return nil
}

// Exercise returns the exercise content validator
func (v *Validator) Exercise() *ExerciseValidator {
	return v.exerciseValidator
}

// registerCustomValidators registers all custom validation functions
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("exercise_type", validateExerciseType)
	validate.RegisterValidation("component_type", validateComponentType)
	validate.RegisterValidation("level", validateLevel)

	// Custom tag name function for better error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// Custom validation functions

func validateExerciseType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, validType := range models.ExerciseTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func validateComponentType(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	for _, validType := range models.ComponentTypes {
		if string(validType) == value {
			return true
		}
	}
	return false
}

func validateLevel(fl validator.FieldLevel) bool {
	validLevels := []models.Level{
		models.LevelA1,
		models.LevelA2,
		models.LevelB1,
		models.LevelB2,
		models.LevelC1,
		models.LevelC2,
	}

	value := fl.Field().String()
	for _, validLevel := range validLevels {
		if string(validLevel) == value {
			return true
		}
	}
	return false
}
