package validator

import (
	"encoding/json"
	"fmt"

	"github.com/ads6495/infrunta/internal/models"
)

// ExerciseValidator handles exercise-specific content validation: each
// exercise kind has structural requirements beyond the shared fields.
type ExerciseValidator struct{}

// NewExerciseValidator creates a new exercise content validator
func NewExerciseValidator() *ExerciseValidator {
	return &ExerciseValidator{}
}

// ValidateExercise validates a complete exercise record for its kind.
func (v *ExerciseValidator) ValidateExercise(exercise *models.Exercise) error {
	if exercise.CorrectAnswer == "" {
		return fmt.Errorf("correct answer is required")
	}

	switch exercise.Type {
	case models.AudioImageMatch:
		if err := v.requireAudio(exercise); err != nil {
			return err
		}
		return v.validateOptions(exercise, 2)

	case models.WordUsageQuiz:
		return v.validateOptions(exercise, 2)

	case models.ConversationResponse:
		// Options are optional: free-text responses are allowed. When
		// present they must still be well formed.
		if len(exercise.Options) > 0 {
			return v.validateOptions(exercise, 2)
		}
		return nil

	case models.AudioFillBlank, models.AudioTyping, models.PronunciationChallenge:
		return v.requireAudio(exercise)

	case models.SpellingBank, models.AlphabetOverview:
		return v.requireComponents(exercise, models.ComponentLetterGroup, 1)

	case models.SyllableAssembly:
		return v.requireComponents(exercise, models.ComponentSyllable, 2)

	case models.WordOrder:
		return v.requireComponents(exercise, models.ComponentWordFragment, 2)

	case models.DragMatch:
		return v.validateMatchPairs(exercise)

	case models.FindMistake:
		return v.validateMistakes(exercise)

	default:
		return fmt.Errorf("unsupported exercise type: %s", exercise.Type)
	}
}

// ValidateBatch validates multiple exercises
func (v *ExerciseValidator) ValidateBatch(exercises []*models.Exercise) error {
	if len(exercises) == 0 {
		return fmt.Errorf("exercise batch cannot be empty")
	}

	for i, exercise := range exercises {
		if err := v.ValidateExercise(exercise); err != nil {
			return fmt.Errorf("validation failed for exercise %d: %w", i+1, err)
		}
	}

	return nil
}

// Private validation methods

func (v *ExerciseValidator) validateOptions(exercise *models.Exercise, minOptions int) error {
	if len(exercise.Options) < minOptions {
		return fmt.Errorf("must have at least %d options", minOptions)
	}

	correctCount := 0
	for _, option := range exercise.Options {
		if option.Text == "" {
			return fmt.Errorf("option text cannot be empty")
		}
		if option.IsCorrect {
			correctCount++
		}
	}

	if correctCount != 1 {
		return fmt.Errorf("must have exactly 1 correct option, found %d", correctCount)
	}

	return nil
}

func (v *ExerciseValidator) requireAudio(exercise *models.Exercise) error {
	if exercise.AudioURL == nil || *exercise.AudioURL == "" {
		return fmt.Errorf("audio URL is required for %s exercises", exercise.Type)
	}
	return nil
}

func (v *ExerciseValidator) requireComponents(exercise *models.Exercise, componentType models.ComponentType, minCount int) error {
	count := 0
	for _, c := range exercise.Components {
		if c.Type == componentType {
			if c.Content == "" {
				return fmt.Errorf("component content cannot be empty")
			}
			count++
		}
	}

	if count < minCount {
		return fmt.Errorf("must have at least %d %s components, found %d", minCount, componentType, count)
	}

	return nil
}

func (v *ExerciseValidator) validateMatchPairs(exercise *models.Exercise) error {
	pairs := 0
	for _, c := range exercise.Components {
		if c.Type != models.ComponentMatchPair {
			continue
		}
		if c.Content == "" {
			return fmt.Errorf("match pair left side cannot be empty")
		}
		if c.PairWith == nil || *c.PairWith == "" {
			return fmt.Errorf("match pair '%s' is missing its right side", c.Content)
		}
		pairs++
	}

	if pairs < 2 {
		return fmt.Errorf("must have at least 2 complete match pairs, found %d", pairs)
	}

	return nil
}

func (v *ExerciseValidator) validateMistakes(exercise *models.Exercise) error {
	if len(exercise.Mistakes) == 0 {
		return fmt.Errorf("mistakes payload is required")
	}

	var mistakes []models.Mistake
	if err := json.Unmarshal(exercise.Mistakes, &mistakes); err != nil {
		return fmt.Errorf("invalid mistakes payload: %w", err)
	}

	if len(mistakes) == 0 {
		return fmt.Errorf("must have at least 1 mistake")
	}

	for _, m := range mistakes {
		if m.Position < 0 {
			return fmt.Errorf("mistake position cannot be negative")
		}
	}

	return nil
}
