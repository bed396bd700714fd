package main

import (
	"encoding/json"
	"os"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/ads6495/infrunta/internal/config"
	"github.com/ads6495/infrunta/internal/models"
	"github.com/ads6495/infrunta/internal/utils"
	"github.com/ads6495/infrunta/internal/validator"
	"github.com/ads6495/infrunta/pkg"
)

// Seeds the catalog with the introductory Romanian unit. Safe to re-run:
// it skips seeding when any language already exists.
func main() {
	logger := utils.NewDevelopmentLogger()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.Language{},
		&models.Unit{},
		&models.Lesson{},
		&models.Exercise{},
		&models.ExerciseOption{},
		&models.ExerciseComponent{},
	); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	var count int64
	if err := db.Model(&models.Language{}).Count(&count).Error; err != nil {
		logger.Error("failed to inspect catalog", "error", err)
		os.Exit(1)
	}
	if count > 0 {
		logger.Info("catalog already seeded, nothing to do", "languages", count)
		return
	}

	if err := seed(db); err != nil {
		logger.Error("seeding failed", "error", err)
		os.Exit(1)
	}

	logger.Info("catalog seeded")
}

func seed(db *gorm.DB) error {
	exercises, err := greetingExercises()
	if err != nil {
		return err
	}

	v := validator.New()
	for _, e := range exercises {
		if err := v.Validate(&e); err != nil {
			return err
		}
	}

	languages := []models.Language{
		{Code: "ro", Name: "Romanian", Units: []models.Unit{{
			Title:       "Introduction to Romanian",
			Level:       models.LevelA1,
			Objective:   "Learn basic greetings and introductions",
			OrderNumber: 1,
			Lessons: []models.Lesson{{
				Title:       "Basic Greetings",
				Content:     "Learn how to say hello and goodbye in Romanian",
				OrderNumber: 1,
				Exercises:   exercises,
			}},
		}}},
		{Code: "it", Name: "Italian"},
		{Code: "fr", Name: "French"},
		{Code: "es", Name: "Spanish"},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for i := range languages {
			if err := tx.Create(&languages[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func greetingExercises() ([]models.Exercise, error) {
	mistakes, err := json.Marshal([]models.Mistake{{Position: 1, Correct: "mă"}})
	if err != nil {
		return nil, err
	}

	return []models.Exercise{
		{
			Type:               models.AudioImageMatch,
			OrderNumber:        1,
			AudioURL:           ptr("/audio/hello.mp3"),
			Prompt:             ptr("Match the audio to the correct greeting"),
			CorrectAnswer:      "Bună",
			EnglishTranslation: ptr("Hello"),
			Options: []models.ExerciseOption{
				{Text: "Bună", IsCorrect: true, OrderIndex: 0},
				{Text: "La revedere", OrderIndex: 1},
				{Text: "Mulțumesc", OrderIndex: 2},
				{Text: "Bună ziua", OrderIndex: 3},
			},
		},
		{
			Type:               models.AudioImageMatch,
			OrderNumber:        2,
			AudioURL:           ptr("/audio/goodmorning.mp3"),
			Prompt:             ptr("Match the audio to the correct greeting"),
			CorrectAnswer:      "Bună dimineața",
			EnglishTranslation: ptr("Good morning"),
			Options: []models.ExerciseOption{
				{Text: "Bună dimineața", IsCorrect: true, OrderIndex: 0},
				{Text: "La revedere", OrderIndex: 1},
				{Text: "Mulțumesc", OrderIndex: 2},
				{Text: "Bună ziua", OrderIndex: 3},
			},
		},
		{
			Type:               models.AudioFillBlank,
			OrderNumber:        3,
			AudioURL:           ptr("/audio/goodmorning.mp3"),
			Prompt:             ptr("Fill in the blank with the word you hear"),
			CorrectAnswer:      "dimineața",
			EnglishTranslation: ptr("Good morning"),
			Components: []models.ExerciseComponent{
				{Type: models.ComponentWordFragment, Content: "Bună ___ !", OrderIndex: 0},
				{Type: models.ComponentWordFragment, Content: "dimineața", IsCorrect: ptr(true), OrderIndex: 1},
			},
		},
		{
			Type:               models.AudioFillBlank,
			OrderNumber:        4,
			AudioURL:           ptr("/audio/goodbye.mp3"),
			Prompt:             ptr("Fill in the blank with the word you hear"),
			CorrectAnswer:      "revedere",
			EnglishTranslation: ptr("Goodbye"),
			Components: []models.ExerciseComponent{
				{Type: models.ComponentWordFragment, Content: "La ___ !", OrderIndex: 0},
				{Type: models.ComponentWordFragment, Content: "revedere", IsCorrect: ptr(true), OrderIndex: 1},
			},
		},
		{
			Type:          models.ConversationResponse,
			OrderNumber:   5,
			Prompt:        ptr("Choose the most appropriate response"),
			CorrectAnswer: "Bine, mulțumesc",
			Options: []models.ExerciseOption{
				{Text: "Bine, mulțumesc", IsCorrect: true, OrderIndex: 0},
				{Text: "La revedere!", OrderIndex: 1},
				{Text: "Galben!", OrderIndex: 2},
			},
			Components: []models.ExerciseComponent{
				{Type: models.ComponentDialogueLine, Content: `Person A: "Salut! Ce mai faci?"`, OrderIndex: 0},
				{Type: models.ComponentDialogueLine, Content: "Person B: ?", OrderIndex: 1},
			},
		},
		{
			Type:          models.DragMatch,
			OrderNumber:   6,
			Prompt:        ptr("Match the greeting to the correct time of day"),
			CorrectAnswer: "Morning:Bună dimineața, Day:Bună ziua, Anytime:Salut / ceau, Evening:Bună seara",
			Components: []models.ExerciseComponent{
				{Type: models.ComponentMatchPair, Content: "Morning", PairWith: ptr("Bună dimineața"), OrderIndex: 0},
				{Type: models.ComponentMatchPair, Content: "Day", PairWith: ptr("Bună ziua"), OrderIndex: 1},
				{Type: models.ComponentMatchPair, Content: "Anytime", PairWith: ptr("Salut / ceau"), OrderIndex: 2},
				{Type: models.ComponentMatchPair, Content: "Evening", PairWith: ptr("Bună seara"), OrderIndex: 3},
			},
		},
		{
			Type:          models.PronunciationChallenge,
			OrderNumber:   7,
			AudioURL:      ptr("/audio/thankyou.mp3"),
			Prompt:        ptr("Listen and repeat aloud"),
			CorrectAnswer: "mulțumesc",
		},
		{
			Type:          models.WordOrder,
			OrderNumber:   8,
			Prompt:        ptr("Rearrange the words"),
			CorrectAnswer: "eu mă numesc andrei",
			Components: []models.ExerciseComponent{
				{Type: models.ComponentWordFragment, Content: "eu", OrderIndex: 0},
				{Type: models.ComponentWordFragment, Content: "mă", OrderIndex: 1},
				{Type: models.ComponentWordFragment, Content: "numesc", OrderIndex: 2},
				{Type: models.ComponentWordFragment, Content: "Andrei", OrderIndex: 3},
			},
		},
		{
			Type:          models.WordOrder,
			OrderNumber:   9,
			Prompt:        ptr("Rearrange the words"),
			CorrectAnswer: "încântat de cunoștință",
			Components: []models.ExerciseComponent{
				{Type: models.ComponentWordFragment, Content: "cunoștință", OrderIndex: 2},
				{Type: models.ComponentWordFragment, Content: "încântat", OrderIndex: 0},
				{Type: models.ComponentWordFragment, Content: "de", OrderIndex: 1},
			},
		},
		{
			Type:          models.AudioTyping,
			OrderNumber:   10,
			AudioURL:      ptr("/audio/goodmorning.mp3"),
			Prompt:        ptr("Repeat and type what you hear"),
			CorrectAnswer: "bună dimineața eu sunt ana",
		},
		{
			Type:          models.SyllableAssembly,
			OrderNumber:   11,
			Prompt:        ptr("Assemble the word from its syllables"),
			CorrectAnswer: "dimineața",
			Components: []models.ExerciseComponent{
				{Type: models.ComponentSyllable, Content: "di", OrderIndex: 0},
				{Type: models.ComponentSyllable, Content: "mi", OrderIndex: 1},
				{Type: models.ComponentSyllable, Content: "nea", OrderIndex: 2},
				{Type: models.ComponentSyllable, Content: "ța", OrderIndex: 3},
			},
		},
		{
			Type:          models.FindMistake,
			OrderNumber:   12,
			Prompt:        ptr("Tap the word that is wrong in: eu ma numesc Ana"),
			CorrectAnswer: "mă",
			Mistakes:      datatypes.JSON(mistakes),
		},
		{
			Type:          models.AlphabetOverview,
			OrderNumber:   13,
			Prompt:        ptr("Review the special Romanian letters"),
			CorrectAnswer: "viewed",
			Components: []models.ExerciseComponent{
				{Type: models.ComponentLetterGroup, Content: "ă â î", OrderIndex: 0},
				{Type: models.ComponentLetterGroup, Content: "ș ț", OrderIndex: 1},
			},
		},
	}, nil
}

func ptr[T any](v T) *T {
	return &v
}
