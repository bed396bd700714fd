package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExerciseType string

const (
	AudioImageMatch        ExerciseType = "AUDIO_IMAGE_MATCH"
	AudioFillBlank         ExerciseType = "AUDIO_FILL_BLANK"
	WordUsageQuiz          ExerciseType = "WORD_USAGE_QUIZ"
	SpellingBank           ExerciseType = "SPELLING_BANK"
	SyllableAssembly       ExerciseType = "SYLLABLE_ASSEMBLY"
	DragMatch              ExerciseType = "DRAG_MATCH"
	PronunciationChallenge ExerciseType = "PRONUNCIATION_CHALLENGE"
	ConversationResponse   ExerciseType = "CONVERSATION_RESPONSE"
	WordOrder              ExerciseType = "WORD_ORDER"
	AudioTyping            ExerciseType = "AUDIO_TYPING"
	FindMistake            ExerciseType = "FIND_MISTAKE"
	AlphabetOverview       ExerciseType = "ALPHABET_OVERVIEW"
)

// ExerciseTypes lists every supported exercise variant. The answer
// validator and the custom struct validation both range over this set, so
// a new variant added here shows up as a failing exhaustiveness test until
// both are updated.
var ExerciseTypes = []ExerciseType{
	AudioImageMatch,
	AudioFillBlank,
	WordUsageQuiz,
	SpellingBank,
	SyllableAssembly,
	DragMatch,
	PronunciationChallenge,
	ConversationResponse,
	WordOrder,
	AudioTyping,
	FindMistake,
	AlphabetOverview,
}

type ComponentType string

const (
	ComponentSyllable     ComponentType = "SYLLABLE"
	ComponentLetterGroup  ComponentType = "LETTER_GROUP"
	ComponentMatchPair    ComponentType = "MATCH_PAIR"
	ComponentDialogueLine ComponentType = "DIALOGUE_LINE"
	ComponentWordFragment ComponentType = "WORD_FRAGMENT"
)

var ComponentTypes = []ComponentType{
	ComponentSyllable,
	ComponentLetterGroup,
	ComponentMatchPair,
	ComponentDialogueLine,
	ComponentWordFragment,
}

// Exercise is an immutable content record owned by the catalog. The
// session engine only ever reads it.
type Exercise struct {
	ID                 uint         `json:"id" gorm:"primaryKey"`
	Type               ExerciseType `json:"type" gorm:"not null;size:30;index" validate:"required,exercise_type"`
	LessonID           uint         `json:"lesson_id" gorm:"not null;index"`
	OrderNumber        int          `json:"order_number" gorm:"not null" validate:"required,min=1"`
	Prompt             *string      `json:"prompt" gorm:"type:text"`
	CorrectAnswer      string       `json:"correct_answer" gorm:"not null;type:text" validate:"required"`
	EnglishTranslation *string      `json:"english_translation" gorm:"type:text"`
	AudioURL           *string      `json:"audio_url" gorm:"size:500"`
	ImageURL           *string      `json:"image_url" gorm:"size:500"`

	// FIND_MISTAKE payload: []Mistake stored as jsonb
	Mistakes datatypes.JSON `json:"mistakes,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Options    []ExerciseOption    `json:"options" gorm:"foreignKey:ExerciseID"`
	Components []ExerciseComponent `json:"components" gorm:"foreignKey:ExerciseID"`
}

// ExerciseOption is one selectable choice for the choice-based kinds.
type ExerciseOption struct {
	ID         uint    `json:"id" gorm:"primaryKey"`
	ExerciseID uint    `json:"exercise_id" gorm:"not null;index"`
	Text       string  `json:"text" gorm:"not null;type:text" validate:"required"`
	IsCorrect  bool    `json:"is_correct" gorm:"default:false"`
	ImageURL   *string `json:"image_url" gorm:"size:500"`
	OrderIndex int     `json:"order_index" gorm:"not null" validate:"min=0"`
}

// ExerciseComponent is one ordered building block for the assembly,
// ordering and matching kinds (syllables, letter groups, word fragments,
// match pairs, dialogue lines).
type ExerciseComponent struct {
	ID         uint          `json:"id" gorm:"primaryKey"`
	ExerciseID uint          `json:"exercise_id" gorm:"not null;index"`
	Type       ComponentType `json:"type" gorm:"not null;size:20" validate:"required,component_type"`
	Content    string        `json:"content" gorm:"not null;type:text" validate:"required"`
	PairWith   *string       `json:"pair_with" gorm:"type:text"`
	AudioURL   *string       `json:"audio_url" gorm:"size:500"`
	ImageURL   *string       `json:"image_url" gorm:"size:500"`
	IsCorrect  *bool         `json:"is_correct"`
	OrderIndex int           `json:"order_index" gorm:"not null" validate:"min=0"`
}

type Mistake struct {
	Position int    `json:"position"`
	Correct  string `json:"correct"`
}

// Pairs returns the match-pair components that have both sides populated,
// the authoritative source for DRAG_MATCH correctness.
func (e *Exercise) Pairs() []ExerciseComponent {
	pairs := make([]ExerciseComponent, 0, len(e.Components))
	for _, c := range e.Components {
		if c.Type == ComponentMatchPair && c.Content != "" && c.PairWith != nil && *c.PairWith != "" {
			pairs = append(pairs, c)
		}
	}
	return pairs
}

func (Exercise) TableName() string {
	return "exercises"
}

func (ExerciseOption) TableName() string {
	return "exercise_options"
}

func (ExerciseComponent) TableName() string {
	return "exercise_components"
}
