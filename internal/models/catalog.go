package models

import (
	"time"

	"gorm.io/gorm"
)

type Level string

const (
	LevelA1 Level = "A1"
	LevelA2 Level = "A2"
	LevelB1 Level = "B1"
	LevelB2 Level = "B2"
	LevelC1 Level = "C1"
	LevelC2 Level = "C2"
)

type Language struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Code string `json:"code" gorm:"uniqueIndex;not null;size:10" validate:"required,min=2,max=10"`
	Name string `json:"name" gorm:"not null;size:100" validate:"required,min=1,max=100"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Units []Unit `json:"units" gorm:"foreignKey:LanguageID"`
}

type Unit struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Level       Level  `json:"level" gorm:"not null;size:2;index" validate:"required,level"`
	LanguageID  uint   `json:"language_id" gorm:"not null;index"`
	Objective   string `json:"objective" gorm:"type:text"`
	OrderNumber int    `json:"order_number" gorm:"not null" validate:"required,min=1"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Lessons []Lesson `json:"lessons" gorm:"foreignKey:UnitID"`
}

type Lesson struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Title       string `json:"title" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Content     string `json:"content" gorm:"type:text"`
	UnitID      uint   `json:"unit_id" gorm:"not null;index"`
	OrderNumber int    `json:"order_number" gorm:"not null" validate:"required,min=1"`
	Premium     bool   `json:"premium" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relations
	Exercises []Exercise `json:"exercises" gorm:"foreignKey:LessonID"`

	// Computed fields (not stored)
	ExerciseCount int `json:"exercise_count" gorm:"-"`
}

func (Language) TableName() string {
	return "languages"
}

func (Unit) TableName() string {
	return "units"
}

func (Lesson) TableName() string {
	return "lessons"
}
