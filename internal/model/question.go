package model

import (
	"time"

	"gorm.io/gorm"
)

type Question struct {
	ID            uint           `gorm:"primarykey" json:"id"`
	QuizID        uint           `json:"quiz_id" gorm:"not null;index"`
	Text          string         `json:"text" gorm:"type:text;not null"`
	Options       string         `json:"options" gorm:"type:text;not null"` // JSON array of option texts
	CorrectAnswer string         `json:"-" gorm:"size:1;not null"`          // "A".."D", never serialized to students
	OrderInQuiz   int            `json:"order_in_quiz" gorm:"default:0"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}
