package model

import (
	"time"
)

// Response is one recorded answer to one question within an attempt. At most
// one row exists per (attempt, question); a later answer replaces it.
type Response struct {
	ID         uint `gorm:"primarykey" json:"id"`
	AttemptID  uint `json:"attempt_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	QuestionID uint `json:"question_id" gorm:"not null;uniqueIndex:idx_attempt_question"`

	SelectedAnswer string    `json:"selected_answer" gorm:"size:1"` // "A".."D"
	IsCorrect      bool      `json:"is_correct" gorm:"not null"`    // computed at answer time
	TimeSpent      *int      `json:"time_spent,omitempty"`          // seconds on this question
	AnsweredAt     time.Time `json:"answered_at" gorm:"autoCreateTime"`
}
