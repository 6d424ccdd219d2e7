package model

import (
	"time"
)

const (
	AttemptInProgress = "in_progress"
	AttemptCompleted  = "completed"
	AttemptAbandoned  = "abandoned"
)

// Attempt is one student's timed session taking one quiz, from start to scoring.
// in_progress is the only non-terminal state; the Complete path is the only
// code path that transitions an attempt to completed.
type Attempt struct {
	ID        uint `gorm:"primarykey" json:"id"`
	QuizID    uint `json:"quiz_id" gorm:"not null;index"`
	Quiz      Quiz `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	StudentID uint `json:"student_id" gorm:"not null;index"`

	AttemptNumber int    `json:"attempt_number" gorm:"default:1"`
	Status        string `json:"status" gorm:"size:20;default:'in_progress'"`

	// Scoring, set at completion
	Score          *int  `json:"score,omitempty"` // percentage 0-100
	TotalQuestions *int  `json:"total_questions,omitempty"`
	CorrectAnswers *int  `json:"correct_answers,omitempty"`
	Passed         *bool `json:"passed,omitempty"`

	// Timing
	StartedAt     time.Time  `json:"started_at" gorm:"autoCreateTime"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	TimeSpent     *int       `json:"time_spent,omitempty"`     // seconds
	TimeRemaining *int       `json:"time_remaining,omitempty"` // periodic sync checkpoint, seconds

	IPAddress string `json:"ip_address,omitempty" gorm:"size:45"`
	UserAgent string `json:"user_agent,omitempty" gorm:"type:text"`

	Responses []Response `json:"responses,omitempty" gorm:"foreignKey:AttemptID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
