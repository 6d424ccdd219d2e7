package model

import (
	"time"
)

const (
	QuizStatusAvailable  = "available"
	QuizStatusInProgress = "in_progress"
	QuizStatusCompleted  = "completed"
	QuizStatusDisabled   = "disabled"
)

// StudentQuizStatus is the derived per-(student, quiz) availability record used
// to gate starting or resuming a quiz outside the link flow.
type StudentQuizStatus struct {
	ID        uint `gorm:"primarykey" json:"id"`
	StudentID uint `json:"student_id" gorm:"not null;uniqueIndex:idx_student_quiz"`
	QuizID    uint `json:"quiz_id" gorm:"not null;uniqueIndex:idx_student_quiz"`

	Status       string `json:"status" gorm:"size:20;default:'available'"`
	AttemptsUsed int    `json:"attempts_used" gorm:"default:0"`

	FirstAccessedAt *time.Time `json:"first_accessed_at,omitempty"`
	LastAccessedAt  *time.Time `json:"last_accessed_at,omitempty"`
	CompletedAt     *time.Time `json:"completed_at,omitempty"`
}
