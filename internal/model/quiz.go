package model

import (
	"time"

	"gorm.io/gorm"
)

type Quiz struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Title       string `json:"title" gorm:"size:100;not null"`
	Description string `json:"description,omitempty" gorm:"type:text"`

	// Timing
	TimeLimit  int        `json:"time_limit" gorm:"not null"` // minutes to complete the quiz
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`

	// Settings
	PassingScore int  `json:"passing_score" gorm:"default:70"` // percentage
	MaxAttempts  int  `json:"max_attempts" gorm:"default:1"`
	IsActive     bool `json:"is_active" gorm:"default:true"`

	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID;constraint:OnDelete:CASCADE"`

	CreatedBy *uint          `json:"created_by,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AvailableAt reports whether the quiz can be taken at the given instant.
// Open-ended bounds are allowed: a nil ValidFrom/ValidUntil does not constrain.
func (q *Quiz) AvailableAt(now time.Time) bool {
	if q.ValidFrom != nil && now.Before(*q.ValidFrom) {
		return false
	}
	if q.ValidUntil != nil && now.After(*q.ValidUntil) {
		return false
	}
	return true
}
