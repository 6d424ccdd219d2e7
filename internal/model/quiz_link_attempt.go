package model

import (
	"time"
)

// QuizLinkAttempt is the one-and-only binding between a link and a student.
// The composite unique index on (quiz_link_id, student_id) is the single-use
// contract; concurrent duplicate registrations are resolved here, not by an
// application-level existence check.
type QuizLinkAttempt struct {
	ID         uint `gorm:"primarykey" json:"id"`
	QuizLinkID uint `json:"quiz_link_id" gorm:"not null;uniqueIndex:idx_link_student"`
	StudentID  uint `json:"student_id" gorm:"not null;uniqueIndex:idx_link_student"`
	QuizID     uint `json:"quiz_id" gorm:"not null;index"` // denormalized from the link

	AccessedAt time.Time `json:"accessed_at" gorm:"autoCreateTime"`
	AttemptID  *uint     `json:"attempt_id,omitempty"` // weak reference, attached at completion

	IPAddress string `json:"ip_address,omitempty" gorm:"size:45"`
	UserAgent string `json:"user_agent,omitempty" gorm:"type:text"`
}
