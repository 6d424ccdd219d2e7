package model

import (
	"time"
)

// QuizLink is a shareable, tokenized entry point into a single quiz. Links are
// never physically deleted in normal operation; admins deactivate them instead.
type QuizLink struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	QuizID uint   `json:"quiz_id" gorm:"not null;index"`
	Quiz   Quiz   `json:"quiz,omitempty" gorm:"foreignKey:QuizID"`
	Token  string `json:"token" gorm:"size:64;not null;uniqueIndex"`

	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	IsActive  bool       `json:"is_active" gorm:"default:true"`
	MaxUses   *int       `json:"max_uses,omitempty"` // nil = unlimited
	UsedCount int        `json:"used_count" gorm:"default:0"`

	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
	CreatedBy      *uint      `json:"created_by,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	LinkAttempts []QuizLinkAttempt `json:"-" gorm:"foreignKey:QuizLinkID;constraint:OnDelete:CASCADE"`
}

// HasUsesLeft reports whether the link's usage quota allows another registration.
func (l *QuizLink) HasUsesLeft() bool {
	return l.MaxUses == nil || l.UsedCount < *l.MaxUses
}
