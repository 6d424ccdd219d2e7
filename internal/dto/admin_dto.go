package dto

import "time"

type AdminLoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type AdminTokenDTO struct {
	Token string `json:"token"`
}

// GenerateLinkDTO carries the optional constraints for a new quiz link.
type GenerateLinkDTO struct {
	ExpiresAt *time.Time `json:"expires_at"`
	MaxUses   *int       `json:"max_uses" binding:"omitempty,min=1"`
}

// QuizLinkDTO is the admin view of one shareable link, including the full URL.
type QuizLinkDTO struct {
	ID             uint       `json:"id"`
	QuizID         uint       `json:"quiz_id"`
	Token          string     `json:"token"`
	URL            string     `json:"url"`
	IsActive       bool       `json:"is_active"`
	MaxUses        *int       `json:"max_uses,omitempty"`
	UsedCount      int        `json:"used_count"`
	ExpiresAt      *time.Time `json:"expires_at,omitempty"`
	LastAccessedAt *time.Time `json:"last_accessed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// ErrorResponse is the uniform error body for all endpoints.
type ErrorResponse struct {
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}
