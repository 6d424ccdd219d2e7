package dto

import "time"

// ValidateLinkDTO is the request body for link validation. StudentID is
// optional; when present the response reports whether that student has
// already consumed the link.
type ValidateLinkDTO struct {
	Token     string `json:"token" binding:"required"`
	StudentID *uint  `json:"student_id"`
}

// QuizSummaryDTO is the sanitized quiz metadata exposed through link
// validation. No answer keys, no question bodies.
type QuizSummaryDTO struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	TimeLimit    int    `json:"time_limit"`
	PassingScore int    `json:"passing_score"`
}

// LinkUsageDTO exposes the link's usage counters alongside validation.
type LinkUsageDTO struct {
	ID        uint       `json:"id"`
	MaxUses   *int       `json:"max_uses,omitempty"`
	UsedCount int        `json:"used_count"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// LinkValidationDTO is the validation result. Reason is set only when Valid is
// false; HasAttempted is informational and does not invalidate the link.
type LinkValidationDTO struct {
	Valid        bool            `json:"valid"`
	Reason       string          `json:"reason,omitempty"`
	Error        string          `json:"error,omitempty"`
	HasAttempted bool            `json:"has_attempted"`
	Quiz         *QuizSummaryDTO `json:"quiz,omitempty"`
	QuizLink     *LinkUsageDTO   `json:"quiz_link,omitempty"`
}

// RegisterLinkDTO is the registration form submitted with a link token.
type RegisterLinkDTO struct {
	Name  string `json:"name" binding:"required,max=100"`
	Email string `json:"email" binding:"required,email,max=100"`
	Phone string `json:"phone" binding:"required,len=10,numeric"`
	Token string `json:"token" binding:"required"`
}

// StudentDTO is the student identity returned from registration.
type StudentDTO struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// RegistrationDTO is the successful binding result. LinkAttemptID is the
// correlation id the client threads through start and complete calls.
type RegistrationDTO struct {
	Student       StudentDTO `json:"student"`
	QuizID        uint       `json:"quiz_id"`
	LinkAttemptID uint       `json:"link_attempt_id"`
}

// CheckAttemptDTO asks whether a student has consumed any link for a quiz.
type CheckAttemptDTO struct {
	StudentID uint `json:"student_id" binding:"required"`
	QuizID    uint `json:"quiz_id" binding:"required"`
}

type AttemptCheckResultDTO struct {
	HasAttempted bool `json:"has_attempted"`
	AttemptCount int  `json:"attempt_count"`
}
