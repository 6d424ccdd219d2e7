package dto

import "time"

// QuestionDTO is a question as shown to a student taking the quiz. The correct
// answer never leaves the server.
type QuestionDTO struct {
	ID          uint     `json:"id"`
	QuizID      uint     `json:"quiz_id"`
	Text        string   `json:"text"`
	Options     []string `json:"options"`
	OrderInQuiz int      `json:"order_in_quiz"`
}

// QuizDetailDTO is the full sanitized quiz payload for the taking screen.
type QuizDetailDTO struct {
	Quiz      QuizSummaryDTO `json:"quiz"`
	Questions []QuestionDTO  `json:"questions"`
}

// StartAttemptDTO starts or resumes an attempt for a (quiz, student) pair.
type StartAttemptDTO struct {
	QuizID        uint  `json:"quiz_id" binding:"required"`
	StudentID     uint  `json:"student_id" binding:"required"`
	LinkAttemptID *uint `json:"link_attempt_id"`
}

// SavedAnswerDTO restores one previously recorded answer on resume.
type SavedAnswerDTO struct {
	QuestionID     uint   `json:"question_id"`
	SelectedAnswer string `json:"selected_answer"`
}

// AttemptSessionDTO is returned from start/resume with everything the client
// needs to render the countdown and restore answer state.
type AttemptSessionDTO struct {
	AttemptID       uint             `json:"attempt_id"`
	AttemptNumber   int              `json:"attempt_number"`
	TimeRemaining   int              `json:"time_remaining"` // seconds
	Resumed         bool             `json:"resumed"`
	ExistingAnswers []SavedAnswerDTO `json:"existing_answers,omitempty"`
}

// SaveAnswerDTO records one answer. Correctness is computed server-side
// against the stored key, at write time.
type SaveAnswerDTO struct {
	QuestionID     uint   `json:"question_id" binding:"required"`
	SelectedAnswer string `json:"selected_answer" binding:"required,len=1,oneof=A B C D"`
	TimeSpent      *int   `json:"time_spent"`
}

// SyncTimeDTO is the fire-and-forget countdown checkpoint.
type SyncTimeDTO struct {
	TimeRemaining int `json:"time_remaining" binding:"min=0"`
}

// CompleteAttemptDTO finishes an attempt. The score is recomputed server-side
// from stored responses; TimeSpent is the client's elapsed measurement.
type CompleteAttemptDTO struct {
	TimeSpent     int   `json:"time_spent" binding:"min=0"`
	LinkAttemptID *uint `json:"link_attempt_id"`
}

// AttemptResultDTO is the scored outcome of a completed attempt.
type AttemptResultDTO struct {
	AttemptID      uint       `json:"attempt_id"`
	Score          int        `json:"score"`
	TotalQuestions int        `json:"total_questions"`
	CorrectAnswers int        `json:"correct_answers"`
	Passed         bool       `json:"passed"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// DisruptionEventDTO reports one disruptive client event (reload shortcut,
// navigation, visibility loss, unload attempt) during an active attempt.
type DisruptionEventDTO struct {
	QuizID    uint   `json:"quiz_id" binding:"required"`
	StudentID uint   `json:"student_id" binding:"required"`
	Kind      string `json:"kind" binding:"required,oneof=reload navigation visibility unload"`
}

// DisruptionDecisionDTO is the guard's escalation decision. Action is "warn"
// while the student may still cancel, "auto_submitted" once the threshold is
// reached and the attempt was force-completed.
type DisruptionDecisionDTO struct {
	Warnings int               `json:"warnings"`
	Action   string            `json:"action"`
	Result   *AttemptResultDTO `json:"result,omitempty"`
}

// ResetAttemptDTO is the admin destructive override: it deletes the latest
// attempt with its responses and reopens eligibility.
type ResetAttemptDTO struct {
	StudentID uint `json:"student_id" binding:"required"`
	QuizID    uint `json:"quiz_id" binding:"required"`
}
