// Package apperr defines the error taxonomy shared by the link and attempt
// services. Controllers map these with errors.Is onto HTTP statuses; services
// wrap them with fmt.Errorf("...: %w", err) to add context.
package apperr

import "errors"

var (
	// Link validation failures, in check order.
	ErrLinkNotFound        = errors.New("quiz link not found")
	ErrLinkDeactivated     = errors.New("quiz link has been deactivated")
	ErrLinkExpired         = errors.New("quiz link has expired")
	ErrLinkExhaustedUses   = errors.New("quiz link has reached its maximum usage limit")
	ErrQuizMissing         = errors.New("quiz not found")
	ErrQuizInactive        = errors.New("quiz is currently inactive")
	ErrQuizNotYetAvailable = errors.New("quiz is not yet available")
	ErrQuizWindowExpired   = errors.New("quiz availability window has expired")

	// Registration and attempt lifecycle.
	ErrAlreadyAttempted    = errors.New("student has already attempted this quiz link")
	ErrNoAttemptsRemaining = errors.New("no attempts remaining for this quiz")
	ErrAttemptNotFound     = errors.New("attempt not found")
	ErrAttemptNotActive    = errors.New("attempt is not in progress")
	ErrAlreadyCompleted    = errors.New("attempt has already been completed")
	ErrQuestionNotInQuiz   = errors.New("question does not belong to the attempt's quiz")
	ErrStaleTimeSync       = errors.New("time sync rejected: remaining time did not decrease")
)

// Reason codes surfaced in validation responses so clients can branch without
// parsing error text.
const (
	ReasonNotFound            = "not_found"
	ReasonDeactivated         = "deactivated"
	ReasonExpired             = "expired"
	ReasonExhaustedUses       = "exhausted_uses"
	ReasonQuizMissing         = "quiz_missing"
	ReasonQuizInactive        = "quiz_inactive"
	ReasonQuizNotYetAvailable = "quiz_not_yet_available"
	ReasonQuizWindowExpired   = "quiz_window_expired"
)

// Reason translates a link validation error into its wire reason code.
// Unknown errors map to the empty string.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrLinkNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrLinkDeactivated):
		return ReasonDeactivated
	case errors.Is(err, ErrLinkExpired):
		return ReasonExpired
	case errors.Is(err, ErrLinkExhaustedUses):
		return ReasonExhaustedUses
	case errors.Is(err, ErrQuizMissing):
		return ReasonQuizMissing
	case errors.Is(err, ErrQuizInactive):
		return ReasonQuizInactive
	case errors.Is(err, ErrQuizNotYetAvailable):
		return ReasonQuizNotYetAvailable
	case errors.Is(err, ErrQuizWindowExpired):
		return ReasonQuizWindowExpired
	}
	return ""
}
