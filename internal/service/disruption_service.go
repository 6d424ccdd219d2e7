package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizlink/internal/apperr"
	"quizlink/internal/dto"
	"quizlink/internal/guard"
	"quizlink/internal/model"
	"quizlink/internal/repository"
)

// DisruptionService applies the guard's escalation policy to a live attempt.
// Both the confirmed-warning path and the automatic threshold path funnel
// into AttemptService.Complete, so there is exactly one way an attempt
// becomes completed.
type DisruptionService interface {
	Record(attemptID uint, req dto.DisruptionEventDTO) (*dto.DisruptionDecisionDTO, error)
	Confirm(attemptID uint) (*dto.AttemptResultDTO, error)
}

type disruptionService struct {
	monitor        *guard.Monitor
	attemptService AttemptService
	attemptRepo    repository.AttemptRepository
	quizRepo       repository.QuizRepository
}

func NewDisruptionService(
	monitor *guard.Monitor,
	attemptService AttemptService,
	attemptRepo repository.AttemptRepository,
	quizRepo repository.QuizRepository,
) DisruptionService {
	return &disruptionService{
		monitor:        monitor,
		attemptService: attemptService,
		attemptRepo:    attemptRepo,
		quizRepo:       quizRepo,
	}
}

// Record counts a disruptive event. Below the threshold the student is warned
// and may still cancel; at the threshold the attempt is force-completed with
// the answers recorded so far and no further choice is offered.
func (s *disruptionService) Record(attemptID uint, req dto.DisruptionEventDTO) (*dto.DisruptionDecisionDTO, error) {
	attempt, err := s.activeAttempt(attemptID)
	if err != nil {
		return nil, err
	}

	decision, err := s.monitor.Record(req.QuizID, req.StudentID, guard.EventKind(req.Kind))
	if err != nil {
		return nil, err
	}

	log.Info().Uint("attemptID", attemptID).Str("kind", req.Kind).
		Int("warnings", decision.Warnings).Msg("Disruption event recorded")

	if decision.Action != guard.ActionAutoSubmit {
		return &dto.DisruptionDecisionDTO{Warnings: decision.Warnings, Action: "warn"}, nil
	}

	result, err := s.forceComplete(attempt)
	if err != nil {
		return nil, err
	}
	return &dto.DisruptionDecisionDTO{
		Warnings: decision.Warnings,
		Action:   "auto_submitted",
		Result:   result,
	}, nil
}

// Confirm executes the force-submission a warned student accepted. It is the
// same Complete operation as a normal submit.
func (s *disruptionService) Confirm(attemptID uint) (*dto.AttemptResultDTO, error) {
	attempt, err := s.activeAttempt(attemptID)
	if err != nil {
		return nil, err
	}
	return s.forceComplete(attempt)
}

func (s *disruptionService) activeAttempt(attemptID uint) (*model.Attempt, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}
	if attempt.Status != model.AttemptInProgress {
		return nil, apperr.ErrAttemptNotActive
	}
	return attempt, nil
}

func (s *disruptionService) forceComplete(attempt *model.Attempt) (*dto.AttemptResultDTO, error) {
	quiz, err := s.quizRepo.FindByID(attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("loading quiz %d: %w", attempt.QuizID, err)
	}

	elapsed := int(time.Since(attempt.StartedAt).Seconds())
	if limit := quiz.TimeLimit * 60; elapsed > limit {
		elapsed = limit
	}

	return s.attemptService.Complete(attempt.ID, dto.CompleteAttemptDTO{TimeSpent: elapsed})
}
