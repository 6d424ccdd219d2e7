package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizlink/internal/apperr"
	"quizlink/internal/dto"
	"quizlink/internal/guard"
	"quizlink/internal/model"
	"quizlink/internal/repository"
)

// syncSkewTolerance absorbs small client clock skew on sync checkpoints. A
// checkpoint may exceed the previously stored remaining time by at most this
// many seconds before it is rejected as stale.
const syncSkewTolerance = 2

// AttemptService is the timed-attempt state machine: in_progress is the only
// live state, and Complete is the single code path into completed, whether
// triggered by explicit submit, timer expiry, or the reload-abuse guard.
type AttemptService interface {
	GetQuizDetail(quizID uint) (*dto.QuizDetailDTO, error)
	StartOrResume(req dto.StartAttemptDTO, ipAddress, userAgent string) (*dto.AttemptSessionDTO, error)
	SaveAnswer(attemptID uint, req dto.SaveAnswerDTO) error
	SyncTime(attemptID uint, remaining int) error
	Complete(attemptID uint, req dto.CompleteAttemptDTO) (*dto.AttemptResultDTO, error)
	Reset(studentID, quizID uint) error
}

type attemptService struct {
	quizRepo        repository.QuizRepository
	questionRepo    repository.QuestionRepository
	attemptRepo     repository.AttemptRepository
	responseRepo    repository.ResponseRepository
	statusRepo      repository.StatusRepository
	linkAttemptRepo repository.LinkAttemptRepository
	monitor         *guard.Monitor
}

func NewAttemptService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	attemptRepo repository.AttemptRepository,
	responseRepo repository.ResponseRepository,
	statusRepo repository.StatusRepository,
	linkAttemptRepo repository.LinkAttemptRepository,
	monitor *guard.Monitor,
) AttemptService {
	return &attemptService{
		quizRepo:        quizRepo,
		questionRepo:    questionRepo,
		attemptRepo:     attemptRepo,
		responseRepo:    responseRepo,
		statusRepo:      statusRepo,
		linkAttemptRepo: linkAttemptRepo,
		monitor:         monitor,
	}
}

// GetQuizDetail returns the quiz with its questions, sanitized for the taking
// screen. Correct answers stay server-side.
func (s *attemptService) GetQuizDetail(quizID uint) (*dto.QuizDetailDTO, error) {
	quiz, err := s.quizRepo.FindByIDWithQuestions(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrQuizMissing
		}
		return nil, fmt.Errorf("loading quiz %d: %w", quizID, err)
	}
	if !quiz.IsActive {
		return nil, apperr.ErrQuizInactive
	}

	detail := &dto.QuizDetailDTO{
		Quiz: dto.QuizSummaryDTO{
			ID:           quiz.ID,
			Title:        quiz.Title,
			Description:  quiz.Description,
			TimeLimit:    quiz.TimeLimit,
			PassingScore: quiz.PassingScore,
		},
	}
	for _, q := range quiz.Questions {
		var options []string
		if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
			log.Warn().Err(err).Uint("questionID", q.ID).Msg("Question options are not valid JSON")
			options = []string{}
		}
		detail.Questions = append(detail.Questions, dto.QuestionDTO{
			ID:          q.ID,
			QuizID:      q.QuizID,
			Text:        q.Text,
			Options:     options,
			OrderInQuiz: q.OrderInQuiz,
		})
	}
	return detail, nil
}

// StartOrResume returns the live session for a (quiz, student) pair. An
// in_progress attempt is resumed with its remaining time and saved answers; an
// attempt whose clock ran out while the student was away is completed
// server-side before quota rules are applied to a fresh start.
func (s *attemptService) StartOrResume(req dto.StartAttemptDTO, ipAddress, userAgent string) (*dto.AttemptSessionDTO, error) {
	quiz, err := s.quizRepo.FindByID(req.QuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrQuizMissing
		}
		return nil, fmt.Errorf("loading quiz %d: %w", req.QuizID, err)
	}
	if !quiz.IsActive {
		return nil, apperr.ErrQuizInactive
	}
	now := time.Now()
	if quiz.ValidFrom != nil && now.Before(*quiz.ValidFrom) {
		return nil, apperr.ErrQuizNotYetAvailable
	}
	if quiz.ValidUntil != nil && now.After(*quiz.ValidUntil) {
		return nil, apperr.ErrQuizWindowExpired
	}

	existing, err := s.attemptRepo.FindInProgress(req.QuizID, req.StudentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("looking up in-progress attempt: %w", err)
	}

	if existing != nil {
		remaining := s.remainingSeconds(existing, quiz)
		if remaining > 0 {
			return s.resumeSession(existing, remaining)
		}

		// Timer expired while the page was gone; fold into the normal
		// completion path with whatever answers were recorded.
		log.Info().Uint("attemptID", existing.ID).Msg("Attempt expired server-side, completing")
		if _, err := s.Complete(existing.ID, dto.CompleteAttemptDTO{
			TimeSpent:     quiz.TimeLimit * 60,
			LinkAttemptID: req.LinkAttemptID,
		}); err != nil {
			return nil, fmt.Errorf("completing expired attempt: %w", err)
		}
	}

	used, err := s.attemptRepo.CountByQuizAndStudent(req.QuizID, req.StudentID)
	if err != nil {
		return nil, fmt.Errorf("counting attempts: %w", err)
	}
	if quiz.MaxAttempts > 0 && int(used) >= quiz.MaxAttempts {
		return nil, apperr.ErrNoAttemptsRemaining
	}

	duration := quiz.TimeLimit * 60
	attempt := &model.Attempt{
		QuizID:        req.QuizID,
		StudentID:     req.StudentID,
		AttemptNumber: int(used) + 1,
		Status:        model.AttemptInProgress,
		TimeRemaining: &duration,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
	}
	if err := s.attemptRepo.Create(attempt); err != nil {
		return nil, fmt.Errorf("creating attempt: %w", err)
	}

	if err := s.statusRepo.MarkInProgress(req.StudentID, req.QuizID, true); err != nil {
		log.Error().Err(err).Uint("studentID", req.StudentID).Uint("quizID", req.QuizID).
			Msg("Failed to update student quiz status")
	}

	log.Info().Uint("attemptID", attempt.ID).Int("attemptNumber", attempt.AttemptNumber).
		Uint("quizID", req.QuizID).Uint("studentID", req.StudentID).Msg("Attempt started")

	return &dto.AttemptSessionDTO{
		AttemptID:     attempt.ID,
		AttemptNumber: attempt.AttemptNumber,
		TimeRemaining: duration,
	}, nil
}

func (s *attemptService) resumeSession(attempt *model.Attempt, remaining int) (*dto.AttemptSessionDTO, error) {
	responses, err := s.responseRepo.FindByAttemptID(attempt.ID)
	if err != nil {
		return nil, fmt.Errorf("loading saved answers: %w", err)
	}

	saved := make([]dto.SavedAnswerDTO, 0, len(responses))
	for _, r := range responses {
		saved = append(saved, dto.SavedAnswerDTO{
			QuestionID:     r.QuestionID,
			SelectedAnswer: r.SelectedAnswer,
		})
	}

	if err := s.statusRepo.MarkInProgress(attempt.StudentID, attempt.QuizID, false); err != nil {
		log.Error().Err(err).Uint("attemptID", attempt.ID).Msg("Failed to update student quiz status on resume")
	}

	log.Info().Uint("attemptID", attempt.ID).Int("remaining", remaining).
		Int("savedAnswers", len(saved)).Msg("Attempt resumed")

	return &dto.AttemptSessionDTO{
		AttemptID:       attempt.ID,
		AttemptNumber:   attempt.AttemptNumber,
		TimeRemaining:   remaining,
		Resumed:         true,
		ExistingAnswers: saved,
	}, nil
}

// remainingSeconds prefers the last synced checkpoint over wall-clock
// arithmetic; the checkpoint is what periodic sync exists for.
func (s *attemptService) remainingSeconds(attempt *model.Attempt, quiz *model.Quiz) int {
	duration := quiz.TimeLimit * 60
	elapsed := int(time.Since(attempt.StartedAt).Seconds())
	remaining := duration - elapsed

	if attempt.TimeRemaining != nil && *attempt.TimeRemaining < remaining {
		remaining = *attempt.TimeRemaining
	}
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// SaveAnswer records one answer with upsert semantics. Correctness is
// computed here, at write time, against the stored key; scoring later is a
// pure aggregate over stored responses.
func (s *attemptService) SaveAnswer(attemptID uint, req dto.SaveAnswerDTO) error {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrAttemptNotFound
		}
		return fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}
	if attempt.Status != model.AttemptInProgress {
		return apperr.ErrAttemptNotActive
	}

	question, err := s.questionRepo.FindByID(req.QuestionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrQuestionNotInQuiz
		}
		return fmt.Errorf("loading question %d: %w", req.QuestionID, err)
	}
	if question.QuizID != attempt.QuizID {
		return apperr.ErrQuestionNotInQuiz
	}

	response := &model.Response{
		AttemptID:      attemptID,
		QuestionID:     question.ID,
		SelectedAnswer: req.SelectedAnswer,
		IsCorrect:      req.SelectedAnswer == question.CorrectAnswer,
		TimeSpent:      req.TimeSpent,
		AnsweredAt:     time.Now(),
	}
	if err := s.responseRepo.Upsert(response); err != nil {
		return fmt.Errorf("saving answer: %w", err)
	}
	return nil
}

// SyncTime persists a countdown checkpoint. Only monotonically decreasing
// values are accepted (with a small skew tolerance); stale deliveries surface
// ErrStaleTimeSync, which callers treat as ignorable.
func (s *attemptService) SyncTime(attemptID uint, remaining int) error {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrAttemptNotFound
		}
		return fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}
	if attempt.Status != model.AttemptInProgress {
		return apperr.ErrAttemptNotActive
	}
	if attempt.TimeRemaining != nil && remaining > *attempt.TimeRemaining+syncSkewTolerance {
		return apperr.ErrStaleTimeSync
	}

	updated, err := s.attemptRepo.UpdateTimeRemaining(attemptID, remaining)
	if err != nil {
		return fmt.Errorf("syncing remaining time: %w", err)
	}
	if !updated {
		return apperr.ErrStaleTimeSync
	}
	return nil
}

// Complete transitions the attempt to completed exactly once and returns the
// scored result. The score is aggregated server-side from stored responses;
// an unanswered question counts as incorrect. A second call is a no-op that
// returns the stored result unchanged.
func (s *attemptService) Complete(attemptID uint, req dto.CompleteAttemptDTO) (*dto.AttemptResultDTO, error) {
	attempt, err := s.attemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("loading attempt %d: %w", attemptID, err)
	}

	quiz, err := s.quizRepo.FindByID(attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("loading quiz %d: %w", attempt.QuizID, err)
	}

	total, err := s.quizRepo.CountQuestions(attempt.QuizID)
	if err != nil {
		return nil, fmt.Errorf("counting questions: %w", err)
	}
	correct, err := s.responseRepo.CountCorrect(attemptID)
	if err != nil {
		return nil, fmt.Errorf("counting correct responses: %w", err)
	}

	score := 0
	if total > 0 {
		score = int(math.Round(100 * float64(correct) / float64(total)))
	}
	passed := score >= quiz.PassingScore

	now := time.Now()
	transitioned, err := s.attemptRepo.CompleteIfInProgress(attemptID, repository.CompletionUpdate{
		Score:          score,
		TotalQuestions: int(total),
		CorrectAnswers: int(correct),
		Passed:         passed,
		TimeSpent:      req.TimeSpent,
		CompletedAt:    now,
	})
	if err != nil {
		return nil, fmt.Errorf("completing attempt: %w", err)
	}

	if !transitioned {
		// Already terminal. Idempotency: return the stored result, never
		// re-score.
		stored, err := s.attemptRepo.FindByID(attemptID)
		if err != nil {
			return nil, fmt.Errorf("reloading attempt %d: %w", attemptID, err)
		}
		if stored.Status != model.AttemptCompleted {
			return nil, apperr.ErrAttemptNotActive
		}
		return storedResult(stored), nil
	}

	if err := s.statusRepo.MarkCompleted(attempt.StudentID, attempt.QuizID, now); err != nil {
		log.Error().Err(err).Uint("attemptID", attemptID).Msg("Failed to mark student quiz status completed")
	}

	// Link-based sessions attach the real attempt to the link binding.
	// Best-effort: the score stands regardless.
	if req.LinkAttemptID != nil {
		if err := s.linkAttemptRepo.AttachAttempt(*req.LinkAttemptID, attemptID); err != nil {
			log.Error().Err(err).Uint("linkAttemptID", *req.LinkAttemptID).
				Msg("Failed to attach attempt to link attempt")
		}
	}

	// Completion through any path retires the session's disruption counters.
	if err := s.monitor.Clear(attempt.QuizID, attempt.StudentID); err != nil {
		log.Warn().Err(err).Uint("attemptID", attemptID).Msg("Failed to clear disruption counters")
	}

	log.Info().Uint("attemptID", attemptID).Int("score", score).Bool("passed", passed).
		Msg("Attempt completed")

	return &dto.AttemptResultDTO{
		AttemptID:      attemptID,
		Score:          score,
		TotalQuestions: int(total),
		CorrectAnswers: int(correct),
		Passed:         passed,
		CompletedAt:    &now,
	}, nil
}

// Reset is the admin destructive override: delete the latest attempt with its
// responses and reopen eligibility for the pair.
func (s *attemptService) Reset(studentID, quizID uint) error {
	latest, err := s.attemptRepo.FindLatest(quizID, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrAttemptNotFound
		}
		return fmt.Errorf("looking up latest attempt: %w", err)
	}

	if err := s.attemptRepo.DeleteWithResponses(latest.ID); err != nil {
		return fmt.Errorf("deleting attempt %d: %w", latest.ID, err)
	}
	if err := s.statusRepo.Reset(studentID, quizID); err != nil {
		return fmt.Errorf("resetting student quiz status: %w", err)
	}
	if err := s.monitor.Clear(quizID, studentID); err != nil {
		log.Warn().Err(err).Uint("quizID", quizID).Uint("studentID", studentID).
			Msg("Failed to clear disruption counters on reset")
	}

	log.Info().Uint("attemptID", latest.ID).Uint("studentID", studentID).Uint("quizID", quizID).
		Msg("Attempt reset by administrator")
	return nil
}

func storedResult(attempt *model.Attempt) *dto.AttemptResultDTO {
	result := &dto.AttemptResultDTO{
		AttemptID:   attempt.ID,
		CompletedAt: attempt.CompletedAt,
	}
	if attempt.Score != nil {
		result.Score = *attempt.Score
	}
	if attempt.TotalQuestions != nil {
		result.TotalQuestions = *attempt.TotalQuestions
	}
	if attempt.CorrectAnswers != nil {
		result.CorrectAnswers = *attempt.CorrectAnswers
	}
	if attempt.Passed != nil {
		result.Passed = *attempt.Passed
	}
	return result
}
