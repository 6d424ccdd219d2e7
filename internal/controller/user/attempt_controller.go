package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quizlink/internal/apperr"
	"quizlink/internal/dto"
	"quizlink/internal/service"
)

type AttemptController struct {
	attemptService    service.AttemptService
	disruptionService service.DisruptionService
}

func NewAttemptController(as service.AttemptService, ds service.DisruptionService) *AttemptController {
	return &AttemptController{
		attemptService:    as,
		disruptionService: ds,
	}
}

// GetQuiz godoc
// @Summary Get a quiz with its questions for taking
// @Description Returns the quiz and its questions without answer keys.
// @Tags Attempts
// @Produce json
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDetailDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "Quiz inactive"
// @Failure 404 {object} dto.ErrorResponse
// @Router /quizzes/{quiz_id} [get]
func (c *AttemptController) GetQuiz(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}

	detail, err := c.attemptService.GetQuizDetail(quizID)
	if err != nil {
		c.renderError(ctx, err, "GetQuiz")
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// StartAttempt godoc
// @Summary Start or resume an attempt
// @Description Resumes the in-progress attempt for the (quiz, student) pair if one exists, returning remaining time and previously saved answers; otherwise creates a new attempt subject to the quiz's max-attempts quota.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param body body dto.StartAttemptDTO true "Quiz and student ids"
// @Success 200 {object} dto.AttemptSessionDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse "No attempts remaining or quiz unavailable"
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/start [post]
func (c *AttemptController) StartAttempt(ctx *gin.Context) {
	var req dto.StartAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	session, err := c.attemptService.StartOrResume(req, ctx.ClientIP(), ctx.Request.UserAgent())
	if err != nil {
		c.renderError(ctx, err, "StartAttempt")
		return
	}
	ctx.JSON(http.StatusOK, session)
}

// SaveAnswer godoc
// @Summary Record an answer for a question
// @Description Create-or-replace the response for (attempt, question). Correctness is evaluated server-side at write time.
// @Tags Attempts
// @Accept json
// @Param attempt_id path int true "Attempt ID"
// @Param body body dto.SaveAnswerDTO true "Question id and selected letter"
// @Success 204 "Answer recorded"
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt not in progress"
// @Router /attempts/{attempt_id}/answers [put]
func (c *AttemptController) SaveAnswer(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.SaveAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid answer payload", Details: []string{err.Error()}})
		return
	}

	if err := c.attemptService.SaveAnswer(attemptID, req); err != nil {
		c.renderError(ctx, err, "SaveAnswer")
		return
	}
	ctx.Status(http.StatusNoContent)
}

// SyncTime godoc
// @Summary Checkpoint the remaining time for an attempt
// @Description Fire-and-forget countdown sync. Stale (non-decreasing) checkpoints are dropped silently; the client timer is never blocked on this call.
// @Tags Attempts
// @Accept json
// @Param attempt_id path int true "Attempt ID"
// @Param body body dto.SyncTimeDTO true "Remaining seconds"
// @Success 204 "Checkpoint accepted or ignored"
// @Failure 400 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/sync-time [post]
func (c *AttemptController) SyncTime(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.SyncTimeDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid sync payload", Details: []string{err.Error()}})
		return
	}

	if err := c.attemptService.SyncTime(attemptID, req.TimeRemaining); err != nil {
		// Fire-and-forget contract: stale or late syncs are logged, not
		// surfaced, so the client timer keeps ticking.
		log.Debug().Err(err).Uint("attemptID", attemptID).Msg("Time sync dropped")
	}
	ctx.Status(http.StatusNoContent)
}

// CompleteAttempt godoc
// @Summary Complete an attempt and return the scored result
// @Description The single completion path for explicit submit, timer expiry and guard-forced submission. Scoring aggregates stored responses; a repeat call returns the already-stored result.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param body body dto.CompleteAttemptDTO true "Elapsed time and optional link correlation id"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /attempts/{attempt_id}/complete [post]
func (c *AttemptController) CompleteAttempt(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.CompleteAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid completion payload", Details: []string{err.Error()}})
		return
	}

	result, err := c.attemptService.Complete(attemptID, req)
	if err != nil {
		c.renderError(ctx, err, "CompleteAttempt")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// RecordDisruption godoc
// @Summary Report a disruptive event during an active attempt
// @Description Counts reload/navigation/visibility/unload events. The first two produce a warning the student may cancel; the third force-completes the attempt with the answers recorded so far.
// @Tags Attempts
// @Accept json
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Param body body dto.DisruptionEventDTO true "Event context"
// @Success 200 {object} dto.DisruptionDecisionDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt not in progress"
// @Router /attempts/{attempt_id}/disruptions [post]
func (c *AttemptController) RecordDisruption(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}

	var req dto.DisruptionEventDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid disruption payload", Details: []string{err.Error()}})
		return
	}

	decision, err := c.disruptionService.Record(attemptID, req)
	if err != nil {
		c.renderError(ctx, err, "RecordDisruption")
		return
	}
	ctx.JSON(http.StatusOK, decision)
}

// ConfirmDisruption godoc
// @Summary Confirm a disruption warning, force-completing the attempt
// @Description The student confirmed the warning prompt; the attempt is completed with current answers through the normal completion path.
// @Tags Attempts
// @Produce json
// @Param attempt_id path int true "Attempt ID"
// @Success 200 {object} dto.AttemptResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Attempt not in progress"
// @Router /attempts/{attempt_id}/disruptions/confirm [post]
func (c *AttemptController) ConfirmDisruption(ctx *gin.Context) {
	attemptID, ok := pathID(ctx, "attempt_id")
	if !ok {
		return
	}

	result, err := c.disruptionService.Confirm(attemptID)
	if err != nil {
		c.renderError(ctx, err, "ConfirmDisruption")
		return
	}
	ctx.JSON(http.StatusOK, result)
}

func (c *AttemptController) renderError(ctx *gin.Context, err error, op string) {
	switch {
	case errors.Is(err, apperr.ErrAttemptNotFound),
		errors.Is(err, apperr.ErrQuizMissing),
		errors.Is(err, apperr.ErrQuestionNotInQuiz):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrNoAttemptsRemaining),
		errors.Is(err, apperr.ErrQuizInactive),
		errors.Is(err, apperr.ErrQuizNotYetAvailable),
		errors.Is(err, apperr.ErrQuizWindowExpired):
		ctx.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrAttemptNotActive),
		errors.Is(err, apperr.ErrAlreadyCompleted):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		log.Error().Err(err).Str("op", op).Msg("Attempt operation failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error"})
	}
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
