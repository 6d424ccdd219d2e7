package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quizlink/internal/apperr"
	"quizlink/internal/dto"
	"quizlink/internal/service"
)

type LinkController struct {
	linkService         service.LinkService
	registrationService service.RegistrationService
}

func NewLinkController(ls service.LinkService, rs service.RegistrationService) *LinkController {
	return &LinkController{
		linkService:         ls,
		registrationService: rs,
	}
}

// ValidateLink godoc
// @Summary Validate a quiz link token
// @Description Checks whether a shareable link token is currently usable and returns sanitized quiz metadata. If a student_id is supplied, reports whether that student has already consumed the link.
// @Tags Quiz Links
// @Accept json
// @Produce json
// @Param body body dto.ValidateLinkDTO true "Token and optional student id"
// @Success 200 {object} dto.LinkValidationDTO
// @Failure 400 {object} dto.ErrorResponse "Missing token"
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz-links/validate [post]
func (c *LinkController) ValidateLink(ctx *gin.Context) {
	var req dto.ValidateLinkDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	result, err := c.linkService.Validate(req.Token, req.StudentID)
	if err != nil {
		log.Error().Err(err).Msg("ValidateLink: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to validate quiz link"})
		return
	}

	// Link errors are not transient; the client renders a static page, so the
	// taxonomy maps to concrete statuses rather than a blanket 200.
	if !result.Valid {
		switch result.Reason {
		case apperr.ReasonNotFound, apperr.ReasonQuizMissing:
			ctx.JSON(http.StatusNotFound, result)
		default:
			ctx.JSON(http.StatusForbidden, result)
		}
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// RegisterForLink godoc
// @Summary Register a student through a quiz link
// @Description Binds the student to the link exactly once and returns the correlation id used for the eventual attempt. A second registration for the same (link, student) pair is rejected.
// @Tags Quiz Links
// @Accept json
// @Produce json
// @Param body body dto.RegisterLinkDTO true "Registration form"
// @Success 200 {object} dto.RegistrationDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed name/email/phone"
// @Failure 403 {object} dto.ErrorResponse "Already attempted, or link unusable"
// @Failure 404 {object} dto.ErrorResponse "Unknown token"
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz-links/register [post]
func (c *LinkController) RegisterForLink(ctx *gin.Context) {
	var req dto.RegisterLinkDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid registration data", Details: []string{err.Error()}})
		return
	}

	result, err := c.registrationService.Register(req, ctx.ClientIP(), ctx.Request.UserAgent())
	if err != nil {
		status := linkErrorStatus(err)
		if status == http.StatusInternalServerError {
			log.Error().Err(err).Msg("RegisterForLink: service error")
			ctx.JSON(status, dto.ErrorResponse{Message: "Failed to register. Please try again."})
			return
		}
		ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// CheckAttempt godoc
// @Summary Check whether a student has used any link for a quiz
// @Tags Quiz Links
// @Accept json
// @Produce json
// @Param body body dto.CheckAttemptDTO true "Student and quiz ids"
// @Success 200 {object} dto.AttemptCheckResultDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /quiz-links/check-attempt [post]
func (c *LinkController) CheckAttempt(ctx *gin.Context) {
	var req dto.CheckAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Student ID and Quiz ID are required", Details: []string{err.Error()}})
		return
	}

	result, err := c.linkService.CheckAttempt(req.StudentID, req.QuizID)
	if err != nil {
		log.Error().Err(err).Msg("CheckAttempt: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to check attempt status"})
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// linkErrorStatus maps the link/registration taxonomy onto HTTP statuses.
// AlreadyAttempted is deliberately a 403: distinct, non-retryable.
func linkErrorStatus(err error) int {
	switch {
	case errors.Is(err, apperr.ErrLinkNotFound), errors.Is(err, apperr.ErrQuizMissing):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrLinkDeactivated),
		errors.Is(err, apperr.ErrLinkExpired),
		errors.Is(err, apperr.ErrLinkExhaustedUses),
		errors.Is(err, apperr.ErrQuizInactive),
		errors.Is(err, apperr.ErrQuizNotYetAvailable),
		errors.Is(err, apperr.ErrQuizWindowExpired),
		errors.Is(err, apperr.ErrAlreadyAttempted):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
