package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quizlink/internal/apperr"
	"quizlink/internal/dto"
	"quizlink/internal/middleware"
	"quizlink/internal/service"
)

type LinkAdminController struct {
	linkService    service.LinkService
	attemptService service.AttemptService
}

func NewLinkAdminController(ls service.LinkService, as service.AttemptService) *LinkAdminController {
	return &LinkAdminController{
		linkService:    ls,
		attemptService: as,
	}
}

// GenerateLink godoc
// @Summary (Admin) Generate a shareable link for a quiz
// @Description Creates a new tokenized link, optionally constrained by expiry and a maximum number of uses.
// @Tags Admin - Links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Param body body dto.GenerateLinkDTO false "Optional expiry and usage limit"
// @Success 201 {object} dto.QuizLinkDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Quiz not found"
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/quizzes/{quiz_id}/links [post]
func (c *LinkAdminController) GenerateLink(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}

	// Body is optional; an empty request creates an unconstrained link.
	var req dto.GenerateLinkDTO
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	var createdBy *uint
	if id, exists := ctx.Get(middleware.AdminIDKey); exists {
		if adminID, ok := id.(uint); ok {
			createdBy = &adminID
		}
	}

	link, err := c.linkService.GenerateLink(quizID, req, createdBy)
	if err != nil {
		if errors.Is(err, apperr.ErrQuizMissing) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("quizID", quizID).Msg("GenerateLink: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to generate quiz link"})
		return
	}
	ctx.JSON(http.StatusCreated, link)
}

// ListLinks godoc
// @Summary (Admin) List all links for a quiz
// @Tags Admin - Links
// @Produce json
// @Security BearerAuth
// @Param quiz_id path int true "Quiz ID"
// @Success 200 {array} dto.QuizLinkDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/quizzes/{quiz_id}/links [get]
func (c *LinkAdminController) ListLinks(ctx *gin.Context) {
	quizID, ok := pathID(ctx, "quiz_id")
	if !ok {
		return
	}

	links, err := c.linkService.ListLinks(quizID)
	if err != nil {
		log.Error().Err(err).Uint("quizID", quizID).Msg("ListLinks: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to fetch quiz links"})
		return
	}
	ctx.JSON(http.StatusOK, links)
}

// DeactivateLink godoc
// @Summary (Admin) Deactivate a quiz link
// @Description Retires the link so it stops validating; the link row and its registration history remain.
// @Tags Admin - Links
// @Produce json
// @Security BearerAuth
// @Param link_id path int true "Link ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/links/{link_id} [delete]
func (c *LinkAdminController) DeactivateLink(ctx *gin.Context) {
	linkID, ok := pathID(ctx, "link_id")
	if !ok {
		return
	}

	if err := c.linkService.DeactivateLink(linkID); err != nil {
		if errors.Is(err, apperr.ErrLinkNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Quiz link not found"})
			return
		}
		log.Error().Err(err).Uint("linkID", linkID).Msg("DeactivateLink: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to deactivate quiz link"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Quiz link deactivated"})
}

// ResetAttempt godoc
// @Summary (Admin) Reset a student's latest attempt for a quiz
// @Description Destructive override: deletes the latest attempt and its responses, and reopens the student's eligibility for the quiz.
// @Tags Admin - Links
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.ResetAttemptDTO true "Student and quiz ids"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "No attempt to reset"
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/reset-test [post]
func (c *LinkAdminController) ResetAttempt(ctx *gin.Context) {
	var req dto.ResetAttemptDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Student ID and Quiz ID are required", Details: []string{err.Error()}})
		return
	}

	if err := c.attemptService.Reset(req.StudentID, req.QuizID); err != nil {
		if errors.Is(err, apperr.ErrAttemptNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No attempt found for this student and quiz"})
			return
		}
		log.Error().Err(err).Uint("studentID", req.StudentID).Uint("quizID", req.QuizID).
			Msg("ResetAttempt: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to reset test"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Test has been reset successfully"})
}

func pathID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}
