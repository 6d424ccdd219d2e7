package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"quizlink/internal/dto"
	"quizlink/internal/service"
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(as service.AuthService) *AuthController {
	return &AuthController{authService: as}
}

// Login godoc
// @Summary (Admin) Log in and obtain a bearer token
// @Tags Admin - Auth
// @Accept json
// @Produce json
// @Param body body dto.AdminLoginDTO true "Admin credentials"
// @Success 200 {object} dto.AdminTokenDTO
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.AdminLoginDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Username and password are required", Details: []string{err.Error()}})
		return
	}

	token, err := c.authService.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "Invalid username or password"})
			return
		}
		log.Error().Err(err).Str("username", req.Username).Msg("Login: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Login failed"})
		return
	}
	ctx.JSON(http.StatusOK, dto.AdminTokenDTO{Token: token})
}
