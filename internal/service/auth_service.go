package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"quizlink/internal/repository"
)

var ErrInvalidCredentials = errors.New("invalid username or password")

const adminTokenTTL = 24 * time.Hour

// AuthService authenticates administrators for the link-management and reset
// endpoints.
type AuthService interface {
	Login(username, password string) (string, error)
}

type authService struct {
	adminRepo repository.AdminRepository
	jwtSecret []byte
}

func NewAuthService(adminRepo repository.AdminRepository, jwtSecret string) AuthService {
	return &authService{
		adminRepo: adminRepo,
		jwtSecret: []byte(jwtSecret),
	}
}

func (s *authService) Login(username, password string) (string, error) {
	admin, err := s.adminRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("looking up admin: %w", err)
	}
	if !admin.IsActive {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	claims := jwt.MapClaims{
		"admin_id": admin.ID,
		"username": admin.Username,
		"exp":      time.Now().Add(adminTokenTTL).Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("signing admin token: %w", err)
	}

	if err := s.adminRepo.TouchLastLogin(admin.ID); err != nil {
		log.Warn().Err(err).Uint("adminID", admin.ID).Msg("Failed to update admin last_login")
	}
	return tokenString, nil
}
