package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizlink/internal/apperr"
	"quizlink/internal/dto"
	"quizlink/internal/model"
	"quizlink/internal/repository"
	"quizlink/internal/token"
)

// tokenInsertRetries bounds regeneration when a generated token collides with
// a stored one. With 256-bit tokens a single collision is already improbable.
const tokenInsertRetries = 3

// QuizSummaryCache is the optional read-through cache for sanitized quiz
// metadata served with validation results. May be nil.
type QuizSummaryCache interface {
	GetQuizSummary(id uint) (*dto.QuizSummaryDTO, error)
	SetQuizSummary(summary *dto.QuizSummaryDTO) error
}

type LinkService interface {
	Validate(tok string, studentID *uint) (*dto.LinkValidationDTO, error)
	ValidateForUse(tok string) (*model.QuizLink, *model.Quiz, error)
	GenerateLink(quizID uint, req dto.GenerateLinkDTO, createdBy *uint) (*dto.QuizLinkDTO, error)
	ListLinks(quizID uint) ([]dto.QuizLinkDTO, error)
	DeactivateLink(linkID uint) error
	CheckAttempt(studentID, quizID uint) (*dto.AttemptCheckResultDTO, error)
}

type linkService struct {
	linkRepo        repository.QuizLinkRepository
	quizRepo        repository.QuizRepository
	linkAttemptRepo repository.LinkAttemptRepository
	tokens          token.Generator
	cache           QuizSummaryCache
	baseURL         string
}

func NewLinkService(
	linkRepo repository.QuizLinkRepository,
	quizRepo repository.QuizRepository,
	linkAttemptRepo repository.LinkAttemptRepository,
	tokens token.Generator,
	cache QuizSummaryCache,
	baseURL string,
) LinkService {
	return &linkService{
		linkRepo:        linkRepo,
		quizRepo:        quizRepo,
		linkAttemptRepo: linkAttemptRepo,
		tokens:          tokens,
		cache:           cache,
		baseURL:         baseURL,
	}
}

// ValidateForUse runs the ordered link checks and returns the link and its
// quiz when every check passes. The first failing check determines the error.
func (s *linkService) ValidateForUse(tok string) (*model.QuizLink, *model.Quiz, error) {
	link, err := s.linkRepo.FindByToken(tok)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.ErrLinkNotFound
		}
		return nil, nil, fmt.Errorf("looking up link token: %w", err)
	}

	if !link.IsActive {
		return nil, nil, apperr.ErrLinkDeactivated
	}
	if link.ExpiresAt != nil && time.Now().After(*link.ExpiresAt) {
		return nil, nil, apperr.ErrLinkExpired
	}
	if !link.HasUsesLeft() {
		return nil, nil, apperr.ErrLinkExhaustedUses
	}

	quiz, err := s.quizRepo.FindByID(link.QuizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.ErrQuizMissing
		}
		return nil, nil, fmt.Errorf("looking up quiz %d for link: %w", link.QuizID, err)
	}

	if !quiz.IsActive {
		return nil, nil, apperr.ErrQuizInactive
	}
	now := time.Now()
	if quiz.ValidFrom != nil && now.Before(*quiz.ValidFrom) {
		return nil, nil, apperr.ErrQuizNotYetAvailable
	}
	if quiz.ValidUntil != nil && now.After(*quiz.ValidUntil) {
		return nil, nil, apperr.ErrQuizWindowExpired
	}

	return link, quiz, nil
}

// Validate is the read-only validation endpoint behind a shared link. A
// previously consumed link still validates for other students; hasAttempted is
// informational for the one student asking.
func (s *linkService) Validate(tok string, studentID *uint) (*dto.LinkValidationDTO, error) {
	link, quiz, err := s.ValidateForUse(tok)
	if err != nil {
		reason := apperr.Reason(err)
		if reason == "" {
			return nil, err
		}
		return &dto.LinkValidationDTO{Valid: false, Reason: reason, Error: err.Error()}, nil
	}

	hasAttempted := false
	if studentID != nil {
		_, err := s.linkAttemptRepo.FindByLinkAndStudent(link.ID, *studentID)
		switch {
		case err == nil:
			hasAttempted = true
		case errors.Is(err, gorm.ErrRecordNotFound):
			// first visit
		default:
			return nil, fmt.Errorf("checking prior link attempt: %w", err)
		}
	}

	// Best-effort access tracking; a failure here never fails validation.
	if err := s.linkRepo.TouchLastAccessed(link.ID); err != nil {
		log.Warn().Err(err).Uint("linkID", link.ID).Msg("Failed to update link last_accessed_at")
	}

	return &dto.LinkValidationDTO{
		Valid:        true,
		HasAttempted: hasAttempted,
		Quiz:         s.quizSummary(quiz),
		QuizLink: &dto.LinkUsageDTO{
			ID:        link.ID,
			MaxUses:   link.MaxUses,
			UsedCount: link.UsedCount,
			ExpiresAt: link.ExpiresAt,
		},
	}, nil
}

// quizSummary serves the sanitized quiz metadata, read through the cache when
// one is configured.
func (s *linkService) quizSummary(quiz *model.Quiz) *dto.QuizSummaryDTO {
	if s.cache != nil {
		if cached, err := s.cache.GetQuizSummary(quiz.ID); err == nil && cached != nil {
			return cached
		}
	}

	summary := &dto.QuizSummaryDTO{}
	if err := copier.Copy(summary, quiz); err != nil {
		log.Error().Err(err).Uint("quizID", quiz.ID).Msg("Failed to copy quiz to summary DTO")
		return &dto.QuizSummaryDTO{ID: quiz.ID, Title: quiz.Title}
	}

	if s.cache != nil {
		if err := s.cache.SetQuizSummary(summary); err != nil {
			log.Warn().Err(err).Uint("quizID", quiz.ID).Msg("Failed to cache quiz summary")
		}
	}
	return summary
}

func (s *linkService) GenerateLink(quizID uint, req dto.GenerateLinkDTO, createdBy *uint) (*dto.QuizLinkDTO, error) {
	quiz, err := s.quizRepo.FindByID(quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrQuizMissing
		}
		return nil, fmt.Errorf("looking up quiz %d: %w", quizID, err)
	}

	var link *model.QuizLink
	for attempt := 0; attempt < tokenInsertRetries; attempt++ {
		tok, err := s.tokens.Generate()
		if err != nil {
			return nil, err
		}

		candidate := &model.QuizLink{
			QuizID:    quiz.ID,
			Token:     tok,
			ExpiresAt: req.ExpiresAt,
			MaxUses:   req.MaxUses,
			IsActive:  true,
			CreatedBy: createdBy,
		}
		err = s.linkRepo.Create(candidate)
		if err == nil {
			link = candidate
			break
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("creating quiz link: %w", err)
		}
		log.Warn().Uint("quizID", quizID).Msg("Link token collision, regenerating")
	}
	if link == nil {
		return nil, fmt.Errorf("creating quiz link: token collisions exhausted %d retries", tokenInsertRetries)
	}

	log.Info().Uint("quizID", quizID).Uint("linkID", link.ID).Msg("Quiz link generated")
	return s.linkDTO(link), nil
}

func (s *linkService) ListLinks(quizID uint) ([]dto.QuizLinkDTO, error) {
	links, err := s.linkRepo.FindByQuizID(quizID)
	if err != nil {
		return nil, fmt.Errorf("listing links for quiz %d: %w", quizID, err)
	}

	dtos := make([]dto.QuizLinkDTO, 0, len(links))
	for i := range links {
		dtos = append(dtos, *s.linkDTO(&links[i]))
	}
	return dtos, nil
}

// DeactivateLink retires a link; the row and its registration history remain.
func (s *linkService) DeactivateLink(linkID uint) error {
	deactivated, err := s.linkRepo.Deactivate(linkID)
	if err != nil {
		return fmt.Errorf("deactivating link %d: %w", linkID, err)
	}
	if !deactivated {
		return apperr.ErrLinkNotFound
	}
	log.Info().Uint("linkID", linkID).Msg("Quiz link deactivated")
	return nil
}

func (s *linkService) CheckAttempt(studentID, quizID uint) (*dto.AttemptCheckResultDTO, error) {
	count, err := s.linkAttemptRepo.CountByStudentAndQuiz(studentID, quizID)
	if err != nil {
		return nil, fmt.Errorf("counting link attempts: %w", err)
	}
	return &dto.AttemptCheckResultDTO{
		HasAttempted: count > 0,
		AttemptCount: int(count),
	}, nil
}

func (s *linkService) linkDTO(link *model.QuizLink) *dto.QuizLinkDTO {
	var resp dto.QuizLinkDTO
	if err := copier.Copy(&resp, link); err != nil {
		log.Error().Err(err).Uint("linkID", link.ID).Msg("Failed to copy link to DTO")
	}
	resp.URL = fmt.Sprintf("%s/q/%s", s.baseURL, link.Token)
	return &resp
}
