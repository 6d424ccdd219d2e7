package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"quizlink/internal/apperr"
	"quizlink/internal/dto"
	"quizlink/internal/model"
	"quizlink/internal/repository"
)

// RegistrationService binds a student identity to a link token exactly once.
type RegistrationService interface {
	Register(req dto.RegisterLinkDTO, ipAddress, userAgent string) (*dto.RegistrationDTO, error)
}

type registrationService struct {
	linkService     LinkService
	studentRepo     repository.StudentRepository
	linkAttemptRepo repository.LinkAttemptRepository
	linkRepo        repository.QuizLinkRepository
}

func NewRegistrationService(
	linkService LinkService,
	studentRepo repository.StudentRepository,
	linkAttemptRepo repository.LinkAttemptRepository,
	linkRepo repository.QuizLinkRepository,
) RegistrationService {
	return &registrationService{
		linkService:     linkService,
		studentRepo:     studentRepo,
		linkAttemptRepo: linkAttemptRepo,
		linkRepo:        linkRepo,
	}
}

// Register re-validates the token, resolves the student by email, and inserts
// the (link, student) binding. The insert relies on the composite unique index
// for race safety: two simultaneous registrations for the same pair both reach
// the insert, and exactly one wins.
func (s *registrationService) Register(req dto.RegisterLinkDTO, ipAddress, userAgent string) (*dto.RegistrationDTO, error) {
	link, _, err := s.linkService.ValidateForUse(req.Token)
	if err != nil {
		return nil, err
	}

	student, err := s.resolveStudent(req)
	if err != nil {
		return nil, err
	}

	linkAttempt := &model.QuizLinkAttempt{
		QuizLinkID: link.ID,
		StudentID:  student.ID,
		QuizID:     link.QuizID,
		IPAddress:  ipAddress,
		UserAgent:  userAgent,
	}
	if err := s.linkAttemptRepo.Create(linkAttempt); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.ErrAlreadyAttempted
		}
		return nil, fmt.Errorf("creating link attempt: %w", err)
	}

	// Usage accounting is best-effort: the binding above is already durable
	// and authoritative for single-use enforcement.
	if err := s.linkRepo.IncrementUsage(link.ID); err != nil {
		log.Error().Err(err).Uint("linkID", link.ID).Msg("Failed to increment link usage")
	}

	log.Info().
		Uint("linkID", link.ID).
		Uint("studentID", student.ID).
		Uint("quizID", link.QuizID).
		Msg("Student registered via quiz link")

	return &dto.RegistrationDTO{
		Student: dto.StudentDTO{
			ID:    student.ID,
			Name:  student.Name,
			Email: student.Email,
			Phone: student.Phone,
		},
		QuizID:        link.QuizID,
		LinkAttemptID: linkAttempt.ID,
	}, nil
}

// resolveStudent finds or creates the student by email. An existing student is
// refreshed in place when the submitted name or phone differs; identities are
// never duplicated.
func (s *registrationService) resolveStudent(req dto.RegisterLinkDTO) (*model.Student, error) {
	student, err := s.studentRepo.FindByEmail(req.Email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		student = &model.Student{
			Name:  req.Name,
			Email: req.Email,
			Phone: req.Phone,
		}
		if err := s.studentRepo.Create(student); err != nil {
			return nil, fmt.Errorf("creating student: %w", err)
		}
		return student, nil
	}
	if err != nil {
		return nil, fmt.Errorf("looking up student by email: %w", err)
	}

	if student.Phone != req.Phone || student.Name != req.Name {
		student.Phone = req.Phone
		student.Name = req.Name
		if err := s.studentRepo.Update(student); err != nil {
			return nil, fmt.Errorf("updating student details: %w", err)
		}
	}
	return student, nil
}
