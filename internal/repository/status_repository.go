package repository

import (
	"errors"
	"time"

	"quizlink/internal/model"

	"gorm.io/gorm"
)

type StatusRepository interface {
	Find(studentID, quizID uint) (*model.StudentQuizStatus, error)
	MarkInProgress(studentID, quizID uint, newAttempt bool) error
	MarkCompleted(studentID, quizID uint, completedAt time.Time) error
	Reset(studentID, quizID uint) error
}

type statusRepository struct {
	db *gorm.DB
}

func NewStatusRepository(db *gorm.DB) StatusRepository {
	return &statusRepository{db: db}
}

func (r *statusRepository) Find(studentID, quizID uint) (*model.StudentQuizStatus, error) {
	var status model.StudentQuizStatus
	err := r.db.Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		First(&status).Error
	if err != nil {
		return nil, err
	}
	return &status, nil
}

// MarkInProgress records that the student opened the quiz. attempts_used is
// bumped only when a new attempt was created, not on resume.
func (r *statusRepository) MarkInProgress(studentID, quizID uint, newAttempt bool) error {
	now := time.Now()

	status, err := r.Find(studentID, quizID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		used := 0
		if newAttempt {
			used = 1
		}
		return r.db.Create(&model.StudentQuizStatus{
			StudentID:       studentID,
			QuizID:          quizID,
			Status:          model.QuizStatusInProgress,
			AttemptsUsed:    used,
			FirstAccessedAt: &now,
			LastAccessedAt:  &now,
		}).Error
	}
	if err != nil {
		return err
	}

	updates := map[string]interface{}{
		"status":           model.QuizStatusInProgress,
		"last_accessed_at": now,
	}
	if newAttempt {
		updates["attempts_used"] = gorm.Expr("attempts_used + 1")
	}
	return r.db.Model(&model.StudentQuizStatus{}).Where("id = ?", status.ID).
		Updates(updates).Error
}

func (r *statusRepository) MarkCompleted(studentID, quizID uint, completedAt time.Time) error {
	return r.db.Model(&model.StudentQuizStatus{}).
		Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Updates(map[string]interface{}{
			"status":       model.QuizStatusCompleted,
			"completed_at": completedAt,
		}).Error
}

// Reset reopens eligibility after an admin reset.
func (r *statusRepository) Reset(studentID, quizID uint) error {
	return r.db.Model(&model.StudentQuizStatus{}).
		Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Updates(map[string]interface{}{
			"status":           model.QuizStatusAvailable,
			"attempts_used":    0,
			"completed_at":     nil,
			"last_accessed_at": nil,
		}).Error
}
