package repository

import (
	"time"

	"quizlink/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository interface {
	Create(attempt *model.Attempt) error
	FindByID(id uint) (*model.Attempt, error)
	FindInProgress(quizID, studentID uint) (*model.Attempt, error)
	FindLatest(quizID, studentID uint) (*model.Attempt, error)
	CountByQuizAndStudent(quizID, studentID uint) (int64, error)
	UpdateTimeRemaining(id uint, remaining int) (bool, error)
	CompleteIfInProgress(id uint, result CompletionUpdate) (bool, error)
	DeleteWithResponses(id uint) error
}

// CompletionUpdate carries the terminal fields written exactly once when an
// attempt transitions to completed.
type CompletionUpdate struct {
	Score          int
	TotalQuestions int
	CorrectAnswers int
	Passed         bool
	TimeSpent      int
	CompletedAt    time.Time
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.Attempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindByID(id uint) (*model.Attempt, error) {
	var attempt model.Attempt
	if err := r.db.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindInProgress(quizID, studentID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.Where("quiz_id = ? AND student_id = ? AND status = ?",
		quizID, studentID, model.AttemptInProgress).
		Order("started_at DESC").First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) FindLatest(quizID, studentID uint) (*model.Attempt, error) {
	var attempt model.Attempt
	err := r.db.Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Order("started_at DESC").First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *attemptRepository) CountByQuizAndStudent(quizID, studentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Attempt{}).
		Where("quiz_id = ? AND student_id = ?", quizID, studentID).
		Count(&count).Error
	return count, err
}

// UpdateTimeRemaining persists a countdown checkpoint only when it is lower
// than the previously recorded one, so out-of-order network delivery can never
// regress the clock. Returns false when the update was rejected as stale.
func (r *attemptRepository) UpdateTimeRemaining(id uint, remaining int) (bool, error) {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND status = ?", id, model.AttemptInProgress).
		Where("time_remaining IS NULL OR time_remaining > ?", remaining).
		Update("time_remaining", remaining)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// CompleteIfInProgress is the guarded state transition: the WHERE clause on
// status makes a second completion a no-op at the storage level. Returns false
// when no row transitioned.
func (r *attemptRepository) CompleteIfInProgress(id uint, result CompletionUpdate) (bool, error) {
	res := r.db.Model(&model.Attempt{}).
		Where("id = ? AND status = ?", id, model.AttemptInProgress).
		Updates(map[string]interface{}{
			"status":          model.AttemptCompleted,
			"score":           result.Score,
			"total_questions": result.TotalQuestions,
			"correct_answers": result.CorrectAnswers,
			"passed":          result.Passed,
			"time_spent":      result.TimeSpent,
			"time_remaining":  0,
			"completed_at":    result.CompletedAt,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// DeleteWithResponses is the admin reset override. Responses go first so the
// delete is safe on databases without cascading foreign keys enabled.
func (r *attemptRepository) DeleteWithResponses(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("attempt_id = ?", id).Delete(&model.Response{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Attempt{}, id).Error
	})
}
