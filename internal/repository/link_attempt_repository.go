package repository

import (
	"quizlink/internal/model"

	"gorm.io/gorm"
)

type LinkAttemptRepository interface {
	Create(attempt *model.QuizLinkAttempt) error
	FindByLinkAndStudent(linkID, studentID uint) (*model.QuizLinkAttempt, error)
	CountByStudentAndQuiz(studentID, quizID uint) (int64, error)
	AttachAttempt(linkAttemptID, attemptID uint) error
}

type linkAttemptRepository struct {
	db *gorm.DB
}

func NewLinkAttemptRepository(db *gorm.DB) LinkAttemptRepository {
	return &linkAttemptRepository{db: db}
}

// Create inserts the binding. The (quiz_link_id, student_id) unique index is
// the single-use gate; callers translate gorm.ErrDuplicatedKey into the
// AlreadyAttempted taxonomy.
func (r *linkAttemptRepository) Create(attempt *model.QuizLinkAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *linkAttemptRepository) FindByLinkAndStudent(linkID, studentID uint) (*model.QuizLinkAttempt, error) {
	var attempt model.QuizLinkAttempt
	err := r.db.Where("quiz_link_id = ? AND student_id = ?", linkID, studentID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *linkAttemptRepository) CountByStudentAndQuiz(studentID, quizID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.QuizLinkAttempt{}).
		Where("student_id = ? AND quiz_id = ?", studentID, quizID).
		Count(&count).Error
	return count, err
}

// AttachAttempt sets the weak Attempt reference once the student's real
// attempt completes. Best-effort from the caller's point of view.
func (r *linkAttemptRepository) AttachAttempt(linkAttemptID, attemptID uint) error {
	return r.db.Model(&model.QuizLinkAttempt{}).Where("id = ?", linkAttemptID).
		Update("attempt_id", attemptID).Error
}
