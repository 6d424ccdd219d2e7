package repository

import (
	"quizlink/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ResponseRepository interface {
	Upsert(response *model.Response) error
	FindByAttemptID(attemptID uint) ([]model.Response, error)
	CountCorrect(attemptID uint) (int64, error)
}

type responseRepository struct {
	db *gorm.DB
}

func NewResponseRepository(db *gorm.DB) ResponseRepository {
	return &responseRepository{db: db}
}

// Upsert is create-or-replace on (attempt_id, question_id). Simultaneous saves
// for the same question resolve at the storage layer as last-write-wins.
func (r *responseRepository) Upsert(response *model.Response) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"selected_answer", "is_correct", "time_spent", "answered_at",
		}),
	}).Create(response).Error
}

func (r *responseRepository) FindByAttemptID(attemptID uint) ([]model.Response, error) {
	var responses []model.Response
	err := r.db.Where("attempt_id = ?", attemptID).
		Order("question_id ASC").Find(&responses).Error
	return responses, err
}

func (r *responseRepository) CountCorrect(attemptID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.Response{}).
		Where("attempt_id = ? AND is_correct = ?", attemptID, true).
		Count(&count).Error
	return count, err
}
