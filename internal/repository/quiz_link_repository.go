package repository

import (
	"time"

	"quizlink/internal/model"

	"gorm.io/gorm"
)

type QuizLinkRepository interface {
	Create(link *model.QuizLink) error
	FindByToken(token string) (*model.QuizLink, error)
	FindByQuizID(quizID uint) ([]model.QuizLink, error)
	TouchLastAccessed(id uint) error
	IncrementUsage(id uint) error
	Deactivate(id uint) (bool, error)
}

type quizLinkRepository struct {
	db *gorm.DB
}

func NewQuizLinkRepository(db *gorm.DB) QuizLinkRepository {
	return &quizLinkRepository{db: db}
}

func (r *quizLinkRepository) Create(link *model.QuizLink) error {
	return r.db.Create(link).Error
}

func (r *quizLinkRepository) FindByToken(token string) (*model.QuizLink, error) {
	var link model.QuizLink
	if err := r.db.Where("token = ?", token).First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

func (r *quizLinkRepository) FindByQuizID(quizID uint) ([]model.QuizLink, error) {
	var links []model.QuizLink
	err := r.db.Where("quiz_id = ?", quizID).Order("created_at ASC").Find(&links).Error
	return links, err
}

func (r *quizLinkRepository) TouchLastAccessed(id uint) error {
	return r.db.Model(&model.QuizLink{}).Where("id = ?", id).
		Update("last_accessed_at", time.Now()).Error
}

// IncrementUsage bumps used_count with a storage-native increment so
// concurrent registrations never lose updates.
func (r *quizLinkRepository) IncrementUsage(id uint) error {
	return r.db.Model(&model.QuizLink{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"used_count":       gorm.Expr("used_count + 1"),
			"last_accessed_at": time.Now(),
		}).Error
}

// Deactivate retires a link without deleting it; history under the link stays
// intact. Returns false when no link matched.
func (r *quizLinkRepository) Deactivate(id uint) (bool, error) {
	res := r.db.Model(&model.QuizLink{}).Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
