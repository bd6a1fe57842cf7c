package repositories

import (
	"context"

	"github.com/medregister-pl/asset-register/pkg/register/models"
	"gorm.io/gorm"
)

type HistoryRepository interface {
	GetHistory(ctx context.Context) ([]models.History, error)
	Save(ctx context.Context, entry *models.History) error
	Count(ctx context.Context) (int64, error)
}

type historyRepository struct {
	db *gorm.DB
}

func NewHistoryRepository(db *gorm.DB) HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) GetHistory(ctx context.Context) ([]models.History, error) {
	var entries []models.History
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Hospital").
		Order("date DESC").
		Find(&entries).Error
	return entries, err
}

func (r *historyRepository) Save(ctx context.Context, entry *models.History) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *historyRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.History{}).Count(&n).Error
	return n, err
}
