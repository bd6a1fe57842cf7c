package repositories

import (
	"context"
	"errors"

	"github.com/medregister-pl/asset-register/pkg/register/models"
	"gorm.io/gorm"
)

type HospitalRepository interface {
	GetHospitals(ctx context.Context) ([]models.Hospital, error)
	GetHospitalByID(ctx context.Context, id uint) (*models.Hospital, error)
	FindByName(ctx context.Context, name string) (*models.Hospital, error)
	Save(ctx context.Context, hospital *models.Hospital) error
	Update(ctx context.Context, hospital *models.Hospital) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type hospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepository(db *gorm.DB) HospitalRepository {
	return &hospitalRepository{db: db}
}

func (r *hospitalRepository) GetHospitals(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := r.db.WithContext(ctx).Order("name").Find(&hospitals).Error
	return hospitals, err
}

func (r *hospitalRepository) GetHospitalByID(ctx context.Context, id uint) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.WithContext(ctx).First(&hospital, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) FindByName(ctx context.Context, name string) (*models.Hospital, error) {
	var hospital models.Hospital
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&hospital).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) Save(ctx context.Context, hospital *models.Hospital) error {
	return r.db.WithContext(ctx).Create(hospital).Error
}

func (r *hospitalRepository) Update(ctx context.Context, hospital *models.Hospital) error {
	return r.db.WithContext(ctx).Save(hospital).Error
}

func (r *hospitalRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Hospital{}, id).Error
}

func (r *hospitalRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Hospital{}).Count(&n).Error
	return n, err
}
