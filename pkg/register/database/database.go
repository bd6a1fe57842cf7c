package database

import (
	"context"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/medregister-pl/asset-register/pkg/register/helpers/password"
	"github.com/medregister-pl/asset-register/pkg/register/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect(connStr string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(connStr), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(&models.Role{}, &models.Hospital{}, &models.User{}, &models.History{}); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return db, nil
}

// Seed creates the default roles and the initial admin account when they are
// missing. Runs only when SEED_ADMIN_PASSWORD is set.
func Seed(ctx context.Context, db *gorm.DB, adminPassword string) error {
	for _, name := range []string{"Administrator", "Pracownik"} {
		var role models.Role
		err := db.WithContext(ctx).Where("name = ?", name).FirstOrCreate(&role, models.Role{Name: name}).Error
		if err != nil {
			return fmt.Errorf("seed role %s: %w", name, err)
		}
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("name = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var adminRole models.Role
	if err := db.WithContext(ctx).Where("name = ?", "Administrator").First(&adminRole).Error; err != nil {
		return err
	}
	hashed, err := password.Hash(adminPassword)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:     "admin",
		Password: hashed,
		Email:    "admin@localhost",
		IsActive: true,
		RoleID:   &adminRole.ID,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}
