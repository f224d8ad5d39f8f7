package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/dvcruz/progtrack/internal/models"
	"github.com/dvcruz/progtrack/pkg/crypto"
)

// AutoMigrate creates or updates the database schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Campus{},
		&models.College{},
		&models.User{},
		&models.TechTransfer{},
		&models.Award{},
		&models.Engagement{},
		&models.Modality{},
		&models.ImpactAssessment{},
		&models.Resolution{},
		&models.IntlPartner{},
		&models.AuditEntry{},
	)
}

// DefaultAdminEmail identifies the seeded administrator account.
const DefaultAdminEmail = "admin@progtrack.local"

// SeedData provisions the initial campus, college, and administrator account
// so a fresh deployment is usable immediately.
func SeedData(db *gorm.DB) error {
	if db == nil {
		return errors.New("nil database handle")
	}

	campus := models.Campus{Name: "Main Campus", Location: "Main"}
	if err := db.Where(models.Campus{Name: campus.Name}).Attrs(campus).FirstOrCreate(&campus).Error; err != nil {
		return err
	}

	college := models.College{Name: "Extension Services Office", Code: "ESO", CampusID: campus.ID}
	if err := db.Where(models.College{Code: college.Code}).Attrs(college).FirstOrCreate(&college).Error; err != nil {
		return err
	}

	var count int64
	if err := db.Model(&models.User{}).Where("email = ?", DefaultAdminEmail).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := crypto.HashPassword("changeme")
	if err != nil {
		return err
	}

	admin := models.User{
		FirstName: "System",
		LastName:  "Administrator",
		Email:     DefaultAdminEmail,
		Password:  hashed,
		Role:      models.RoleAdmin,
		CollegeID: &college.ID,
		IsActive:  true,
	}
	return db.Create(&admin).Error
}
