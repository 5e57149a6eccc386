package config

import (
	"log"
	"os"

	"caelo-backend/internal/adapters/persistence/models"
	"caelo-backend/internal/core/domain"
	"caelo-backend/internal/pkg/password"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedAdminUser(); err != nil {
		log.Printf("⚠️ Admin seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedAdminUser seeds the bootstrap admin account. Development only;
// production admins are created through a secure process.
func (s *Seeder) seedAdminUser() error {
	if s.cfg.IsProd() {
		return nil
	}

	// Check if an admin already exists
	var count int64
	s.db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return nil
	}

	plaintext := os.Getenv("SEED_ADMIN_PASSWORD")
	if plaintext == "" {
		plaintext = "Admin12345"
	}

	hasher := password.NewHasher(s.cfg.Bcrypt.Cost)
	hash, err := hasher.Hash(plaintext)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        "admin@withcaelo.ai",
		PasswordHash: hash,
		Name:         "Platform Admin",
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Printf("✅ Admin user created: %s", admin.Email)
	return nil
}
