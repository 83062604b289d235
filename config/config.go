package config

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/gracechurch/server/internal/models"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
}

func LoadConfig() (*Config, error) {
	return &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
	}, nil
}

type SupabaseConfig struct {
	ProjectURL string
	ServiceKey string
	Bucket     string
}

func LoadSupabaseConfig() (*SupabaseConfig, error) {
	cfg := &SupabaseConfig{
		ProjectURL: os.Getenv("SUPABASE_URL"),
		ServiceKey: os.Getenv("SUPABASE_SERVICE_KEY"),
		Bucket:     os.Getenv("SUPABASE_BUCKET"),
	}
	if cfg.Bucket == "" {
		cfg.Bucket = "church-media"
	}
	return cfg, nil
}

type MailConfig struct {
	ResendAPIKey string
	From         string
}

func LoadMailConfig() (*MailConfig, error) {
	cfg := &MailConfig{
		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		From:         os.Getenv("EMAIL_FROM"),
	}
	if cfg.From == "" {
		cfg.From = "Grace Church <noreply@gracechurch.org>"
	}
	return cfg, nil
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Contact{},
		&models.Media{},
		&models.Donation{},
		&models.Event{},
		&models.Sermon{},
		&models.Activity{},
	)
	if err != nil {
		return nil, err
	}

	if err := seedOwner(db); err != nil {
		return nil, err
	}

	return db, nil
}

// seedOwner ensures the designated owner account exists. The email comes
// from OWNER_EMAIL and is the same one the controllers protect against
// deletion and demotion.
func seedOwner(db *gorm.DB) error {
	ownerEmail := os.Getenv("OWNER_EMAIL")
	if ownerEmail == "" {
		return nil
	}

	var existing models.User
	if result := db.Where("email = ?", ownerEmail).First(&existing); result.Error == nil {
		return nil
	}

	ownerPassword := os.Getenv("OWNER_PASSWORD")
	if ownerPassword == "" {
		return fmt.Errorf("OWNER_PASSWORD must be set to seed the owner account")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner := models.User{
		Name:     "Church Owner",
		Email:    ownerEmail,
		Password: string(hashedPassword),
		Role:     models.RoleOwner,
		Status:   models.UserActive,
	}
	return db.Create(&owner).Error
}
