package config

import (
	"fmt"
	"os"

	"github.com/kelechieze/rentwheels/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
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

type PaystackConfig struct {
	SecretKey   string
	BaseURL     string
	CallbackURL string
}

func LoadPaystackConfig() (*PaystackConfig, error) {
	cfg := &PaystackConfig{
		SecretKey:   os.Getenv("PAYSTACK_SECRET_KEY"),
		BaseURL:     os.Getenv("PAYSTACK_BASE_URL"),
		CallbackURL: os.Getenv("PAYSTACK_CALLBACK_URL"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.paystack.co"
	}
	return cfg, nil
}

func enableUUIDExtension(db *gorm.DB) error {
	return db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\"").Error
}

func InitDatabase(cfg *Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := enableUUIDExtension(db); err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&models.Role{},
		&models.User{},
		&models.Car{},
		&models.Driver{},
		&models.Discount{},
		&models.Booking{},
		&models.WalletTransaction{},
		&models.RewardTransaction{},
		&models.Review{},
	)
	if err != nil {
		return nil, err
	}

	seedRoles(db)

	return db, nil
}

func seedRoles(db *gorm.DB) {
	roles := []models.Role{
		{Name: models.RoleCustomer},
		{Name: models.RoleVendor},
		{Name: models.RoleAdmin},
	}

	for _, role := range roles {
		var existingRole models.Role
		result := db.Where("name = ?", role.Name).First(&existingRole)
		if result.Error != nil {
			db.Create(&role)
		}
	}
}
