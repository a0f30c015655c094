package store

import (
	"errors"
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when no stored request matches the given id.
var ErrNotFound = errors.New("weather request not found")

// Database is the sqlite-backed store for weather requests.
type Database struct {
	db *gorm.DB
}

func NewDatabase(path string) (*Database, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&WeatherRequest{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Database{db: db}, nil
}

func (d *Database) Create(req *WeatherRequest) error {
	return d.db.Create(req).Error
}

func (d *Database) Get(id string) (*WeatherRequest, error) {
	var req WeatherRequest
	result := d.db.First(&req, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, result.Error
	}
	return &req, nil
}

// List returns all stored requests, newest first.
func (d *Database) List() ([]WeatherRequest, error) {
	var reqs []WeatherRequest
	result := d.db.Order("created_at desc").Find(&reqs)
	if result.Error != nil {
		return nil, result.Error
	}
	return reqs, nil
}

func (d *Database) Update(req *WeatherRequest) error {
	return d.db.Save(req).Error
}

func (d *Database) Delete(id string) error {
	result := d.db.Delete(&WeatherRequest{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
