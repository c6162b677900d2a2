package repository

import (
	"errors"

	"weighbridge/internal/models"

	"gorm.io/gorm"
)

type DriverRepository interface {
	List() ([]models.Driver, error)
	FindByName(name string) (*models.Driver, error)
	Create(driver *models.Driver) error
	UpdatePhone(id uint, phone *string) error
}

type driverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) List() ([]models.Driver, error) {
	drivers := make([]models.Driver, 0)
	err := r.db.Order("name ASC").Find(&drivers).Error
	return drivers, err
}

// FindByName matches case-insensitively. Returns (nil, nil) on no match.
func (r *driverRepository) FindByName(name string) (*models.Driver, error) {
	var driver models.Driver
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&driver).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &driver, nil
}

func (r *driverRepository) Create(driver *models.Driver) error {
	return r.db.Create(driver).Error
}

func (r *driverRepository) UpdatePhone(id uint, phone *string) error {
	return r.db.Model(&models.Driver{}).Where("id = ?", id).Update("phone", phone).Error
}
