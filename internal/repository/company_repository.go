package repository

import (
	"errors"

	"weighbridge/internal/models"

	"gorm.io/gorm"
)

type CompanyRepository interface {
	List() ([]models.Company, error)
	FindByName(name string) (*models.Company, error)
	Create(company *models.Company) error
	UpdateAddress(id uint, address *string) error
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

func (r *companyRepository) List() ([]models.Company, error) {
	companies := make([]models.Company, 0)
	err := r.db.Order("name ASC").Find(&companies).Error
	return companies, err
}

// FindByName matches case-insensitively: "Acme Co" and "acme co" are the
// same company. Returns (nil, nil) when no row matches.
func (r *companyRepository) FindByName(name string) (*models.Company, error) {
	var company models.Company
	err := r.db.Where("LOWER(name) = LOWER(?)", name).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *companyRepository) Create(company *models.Company) error {
	return r.db.Create(company).Error
}

func (r *companyRepository) UpdateAddress(id uint, address *string) error {
	return r.db.Model(&models.Company{}).Where("id = ?", id).Update("address", address).Error
}
