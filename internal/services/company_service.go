package services

import (
	"weighbridge/internal/cache"
	"weighbridge/internal/models"
	"weighbridge/internal/repository"

	log "github.com/sirupsen/logrus"
)

type CompanyService interface {
	List() ([]models.Company, error)
	Upsert(name string, address *string) (*models.Company, error)
}

type companyService struct {
	repo  repository.CompanyRepository
	cache *cache.Client
}

func NewCompanyService(repo repository.CompanyRepository, cacheClient *cache.Client) CompanyService {
	return &companyService{repo: repo, cache: cacheClient}
}

func (s *companyService) List() ([]models.Company, error) {
	var companies []models.Company
	if err := s.cache.GetJSON(cache.CompaniesKey, &companies); err == nil {
		return companies, nil
	}

	companies, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(cache.CompaniesKey, companies); err != nil {
		log.WithError(err).Warn("failed to cache company listing")
	}
	return companies, nil
}

// Upsert finds the company by name (case-insensitive) and refreshes its
// address, or creates it when unknown.
func (s *companyService) Upsert(name string, address *string) (*models.Company, error) {
	existing, err := s.repo.FindByName(name)
	if err != nil {
		return nil, err
	}

	var company *models.Company
	if existing != nil {
		if err := s.repo.UpdateAddress(existing.ID, address); err != nil {
			return nil, err
		}
		existing.Address = address
		company = existing
	} else {
		company = &models.Company{Name: name, Address: address}
		if err := s.repo.Create(company); err != nil {
			return nil, err
		}
	}

	if err := s.cache.Invalidate(cache.CompaniesKey); err != nil {
		log.WithError(err).Warn("failed to invalidate company listing cache")
	}
	return company, nil
}
