package services

import (
	"weighbridge/internal/cache"
	"weighbridge/internal/models"
	"weighbridge/internal/repository"

	log "github.com/sirupsen/logrus"
)

type DriverService interface {
	List() ([]models.Driver, error)
	Upsert(name string, phone *string) (*models.Driver, error)
}

type driverService struct {
	repo  repository.DriverRepository
	cache *cache.Client
}

func NewDriverService(repo repository.DriverRepository, cacheClient *cache.Client) DriverService {
	return &driverService{repo: repo, cache: cacheClient}
}

func (s *driverService) List() ([]models.Driver, error) {
	var drivers []models.Driver
	if err := s.cache.GetJSON(cache.DriversKey, &drivers); err == nil {
		return drivers, nil
	}

	drivers, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	if err := s.cache.SetJSON(cache.DriversKey, drivers); err != nil {
		log.WithError(err).Warn("failed to cache driver listing")
	}
	return drivers, nil
}

// Upsert finds the driver by name (case-insensitive) and refreshes the
// phone, or creates the driver when unknown.
func (s *driverService) Upsert(name string, phone *string) (*models.Driver, error) {
	existing, err := s.repo.FindByName(name)
	if err != nil {
		return nil, err
	}

	var driver *models.Driver
	if existing != nil {
		if err := s.repo.UpdatePhone(existing.ID, phone); err != nil {
			return nil, err
		}
		existing.Phone = phone
		driver = existing
	} else {
		driver = &models.Driver{Name: name, Phone: phone}
		if err := s.repo.Create(driver); err != nil {
			return nil, err
		}
	}

	if err := s.cache.Invalidate(cache.DriversKey); err != nil {
		log.WithError(err).Warn("failed to invalidate driver listing cache")
	}
	return driver, nil
}
