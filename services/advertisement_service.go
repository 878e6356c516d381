package services

import (
	"strings"

	"blog-api/models"
	"blog-api/policy"
	"blog-api/repositories"
	"blog-api/slug"
)

type AdvertisementService interface {
	Running() ([]models.Advertisement, error)
	List(actor *models.Actor, params models.PageParams) ([]models.Advertisement, int64, error)
	Create(actor *models.Actor, req models.CreateAdvertisementRequest) (*models.Advertisement, error)
	Update(actor *models.Actor, id uint, req models.UpdateAdvertisementRequest) (*models.Advertisement, error)
	Delete(actor *models.Actor, id uint) error
}

type advertisementService struct {
	adRepo repositories.AdvertisementRepository
	policy *policy.Policy
	now    Clock
}

func NewAdvertisementService(adRepo repositories.AdvertisementRepository, p *policy.Policy, clock Clock) AdvertisementService {
	return &advertisementService{adRepo: adRepo, policy: p, now: defaultClock(clock)}
}

func (s *advertisementService) Running() ([]models.Advertisement, error) {
	return s.adRepo.ListRunning(s.now())
}

func (s *advertisementService) List(actor *models.Actor, params models.PageParams) ([]models.Advertisement, int64, error) {
	if err := s.policy.Authorize(actor, policy.ResourceAdvertisement, policy.ActionList, 0); err != nil {
		return nil, 0, err
	}
	params.Normalize(models.AdPageSize)
	return s.adRepo.List(params)
}

func validateSchedule(ad *models.Advertisement) error {
	if !ad.EndDate.After(ad.StartDate) {
		return models.NewValidationError("end_date", "End date must be after start date.")
	}
	return nil
}

func (s *advertisementService) Create(actor *models.Actor, req models.CreateAdvertisementRequest) (*models.Advertisement, error) {
	if err := s.policy.Authorize(actor, policy.ResourceAdvertisement, policy.ActionCreate, 0); err != nil {
		return nil, err
	}

	ad := &models.Advertisement{
		Title:     strings.TrimSpace(req.Title),
		Image:     req.Image,
		URL:       req.URL,
		StartDate: s.now(),
		EndDate:   req.EndDate,
		IsActive:  boolValue(req.IsActive, true),
	}
	if req.StartDate != nil {
		ad.StartDate = *req.StartDate
	}
	if err := validateSchedule(ad); err != nil {
		return nil, err
	}

	if err := s.adRepo.Create(ad, slug.Base(ad.Title, "advertisement")); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *advertisementService) Update(actor *models.Actor, id uint, req models.UpdateAdvertisementRequest) (*models.Advertisement, error) {
	if err := s.policy.Authorize(actor, policy.ResourceAdvertisement, policy.ActionUpdate, 0); err != nil {
		return nil, err
	}

	ad, err := s.adRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Advertisement")
	}

	if req.Title != nil {
		ad.Title = strings.TrimSpace(*req.Title)
	}
	if req.Image != nil {
		ad.Image = *req.Image
	}
	if req.URL != nil {
		ad.URL = *req.URL
	}
	if req.StartDate != nil {
		ad.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		ad.EndDate = *req.EndDate
	}
	if req.IsActive != nil {
		ad.IsActive = *req.IsActive
	}
	if err := validateSchedule(ad); err != nil {
		return nil, err
	}

	if err := s.adRepo.Update(ad); err != nil {
		return nil, err
	}
	return ad, nil
}

func (s *advertisementService) Delete(actor *models.Actor, id uint) error {
	if err := s.policy.Authorize(actor, policy.ResourceAdvertisement, policy.ActionDelete, 0); err != nil {
		return err
	}
	return notFound(s.adRepo.Delete(id), "Advertisement")
}
