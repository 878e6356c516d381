package services

import (
	"strings"

	"blog-api/models"
	"blog-api/policy"
	"blog-api/repositories"
	"blog-api/slug"
)

const tagExists = "tag with this name already exists."

type TagService interface {
	Create(actor *models.Actor, req models.CreateTagRequest) (*models.Tag, error)
	List(params models.TaxonomyListParams) ([]models.Tag, int64, error)
	ListActive() ([]models.Tag, error)
	Get(id uint) (*models.Tag, error)
	Update(actor *models.Actor, id uint, req models.UpdateTagRequest) (*models.Tag, error)
	Delete(actor *models.Actor, id uint) error
}

type tagService struct {
	tagRepo repositories.TagRepository
	policy  *policy.Policy
}

func NewTagService(tagRepo repositories.TagRepository, p *policy.Policy) TagService {
	return &tagService{tagRepo: tagRepo, policy: p}
}

func (s *tagService) Create(actor *models.Actor, req models.CreateTagRequest) (*models.Tag, error) {
	if err := s.policy.Authorize(actor, policy.ResourceTag, policy.ActionCreate, 0); err != nil {
		return nil, err
	}

	name := req.Name
	if err := s.checkName(name, 0); err != nil {
		return nil, err
	}

	tag := &models.Tag{
		Name:     name,
		IsActive: boolValue(req.IsActive, true),
	}
	if err := s.tagRepo.Create(tag, slug.Base(name, "tag")); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.NewValidationError("name", tagExists)
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) checkName(name string, excludeID uint) error {
	if strings.TrimSpace(name) == "" {
		return models.NewValidationError("name", "This field may not be blank.")
	}
	taken, err := s.tagRepo.ExistsByName(name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return models.NewValidationError("name", tagExists)
	}
	return nil
}

func (s *tagService) List(params models.TaxonomyListParams) ([]models.Tag, int64, error) {
	params.Normalize(models.TagPageSize)
	return s.tagRepo.List(params)
}

func (s *tagService) ListActive() ([]models.Tag, error) {
	return s.tagRepo.ListActive()
}

func (s *tagService) Get(id uint) (*models.Tag, error) {
	tag, err := s.tagRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Tag")
	}
	return tag, nil
}

func (s *tagService) Update(actor *models.Actor, id uint, req models.UpdateTagRequest) (*models.Tag, error) {
	if err := s.policy.Authorize(actor, policy.ResourceTag, policy.ActionUpdate, 0); err != nil {
		return nil, err
	}

	tag, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := *req.Name
		if err := s.checkName(name, tag.ID); err != nil {
			return nil, err
		}
		tag.Name = name
	}
	if req.IsActive != nil {
		tag.IsActive = *req.IsActive
	}

	if err := s.tagRepo.Update(tag); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.NewValidationError("name", tagExists)
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Delete(actor *models.Actor, id uint) error {
	if err := s.policy.Authorize(actor, policy.ResourceTag, policy.ActionDelete, 0); err != nil {
		return err
	}
	return notFound(s.tagRepo.Delete(id), "Tag")
}
