package services

import (
	"strings"

	"blog-api/models"
	"blog-api/policy"
	"blog-api/repositories"
	"blog-api/slug"
)

const categoryExists = "category with this name already exists."

type CategoryService interface {
	Create(actor *models.Actor, req models.CreateCategoryRequest) (*models.Category, error)
	List(params models.TaxonomyListParams) ([]models.Category, int64, error)
	ListActive() ([]models.Category, error)
	Get(id uint) (*models.Category, error)
	Update(actor *models.Actor, id uint, req models.UpdateCategoryRequest) (*models.Category, error)
	Delete(actor *models.Actor, id uint) error
}

type categoryService struct {
	categoryRepo repositories.CategoryRepository
	policy       *policy.Policy
}

func NewCategoryService(categoryRepo repositories.CategoryRepository, p *policy.Policy) CategoryService {
	return &categoryService{categoryRepo: categoryRepo, policy: p}
}

func (s *categoryService) Create(actor *models.Actor, req models.CreateCategoryRequest) (*models.Category, error) {
	if err := s.policy.Authorize(actor, policy.ResourceCategory, policy.ActionCreate, 0); err != nil {
		return nil, err
	}

	name := req.Name
	if err := s.checkName(name, 0); err != nil {
		return nil, err
	}

	category := &models.Category{
		Name:     name,
		IsActive: boolValue(req.IsActive, true),
	}
	if err := s.categoryRepo.Create(category, slug.Base(name, "category")); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.NewValidationError("name", categoryExists)
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) checkName(name string, excludeID uint) error {
	if strings.TrimSpace(name) == "" {
		return models.NewValidationError("name", "This field may not be blank.")
	}
	taken, err := s.categoryRepo.ExistsByName(name, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return models.NewValidationError("name", categoryExists)
	}
	return nil
}

func (s *categoryService) List(params models.TaxonomyListParams) ([]models.Category, int64, error) {
	params.Normalize(models.CategoryPageSize)
	return s.categoryRepo.List(params)
}

func (s *categoryService) ListActive() ([]models.Category, error) {
	return s.categoryRepo.ListActive()
}

func (s *categoryService) Get(id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Category")
	}
	return category, nil
}

// Update keeps the slug stable when the name changes so existing links keep
// working.
func (s *categoryService) Update(actor *models.Actor, id uint, req models.UpdateCategoryRequest) (*models.Category, error) {
	if err := s.policy.Authorize(actor, policy.ResourceCategory, policy.ActionUpdate, 0); err != nil {
		return nil, err
	}

	category, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := *req.Name
		if err := s.checkName(name, category.ID); err != nil {
			return nil, err
		}
		category.Name = name
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}

	if err := s.categoryRepo.Update(category); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.NewValidationError("name", categoryExists)
		}
		return nil, err
	}
	return category, nil
}

func (s *categoryService) Delete(actor *models.Actor, id uint) error {
	if err := s.policy.Authorize(actor, policy.ResourceCategory, policy.ActionDelete, 0); err != nil {
		return err
	}
	return notFound(s.categoryRepo.Delete(id), "Category")
}
