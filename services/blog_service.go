package services

import (
	"fmt"
	"strings"

	"blog-api/models"
	"blog-api/policy"
	"blog-api/repositories"
	"blog-api/slug"

	"github.com/rs/zerolog/log"
)

const (
	featuredLimit = 3
	blogExists    = "blog with this title already exists."
)

type BlogService interface {
	Create(actor *models.Actor, req models.CreateBlogRequest) (*models.BlogResponse, error)
	List(actor *models.Actor, params models.BlogListParams) ([]models.BlogResponse, int64, error)
	Get(actor *models.Actor, id uint) (*models.BlogResponse, error)
	Update(actor *models.Actor, id uint, req models.UpdateBlogRequest) (*models.BlogResponse, error)
	SetPublished(actor *models.Actor, id uint, req models.PublishRequest) (*models.BlogResponse, error)
	Delete(actor *models.Actor, id uint) error
	Featured() ([]models.BlogResponse, error)
}

type blogService struct {
	blogRepo     repositories.BlogRepository
	categoryRepo repositories.CategoryRepository
	tagRepo      repositories.TagRepository
	policy       *policy.Policy
	now          Clock
}

func NewBlogService(
	blogRepo repositories.BlogRepository,
	categoryRepo repositories.CategoryRepository,
	tagRepo repositories.TagRepository,
	p *policy.Policy,
	clock Clock,
) BlogService {
	return &blogService{
		blogRepo:     blogRepo,
		categoryRepo: categoryRepo,
		tagRepo:      tagRepo,
		policy:       p,
		now:          defaultClock(clock),
	}
}

// CanView reports whether actor may see blog: published and active blogs are
// public, authors also see their own drafts, admins see everything.
func CanView(actor *models.Actor, blog *models.Blog) bool {
	return blog.Visible() || actor.IsAdmin() || (actor.Owns(blog.AuthorID) && actor.Role == models.RoleAuthor)
}

// visibilityFilter narrows a listing to what actor may see.
func visibilityFilter(actor *models.Actor, filter models.BlogFilter) models.BlogFilter {
	switch {
	case actor.IsAdmin():
	case actor.Authenticated() && actor.Role == models.RoleAuthor:
		filter.VisibleOrOwns = actor.ID
	default:
		filter.OnlyVisible = true
	}
	return filter
}

func (s *blogService) authorizePublish(actor *models.Actor, blog *models.Blog) error {
	if s.policy.CanOnObject(actor.Role, policy.ResourceBlog, policy.ActionPublish, actor.Owns(blog.AuthorID)) {
		return nil
	}
	return models.ErrorForbidden{Message: "You do not have permission to change the publish status of this blog"}
}

func (s *blogService) Create(actor *models.Actor, req models.CreateBlogRequest) (*models.BlogResponse, error) {
	if err := s.policy.Authorize(actor, policy.ResourceBlog, policy.ActionCreate, 0); err != nil {
		return nil, err
	}

	blog := &models.Blog{
		Title:      req.Title,
		AuthorID:   actor.ID,
		CategoryID: req.CategoryID,
		Content:    req.Content,
		Image:      req.Image,
		IsActive:   true,
		IsFeatured: req.IsFeatured,
	}
	if blog.CategoryID != nil && *blog.CategoryID == 0 {
		blog.CategoryID = nil
	}

	if req.IsPublished {
		if err := s.authorizePublish(actor, blog); err != nil {
			return nil, err
		}
	}
	blog.SetPublished(req.IsPublished, s.now())

	if err := s.validate(blog, req.TagIDs); err != nil {
		return nil, err
	}

	if err := s.blogRepo.Create(blog, slug.Base(blog.Title, "blog"), req.TagIDs); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.NewValidationError("title", blogExists)
		}
		return nil, err
	}

	log.Info().Uint("blog_id", blog.ID).Str("slug", blog.Slug).Uint("author_id", actor.ID).Msg("blog created")
	return s.load(blog.ID)
}

// validate checks the title is free and that referenced category and tags
// exist.
func (s *blogService) validate(blog *models.Blog, tagIDs []uint) error {
	verr := models.ErrorValidation{}

	if strings.TrimSpace(blog.Title) == "" {
		verr = verr.Add("title", "This field may not be blank.")
	} else if taken, err := s.blogRepo.ExistsByTitle(blog.Title, blog.ID); err != nil {
		return err
	} else if taken {
		verr = verr.Add("title", blogExists)
	}

	if blog.CategoryID != nil {
		if _, err := s.categoryRepo.GetByID(*blog.CategoryID); err != nil {
			if !repositories.IsNotFound(err) {
				return err
			}
			verr = verr.Add("category_id", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *blog.CategoryID))
		}
	}

	if len(tagIDs) > 0 {
		tags, err := s.tagRepo.GetByIDs(tagIDs)
		if err != nil {
			return err
		}
		found := make(map[uint]struct{}, len(tags))
		for _, t := range tags {
			found[t.ID] = struct{}{}
		}
		for _, id := range tagIDs {
			if _, ok := found[id]; !ok {
				verr = verr.Add("tag_ids", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", id))
			}
		}
	}

	if !verr.Empty() {
		return verr
	}
	return nil
}

func (s *blogService) load(id uint) (*models.BlogResponse, error) {
	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Blog")
	}
	res := models.NewBlogResponse(blog)
	return &res, nil
}

func (s *blogService) List(actor *models.Actor, params models.BlogListParams) ([]models.BlogResponse, int64, error) {
	params.Normalize(models.BlogPageSize)

	filter := visibilityFilter(actor, models.BlogFilter{
		Search:      strings.TrimSpace(params.Search),
		CategoryID:  params.Category,
		TagID:       params.Tag,
		AuthorID:    params.Author,
		IsPublished: params.IsPublished,
	})

	blogs, total, err := s.blogRepo.List(filter, params.PageParams)
	if err != nil {
		return nil, 0, err
	}

	results := make([]models.BlogResponse, 0, len(blogs))
	for i := range blogs {
		results = append(results, models.NewBlogResponse(&blogs[i]))
	}
	return results, total, nil
}

func (s *blogService) Get(actor *models.Actor, id uint) (*models.BlogResponse, error) {
	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Blog")
	}
	if !CanView(actor, blog) {
		return nil, models.ErrorNotFound{Message: "Blog not found"}
	}
	res := models.NewBlogResponse(blog)
	return &res, nil
}

func (s *blogService) Update(actor *models.Actor, id uint, req models.UpdateBlogRequest) (*models.BlogResponse, error) {
	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Blog")
	}
	if err := s.policy.Authorize(actor, policy.ResourceBlog, policy.ActionUpdate, blog.AuthorID); err != nil {
		return nil, err
	}

	if req.IsPublished != nil && *req.IsPublished != blog.IsPublished {
		if err := s.authorizePublish(actor, blog); err != nil {
			return nil, err
		}
		blog.SetPublished(*req.IsPublished, s.now())
	}

	if req.Title != nil {
		blog.Title = *req.Title
	}
	if req.Content != nil {
		blog.Content = *req.Content
	}
	if req.Image != nil {
		blog.Image = *req.Image
	}
	if req.IsFeatured != nil {
		blog.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		blog.IsActive = *req.IsActive
	}
	if req.CategoryID != nil {
		blog.Category = nil
		if *req.CategoryID == 0 {
			blog.CategoryID = nil
		} else {
			categoryID := *req.CategoryID
			blog.CategoryID = &categoryID
		}
	}

	var tagIDs []uint
	if req.TagIDs != nil {
		tagIDs = *req.TagIDs
	}
	if err := s.validate(blog, tagIDs); err != nil {
		return nil, err
	}

	if err := s.blogRepo.Update(blog, req.TagIDs); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.NewValidationError("title", blogExists)
		}
		return nil, err
	}
	return s.load(blog.ID)
}

// SetPublished drives the draft/published state machine. An omitted
// is_published toggles the current state.
func (s *blogService) SetPublished(actor *models.Actor, id uint, req models.PublishRequest) (*models.BlogResponse, error) {
	if err := requireAuth(actor); err != nil {
		return nil, err
	}

	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Blog")
	}
	if err := s.authorizePublish(actor, blog); err != nil {
		return nil, err
	}

	blog.SetPublished(boolValue(req.IsPublished, !blog.IsPublished), s.now())
	if err := s.blogRepo.Update(blog, nil); err != nil {
		return nil, err
	}

	log.Info().Uint("blog_id", blog.ID).Bool("is_published", blog.IsPublished).Uint("by", actor.ID).Msg("blog publish state changed")
	res := models.NewBlogResponse(blog)
	return &res, nil
}

func (s *blogService) Delete(actor *models.Actor, id uint) error {
	blog, err := s.blogRepo.GetByID(id)
	if err != nil {
		return notFound(err, "Blog")
	}
	if err := s.policy.Authorize(actor, policy.ResourceBlog, policy.ActionDelete, blog.AuthorID); err != nil {
		return err
	}
	return notFound(s.blogRepo.Delete(id), "Blog")
}

func (s *blogService) Featured() ([]models.BlogResponse, error) {
	blogs, err := s.blogRepo.Featured(featuredLimit)
	if err != nil {
		return nil, err
	}

	results := make([]models.BlogResponse, 0, len(blogs))
	for i := range blogs {
		results = append(results, models.NewBlogResponse(&blogs[i]))
	}
	return results, nil
}
