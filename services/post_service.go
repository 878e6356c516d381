package services

import (
	"strings"

	"blog-api/markdown"
	"blog-api/models"
	"blog-api/repositories"

	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog/log"
)

// PostService is the public read side: published, active blogs with their
// engagement numbers.
type PostService interface {
	List(params models.BlogListParams) ([]models.PostResponse, int64, error)
	Detail(actor *models.Actor, slug, ip string) (*models.PostDetailResponse, error)
}

type postService struct {
	blogRepo     repositories.BlogRepository
	commentRepo  repositories.CommentRepository
	reactionRepo repositories.ReactionRepository
	views        ViewService
	now          Clock
}

func NewPostService(
	blogRepo repositories.BlogRepository,
	commentRepo repositories.CommentRepository,
	reactionRepo repositories.ReactionRepository,
	views ViewService,
	clock Clock,
) PostService {
	return &postService{
		blogRepo:     blogRepo,
		commentRepo:  commentRepo,
		reactionRepo: reactionRepo,
		views:        views,
		now:          defaultClock(clock),
	}
}

func (s *postService) List(params models.BlogListParams) ([]models.PostResponse, int64, error) {
	params.Normalize(models.BlogPageSize)

	filter := models.BlogFilter{
		Search:      strings.TrimSpace(params.Search),
		CategoryID:  params.Category,
		TagID:       params.Tag,
		AuthorID:    params.Author,
		OnlyVisible: true,
	}
	blogs, total, err := s.blogRepo.List(filter, params.PageParams)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uint, len(blogs))
	for i := range blogs {
		ids[i] = blogs[i].ID
	}
	engagement, err := s.blogRepo.Engagement(ids)
	if err != nil {
		return nil, 0, err
	}

	results := make([]models.PostResponse, 0, len(blogs))
	for i := range blogs {
		results = append(results, models.PostResponse{
			BlogResponse:   models.NewBlogResponse(&blogs[i]),
			BlogEngagement: *engagement[blogs[i].ID],
		})
	}
	return results, total, nil
}

// Detail records the view before reading the counters so the response
// includes it.
func (s *postService) Detail(actor *models.Actor, slug, ip string) (*models.PostDetailResponse, error) {
	blog, err := s.blogRepo.GetBySlug(slug)
	if err != nil {
		return nil, notFound(err, "Post")
	}
	if !blog.Visible() {
		return nil, models.ErrorNotFound{Message: "Post not found"}
	}

	s.views.Record(actor, blog.ID, ip)

	engagement, err := s.blogRepo.Engagement([]uint{blog.ID})
	if err != nil {
		return nil, err
	}

	rows, err := s.commentRepo.ListByBlog(blog.ID)
	if err != nil {
		return nil, err
	}

	html, err := markdown.ToHTML(blog.Content)
	if err != nil {
		log.Warn().Err(err).Uint("blog_id", blog.ID).Msg("markdown render failed")
		html = ""
	}

	res := &models.PostDetailResponse{
		PostResponse: models.PostResponse{
			BlogResponse:   models.NewBlogResponse(blog),
			BlogEngagement: *engagement[blog.ID],
		},
		ContentHTML: html,
		Comments:    BuildCommentTree(rows),
	}

	if blog.PublishedAt != nil {
		since := humanize.RelTime(*blog.PublishedAt, s.now(), "ago", "from now")
		res.TimeSincePublished = &since
	}

	if actor.Authenticated() {
		reaction, err := s.reactionRepo.GetForUser(blog.ID, actor.ID)
		switch {
		case err == nil:
			res.UserReaction = &reaction.Type
		case !repositories.IsNotFound(err):
			return nil, err
		}
	}

	return res, nil
}
