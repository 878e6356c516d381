package services

import (
	"fmt"
	"strings"

	"blog-api/models"
	"blog-api/policy"
	"blog-api/repositories"
)

type CommentService interface {
	ListForBlog(actor *models.Actor, blogID uint) ([]models.CommentResponse, error)
	Create(actor *models.Actor, blogID uint, req models.CreateCommentRequest) (*models.CommentResponse, error)
	Get(actor *models.Actor, id uint) (*models.CommentResponse, error)
	Update(actor *models.Actor, id uint, req models.UpdateCommentRequest) (*models.CommentResponse, error)
	Delete(actor *models.Actor, id uint) error
}

type commentService struct {
	commentRepo   repositories.CommentRepository
	blogRepo      repositories.BlogRepository
	notifications NotificationService
	policy        *policy.Policy
}

func NewCommentService(
	commentRepo repositories.CommentRepository,
	blogRepo repositories.BlogRepository,
	notifications NotificationService,
	p *policy.Policy,
) CommentService {
	return &commentService{
		commentRepo:   commentRepo,
		blogRepo:      blogRepo,
		notifications: notifications,
		policy:        p,
	}
}

// BuildCommentTree groups a flat, oldest-first list of comments into
// top-level comments with their replies embedded. Input order is kept at
// both levels. Replies whose parent is missing from rows are dropped.
func BuildCommentTree(rows []models.Comment) []models.CommentResponse {
	roots := make([]models.CommentResponse, 0)
	index := make(map[uint]int)
	replies := make(map[uint][]models.CommentResponse)

	for i := range rows {
		node := models.NewCommentResponse(&rows[i])
		if rows[i].ParentID == nil {
			index[rows[i].ID] = len(roots)
			roots = append(roots, node)
			continue
		}
		parentID := *rows[i].ParentID
		replies[parentID] = append(replies[parentID], node)
	}

	for parentID, children := range replies {
		if pos, ok := index[parentID]; ok {
			roots[pos].Replies = children
		}
	}
	return roots
}

// visibleBlog loads the blog and hides it from callers who may not see it.
func (s *commentService) visibleBlog(actor *models.Actor, blogID uint) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(blogID)
	if err != nil {
		return nil, notFound(err, "Blog")
	}
	if !CanView(actor, blog) {
		return nil, models.ErrorNotFound{Message: "Blog not found"}
	}
	return blog, nil
}

func (s *commentService) ListForBlog(actor *models.Actor, blogID uint) ([]models.CommentResponse, error) {
	if _, err := s.visibleBlog(actor, blogID); err != nil {
		return nil, err
	}

	rows, err := s.commentRepo.ListByBlog(blogID)
	if err != nil {
		return nil, err
	}
	return BuildCommentTree(rows), nil
}

func (s *commentService) Create(actor *models.Actor, blogID uint, req models.CreateCommentRequest) (*models.CommentResponse, error) {
	if err := s.policy.Authorize(actor, policy.ResourceComment, policy.ActionCreate, 0); err != nil {
		return nil, err
	}

	blog, err := s.visibleBlog(actor, blogID)
	if err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, models.NewValidationError("content", "This field may not be blank.")
	}

	var parent *models.Comment
	if req.Parent != nil {
		parent, err = s.commentRepo.GetByID(*req.Parent)
		switch {
		case repositories.IsNotFound(err):
			return nil, models.NewValidationError("parent", fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *req.Parent))
		case err != nil:
			return nil, err
		case parent.BlogID != blog.ID:
			return nil, models.NewValidationError("parent", "Parent comment belongs to a different blog.")
		case parent.IsReply():
			return nil, models.NewValidationError("parent", "Replies cannot be nested more than one level.")
		}
	}

	comment := &models.Comment{
		BlogID:   blog.ID,
		UserID:   actor.ID,
		Content:  content,
		ParentID: req.Parent,
	}
	if err := s.commentRepo.Create(comment); err != nil {
		return nil, err
	}

	link := "/posts/" + blog.Slug + "/"
	if parent != nil {
		if parent.UserID != actor.ID {
			s.notifications.Notify(parent.UserID, fmt.Sprintf("%s replied to your comment on %q", actor.Username, blog.Title), link)
		}
	} else if blog.AuthorID != actor.ID {
		s.notifications.Notify(blog.AuthorID, fmt.Sprintf("%s commented on %q", actor.Username, blog.Title), link)
	}

	res := models.NewCommentResponse(comment)
	return &res, nil
}

// Get hides comments whose blog the actor may not see.
func (s *commentService) Get(actor *models.Actor, id uint) (*models.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Comment")
	}
	if _, err := s.visibleBlog(actor, comment.BlogID); err != nil {
		if _, hidden := err.(models.ErrorNotFound); hidden {
			return nil, models.ErrorNotFound{Message: "Comment not found"}
		}
		return nil, err
	}
	res := models.NewCommentResponse(comment)
	return &res, nil
}

func (s *commentService) Update(actor *models.Actor, id uint, req models.UpdateCommentRequest) (*models.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Comment")
	}
	if err := s.policy.Authorize(actor, policy.ResourceComment, policy.ActionUpdate, comment.UserID); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, models.NewValidationError("content", "This field may not be blank.")
	}
	if err := s.commentRepo.UpdateContent(comment, content); err != nil {
		return nil, err
	}
	comment.Content = content

	res := models.NewCommentResponse(comment)
	return &res, nil
}

func (s *commentService) Delete(actor *models.Actor, id uint) error {
	comment, err := s.commentRepo.GetByID(id)
	if err != nil {
		return notFound(err, "Comment")
	}
	if err := s.policy.Authorize(actor, policy.ResourceComment, policy.ActionDelete, comment.UserID); err != nil {
		return err
	}
	return notFound(s.commentRepo.Delete(id), "Comment")
}
