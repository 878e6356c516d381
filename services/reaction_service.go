package services

import (
	"fmt"

	"blog-api/metrics"
	"blog-api/models"
	"blog-api/policy"
	"blog-api/repositories"
)

type ReactionService interface {
	Toggle(actor *models.Actor, blogID uint, req models.ReactionRequest) (*models.ReactionSummary, error)
	Summary(actor *models.Actor, blogID uint) (*models.ReactionSummary, error)
	Delete(actor *models.Actor, id uint) error
}

type reactionService struct {
	reactionRepo  repositories.ReactionRepository
	blogRepo      repositories.BlogRepository
	notifications NotificationService
	policy        *policy.Policy
}

func NewReactionService(
	reactionRepo repositories.ReactionRepository,
	blogRepo repositories.BlogRepository,
	notifications NotificationService,
	p *policy.Policy,
) ReactionService {
	return &reactionService{
		reactionRepo:  reactionRepo,
		blogRepo:      blogRepo,
		notifications: notifications,
		policy:        p,
	}
}

func (s *reactionService) visibleBlog(actor *models.Actor, blogID uint) (*models.Blog, error) {
	blog, err := s.blogRepo.GetByID(blogID)
	if err != nil {
		return nil, notFound(err, "Blog")
	}
	if !CanView(actor, blog) {
		return nil, models.ErrorNotFound{Message: "Blog not found"}
	}
	return blog, nil
}

func (s *reactionService) Toggle(actor *models.Actor, blogID uint, req models.ReactionRequest) (*models.ReactionSummary, error) {
	if err := s.policy.Authorize(actor, policy.ResourceReaction, policy.ActionCreate, 0); err != nil {
		return nil, err
	}
	if !req.Type.Valid() {
		return nil, models.NewValidationError("type", fmt.Sprintf("\"%s\" is not a valid choice.", req.Type))
	}

	blog, err := s.visibleBlog(actor, blogID)
	if err != nil {
		return nil, err
	}

	outcome, err := s.reactionRepo.Toggle(blog.ID, actor.ID, req.Type)
	if err != nil {
		return nil, err
	}
	metrics.RecordReactionToggle(string(outcome))

	if outcome == repositories.ReactionCreated && blog.AuthorID != actor.ID {
		s.notifications.Notify(blog.AuthorID,
			fmt.Sprintf("%s reacted %s to %q", actor.Username, req.Type, blog.Title),
			"/posts/"+blog.Slug+"/")
	}

	return s.summary(actor, blog.ID)
}

func (s *reactionService) Summary(actor *models.Actor, blogID uint) (*models.ReactionSummary, error) {
	if _, err := s.visibleBlog(actor, blogID); err != nil {
		return nil, err
	}
	return s.summary(actor, blogID)
}

func (s *reactionService) summary(actor *models.Actor, blogID uint) (*models.ReactionSummary, error) {
	counts, err := s.reactionRepo.Counts(blogID)
	if err != nil {
		return nil, err
	}

	summary := &models.ReactionSummary{
		ReactionCounts: counts,
		TotalReactions: counts.Total(),
	}
	if actor.Authenticated() {
		reaction, err := s.reactionRepo.GetForUser(blogID, actor.ID)
		switch {
		case err == nil:
			summary.UserReaction = &reaction.Type
		case !repositories.IsNotFound(err):
			return nil, err
		}
	}
	return summary, nil
}

func (s *reactionService) Delete(actor *models.Actor, id uint) error {
	reaction, err := s.reactionRepo.GetByID(id)
	if err != nil {
		return notFound(err, "Reaction")
	}
	if err := s.policy.Authorize(actor, policy.ResourceReaction, policy.ActionDelete, reaction.UserID); err != nil {
		return err
	}
	return notFound(s.reactionRepo.Delete(id), "Reaction")
}
