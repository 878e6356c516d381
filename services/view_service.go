package services

import (
	"blog-api/metrics"
	"blog-api/models"
	"blog-api/repositories"

	"github.com/rs/zerolog/log"
)

type ViewService interface {
	// Record counts a view of blogID from ip. It never fails the caller.
	Record(actor *models.Actor, blogID uint, ip string)
}

type viewService struct {
	viewRepo repositories.ViewCountRepository
}

func NewViewService(viewRepo repositories.ViewCountRepository) ViewService {
	return &viewService{viewRepo: viewRepo}
}

func (s *viewService) Record(actor *models.Actor, blogID uint, ip string) {
	if ip == "" {
		return
	}

	var userID *uint
	if actor.Authenticated() {
		id := actor.ID
		userID = &id
	}

	created, err := s.viewRepo.Record(blogID, ip, userID)
	switch {
	case err != nil:
		metrics.RecordView("failed")
		log.Warn().Err(err).Uint("blog_id", blogID).Msg("failed to record view")
	case created:
		metrics.RecordView("created")
	default:
		metrics.RecordView("repeat")
		log.Debug().Uint("blog_id", blogID).Str("ip", ip).Msg("repeat view")
	}
}
