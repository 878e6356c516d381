package services

import (
	"strings"

	"blog-api/models"
	"blog-api/policy"
	"blog-api/repositories"

	"github.com/rs/zerolog/log"
)

type ContactService interface {
	Submit(req models.CreateContactMessageRequest) (*models.ContactMessage, error)
	List(actor *models.Actor, params models.PageParams) ([]models.ContactMessage, int64, error)
	MarkRead(actor *models.Actor, id uint) (*models.ContactMessage, error)
	Delete(actor *models.Actor, id uint) error
}

type contactService struct {
	contactRepo repositories.ContactRepository
	policy      *policy.Policy
}

func NewContactService(contactRepo repositories.ContactRepository, p *policy.Policy) ContactService {
	return &contactService{contactRepo: contactRepo, policy: p}
}

func (s *contactService) Submit(req models.CreateContactMessageRequest) (*models.ContactMessage, error) {
	message := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Subject: strings.TrimSpace(req.Subject),
		Message: strings.TrimSpace(req.Message),
	}
	if message.Message == "" {
		return nil, models.NewValidationError("message", "This field may not be blank.")
	}
	if err := s.contactRepo.Create(message); err != nil {
		return nil, err
	}
	log.Info().Uint("contact_id", message.ID).Msg("contact message received")
	return message, nil
}

func (s *contactService) List(actor *models.Actor, params models.PageParams) ([]models.ContactMessage, int64, error) {
	if err := s.policy.Authorize(actor, policy.ResourceContact, policy.ActionList, 0); err != nil {
		return nil, 0, err
	}
	params.Normalize(models.ContactPageSize)
	return s.contactRepo.List(params)
}

func (s *contactService) MarkRead(actor *models.Actor, id uint) (*models.ContactMessage, error) {
	if err := s.policy.Authorize(actor, policy.ResourceContact, policy.ActionUpdate, 0); err != nil {
		return nil, err
	}
	message, err := s.contactRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "Contact message")
	}
	if err := s.contactRepo.MarkRead(id); err != nil {
		return nil, err
	}
	message.IsRead = true
	return message, nil
}

func (s *contactService) Delete(actor *models.Actor, id uint) error {
	if err := s.policy.Authorize(actor, policy.ResourceContact, policy.ActionDelete, 0); err != nil {
		return err
	}
	return notFound(s.contactRepo.Delete(id), "Contact message")
}
