package services

import (
	"strings"

	"blog-api/models"
	"blog-api/policy"
	"blog-api/repositories"

	"github.com/rs/zerolog/log"
)

type UserService interface {
	List(actor *models.Actor, params models.UserListParams) ([]models.User, int64, error)
	Get(actor *models.Actor, id uint) (*models.User, error)
	Update(actor *models.Actor, id uint, req models.UpdateUserRequest) (*models.User, error)
	Delete(actor *models.Actor, id uint) error
}

type userService struct {
	userRepo repositories.UserRepository
	policy   *policy.Policy
}

func NewUserService(userRepo repositories.UserRepository, p *policy.Policy) UserService {
	return &userService{userRepo: userRepo, policy: p}
}

func (s *userService) List(actor *models.Actor, params models.UserListParams) ([]models.User, int64, error) {
	if err := s.policy.Authorize(actor, policy.ResourceUser, policy.ActionList, 0); err != nil {
		return nil, 0, err
	}
	params.Normalize(models.UserPageSize)
	return s.userRepo.List(params)
}

func (s *userService) Get(actor *models.Actor, id uint) (*models.User, error) {
	if err := s.policy.Authorize(actor, policy.ResourceUser, policy.ActionRead, id); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "User")
	}
	return user, nil
}

// Update applies a partial update. Role and is_active can only be changed by
// an admin; anyone else attempting it is refused outright.
func (s *userService) Update(actor *models.Actor, id uint, req models.UpdateUserRequest) (*models.User, error) {
	if err := s.policy.Authorize(actor, policy.ResourceUser, policy.ActionUpdate, id); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "User")
	}

	if !actor.IsAdmin() {
		if (req.Role != nil && *req.Role != user.Role) || (req.IsActive != nil && *req.IsActive != user.IsActive) {
			return nil, models.ErrorForbidden{Message: "Only admins can change role or active status"}
		}
	}

	verr := models.ErrorValidation{}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if taken, err := s.userRepo.ExistsByUsername(username, user.ID); err != nil {
			return nil, err
		} else if taken {
			verr = verr.Add("username", "A user with that username already exists.")
		}
		user.Username = username
	}
	if req.Email != nil {
		email := strings.TrimSpace(*req.Email)
		if taken, err := s.userRepo.ExistsByEmail(email, user.ID); err != nil {
			return nil, err
		} else if taken {
			verr = verr.Add("email", "user with this email already exists.")
		}
		user.Email = email
	}
	if !verr.Empty() {
		return nil, verr
	}

	if req.Role != nil {
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}

	if err := s.userRepo.Update(user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.NewValidationError("username", "A user with that username already exists.")
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) Delete(actor *models.Actor, id uint) error {
	if err := s.policy.Authorize(actor, policy.ResourceUser, policy.ActionDelete, 0); err != nil {
		return err
	}
	if err := s.userRepo.Delete(id); err != nil {
		return notFound(err, "User")
	}
	log.Info().Uint("user_id", id).Uint("by", actor.ID).Msg("user deleted")
	return nil
}
