package services

import (
	"strings"

	"blog-api/models"
	"blog-api/repositories"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "No active account found with the given credentials"

type AuthService interface {
	Register(req models.RegisterRequest) (*models.AuthResponse, error)
	Login(req models.LoginRequest) (*models.AuthResponse, error)
	Refresh(req models.RefreshRequest) (*models.RefreshResponse, error)
	GetUserByID(id uint) (*models.User, error)
	// Authenticate resolves an access token to the current state of its
	// user. Deleted or inactive users are rejected.
	Authenticate(token string) (*models.Actor, error)
	ChangePassword(actor *models.Actor, req models.ChangePasswordRequest) error
	// CreateUser bypasses the self-registration role restriction. It backs
	// the createadmin command.
	CreateUser(username, email, password string, role models.UserRole) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	tokens   TokenService
	now      Clock
}

func NewAuthService(userRepo repositories.UserRepository, tokens TokenService, clock Clock) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens, now: defaultClock(clock)}
}

func (s *authService) Register(req models.RegisterRequest) (*models.AuthResponse, error) {
	verr := models.ErrorValidation{}
	if req.Password != req.ConfirmPassword {
		verr = verr.Add("confirm_password", "Passwords do not match.")
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}
	if role == models.RoleAdmin {
		verr = verr.Add("role", "Cannot register as ADMIN.")
	}
	if !verr.Empty() {
		return nil, verr
	}

	user, err := s.CreateUser(req.Username, req.Email, req.Password, role)
	if err != nil {
		return nil, err
	}

	access, refresh, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	log.Info().Uint("user_id", user.ID).Str("role", string(user.Role)).Msg("user registered")
	return &models.AuthResponse{Access: access, Refresh: refresh, User: *user}, nil
}

func (s *authService) CreateUser(username, email, password string, role models.UserRole) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	verr := models.ErrorValidation{}
	if !role.Valid() {
		verr = verr.Add("role", "\""+string(role)+"\" is not a valid choice.")
	}
	if taken, err := s.userRepo.ExistsByUsername(username, 0); err != nil {
		return nil, err
	} else if taken {
		verr = verr.Add("username", "A user with that username already exists.")
	}
	if taken, err := s.userRepo.ExistsByEmail(email, 0); err != nil {
		return nil, err
	} else if taken {
		verr = verr.Add("email", "user with this email already exists.")
	}
	if !verr.Empty() {
		return nil, verr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hashedPassword),
		Role:     role,
		IsActive: true,
	}
	if err := s.userRepo.Create(user); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, models.NewValidationError("username", "A user with that username already exists.")
		}
		return nil, err
	}
	return user, nil
}

func (s *authService) Login(req models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByUsername(req.Username)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorUnauthorized{Message: invalidCredentials}
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, models.ErrorUnauthorized{Message: invalidCredentials}
	}
	if !user.IsActive {
		return nil, models.ErrorUnauthorized{Message: invalidCredentials}
	}

	now := s.now()
	if err := s.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	access, refresh, err := s.tokens.IssuePair(user)
	if err != nil {
		return nil, err
	}

	return &models.AuthResponse{Access: access, Refresh: refresh, User: *user}, nil
}

func (s *authService) Refresh(req models.RefreshRequest) (*models.RefreshResponse, error) {
	claims, err := s.tokens.Parse(req.Refresh, RefreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorUnauthorized{Message: "User not found"}
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, models.ErrorUnauthorized{Message: "User is inactive"}
	}

	access, err := s.tokens.Issue(user, AccessToken)
	if err != nil {
		return nil, err
	}
	return &models.RefreshResponse{Access: access}, nil
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, notFound(err, "User")
	}
	return user, nil
}

func (s *authService) Authenticate(token string) (*models.Actor, error) {
	claims, err := s.tokens.Parse(token, AccessToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, models.ErrorUnauthorized{Message: "User not found"}
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, models.ErrorUnauthorized{Message: "User is inactive"}
	}
	return &models.Actor{ID: user.ID, Username: user.Username, Role: user.Role}, nil
}

func (s *authService) ChangePassword(actor *models.Actor, req models.ChangePasswordRequest) error {
	if err := requireAuth(actor); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(actor.ID)
	if err != nil {
		return notFound(err, "User")
	}

	verr := models.ErrorValidation{}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.OldPassword)); err != nil {
		verr = verr.Add("old_password", "Old password is not correct.")
	}
	if req.NewPassword != req.ConfirmPassword {
		verr = verr.Add("confirm_password", "Passwords do not match.")
	}
	if !verr.Empty() {
		return verr
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	return s.userRepo.Update(user)
}
