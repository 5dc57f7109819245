package services

import (
	"strings"
	"time"
	"unicode"

	"pasahero-backend/internal/errs"
	"pasahero-backend/internal/models"
	"pasahero-backend/internal/repository"
	"pasahero-backend/pkg/jwt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	userRepo *repository.UserRepository
	jwtUtil  *jwt.JWTUtil
}

func NewUserService(userRepo *repository.UserRepository, jwtUtil *jwt.JWTUtil) *UserService {
	return &UserService{userRepo: userRepo, jwtUtil: jwtUtil}
}

type SignupRequest struct {
	FirstName string `json:"firstName" validate:"required,min=1,max=50"`
	LastName  string `json:"lastName" validate:"required,min=1,max=50"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
	Role      string `json:"role,omitempty" validate:"omitempty,oneof=user super_admin operator terminal_admin"`
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateUserRequest struct {
	FirstName    string `json:"firstName,omitempty" validate:"omitempty,min=1,max=50"`
	LastName     string `json:"lastName,omitempty" validate:"omitempty,min=1,max=50"`
	ProfileImage string `json:"profileImage,omitempty"`
	Status       string `json:"status,omitempty" validate:"omitempty,oneof=active inactive suspended"`
}

type AuthResult struct {
	Token string           `json:"token"`
	User  *models.AuthUser `json:"user"`
}

// validatePasswordStrength enforces the signup password rule: at least 8
// characters with one uppercase letter, one lowercase letter, and one digit.
func validatePasswordStrength(password string) error {
	if len(password) < 8 {
		return errs.New(errs.KindValidation, "Password must be at least 8 characters long.")
	}
	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		return errs.New(errs.KindValidation, "Password must contain an uppercase letter, a lowercase letter, and a number.")
	}
	return nil
}

func sanitizeUser(user *models.User) *models.AuthUser {
	return &models.AuthUser{
		ID:        user.ID.Hex(),
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Email:     user.Email,
		Role:      user.Role,
		Status:    user.Status,
	}
}

func (s *UserService) Signup(req *SignupRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	existing, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.New(errs.KindConflict, "An account with this email already exists.")
	}

	if err := validatePasswordStrength(req.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "Failed to hash password.", err)
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		ID:        primitive.NewObjectID(),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     email,
		Password:  string(hash),
		Role:      role,
		Status:    models.UserStatusActive,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	created, err := s.userRepo.Create(user)
	if err != nil {
		return nil, err
	}

	token, err := s.jwtUtil.GenerateToken(created.ID.Hex(), created.Email, created.Role)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "Failed to generate token.", err)
	}

	return &AuthResult{Token: token, User: sanitizeUser(created)}, nil
}

func (s *UserService) Signin(req *SigninRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errs.New(errs.KindUnauthorized, "Invalid email or password.")
	}
	if user.Status == models.UserStatusSuspended {
		return nil, errs.New(errs.KindUnauthorized, "This account has been suspended.")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, errs.New(errs.KindUnauthorized, "Invalid email or password.")
	}

	now := time.Now()
	user.LastLogin = &now
	user.Status = models.UserStatusActive
	user.UpdatedAt = now
	if _, err := s.userRepo.Update(user.ID.Hex(), user); err != nil {
		return nil, err
	}

	token, err := s.jwtUtil.GenerateToken(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		return nil, errs.Wrap(errs.KindInternal, "Failed to generate token.", err)
	}

	return &AuthResult{Token: token, User: sanitizeUser(user)}, nil
}

// Logout marks the user inactive. Tokens are stateless, so this only flips
// the stored status.
func (s *UserService) Logout(userID string) error {
	return s.userRepo.UpdateStatus(userID, models.UserStatusInactive)
}

func (s *UserService) GetUserByID(id string) (*models.AuthUser, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(user), nil
}

func (s *UserService) GetAllUsers() ([]*models.AuthUser, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	sanitized := make([]*models.AuthUser, 0, len(users))
	for _, u := range users {
		sanitized = append(sanitized, sanitizeUser(u))
	}
	return sanitized, nil
}

func (s *UserService) UpdateUserByID(id string, req *UpdateUserRequest) (*models.AuthUser, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, err
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.ProfileImage != "" {
		user.ProfileImage = req.ProfileImage
	}
	if req.Status != "" {
		user.Status = req.Status
	}
	user.UpdatedAt = time.Now()

	updated, err := s.userRepo.Update(id, user)
	if err != nil {
		return nil, err
	}
	return sanitizeUser(updated), nil
}
