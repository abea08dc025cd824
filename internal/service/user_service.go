package service

import (
	"errors"

	"waterpark-pos/internal/model"
	"waterpark-pos/internal/repository"

	"github.com/google/uuid"
)

// CreateUserRequest is the admin payload for onboarding an operator
type CreateUserRequest struct {
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName string  `json:"full_name" validate:"required"`
	Image    string  `json:"image"`
	Role     *string `json:"role"` // admin, cashier, or nil
}

// UpdateUserRequest mutates name, image, role, or active flag
type UpdateUserRequest struct {
	FullName *string `json:"full_name"`
	Image    *string `json:"image"`
	Role     *string `json:"role"`
	IsActive *bool   `json:"is_active"`
}

type UserService interface {
	CreateUser(req *CreateUserRequest, createdBy string) (*model.User, error)
	UpdateUser(id uuid.UUID, req *UpdateUserRequest, updatedBy string) (*model.User, error)
	RevokeAccess(id uuid.UUID, updatedBy string) error
	GetUserByID(id uuid.UUID) (*model.User, error)
	GetAllUsers() ([]model.UserResponse, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func validRole(role *string) bool {
	if role == nil {
		return true
	}
	return *role == model.RoleAdmin || *role == model.RoleCashier
}

func (s *userService) CreateUser(req *CreateUserRequest, createdBy string) (*model.User, error) {
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return nil, invalid("email, password, and full_name are required")
	}
	if !validRole(req.Role) {
		return nil, invalid("role must be admin or cashier")
	}
	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, invalid("email already registered")
	}

	user := &model.User{
		Email:    req.Email,
		FullName: req.FullName,
		Image:    req.Image,
		Role:     req.Role,
		IsActive: true,
	}
	user.CreatedBy = createdBy
	user.UpdatedBy = createdBy

	if err := user.SetPassword(req.Password); err != nil {
		return nil, errors.New("failed to hash password")
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(id uuid.UUID, req *UpdateUserRequest, updatedBy string) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	if req.Role != nil && !validRole(req.Role) {
		return nil, invalid("role must be admin or cashier")
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Image != nil {
		user.Image = *req.Image
	}
	if req.Role != nil {
		user.Role = req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	user.UpdatedBy = updatedBy

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// RevokeAccess clears the role instead of deleting the row; the identity
// and its audit trail stay intact.
func (s *userService) RevokeAccess(id uuid.UUID, updatedBy string) error {
	if _, err := s.userRepo.FindByID(id); err != nil {
		return ErrUserNotFound
	}
	return s.userRepo.ClearRole(id, updatedBy)
}

func (s *userService) GetUserByID(id uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *userService) GetAllUsers() ([]model.UserResponse, error) {
	users, err := s.userRepo.FindAll()
	if err != nil {
		return nil, err
	}
	responses := make([]model.UserResponse, len(users))
	for i, u := range users {
		responses[i] = u.ToResponse()
	}
	return responses, nil
}
