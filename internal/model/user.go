package model

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Role codes. A nil role means the user is authenticated but has no counter
// access yet.
const (
	RoleAdmin   = "admin"
	RoleCashier = "cashier"
)

// User represents a counter operator or administrator
type User struct {
	BaseModel
	Email    string  `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password string  `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName string  `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	Image    string  `gorm:"type:text" json:"image,omitempty"`
	Role     *string `gorm:"type:varchar(20);index" json:"role"` // admin, cashier, or nil
	IsActive bool    `gorm:"default:true" json:"is_active"`
}

// SetPassword hashes and sets the user's password
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// HasRole reports whether the user has been granted counter access
func (u *User) HasRole() bool {
	return u.Role != nil && *u.Role != ""
}

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool {
	return u.Role != nil && *u.Role == RoleAdmin
}

// UserResponse is used for API responses (without sensitive data)
type UserResponse struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Image    string    `json:"image,omitempty"`
	Role     *string   `json:"role"`
	IsActive bool      `json:"is_active"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Image:    u.Image,
		Role:     u.Role,
		IsActive: u.IsActive,
	}
}
