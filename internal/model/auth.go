package model

import "github.com/google/uuid"

// AuthContext is the resolved identity for one request, built by the auth
// middleware and handed to every service call.
type AuthContext struct {
	UserID uuid.UUID
	Email  string
	Name   string
	Role   *string
}

// HasRole reports whether the caller has any counter role
func (a AuthContext) HasRole() bool {
	return a.Role != nil && *a.Role != ""
}

// IsAdmin reports whether the caller holds the admin role
func (a AuthContext) IsAdmin() bool {
	return a.Role != nil && *a.Role == RoleAdmin
}
