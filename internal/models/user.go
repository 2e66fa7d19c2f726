package models

import (
	"regexp"
	"strings"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// User represents a registered member of the platform.
// Username and Email are unique case-insensitively; uniqueness is enforced
// at the service boundary, not here.
type User struct {
	Base
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio,omitempty"`
}

// NewUser creates a User, validating required fields.
func NewUser(username, email, displayName, bio string) (*User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	displayName = strings.TrimSpace(displayName)

	if username == "" {
		return nil, NewValidationError("Username is required")
	}
	if len(username) < 3 || len(username) > 50 {
		return nil, NewValidationError("Username must be between 3 and 50 characters")
	}
	if !usernamePattern.MatchString(username) {
		return nil, NewValidationError("Username may only contain letters, digits and underscores")
	}
	if email == "" {
		return nil, NewValidationError("Email is required")
	}
	if displayName == "" {
		return nil, NewValidationError("Display name is required")
	}

	return &User{
		Base:        newBase(),
		Username:    username,
		Email:       email,
		DisplayName: displayName,
		Bio:         strings.TrimSpace(bio),
	}, nil
}

// Update applies a partial update: blank fields are left unchanged.
func (u *User) Update(displayName, bio string) {
	if strings.TrimSpace(displayName) != "" {
		u.DisplayName = strings.TrimSpace(displayName)
	}
	if strings.TrimSpace(bio) != "" {
		u.Bio = strings.TrimSpace(bio)
	}
	u.Touch()
}

// Delete marks the user inactive (soft delete).
func (u *User) Delete() {
	u.IsActive = false
	u.Touch()
}
