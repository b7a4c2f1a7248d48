// Package profile manages the per-identity profile rows that gate community
// and administrative capability.
//
// A profile row is created by a backend trigger the first time an identity
// authenticates; this package only reads and mutates existing rows and never
// deletes one.
package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppc-youthlead/chapter-web/internal/backend"
)

const table = "profiles"

// Role gates administrative capability for a profile.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Toggled returns the opposite role.
func Toggled(role Role) Role {
	if role == RoleAdmin {
		return RoleUser
	}
	return RoleAdmin
}

// Profile is one row of the profiles table.
type Profile struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url"`
	Role        Role   `json:"role"`
	CreatedAt   string `json:"created_at"`
}

// Name returns the display name, falling back for profiles that never set one.
func (p Profile) Name() string {
	if strings.TrimSpace(p.DisplayName) == "" {
		return "Anonymous"
	}
	return p.DisplayName
}

// IsAdmin reports whether the profile carries the admin role.
func (p Profile) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// Service reads and mutates profile rows through the backend facade.
type Service struct {
	backend *backend.Client
}

// NewService builds a profile service on the backend facade.
func NewService(client *backend.Client) *Service {
	return &Service{backend: client}
}

// ByUserID loads the profile owned by the given identity.
func (s *Service) ByUserID(ctx context.Context, token, userID string) (Profile, error) {
	var row Profile
	err := s.backend.From(table).Eq("user_id", userID).Single(ctx, token, &row)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile for %s: %w", userID, err)
	}
	return row, nil
}

// List returns every profile, newest first. The backend policy restricts the
// full listing to admins.
func (s *Service) List(ctx context.Context, token string) ([]Profile, error) {
	var rows []Profile
	err := s.backend.From(table).OrderDesc("created_at").Get(ctx, token, &rows)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return rows, nil
}

// UpdateOwn writes the owner-editable fields. Blank values are stored as
// nulls so an emptied field reads back as unset.
func (s *Service) UpdateOwn(ctx context.Context, token, userID, displayName, avatarURL string) error {
	patch := map[string]any{
		"display_name": nullable(displayName),
		"avatar_url":   nullable(avatarURL),
	}
	if err := s.backend.Update(ctx, token, table, patch, "user_id", userID); err != nil {
		return fmt.Errorf("update profile for %s: %w", userID, err)
	}
	return nil
}

// SetRole writes the role flag on the target profile. Only the backend
// policy decides whether the acting token is allowed to.
func (s *Service) SetRole(ctx context.Context, token, userID string, role Role) error {
	patch := map[string]any{"role": role}
	if err := s.backend.Update(ctx, token, table, patch, "user_id", userID); err != nil {
		return fmt.Errorf("set role for %s: %w", userID, err)
	}
	return nil
}

func nullable(value string) any {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return trimmed
}
