package service

import (
	"context"

	"github.com/goodluckurom/portfolio/internal/site/domain"
	"github.com/goodluckurom/portfolio/internal/site/store"
	"github.com/goodluckurom/portfolio/pkg/sessionx"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}

// UpdateProfile updates the user's display name and avatar.
func (s *UserService) UpdateProfile(ctx context.Context, userID, name, avatarURL string) error {
	return s.Store.Users().UpdateProfile(ctx, userID, name, avatarURL)
}

// FindUserByID implements sessionx.UserSource so handlers can opt into a
// freshness-checked role instead of the one cached in the token.
func (s *UserService) FindUserByID(ctx context.Context, id string) (sessionx.UserRecord, error) {
	u, err := s.Store.Users().GetUserByID(ctx, id)
	if err != nil {
		return sessionx.UserRecord{}, err
	}
	return sessionx.UserRecord{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
		Role:      sessionx.Role(u.Role),
	}, nil
}
