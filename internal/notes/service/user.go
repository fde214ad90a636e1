package service

import (
	"context"

	"github.com/inkwellhq/inkwell/internal/notes/domain"
	"github.com/inkwellhq/inkwell/internal/notes/store"
)

type UserService struct {
	Store store.Store
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	return s.Store.Users().GetUserByID(ctx, userID)
}
