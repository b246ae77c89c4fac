package profile

import (
	"context"
	"errors"

	"github.com/jobportal-auth/internal/domain"
	"github.com/jobportal-auth/internal/pkg/validate"
)

// View is a user's profile together with how complete it is.
type View struct {
	User       *domain.User
	Completion int
}

type Service interface {
	Get(ctx context.Context, userID string) (*View, error)
	Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*View, error)
}

type userStore interface {
	Get(ctx context.Context, userID string) (*domain.User, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) (*domain.User, error)
}

type service struct {
	users userStore
}

func NewService(users userStore) Service {
	return &service{users: users}
}

func (s *service) Get(ctx context.Context, userID string) (*View, error) {
	u, err := s.users.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	return &View{User: u, Completion: u.ProfileCompletion()}, nil
}

// Update applies the fields of req allowed for the user's role. Fields owned by
// another role are rejected rather than ignored.
func (s *service) Update(ctx context.Context, userID string, req domain.UpdateProfileRequest) (*View, error) {
	if err := validate.Struct(req); err != nil {
		return nil, err
	}
	u, err := s.users.Get(ctx, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}

	change, err := domain.NewProfileUpdate(u.Role, req)
	if err != nil {
		return nil, err
	}
	updates := change.Updates()
	if len(updates) == 0 {
		return &View{User: u, Completion: u.ProfileCompletion()}, nil
	}

	updated, err := s.users.Update(ctx, userID, updates)
	if err != nil {
		return nil, err
	}
	return &View{User: updated, Completion: updated.ProfileCompletion()}, nil
}
