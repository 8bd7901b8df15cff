package user

import (
	"context"

	"github.com/workforcehq/hrms-backend-go/internal/domain/user"
)

type UserServiceImpl struct {
	userRepo user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// List implements user.UserService.
func (s *UserServiceImpl) List(ctx context.Context) ([]user.User, error) {
	return s.userRepo.List(ctx)
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, id string) (user.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// UpdateRole implements user.UserService.
func (s *UserServiceImpl) UpdateRole(ctx context.Context, req user.UpdateRoleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return err
	}

	return s.userRepo.UpdateRole(ctx, req.UserID, user.Role(req.Role))
}

// Deactivate implements user.UserService. An admin cannot lock themselves out.
func (s *UserServiceImpl) Deactivate(ctx context.Context, id string, actorID string) error {
	if id == actorID {
		return user.ErrCannotDeactivateSelf
	}

	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}

	return s.userRepo.Deactivate(ctx, id)
}
