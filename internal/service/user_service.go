package service

import (
	"context"
	"strings"

	"icebreaker/internal/models"
	"icebreaker/internal/repository"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo repository.UserRepository
}

type CreateUserInput struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
}

type UpdateUserInput struct {
	DisplayName string `json:"displayName"`
	Bio         string `json:"bio"`
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}
	return user, nil
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &models.AppError{
			Code:    "NOT_FOUND",
			Message: "User " + strings.TrimSpace(username) + " not found",
		}
	}
	return user, nil
}

func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &models.AppError{
			Code:    "NOT_FOUND",
			Message: "User " + strings.TrimSpace(email) + " not found",
		}
	}
	return user, nil
}

func (s *UserService) ListUsers(ctx context.Context, pageNumber, pageSize int) (models.PaginatedResult[models.User], error) {
	pageNumber, pageSize = normalizePage(pageNumber, pageSize)
	return s.userRepo.GetPage(ctx, pageNumber, pageSize)
}

// CreateUser registers a new user. Username and email uniqueness is
// case-insensitive.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	user, err := models.NewUser(in.Username, in.Email, in.DisplayName, in.Bio)
	if err != nil {
		return nil, err
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, user.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("Username is already taken")
	}
	taken, err = s.userRepo.ExistsByEmail(ctx, user.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("Email is already registered")
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id uuid.UUID, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", id)
	}

	user.Update(in.DisplayName, in.Bio)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	return s.userRepo.Delete(ctx, id)
}
