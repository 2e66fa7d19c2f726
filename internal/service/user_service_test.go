package service

import (
	"context"
	"testing"

	"icebreaker/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser_Conflicts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	in := CreateUserInput{
		Username: "taken_name", Email: "new@example.com", DisplayName: "New User",
	}

	t.Run("duplicate username", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.existsByUsernameFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
		svc := NewUserService(userRepo)
		_, err := svc.CreateUser(ctx, in)
		assertConflictError(t, err)
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		userRepo := noopUserRepo()
		userRepo.existsByEmailFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
		svc := NewUserService(userRepo)
		_, err := svc.CreateUser(ctx, in)
		assertConflictError(t, err)
	})
}

func TestUserService_CreateUser_Validation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo())
	ctx := context.Background()

	t.Run("username too short", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateUser(ctx, CreateUserInput{
			Username: "ab", Email: "a@example.com", DisplayName: "A",
		})
		assertValidationError(t, err)
	})

	t.Run("username with invalid characters", func(t *testing.T) {
		t.Parallel()
		_, err := svc.CreateUser(ctx, CreateUserInput{
			Username: "not allowed!", Email: "a@example.com", DisplayName: "A",
		})
		assertValidationError(t, err)
	})
}

func TestUserService_CreateUser_Success(t *testing.T) {
	t.Parallel()

	var created *models.User
	userRepo := noopUserRepo()
	userRepo.createFn = func(_ context.Context, u *models.User) error {
		created = u
		return nil
	}

	svc := NewUserService(userRepo)
	user, err := svc.CreateUser(context.Background(), CreateUserInput{
		Username: "fresh_user", Email: "fresh@example.com", DisplayName: "Fresh User", Bio: "hello",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, created.ID, user.ID)
	assert.True(t, user.IsActive)
}

func TestUserService_GetUser_UnknownIsNotFound(t *testing.T) {
	t.Parallel()

	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*models.User, error) { return nil, nil }
	svc := NewUserService(userRepo)

	_, err := svc.GetUser(context.Background(), uuid.New())
	assertNotFoundError(t, err)
}

func TestUserService_UpdateUser_PartialFields(t *testing.T) {
	t.Parallel()

	existing := &models.User{
		Base: models.Base{ID: uuid.New(), IsActive: true},
		Username: "stable", Email: "stable@example.com",
		DisplayName: "Old Name", Bio: "old bio",
	}
	userRepo := noopUserRepo()
	userRepo.getByIDFn = func(_ context.Context, _ uuid.UUID) (*models.User, error) {
		copied := *existing
		return &copied, nil
	}

	svc := NewUserService(userRepo)
	user, err := svc.UpdateUser(context.Background(), existing.ID, UpdateUserInput{DisplayName: "New Name"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.DisplayName)
	assert.Equal(t, "old bio", user.Bio)
}
