// Package repository provides data access layer implementations over the
// file-backed entity stores. Every query loads the full collection and
// filters in memory; every mutation is a whole-collection read-modify-write
// held under the store's lock.
package repository

import (
	"context"
	"sort"
	"strings"

	"icebreaker/internal/models"
	"icebreaker/internal/storage"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations. Lookups
// return (nil, nil) when no matching active record exists.
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	GetPage(ctx context.Context, pageNumber, pageSize int) (models.PaginatedResult[models.User], error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepository struct {
	store *storage.Store[models.User]
}

// NewUserRepository creates a new user repository over the given store.
func NewUserRepository(store *storage.Store[models.User]) UserRepository {
	return &userRepository{store: store}
}

func (r *userRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	users, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id && users[i].IsActive {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	users, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].IsActive && strings.EqualFold(users[i].Email, email) {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	users, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].IsActive && strings.EqualFold(users[i].Username, username) {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	user, err := r.FindByEmail(ctx, email)
	return user != nil, err
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	user, err := r.FindByUsername(ctx, username)
	return user != nil, err
}

func (r *userRepository) GetPage(ctx context.Context, pageNumber, pageSize int) (models.PaginatedResult[models.User], error) {
	users, err := r.store.ReadAll(ctx)
	if err != nil {
		return models.PaginatedResult[models.User]{}, err
	}

	active := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.IsActive {
			active = append(active, u)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})

	items, total := models.Paginate(active, pageNumber, pageSize)
	return models.NewPaginatedResult(items, total, pageNumber, pageSize), nil
}

func (r *userRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	users, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	idSet := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	matched := make([]models.User, 0, len(ids))
	for _, u := range users {
		if _, ok := idSet[u.ID]; ok && u.IsActive {
			matched = append(matched, u)
		}
	}
	return matched, nil
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	return r.store.Mutate(ctx, func(users []models.User) ([]models.User, bool, error) {
		return append(users, *user), true, nil
	})
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	return r.store.Mutate(ctx, func(users []models.User) ([]models.User, bool, error) {
		for i := range users {
			if users[i].ID == user.ID {
				users[i] = *user
				return users, true, nil
			}
		}
		return nil, false, models.NewNotFoundError("User", user.ID)
	})
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Mutate(ctx, func(users []models.User) ([]models.User, bool, error) {
		for i := range users {
			if users[i].ID == id && users[i].IsActive {
				users[i].Delete()
				return users, true, nil
			}
		}
		return nil, false, models.NewNotFoundError("User", id)
	})
}
