package repository

import (
	"context"
	"time"

	"icebreaker/internal/models"
	"icebreaker/internal/storage"

	"github.com/google/uuid"
)

// LikeRepository defines the interface for question like data operations.
type LikeRepository interface {
	GetByQuestionAndUser(ctx context.Context, questionID, userID uuid.UUID) (*models.Like, error)
	Exists(ctx context.Context, questionID, userID uuid.UUID) (bool, error)
	GetByQuestionID(ctx context.Context, questionID uuid.UUID) ([]models.Like, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Like, error)
	CountByQuestionID(ctx context.Context, questionID uuid.UUID) (int, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int, error)
	Create(ctx context.Context, like *models.Like) error
	DeleteByQuestionAndUser(ctx context.Context, questionID, userID uuid.UUID) (bool, error)
}

type likeRepository struct {
	store *storage.Store[models.Like]
}

// NewLikeRepository creates a new like repository over the given store.
func NewLikeRepository(store *storage.Store[models.Like]) LikeRepository {
	return &likeRepository{store: store}
}

func (r *likeRepository) GetByQuestionAndUser(ctx context.Context, questionID, userID uuid.UUID) (*models.Like, error) {
	likes, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range likes {
		if likes[i].QuestionID == questionID && likes[i].UserID == userID {
			return &likes[i], nil
		}
	}
	return nil, nil
}

func (r *likeRepository) Exists(ctx context.Context, questionID, userID uuid.UUID) (bool, error) {
	like, err := r.GetByQuestionAndUser(ctx, questionID, userID)
	if err != nil {
		return false, err
	}
	return like != nil, nil
}

func (r *likeRepository) GetByQuestionID(ctx context.Context, questionID uuid.UUID) ([]models.Like, error) {
	likes, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]models.Like, 0)
	for _, l := range likes {
		if l.QuestionID == questionID {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

func (r *likeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]models.Like, error) {
	likes, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	matched := make([]models.Like, 0)
	for _, l := range likes {
		if l.UserID == userID {
			matched = append(matched, l)
		}
	}
	return matched, nil
}

func (r *likeRepository) CountByQuestionID(ctx context.Context, questionID uuid.UUID) (int, error) {
	likes, err := r.GetByQuestionID(ctx, questionID)
	if err != nil {
		return 0, err
	}
	return len(likes), nil
}

func (r *likeRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int, error) {
	likes, err := r.GetByUserID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return len(likes), nil
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	if like.ID == uuid.Nil {
		like.ID = uuid.New()
	}
	if like.CreatedAt.IsZero() {
		now := time.Now().UTC()
		like.CreatedAt = now
		like.UpdatedAt = now
	}
	like.IsActive = true
	return r.store.Mutate(ctx, func(likes []models.Like) ([]models.Like, bool, error) {
		return append(likes, *like), true, nil
	})
}

// DeleteByQuestionAndUser removes the like and reports whether one existed.
func (r *likeRepository) DeleteByQuestionAndUser(ctx context.Context, questionID, userID uuid.UUID) (bool, error) {
	removed := false
	err := r.store.Mutate(ctx, func(likes []models.Like) ([]models.Like, bool, error) {
		for i := range likes {
			if likes[i].QuestionID == questionID && likes[i].UserID == userID {
				removed = true
				return append(likes[:i], likes[i+1:]...), true, nil
			}
		}
		return nil, false, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
