package repository

import (
	"context"
	"sort"
	"strings"

	"icebreaker/internal/models"
	"icebreaker/internal/storage"

	"github.com/google/uuid"
)

// QuestionFilter describes the filtering, sorting and pagination applied by
// GetPaginated. Search matches title or content case-insensitively; TopicID
// and UserID restrict to one topic or author when non-nil.
type QuestionFilter struct {
	PageNumber int
	PageSize   int
	SortBy     string // "title", "createdAt", "likeCount", "viewCount"
	SortOrder  string // "asc" or "desc"; default desc
	Search     string
	TopicID    *uuid.UUID
	UserID     *uuid.UUID
}

// QuestionRepository defines the interface for question data operations.
type QuestionRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error)
	GetPaginated(ctx context.Context, filter QuestionFilter) (models.PaginatedResult[models.Question], error)
	Create(ctx context.Context, question *models.Question) error
	Update(ctx context.Context, question *models.Question) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type questionRepository struct {
	store *storage.Store[models.Question]
}

// NewQuestionRepository creates a new question repository over the given store.
func NewQuestionRepository(store *storage.Store[models.Question]) QuestionRepository {
	return &questionRepository{store: store}
}

func (r *questionRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	questions, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		if questions[i].ID == id && questions[i].IsActive {
			return &questions[i], nil
		}
	}
	return nil, nil
}

func (r *questionRepository) GetPaginated(ctx context.Context, filter QuestionFilter) (models.PaginatedResult[models.Question], error) {
	questions, err := r.store.ReadAll(ctx)
	if err != nil {
		return models.PaginatedResult[models.Question]{}, err
	}

	filtered := make([]models.Question, 0, len(questions))
	for _, q := range questions {
		if !q.IsActive {
			continue
		}
		if filter.Search != "" && !containsFold(q.Title, filter.Search) && !containsFold(q.Content, filter.Search) {
			continue
		}
		if filter.TopicID != nil && q.TopicID != *filter.TopicID {
			continue
		}
		if filter.UserID != nil && q.UserID != *filter.UserID {
			continue
		}
		filtered = append(filtered, q)
	}

	applyQuestionSort(filtered, filter.SortBy, filter.SortOrder)

	items, total := models.Paginate(filtered, filter.PageNumber, filter.PageSize)
	return models.NewPaginatedResult(items, total, filter.PageNumber, filter.PageSize), nil
}

// applyQuestionSort orders questions by the requested key and direction.
// An unrecognized or absent key falls back to createdAt descending.
func applyQuestionSort(questions []models.Question, sortBy, sortOrder string) {
	asc := strings.EqualFold(sortOrder, "asc")

	var less func(a, b *models.Question) bool
	switch strings.ToLower(sortBy) {
	case "title":
		less = func(a, b *models.Question) bool {
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	case "likecount":
		less = func(a, b *models.Question) bool { return a.LikeCount < b.LikeCount }
	case "viewcount":
		less = func(a, b *models.Question) bool { return a.ViewCount < b.ViewCount }
	case "createdat":
		less = func(a, b *models.Question) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		less = func(a, b *models.Question) bool { return a.CreatedAt.Before(b.CreatedAt) }
		asc = false
	}

	sort.SliceStable(questions, func(i, j int) bool {
		if asc {
			return less(&questions[i], &questions[j])
		}
		return less(&questions[j], &questions[i])
	})
}

func (r *questionRepository) Create(ctx context.Context, question *models.Question) error {
	return r.store.Mutate(ctx, func(questions []models.Question) ([]models.Question, bool, error) {
		return append(questions, *question), true, nil
	})
}

func (r *questionRepository) Update(ctx context.Context, question *models.Question) error {
	return r.store.Mutate(ctx, func(questions []models.Question) ([]models.Question, bool, error) {
		for i := range questions {
			if questions[i].ID == question.ID {
				questions[i] = *question
				return questions, true, nil
			}
		}
		return nil, false, models.NewNotFoundError("Question", question.ID)
	})
}

func (r *questionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Mutate(ctx, func(questions []models.Question) ([]models.Question, bool, error) {
		for i := range questions {
			if questions[i].ID == id && questions[i].IsActive {
				questions[i].Delete()
				return questions, true, nil
			}
		}
		return nil, false, models.NewNotFoundError("Question", id)
	})
}
