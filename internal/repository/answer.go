package repository

import (
	"context"
	"sort"

	"icebreaker/internal/models"
	"icebreaker/internal/storage"

	"github.com/google/uuid"
)

// AnswerFilter restricts paginated answer listings to one question and/or
// one author when the corresponding ids are non-nil.
type AnswerFilter struct {
	PageNumber int
	PageSize   int
	QuestionID *uuid.UUID
	UserID     *uuid.UUID
}

// AnswerRepository defines the interface for answer data operations.
type AnswerRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Answer, error)
	GetPaginated(ctx context.Context, filter AnswerFilter) (models.PaginatedResult[models.Answer], error)
	GetByQuestionID(ctx context.Context, questionID uuid.UUID) ([]models.Answer, error)
	GetAccepted(ctx context.Context, questionID uuid.UUID) (*models.Answer, error)
	Create(ctx context.Context, answer *models.Answer) error
	CreateBulk(ctx context.Context, answers []*models.Answer) error
	Update(ctx context.Context, answer *models.Answer) error
	Delete(ctx context.Context, id uuid.UUID) error
	MarkAccepted(ctx context.Context, answerID uuid.UUID) error
}

type answerRepository struct {
	store *storage.Store[models.Answer]
}

// NewAnswerRepository creates a new answer repository over the given store.
func NewAnswerRepository(store *storage.Store[models.Answer]) AnswerRepository {
	return &answerRepository{store: store}
}

func (r *answerRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Answer, error) {
	answers, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range answers {
		if answers[i].ID == id && answers[i].IsActive {
			return &answers[i], nil
		}
	}
	return nil, nil
}

func (r *answerRepository) GetPaginated(ctx context.Context, filter AnswerFilter) (models.PaginatedResult[models.Answer], error) {
	answers, err := r.store.ReadAll(ctx)
	if err != nil {
		return models.PaginatedResult[models.Answer]{}, err
	}

	filtered := make([]models.Answer, 0, len(answers))
	for _, a := range answers {
		if !a.IsActive {
			continue
		}
		if filter.QuestionID != nil && a.QuestionID != *filter.QuestionID {
			continue
		}
		if filter.UserID != nil && a.UserID != *filter.UserID {
			continue
		}
		filtered = append(filtered, a)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	items, total := models.Paginate(filtered, filter.PageNumber, filter.PageSize)
	return models.NewPaginatedResult(items, total, filter.PageNumber, filter.PageSize), nil
}

func (r *answerRepository) GetByQuestionID(ctx context.Context, questionID uuid.UUID) ([]models.Answer, error) {
	answers, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]models.Answer, 0)
	for _, a := range answers {
		if a.QuestionID == questionID && a.IsActive {
			matched = append(matched, a)
		}
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})
	return matched, nil
}

func (r *answerRepository) GetAccepted(ctx context.Context, questionID uuid.UUID) (*models.Answer, error) {
	answers, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range answers {
		if answers[i].QuestionID == questionID && answers[i].IsAccepted && answers[i].IsActive {
			return &answers[i], nil
		}
	}
	return nil, nil
}

func (r *answerRepository) Create(ctx context.Context, answer *models.Answer) error {
	return r.store.Mutate(ctx, func(answers []models.Answer) ([]models.Answer, bool, error) {
		return append(answers, *answer), true, nil
	})
}

// CreateBulk appends all answers in a single read-modify-write cycle, so a
// write failure persists none of them.
func (r *answerRepository) CreateBulk(ctx context.Context, newAnswers []*models.Answer) error {
	if len(newAnswers) == 0 {
		return nil
	}
	return r.store.Mutate(ctx, func(answers []models.Answer) ([]models.Answer, bool, error) {
		for _, a := range newAnswers {
			answers = append(answers, *a)
		}
		return answers, true, nil
	})
}

func (r *answerRepository) Update(ctx context.Context, answer *models.Answer) error {
	return r.store.Mutate(ctx, func(answers []models.Answer) ([]models.Answer, bool, error) {
		for i := range answers {
			if answers[i].ID == answer.ID {
				answers[i] = *answer
				return answers, true, nil
			}
		}
		return nil, false, models.NewNotFoundError("Answer", answer.ID)
	})
}

func (r *answerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Mutate(ctx, func(answers []models.Answer) ([]models.Answer, bool, error) {
		for i := range answers {
			if answers[i].ID == id && answers[i].IsActive {
				answers[i].Delete()
				return answers, true, nil
			}
		}
		return nil, false, models.NewNotFoundError("Answer", id)
	})
}

// MarkAccepted flags the given answer as accepted and clears the flag on
// every sibling answer of the same question, in a single locked
// read-modify-write. When answerID does not resolve to an active answer the
// call is a silent no-op.
func (r *answerRepository) MarkAccepted(ctx context.Context, answerID uuid.UUID) error {
	return r.store.Mutate(ctx, func(answers []models.Answer) ([]models.Answer, bool, error) {
		target := -1
		for i := range answers {
			if answers[i].ID == answerID && answers[i].IsActive {
				target = i
				break
			}
		}
		if target == -1 {
			return nil, false, nil
		}

		questionID := answers[target].QuestionID
		for i := range answers {
			if answers[i].QuestionID == questionID && answers[i].IsAccepted {
				answers[i].IsAccepted = false
				answers[i].Touch()
			}
		}
		answers[target].IsAccepted = true
		answers[target].Touch()
		return answers, true, nil
	})
}
