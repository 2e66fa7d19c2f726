package service

import (
	"context"
	"testing"

	"icebreaker/internal/models"
	"icebreaker/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	getByIDFn          func(context.Context, uuid.UUID) (*models.User, error)
	findByEmailFn      func(context.Context, string) (*models.User, error)
	findByUsernameFn   func(context.Context, string) (*models.User, error)
	existsByEmailFn    func(context.Context, string) (bool, error)
	existsByUsernameFn func(context.Context, string) (bool, error)
	getPageFn          func(context.Context, int, int) (models.PaginatedResult[models.User], error)
	getByIDsFn         func(context.Context, []uuid.UUID) ([]models.User, error)
	createFn           func(context.Context, *models.User) error
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uuid.UUID) error
}

func (s *userRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findByEmailFn(ctx, email)
}
func (s *userRepoStub) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findByUsernameFn(ctx, username)
}
func (s *userRepoStub) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.existsByEmailFn(ctx, email)
}
func (s *userRepoStub) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.existsByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetPage(ctx context.Context, pageNumber, pageSize int) (models.PaginatedResult[models.User], error) {
	return s.getPageFn(ctx, pageNumber, pageSize)
}
func (s *userRepoStub) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.User, error) {
			return &models.User{Base: models.Base{ID: id, IsActive: true}, Username: "stub", DisplayName: "Stub User"}, nil
		},
		findByEmailFn:      func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		findByUsernameFn:   func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		existsByEmailFn:    func(_ context.Context, _ string) (bool, error) { return false, nil },
		existsByUsernameFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
		getPageFn: func(_ context.Context, pageNumber, pageSize int) (models.PaginatedResult[models.User], error) {
			return models.NewPaginatedResult[models.User](nil, 0, pageNumber, pageSize), nil
		},
		getByIDsFn: func(_ context.Context, ids []uuid.UUID) ([]models.User, error) {
			users := make([]models.User, 0, len(ids))
			for _, id := range ids {
				users = append(users, models.User{Base: models.Base{ID: id, IsActive: true}, DisplayName: "Stub User"})
			}
			return users, nil
		},
		createFn: func(_ context.Context, _ *models.User) error { return nil },
		updateFn: func(_ context.Context, _ *models.User) error { return nil },
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

// topicRepoStub is a stub for repository.TopicRepository.
type topicRepoStub struct {
	getByIDFn      func(context.Context, uuid.UUID) (*models.Topic, error)
	findByNameFn   func(context.Context, string) (*models.Topic, error)
	existsByNameFn func(context.Context, string) (bool, error)
	getPaginatedFn func(context.Context, int, int, string) (models.PaginatedResult[models.Topic], error)
	getByIDsFn     func(context.Context, []uuid.UUID) ([]models.Topic, error)
	createFn       func(context.Context, *models.Topic) error
	updateFn       func(context.Context, *models.Topic) error
	deleteFn       func(context.Context, uuid.UUID) error
}

func (s *topicRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	return s.getByIDFn(ctx, id)
}
func (s *topicRepoStub) FindByName(ctx context.Context, name string) (*models.Topic, error) {
	return s.findByNameFn(ctx, name)
}
func (s *topicRepoStub) ExistsByName(ctx context.Context, name string) (bool, error) {
	return s.existsByNameFn(ctx, name)
}
func (s *topicRepoStub) GetPaginated(ctx context.Context, pageNumber, pageSize int, search string) (models.PaginatedResult[models.Topic], error) {
	return s.getPaginatedFn(ctx, pageNumber, pageSize, search)
}
func (s *topicRepoStub) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Topic, error) {
	return s.getByIDsFn(ctx, ids)
}
func (s *topicRepoStub) Create(ctx context.Context, topic *models.Topic) error {
	return s.createFn(ctx, topic)
}
func (s *topicRepoStub) Update(ctx context.Context, topic *models.Topic) error {
	return s.updateFn(ctx, topic)
}
func (s *topicRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func noopTopicRepo() *topicRepoStub {
	return &topicRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Topic, error) {
			return &models.Topic{Base: models.Base{ID: id, IsActive: true}, Name: "Stub Topic"}, nil
		},
		findByNameFn:   func(_ context.Context, _ string) (*models.Topic, error) { return nil, nil },
		existsByNameFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
		getPaginatedFn: func(_ context.Context, pageNumber, pageSize int, _ string) (models.PaginatedResult[models.Topic], error) {
			return models.NewPaginatedResult[models.Topic](nil, 0, pageNumber, pageSize), nil
		},
		getByIDsFn: func(_ context.Context, ids []uuid.UUID) ([]models.Topic, error) {
			topics := make([]models.Topic, 0, len(ids))
			for _, id := range ids {
				topics = append(topics, models.Topic{Base: models.Base{ID: id, IsActive: true}, Name: "Stub Topic"})
			}
			return topics, nil
		},
		createFn: func(_ context.Context, _ *models.Topic) error { return nil },
		updateFn: func(_ context.Context, _ *models.Topic) error { return nil },
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

// questionRepoStub is a stub for repository.QuestionRepository.
type questionRepoStub struct {
	getByIDFn      func(context.Context, uuid.UUID) (*models.Question, error)
	getPaginatedFn func(context.Context, repository.QuestionFilter) (models.PaginatedResult[models.Question], error)
	createFn       func(context.Context, *models.Question) error
	updateFn       func(context.Context, *models.Question) error
	deleteFn       func(context.Context, uuid.UUID) error
}

func (s *questionRepoStub) GetByID(ctx context.Context, id uuid.UUID) (*models.Question, error) {
	return s.getByIDFn(ctx, id)
}
func (s *questionRepoStub) GetPaginated(ctx context.Context, filter repository.QuestionFilter) (models.PaginatedResult[models.Question], error) {
	return s.getPaginatedFn(ctx, filter)
}
func (s *questionRepoStub) Create(ctx context.Context, question *models.Question) error {
	return s.createFn(ctx, question)
}
func (s *questionRepoStub) Update(ctx context.Context, question *models.Question) error {
	return s.updateFn(ctx, question)
}
func (s *questionRepoStub) Delete(ctx context.Context, id uuid.UUID) error {
	return s.deleteFn(ctx, id)
}

func noopQuestionRepo() *questionRepoStub {
	return &questionRepoStub{
		getByIDFn: func(_ context.Context, id uuid.UUID) (*models.Question, error) {
			return &models.Question{
				Base:    models.Base{ID: id, IsActive: true},
				UserID:  uuid.New(),
				TopicID: uuid.New(),
				Title:   "Stub question",
				Content: "Stub question content",
			}, nil
		},
		getPaginatedFn: func(_ context.Context, f repository.QuestionFilter) (models.PaginatedResult[models.Question], error) {
			return models.NewPaginatedResult[models.Question](nil, 0, f.PageNumber, f.PageSize), nil
		},
		createFn: func(_ context.Context, _ *models.Question) error { return nil },
		updateFn: func(_ context.Context, _ *models.Question) error { return nil },
		deleteFn: func(_ context.Context, _ uuid.UUID) error { return nil },
	}
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.True(t, models.IsNotFound(err))
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFLICT", appErr.Code)
}
