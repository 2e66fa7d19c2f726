package repository

import (
	"context"
	"sort"
	"strings"

	"icebreaker/internal/models"
	"icebreaker/internal/storage"

	"github.com/google/uuid"
)

// TopicRepository defines the interface for topic data operations. Topics
// are the one entity type that is hard-deleted.
type TopicRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Topic, error)
	FindByName(ctx context.Context, name string) (*models.Topic, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	GetPaginated(ctx context.Context, pageNumber, pageSize int, search string) (models.PaginatedResult[models.Topic], error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Topic, error)
	Create(ctx context.Context, topic *models.Topic) error
	Update(ctx context.Context, topic *models.Topic) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type topicRepository struct {
	store *storage.Store[models.Topic]
}

// NewTopicRepository creates a new topic repository over the given store.
func NewTopicRepository(store *storage.Store[models.Topic]) TopicRepository {
	return &topicRepository{store: store}
}

func (r *topicRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	topics, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range topics {
		if topics[i].ID == id && topics[i].IsActive {
			return &topics[i], nil
		}
	}
	return nil, nil
}

func (r *topicRepository) FindByName(ctx context.Context, name string) (*models.Topic, error) {
	topics, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range topics {
		if topics[i].IsActive && strings.EqualFold(topics[i].Name, name) {
			return &topics[i], nil
		}
	}
	return nil, nil
}

func (r *topicRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	topic, err := r.FindByName(ctx, name)
	return topic != nil, err
}

func (r *topicRepository) GetPaginated(ctx context.Context, pageNumber, pageSize int, search string) (models.PaginatedResult[models.Topic], error) {
	topics, err := r.store.ReadAll(ctx)
	if err != nil {
		return models.PaginatedResult[models.Topic]{}, err
	}

	filtered := make([]models.Topic, 0, len(topics))
	for _, t := range topics {
		if !t.IsActive {
			continue
		}
		if search != "" && !containsFold(t.Name, search) && !containsFold(t.Description, search) {
			continue
		}
		filtered = append(filtered, t)
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].CreatedAt.After(filtered[j].CreatedAt)
	})

	items, total := models.Paginate(filtered, pageNumber, pageSize)
	return models.NewPaginatedResult(items, total, pageNumber, pageSize), nil
}

func (r *topicRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Topic, error) {
	topics, err := r.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}

	idSet := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		idSet[id] = struct{}{}
	}

	matched := make([]models.Topic, 0, len(ids))
	for _, t := range topics {
		if _, ok := idSet[t.ID]; ok && t.IsActive {
			matched = append(matched, t)
		}
	}
	return matched, nil
}

func (r *topicRepository) Create(ctx context.Context, topic *models.Topic) error {
	return r.store.Mutate(ctx, func(topics []models.Topic) ([]models.Topic, bool, error) {
		return append(topics, *topic), true, nil
	})
}

func (r *topicRepository) Update(ctx context.Context, topic *models.Topic) error {
	return r.store.Mutate(ctx, func(topics []models.Topic) ([]models.Topic, bool, error) {
		for i := range topics {
			if topics[i].ID == topic.ID {
				topics[i] = *topic
				return topics, true, nil
			}
		}
		return nil, false, models.NewNotFoundError("Topic", topic.ID)
	})
}

// Delete removes the topic from the collection entirely.
func (r *topicRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Mutate(ctx, func(topics []models.Topic) ([]models.Topic, bool, error) {
		for i := range topics {
			if topics[i].ID == id {
				return append(topics[:i], topics[i+1:]...), true, nil
			}
		}
		return nil, false, models.NewNotFoundError("Topic", id)
	})
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
