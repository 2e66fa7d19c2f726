package service

import (
	"context"
	"strings"

	"icebreaker/internal/models"
	"icebreaker/internal/repository"

	"github.com/google/uuid"
)

type TopicService struct {
	topicRepo repository.TopicRepository
}

type CreateTopicInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateTopicInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func NewTopicService(topicRepo repository.TopicRepository) *TopicService {
	return &TopicService{topicRepo: topicRepo}
}

func (s *TopicService) GetTopic(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, models.NewNotFoundError("Topic", id)
	}
	return topic, nil
}

func (s *TopicService) ListTopics(ctx context.Context, pageNumber, pageSize int, search string) (models.PaginatedResult[models.Topic], error) {
	pageNumber, pageSize = normalizePage(pageNumber, pageSize)
	return s.topicRepo.GetPaginated(ctx, pageNumber, pageSize, search)
}

// CreateTopic adds a topic. Topic names are unique, compared
// case-insensitively.
func (s *TopicService) CreateTopic(ctx context.Context, in CreateTopicInput) (*models.Topic, error) {
	topic, err := models.NewTopic(in.Name, in.Description)
	if err != nil {
		return nil, err
	}

	taken, err := s.topicRepo.ExistsByName(ctx, topic.Name)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, models.NewConflictError("A topic with this name already exists")
	}

	if err := s.topicRepo.Create(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

func (s *TopicService) UpdateTopic(ctx context.Context, id uuid.UUID, in UpdateTopicInput) (*models.Topic, error) {
	topic, err := s.topicRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, models.NewNotFoundError("Topic", id)
	}

	if name := strings.TrimSpace(in.Name); name != "" && !strings.EqualFold(name, topic.Name) {
		taken, err := s.topicRepo.ExistsByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, models.NewConflictError("A topic with this name already exists")
		}
	}

	topic.Update(in.Name, in.Description)
	if err := s.topicRepo.Update(ctx, topic); err != nil {
		return nil, err
	}
	return topic, nil
}

// DeleteTopic removes the topic record permanently.
func (s *TopicService) DeleteTopic(ctx context.Context, id uuid.UUID) error {
	return s.topicRepo.Delete(ctx, id)
}
