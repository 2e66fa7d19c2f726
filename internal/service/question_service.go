package service

import (
	"context"
	"strings"

	"icebreaker/internal/models"
	"icebreaker/internal/observability"
	"icebreaker/internal/repository"

	"github.com/google/uuid"
)

const (
	minTitleLen   = 5
	maxTitleLen   = 200
	minContentLen = 10
	maxContentLen = 5000

	defaultPageSize = 10
	maxPageSize     = 100
)

// QuestionResponse is a question joined with the display fields of its
// author and topic.
type QuestionResponse struct {
	models.Question
	UserDisplayName string `json:"userDisplayName"`
	TopicName       string `json:"topicName"`
}

type QuestionService struct {
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
	topicRepo    repository.TopicRepository
}

type CreateQuestionInput struct {
	UserID  uuid.UUID `json:"userId"`
	TopicID uuid.UUID `json:"topicId"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
}

type UpdateQuestionInput struct {
	Title   string     `json:"title"`
	Content string     `json:"content"`
	TopicID *uuid.UUID `json:"topicId"`
}

type ListQuestionsInput struct {
	PageNumber int
	PageSize   int
	SortBy     string
	SortOrder  string
	Search     string
	TopicID    *uuid.UUID
	UserID     *uuid.UUID
}

func NewQuestionService(
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	topicRepo repository.TopicRepository,
) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		userRepo:     userRepo,
		topicRepo:    topicRepo,
	}
}

// normalizePage clamps page number and page size to their valid ranges.
func normalizePage(pageNumber, pageSize int) (int, int) {
	if pageNumber < 1 {
		pageNumber = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return pageNumber, pageSize
}

func validateQuestionContent(title, content string) error {
	title = strings.TrimSpace(title)
	content = strings.TrimSpace(content)
	if len(title) < minTitleLen || len(title) > maxTitleLen {
		return models.NewValidationError("Title must be between 5 and 200 characters")
	}
	if len(content) < minContentLen || len(content) > maxContentLen {
		return models.NewValidationError("Content must be between 10 and 5000 characters")
	}
	return nil
}

func (s *QuestionService) ListQuestions(ctx context.Context, in ListQuestionsInput) (models.PaginatedResult[QuestionResponse], error) {
	in.PageNumber, in.PageSize = normalizePage(in.PageNumber, in.PageSize)

	page, err := s.questionRepo.GetPaginated(ctx, repository.QuestionFilter{
		PageNumber: in.PageNumber,
		PageSize:   in.PageSize,
		SortBy:     in.SortBy,
		SortOrder:  in.SortOrder,
		Search:     in.Search,
		TopicID:    in.TopicID,
		UserID:     in.UserID,
	})
	if err != nil {
		return models.PaginatedResult[QuestionResponse]{}, err
	}

	responses, err := s.enrichQuestions(ctx, page.Items)
	if err != nil {
		return models.PaginatedResult[QuestionResponse]{}, err
	}
	return models.NewPaginatedResult(responses, page.TotalCount, page.PageNumber, page.PageSize), nil
}

// GetQuestion returns the enriched question and bumps its view count. A
// failure to persist the bumped count is logged but does not fail the read.
func (s *QuestionService) GetQuestion(ctx context.Context, id uuid.UUID) (*QuestionResponse, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, models.NewNotFoundError("Question", id)
	}

	question.IncrementViewCount()
	if err := s.questionRepo.Update(ctx, question); err != nil {
		observability.Logger.WarnContext(ctx, "failed to persist view count",
			"question_id", id, "error", err)
	}

	responses, err := s.enrichQuestions(ctx, []models.Question{*question})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

// CreateQuestion persists a new question and returns it enriched with the
// author's display name and the topic name.
func (s *QuestionService) CreateQuestion(ctx context.Context, in CreateQuestionInput) (*QuestionResponse, error) {
	if err := validateQuestionContent(in.Title, in.Content); err != nil {
		return nil, err
	}
	if err := s.requireUser(ctx, in.UserID); err != nil {
		return nil, err
	}
	if err := s.requireTopic(ctx, in.TopicID); err != nil {
		return nil, err
	}

	question, err := models.NewQuestion(in.UserID, in.TopicID, in.Title, in.Content)
	if err != nil {
		return nil, err
	}
	if err := s.questionRepo.Create(ctx, question); err != nil {
		return nil, err
	}
	responses, err := s.enrichQuestions(ctx, []models.Question{*question})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

func (s *QuestionService) UpdateQuestion(ctx context.Context, id uuid.UUID, in UpdateQuestionInput) (*models.Question, error) {
	question, err := s.questionRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, models.NewNotFoundError("Question", id)
	}

	if title := strings.TrimSpace(in.Title); title != "" {
		if len(title) < minTitleLen || len(title) > maxTitleLen {
			return nil, models.NewValidationError("Title must be between 5 and 200 characters")
		}
	}
	if content := strings.TrimSpace(in.Content); content != "" {
		if len(content) < minContentLen || len(content) > maxContentLen {
			return nil, models.NewValidationError("Content must be between 10 and 5000 characters")
		}
	}
	if in.TopicID != nil {
		if err := s.requireTopic(ctx, *in.TopicID); err != nil {
			return nil, err
		}
	}

	question.Update(in.Title, in.Content, in.TopicID)
	if err := s.questionRepo.Update(ctx, question); err != nil {
		return nil, err
	}
	return question, nil
}

func (s *QuestionService) DeleteQuestion(ctx context.Context, id uuid.UUID) error {
	return s.questionRepo.Delete(ctx, id)
}

// BulkCreateQuestions creates each question independently and collects
// per-index failures so one bad entry does not reject the batch.
func (s *QuestionService) BulkCreateQuestions(ctx context.Context, inputs []CreateQuestionInput) (*models.BulkResult[QuestionResponse], error) {
	result := &models.BulkResult[QuestionResponse]{
		Successes: make([]QuestionResponse, 0, len(inputs)),
		Errors:    make([]models.BulkError, 0),
	}
	for i, in := range inputs {
		question, err := s.CreateQuestion(ctx, in)
		if err != nil {
			result.Errors = append(result.Errors, models.BulkError{Index: i, Error: err.Error()})
			continue
		}
		result.Successes = append(result.Successes, *question)
	}
	return result, nil
}

func (s *QuestionService) requireUser(ctx context.Context, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return models.NewNotFoundError("User", userID)
	}
	return nil
}

func (s *QuestionService) requireTopic(ctx context.Context, topicID uuid.UUID) error {
	topic, err := s.topicRepo.GetByID(ctx, topicID)
	if err != nil {
		return err
	}
	if topic == nil {
		return models.NewNotFoundError("Topic", topicID)
	}
	return nil
}

// enrichQuestions joins author display names and topic names using one
// batched lookup per collection instead of a lookup per question.
func (s *QuestionService) enrichQuestions(ctx context.Context, questions []models.Question) ([]QuestionResponse, error) {
	if len(questions) == 0 {
		return []QuestionResponse{}, nil
	}

	userIDs := make([]uuid.UUID, 0, len(questions))
	topicIDs := make([]uuid.UUID, 0, len(questions))
	seenUsers := make(map[uuid.UUID]struct{}, len(questions))
	seenTopics := make(map[uuid.UUID]struct{}, len(questions))
	for _, q := range questions {
		if _, ok := seenUsers[q.UserID]; !ok {
			seenUsers[q.UserID] = struct{}{}
			userIDs = append(userIDs, q.UserID)
		}
		if _, ok := seenTopics[q.TopicID]; !ok {
			seenTopics[q.TopicID] = struct{}{}
			topicIDs = append(topicIDs, q.TopicID)
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	topics, err := s.topicRepo.GetByIDs(ctx, topicIDs)
	if err != nil {
		return nil, err
	}

	usersByID := make(map[uuid.UUID]models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}
	topicsByID := make(map[uuid.UUID]models.Topic, len(topics))
	for _, t := range topics {
		topicsByID[t.ID] = t
	}

	responses := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		resp := QuestionResponse{Question: q}
		if u, ok := usersByID[q.UserID]; ok {
			resp.UserDisplayName = u.DisplayName
		}
		if t, ok := topicsByID[q.TopicID]; ok {
			resp.TopicName = t.Name
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
