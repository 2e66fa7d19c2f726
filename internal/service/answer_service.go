package service

import (
	"context"
	"strings"

	"icebreaker/internal/models"
	"icebreaker/internal/observability"
	"icebreaker/internal/repository"

	"github.com/google/uuid"
)

const maxAnswerLen = 5000

// AnswerResponse is an answer joined with the display name of its author.
type AnswerResponse struct {
	models.Answer
	UserDisplayName string `json:"userDisplayName"`
}

type AnswerService struct {
	answerRepo   repository.AnswerRepository
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
}

type CreateAnswerInput struct {
	QuestionID uuid.UUID `json:"questionId"`
	UserID     uuid.UUID `json:"userId"`
	Content    string    `json:"content"`
}

type UpdateAnswerInput struct {
	Content string `json:"content"`
}

type ListAnswersInput struct {
	PageNumber int
	PageSize   int
	QuestionID *uuid.UUID
	UserID     *uuid.UUID
}

func NewAnswerService(
	answerRepo repository.AnswerRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
) *AnswerService {
	return &AnswerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
	}
}

func validateAnswerContent(content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.NewValidationError("Content is required")
	}
	if len(content) > maxAnswerLen {
		return models.NewValidationError("Content must be at most 5000 characters")
	}
	return nil
}

func (s *AnswerService) ListAnswers(ctx context.Context, in ListAnswersInput) (models.PaginatedResult[AnswerResponse], error) {
	in.PageNumber, in.PageSize = normalizePage(in.PageNumber, in.PageSize)

	page, err := s.answerRepo.GetPaginated(ctx, repository.AnswerFilter{
		PageNumber: in.PageNumber,
		PageSize:   in.PageSize,
		QuestionID: in.QuestionID,
		UserID:     in.UserID,
	})
	if err != nil {
		return models.PaginatedResult[AnswerResponse]{}, err
	}

	responses, err := s.enrichAnswers(ctx, page.Items)
	if err != nil {
		return models.PaginatedResult[AnswerResponse]{}, err
	}
	return models.NewPaginatedResult(responses, page.TotalCount, page.PageNumber, page.PageSize), nil
}

// GetAnswer returns the enriched answer and bumps its view count. A failure
// to persist the bumped count is logged but does not fail the read.
func (s *AnswerService) GetAnswer(ctx context.Context, id uuid.UUID) (*AnswerResponse, error) {
	answer, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, models.NewNotFoundError("Answer", id)
	}

	answer.IncrementViewCount()
	if err := s.answerRepo.Update(ctx, answer); err != nil {
		observability.Logger.WarnContext(ctx, "failed to persist view count",
			"answer_id", id, "error", err)
	}

	responses, err := s.enrichAnswers(ctx, []models.Answer{*answer})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

func (s *AnswerService) GetAnswersForQuestion(ctx context.Context, questionID uuid.UUID) ([]AnswerResponse, error) {
	if err := s.requireQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	answers, err := s.answerRepo.GetByQuestionID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	return s.enrichAnswers(ctx, answers)
}

func (s *AnswerService) CreateAnswer(ctx context.Context, in CreateAnswerInput) (*models.Answer, error) {
	if err := validateAnswerContent(in.Content); err != nil {
		return nil, err
	}
	if err := s.requireQuestion(ctx, in.QuestionID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", in.UserID)
	}

	answer, err := models.NewAnswer(in.QuestionID, in.UserID, in.Content)
	if err != nil {
		return nil, err
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		return nil, err
	}
	s.adjustAnswerCount(ctx, in.QuestionID, 1)
	return answer, nil
}

// BulkCreateAnswers validates every entry first, persists the valid ones in
// a single write, and reports per-index failures for the rest.
func (s *AnswerService) BulkCreateAnswers(ctx context.Context, inputs []CreateAnswerInput) (*models.BulkResult[models.Answer], error) {
	result := &models.BulkResult[models.Answer]{
		Successes: make([]models.Answer, 0, len(inputs)),
		Errors:    make([]models.BulkError, 0),
	}

	valid := make([]*models.Answer, 0, len(inputs))
	for i, in := range inputs {
		answer, err := s.buildAnswer(ctx, in)
		if err != nil {
			result.Errors = append(result.Errors, models.BulkError{Index: i, Error: err.Error()})
			continue
		}
		valid = append(valid, answer)
	}

	if err := s.answerRepo.CreateBulk(ctx, valid); err != nil {
		return nil, err
	}
	for _, a := range valid {
		result.Successes = append(result.Successes, *a)
		s.adjustAnswerCount(ctx, a.QuestionID, 1)
	}
	return result, nil
}

func (s *AnswerService) buildAnswer(ctx context.Context, in CreateAnswerInput) (*models.Answer, error) {
	if err := validateAnswerContent(in.Content); err != nil {
		return nil, err
	}
	if err := s.requireQuestion(ctx, in.QuestionID); err != nil {
		return nil, err
	}
	user, err := s.userRepo.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", in.UserID)
	}
	return models.NewAnswer(in.QuestionID, in.UserID, in.Content)
}

func (s *AnswerService) UpdateAnswer(ctx context.Context, id uuid.UUID, in UpdateAnswerInput) (*models.Answer, error) {
	answer, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, models.NewNotFoundError("Answer", id)
	}
	if err := validateAnswerContent(in.Content); err != nil {
		return nil, err
	}

	answer.Content = strings.TrimSpace(in.Content)
	answer.Touch()
	if err := s.answerRepo.Update(ctx, answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) DeleteAnswer(ctx context.Context, id uuid.UUID) error {
	answer, err := s.answerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if answer == nil {
		return models.NewNotFoundError("Answer", id)
	}
	if err := s.answerRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.adjustAnswerCount(ctx, answer.QuestionID, -1)
	return nil
}

// AcceptAnswer marks the answer as the accepted one for its question,
// clearing any previously accepted sibling. Unknown ids are ignored.
func (s *AnswerService) AcceptAnswer(ctx context.Context, answerID uuid.UUID) error {
	return s.answerRepo.MarkAccepted(ctx, answerID)
}

func (s *AnswerService) GetAcceptedAnswer(ctx context.Context, questionID uuid.UUID) (*AnswerResponse, error) {
	if err := s.requireQuestion(ctx, questionID); err != nil {
		return nil, err
	}
	answer, err := s.answerRepo.GetAccepted(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if answer == nil {
		return nil, nil
	}
	responses, err := s.enrichAnswers(ctx, []models.Answer{*answer})
	if err != nil {
		return nil, err
	}
	return &responses[0], nil
}

func (s *AnswerService) requireQuestion(ctx context.Context, questionID uuid.UUID) error {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return err
	}
	if question == nil {
		return models.NewNotFoundError("Question", questionID)
	}
	return nil
}

// adjustAnswerCount keeps the question's denormalized answer counter in step
// with answer writes. Counter drift is logged, never surfaced to callers.
func (s *AnswerService) adjustAnswerCount(ctx context.Context, questionID uuid.UUID, delta int) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil || question == nil {
		observability.Logger.WarnContext(ctx, "failed to load question for answer count",
			"question_id", questionID, "error", err)
		return
	}
	if delta > 0 {
		question.IncrementAnswerCount()
	} else {
		question.DecrementAnswerCount()
	}
	if err := s.questionRepo.Update(ctx, question); err != nil {
		observability.Logger.WarnContext(ctx, "failed to persist answer count",
			"question_id", questionID, "error", err)
	}
}

func (s *AnswerService) enrichAnswers(ctx context.Context, answers []models.Answer) ([]AnswerResponse, error) {
	if len(answers) == 0 {
		return []AnswerResponse{}, nil
	}

	userIDs := make([]uuid.UUID, 0, len(answers))
	seen := make(map[uuid.UUID]struct{}, len(answers))
	for _, a := range answers {
		if _, ok := seen[a.UserID]; !ok {
			seen[a.UserID] = struct{}{}
			userIDs = append(userIDs, a.UserID)
		}
	}

	users, err := s.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	usersByID := make(map[uuid.UUID]models.User, len(users))
	for _, u := range users {
		usersByID[u.ID] = u
	}

	responses := make([]AnswerResponse, 0, len(answers))
	for _, a := range answers {
		resp := AnswerResponse{Answer: a}
		if u, ok := usersByID[a.UserID]; ok {
			resp.UserDisplayName = u.DisplayName
		}
		responses = append(responses, resp)
	}
	return responses, nil
}
