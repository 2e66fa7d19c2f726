package service

import (
	"context"

	"icebreaker/internal/models"
	"icebreaker/internal/observability"
	"icebreaker/internal/repository"

	"github.com/google/uuid"
)

type LikeService struct {
	likeRepo     repository.LikeRepository
	questionRepo repository.QuestionRepository
	userRepo     repository.UserRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
) *LikeService {
	return &LikeService{
		likeRepo:     likeRepo,
		questionRepo: questionRepo,
		userRepo:     userRepo,
	}
}

// LikeQuestion records a like and reports whether a new one was created.
// Liking an already liked question returns false without error.
func (s *LikeService) LikeQuestion(ctx context.Context, questionID, userID uuid.UUID) (bool, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return false, err
	}
	if question == nil {
		return false, models.NewNotFoundError("Question", questionID)
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, models.NewNotFoundError("User", userID)
	}

	exists, err := s.likeRepo.Exists(ctx, questionID, userID)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}

	like := models.NewLike(questionID, userID)
	if err := s.likeRepo.Create(ctx, like); err != nil {
		return false, err
	}

	question.IncrementLikeCount()
	if err := s.questionRepo.Update(ctx, question); err != nil {
		observability.Logger.WarnContext(ctx, "failed to persist like count",
			"question_id", questionID, "error", err)
	}
	return true, nil
}

// UnlikeQuestion removes a like and reports whether one was removed.
// Unliking a question that was never liked returns false without error.
func (s *LikeService) UnlikeQuestion(ctx context.Context, questionID, userID uuid.UUID) (bool, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return false, err
	}
	if question == nil {
		return false, models.NewNotFoundError("Question", questionID)
	}

	removed, err := s.likeRepo.DeleteByQuestionAndUser(ctx, questionID, userID)
	if err != nil {
		return false, err
	}
	if !removed {
		return false, nil
	}

	question.DecrementLikeCount()
	if err := s.questionRepo.Update(ctx, question); err != nil {
		observability.Logger.WarnContext(ctx, "failed to persist like count",
			"question_id", questionID, "error", err)
	}
	return true, nil
}

func (s *LikeService) HasLiked(ctx context.Context, questionID, userID uuid.UUID) (bool, error) {
	return s.likeRepo.Exists(ctx, questionID, userID)
}

func (s *LikeService) GetLikesForQuestion(ctx context.Context, questionID uuid.UUID) ([]models.Like, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}
	if question == nil {
		return nil, models.NewNotFoundError("Question", questionID)
	}
	return s.likeRepo.GetByQuestionID(ctx, questionID)
}

func (s *LikeService) GetLikesByUser(ctx context.Context, userID uuid.UUID) ([]models.Like, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewNotFoundError("User", userID)
	}
	return s.likeRepo.GetByUserID(ctx, userID)
}

func (s *LikeService) CountLikes(ctx context.Context, questionID uuid.UUID) (int, error) {
	return s.likeRepo.CountByQuestionID(ctx, questionID)
}

func (s *LikeService) CountLikesByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.likeRepo.CountByUserID(ctx, userID)
}
