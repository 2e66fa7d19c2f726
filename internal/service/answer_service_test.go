package service

import (
	"context"
	"strings"
	"testing"

	"icebreaker/internal/models"
	"icebreaker/internal/repository"
	"icebreaker/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type answerFixture struct {
	svc          *AnswerService
	questionRepo repository.QuestionRepository
	question     *models.Question
	user         *models.User
}

func newAnswerFixture(t *testing.T) *answerFixture {
	t.Helper()
	dir := t.TempDir()
	ctx := context.Background()

	userStore, err := storage.NewStore[models.User](dir, "users.json", "users", false)
	require.NoError(t, err)
	questionStore, err := storage.NewStore[models.Question](dir, "questions.json", "questions", false)
	require.NoError(t, err)
	answerStore, err := storage.NewStore[models.Answer](dir, "answers.json", "answers", false)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(userStore)
	questionRepo := repository.NewQuestionRepository(questionStore)
	answerRepo := repository.NewAnswerRepository(answerStore)

	user, err := models.NewUser("answerer", "answerer@example.com", "Answerer", "")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(ctx, user))

	question, err := models.NewQuestion(user.ID, uuid.New(), "Answerable", "Content to answer")
	require.NoError(t, err)
	require.NoError(t, questionRepo.Create(ctx, question))

	return &answerFixture{
		svc:          NewAnswerService(answerRepo, questionRepo, userRepo),
		questionRepo: questionRepo,
		question:     question,
		user:         user,
	}
}

func (f *answerFixture) answerCount(t *testing.T) int {
	t.Helper()
	q, err := f.questionRepo.GetByID(context.Background(), f.question.ID)
	require.NoError(t, err)
	require.NotNil(t, q)
	return q.AnswerCount
}

func TestAnswerService_CreateAndDeleteMaintainCounter(t *testing.T) {
	t.Parallel()

	f := newAnswerFixture(t)
	ctx := context.Background()

	answer, err := f.svc.CreateAnswer(ctx, CreateAnswerInput{
		QuestionID: f.question.ID, UserID: f.user.ID, Content: "Here is my take",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, f.answerCount(t))

	require.NoError(t, f.svc.DeleteAnswer(ctx, answer.ID))
	assert.Equal(t, 0, f.answerCount(t))
}

func TestAnswerService_CreateAnswer_Validation(t *testing.T) {
	t.Parallel()

	f := newAnswerFixture(t)
	ctx := context.Background()

	t.Run("empty content", func(t *testing.T) {
		_, err := f.svc.CreateAnswer(ctx, CreateAnswerInput{
			QuestionID: f.question.ID, UserID: f.user.ID, Content: "   ",
		})
		assertValidationError(t, err)
	})

	t.Run("content too long", func(t *testing.T) {
		_, err := f.svc.CreateAnswer(ctx, CreateAnswerInput{
			QuestionID: f.question.ID, UserID: f.user.ID, Content: strings.Repeat("x", 5001),
		})
		assertValidationError(t, err)
	})

	t.Run("unknown question", func(t *testing.T) {
		_, err := f.svc.CreateAnswer(ctx, CreateAnswerInput{
			QuestionID: uuid.New(), UserID: f.user.ID, Content: "Fine content",
		})
		assertNotFoundError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := f.svc.CreateAnswer(ctx, CreateAnswerInput{
			QuestionID: f.question.ID, UserID: uuid.New(), Content: "Fine content",
		})
		assertNotFoundError(t, err)
	})
}

func TestAnswerService_AcceptAnswerFlow(t *testing.T) {
	t.Parallel()

	f := newAnswerFixture(t)
	ctx := context.Background()

	first, err := f.svc.CreateAnswer(ctx, CreateAnswerInput{
		QuestionID: f.question.ID, UserID: f.user.ID, Content: "First answer",
	})
	require.NoError(t, err)
	second, err := f.svc.CreateAnswer(ctx, CreateAnswerInput{
		QuestionID: f.question.ID, UserID: f.user.ID, Content: "Second answer",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.AcceptAnswer(ctx, first.ID))
	require.NoError(t, f.svc.AcceptAnswer(ctx, second.ID))

	accepted, err := f.svc.GetAcceptedAnswer(ctx, f.question.ID)
	require.NoError(t, err)
	require.NotNil(t, accepted)
	assert.Equal(t, second.ID, accepted.ID)

	// accepting an unknown answer changes nothing
	require.NoError(t, f.svc.AcceptAnswer(ctx, uuid.New()))
	accepted, err = f.svc.GetAcceptedAnswer(ctx, f.question.ID)
	require.NoError(t, err)
	require.NotNil(t, accepted)
	assert.Equal(t, second.ID, accepted.ID)
}

func TestAnswerService_BulkCreate_PartialFailure(t *testing.T) {
	t.Parallel()

	f := newAnswerFixture(t)
	ctx := context.Background()

	result, err := f.svc.BulkCreateAnswers(ctx, []CreateAnswerInput{
		{QuestionID: f.question.ID, UserID: f.user.ID, Content: "Good one"},
		{QuestionID: uuid.New(), UserID: f.user.ID, Content: "Bad question ref"},
		{QuestionID: f.question.ID, UserID: f.user.ID, Content: ""},
	})
	require.NoError(t, err)

	assert.Len(t, result.Successes, 1)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, 1, result.Errors[0].Index)
	assert.Equal(t, 2, result.Errors[1].Index)
	assert.Equal(t, 1, f.answerCount(t))
}

func TestAnswerService_GetAnswer_BumpsViewCount(t *testing.T) {
	t.Parallel()

	f := newAnswerFixture(t)
	ctx := context.Background()

	answer, err := f.svc.CreateAnswer(ctx, CreateAnswerInput{
		QuestionID: f.question.ID, UserID: f.user.ID, Content: "Viewable answer",
	})
	require.NoError(t, err)

	got, err := f.svc.GetAnswer(ctx, answer.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.ViewCount)
	assert.Equal(t, "Answerer", got.UserDisplayName)

	got, err = f.svc.GetAnswer(ctx, answer.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.ViewCount)
}
