package service

import (
	"context"
	"testing"

	"icebreaker/internal/models"
	"icebreaker/internal/repository"
	"icebreaker/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// likeFixture wires a like service against real file-backed repositories so
// the check-then-insert and counter behavior is exercised end to end.
type likeFixture struct {
	svc          *LikeService
	questionRepo repository.QuestionRepository
	question     *models.Question
	user         *models.User
}

func newLikeFixture(t *testing.T) *likeFixture {
	t.Helper()
	dir := t.TempDir()
	ctx := context.Background()

	userStore, err := storage.NewStore[models.User](dir, "users.json", "users", false)
	require.NoError(t, err)
	questionStore, err := storage.NewStore[models.Question](dir, "questions.json", "questions", false)
	require.NoError(t, err)
	likeStore, err := storage.NewStore[models.Like](dir, "likes.json", "likes", false)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(userStore)
	questionRepo := repository.NewQuestionRepository(questionStore)
	likeRepo := repository.NewLikeRepository(likeStore)

	user, err := models.NewUser("liker", "liker@example.com", "Liker", "")
	require.NoError(t, err)
	require.NoError(t, userRepo.Create(ctx, user))

	question, err := models.NewQuestion(user.ID, uuid.New(), "Likeable", "Content to like")
	require.NoError(t, err)
	require.NoError(t, questionRepo.Create(ctx, question))

	return &likeFixture{
		svc:          NewLikeService(likeRepo, questionRepo, userRepo),
		questionRepo: questionRepo,
		question:     question,
		user:         user,
	}
}

func (f *likeFixture) likeCount(t *testing.T) int {
	t.Helper()
	q, err := f.questionRepo.GetByID(context.Background(), f.question.ID)
	require.NoError(t, err)
	require.NotNil(t, q)
	return q.LikeCount
}

func TestLikeService_LikeTwiceIsIdempotent(t *testing.T) {
	t.Parallel()

	f := newLikeFixture(t)
	ctx := context.Background()

	created, err := f.svc.LikeQuestion(ctx, f.question.ID, f.user.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, 1, f.likeCount(t))

	created, err = f.svc.LikeQuestion(ctx, f.question.ID, f.user.ID)
	require.NoError(t, err)
	assert.False(t, created)
	// the counter does not double-count
	assert.Equal(t, 1, f.likeCount(t))
}

func TestLikeService_UnlikeWithoutLikeReturnsFalse(t *testing.T) {
	t.Parallel()

	f := newLikeFixture(t)
	ctx := context.Background()

	removed, err := f.svc.UnlikeQuestion(ctx, f.question.ID, f.user.ID)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, 0, f.likeCount(t))
}

func TestLikeService_LikeThenUnlikeRoundTrip(t *testing.T) {
	t.Parallel()

	f := newLikeFixture(t)
	ctx := context.Background()

	_, err := f.svc.LikeQuestion(ctx, f.question.ID, f.user.ID)
	require.NoError(t, err)

	liked, err := f.svc.HasLiked(ctx, f.question.ID, f.user.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	removed, err := f.svc.UnlikeQuestion(ctx, f.question.ID, f.user.ID)
	require.NoError(t, err)
	assert.True(t, removed)
	assert.Equal(t, 0, f.likeCount(t))

	liked, err = f.svc.HasLiked(ctx, f.question.ID, f.user.ID)
	require.NoError(t, err)
	assert.False(t, liked)
}

func TestLikeService_UnknownTargets(t *testing.T) {
	t.Parallel()

	f := newLikeFixture(t)
	ctx := context.Background()

	_, err := f.svc.LikeQuestion(ctx, uuid.New(), f.user.ID)
	assertNotFoundError(t, err)

	_, err = f.svc.LikeQuestion(ctx, f.question.ID, uuid.New())
	assertNotFoundError(t, err)
}
