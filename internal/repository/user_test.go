package repository

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"icebreaker/internal/models"
	"icebreaker/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserRepo(t *testing.T) (UserRepository, *storage.Store[models.User]) {
	t.Helper()
	store, err := storage.NewStore[models.User](t.TempDir(), "users.json", "users", true)
	require.NoError(t, err)
	return NewUserRepository(store), store
}

func mustUser(t *testing.T, username, email string) *models.User {
	t.Helper()
	user, err := models.NewUser(username, email, "Test "+username, "")
	require.NoError(t, err)
	return user
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	t.Parallel()

	repo, _ := newUserRepo(t)
	ctx := context.Background()

	user := mustUser(t, "alice", "alice@example.com")
	require.NoError(t, repo.Create(ctx, user))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
}

func TestUserRepository_GetByID_UnknownReturnsNil(t *testing.T) {
	t.Parallel()

	repo, _ := newUserRepo(t)
	got, err := repo.GetByID(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestUserRepository_LookupsAreCaseInsensitive(t *testing.T) {
	t.Parallel()

	repo, _ := newUserRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, mustUser(t, "Bob_99", "Bob@Example.com")))

	byName, err := repo.FindByUsername(ctx, "bob_99")
	require.NoError(t, err)
	require.NotNil(t, byName)

	byEmail, err := repo.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)

	taken, err := repo.ExistsByUsername(ctx, "BOB_99")
	require.NoError(t, err)
	assert.True(t, taken)
}

func TestUserRepository_SoftDeleteHidesButKeepsRecord(t *testing.T) {
	t.Parallel()

	repo, store := newUserRepo(t)
	ctx := context.Background()

	user := mustUser(t, "carol", "carol@example.com")
	require.NoError(t, repo.Create(ctx, user))
	require.NoError(t, repo.Delete(ctx, user.ID))

	got, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Nil(t, got)

	// the raw record survives with isActive flipped off
	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	var raw []models.User
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.Equal(t, user.ID, raw[0].ID)
	assert.False(t, raw[0].IsActive)
}

func TestUserRepository_DeleteUnknownReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo, _ := newUserRepo(t)
	err := repo.Delete(context.Background(), uuid.New())
	assert.True(t, models.IsNotFound(err))
}

func TestUserRepository_GetPage(t *testing.T) {
	t.Parallel()

	repo, _ := newUserRepo(t)
	ctx := context.Background()

	usernames := []string{"user_a", "user_b", "user_c", "user_d", "user_e"}
	for i, name := range usernames {
		u := mustUser(t, name, name+"@example.com")
		u.CreatedAt = time.Now().UTC().Add(-time.Duration(len(usernames)-i) * time.Hour)
		require.NoError(t, repo.Create(ctx, u))
	}

	page, err := repo.GetPage(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, page.TotalCount)
	require.Len(t, page.Items, 2)
	// newest first
	assert.Equal(t, "user_e", page.Items[0].Username)
	assert.Equal(t, "user_d", page.Items[1].Username)

	last, err := repo.GetPage(ctx, 3, 2)
	require.NoError(t, err)
	require.Len(t, last.Items, 1)
	assert.Equal(t, "user_a", last.Items[0].Username)

	past, err := repo.GetPage(ctx, 4, 2)
	require.NoError(t, err)
	assert.Empty(t, past.Items)
	assert.Equal(t, 5, past.TotalCount)
}

func TestUserRepository_GetByIDs(t *testing.T) {
	t.Parallel()

	repo, _ := newUserRepo(t)
	ctx := context.Background()

	active := mustUser(t, "dan", "dan@example.com")
	deleted := mustUser(t, "erin", "erin@example.com")
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, deleted))
	require.NoError(t, repo.Delete(ctx, deleted.ID))

	got, err := repo.GetByIDs(ctx, []uuid.UUID{active.ID, deleted.ID, uuid.New()})
	require.NoError(t, err)
	// absent and soft-deleted ids are omitted, not errors
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].ID)
}
