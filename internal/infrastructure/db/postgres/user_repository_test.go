package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/forumhub/forum-backend/internal/core/domain"
)

// newTestDB opens an in-memory sqlite database with the same schema the
// postgres store uses.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func seedUser(t *testing.T, repo *UserRepository, email, username string) *domain.User {
	t.Helper()
	user, err := repo.Create(context.Background(), &domain.User{
		Email:        email,
		Username:     username,
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleUser,
	})
	require.NoError(t, err)
	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	created := seedUser(t, repo, "alice@example.com", "alice")
	require.NotZero(t, created.ID)
	require.False(t, created.IsVerified)

	byID, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.Equal(t, "alice@example.com", byID.Email)

	byEmail, err := repo.FindByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, created.ID, byEmail.ID)

	byName, err := repo.FindByUsername(context.Background(), "alice")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	_, err := repo.FindByID(context.Background(), 999)
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.FindByEmail(context.Background(), "ghost@example.com")
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_UniqueConstraints(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	seedUser(t, repo, "alice@example.com", "alice")

	_, err := repo.Create(context.Background(), &domain.User{
		Email: "other@example.com", Username: "alice", PasswordHash: "x", Role: domain.RoleUser,
	})
	require.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = repo.Create(context.Background(), &domain.User{
		Email: "alice@example.com", Username: "other", PasswordHash: "x", Role: domain.RoleUser,
	})
	require.Error(t, err)
}

func TestUserRepository_UpdateFields(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))
	user := seedUser(t, repo, "alice@example.com", "alice")

	now := time.Now().UTC().Truncate(time.Second)
	err := repo.UpdateFields(context.Background(), user.ID, map[string]any{
		"is_verified": true,
		"last_login":  now,
	})
	require.NoError(t, err)

	updated, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.True(t, updated.IsVerified)
	require.NotNil(t, updated.LastLogin)

	err = repo.UpdateFields(context.Background(), 999, map[string]any{"is_verified": true})
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}
