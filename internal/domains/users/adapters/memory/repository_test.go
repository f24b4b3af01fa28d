package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apurer/cell-tech-api/internal/domains/users/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/users/ports"
)

func TestRepository_EmailIsUniqueAndCaseInsensitive(t *testing.T) {
	fixed := time.Date(2024, 3, 13, 9, 0, 0, 0, time.UTC)
	repo := NewRepository().WithClock(func() time.Time { return fixed })
	ctx := context.Background()

	user, err := domain.NewUser("Alice", "Alice@CellTech.io")
	require.NoError(t, err)
	user.PasswordHash = "hash"
	created, err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.Equal(t, "alice@celltech.io", created.Email)
	assert.Equal(t, fixed, created.CreatedAt)

	dup, err := domain.NewUser("Other", "alice@celltech.io")
	require.NoError(t, err)
	_, err = repo.Create(ctx, dup)
	assert.ErrorIs(t, err, ports.ErrDuplicateEmail)

	found, err := repo.GetByEmail(ctx, "  ALICE@celltech.io ")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	_, err = repo.GetByEmail(ctx, "bob@celltech.io")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UpdateMovesEmailIndex(t *testing.T) {
	repo := NewRepository()
	ctx := context.Background()

	alice, err := domain.NewUser("Alice", "alice@celltech.io")
	require.NoError(t, err)
	alice, err = repo.Create(ctx, alice)
	require.NoError(t, err)
	bob, err := domain.NewUser("Bob", "bob@celltech.io")
	require.NoError(t, err)
	_, err = repo.Create(ctx, bob)
	require.NoError(t, err)

	require.NoError(t, alice.ChangeEmail("bob@celltech.io"))
	_, err = repo.Update(ctx, alice)
	assert.ErrorIs(t, err, ports.ErrDuplicateEmail)

	require.NoError(t, alice.ChangeEmail("alice@phones.io"))
	require.NoError(t, alice.UpdateStatus(domain.StatusBlocked))
	updated, err := repo.Update(ctx, alice)
	require.NoError(t, err)
	assert.True(t, updated.Blocked())

	_, err = repo.GetByEmail(ctx, "alice@celltech.io")
	assert.ErrorIs(t, err, ports.ErrNotFound)
	found, err := repo.GetByEmail(ctx, "alice@phones.io")
	require.NoError(t, err)
	assert.Equal(t, alice.ID, found.ID)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, alice.ID, list[0].ID)
}

func TestRepository_UpdateUnknownUser(t *testing.T) {
	repo := NewRepository()
	user, err := domain.NewUser("Ghost", "ghost@celltech.io")
	require.NoError(t, err)
	_, err = repo.Update(context.Background(), user)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}
