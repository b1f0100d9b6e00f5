package snapshot

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"market/internal/domain/entity"
	"market/internal/infra/memstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T, path string, store *memstore.Store) *Manager {
	t.Helper()

	return &Manager{
		path:   path,
		store:  store,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestManager_SaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.json")
	ctx := context.Background()

	source := memstore.New()
	userRepo := memstore.NewUserRepository(source)
	user := entity.NewUser("alice", "alice@example.com", "hash", entity.Roles{entity.RoleBuyer})
	require.NoError(t, userRepo.Create(ctx, user))

	product := entity.NewProduct(user.ID, "camera", "", 12000, "electronics", "used - good")
	require.NoError(t, memstore.NewProductRepository(source).Create(ctx, product))

	require.NoError(t, newTestManager(t, path, source).Save())

	restored := memstore.New()
	require.NoError(t, newTestManager(t, path, restored).Load())

	restoredUser, err := memstore.NewUserRepository(restored).FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", restoredUser.Username)

	restoredProduct, err := memstore.NewProductRepository(restored).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ProductStatusAvailable, restoredProduct.Status)
}

func TestManager_Load_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.json")

	store := memstore.New()
	require.NoError(t, newTestManager(t, path, store).Load())
}

func TestManager_Load_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	err := newTestManager(t, path, memstore.New()).Load()
	require.Error(t, err)
}

func TestManager_Save_UnconfiguredPathIsNoOp(t *testing.T) {
	require.NoError(t, newTestManager(t, "", memstore.New()).Save())
}

func TestManager_Save_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "market.json")

	require.NoError(t, newTestManager(t, path, memstore.New()).Save())

	_, err := os.Stat(path)
	require.NoError(t, err)
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}
