package cart

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/storefront/internal/models"
)

func shirt() models.Product {
	return models.Product{
		ID:          1,
		Title:       "Shirt",
		Price:       decimal.RequireFromString("19.99"),
		Description: "d",
		Image:       "http://x/i.png",
	}
}

func newReadyStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "mydb.db")
	s := NewStore(path)
	require.NoError(t, s.Initialize(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s, path
}

func requireMatches(t *testing.T, p models.Product, item models.CartItem) {
	t.Helper()
	assert.Equal(t, p.Title, item.Title)
	assert.True(t, p.Price.Equal(item.Price), "price: want %s, got %s", p.Price, item.Price)
	assert.Equal(t, p.Description, item.Description)
	assert.Equal(t, p.Image, item.Image)
}

func TestStore_StateMachine(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "cart.db"))
	assert.Equal(t, Uninitialized, s.State())

	ctx := context.Background()
	_, err := s.AddItem(ctx, shirt())
	assert.ErrorIs(t, err, ErrNotReady)
	_, err = s.ListItems(ctx)
	assert.ErrorIs(t, err, ErrNotReady)

	require.NoError(t, s.Initialize(ctx))
	assert.Equal(t, Ready, s.State())

	require.NoError(t, s.Close())
	assert.Equal(t, Closed, s.State())
	require.NoError(t, s.Close())

	_, err = s.ListItems(ctx)
	assert.ErrorIs(t, err, ErrNotReady)
	assert.ErrorIs(t, s.Initialize(ctx), ErrStorageInit)
}

func TestStore_Initialize_CreatesFileWithWAL(t *testing.T) {
	s, path := newReadyStore(t)

	_, err := os.Stat(path)
	require.NoError(t, err)

	var mode string
	require.NoError(t, s.db.Raw("PRAGMA journal_mode").Scan(&mode).Error)
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, s.db.Raw("PRAGMA foreign_keys").Scan(&fk).Error)
	assert.Equal(t, 1, fk)
}

func TestStore_ListItems_EmptyIsNotFailure(t *testing.T) {
	s, _ := newReadyStore(t)

	items, err := s.ListItems(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestStore_AddThenList(t *testing.T) {
	s, _ := newReadyStore(t)
	ctx := context.Background()

	p := shirt()
	added, err := s.AddItem(ctx, p)
	require.NoError(t, err)
	assert.NotZero(t, added.ID)
	requireMatches(t, p, added)

	items, err := s.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, added.ID, items[0].ID)
	requireMatches(t, p, items[0])
}

func TestStore_AddTwiceYieldsDistinctRows(t *testing.T) {
	s, _ := newReadyStore(t)
	ctx := context.Background()

	p := shirt()
	first, err := s.AddItem(ctx, p)
	require.NoError(t, err)
	second, err := s.AddItem(ctx, p)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.Greater(t, second.ID, first.ID)

	items, err := s.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, it := range items {
		requireMatches(t, p, it)
	}
}

func TestStore_CallerIDIgnored(t *testing.T) {
	s, _ := newReadyStore(t)

	p := shirt()
	p.ID = 42
	item, err := s.AddItem(context.Background(), p)
	require.NoError(t, err)
	assert.Equal(t, uint(1), item.ID)
}

func TestStore_InitializeIsIdempotent(t *testing.T) {
	s, path := newReadyStore(t)
	ctx := context.Background()

	_, err := s.AddItem(ctx, shirt())
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		require.NoError(t, s.Initialize(ctx))
	}
	require.NoError(t, s.Close())

	for i := 0; i < 3; i++ {
		reopened := NewStore(path)
		require.NoError(t, reopened.Initialize(ctx))
		require.NoError(t, reopened.Initialize(ctx))

		items, err := reopened.ListItems(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		requireMatches(t, shirt(), items[0])
		require.NoError(t, reopened.Close())
	}
}

func TestStore_PersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mydb.db")
	ctx := context.Background()

	first := NewStore(path)
	require.NoError(t, first.Initialize(ctx))
	items, err := first.ListItems(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	backpack := models.Product{Title: "Backpack", Price: decimal.RequireFromString("109.95")}
	_, err = first.AddItem(ctx, shirt())
	require.NoError(t, err)
	_, err = first.AddItem(ctx, backpack)
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second := NewStore(path)
	require.NoError(t, second.Initialize(ctx))
	defer second.Close()

	items, err = second.ListItems(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	requireMatches(t, shirt(), items[0])
	requireMatches(t, backpack, items[1])

	third, err := second.AddItem(ctx, shirt())
	require.NoError(t, err)
	assert.Equal(t, uint(3), third.ID)
}

func TestStore_InitializeFailureIsRetryable(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	s := NewStore(filepath.Join(blocker, "sub", "cart.db"))
	err := s.Initialize(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageInit)
	assert.Equal(t, Uninitialized, s.State())

	_, err = s.AddItem(context.Background(), shirt())
	assert.ErrorIs(t, err, ErrNotReady)

	require.NoError(t, os.Remove(blocker))
	require.NoError(t, s.Initialize(context.Background()))
	assert.Equal(t, Ready, s.State())
	require.NoError(t, s.Close())
}

func TestStore_EmptyPathFailsInit(t *testing.T) {
	err := NewStore("").Initialize(context.Background())
	assert.ErrorIs(t, err, ErrStorageInit)
}

func TestStore_WriteAndReadFailuresAreDistinct(t *testing.T) {
	s, _ := newReadyStore(t)
	ctx := context.Background()

	require.NoError(t, s.db.Exec("DROP TABLE cart").Error)

	_, err := s.AddItem(ctx, shirt())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.NotErrorIs(t, err, ErrStorageRead)

	items, err := s.ListItems(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStorageRead)
	assert.Nil(t, items)
}

func TestStore_ConcurrentInitialize(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "cart.db"))
	defer s.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- s.Initialize(context.Background())
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, Ready, s.State())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", Uninitialized.String())
	assert.Equal(t, "initializing", Initializing.String())
	assert.Equal(t, "ready", Ready.String())
	assert.Equal(t, "closed", Closed.String())
	assert.Equal(t, "state(9)", State(9).String())
}
