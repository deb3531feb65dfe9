package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomdemo/shop/internal/order-service/orderlog"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := Open(filepath.Join(t.TempDir(), "orders.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestSaveAndGetLatest(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	ev := &orderlog.Event{
		OrderID:   "ORD-1",
		Kind:      orderlog.KindCreated,
		Payload:   `{"orderId":"ORD-1","total":2074.97}`,
		RequestID: "req-abc",
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repo.Save(ctx, ev))

	got, err := repo.GetLatest(ctx, "ORD-1")
	require.NoError(t, err)
	assert.Equal(t, "ORD-1", got.OrderID)
	assert.Equal(t, orderlog.KindCreated, got.Kind)
	assert.Equal(t, ev.Payload, got.Payload)
	assert.Equal(t, "req-abc", got.RequestID)
	assert.WithinDuration(t, ev.CreatedAt, got.CreatedAt, time.Second)
}

func TestGetLatestPicksNewestRow(t *testing.T) {
	repo := openTestRepo(t)
	ctx := context.Background()

	first := &orderlog.Event{OrderID: "ORD-2", Kind: orderlog.KindCreated, CreatedAt: time.Now().UTC().Add(-time.Minute)}
	second := &orderlog.Event{OrderID: "ORD-2", Kind: orderlog.KindCreated, Payload: "second", CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.Save(ctx, first))
	require.NoError(t, repo.Save(ctx, second))

	got, err := repo.GetLatest(ctx, "ORD-2")
	require.NoError(t, err)
	assert.Equal(t, "second", got.Payload)
}

func TestGetLatestUnknownOrder(t *testing.T) {
	repo := openTestRepo(t)

	_, err := repo.GetLatest(context.Background(), "ORD-999")
	assert.Error(t, err)
}
