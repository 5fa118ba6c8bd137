package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"waterdelivery/internal/core/application/usecases/commands"
	"waterdelivery/internal/core/domain/model/kernel"
	"waterdelivery/internal/core/domain/model/order"
	"waterdelivery/internal/core/ports"
)

type feedRepo struct {
	ports.OrderRepository

	orders []*order.Order
	after  []time.Time
}

func (r *feedRepo) GetCreatedAfter(_ context.Context, after time.Time) ([]*order.Order, error) {
	r.after = append(r.after, after)

	var result []*order.Order
	for _, o := range r.orders {
		if o.CreatedAt().After(after) {
			result = append(result, o)
		}
	}

	return result, nil
}

type feedUoW struct {
	repo *feedRepo
}

func (u *feedUoW) Begin(context.Context) error { return nil }

func (u *feedUoW) Commit(context.Context) error { return nil }

func (u *feedUoW) Rollback(context.Context) error { return nil }

func (u *feedUoW) OrderRepository() ports.OrderRepository { return u.repo }

func (u *feedUoW) Create() commands.OrderUoW { return u }

type captureDispatcher struct {
	dispatched []kernel.UUID
	err        error
}

func (d *captureDispatcher) Handle(_ context.Context, cmd commands.DispatchOrderCommand) error {
	d.dispatched = append(d.dispatched, cmd.OrderID())
	return d.err
}

func newFeedOrder(t *testing.T) *order.Order {
	t.Helper()

	location, err := kernel.NewGeoPoint(77.59, 12.97)
	require.NoError(t, err)

	aggregate, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), 2, location, "")
	require.NoError(t, err)

	return aggregate
}

func TestOrderFeedJob_Poll(t *testing.T) {
	t.Run("should dispatch each order past the cursor once", func(t *testing.T) {
		repo := &feedRepo{}
		uow := &feedUoW{repo: repo}
		dispatcher := &captureDispatcher{}
		job := NewOrderFeedJob(uow, dispatcher, zap.NewNop())
		job.cursor = time.Now().Add(-time.Minute)

		first := newFeedOrder(t)
		second := newFeedOrder(t)
		repo.orders = []*order.Order{first, second}

		require.NoError(t, job.poll(context.Background()))

		require.Len(t, dispatcher.dispatched, 2)
		assert.True(t, dispatcher.dispatched[0].IsEqual(first.ID()))
		assert.True(t, dispatcher.dispatched[1].IsEqual(second.ID()))

		// Cursor moved past both, so the next poll sees nothing new.
		require.NoError(t, job.poll(context.Background()))
		assert.Len(t, dispatcher.dispatched, 2)
	})

	t.Run("should keep advancing when dispatch fails", func(t *testing.T) {
		repo := &feedRepo{}
		uow := &feedUoW{repo: repo}
		dispatcher := &captureDispatcher{err: assert.AnError}
		job := NewOrderFeedJob(uow, dispatcher, zap.NewNop())
		job.cursor = time.Now().Add(-time.Minute)

		repo.orders = []*order.Order{newFeedOrder(t)}

		require.NoError(t, job.poll(context.Background()))
		require.NoError(t, job.poll(context.Background()))

		// One dispatch attempt only; the failed order is left to the pull
		// worklist instead of being retried forever.
		assert.Len(t, dispatcher.dispatched, 1)
	})

	t.Run("should poll with an advancing cursor", func(t *testing.T) {
		repo := &feedRepo{}
		uow := &feedUoW{repo: repo}
		job := NewOrderFeedJob(uow, &captureDispatcher{}, zap.NewNop())
		start := job.cursor

		require.NoError(t, job.poll(context.Background()))

		require.Len(t, repo.after, 1)
		assert.Equal(t, start, repo.after[0])
	})
}
