package jobs

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"waterdelivery/internal/core/application/usecases/commands"
)

// OrderFeedJob tails the order table as a change feed. Every second it reads
// orders inserted after its cursor and runs dispatch for each, so orders
// whose intake-time dispatch was missed still reach nearby suppliers.
type OrderFeedJob struct {
	uowFactory commands.OrderUoWFactory
	dispatcher commands.DispatchTrigger
	cron       *cron.Cron
	logger     *zap.Logger

	mu     sync.Mutex
	cursor time.Time
}

// NewOrderFeedJob creates the feed poller. The cursor starts at the current
// time, so only orders created after startup are picked up.
func NewOrderFeedJob(
	uowFactory commands.OrderUoWFactory,
	dispatcher commands.DispatchTrigger,
	logger *zap.Logger,
) *OrderFeedJob {
	return &OrderFeedJob{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.Named("order_feed_job"),
		cursor:     time.Now(),
	}
}

// Start begins polling the feed every second.
func (j *OrderFeedJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		if err := j.poll(ctx); err != nil {
			j.logger.Error("order feed poll failed", zap.Error(err))
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.Info("order feed job started (polling every second)")

	return nil
}

// Stop stops the feed poller.
func (j *OrderFeedJob) Stop() {
	j.cron.Stop()
	j.logger.Info("order feed job stopped")
}

// poll reads all orders past the cursor and dispatches each. The mutex keeps
// ticks from overlapping when a poll takes longer than a second.
func (j *OrderFeedJob) poll(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	uow := j.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	orders, err := uow.OrderRepository().GetCreatedAfter(ctx, j.cursor)
	if err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return err
	}

	for _, aggregate := range orders {
		// The cursor advances past every order the feed has seen. Offers are
		// best effort; suppliers that miss a push still find the order via
		// their pull worklist.
		if aggregate.CreatedAt().After(j.cursor) {
			j.cursor = aggregate.CreatedAt()
		}

		cmd, err := commands.NewDispatchOrderCommand(aggregate.ID())
		if err != nil {
			j.logger.Error("feed produced an undispatchable order",
				zap.String("order_id", aggregate.ID().String()), zap.Error(err))
			continue
		}

		if err := j.dispatcher.Handle(ctx, cmd); err != nil {
			j.logger.Error("dispatch from feed failed",
				zap.String("order_id", aggregate.ID().String()), zap.Error(err))
		}
	}

	return nil
}
