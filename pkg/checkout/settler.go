package checkout

import (
	"context"
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/trendyshop/pkg/models"
	"go.uber.org/zap"
)

// Messages handled by the settlement actor.
type settleOrder struct {
	Order models.Order
}

type settleResult struct {
	Order models.Order
}

// settlementActor simulates payment settlement with a fixed latency. It
// always succeeds.
type settlementActor struct {
	latency time.Duration
	logger  *zap.Logger
}

func (a *settlementActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *settleOrder:
		a.logger.Info("Settling order",
			zap.String("order_id", msg.Order.ID),
			zap.Float64("amount", msg.Order.TotalAmount))

		// Simulate payment processing
		time.Sleep(a.latency)

		order := msg.Order
		order.PaymentStatus = "Paid"
		ctx.Respond(&settleResult{Order: order})

	case *actor.Started:
		a.logger.Info("Settlement actor started")

	case *actor.Stopped:
		a.logger.Info("Settlement actor stopped")
	}
}

// ActorSettler settles orders through a single settlement actor.
type ActorSettler struct {
	system  *actor.ActorSystem
	pid     *actor.PID
	timeout time.Duration
}

func NewActorSettler(latency, timeout time.Duration, logger *zap.Logger) (*ActorSettler, error) {
	system := actor.NewActorSystem()

	props := actor.PropsFromProducer(func() actor.Actor {
		return &settlementActor{latency: latency, logger: logger.Named("settlement-actor")}
	})
	pid, err := system.Root.SpawnNamed(props, "settlement-actor")
	if err != nil {
		return nil, fmt.Errorf("failed to spawn settlement actor: %w", err)
	}

	return &ActorSettler{
		system:  system,
		pid:     pid,
		timeout: timeout,
	}, nil
}

func (s *ActorSettler) Settle(_ context.Context, order models.Order) (models.Order, error) {
	future := s.system.Root.RequestFuture(s.pid, &settleOrder{Order: order}, s.timeout)

	result, err := future.Result()
	if err != nil {
		return models.Order{}, fmt.Errorf("settlement did not respond: %w", err)
	}

	resp, ok := result.(*settleResult)
	if !ok {
		return models.Order{}, fmt.Errorf("unexpected settlement response %T", result)
	}
	return resp.Order, nil
}

func (s *ActorSettler) Close() {
	s.system.Root.Stop(s.pid)
}
