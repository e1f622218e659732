package events

import (
	"context"
	"fmt"
	"time"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/example/punkfits/pkg/repository"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const (
	ActionUserCreated       = "user_created"
	ActionUserDeleted       = "user_deleted"
	ActionLogin             = "login"
	ActionProductUpdated    = "product_updated"
	ActionProductDeleted    = "product_deleted"
	ActionCheckoutCompleted = "checkout_completed"
	ActionOrderCreated      = "order_created"
	ActionOrderUpdated      = "order_updated"
	ActionOrderDeleted      = "order_deleted"
)

// Event is a domain fact emitted after a successful write.
type Event struct {
	Action   string
	EntityID string
	Data     map[string]interface{}
}

type Publisher interface {
	Publish(ev Event)
}

// Sink persists audit entries; *repository.MongoRepository satisfies it.
type Sink interface {
	CreateAuditLog(ctx context.Context, log *repository.AuditLog) error
}

type NopPublisher struct{}

func (NopPublisher) Publish(Event) {}

type flush struct{}

type flushed struct{}

// AuditActor writes every Event it receives to the sink, in mailbox order.
type AuditActor struct {
	service string
	sink    Sink
	logger  *zap.Logger
	timeout time.Duration
}

func (a *AuditActor) Receive(ctx actor.Context) {
	switch msg := ctx.Message().(type) {
	case *Event:
		a.logger.Debug("Audit event",
			zap.String("action", msg.Action),
			zap.String("entity_id", msg.EntityID))
		if a.sink == nil {
			return
		}

		wctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		defer cancel()
		err := a.sink.CreateAuditLog(wctx, &repository.AuditLog{
			Service:  a.service,
			Action:   msg.Action,
			EntityID: msg.EntityID,
			Data:     bson.M(msg.Data),
		})
		if err != nil {
			a.logger.Warn("Failed to write audit log",
				zap.String("action", msg.Action),
				zap.String("entity_id", msg.EntityID),
				zap.Error(err))
		}

	case *flush:
		ctx.Respond(&flushed{})

	case *actor.Started:
		a.logger.Info("Audit actor started")

	case *actor.Stopped:
		a.logger.Info("Audit actor stopped")
	}
}

// Auditor owns the actor system hosting the audit actor.
type Auditor struct {
	system *actor.ActorSystem
	pid    *actor.PID
	logger *zap.Logger
}

func NewAuditor(service string, sink Sink, logger *zap.Logger) (*Auditor, error) {
	system := actor.NewActorSystem()

	props := actor.PropsFromProducer(func() actor.Actor {
		return &AuditActor{
			service: service,
			sink:    sink,
			logger:  logger.Named("audit-actor"),
			timeout: 5 * time.Second,
		}
	})
	pid, err := system.Root.SpawnNamed(props, "audit-actor")
	if err != nil {
		return nil, fmt.Errorf("failed to spawn audit actor: %w", err)
	}

	return &Auditor{system: system, pid: pid, logger: logger}, nil
}

func (a *Auditor) Publish(ev Event) {
	a.system.Root.Send(a.pid, &ev)
}

// Flush blocks until every event published before the call has been handled.
func (a *Auditor) Flush(timeout time.Duration) error {
	res, err := a.system.Root.RequestFuture(a.pid, &flush{}, timeout).Result()
	if err != nil {
		return err
	}
	if _, ok := res.(*flushed); !ok {
		return fmt.Errorf("unexpected flush response %T", res)
	}
	return nil
}

func (a *Auditor) Stop(timeout time.Duration) {
	if err := a.Flush(timeout); err != nil {
		a.logger.Warn("Audit flush failed", zap.Error(err))
	}
	if err := a.system.Root.PoisonFuture(a.pid).Wait(); err != nil {
		a.logger.Warn("Audit actor stop failed", zap.Error(err))
	}
}
