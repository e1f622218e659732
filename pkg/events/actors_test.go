package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/example/punkfits/pkg/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memorySink struct {
	mu   sync.Mutex
	logs []*repository.AuditLog
	fail bool
}

func (s *memorySink) CreateAuditLog(_ context.Context, log *repository.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("sink down")
	}
	s.logs = append(s.logs, log)
	return nil
}

func (s *memorySink) snapshot() []*repository.AuditLog {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*repository.AuditLog(nil), s.logs...)
}

func TestAuditorForwardsEventsInOrder(t *testing.T) {
	sink := &memorySink{}
	auditor, err := NewAuditor("punkfits-api", sink, zap.NewNop())
	require.NoError(t, err)
	defer auditor.Stop(time.Second)

	auditor.Publish(Event{Action: ActionOrderCreated, EntityID: "o-1", Data: map[string]interface{}{"user_id": "u-1"}})
	auditor.Publish(Event{Action: ActionCheckoutCompleted, EntityID: "c-1"})
	require.NoError(t, auditor.Flush(time.Second))

	logs := sink.snapshot()
	require.Len(t, logs, 2)
	assert.Equal(t, ActionOrderCreated, logs[0].Action)
	assert.Equal(t, "o-1", logs[0].EntityID)
	assert.Equal(t, "u-1", logs[0].Data["user_id"])
	assert.Equal(t, "punkfits-api", logs[0].Service)
	assert.Equal(t, ActionCheckoutCompleted, logs[1].Action)
}

func TestAuditorSurvivesSinkErrors(t *testing.T) {
	sink := &memorySink{fail: true}
	auditor, err := NewAuditor("punkfits-api", sink, zap.NewNop())
	require.NoError(t, err)
	defer auditor.Stop(time.Second)

	auditor.Publish(Event{Action: ActionLogin, EntityID: "u-1"})
	require.NoError(t, auditor.Flush(time.Second))

	sink.mu.Lock()
	sink.fail = false
	sink.mu.Unlock()

	auditor.Publish(Event{Action: ActionLogin, EntityID: "u-2"})
	require.NoError(t, auditor.Flush(time.Second))
	logs := sink.snapshot()
	require.Len(t, logs, 1)
	assert.Equal(t, "u-2", logs[0].EntityID)
}

func TestAuditorWithoutSink(t *testing.T) {
	auditor, err := NewAuditor("punkfits-api", nil, zap.NewNop())
	require.NoError(t, err)
	defer auditor.Stop(time.Second)

	auditor.Publish(Event{Action: ActionLogin, EntityID: "u-1"})
	assert.NoError(t, auditor.Flush(time.Second))
}
