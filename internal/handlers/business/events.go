package business

import (
	"github.com/sirupsen/logrus"

	"assetpool/internal/events"
	"assetpool/pkg/config"
)

// Domain event types published after a state transition commits.
const (
	EventPoolAcquired     = "pool.acquired"
	EventProposalExecuted = "proposal.executed"
	EventBonusPaid        = "bonus.paid"
)

// EventQueue is the queue the worker consumes.
const EventQueue = "pool_events"

// publishEvent broadcasts to websocket subscribers and, when RabbitMQ is
// configured, onto the event queue. Called after the owning transaction has
// committed; delivery failures are logged, never propagated into the
// already-committed operation.
func publishEvent(evtType string, payload map[string]interface{}) {
	evt := events.Event{Type: evtType, Payload: payload, At: nowFunc()}
	events.DefaultHub.Broadcast(evt)

	if config.RabbitMQ == nil {
		return
	}
	publisher, err := config.NewPublisher()
	if err != nil {
		logrus.Warnf("event publish skipped, no channel: %v", err)
		return
	}
	defer publisher.Close()
	if err := publisher.Publish(EventQueue, evt); err != nil {
		logrus.Warnf("failed to publish %s event: %v", evtType, err)
	}
}
