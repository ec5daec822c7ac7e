package notify

import (
	"encoding/json"

	"go.uber.org/zap"

	"github.com/spec-kit/student-portal/internal/observability"
)

// pushFrame is the wire shape of one outbound websocket message.
type pushFrame struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher routes a decoded event to every live connection of its
// target subject. It runs on the bridge goroutine, never on a session's
// read loop; delivery into a session crosses goroutines only through
// Connection.Enqueue.
type Dispatcher struct {
	registry *Registry
	metrics  *observability.Metrics
	logger   *zap.Logger
}

// NewDispatcher builds a dispatcher over the shared registry.
func NewDispatcher(registry *Registry, metrics *observability.Metrics, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{registry: registry, metrics: metrics, logger: logger}
}

// Dispatch delivers the event best-effort. A subject with no open
// connections drops the event silently; a failed push drops only that
// connection and siblings still receive theirs.
func (d *Dispatcher) Dispatch(event Event) {
	conns := d.registry.Snapshot(event.TargetSubjectID)
	if len(conns) == 0 {
		return
	}

	frame, err := json.Marshal(pushFrame{Kind: event.Kind, Payload: event.Payload})
	if err != nil {
		d.logger.Warn("failed to encode push frame",
			zap.String("event_id", event.ID),
			zap.Error(err))
		return
	}

	for _, conn := range conns {
		if err := conn.Enqueue(frame); err != nil {
			d.registry.Deregister(event.TargetSubjectID, conn)
			conn.Close()
			d.metrics.RecordDrop(event.Kind)
			d.logger.Warn("dropping connection after failed push",
				zap.Int("subject_id", event.TargetSubjectID),
				zap.String("event_id", event.ID),
				zap.Error(err))
			continue
		}
		d.metrics.RecordDispatch(event.Kind)
	}
}
