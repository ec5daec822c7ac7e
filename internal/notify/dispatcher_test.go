package notify

import (
	"encoding/json"
	"testing"

	"go.uber.org/zap"
)

func testEvent(subjectID int, kind string) Event {
	payload, _ := json.Marshal(map[string]string{"course": "CS101", "task": "hw1", "grade": "A"})
	return Event{
		ID:              "evt-1",
		TargetSubjectID: subjectID,
		Kind:            kind,
		Payload:         payload,
	}
}

func TestDispatchNoConnections(t *testing.T) {
	r := NewRegistry()
	d := NewDispatcher(r, nil, zap.NewNop())

	// Nothing registered for the subject; must be a silent no-op.
	d.Dispatch(testEvent(5, KindGradePosted))
}

func TestDispatchDeliversToAllConnections(t *testing.T) {
	r := NewRegistry()
	d := NewDispatcher(r, nil, zap.NewNop())

	a := NewConnection(7, 8)
	b := NewConnection(7, 8)
	other := NewConnection(8, 8)
	r.Register(7, a)
	r.Register(7, b)
	r.Register(8, other)

	d.Dispatch(testEvent(7, KindGradePosted))

	for _, conn := range []*Connection{a, b} {
		select {
		case raw := <-conn.Outbound():
			var frame struct {
				Kind    string          `json:"kind"`
				Payload json.RawMessage `json:"payload"`
			}
			if err := json.Unmarshal(raw, &frame); err != nil {
				t.Fatalf("bad frame: %v", err)
			}
			if frame.Kind != KindGradePosted {
				t.Fatalf("kind = %q, want %q", frame.Kind, KindGradePosted)
			}
		default:
			t.Fatal("expected a frame on the outbound channel")
		}
	}

	select {
	case <-other.Outbound():
		t.Fatal("frame leaked to a different subject")
	default:
	}
}

func TestDispatchDropsFailedConnectionOnly(t *testing.T) {
	r := NewRegistry()
	d := NewDispatcher(r, nil, zap.NewNop())

	healthy := NewConnection(7, 8)
	full := NewConnection(7, 1)
	if err := full.Enqueue([]byte("stale")); err != nil {
		t.Fatalf("priming buffer: %v", err)
	}

	r.Register(7, healthy)
	r.Register(7, full)

	d.Dispatch(testEvent(7, KindTaskAssigned))

	// The healthy sibling still got the frame.
	select {
	case <-healthy.Outbound():
	default:
		t.Fatal("healthy connection missed the frame")
	}

	// The full connection was closed and deregistered.
	select {
	case <-full.Done():
	default:
		t.Fatal("full connection should have been closed")
	}
	if got := len(r.Snapshot(7)); got != 1 {
		t.Fatalf("Snapshot(7) = %d conns, want 1", got)
	}
}

func TestDispatchClosedConnection(t *testing.T) {
	r := NewRegistry()
	d := NewDispatcher(r, nil, zap.NewNop())

	conn := NewConnection(3, 8)
	r.Register(3, conn)
	conn.Close()

	d.Dispatch(testEvent(3, KindAnnouncement))

	if got := r.Snapshot(3); got != nil {
		t.Fatalf("closed connection should be deregistered, got %v", got)
	}
}
