package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func testBridge(r *Registry) *Bridge {
	return NewBridge(nil, "portal:notifications", NewDispatcher(r, nil, zap.NewNop()), zap.NewNop(), 0)
}

func TestConsumeDeliversEvent(t *testing.T) {
	r := NewRegistry()
	b := testBridge(r)

	conn := NewConnection(7, 8)
	r.Register(7, conn)

	payload, _ := json.Marshal(GradePostedPayload{Course: "CS101", Task: "hw1", Grade: "A"})
	raw, _ := json.Marshal(Event{
		ID:              "evt-1",
		TargetSubjectID: 7,
		Kind:            KindGradePosted,
		Payload:         payload,
	})

	msgs := make(chan *redis.Message, 1)
	msgs <- &redis.Message{Channel: "portal:notifications", Payload: string(raw)}
	close(msgs)

	b.consume(context.Background(), msgs)

	select {
	case frame := <-conn.Outbound():
		var got pushFrame
		if err := json.Unmarshal(frame, &got); err != nil {
			t.Fatalf("bad frame: %v", err)
		}
		if got.Kind != KindGradePosted {
			t.Fatalf("kind = %q, want %q", got.Kind, KindGradePosted)
		}
		var p GradePostedPayload
		if err := json.Unmarshal(got.Payload, &p); err != nil {
			t.Fatalf("bad payload: %v", err)
		}
		if p.Grade != "A" {
			t.Fatalf("grade = %q, want A", p.Grade)
		}
	default:
		t.Fatal("expected a delivered frame")
	}
}

func TestConsumeDropsMalformed(t *testing.T) {
	r := NewRegistry()
	b := testBridge(r)

	conn := NewConnection(7, 8)
	r.Register(7, conn)

	good, _ := json.Marshal(Event{ID: "evt-2", TargetSubjectID: 7, Kind: KindAnnouncement})

	msgs := make(chan *redis.Message, 4)
	msgs <- &redis.Message{Payload: "not json"}
	msgs <- &redis.Message{Payload: `{"kind":"grade_posted"}`}          // missing target
	msgs <- &redis.Message{Payload: `{"target_subject_id":7}`}         // missing kind
	msgs <- &redis.Message{Payload: string(good)}
	close(msgs)

	b.consume(context.Background(), msgs)

	if got := len(conn.Outbound()); got != 1 {
		t.Fatalf("delivered %d frames, want 1", got)
	}
}

func TestConsumeStopsOnContextCancel(t *testing.T) {
	b := testBridge(NewRegistry())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	msgs := make(chan *redis.Message)
	done := make(chan struct{})
	go func() {
		b.consume(ctx, msgs)
		close(done)
	}()

	<-done
}

func TestDecodeEvent(t *testing.T) {
	if _, err := decodeEvent([]byte(`{`)); err == nil {
		t.Fatal("expected error for truncated JSON")
	}
	if _, err := decodeEvent([]byte(`{"kind":"x"}`)); !errors.Is(err, errMissingTarget) {
		t.Fatalf("err = %v, want errMissingTarget", err)
	}
	if _, err := decodeEvent([]byte(`{"target_subject_id":1}`)); !errors.Is(err, errMissingKind) {
		t.Fatalf("err = %v, want errMissingKind", err)
	}

	event, err := decodeEvent([]byte(`{"id":"e","target_subject_id":1,"kind":"announcement"}`))
	if err != nil {
		t.Fatalf("decodeEvent: %v", err)
	}
	if event.TargetSubjectID != 1 || event.Kind != KindAnnouncement {
		t.Fatalf("unexpected event: %+v", event)
	}
}
