package notify

import (
	"sync"
	"testing"
)

func TestRegistryRegisterSnapshot(t *testing.T) {
	r := NewRegistry()
	a := NewConnection(1, 8)
	b := NewConnection(1, 8)
	c := NewConnection(2, 8)

	r.Register(1, a)
	r.Register(1, b)
	r.Register(2, c)

	if got := r.Len(); got != 3 {
		t.Fatalf("Len = %d, want 3", got)
	}
	if got := len(r.Snapshot(1)); got != 2 {
		t.Fatalf("Snapshot(1) = %d conns, want 2", got)
	}
	if got := len(r.Snapshot(2)); got != 1 {
		t.Fatalf("Snapshot(2) = %d conns, want 1", got)
	}
	if got := r.Snapshot(99); got != nil {
		t.Fatalf("Snapshot(99) = %v, want nil", got)
	}
}

func TestRegistryDeregisterIdempotent(t *testing.T) {
	r := NewRegistry()
	a := NewConnection(1, 8)
	b := NewConnection(1, 8)

	r.Register(1, a)
	r.Register(1, b)

	r.Deregister(1, a)
	if got := len(r.Snapshot(1)); got != 1 {
		t.Fatalf("after first deregister: %d conns, want 1", got)
	}

	// Second removal of the same connection is a no-op.
	r.Deregister(1, a)
	if got := len(r.Snapshot(1)); got != 1 {
		t.Fatalf("after repeat deregister: %d conns, want 1", got)
	}

	r.Deregister(1, b)
	if got := r.Snapshot(1); got != nil {
		t.Fatalf("empty set should be pruned, got %v", got)
	}
	if got := r.Len(); got != 0 {
		t.Fatalf("Len = %d, want 0", got)
	}
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()

	const subjects = 8
	const perSubject = 25

	var wg sync.WaitGroup
	for s := 1; s <= subjects; s++ {
		for i := 0; i < perSubject; i++ {
			wg.Add(1)
			go func(subjectID int) {
				defer wg.Done()
				conn := NewConnection(subjectID, 8)
				r.Register(subjectID, conn)
				_ = r.Snapshot(subjectID)
				r.Deregister(subjectID, conn)
			}(s)
		}
	}
	wg.Wait()

	if got := r.Len(); got != 0 {
		t.Fatalf("Len = %d after all deregistered, want 0", got)
	}
}

func TestRegistryCloseAll(t *testing.T) {
	r := NewRegistry()
	a := NewConnection(1, 8)
	b := NewConnection(2, 8)
	r.Register(1, a)
	r.Register(2, b)

	r.CloseAll()

	for _, conn := range []*Connection{a, b} {
		select {
		case <-conn.Done():
		default:
			t.Fatalf("connection for subject %d not closed", conn.SubjectID())
		}
	}
}

func TestConnectionEnqueue(t *testing.T) {
	conn := NewConnection(1, 2)

	if err := conn.Enqueue([]byte("one")); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := conn.Enqueue([]byte("two")); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := conn.Enqueue([]byte("three")); err != ErrSendBufferFull {
		t.Fatalf("err = %v, want ErrSendBufferFull", err)
	}

	conn.Close()
	conn.Close() // idempotent
	if err := conn.Enqueue([]byte("four")); err != ErrConnectionClosed {
		t.Fatalf("err = %v, want ErrConnectionClosed", err)
	}
}
