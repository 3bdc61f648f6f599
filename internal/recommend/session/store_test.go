package session

import (
	"testing"
	"time"
)

func TestAcquireCreatesSession(t *testing.T) {
	store := NewStore(8, time.Minute)

	id, memory, release := store.Acquire("")
	release()

	if id == "" {
		t.Fatal("expected a generated session id")
	}
	if memory == nil {
		t.Fatal("expected fresh memory")
	}
	if store.Len() != 1 {
		t.Errorf("Len = %d, want 1", store.Len())
	}
}

func TestAcquireReturnsSameMemory(t *testing.T) {
	store := NewStore(8, time.Minute)

	id, memory, release := store.Acquire("")
	memory.SetOrigin("Tel Aviv", "Israel")
	release()

	sameID, again, release2 := store.Acquire(id)
	defer release2()

	if sameID != id {
		t.Errorf("session id changed: %q -> %q", id, sameID)
	}
	if again != memory {
		t.Error("expected identical memory instance for the same session id")
	}
	if !again.HasOrigin() {
		t.Error("state lost across acquisitions")
	}
}

func TestPeekUnknownSession(t *testing.T) {
	store := NewStore(8, time.Minute)
	if _, _, ok := store.Peek("nope"); ok {
		t.Error("Peek must report unknown sessions")
	}
}

func TestPeekWaitsForInFlightTurn(t *testing.T) {
	store := NewStore(8, time.Minute)

	id, _, release := store.Acquire("")

	peeked := make(chan struct{})
	go func() {
		_, rel, ok := store.Peek(id)
		if ok {
			rel()
		}
		close(peeked)
	}()

	select {
	case <-peeked:
		t.Fatal("Peek returned while the session was held by a turn")
	case <-time.After(20 * time.Millisecond):
	}

	release()

	select {
	case <-peeked:
	case <-time.After(time.Second):
		t.Fatal("Peek never completed after release")
	}
}

func TestTTLEviction(t *testing.T) {
	store := NewStore(8, 20*time.Millisecond)

	id, _, release := store.Acquire("")
	release()

	time.Sleep(60 * time.Millisecond)

	if _, _, ok := store.Peek(id); ok {
		t.Error("expected session to expire after the TTL")
	}
}
