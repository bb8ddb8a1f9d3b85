package event

import (
	"sync"
	"testing"
)

func TestQueueFIFO(t *testing.T) {
	q := NewEventQueue()

	for i := 0; i < 10; i++ {
		q.Push(GameEvent{Type: EventType(i + 1), Frame: int64(i)})
	}
	if q.Len() != 10 {
		t.Fatalf("len = %d, want 10", q.Len())
	}

	events := q.Consume()
	if len(events) != 10 {
		t.Fatalf("consumed %d, want 10", len(events))
	}
	for i, ev := range events {
		if ev.Type != EventType(i+1) {
			t.Fatalf("event %d type = %d, want %d", i, ev.Type, i+1)
		}
	}

	if again := q.Consume(); again != nil {
		t.Fatalf("second consume returned %d events", len(again))
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewEventQueue()

	const producers = 8
	const perProducer = 50

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(GameEvent{Type: EventMoveOrder})
			}
		}()
	}
	wg.Wait()

	total := 0
	for {
		events := q.Consume()
		if len(events) == 0 {
			break
		}
		total += len(events)
	}
	if total != producers*perProducer {
		t.Fatalf("consumed %d events, want %d", total, producers*perProducer)
	}
}

func TestQueueEmptyConsume(t *testing.T) {
	q := NewEventQueue()
	if events := q.Consume(); events != nil {
		t.Fatalf("empty queue returned %v", events)
	}
	if q.Len() != 0 {
		t.Fatalf("len = %d, want 0", q.Len())
	}
}
