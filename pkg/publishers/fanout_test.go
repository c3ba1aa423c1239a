package publishers

import (
	"context"
	"errors"
	"testing"
)

type stubPublisher struct {
	id    string
	typ   string
	err   error
	calls int
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	fanout := NewFanout([]Publisher{
		&stubPublisher{id: "ok", typ: "http"},
		&stubPublisher{id: "bad", typ: "http", err: errors.New("failed")},
	})

	count, err := fanout.Publish(context.Background(), Event{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 {
		t.Fatalf("expected 1 publisher, got %d", len(pubs))
	}
}

func TestBuildAllUnknownType(t *testing.T) {
	_, err := BuildAll(context.Background(), DefaultRegistry(), []PublisherConfig{
		{ID: "mail", Type: "smtp"},
	}, nil)
	if err == nil {
		t.Fatal("expected error for unknown publisher type")
	}
}

type closingPublisher struct {
	stubPublisher
	closed bool
}

func (c *closingPublisher) Close() error {
	c.closed = true
	return nil
}

func TestFanoutCloseReleasesPublishers(t *testing.T) {
	c := &closingPublisher{stubPublisher: stubPublisher{id: "pubsub", typ: TypeGCPPubSub}}
	fanout := NewFanout([]Publisher{c, &stubPublisher{id: "hook", typ: TypeHTTP}, nil})
	if fanout.Size() != 2 {
		t.Fatalf("size = %d", fanout.Size())
	}
	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !c.closed {
		t.Fatal("publisher was not closed")
	}
}

func TestFanoutWithoutPublishers(t *testing.T) {
	count, err := NewFanout(nil).Publish(context.Background(), Event{})
	if count != 0 || err != nil {
		t.Fatalf("Publish = %d, %v", count, err)
	}
}

type blockingPublisher struct {
	stubPublisher
	started chan struct{}
	release chan struct{}
}

func (b *blockingPublisher) Publish(ctx context.Context, _ Event) error {
	b.started <- struct{}{}
	<-b.release
	return nil
}

func TestFanoutPublishesConcurrently(t *testing.T) {
	started := make(chan struct{}, 2)
	release := make(chan struct{})
	a := &blockingPublisher{stubPublisher: stubPublisher{id: "a", typ: TypeHTTP}, started: started, release: release}
	b := &blockingPublisher{stubPublisher: stubPublisher{id: "b", typ: TypeSQS}, started: started, release: release}

	done := make(chan int, 1)
	go func() {
		n, _ := NewFanout([]Publisher{a, b}).Publish(context.Background(), Event{})
		done <- n
	}()

	// Both publishers must be in flight before either is released.
	<-started
	<-started
	close(release)
	if n := <-done; n != 2 {
		t.Fatalf("expected 2 successes, got %d", n)
	}
}
