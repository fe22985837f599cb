package sinks

import (
	"context"
	"errors"
	"testing"
)

type stubSink struct {
	id    string
	typ   string
	err   error
	calls int
}

func (s *stubSink) ID() string   { return s.id }
func (s *stubSink) Type() string { return s.typ }
func (s *stubSink) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	fanout := NewFanout([]Sink{
		&stubSink{id: "ok", typ: "http"},
		&stubSink{id: "bad", typ: "http", err: errors.New("failed")},
	})

	count, err := fanout.Publish(context.Background(), Event{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
}

func TestFanoutSkipsNilSinks(t *testing.T) {
	fanout := NewFanout([]Sink{nil, &stubSink{id: "ok", typ: "http"}})
	if fanout.Size() != 1 {
		t.Fatalf("expected nil sinks to be dropped, size=%d", fanout.Size())
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	all, err := BuildAll(context.Background(), reg, []SinkConfig{
		{ID: "hook", Type: TypeHTTP, HTTP: &HTTPSinkConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("expected 1 sink, got %d", len(all))
	}
}
