package mocks

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel/trace"

	"bazaar/infras/otel"
)

// Recorder is an in-memory otel.Otel that keeps every scope it opened.
type Recorder struct {
	mu     sync.Mutex
	scopes []*Scope
}

func (r *Recorder) NewScope(ctx context.Context, scopeName, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	defer r.mu.Unlock()

	scope := newScope(scopeName, spanName)
	scope.Parent = trace.SpanContextFromContext(ctx)
	r.scopes = append(r.scopes, scope)

	return ctx, scope
}

// Scopes returns the scopes opened so far in order.
func (r *Recorder) Scopes() []*Scope {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]*Scope(nil), r.scopes...)
}

// Find returns the first scope with the span name.
func (r *Recorder) Find(spanName string) (*Scope, bool) {
	for _, scope := range r.Scopes() {
		if scope.SpanName == spanName {
			return scope, true
		}
	}

	return nil, false
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func NewOtel() otel.Otel {
	return NewRecorder()
}
