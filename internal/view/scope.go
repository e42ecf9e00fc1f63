// Package view ties data loading and widget state to the lifetime of a
// single page view.
package view

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Scope is the lifetime of one page view. Work started through Load runs
// under the scope's context and is cancelled when the scope closes, so a
// view that goes away never receives a late result.
type Scope struct {
	id     string
	ctx    context.Context
	cancel context.CancelFunc
	logger *zap.Logger
	wg     sync.WaitGroup
}

// NewScope derives a scope from the request context.
func NewScope(parent context.Context, logger *zap.Logger) *Scope {
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(parent)
	id := uuid.NewString()
	return &Scope{
		id:     id,
		ctx:    ctx,
		cancel: cancel,
		logger: logger.With(zap.String("view_id", id)),
	}
}

// ID identifies the view in logs.
func (s *Scope) ID() string { return s.id }

// Context is cancelled when the scope closes.
func (s *Scope) Context() context.Context { return s.ctx }

// Logger carries the view id.
func (s *Scope) Logger() *zap.Logger { return s.logger }

// Close cancels outstanding work and waits for it to return. Fetches must
// honour their context.
func (s *Scope) Close() {
	s.cancel()
	s.wg.Wait()
}

type result[T any] struct {
	val   T
	err   error
	panic any
}

// Load runs fetch under the scope. It returns the context error as soon as
// the scope is cancelled, even if fetch has not returned yet. A panic in
// fetch is raised again on the caller's goroutine.
func Load[T any](s *Scope, fetch func(context.Context) (T, error)) (T, error) {
	ch := make(chan result[T], 1)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if p := recover(); p != nil {
				ch <- result[T]{panic: p}
			}
		}()
		v, err := fetch(s.ctx)
		ch <- result[T]{val: v, err: err}
	}()

	select {
	case r := <-ch:
		if r.panic != nil {
			panic(r.panic)
		}
		return r.val, r.err
	case <-s.ctx.Done():
		var zero T
		s.logger.Debug("view torn down before fetch completed", zap.Error(s.ctx.Err()))
		return zero, s.ctx.Err()
	}
}
