package pg

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// Probe answers whether the relational backend can be used right now.
type Probe struct {
	db      Pinger
	timeout time.Duration
	prepare func(ctx context.Context) error

	mu       sync.Mutex
	prepared bool
}

// NewProbe builds a probe over db. A nil db means no database is configured
// and the probe always reports false. prepare, when set, runs once after the
// first successful ping of the process (schema migrations); until it succeeds
// the backend counts as unavailable.
func NewProbe(db Pinger, timeout time.Duration, prepare func(ctx context.Context) error) *Probe {
	return &Probe{
		db:      db,
		timeout: timeout,
		prepare: prepare,
	}
}

type memoKey struct{}

type memo struct {
	once sync.Once
	ok   bool
}

// WithProbeMemo returns a context in which the first probe answer is reused
// by every later call made with it.
func WithProbeMemo(ctx context.Context) context.Context {
	if _, ok := ctx.Value(memoKey{}).(*memo); ok {
		return ctx
	}
	return context.WithValue(ctx, memoKey{}, &memo{})
}

func (p *Probe) Available(ctx context.Context) bool {
	if m, ok := ctx.Value(memoKey{}).(*memo); ok {
		m.once.Do(func() {
			m.ok = p.check(ctx)
		})
		return m.ok
	}
	return p.check(ctx)
}

func (p *Probe) check(ctx context.Context) bool {
	if p == nil || p.db == nil {
		return false
	}

	pingCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	if err := p.db.Ping(pingCtx); err != nil {
		zap.L().Debug("relational backend unavailable, using flat-file store", zap.Error(err))
		return false
	}

	return p.ensurePrepared(ctx)
}

func (p *Probe) ensurePrepared(ctx context.Context) bool {
	if p.prepare == nil {
		return true
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.prepared {
		return true
	}
	if err := p.prepare(ctx); err != nil {
		zap.L().Error("can't prepare relational backend", zap.Error(err))
		return false
	}
	p.prepared = true
	return true
}
