package analyzer

import (
	"context"
	"errors"
	"fmt"

	pool "github.com/jolestar/go-commons-pool"
)

// ErrPoolClosed is returned when borrowing from a pool which has been closed.
var ErrPoolClosed = errors.New("analyzer pool closed")

// Pool lends analyzers of a single profile to concurrent clients. Every
// borrower gets a private Analyzer, which it has to return after use.
type Pool struct {
	profile *Profile
	opool   *pool.ObjectPool
}

// NewPool creates a pool of analyzers for a profile. At most maxIdle
// analyzers are kept while not in use; values < 1 select the pool default.
// The number of analyzers lent concurrently is not limited.
func NewPool(ctx context.Context, profile *Profile, maxIdle int, opts ...Option) *Pool {
	if profile == nil {
		profile = EntityName
	}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			tracer().Debugf("pool %s: creating analyzer", profile.Name)
			return New(profile, opts...), nil
		})
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	if maxIdle > 0 {
		config.MaxIdle = maxIdle
	}
	return &Pool{
		profile: profile,
		opool:   pool.NewObjectPool(ctx, factory, config),
	}
}

// Profile returns the profile of the analyzers of p.
func (p *Pool) Profile() *Profile {
	return p.profile
}

// Borrow returns an analyzer from the pool, creating a new one if none is
// idle.
func (p *Pool) Borrow(ctx context.Context) (*Analyzer, error) {
	if p.opool.IsClosed() {
		return nil, ErrPoolClosed
	}
	o, err := p.opool.BorrowObject(ctx)
	if err != nil {
		return nil, fmt.Errorf("borrowing %s analyzer: %w", p.profile.Name, err)
	}
	return o.(*Analyzer), nil
}

// Return puts an analyzer back into the pool. The analyzer must not be used
// by the caller afterwards.
func (p *Pool) Return(ctx context.Context, a *Analyzer) error {
	if a == nil {
		return nil
	}
	a.Reset("")
	return p.opool.ReturnObject(ctx, a)
}

// Close closes the pool and drops all idle analyzers.
func (p *Pool) Close(ctx context.Context) {
	p.opool.Close(ctx)
}
