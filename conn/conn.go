// Package conn models the pooled link between the store adapter and the
// remote store.
//
// A Pool wraps a go-redis client and gates every adapter operation behind a
// bounded acquire: an operation takes a permit for the duration of the call
// and releases it on every exit path. Waiting for a permit is capped by an
// acquire timeout so an exhausted pool surfaces as an error instead of a
// hang. The pool tracks a coarse health state (connected, erroring,
// disconnected) driven by command outcomes and by an explicit Disconnect;
// after Disconnect, every Acquire fails fast with ErrDisconnected.
package conn

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
)

// State is the coarse health of the handle. It is observed by the adapter
// and mutated only by the I/O layer and Disconnect.
type State int32

const (
	StateConnected State = iota
	StateErroring
	StateDisconnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateErroring:
		return "erroring"
	case StateDisconnected:
		return "disconnected"
	default:
		return "unknown"
	}
}

var (
	// ErrDisconnected is returned by Acquire after Disconnect.
	ErrDisconnected = errors.New("conn: handle is disconnected")
	// ErrAcquireTimeout is returned when the pool stayed exhausted for the
	// whole acquire timeout.
	ErrAcquireTimeout = errors.New("conn: acquire timed out")
)

const (
	defaultMaxActive      = 16
	defaultAcquireTimeout = 5 * time.Second
	pingTimeout           = 5 * time.Second
)

// Config tunes pool construction. Exactly one of Client, URL, or Addr must
// be set; they are consulted in that order.
type Config struct {
	// URL is a redis:// connection string.
	URL string

	// Addr is a host:port pair, used with Password and DB when URL is empty.
	Addr     string
	Password string
	DB       int

	// Client is a pre-built client. When set, URL/Addr are ignored and the
	// pool closes the client on Disconnect only if CloseClient is true.
	Client      redis.UniversalClient
	CloseClient bool

	// MaxActive bounds concurrently held refs. 0 => 16.
	MaxActive int
	// AcquireTimeout caps waiting for a permit. 0 => 5s.
	AcquireTimeout time.Duration
}

// Pool is a handle to the remote store. Safe for concurrent use.
type Pool struct {
	rdb            redis.UniversalClient
	sem            chan struct{}
	acquireTimeout time.Duration
	closeClient    bool

	state     atomic.Int32
	closeOnce sync.Once
	closeErr  error
}

// New builds a pool and verifies the link with a ping.
func New(cfg Config) (*Pool, error) {
	rdb := cfg.Client
	closeClient := cfg.CloseClient
	switch {
	case rdb != nil:
	case cfg.URL != "":
		opt, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("conn: parse url: %w", err)
		}
		rdb = redis.NewClient(opt)
		closeClient = true
	case cfg.Addr != "":
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		closeClient = true
	default:
		return nil, errors.New("conn: no client, url, or addr configured")
	}

	maxActive := cfg.MaxActive
	if maxActive <= 0 {
		maxActive = defaultMaxActive
	}
	acquireTimeout := cfg.AcquireTimeout
	if acquireTimeout <= 0 {
		acquireTimeout = defaultAcquireTimeout
	}

	p := &Pool{
		rdb:            rdb,
		sem:            make(chan struct{}, maxActive),
		acquireTimeout: acquireTimeout,
		closeClient:    closeClient,
	}
	p.state.Store(int32(StateConnected))
	rdb.AddHook(&stateHook{p: p})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		if closeClient {
			_ = rdb.Close()
		}
		return nil, fmt.Errorf("conn: ping: %w", err)
	}
	return p, nil
}

// Acquire reserves a permit for one operation. The returned Ref must be
// released on every exit path; Release is idempotent so a deferred call is
// always safe.
func (p *Pool) Acquire(ctx context.Context) (*Ref, error) {
	if p.State() == StateDisconnected {
		return nil, ErrDisconnected
	}
	select {
	case p.sem <- struct{}{}:
	default:
		t := time.NewTimer(p.acquireTimeout)
		defer t.Stop()
		select {
		case p.sem <- struct{}{}:
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-t.C:
			return nil, ErrAcquireTimeout
		}
	}
	// Disconnect may have raced the wait above.
	if p.State() == StateDisconnected {
		<-p.sem
		return nil, ErrDisconnected
	}
	return &Ref{pool: p}, nil
}

// State returns the current health state.
func (p *Pool) State() State { return State(p.state.Load()) }

// Healthy reports whether the handle is connected and error-free.
func (p *Pool) Healthy() bool { return p.State() == StateConnected }

// Disconnect moves the handle to StateDisconnected and, when the pool owns
// the client, closes it. Safe to call multiple times; operations issued
// afterwards fail fast.
func (p *Pool) Disconnect(context.Context) error {
	p.state.Store(int32(StateDisconnected))
	p.closeOnce.Do(func() {
		if !p.closeClient {
			return
		}
		if err := p.rdb.Close(); err != nil && !errors.Is(err, redis.ErrClosed) {
			p.closeErr = err
		}
	})
	return p.closeErr
}

// Close is an alias for Disconnect.
func (p *Pool) Close(ctx context.Context) error { return p.Disconnect(ctx) }

func (p *Pool) markError() {
	p.state.CompareAndSwap(int32(StateConnected), int32(StateErroring))
}

func (p *Pool) markHealthy() {
	p.state.CompareAndSwap(int32(StateErroring), int32(StateConnected))
}

// Ref is one held connection permit paired with the client to use it on.
type Ref struct {
	pool *Pool
	once sync.Once
}

// Client returns the underlying client for the duration of the hold.
func (r *Ref) Client() redis.UniversalClient { return r.pool.rdb }

// Release returns the permit. Idempotent.
func (r *Ref) Release() {
	r.once.Do(func() { <-r.pool.sem })
}
