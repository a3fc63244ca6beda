package conn

import (
	"context"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestPool(t *testing.T, mutate func(*Config)) *Pool {
	t.Helper()
	mr := miniredis.RunT(t)
	cfg := Config{Addr: mr.Addr()}
	if mutate != nil {
		mutate(&cfg)
	}
	p, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(context.Background()) })
	return p
}

func TestNewValidation(t *testing.T) {
	t.Run("no_target", func(t *testing.T) {
		_, err := New(Config{})
		require.Error(t, err)
	})
	t.Run("bad_url", func(t *testing.T) {
		_, err := New(Config{URL: "://nope"})
		require.Error(t, err)
	})
	t.Run("unreachable", func(t *testing.T) {
		_, err := New(Config{Addr: "127.0.0.1:1", AcquireTimeout: 50 * time.Millisecond})
		require.Error(t, err)
	})
}

func TestHealthyAfterConstruction(t *testing.T) {
	p := newTestPool(t, nil)
	require.True(t, p.Healthy())
	require.Equal(t, StateConnected, p.State())
}

func TestAcquireReleaseBound(t *testing.T) {
	p := newTestPool(t, func(c *Config) {
		c.MaxActive = 1
		c.AcquireTimeout = 50 * time.Millisecond
	})
	ctx := context.Background()

	ref, err := p.Acquire(ctx)
	require.NoError(t, err)

	// pool of one is exhausted; the second acquire times out instead of
	// hanging
	_, err = p.Acquire(ctx)
	require.ErrorIs(t, err, ErrAcquireTimeout)

	ref.Release()
	ref2, err := p.Acquire(ctx)
	require.NoError(t, err)
	ref2.Release()

	// Release is idempotent; double release must not free a second permit
	ref2.Release()
	ref3, err := p.Acquire(ctx)
	require.NoError(t, err)
	defer ref3.Release()
	_, err = p.Acquire(ctx)
	require.ErrorIs(t, err, ErrAcquireTimeout)
}

func TestAcquireHonorsContext(t *testing.T) {
	p := newTestPool(t, func(c *Config) {
		c.MaxActive = 1
		c.AcquireTimeout = time.Minute
	})
	ref, err := p.Acquire(context.Background())
	require.NoError(t, err)
	defer ref.Release()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = p.Acquire(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestDisconnectFailsFast(t *testing.T) {
	p := newTestPool(t, nil)
	ctx := context.Background()

	require.NoError(t, p.Disconnect(ctx))
	require.Equal(t, StateDisconnected, p.State())
	require.False(t, p.Healthy())

	_, err := p.Acquire(ctx)
	require.ErrorIs(t, err, ErrDisconnected)

	// idempotent
	require.NoError(t, p.Disconnect(ctx))
}

func TestStateString(t *testing.T) {
	require.Equal(t, "connected", StateConnected.String())
	require.Equal(t, "erroring", StateErroring.String())
	require.Equal(t, "disconnected", StateDisconnected.String())
	require.Equal(t, "unknown", State(99).String())
}

func TestIsNetworkError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"miss", redis.Nil, false},
		{"command", errors.New("WRONGTYPE Operation against a key"), false},
		{"closed", redis.ErrClosed, true},
		{"eof", io.EOF, true},
		{"op_error", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"deadline", context.DeadlineExceeded, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, IsNetworkError(tc.err))
		})
	}
}

// a command failing at the transport level flips the state to erroring; the
// next clean round trip flips it back.
func TestStateTracksCommandOutcomes(t *testing.T) {
	mr := miniredis.RunT(t)
	p, err := New(Config{Addr: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Close(context.Background()) })

	ctx := context.Background()
	ref, err := p.Acquire(ctx)
	require.NoError(t, err)

	mr.Close()
	_ = ref.Client().Ping(ctx).Err()
	require.Equal(t, StateErroring, p.State())
	ref.Release()

	require.NoError(t, mr.Restart())
	ref, err = p.Acquire(ctx)
	require.NoError(t, err)
	require.NoError(t, ref.Client().Ping(ctx).Err())
	require.Equal(t, StateConnected, p.State())
	ref.Release()
}
