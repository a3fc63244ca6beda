package conn

import (
	"context"
	"errors"
	"io"
	"net"

	"github.com/redis/go-redis/v9"
)

// IsNetworkError reports whether err is a transport-level failure (dead
// link, closed client, timeout) as opposed to a command-level error the
// store itself reported. Misses (redis.Nil) are never network errors.
func IsNetworkError(err error) bool {
	if err == nil || errors.Is(err, redis.Nil) {
		return false
	}
	if errors.Is(err, redis.ErrClosed) {
		return true
	}
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}

// stateHook drives the pool state machine from command outcomes: network
// failures flip connected -> erroring, the next clean round trip flips it
// back. Disconnected is terminal and never overwritten here.
type stateHook struct{ p *Pool }

var _ redis.Hook = (*stateHook)(nil)

func (h *stateHook) DialHook(next redis.DialHook) redis.DialHook {
	return func(ctx context.Context, network, addr string) (net.Conn, error) {
		c, err := next(ctx, network, addr)
		h.observe(err)
		return c, err
	}
}

func (h *stateHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		h.observe(err)
		return err
	}
}

func (h *stateHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		h.observe(err)
		return err
	}
}

func (h *stateHook) observe(err error) {
	switch {
	case err == nil, errors.Is(err, redis.Nil):
		h.p.markHealthy()
	case IsNetworkError(err):
		h.p.markError()
	}
}
