package redstore

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/redstore/codec"
	"github.com/unkn0wn-root/redstore/conn"
	"github.com/unkn0wn-root/redstore/internal/keyspace"
)

const scanPageSize = 256

type store struct {
	ns     string
	pool   *conn.Pool
	codec  codec.Codec
	policy Policy
	log    Logger
	hooks  Hooks
}

var _ Store = (*store)(nil)

func newStore(opts Options, pool *conn.Pool) *store {
	s := &store{
		ns:   opts.Namespace,
		pool: pool,
	}

	// defaults
	s.codec = coalesce[codec.Codec](opts.Codec, codec.JSON{})
	s.policy = coalesce[Policy](opts.Policy, DefaultPolicy{})
	s.log = coalesce[Logger](opts.Logger, NopLogger{})
	s.hooks = coalesce[Hooks](opts.Hooks, NopHooks{})
	return s
}

func (s *store) key(k string) string { return keyspace.Join(s.ns, k) }

// acquire maps every handle-level failure to *ConnectionError so callers
// see one error channel for "could not reach the store".
func (s *store) acquire(ctx context.Context, op string) (*conn.Ref, error) {
	ref, err := s.pool.Acquire(ctx)
	if err != nil {
		s.hooks.AcquireFailed(op, err)
		s.log.Debug("acquire failed", Fields{"op": op, "err": err})
		return nil, &ConnectionError{Op: op, Err: err}
	}
	return ref, nil
}

// opErr classifies a failure from the remote call path: transport-level
// failures become *ConnectionError, everything else *StoreError.
func (s *store) opErr(op, key string, err error) error {
	s.hooks.OpError(op, key, err)
	s.log.Debug("op failed", Fields{"op": op, "key": key, "err": err})
	if conn.IsNetworkError(err) {
		return &ConnectionError{Op: op, Err: err}
	}
	return &StoreError{Op: op, Key: key, Err: err}
}

// ttlOf normalizes write options: nil options or a non-positive TTL mean
// "store without expiration".
func ttlOf(opts *WriteOptions) time.Duration {
	if opts == nil || opts.TTL <= 0 {
		return 0
	}
	return opts.TTL
}

func (s *store) Set(ctx context.Context, key string, value any, opts *WriteOptions) error {
	if !s.policy.IsCacheable(value) {
		s.hooks.PolicyRejected(key, false)
		return &NotCacheableError{Value: value}
	}
	payload, err := s.codec.Encode(value)
	if err != nil {
		return &StoreError{Op: "encode", Key: key, Err: err}
	}

	ref, err := s.acquire(ctx, "set")
	if err != nil {
		return err
	}
	defer ref.Release()

	start := time.Now()
	if err := ref.Client().Set(ctx, s.key(key), payload, ttlOf(opts)).Err(); err != nil {
		return s.opErr("set", key, err)
	}
	s.hooks.OpCompleted("set", time.Since(start))
	return nil
}

func (s *store) Get(ctx context.Context, key string) (any, bool, error) {
	ref, err := s.acquire(ctx, "get")
	if err != nil {
		return nil, false, err
	}
	defer ref.Release()

	start := time.Now()
	b, err := ref.Client().Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, s.opErr("get", key, err)
	}
	v, err := s.codec.Decode(b)
	if err != nil {
		return nil, false, &StoreError{Op: "decode", Key: key, Err: err}
	}
	s.hooks.OpCompleted("get", time.Since(start))
	return v, true, nil
}

func (s *store) MSet(ctx context.Context, entries []Entry, opts *WriteOptions) error {
	if len(entries) == 0 {
		return nil
	}

	// Policy over every element before any I/O: one refused value rejects
	// the whole batch and nothing is committed.
	for _, e := range entries {
		if !s.policy.IsCacheable(e.Value) {
			s.hooks.PolicyRejected(e.Key, true)
			return &NotCacheableError{Value: e.Value}
		}
	}

	pairs := make([]any, 0, len(entries)*2)
	for _, e := range entries {
		payload, err := s.codec.Encode(e.Value)
		if err != nil {
			return &StoreError{Op: "encode", Key: e.Key, Err: err}
		}
		pairs = append(pairs, s.key(e.Key), payload)
	}
	ttl := ttlOf(opts)

	ref, err := s.acquire(ctx, "mset")
	if err != nil {
		return err
	}
	defer ref.Release()

	start := time.Now()
	if ttl == 0 {
		if err := ref.Client().MSet(ctx, pairs...).Err(); err != nil {
			return s.opErr("mset", "", err)
		}
	} else {
		// MSET cannot carry expirations, so the batch TTL is applied as
		// per-key EXPIREs inside the same MULTI/EXEC as the write.
		_, err := ref.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.MSet(ctx, pairs...)
			for _, e := range entries {
				pipe.Expire(ctx, s.key(e.Key), ttl)
			}
			return nil
		})
		if err != nil {
			return s.opErr("mset", "", err)
		}
	}
	s.hooks.OpCompleted("mset", time.Since(start))
	return nil
}

func (s *store) MGet(ctx context.Context, keys ...string) ([]any, error) {
	out := make([]any, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	ref, err := s.acquire(ctx, "mget")
	if err != nil {
		return nil, err
	}
	defer ref.Release()

	start := time.Now()
	vals, err := ref.Client().MGet(ctx, keyspace.JoinAll(s.ns, keys)...).Result()
	if err != nil {
		return nil, s.opErr("mget", "", err)
	}

	// One element per requested key, in request order; the absence marker
	// stands in for misses so the result never shrinks or reorders.
	for i, raw := range vals {
		switch t := raw.(type) {
		case nil:
			out[i] = codec.Absent
		case string:
			v, err := s.codec.Decode([]byte(t))
			if err != nil {
				return nil, &StoreError{Op: "decode", Key: keys[i], Err: err}
			}
			out[i] = v
		case []byte:
			v, err := s.codec.Decode(t)
			if err != nil {
				return nil, &StoreError{Op: "decode", Key: keys[i], Err: err}
			}
			out[i] = v
		default:
			return nil, &StoreError{Op: "mget", Key: keys[i], Err: fmt.Errorf("unexpected reply type %T", raw)}
		}
	}
	s.hooks.OpCompleted("mget", time.Since(start))
	return out, nil
}

func (s *store) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	ref, err := s.acquire(ctx, "del")
	if err != nil {
		return err
	}
	defer ref.Release()

	start := time.Now()
	// DEL reports how many keys existed; missing keys are not an error.
	if err := ref.Client().Del(ctx, keyspace.JoinAll(s.ns, keys)...).Err(); err != nil {
		return s.opErr("del", "", err)
	}
	s.hooks.OpCompleted("del", time.Since(start))
	return nil
}

func (s *store) TTL(ctx context.Context, key string) (int64, error) {
	ref, err := s.acquire(ctx, "ttl")
	if err != nil {
		return 0, err
	}
	defer ref.Release()

	start := time.Now()
	d, err := ref.Client().TTL(ctx, s.key(key)).Result()
	if err != nil {
		return 0, s.opErr("ttl", key, err)
	}
	s.hooks.OpCompleted("ttl", time.Since(start))

	// go-redis passes the store's -1/-2 sentinels through as bare negative
	// durations.
	switch d {
	case -1:
		return TTLInfinite, nil
	case -2:
		return TTLMissing, nil
	default:
		return int64(d / time.Second), nil
	}
}

// Keys yields matching key names lazily, one SCAN page at a time. The
// connection is held only while the caller iterates and is released when
// iteration stops, including early break. SCAN semantics apply: keys
// written during iteration may or may not appear, and a name can repeat.
func (s *store) Keys(ctx context.Context, pattern string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		ref, err := s.acquire(ctx, "keys")
		if err != nil {
			yield("", err)
			return
		}
		defer ref.Release()

		start := time.Now()
		it := ref.Client().Scan(ctx, 0, keyspace.Pattern(s.ns, pattern), scanPageSize).Iterator()
		for it.Next(ctx) {
			if !yield(keyspace.Strip(s.ns, it.Val()), nil) {
				return
			}
		}
		if err := it.Err(); err != nil {
			yield("", s.opErr("keys", "", err))
			return
		}
		s.hooks.OpCompleted("keys", time.Since(start))
	}
}

// Reset flushes every entry in the namespace. Irreversible. With no
// namespace configured the whole logical DB is flushed; otherwise only the
// namespaced keys are scanned and deleted, in pages.
func (s *store) Reset(ctx context.Context) error {
	ref, err := s.acquire(ctx, "reset")
	if err != nil {
		return err
	}
	defer ref.Release()

	start := time.Now()
	rdb := ref.Client()

	if s.ns == "" {
		if err := rdb.FlushDB(ctx).Err(); err != nil {
			return s.opErr("reset", "", err)
		}
		s.hooks.OpCompleted("reset", time.Since(start))
		return nil
	}

	batch := make([]string, 0, scanPageSize)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		if err := rdb.Del(ctx, batch...).Err(); err != nil {
			return err
		}
		batch = batch[:0]
		return nil
	}

	it := rdb.Scan(ctx, 0, keyspace.Pattern(s.ns, ""), scanPageSize).Iterator()
	for it.Next(ctx) {
		batch = append(batch, it.Val())
		if len(batch) == scanPageSize {
			if err := flush(); err != nil {
				return s.opErr("reset", "", err)
			}
		}
	}
	if err := it.Err(); err != nil {
		return s.opErr("reset", "", err)
	}
	if err := flush(); err != nil {
		return s.opErr("reset", "", err)
	}
	s.hooks.OpCompleted("reset", time.Since(start))
	return nil
}

func (s *store) Healthy() bool { return s.pool.Healthy() }

func (s *store) Close(ctx context.Context) error { return s.pool.Close(ctx) }
