package redstore

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/redstore/codec"
	"github.com/unkn0wn-root/redstore/conn"
)

// Entry is one key/value pair in a batch write.
type Entry struct {
	Key   string
	Value any
}

// WriteOptions carries per-call write settings. A nil *WriteOptions means
// "caller said nothing" and lets the facade substitute its default TTL;
// a non-nil value with TTL <= 0 stores without expiration.
type WriteOptions struct {
	TTL time.Duration
}

// TTL sentinels returned by Store.TTL, matching the remote store's own
// convention.
const (
	TTLInfinite int64 = -1 // key exists and never expires
	TTLMissing  int64 = -2 // key does not exist
)

// Store is the adapter contract over the remote keyspace. Instances hold no
// entry state and are safe for concurrent use; all consistency of concurrent
// writes is delegated to the remote store's atomicity guarantees.
//
// Every operation acquires a pooled connection for its duration and releases
// it on all exit paths. Failures surface as *NotCacheableError (policy, no
// I/O performed), *ConnectionError (cannot acquire or use a connection), or
// *StoreError (remote command failure). No operation retries.
type Store interface {
	// Set stores value under key after the cacheability policy admits it.
	Set(ctx context.Context, key string, value any, opts *WriteOptions) error

	// Get returns the decoded value. A miss is (nil, false, nil); a key
	// deliberately stored as the absence marker is (codec.Absent, true, nil).
	Get(ctx context.Context, key string) (any, bool, error)

	// MSet writes the batch all-or-nothing: every value passes the policy
	// before any I/O, and the write (plus expirations when a TTL is given)
	// commits as a unit.
	MSet(ctx context.Context, entries []Entry, opts *WriteOptions) error

	// MGet returns exactly one element per requested key, in request order,
	// with codec.Absent standing in for missing keys.
	MGet(ctx context.Context, keys ...string) ([]any, error)

	// Del removes the given keys. Missing keys are not an error.
	Del(ctx context.Context, keys ...string) error

	// TTL returns the remaining lifetime of key in seconds, TTLInfinite for
	// a key with no expiration, or TTLMissing for a nonexistent key.
	TTL(ctx context.Context, key string) (int64, error)

	// Keys lazily yields key names matching pattern; an empty pattern
	// matches every key in the namespace.
	Keys(ctx context.Context, pattern string) iter.Seq2[string, error]

	// Reset flushes every entry in the namespace. Irreversible.
	Reset(ctx context.Context) error

	// Healthy reports whether the connection handle is connected and
	// error-free.
	Healthy() bool

	// Close disconnects the handle. Operations issued afterwards fail fast
	// with *ConnectionError.
	Close(ctx context.Context) error
}

// Options tune construction. Exactly one of Client, URL, or Addr is
// required; everything else has defaults.
type Options struct {
	// Connection target, consulted in order: Client, URL, Addr.
	URL      string
	Addr     string
	Password string
	DB       int

	// Client is a pre-built client. Set CloseClient only if this adapter
	// exclusively owns it.
	Client      redis.UniversalClient
	CloseClient bool

	// Namespace prefixes every stored key, isolating this adapter's entries
	// (and scoping Reset). Empty means a flat keyspace.
	Namespace string

	Codec  codec.Codec // nil => codec.JSON{}
	Policy Policy      // nil => DefaultPolicy{}; replacement is wholesale
	Logger Logger      // nil => NopLogger
	Hooks  Hooks       // nil => NopHooks

	// DefaultTTL is applied by the facade when a write arrives with nil
	// options. 0 => writes without options get no expiration.
	DefaultTTL time.Duration

	MaxActive      int           // concurrent operation bound; 0 => 16
	AcquireTimeout time.Duration // pool wait cap; 0 => 5s
}

// New builds the full stack: connection pool, store adapter, facade.
func New(opts Options) (*Cache, error) {
	s, err := NewStore(opts)
	if err != nil {
		return nil, err
	}
	return Wrap(s, opts.DefaultTTL), nil
}

// NewStore builds the raw adapter without facade defaulting.
func NewStore(opts Options) (Store, error) {
	pool, err := conn.New(conn.Config{
		URL:            opts.URL,
		Addr:           opts.Addr,
		Password:       opts.Password,
		DB:             opts.DB,
		Client:         opts.Client,
		CloseClient:    opts.CloseClient,
		MaxActive:      opts.MaxActive,
		AcquireTimeout: opts.AcquireTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("redstore: %w", err)
	}
	return newStore(opts, pool), nil
}
