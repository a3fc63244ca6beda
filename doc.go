// Package redstore is a contract-layer cache adapter over a remote redis
// keyspace: a uniform get/set/mget/mset/del/ttl/keys/reset surface with a
// cacheability policy, TTL normalization, and a single error channel for
// connection and store failures.
//
// Components:
//   - Codec: (de)serializes opaque caller values <-> stored bytes, with a
//     reversible convention for the "no value" marker (codec.Absent).
//   - Policy: decides per value whether it may be stored at all; the default
//     rejects only nil and the absence marker.
//   - conn.Pool: one pooled handle to the store; every operation acquires a
//     bounded permit for its duration and fails fast once disconnected.
//   - Store: the stateless adapter implementing the operation contract.
//   - Cache: a thin facade substituting a construction-time default TTL when
//     the caller omits write options.
//
// Guarantees:
//   - MGet returns one element per requested key, in request order, with
//     codec.Absent for misses.
//   - MSet is all-or-nothing; one policy-refused value rejects the batch
//     before any I/O.
//   - A key written with no TTL reads back TTLInfinite (-1).
//   - Failures are *NotCacheableError, *ConnectionError, or *StoreError;
//     nothing retries automatically.
//
// Typical use:
//
//	cache, err := redstore.New(redstore.Options{
//	    Addr:       "localhost:6379",
//	    Namespace:  "app:prod",
//	    DefaultTTL: 10 * time.Minute,
//	})
//	...
//	_ = cache.Set(ctx, "user:1", u, nil)               // default TTL
//	_ = cache.Set(ctx, "cfg", c, &redstore.WriteOptions{TTL: 0}) // no expiry
package redstore
