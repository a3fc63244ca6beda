// Package keyspace holds the namespacing helpers for stored key names.
package keyspace

import "strings"

// Join prefixes key with the namespace. An empty namespace means a flat
// keyspace and keys pass through untouched.
func Join(ns, key string) string {
	if ns == "" {
		return key
	}
	return ns + ":" + key
}

// JoinAll maps Join over keys, preserving order.
func JoinAll(ns string, keys []string) []string {
	if ns == "" {
		return keys
	}
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = ns + ":" + k
	}
	return out
}

// Strip removes the namespace prefix from a stored key name.
func Strip(ns, full string) string {
	if ns == "" {
		return full
	}
	return strings.TrimPrefix(full, ns+":")
}

// Pattern scopes a caller glob to the namespace. An empty pattern matches
// every key in the namespace.
func Pattern(ns, p string) string {
	if p == "" {
		p = "*"
	}
	return Join(ns, p)
}
