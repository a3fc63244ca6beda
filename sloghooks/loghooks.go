// Package sloghooks logs redstore hook events through log/slog, with
// per-event sampling so a flapping backend cannot flood the log.
package sloghooks

import (
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/unkn0wn-root/redstore"
)

type Options struct {
	// Sampling to avoid floods; 0/1 = log all.
	PolicyRejectEvery uint64
	OpErrorEvery      uint64
	// Optional key redactor. Defaults to SHA-256 prefix.
	Redact func(string) string
}

type Hooks struct {
	l    *slog.Logger
	opts Options

	policyCtr atomic.Uint64
	opErrCtr  atomic.Uint64
}

var _ redstore.Hooks = (*Hooks)(nil)

func New(l *slog.Logger, opts Options) *Hooks {
	return &Hooks{l: l, opts: opts}
}

func (h *Hooks) redact(k string) string {
	if h.opts.Redact != nil {
		return h.opts.Redact(k)
	}
	sum := sha256.Sum256([]byte(k))
	return hex.EncodeToString(sum[:8])
}

func sampled(ctr *atomic.Uint64, every uint64) bool {
	if every <= 1 {
		return true
	}
	return ctr.Add(1)%every == 1
}

func (h *Hooks) PolicyRejected(key string, batch bool) {
	if !sampled(&h.policyCtr, h.opts.PolicyRejectEvery) {
		return
	}
	h.l.Warn("value rejected by cacheability policy",
		slog.String("key", h.redact(key)),
		slog.Bool("batch", batch),
	)
}

func (h *Hooks) AcquireFailed(op string, err error) {
	h.l.Error("connection acquire failed",
		slog.String("op", op),
		slog.Any("err", err),
	)
}

func (h *Hooks) OpError(op, key string, err error) {
	if !sampled(&h.opErrCtr, h.opts.OpErrorEvery) {
		return
	}
	h.l.Error("store operation failed",
		slog.String("op", op),
		slog.String("key", h.redact(key)),
		slog.Any("err", err),
	)
}

func (h *Hooks) OpCompleted(string, time.Duration) {}
