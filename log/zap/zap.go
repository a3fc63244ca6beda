package zap

import (
	"github.com/unkn0wn-root/redstore"
	"go.uber.org/zap"
)

// Logger adapts a zap.Logger to the redstore logging facade.
type Logger struct{ L *zap.Logger }

var _ redstore.Logger = Logger{}

func (z Logger) Debug(msg string, f redstore.Fields) { z.L.Debug(msg, zf(f)...) }
func (z Logger) Info(msg string, f redstore.Fields)  { z.L.Info(msg, zf(f)...) }
func (z Logger) Warn(msg string, f redstore.Fields)  { z.L.Warn(msg, zf(f)...) }
func (z Logger) Error(msg string, f redstore.Fields) { z.L.Error(msg, zf(f)...) }

func zf(f redstore.Fields) []zap.Field {
	if len(f) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(f))
	for k, v := range f {
		out = append(out, zap.Any(k, v))
	}
	return out
}
