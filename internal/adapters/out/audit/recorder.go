// Package audit writes committed state changes to a structured zap log.
package audit

import (
	"context"
	"slices"
	"sort"

	"fulfillment/internal/core/ports"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapRecorder implements ports.AuditRecorder. Every event becomes one Info
// entry named "audit" carrying the action, actor, entity and its before and
// after states as fields.
type ZapRecorder struct {
	logger *zap.Logger
}

func NewZapRecorder(logger *zap.Logger) *ZapRecorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapRecorder{logger: logger.Named("audit")}
}

func (r *ZapRecorder) Record(_ context.Context, event ports.AuditEvent) {
	fields := []zap.Field{
		zap.String("action", string(event.Action)),
		zap.String("actor", event.Actor),
		zap.String("entity_type", string(event.EntityType)),
		zap.String("entity_id", event.EntityID),
		zap.Time("at", event.At),
	}
	if event.Before != nil {
		fields = append(fields, zap.Object("before", state(event.Before)))
	}
	if event.After != nil {
		fields = append(fields, zap.Object("after", state(event.After)))
	}

	keys := make([]string, 0, len(event.Details))
	for key := range event.Details {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fields = append(fields, zap.Any(key, event.Details[key]))
	}

	r.logger.Info("audit", fields...)
}

// Sync flushes buffered entries. Call it on shutdown.
func (r *ZapRecorder) Sync() error {
	return r.logger.Sync()
}

// state encodes an entity snapshot as a nested object with sorted keys.
type state ports.AuditState

func (s state) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	keys := make([]string, 0, len(s))
	for key := range s {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		if err := enc.AddReflected(key, s[key]); err != nil {
			return err
		}
	}
	return nil
}
