// Package actor carries the authenticated operator through a request context.
package actor

import "context"

// System is the actor recorded for changes made by background jobs.
const System = "system"

type contextKey struct{}

func WithActor(ctx context.Context, name string) context.Context {
	return context.WithValue(ctx, contextKey{}, name)
}

// FromContext returns the actor stored in ctx, or System when there is none.
func FromContext(ctx context.Context) string {
	if name, ok := ctx.Value(contextKey{}).(string); ok && name != "" {
		return name
	}
	return System
}
