package repositorycache

import (
	"context"
)

type bypassContextKey struct{}

// WithoutCache marks the context so reads skip the cache lookup and load from
// the database. The loaded values still replace whatever was cached.
func WithoutCache(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, bypassContextKey{}, true)
}

func cacheBypassed(ctx context.Context) bool {
	if ctx == nil {
		return false
	}
	bypass, _ := ctx.Value(bypassContextKey{}).(bool)
	return bypass
}
