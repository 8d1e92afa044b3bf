// Package observability lets binaries observe renders and cache traffic.
//
// The pipeline reports to whatever hooks are registered; until something
// registers, events go to no-op implementations. The serve command wires in
// [NewPrometheusHooks]:
//
//	reg := prometheus.NewRegistry()
//	hooks := observability.NewPrometheusHooks(reg)
//	observability.SetRenderHooks(hooks)
//	observability.SetCacheHooks(hooks)
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// RenderHooks observes pipeline renders. OnRenderComplete is called once
// for every OnRenderStart, with the formats requested and a nil err on
// success. Cache hits count as renders.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, id string)
	OnRenderComplete(ctx context.Context, id string, formats []string, duration time.Duration, err error)
}

// CacheHooks observes artifact cache traffic. keyType names the kind of
// entry, "artifact" for rendered documents.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// NoopRenderHooks discards render events.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string) {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, []string, time.Duration, error) {
}

// NoopCacheHooks discards cache events.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// The registry holds boxed interfaces so loads never race with Set.
type renderBox struct{ RenderHooks }
type cacheBox struct{ CacheHooks }

var (
	renderHooks atomic.Pointer[renderBox]
	cacheHooks  atomic.Pointer[cacheBox]
)

func init() { Reset() }

// SetRenderHooks replaces the render hooks. A nil h is ignored.
func SetRenderHooks(h RenderHooks) {
	if h != nil {
		renderHooks.Store(&renderBox{h})
	}
}

// SetCacheHooks replaces the cache hooks. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheHooks.Store(&cacheBox{h})
	}
}

// Render returns the registered render hooks.
func Render() RenderHooks { return renderHooks.Load().RenderHooks }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheHooks.Load().CacheHooks }

// Reset installs the no-op hooks again.
func Reset() {
	renderHooks.Store(&renderBox{NoopRenderHooks{}})
	cacheHooks.Store(&cacheBox{NoopCacheHooks{}})
}
