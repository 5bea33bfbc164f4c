package observability

import (
	"context"
	"testing"
	"time"
)

type recordingRenderHooks struct {
	frameStarts int
	renderDone  int
}

func (h *recordingRenderHooks) OnFrameStart(context.Context, int)                          { h.frameStarts++ }
func (h *recordingRenderHooks) OnFrameComplete(context.Context, int, time.Duration, error) {}
func (h *recordingRenderHooks) OnRenderStart(context.Context, int, []string)               {}
func (h *recordingRenderHooks) OnRenderComplete(context.Context, int, []string, time.Duration, error) {
	h.renderDone++
}

type recordingCacheHooks struct {
	hits, misses int
}

func (h *recordingCacheHooks) OnCacheHit(context.Context, string)      { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(context.Context, string)     { h.misses++ }
func (h *recordingCacheHooks) OnCacheSet(context.Context, string, int) {}

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()
	ctx := context.Background()

	// None of these should panic.
	Render().OnFrameStart(ctx, 0)
	Render().OnRenderComplete(ctx, 3, []string{"gif"}, time.Second, nil)
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheSet(ctx, "artifact", 1024)
}

func TestSetRenderHooks(t *testing.T) {
	defer Reset()

	h := &recordingRenderHooks{}
	SetRenderHooks(h)

	ctx := context.Background()
	Render().OnFrameStart(ctx, 0)
	Render().OnFrameStart(ctx, 1)
	Render().OnRenderComplete(ctx, 2, nil, 0, nil)

	if h.frameStarts != 2 {
		t.Errorf("frameStarts = %d, want 2", h.frameStarts)
	}
	if h.renderDone != 1 {
		t.Errorf("renderDone = %d, want 1", h.renderDone)
	}
}

func TestSetCacheHooks(t *testing.T) {
	defer Reset()

	h := &recordingCacheHooks{}
	SetCacheHooks(h)

	ctx := context.Background()
	Cache().OnCacheHit(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")
	Cache().OnCacheMiss(ctx, "artifact")

	if h.hits != 1 || h.misses != 2 {
		t.Errorf("hits = %d, misses = %d, want 1, 2", h.hits, h.misses)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	defer Reset()

	h := &recordingRenderHooks{}
	SetRenderHooks(h)
	SetRenderHooks(nil)

	Render().OnFrameStart(context.Background(), 0)
	if h.frameStarts != 1 {
		t.Error("nil registration should keep the current hooks")
	}
}

func TestReset(t *testing.T) {
	h := &recordingRenderHooks{}
	SetRenderHooks(h)
	Reset()

	Render().OnFrameStart(context.Background(), 0)
	if h.frameStarts != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
