package observability

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRunHooks{}
	r.OnRunStart(ctx, "bfs", 5, 4)
	r.OnRunComplete(ctx, "bfs", 12, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "trace")
	c.OnCacheMiss(ctx, "trace")
	c.OnCacheSet(ctx, "trace", 1024)

	h := NoopHTTPHooks{}
	h.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Run().(NoopRunHooks); !ok {
		t.Error("Run() should return NoopRunHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customRun := &testRunHooks{}
	SetRunHooks(customRun)
	if Run() != customRun {
		t.Error("SetRunHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Run().(NoopRunHooks); !ok {
		t.Error("Reset() should restore NoopRunHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testRunHooks{}
	SetRunHooks(custom)
	SetRunHooks(nil)

	if Run() != custom {
		t.Error("SetRunHooks(nil) should be ignored")
	}
}

func TestPrometheusHooks(t *testing.T) {
	reg := prometheus.NewRegistry()
	p := NewPrometheus(reg)
	ctx := context.Background()

	p.OnRunStart(ctx, "bfs", 5, 4)
	if got := testutil.ToFloat64(p.inFlight); got != 1 {
		t.Errorf("in flight = %g, want 1", got)
	}
	p.OnRunComplete(ctx, "bfs", 12, time.Millisecond, nil)
	p.OnRunStart(ctx, "bfs", 5, 4)
	p.OnRunComplete(ctx, "bfs", 0, 0, errors.New("boom"))

	if got := testutil.ToFloat64(p.inFlight); got != 0 {
		t.Errorf("in flight = %g, want 0", got)
	}
	if got := testutil.ToFloat64(p.runs.WithLabelValues("bfs", "ok")); got != 1 {
		t.Errorf("ok runs = %g, want 1", got)
	}
	if got := testutil.ToFloat64(p.runs.WithLabelValues("bfs", "error")); got != 1 {
		t.Errorf("error runs = %g, want 1", got)
	}

	p.OnCacheMiss(ctx, "trace")
	p.OnCacheSet(ctx, "trace", 100)
	p.OnCacheHit(ctx, "trace")
	p.OnCacheHit(ctx, "trace")
	if got := testutil.ToFloat64(p.cacheEvents.WithLabelValues("trace", "hit")); got != 2 {
		t.Errorf("cache hits = %g, want 2", got)
	}
	if got := testutil.ToFloat64(p.cacheBytes); got != 100 {
		t.Errorf("cache bytes = %g, want 100", got)
	}

	p.OnResponse(ctx, "GET", "/healthz", 200, time.Millisecond)
	if got := testutil.ToFloat64(p.httpRequests.WithLabelValues("GET", "/healthz", "200")); got != 1 {
		t.Errorf("http requests = %g, want 1", got)
	}

	const want = `
# HELP algotrace_cache_written_bytes_total Bytes written to the execution cache
# TYPE algotrace_cache_written_bytes_total counter
algotrace_cache_written_bytes_total 100
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "algotrace_cache_written_bytes_total"); err != nil {
		t.Error(err)
	}
}

func TestPrometheusDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	NewPrometheus(reg)
	defer func() {
		if recover() == nil {
			t.Error("registering twice on one registry should panic")
		}
	}()
	NewPrometheus(reg)
}

type testRunHooks struct{ NoopRunHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
