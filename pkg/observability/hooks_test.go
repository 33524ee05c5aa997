package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRegistryHooks{}
	r.OnQueryStart(ctx, "search")
	r.OnQueryComplete(ctx, "search", 3, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "https://api.kvk.nl/api/v2/zoeken?naam=Test")
	c.OnCacheMiss(ctx, "https://api.kvk.nl/api/v2/zoeken?naam=Test")
	c.OnCacheSet(ctx, "https://api.kvk.nl/api/v2/zoeken?naam=Test", 1024)

	h := NoopHTTPHooks{}
	h.OnThrottle(ctx, "api.kvk.nl", 200*time.Millisecond)
	h.OnRequest(ctx, "GET", "api.kvk.nl", "/api/v2/zoeken")
	h.OnResponse(ctx, "GET", "api.kvk.nl", "/api/v2/zoeken", 200, time.Second)
	h.OnError(ctx, "GET", "api.kvk.nl", "/api/v2/zoeken", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	if _, ok := Registry().(NoopRegistryHooks); !ok {
		t.Error("Registry() should return NoopRegistryHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customRegistry := &testRegistryHooks{}
	SetRegistryHooks(customRegistry)
	if Registry() != customRegistry {
		t.Error("SetRegistryHooks should set custom hooks")
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
	if _, ok := Registry().(NoopRegistryHooks); !ok {
		t.Error("Reset() should restore NoopRegistryHooks")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("Reset() should restore NoopHTTPHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()
	t.Cleanup(Reset)

	custom := &testRegistryHooks{}
	SetRegistryHooks(custom)
	SetRegistryHooks(nil)
	if Registry() != custom {
		t.Error("SetRegistryHooks(nil) should be ignored")
	}

	SetCacheHooks(nil)
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("SetCacheHooks(nil) should be ignored")
	}
}

type testRegistryHooks struct{ NoopRegistryHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
