package cache

import (
	"context"
	"testing"
	"time"

	"github.com/WareOnGo/WareOnGo-Website-Backend/internal/config"
)

// newUnreachableStore points at a port nothing listens on, so every backend
// call fails with a connection error.
func newUnreachableStore() *RedisStore {
	return NewRedisStore(&config.Config{RedisAddr: "127.0.0.1:1"})
}

func TestGetReportsMissWhenBackendUnreachable(t *testing.T) {
	store := newUnreachableStore()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	val, ok := store.Get(ctx, "warehouses:list:p1:s10:{}")
	if ok {
		t.Fatalf("unreachable backend must report a miss, got hit with %q", val)
	}
	if val != "" {
		t.Errorf("miss must return an empty value, got %q", val)
	}
}

func TestSetSwallowsBackendFailure(t *testing.T) {
	store := newUnreachableStore()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Must return without panicking; the caller already served its response
	store.Set(ctx, "warehouses:list:p1:s10:{}", "{}", time.Minute)
}

func TestDeleteByPrefixSurfacesBackendFailure(t *testing.T) {
	store := newUnreachableStore()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := store.DeleteByPrefix(ctx, "warehouses:list:"); err == nil {
		t.Fatalf("cache clearing must report backend errors")
	}
}
