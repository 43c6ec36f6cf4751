package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

type statsPayload struct {
	Total int64  `json:"total"`
	Label string `json:"label"`
}

func newTestHelper(t *testing.T) (*CacheHelper, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCacheHelper(client, "test:"), mr
}

func TestSetAndGet(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	want := statsPayload{Total: 42, Label: "projects"}
	if err := helper.Set(ctx, "stats", want, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got statsPayload
	if err := helper.Get(ctx, "stats", &got); err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != want {
		t.Errorf("Get() = %+v, want %+v", got, want)
	}
}

func TestGetMissingKey(t *testing.T) {
	helper, _ := newTestHelper(t)

	var got statsPayload
	err := helper.Get(context.Background(), "absent", &got)
	if !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() on missing key: error = %v, want ErrCacheNotFound", err)
	}
}

func TestExpiry(t *testing.T) {
	helper, mr := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "stats", statsPayload{Total: 1}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	mr.FastForward(2 * time.Minute)

	var got statsPayload
	if err := helper.Get(ctx, "stats", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("Get() after expiry: error = %v, want ErrCacheNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	for _, key := range []string{"a", "b", "c"} {
		if err := helper.Set(ctx, key, statsPayload{Total: 1}, time.Minute); err != nil {
			t.Fatalf("Set(%s) error = %v", key, err)
		}
	}

	if err := helper.Delete(ctx, "a", "b"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var got statsPayload
	if err := helper.Get(ctx, "a", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("deleted key should be gone, got %v", err)
	}
	if err := helper.Get(ctx, "c", &got); err != nil {
		t.Errorf("untouched key should survive, got %v", err)
	}
}

func TestInvalidatePattern(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	if err := helper.Set(ctx, "stats:cs", statsPayload{Total: 1}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := helper.Set(ctx, "stats:ec", statsPayload{Total: 2}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := helper.Set(ctx, "analytics:director", statsPayload{Total: 3}, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	if err := helper.InvalidatePattern(ctx, "stats:*"); err != nil {
		t.Fatalf("InvalidatePattern() error = %v", err)
	}

	var got statsPayload
	if err := helper.Get(ctx, "stats:cs", &got); !errors.Is(err, ErrCacheNotFound) {
		t.Errorf("matched key should be invalidated, got %v", err)
	}
	if err := helper.Get(ctx, "analytics:director", &got); err != nil {
		t.Errorf("unmatched key should survive, got %v", err)
	}
}

func TestCacheOrExecute(t *testing.T) {
	helper, _ := newTestHelper(t)
	ctx := context.Background()

	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return &statsPayload{Total: 7, Label: "computed"}, nil
	}

	var first statsPayload
	if err := helper.CacheOrExecute(ctx, "expensive", &first, time.Minute, compute); err != nil {
		t.Fatalf("CacheOrExecute() error = %v", err)
	}
	if first.Total != 7 {
		t.Errorf("first result = %+v", first)
	}

	var second statsPayload
	if err := helper.CacheOrExecute(ctx, "expensive", &second, time.Minute, compute); err != nil {
		t.Fatalf("CacheOrExecute() on warm cache: %v", err)
	}
	if second != first {
		t.Errorf("cached result = %+v, want %+v", second, first)
	}
	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
}

func TestCacheOrExecutePropagatesSourceError(t *testing.T) {
	helper, _ := newTestHelper(t)

	wantErr := errors.New("query failed")
	var dest statsPayload
	err := helper.CacheOrExecute(context.Background(), "failing", &dest, time.Minute, func() (interface{}, error) {
		return nil, wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Errorf("CacheOrExecute() error = %v, want the source error", err)
	}
}

func TestNilClientDegradesGracefully(t *testing.T) {
	helper := NewCacheHelper(nil, "test:")
	ctx := context.Background()

	if err := helper.Set(ctx, "k", statsPayload{}, time.Minute); err != nil {
		t.Errorf("Set() with nil client should be a no-op, got %v", err)
	}
	var got statsPayload
	if err := helper.Get(ctx, "k", &got); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("Get() with nil client: error = %v, want ErrCacheNotAvailable", err)
	}
	if err := helper.HealthCheck(ctx); !errors.Is(err, ErrCacheNotAvailable) {
		t.Errorf("HealthCheck() with nil client: error = %v, want ErrCacheNotAvailable", err)
	}

	// Reads fall through to the source every time.
	calls := 0
	if err := helper.CacheOrExecute(ctx, "k", &got, time.Minute, func() (interface{}, error) {
		calls++
		return &statsPayload{Total: 5}, nil
	}); err != nil {
		t.Fatalf("CacheOrExecute() with nil client: %v", err)
	}
	if calls != 1 || got.Total != 5 {
		t.Errorf("CacheOrExecute() should execute the source, calls=%d got=%+v", calls, got)
	}
}
