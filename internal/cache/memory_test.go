package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestMemoryProviderSetGet(t *testing.T) {
	t.Parallel()

	provider, err := NewMemoryProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer provider.Close()

	ctx := context.Background()
	key := CallbackKey("payhere", "pay_123")

	if _, err := provider.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for missing key, got %v", err)
	}

	if err := provider.Set(ctx, key, "processed", time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	value, err := provider.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != "processed" {
		t.Fatalf("unexpected value: %q", value)
	}

	if err := provider.Delete(ctx, key); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := provider.Get(ctx, key); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestMemoryProviderExpiry(t *testing.T) {
	t.Parallel()

	provider, err := NewMemoryProvider()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer provider.Close()

	ctx := context.Background()
	if err := provider.Set(ctx, "transient", "v", 10*time.Millisecond); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	time.Sleep(30 * time.Millisecond)
	if _, err := provider.Get(ctx, "transient"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected expired key to be gone, got %v", err)
	}
}

func TestCallbackKey(t *testing.T) {
	t.Parallel()

	if got := CallbackKey("payhere", "abc"); got != "callback:payhere:abc" {
		t.Fatalf("unexpected key: %q", got)
	}
}
