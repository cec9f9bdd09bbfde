package redis

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestIdempotencyStore_KeyIsScoped(t *testing.T) {
	s := NewIdempotencyStore(nil)

	if got := s.key("user_1", "abc"); got != "idem:user_1:abc" {
		t.Fatalf("unexpected key: %s", got)
	}
	if s.key("user_1", "abc") == s.key("user_2", "abc") {
		t.Fatal("keys from different scopes must not collide")
	}
}

func TestIdempotencyStore_UnreachableServerReturnsError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	s := NewIdempotencyStore(client)

	if _, found, err := s.Lookup(context.Background(), "user_1", "abc"); err == nil || found {
		t.Fatalf("expected lookup error, got found=%v err=%v", found, err)
	}
	if err := s.Remember(context.Background(), "user_1", "abc", "task-1"); err == nil {
		t.Fatal("expected remember error")
	}
}
