package cache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/cloudgraph/pkg/diagram"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("Get = (%v, %v), want miss", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Error(err)
	}
}

// exercise runs the common Cache contract against c.
func exercise(t *testing.T, c Cache) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); ok || err != nil {
		t.Fatalf("Get(missing) = (%v, %v), want miss", ok, err)
	}
	if err := c.Set(ctx, "k", []byte("hello"), 0); err != nil {
		t.Fatal(err)
	}
	got, ok, err := c.Get(ctx, "k")
	if err != nil || !ok || string(got) != "hello" {
		t.Fatalf("Get(k) = (%q, %v, %v)", got, ok, err)
	}
	if err := c.Set(ctx, "k", []byte("world"), 0); err != nil {
		t.Fatal(err)
	}
	if got, _, _ := c.Get(ctx, "k"); string(got) != "world" {
		t.Errorf("overwrite: Get(k) = %q", got)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("deleted key still present")
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Errorf("Delete(missing) = %v", err)
	}
}

func TestMemoryCache(t *testing.T) {
	c := NewMemoryCache()
	defer c.Close()
	exercise(t, c)
}

func TestMemoryCacheCopies(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	data := []byte("abc")
	_ = c.Set(ctx, "k", data, 0)
	data[0] = 'x'

	got, _, _ := c.Get(ctx, "k")
	if string(got) != "abc" {
		t.Errorf("stored value aliased caller slice: %q", got)
	}
	got[0] = 'y'
	again, _, _ := c.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("returned value aliased stored slice: %q", again)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Fatal("fresh entry missing")
	}
	now = now.Add(2 * time.Minute)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expired entry returned")
	}
	if c.Len() != 0 {
		t.Errorf("Len = %d, want 0 after lazy expiry", c.Len())
	}
}

func TestFileCache(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	exercise(t, c)
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	_ = c.Set(ctx, "k", []byte("v"), time.Hour)
	if _, ok, _ := c.Get(ctx, "k"); !ok {
		t.Fatal("fresh entry missing")
	}
	now = now.Add(2 * time.Hour)
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Error("expired entry returned")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Errorf("expired entry file not removed: %v", err)
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("Get(corrupt) = (%v, %v), want miss", ok, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir = %q, want %q", c.Dir(), dir)
	}
	for _, k := range []string{"a", "b", "c"} {
		_ = c.Set(ctx, k, []byte(k), 0)
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear removed %d, want 3", n)
	}
	if _, ok, _ := c.Get(ctx, "a"); ok {
		t.Error("entry survived Clear")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	opts := diagram.LayoutOptions{Algorithm: diagram.AlgorithmForce, Seed: 42}

	a := k.LayoutKey("abc", opts)
	if a != k.LayoutKey("abc", opts) {
		t.Error("LayoutKey not deterministic")
	}

	tests := []struct {
		name string
		key  string
	}{
		{"OtherDiagram", k.LayoutKey("abd", opts)},
		{"OtherSeed", k.LayoutKey("abc", diagram.LayoutOptions{Algorithm: diagram.AlgorithmForce, Seed: 7})},
		{"OtherAlgorithm", k.LayoutKey("abc", diagram.LayoutOptions{Algorithm: diagram.AlgorithmGrid, Seed: 42})},
		{"Artifact", k.ArtifactKey("abc", "svg")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.key == a {
				t.Errorf("key collides with base key %s", a)
			}
		})
	}

	if k.ArtifactKey("h", "svg") == k.ArtifactKey("h", "dot") {
		t.Error("artifact keys ignore format")
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	k := NewScopedKeyer(inner, "staging:")
	opts := diagram.LayoutOptions{}

	if got, want := k.LayoutKey("h", opts), "staging:"+inner.LayoutKey("h", opts); got != want {
		t.Errorf("LayoutKey = %q, want %q", got, want)
	}
	if got, want := k.ArtifactKey("h", "svg"), "staging:"+inner.ArtifactKey("h", "svg"); got != want {
		t.Errorf("ArtifactKey = %q, want %q", got, want)
	}
	if NewScopedKeyer(nil, "p:").LayoutKey("h", opts) != "p:"+inner.LayoutKey("h", opts) {
		t.Error("nil inner keyer should fall back to the default keyer")
	}
}

func TestHash(t *testing.T) {
	h := Hash([]byte("cloudgraph"))
	if len(h) != 64 {
		t.Errorf("len(Hash) = %d, want 64", len(h))
	}
	if h != Hash([]byte("cloudgraph")) {
		t.Error("Hash not deterministic")
	}
}

func TestRetryWithBackoff(t *testing.T) {
	ctx := context.Background()
	transient := errors.New("connection reset")
	fatal := errors.New("bad request")

	tests := []struct {
		name      string
		failures  int
		err       error
		wantCalls int
		wantErr   error
	}{
		{name: "FirstTry", failures: 0, wantCalls: 1},
		{name: "RecoversAfterRetry", failures: 2, err: Retryable(transient), wantCalls: 3},
		{name: "GivesUp", failures: 5, err: Retryable(transient), wantCalls: 3, wantErr: transient},
		{name: "NotRetryable", failures: 5, err: fatal, wantCalls: 1, wantErr: fatal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithBackoff(ctx, 3, time.Millisecond, func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})
			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("err = %v, want nil", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestRetryWithBackoffCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := RetryWithBackoff(ctx, 3, time.Hour, func() error {
		return Retryable(errors.New("timeout"))
	})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestIsRetryable(t *testing.T) {
	if Retryable(nil) != nil {
		t.Error("Retryable(nil) should be nil")
	}
	base := errors.New("x")
	wrapped := Retryable(base)
	if !IsRetryable(wrapped) || IsRetryable(base) {
		t.Error("IsRetryable misclassifies")
	}
	if !errors.Is(wrapped, base) {
		t.Error("Retryable does not unwrap")
	}
}

// TestRedisCache runs against a live server when CLOUDGRAPH_REDIS_ADDR is set.
func TestRedisCache(t *testing.T) {
	addr := os.Getenv("CLOUDGRAPH_REDIS_ADDR")
	if addr == "" {
		t.Skip("CLOUDGRAPH_REDIS_ADDR not set")
	}
	c, err := NewRedisCache(context.Background(), RedisOptions{Addr: addr})
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	exercise(t, c)
}

func TestNewRedisCacheUnreachable(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	_, err := NewRedisCache(ctx, RedisOptions{Addr: "127.0.0.1:1"})
	if !errors.Is(err, ErrBackend) {
		t.Errorf("err = %v, want ErrBackend", err)
	}
}

func TestKeyFormat(t *testing.T) {
	k := NewDefaultKeyer()
	for _, key := range []string{
		k.LayoutKey("h", diagram.LayoutOptions{}),
		k.ArtifactKey("h", "svg"),
	} {
		parts := strings.Split(key, ":")
		if len(parts) != 3 || parts[1] != keyVersion || len(parts[2]) != 64 {
			t.Errorf("key %q not in kind:version:hash form", key)
		}
	}
}
