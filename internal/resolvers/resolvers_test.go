package resolvers_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hlsl-lang/frontend/internal/resolvers"
)

func TestMemoryResolveQuotedRelativeToCurrent(t *testing.T) {
	mem := resolvers.NewMemory(map[string]string{
		"shaders/common.hlsli": "float3 tint;",
	})

	handle, text, err := mem.Resolve("shaders/main.hlsl", "common.hlsli", true)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if handle != "shaders/common.hlsli" {
		t.Errorf("handle = %q, want %q", handle, "shaders/common.hlsli")
	}
	if text != "float3 tint;" {
		t.Errorf("text = %q", text)
	}
}

func TestMemoryResolveAngleFallsBackToDirectLookup(t *testing.T) {
	mem := resolvers.NewMemory(map[string]string{
		"lib/util.hlsli": "float square(float x) { return x * x; }",
	})

	_, _, err := mem.Resolve("main.hlsl", "lib/util.hlsli", false)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
}

func TestMemoryResolveMissingFails(t *testing.T) {
	mem := resolvers.NewMemory(nil)
	if _, _, err := mem.Resolve("main.hlsl", "nope.hlsli", true); err == nil {
		t.Fatal("expected an error for a missing target")
	}
}

func TestMemoryPutAddsFile(t *testing.T) {
	mem := resolvers.NewMemory(nil)
	mem.Put("extra.hlsli", "float4 ONE = float4(1,1,1,1);")

	_, text, err := mem.Resolve("main.hlsl", "extra.hlsli", false)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if text != "float4 ONE = float4(1,1,1,1);" {
		t.Errorf("text = %q", text)
	}
}

func TestFilesystemResolveQuotedRelativeToCurrent(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "common.hlsli"), []byte("float3 tint;"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := resolvers.NewFilesystem()
	current := filepath.Join(dir, "main.hlsl")

	handle, text, err := fs.Resolve(current, "common.hlsli", true)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if text != "float3 tint;" {
		t.Errorf("text = %q", text)
	}
	if handle == "" {
		t.Error("expected a non-empty handle")
	}
}

func TestFilesystemResolveSearchPathFallback(t *testing.T) {
	root := t.TempDir()
	libDir := filepath.Join(root, "lib")
	if err := os.MkdirAll(libDir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(libDir, "util.hlsli"), []byte("float sq(float x){return x*x;}"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := resolvers.NewFilesystem(libDir)
	_, text, err := fs.Resolve(filepath.Join(root, "main.hlsl"), "util.hlsli", false)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if text == "" {
		t.Error("expected non-empty text from search path fallback")
	}
}

func TestFilesystemResolveMissingFails(t *testing.T) {
	fs := resolvers.NewFilesystem(t.TempDir())
	if _, _, err := fs.Resolve("main.hlsl", "nope.hlsli", true); err == nil {
		t.Fatal("expected an error for a missing target")
	}
}

func TestSQLiteCacheWrapsAndCaches(t *testing.T) {
	calls := 0
	inner := countingResolver{
		resolve: func(current, target string, quoted bool) (string, string, error) {
			calls++
			return target, "cached-body", nil
		},
	}

	dsn := filepath.Join(t.TempDir(), "cache.db")
	cache, err := resolvers.NewSQLiteCache(dsn, inner)
	if err != nil {
		t.Fatalf("NewSQLiteCache: %s", err)
	}
	defer cache.Close()

	for i := 0; i < 3; i++ {
		_, text, err := cache.Resolve("main.hlsl", "common.hlsli", true)
		if err != nil {
			t.Fatalf("Resolve: %s", err)
		}
		if text != "cached-body" {
			t.Errorf("text = %q", text)
		}
	}

	if calls != 1 {
		t.Errorf("inner resolver called %d times, want 1 (subsequent calls should hit the cache)", calls)
	}
}

func TestSQLiteCacheInvalidate(t *testing.T) {
	calls := 0
	inner := countingResolver{
		resolve: func(current, target string, quoted bool) (string, string, error) {
			calls++
			return target, "body", nil
		},
	}

	dsn := filepath.Join(t.TempDir(), "cache.db")
	cache, err := resolvers.NewSQLiteCache(dsn, inner)
	if err != nil {
		t.Fatalf("NewSQLiteCache: %s", err)
	}
	defer cache.Close()

	if _, _, err := cache.Resolve("main.hlsl", "common.hlsli", true); err != nil {
		t.Fatal(err)
	}
	if err := cache.Invalidate("main.hlsl"); err != nil {
		t.Fatalf("Invalidate: %s", err)
	}
	if _, _, err := cache.Resolve("main.hlsl", "common.hlsli", true); err != nil {
		t.Fatal(err)
	}

	if calls != 2 {
		t.Errorf("inner resolver called %d times, want 2 (invalidate should force a re-resolve)", calls)
	}
}

type countingResolver struct {
	resolve func(current, target string, quoted bool) (string, string, error)
}

func (c countingResolver) Resolve(current, target string, quoted bool) (string, string, error) {
	return c.resolve(current, target, quoted)
}
