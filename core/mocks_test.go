package core

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/caasmo/bottrap/config"
	"github.com/caasmo/bottrap/notify"
)

// mockCache is a plain map-backed cache. Unlike ristretto it is
// immediately consistent, which keeps cache assertions deterministic.
type mockCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMockCache() *mockCache {
	return &mockCache{m: make(map[string][]byte)}
}

func (c *mockCache) Get(key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok
}

func (c *mockCache) Set(key string, value []byte, cost int64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
	return true
}

func (c *mockCache) SetWithTTL(key string, value []byte, cost int64, ttl time.Duration) bool {
	return c.Set(key, value, cost)
}

// mockBlockStore records Adds and optionally fails persistence.
type mockBlockStore struct {
	mu       sync.Mutex
	ips      map[string]struct{}
	addErr   error
	addCalls []string
}

func newMockBlockStore(ips ...string) *mockBlockStore {
	m := &mockBlockStore{ips: make(map[string]struct{})}
	for _, ip := range ips {
		m.ips[ip] = struct{}{}
	}
	return m
}

func (m *mockBlockStore) Contains(ip string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.ips[ip]
	return ok
}

func (m *mockBlockStore) Add(ip string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addCalls = append(m.addCalls, ip)
	m.ips[ip] = struct{}{}
	return m.addErr
}

// mockNotifier records sent notifications.
type mockNotifier struct {
	mu   sync.Mutex
	sent []notify.Notification
}

func (m *mockNotifier) Send(_ context.Context, n notify.Notification) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, n)
	return nil
}

// newTestApp builds an App over a temp directory layout:
//
//	<dir>/public/index.html
//	<dir>/public/404.html
//	<dir>/bullshit.html
//
// and returns the app plus its config for per-test tweaking.
func newTestApp(t *testing.T) (*App, *config.Config) {
	t.Helper()

	dir := t.TempDir()
	public := filepath.Join(dir, "public")
	if err := os.Mkdir(public, 0o755); err != nil {
		t.Fatalf("failed to create public dir: %v", err)
	}
	files := map[string]string{
		filepath.Join(public, "index.html"): "<html>real index</html>",
		filepath.Join(public, "404.html"):   "<html>custom not found</html>",
		filepath.Join(dir, "bullshit.html"): "<html>bullshit</html>",
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	cfg := config.NewDefaultConfig()
	cfg.Paths.Public = public
	cfg.Paths.NotFound = filepath.Join(public, "404.html")
	cfg.Paths.Bullshit = filepath.Join(dir, "bullshit.html")
	cfg.Paths.Blocklist = filepath.Join(dir, "blocklist.txt")
	cfg.Cache.StaticTTL = config.Duration{} // deterministic: no caching unless a test opts in

	app := &App{}
	app.SetConfigProvider(config.NewProvider(cfg))
	app.SetLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	app.SetCache(newMockCache())
	app.SetBlocklist(newMockBlockStore())
	app.SetNotifier(notify.Nop{})

	return app, cfg
}
