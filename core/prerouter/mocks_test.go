package prerouter

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/caasmo/bottrap/config"
	"github.com/caasmo/bottrap/core"
)

type stubCache struct{}

func (stubCache) Get(string) ([]byte, bool)                            { return nil, false }
func (stubCache) Set(string, []byte, int64) bool                       { return false }
func (stubCache) SetWithTTL(string, []byte, int64, time.Duration) bool { return false }

type stubBlockStore struct {
	mu  sync.Mutex
	ips map[string]struct{}
}

func newStubBlockStore(ips ...string) *stubBlockStore {
	s := &stubBlockStore{ips: make(map[string]struct{})}
	for _, ip := range ips {
		s.ips[ip] = struct{}{}
	}
	return s
}

func (s *stubBlockStore) Contains(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ips[ip]
	return ok
}

func (s *stubBlockStore) Add(ip string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ips[ip] = struct{}{}
	return nil
}

// newTestApp builds a minimal App with a decoy page on disk, enough for
// the middleware under test.
func newTestApp(t *testing.T, logger *slog.Logger) (*core.App, *config.Config) {
	t.Helper()

	dir := t.TempDir()
	bullshit := filepath.Join(dir, "bullshit.html")
	if err := os.WriteFile(bullshit, []byte("<html>bullshit</html>"), 0o644); err != nil {
		t.Fatalf("failed to write bullshit page: %v", err)
	}

	cfg := config.NewDefaultConfig()
	cfg.Paths.Bullshit = bullshit

	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	app := &core.App{}
	app.SetConfigProvider(config.NewProvider(cfg))
	app.SetLogger(logger)
	app.SetCache(stubCache{})
	app.SetBlocklist(newStubBlockStore())

	return app, cfg
}
