package core

import (
	"fmt"
	"log/slog"

	"github.com/caasmo/bottrap/cache"
	"github.com/caasmo/bottrap/config"
	"github.com/caasmo/bottrap/notify"
	"github.com/caasmo/bottrap/router"
)

// Option configures the App during construction.
type Option func(*App)

func WithConfigProvider(p *config.Provider) Option {
	return func(a *App) { a.configProvider = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.logger = l }
}

func WithCache(c cache.Cache[string, []byte]) Option {
	return func(a *App) { a.cache = c }
}

func WithRouter(r router.Router) Option {
	return func(a *App) { a.router = r }
}

func WithBlocklist(bl BlockStore) Option {
	return func(a *App) { a.blocklist = bl }
}

func WithNotifier(n notify.Notifier) Option {
	return func(a *App) { a.notifier = n }
}

// NewApp builds an App from options and checks the required collaborators
// are present. The blocklist may be injected later (SetBlocklist) by the
// top-level wiring, since it needs the logger to load.
func NewApp(opts ...Option) (*App, error) {
	a := &App{}
	for _, opt := range opts {
		opt(a)
	}

	if a.configProvider == nil {
		return nil, fmt.Errorf("config provider is required (use WithConfigProvider)")
	}
	if a.logger == nil {
		return nil, fmt.Errorf("logger is required (use WithLogger)")
	}
	if a.router == nil {
		return nil, fmt.Errorf("router is required (use WithRouter)")
	}
	if a.cache == nil {
		return nil, fmt.Errorf("cache is required (use WithCache)")
	}
	if a.notifier == nil {
		a.notifier = notify.Nop{}
	}

	return a, nil
}
