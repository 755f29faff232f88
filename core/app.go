package core

import (
	"log/slog"

	"github.com/caasmo/bottrap/cache"
	"github.com/caasmo/bottrap/config"
	"github.com/caasmo/bottrap/notify"
	"github.com/caasmo/bottrap/router"
)

// BlockStore is the persistent set of blocked client IPs.
//
// Contains must reflect every completed Add, including from concurrent
// requests. Add must be durable before it returns; an Add error means
// persistence degraded but the in-memory block still holds.
type BlockStore interface {
	Contains(ip string) bool
	Add(ip string) error
}

// App is the application wide context.
//
// It holds the heavy, long-lived objects the handlers need: config
// provider, logger, cache, router, blocklist and notifier. All handlers
// and middleware have App as receiver or hold a reference to it.
type App struct {
	configProvider *config.Provider
	logger         *slog.Logger
	cache          cache.Cache[string, []byte]
	router         router.Router
	blocklist      BlockStore
	notifier       notify.Notifier
}

// Router returns the application's router instance
func (a *App) Router() router.Router {
	return a.router
}

func (a *App) SetRouter(r router.Router) {
	a.router = r
}

func (a *App) Logger() *slog.Logger {
	return a.logger
}

func (a *App) SetLogger(l *slog.Logger) {
	a.logger = l
}

func (a *App) Cache() cache.Cache[string, []byte] {
	return a.cache
}

func (a *App) SetCache(c cache.Cache[string, []byte]) {
	a.cache = c
}

// Config returns the current configuration snapshot.
func (a *App) Config() *config.Config {
	return a.configProvider.Get()
}

func (a *App) SetConfigProvider(provider *config.Provider) {
	a.configProvider = provider
}

func (a *App) Blocklist() BlockStore {
	return a.blocklist
}

func (a *App) SetBlocklist(bl BlockStore) {
	a.blocklist = bl
}

func (a *App) Notifier() notify.Notifier {
	return a.notifier
}

func (a *App) SetNotifier(n notify.Notifier) {
	a.notifier = n
}
