package bottrap

import (
	"io"
	"log/slog"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/caasmo/bottrap/blocklist"
	"github.com/caasmo/bottrap/config"
	"github.com/caasmo/bottrap/core"
	"github.com/caasmo/bottrap/core/prerouter"
	"github.com/caasmo/bottrap/notify"
	"github.com/caasmo/bottrap/notify/discord"
	"github.com/caasmo/bottrap/router"
	"github.com/caasmo/bottrap/server"
)

// New creates the App and Server from a config file and the provided
// options. It wires the blocklist, the notifier, the routes and the
// pre-router middleware chain.
func New(configPath string, opts ...core.Option) (*core.App, *server.Server, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		slog.Error("failed to load config", "path", configPath, "error", err)
		return nil, nil, err
	}

	configProvider := config.NewProvider(cfg)

	// The config provider goes first so user options can see it.
	allOpts := []core.Option{core.WithConfigProvider(configProvider)}
	allOpts = append(allOpts, opts...)

	app, err := core.NewApp(allOpts...)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return nil, nil, err
	}

	// The blocklist needs the logger, so it is built after the app unless
	// an option already injected one.
	if app.Blocklist() == nil {
		bl, err := blocklist.New(cfg.Paths.Blocklist, app.Logger())
		if err != nil {
			app.Logger().Error("failed to load blocklist", "path", cfg.Paths.Blocklist, "error", err)
			return nil, nil, err
		}
		app.SetBlocklist(bl)
	}

	if err := setupNotifier(app, cfg); err != nil {
		return nil, nil, err
	}

	route(cfg, app)

	handler, err := buildHandler(app, prerouter.MetricsOpts{})
	if err != nil {
		app.Logger().Error("failed to build handler chain", "error", err)
		return nil, nil, err
	}

	srv := server.NewServer(configProvider, handler, app.Logger())
	if c, ok := app.Blocklist().(io.Closer); ok {
		srv.AddCloser(c)
	}

	return app, srv, nil
}

// setupNotifier replaces the default no-op notifier with Discord when the
// config activates it. A notifier injected via options wins.
func setupNotifier(app *core.App, cfg *config.Config) error {
	if _, isNop := app.Notifier().(notify.Nop); !isNop {
		return nil
	}
	dc := cfg.Notifier.Discord
	if !dc.Activated {
		return nil
	}

	n, err := discord.New(discord.Options{
		WebhookURL:   dc.WebhookURL,
		APIRateLimit: rate.Every(dc.APIRateLimit.Duration),
		APIBurst:     dc.APIBurst,
		SendTimeout:  dc.SendTimeout.Duration,
	}, app.Logger())
	if err != nil {
		app.Logger().Error("failed to create discord notifier", "error", err)
		return err
	}
	app.SetNotifier(n)
	return nil
}

// buildHandler assembles the pre-router chain. Order matters: the recover
// middleware is outermost so it also covers the other middlewares, and the
// gate runs last so blocked requests are still logged and counted.
func buildHandler(app *core.App, metricsOpts prerouter.MetricsOpts) (http.Handler, error) {
	metrics, err := prerouter.NewMetrics(metricsOpts)
	if err != nil {
		return nil, err
	}

	chain := router.NewChain(app.Router()).WithMiddleware(
		prerouter.NewRecover(app).Execute,
		prerouter.NewRequestLog(app).Execute,
		metrics.Execute,
		prerouter.NewGate(app).Execute,
	)

	return chain.Handler(), nil
}

func route(cfg *config.Config, app *core.App) {
	app.Router().HandleFunc(cfg.Trap.Path, app.TrapHandler)
	app.Router().HandleFunc("/robots.txt", app.RobotsHandler)
	if cfg.Metrics.Enabled {
		app.Router().HandleFunc(cfg.Metrics.Endpoint, app.MetricsHandler)
	}

	// Everything else is a static lookup in the public directory.
	app.Router().NotFound(http.HandlerFunc(app.StaticHandler))
}
