package bottrap

import (
	"log/slog"
	"os"

	phuslog "github.com/phuslu/log"

	"github.com/caasmo/bottrap/cache/ristretto"
	"github.com/caasmo/bottrap/core"
	"github.com/caasmo/bottrap/router/httprouter"
)

func WithRouterHttprouter() core.Option {
	r := httprouter.New()
	return core.WithRouter(r)
}

func WithCacheRistretto() core.Option {
	c, _ := ristretto.New[[]byte]()
	return core.WithCache(c)
}

// DefaultLoggerOptions provides default settings for slog handlers.
// Level: Debug, removes the time attribute from output.
var DefaultLoggerOptions = &slog.HandlerOptions{
	Level: slog.LevelDebug,
	ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	},
}

// WithPhusLogger configures slog with phuslu/log's JSON handler.
// Uses DefaultLoggerOptions if opts is nil.
func WithPhusLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(phuslog.SlogNewJSONHandler(os.Stderr, opts))
	return core.WithLogger(logger)
}

// WithTextLogger configures slog with the standard library's text handler.
func WithTextLogger(opts *slog.HandlerOptions) core.Option {
	if opts == nil {
		opts = DefaultLoggerOptions
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, opts))
	return core.WithLogger(logger)
}
