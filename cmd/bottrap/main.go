package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/caasmo/bottrap"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config file")
	flag.Parse()

	_, srv, err := bottrap.New(*configPath,
		bottrap.WithPhusLogger(nil),
		bottrap.WithRouterHttprouter(),
		bottrap.WithCacheRistretto(),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	srv.Run()
}
