package config

import (
	"fmt"
	"net"
	"net/http"
	"os"
	"regexp"
	"strings"
)

// trapPathPattern accepts absolute HTTP paths made of unreserved
// characters, e.g. "/bot-trap" or "/assets/.well-hidden".
var trapPathPattern = regexp.MustCompile(`^(/[A-Za-z0-9_.~-]+)+$`)

func Validate(cfg *Config) error {
	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server config validation failed: %w", err)
	}
	if err := validateTrap(&cfg.Trap); err != nil {
		return fmt.Errorf("trap config validation failed: %w", err)
	}
	if err := validatePaths(&cfg.Paths); err != nil {
		return fmt.Errorf("paths config validation failed: %w", err)
	}
	return nil
}

// validateServer checks the Server configuration section.
// It ensures the Addr field is not empty and contains a valid host:port or
// :port format. If only a port is provided (e.g., ":8080"), it defaults the
// host to "localhost".
//
// Allowed formats:
//   - "host:port" (e.g., "example.com:8080", "127.0.0.1:8080", "[::1]:8080")
//   - ":port"     (e.g., ":8080" becomes "localhost:8080")
//
// The port part is mandatory.
func validateServer(server *Server) error {
	if server.Addr == "" {
		return fmt.Errorf("server address (Addr) cannot be empty")
	}

	host, port, err := net.SplitHostPort(server.Addr)
	if err != nil {
		// Check if it's just a port (e.g., ":8080")
		if strings.HasPrefix(server.Addr, ":") {
			port = strings.TrimPrefix(server.Addr, ":")
			host = "localhost" // Default host
		} else {
			return fmt.Errorf("invalid server address format '%s': %w", server.Addr, err)
		}
	}

	if port == "" {
		return fmt.Errorf("server address '%s' must include a port", server.Addr)
	}

	if host == "" {
		host = "localhost" // Default host
	}

	// Reconstruct the address with the defaulted host if necessary
	server.Addr = net.JoinHostPort(host, port)

	// Basic check: Ensure port is numeric (net.SplitHostPort doesn't guarantee this fully)
	if _, err := net.LookupPort("tcp", port); err != nil {
		return fmt.Errorf("invalid port '%s' in server address '%s': %w", port, server.Addr, err)
	}

	if server.MaxConns < 0 {
		return fmt.Errorf("max_conns cannot be negative, got %d", server.MaxConns)
	}

	return nil
}

func validateTrap(trap *Trap) error {
	if !trapPathPattern.MatchString(trap.Path) {
		return fmt.Errorf("trap path '%s' is not a valid HTTP path", trap.Path)
	}

	// The trap must not shadow the robots policy; classification checks the
	// trap path before /robots.txt.
	if trap.Path == "/robots.txt" {
		return fmt.Errorf("trap path cannot be /robots.txt")
	}

	if trap.BlockedStatus != http.StatusOK && trap.BlockedStatus != http.StatusForbidden {
		return fmt.Errorf("blocked_status must be 200 or 403, got %d", trap.BlockedStatus)
	}

	return nil
}

// validatePaths ensures the public directory exists. The server must not
// start when it cannot serve real content; the blocklist file is checked
// separately on open, and the bullshit/not-found files are allowed to appear
// or change while running.
func validatePaths(paths *Paths) error {
	if paths.Public == "" {
		return fmt.Errorf("public directory cannot be empty")
	}

	info, err := os.Stat(paths.Public)
	if err != nil {
		return fmt.Errorf("public directory '%s' is not accessible: %w", paths.Public, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("public path '%s' is not a directory", paths.Public)
	}

	if paths.Bullshit == "" {
		return fmt.Errorf("bullshit file cannot be empty")
	}
	if paths.Blocklist == "" {
		return fmt.Errorf("blocklist file cannot be empty")
	}

	return nil
}
