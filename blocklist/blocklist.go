// Package blocklist keeps the persistent set of blocked client IPs.
//
// The persisted form is a plain text file, one IP per line, append-only.
// The whole file is loaded into memory at startup; Add appends and fsyncs
// before returning, so a crash right after a trap hit still leaves the
// client blocked on restart. There is no removal and no expiry.
package blocklist

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Blocklist is safe for concurrent use. A single mutex guards both the
// in-memory set and the file writer, so Contains never observes a
// half-applied Add and concurrent Adds cannot interleave their lines.
type Blocklist struct {
	mu     sync.RWMutex
	ips    map[string]struct{}
	file   *os.File
	logger *slog.Logger
}

// New loads the blocklist file at path and opens it for appending. A
// missing file means an empty blocklist; any other read error is returned
// and must be treated as fatal by the caller, the server must not start
// unprotected.
func New(path string, logger *slog.Logger) (*Blocklist, error) {
	ips := make(map[string]struct{})

	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("blocklist: failed to read '%s': %w", path, err)
	}
	if err == nil {
		scanner := bufio.NewScanner(bytes.NewReader(data))
		for scanner.Scan() {
			ip := strings.TrimSpace(scanner.Text())
			if ip == "" {
				continue
			}
			ips[ip] = struct{}{}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("blocklist: failed to parse '%s': %w", path, err)
		}
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("blocklist: failed to open '%s' for appending: %w", path, err)
	}

	logger.Info("blocklist loaded", "path", path, "ips", len(ips))

	return &Blocklist{
		ips:    ips,
		file:   file,
		logger: logger,
	}, nil
}

// Contains reports whether ip is blocked. It reflects every Add that has
// completed, including from other goroutines.
func (bl *Blocklist) Contains(ip string) bool {
	bl.mu.RLock()
	defer bl.mu.RUnlock()
	_, exists := bl.ips[ip]
	return exists
}

// Add blocks ip. Adding an already blocked ip is a no-op. For new ips the
// line is appended and fsynced before Add returns. If persisting fails the
// in-memory set is still updated, so protection holds for the rest of the
// process lifetime, and the error is returned for the caller to log.
func (bl *Blocklist) Add(ip string) error {
	bl.mu.Lock()
	defer bl.mu.Unlock()

	if _, exists := bl.ips[ip]; exists {
		return nil
	}
	bl.ips[ip] = struct{}{}

	if _, err := bl.file.WriteString(ip + "\n"); err != nil {
		return fmt.Errorf("blocklist: failed to append '%s': %w", ip, err)
	}
	if err := bl.file.Sync(); err != nil {
		return fmt.Errorf("blocklist: failed to sync after adding '%s': %w", ip, err)
	}
	return nil
}

// Len returns the number of blocked ips.
func (bl *Blocklist) Len() int {
	bl.mu.RLock()
	defer bl.mu.RUnlock()
	return len(bl.ips)
}

// Close closes the underlying file. The blocklist must not be used after.
func (bl *Blocklist) Close() error {
	bl.mu.Lock()
	defer bl.mu.Unlock()
	return bl.file.Close()
}
