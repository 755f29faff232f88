package blocklist

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNew_MissingFileIsEmpty(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blocklist.txt")
	bl, err := New(path, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer bl.Close()

	if got := bl.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
	if bl.Contains("1.2.3.4") {
		t.Errorf("Contains() = true for empty blocklist")
	}
}

func TestNew_LoadsExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blocklist.txt")
	// Duplicates and blank lines are tolerated.
	content := "1.2.3.4\n5.6.7.8\n\n1.2.3.4\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to seed blocklist file: %v", err)
	}

	bl, err := New(path, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer bl.Close()

	if got := bl.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
	for _, ip := range []string{"1.2.3.4", "5.6.7.8"} {
		if !bl.Contains(ip) {
			t.Errorf("Contains(%q) = false, want true", ip)
		}
	}
	if bl.Contains("9.9.9.9") {
		t.Errorf("Contains(%q) = true, want false", "9.9.9.9")
	}
}

func TestNew_UnreadableFileIsFatal(t *testing.T) {
	t.Parallel()

	if os.Geteuid() == 0 {
		t.Skip("root ignores file permissions")
	}

	path := filepath.Join(t.TempDir(), "blocklist.txt")
	if err := os.WriteFile(path, []byte("1.2.3.4\n"), 0o000); err != nil {
		t.Fatalf("failed to seed blocklist file: %v", err)
	}

	if _, err := New(path, testLogger()); err == nil {
		t.Errorf("New() succeeded on unreadable file, want error")
	}
}

func TestAdd_PersistsAndSurvivesRestart(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blocklist.txt")
	bl, err := New(path, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := bl.Add("1.2.3.4"); err != nil {
		t.Fatalf("Add() error = %v", err)
	}
	if !bl.Contains("1.2.3.4") {
		t.Errorf("Contains() = false after Add")
	}
	if err := bl.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// Simulated restart: the ip must still be blocked.
	bl2, err := New(path, testLogger())
	if err != nil {
		t.Fatalf("New() after restart error = %v", err)
	}
	defer bl2.Close()
	if !bl2.Contains("1.2.3.4") {
		t.Errorf("Contains() = false after restart, want true")
	}
}

func TestAdd_Idempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blocklist.txt")
	bl, err := New(path, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer bl.Close()

	for i := 0; i < 3; i++ {
		if err := bl.Add("1.2.3.4"); err != nil {
			t.Fatalf("Add() #%d error = %v", i, err)
		}
	}

	if got := bl.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read blocklist file: %v", err)
	}
	if got := strings.Count(string(data), "1.2.3.4"); got != 1 {
		t.Errorf("persisted file contains ip %d times, want 1:\n%s", got, data)
	}
}

func TestAdd_Concurrent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "blocklist.txt")
	bl, err := New(path, testLogger())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ips := []string{"1.1.1.1", "2.2.2.2", "3.3.3.3", "4.4.4.4"}

	var wg sync.WaitGroup
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ip := ips[i%len(ips)]
			if err := bl.Add(ip); err != nil {
				t.Errorf("Add(%q) error = %v", ip, err)
			}
			_ = bl.Contains(ip)
		}(i)
	}
	wg.Wait()

	if got := bl.Len(); got != len(ips) {
		t.Errorf("Len() = %d, want %d", got, len(ips))
	}
	if err := bl.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	// The persisted file must hold each ip exactly once, on its own line.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read blocklist file: %v", err)
	}
	lines := strings.Fields(string(data))
	if len(lines) != len(ips) {
		t.Fatalf("persisted file has %d lines, want %d:\n%s", len(lines), len(ips), data)
	}
	seen := make(map[string]bool)
	for _, line := range lines {
		if seen[line] {
			t.Errorf("persisted file contains %q more than once", line)
		}
		seen[line] = true
	}
}
