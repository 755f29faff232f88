package core

import (
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"syscall"
	"time"
)

// StaticHandler resolves a request path against the public directory. It
// is the router's NotFound fallback: every path that is not the trap,
// robots.txt or another registered endpoint lands here.
//
// The path is normalized and confined to the public directory; anything
// that would escape it resolves as not-found, never as an error that could
// leak paths outside the root. Directories (with or without trailing
// slash) map to their index.html.
func (a *App) StaticHandler(w http.ResponseWriter, r *http.Request) {
	cfg := a.Config()
	ttl := cfg.Cache.StaticTTL.Duration

	fsPath, ok := resolvePublicPath(cfg.Paths.Public, r.URL.Path)
	if !ok {
		a.logger.Debug("static: path escapes public directory", "path", r.URL.Path)
		a.serveNotFound(w)
		return
	}

	body, found := a.cachedStatic(fsPath, ttl)
	if !found {
		var err error
		body, err = os.ReadFile(fsPath)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.EISDIR) {
				a.serveNotFound(w)
				return
			}
			a.logger.Error("static: failed to read file", "path", fsPath, "error", err)
			serveInternalError(w)
			return
		}
		if ttl > 0 {
			a.cache.SetWithTTL(staticCacheKey(fsPath), body, int64(len(body)), ttl)
		}
	}

	w.Header().Set("Content-Type", contentType(fsPath))
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (a *App) cachedStatic(fsPath string, ttl time.Duration) ([]byte, bool) {
	if ttl <= 0 {
		return nil, false
	}
	return a.cache.Get(staticCacheKey(fsPath))
}

func staticCacheKey(fsPath string) string {
	return "static:" + fsPath
}

// resolvePublicPath maps a URL path to a filesystem path inside publicDir.
// Returns false when the path cannot be confined to the public directory.
//
// path.Clean on a rooted path collapses every ".." segment against the
// root, so the result cannot climb above publicDir; the explicit check is
// a second fence in case a caller hands in something that bypassed URL
// parsing.
func resolvePublicPath(publicDir, urlPath string) (string, bool) {
	clean := path.Clean("/" + urlPath)
	if containsDotDot(clean) {
		return "", false
	}

	fsPath := filepath.Join(publicDir, filepath.FromSlash(clean))

	// Directory requests (trailing slash is already stripped by Clean, the
	// root "/" maps to publicDir itself) resolve to their index.html.
	if info, err := os.Stat(fsPath); err == nil && info.IsDir() {
		fsPath = filepath.Join(fsPath, "index.html")
	}

	return fsPath, true
}

func containsDotDot(p string) bool {
	for _, seg := range strings.Split(p, "/") {
		if seg == ".." {
			return true
		}
	}
	return false
}

// contentType infers the Content-Type from the file extension, falling
// back to octet-stream for unknown extensions.
func contentType(fsPath string) string {
	if ctype := mime.TypeByExtension(filepath.Ext(fsPath)); ctype != "" {
		return ctype
	}
	return "application/octet-stream"
}
