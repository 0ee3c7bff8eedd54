//go:build !dev

package resources

import (
	"bytes"
	"embed"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"sync"
	"time"
)

// IsDev reports whether assets are served from disk with live reload.
const IsDev = false

//go:embed static/*
var staticFS embed.FS

var (
	minifiedOnce sync.Once
	minified     map[string][]byte
	loadedAt     = time.Now()
)

// minifyAll minifies every embedded asset once. An asset that fails to
// minify is served as embedded.
func minifyAll() {
	minified = make(map[string][]byte)
	_ = fs.WalkDir(staticFS, "static", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		src, err := staticFS.ReadFile(p)
		if err != nil {
			return err
		}
		name := strings.TrimPrefix(p, "static/")
		out, err := Minify(name, src)
		if err != nil {
			slog.Warn("serving unminified asset", "asset", name, "error", err)
			out = src
		}
		minified[name] = out
		return nil
	})
}

// Handler returns an HTTP handler for serving static files.
// In production mode, files are embedded in the binary and minified once.
func Handler() http.Handler {
	minifiedOnce.Do(minifyAll)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(path.Clean(r.URL.Path), "/static/")
		body, ok := minified[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		// Embedded assets never change in prod
		w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
		http.ServeContent(w, r, name, loadedAt, bytes.NewReader(body))
	})
}
