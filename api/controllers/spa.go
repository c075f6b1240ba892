package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPA serves the prebuilt front-end bundle. Unknown paths fall back to the
// index document so client-side routing keeps working after a refresh.
func SPA(distDir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(distDir))
	index := filepath.Join(distDir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		rel := filepath.Clean(filepath.FromSlash(strings.TrimPrefix(r.URL.Path, "/")))
		if rel != "." && !strings.HasPrefix(rel, "..") {
			if info, err := os.Stat(filepath.Join(distDir, rel)); err == nil && !info.IsDir() {
				fileServer.ServeHTTP(w, r)
				return
			}
		}
		http.ServeFile(w, r, index)
	}
}
