// Package console serves a small browser page for walking through the
// onboarding questionnaire against the running API.
package console

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"
)

const (
	RobotsTagHeader = "X-Robots-Tag"
	RobotsTagValue  = "noindex, nofollow"
)

//go:embed static
var staticFiles embed.FS

// Handler serves /console (the page) and /console/static/ (its assets).
func Handler() http.Handler {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	assets := http.StripPrefix("/console/static/", http.FileServer(http.FS(sub)))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(RobotsTagHeader, RobotsTagValue)
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		if strings.HasPrefix(r.URL.Path, "/console/static/") {
			assets.ServeHTTP(w, r)
			return
		}
		page, err := fs.ReadFile(sub, "console.html")
		if err != nil {
			http.Error(w, "console unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(page)
	})
}
