package server

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Files serves the generated site under root, resolving clean URLs the way
// static hosts do: /guide/intro is answered by guide/intro.html and /guide/
// by guide/index.html. Unknown paths get 404.html when the site has one.
func Files(root string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		p := r.URL.Path
		if !strings.HasPrefix(p, "/") {
			p = "/" + p
		}
		p = path.Clean(p)
		if strings.HasSuffix(r.URL.Path, "/") && p != "/" {
			p += "/"
		}

		for _, candidate := range candidates(p) {
			if serveFile(w, r, filepath.Join(root, filepath.FromSlash(candidate))) {
				return
			}
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		if data, err := os.ReadFile(filepath.Join(root, "404.html")); err == nil {
			w.Write(data)
			return
		}
		w.Write([]byte("404 page not found\n"))
	})
}

// candidates lists the files that may answer a cleaned request path, in
// order of preference.
func candidates(p string) []string {
	if strings.HasSuffix(p, "/") {
		return []string{p + "index.html"}
	}
	return []string{p, p + ".html", p + "/index.html"}
}

// serveFile writes the regular file at name, reporting false if there is none.
func serveFile(w http.ResponseWriter, r *http.Request, name string) bool {
	f, err := os.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), f)
	return true
}
