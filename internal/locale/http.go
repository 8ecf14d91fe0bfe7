package locale

import (
	"context"
	"net/http"
	"strings"
)

// ResponseSink writes cookies to an HTTP response. A later write of the same
// cookie name replaces the earlier Set-Cookie line.
type ResponseSink struct {
	W http.ResponseWriter
}

// SetCookie implements CookieSink.
func (s ResponseSink) SetCookie(c *http.Cookie) {
	h := s.W.Header()
	var kept []string
	for _, v := range h.Values("Set-Cookie") {
		if !strings.HasPrefix(v, c.Name+"=") {
			kept = append(kept, v)
		}
	}
	h.Del("Set-Cookie")
	for _, v := range kept {
		h.Add("Set-Cookie", v)
	}
	http.SetCookie(s.W, c)
}

// Resolver maps a request to its locale code.
type Resolver func(r *http.Request) string

type ctxKey struct{}

// Middleware installs an Override for every request, so the response
// carries the locale cookie for the page being served.
func Middleware(resolve Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			src := NewSource(resolve(r))
			o := Install(src, ResponseSink{W: w})
			defer o.Close()
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, src)))
		})
	}
}

// FromContext returns the request's locale Source, or nil outside Middleware.
func FromContext(ctx context.Context) *Source {
	src, _ := ctx.Value(ctxKey{}).(*Source)
	return src
}
