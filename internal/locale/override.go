package locale

import (
	"net/http"
	"time"
)

// CookieName is the cookie Netlify-style language redirects read.
const CookieName = "nf_lang"

// CookieExpiry is the fixed expiry written with every cookie.
var CookieExpiry = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// CookieSink receives cookie writes. It is only available where a browser
// (or an HTTP response standing in for one) exists.
type CookieSink interface {
	SetCookie(c *http.Cookie)
}

// Cookie returns the locale cookie for lang.
func Cookie(lang string) *http.Cookie {
	return &http.Cookie{
		Name:    CookieName,
		Value:   lang,
		Expires: CookieExpiry,
		Path:    "/",
	}
}

// Override mirrors a locale Source into the nf_lang cookie.
type Override struct {
	sink   CookieSink
	cancel func()
}

// Install starts watching src. The cookie is written for the current value
// right away and again on every change. A nil sink turns every write into a
// no-op, which is the case during static pre-rendering.
func Install(src *Source, sink CookieSink) *Override {
	o := &Override{sink: sink}
	o.write(src.Value())
	o.cancel = src.Subscribe(o.write)
	return o
}

func (o *Override) write(lang string) {
	if o.sink == nil {
		return
	}
	o.sink.SetCookie(Cookie(lang))
}

// Close stops watching. It is safe to call more than once.
func (o *Override) Close() {
	if o.cancel != nil {
		o.cancel()
		o.cancel = nil
	}
}
