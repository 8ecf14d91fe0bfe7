package locale

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// jar keeps the latest cookie per name, like a browser cookie store.
type jar struct {
	cookies map[string]*http.Cookie
	writes  int
}

func newJar() *jar { return &jar{cookies: make(map[string]*http.Cookie)} }

func (j *jar) SetCookie(c *http.Cookie) {
	j.writes++
	j.cookies[c.Name] = c
}

func TestSourceNotifiesOnChangeOnly(t *testing.T) {
	src := NewSource("en")
	var seen []string
	src.Subscribe(func(v string) { seen = append(seen, v) })

	src.Set("en")
	src.Set("zh")
	src.Set("zh")
	src.Set("en")

	assert.Equal(t, []string{"zh", "en"}, seen)
	assert.Equal(t, "en", src.Value())
}

func TestSourceUnsubscribe(t *testing.T) {
	src := NewSource("en")
	var a, b int
	cancelA := src.Subscribe(func(string) { a++ })
	src.Subscribe(func(string) { b++ })

	src.Set("zh")
	cancelA()
	cancelA()
	src.Set("fr")

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
}

func TestInstallWritesCurrentLocale(t *testing.T) {
	j := newJar()
	o := Install(NewSource("en"), j)
	defer o.Close()

	c := j.cookies[CookieName]
	require.NotNil(t, c)
	assert.Equal(t, "en", c.Value)
	assert.Equal(t, "/", c.Path)
	assert.True(t, c.Expires.Equal(CookieExpiry))
}

func TestOverrideLocaleChange(t *testing.T) {
	j := newJar()
	src := NewSource("en")
	o := Install(src, j)
	defer o.Close()

	before := *j.cookies[CookieName]
	src.Set("zh")
	after := *j.cookies[CookieName]

	assert.Equal(t, "zh", after.Value)
	before.Value = after.Value
	assert.Equal(t, before, after, "only the value may change")
}

func TestOverrideIdempotent(t *testing.T) {
	j := newJar()
	src := NewSource("en")
	o := Install(src, j)
	defer o.Close()

	src.Set("zh")
	src.Set("zh")

	assert.Len(t, j.cookies, 1)
	assert.Equal(t, "zh", j.cookies[CookieName].Value)
	assert.Equal(t, 2, j.writes)
}

func TestOverrideWithoutSink(t *testing.T) {
	src := NewSource("en")
	o := Install(src, nil)
	defer o.Close()

	assert.NotPanics(t, func() { src.Set("zh") })
}

func TestOverrideClose(t *testing.T) {
	j := newJar()
	src := NewSource("en")
	o := Install(src, j)

	o.Close()
	o.Close()
	src.Set("zh")

	assert.Equal(t, "en", j.cookies[CookieName].Value)
	assert.Equal(t, 1, j.writes)
}

func TestResponseSinkReplacesCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	http.SetCookie(rec, &http.Cookie{Name: "session", Value: "abc"})
	sink := ResponseSink{W: rec}

	sink.SetCookie(Cookie("en"))
	sink.SetCookie(Cookie("zh"))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 2)
	byName := map[string]string{}
	for _, c := range cookies {
		byName[c.Name] = c.Value
	}
	assert.Equal(t, "abc", byName["session"])
	assert.Equal(t, "zh", byName[CookieName])
}

func TestMiddleware(t *testing.T) {
	resolve := func(r *http.Request) string {
		if len(r.URL.Path) >= 4 && r.URL.Path[:4] == "/zh/" {
			return "zh"
		}
		return "en"
	}
	var fromCtx string
	h := Middleware(resolve)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		src := FromContext(r.Context())
		require.NotNil(t, src)
		fromCtx = src.Value()
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/zh/guide/", nil))

	assert.Equal(t, "zh", fromCtx)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "zh", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)
}

func TestMiddlewareHandlerSwitchesLocale(t *testing.T) {
	h := Middleware(func(*http.Request) string { return "en" })(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Set("zh")
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "zh", cookies[0].Value)
}

func TestFromContextOutsideMiddleware(t *testing.T) {
	assert.Nil(t, FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}
