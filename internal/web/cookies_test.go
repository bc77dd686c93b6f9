package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext(t *testing.T, cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return echo.New().NewContext(req, rec), rec
}

func responseCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %q not set on response", name)
	return nil
}

func TestCookieStore_ReadsRequestCookies(t *testing.T) {
	t.Parallel()

	c, _ := newTestContext(t,
		&http.Cookie{Name: accessCookie, Value: "acc-1"},
		&http.Cookie{Name: refreshCookie, Value: "ref-1"},
	)

	s := newCookieStore(c)
	assert.Equal(t, "acc-1", s.Access())
	assert.Equal(t, "ref-1", s.Refresh())
}

func TestCookieStore_MissingCookiesReadEmpty(t *testing.T) {
	t.Parallel()

	c, _ := newTestContext(t)
	s := newCookieStore(c)
	assert.Empty(t, s.Access())
	assert.Empty(t, s.Refresh())
}

func TestCookieStore_SetPairWritesBothCookies(t *testing.T) {
	t.Parallel()

	c, rec := newTestContext(t)
	s := newCookieStore(c)

	require.NoError(t, s.SetPair("acc-2", "ref-2"))

	// The in-memory view updates immediately so a retried request sees
	// the fresh pair within the same page load.
	assert.Equal(t, "acc-2", s.Access())
	assert.Equal(t, "ref-2", s.Refresh())

	access := responseCookie(t, rec, accessCookie)
	assert.Equal(t, "acc-2", access.Value)
	assert.True(t, access.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, access.SameSite)
	assert.Equal(t, "ref-2", responseCookie(t, rec, refreshCookie).Value)
}

func TestCookieStore_SetPairShadowsRequestCookies(t *testing.T) {
	t.Parallel()

	c, _ := newTestContext(t,
		&http.Cookie{Name: accessCookie, Value: "stale"},
	)
	s := newCookieStore(c)

	require.NoError(t, s.SetPair("fresh", "ref"))
	assert.Equal(t, "fresh", s.Access())
}

func TestCookieStore_ClearAccessKeepsRefresh(t *testing.T) {
	t.Parallel()

	c, rec := newTestContext(t,
		&http.Cookie{Name: accessCookie, Value: "acc"},
		&http.Cookie{Name: refreshCookie, Value: "ref"},
	)
	s := newCookieStore(c)

	require.NoError(t, s.ClearAccess())
	assert.Empty(t, s.Access())
	assert.Equal(t, "ref", s.Refresh())

	assert.Equal(t, -1, responseCookie(t, rec, accessCookie).MaxAge)
	assert.Equal(t, "ref", responseCookie(t, rec, refreshCookie).Value)
}

func TestCookieStore_ClearPairExpiresBoth(t *testing.T) {
	t.Parallel()

	c, rec := newTestContext(t,
		&http.Cookie{Name: accessCookie, Value: "acc"},
		&http.Cookie{Name: refreshCookie, Value: "ref"},
	)
	s := newCookieStore(c)

	require.NoError(t, s.ClearPair())
	assert.Empty(t, s.Access())
	assert.Empty(t, s.Refresh())
	assert.Equal(t, -1, responseCookie(t, rec, accessCookie).MaxAge)
	assert.Equal(t, -1, responseCookie(t, rec, refreshCookie).MaxAge)
}
