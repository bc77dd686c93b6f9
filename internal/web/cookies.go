// Package web implements the server-rendered marketplace frontend: echo
// handlers around the view controllers, with per-browser-session token
// storage in cookies.
package web

import (
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	"github.com/junseo/marketctl/internal/token"
)

// Cookie names carried over from the original client storage keys.
const (
	accessCookie  = "secondhand_access_token"
	refreshCookie = "secondhand_refresh_token"
)

// cookieStore adapts one browser session's cookies to token.Store.
// Reads prefer values written during this request, so a refresh cycle
// mid-request is visible to the retried call, and the new pair reaches
// the browser via Set-Cookie.
type cookieStore struct {
	c echo.Context

	mu      sync.Mutex
	loaded  bool
	access  string
	refresh string
}

var _ token.Store = (*cookieStore)(nil)

func newCookieStore(c echo.Context) *cookieStore {
	return &cookieStore{c: c}
}

// Access implements token.Store.
func (s *cookieStore) Access() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	return s.access
}

// Refresh implements token.Store.
func (s *cookieStore) Refresh() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	return s.refresh
}

// SetPair implements token.Store.
func (s *cookieStore) SetPair(access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	s.access = access
	s.refresh = refresh
	s.writeLocked()
	return nil
}

// ClearAccess implements token.Store.
func (s *cookieStore) ClearAccess() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked()
	s.access = ""
	s.writeLocked()
	return nil
}

// ClearPair implements token.Store.
func (s *cookieStore) ClearPair() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.access = ""
	s.refresh = ""
	s.writeLocked()
	return nil
}

func (s *cookieStore) loadLocked() {
	if s.loaded {
		return
	}
	if ck, err := s.c.Cookie(accessCookie); err == nil {
		s.access = ck.Value
	}
	if ck, err := s.c.Cookie(refreshCookie); err == nil {
		s.refresh = ck.Value
	}
	s.loaded = true
}

func (s *cookieStore) writeLocked() {
	s.c.SetCookie(sessionCookie(accessCookie, s.access))
	s.c.SetCookie(sessionCookie(refreshCookie, s.refresh))
}

// sessionCookie builds a browsing-session-scoped cookie; an empty value
// expires the cookie instead.
func sessionCookie(name, value string) *http.Cookie {
	ck := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if value == "" {
		ck.MaxAge = -1
	}
	return ck
}
