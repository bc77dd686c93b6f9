package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/junseo/marketctl/internal/market"
	"github.com/junseo/marketctl/internal/view"
)

type adminData struct {
	Admin *view.Admin
}

// loadAdmin builds the moderation controller behind the role gate: a
// non-admin bounces to the home page, an unauthenticated visitor to the
// login form.
func (s *Server) loadAdmin(c echo.Context) (*view.Admin, error) {
	ctx := c.Request().Context()
	admin := view.NewAdmin(s.client(c))
	if err := admin.EnsureAdmin(ctx); err != nil {
		if errors.Is(err, view.ErrNotAdmin) {
			return nil, c.Redirect(http.StatusSeeOther, "/")
		}
		return nil, c.Redirect(http.StatusSeeOther, "/login")
	}
	_ = admin.Load(ctx)
	return admin, nil
}

func (s *Server) handleAdmin(c echo.Context) error {
	admin, err := s.loadAdmin(c)
	if admin == nil {
		return err
	}
	return c.Render(http.StatusOK, "admin", adminData{Admin: admin})
}

func (s *Server) handleBlind(c echo.Context) error {
	admin, err := s.loadAdmin(c)
	if admin == nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	if reason := c.FormValue("reason"); reason != "" {
		admin.SetReason(id, reason)
	}
	_ = admin.Blind(c.Request().Context(), id)
	return c.Render(http.StatusOK, "admin", adminData{Admin: admin})
}

func (s *Server) handleUnblind(c echo.Context) error {
	admin, err := s.loadAdmin(c)
	if admin == nil {
		return err
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	_ = admin.Unblind(c.Request().Context(), id)
	return c.Render(http.StatusOK, "admin", adminData{Admin: admin})
}

// httpStatus extracts the upstream HTTP status from a normalized API
// error, or 0 for transport-level failures.
func httpStatus(err error) int {
	var apiErr *market.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
