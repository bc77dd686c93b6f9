package web

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/junseo/marketctl/internal/view"
	domain "github.com/junseo/marketctl/pkg/types"
)

type cartData struct {
	Cart *view.Cart
}

// loadCart builds the cart controller and fetches the current mirror. An
// authentication failure bounces to the login form instead of rendering.
func (s *Server) loadCart(c echo.Context) (*view.Cart, error) {
	cart := view.NewCart(s.client(c))
	if err := cart.Load(c.Request().Context()); err != nil {
		if status := httpStatus(err); status == http.StatusUnauthorized {
			return nil, c.Redirect(http.StatusSeeOther, "/login")
		}
	}
	return cart, nil
}

func (s *Server) handleCart(c echo.Context) error {
	cart, err := s.loadCart(c)
	if cart == nil {
		return err
	}
	return c.Render(http.StatusOK, "cart", cartData{Cart: cart})
}

// handleCartUpdate changes one item's quantity or selection. The mutation
// runs against the freshly loaded mirror and the page renders whatever
// state the controller ends in, rolled back or not.
func (s *Server) handleCartUpdate(c echo.Context) error {
	cart, err := s.loadCart(c)
	if cart == nil {
		return err
	}

	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	var patch domain.CartItemPatch
	if raw := c.FormValue("quantity"); raw != "" {
		if q, qerr := strconv.Atoi(raw); qerr == nil && q >= 1 {
			patch.Quantity = &q
		}
	}
	if raw := c.FormValue("selected"); raw != "" {
		selected := raw == "true" || raw == "on" || raw == "1"
		patch.Selected = &selected
	}

	_ = cart.UpdateItem(c.Request().Context(), itemID, &patch)
	return c.Render(http.StatusOK, "cart", cartData{Cart: cart})
}

func (s *Server) handleCartDelete(c echo.Context) error {
	cart, err := s.loadCart(c)
	if cart == nil {
		return err
	}

	itemID, err := strconv.ParseInt(c.Param("itemID"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}

	_ = cart.DeleteItem(c.Request().Context(), itemID)
	return c.Render(http.StatusOK, "cart", cartData{Cart: cart})
}

func (s *Server) handleCheckout(c echo.Context) error {
	cart, err := s.loadCart(c)
	if cart == nil {
		return err
	}

	_ = cart.Checkout(c.Request().Context())
	return c.Render(http.StatusOK, "cart", cartData{Cart: cart})
}
