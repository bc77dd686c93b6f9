package web

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/junseo/marketctl/internal/view"
	domain "github.com/junseo/marketctl/pkg/types"
)

type indexData struct {
	Listing    *view.Listing
	Categories []domain.Category
	PrevURL    string
	NextURL    string
}

func (s *Server) handleIndex(c echo.Context) error {
	listing := view.NewListing(s.client(c))
	listing.Keyword = strings.TrimSpace(c.QueryParam("keyword"))
	listing.Category = domain.Category(c.QueryParam("category"))
	if sort := c.QueryParam("sort"); sort != "" {
		listing.Sort = sort
	}
	if page, err := strconv.Atoi(c.QueryParam("page")); err == nil && page > 0 {
		listing.Page = page
	}

	// Load failures land in the controller's error slot and render inline.
	_ = listing.Load(c.Request().Context())

	return c.Render(http.StatusOK, "index", indexData{
		Listing:    listing,
		Categories: domain.Categories(),
		PrevURL:    listingURL(listing, listing.Page-1),
		NextURL:    listingURL(listing, listing.Page+1),
	})
}

func listingURL(l *view.Listing, page int) string {
	q := url.Values{}
	if l.Keyword != "" {
		q.Set("keyword", l.Keyword)
	}
	if l.Category != "" {
		q.Set("category", string(l.Category))
	}
	q.Set("sort", l.Sort)
	q.Set("page", strconv.Itoa(page))
	return "/?" + q.Encode()
}

type productData struct {
	Detail        *view.Detail
	Categories    []domain.Category
	ImageURLsText string
}

func (s *Server) loadDetail(c echo.Context) (*view.Detail, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusNotFound)
	}

	ctx := c.Request().Context()
	detail := view.NewDetail(s.client(c))
	detail.LoadUser(ctx)
	_ = detail.Load(ctx, id)
	return detail, nil
}

func (s *Server) renderProduct(c echo.Context, detail *view.Detail) error {
	return c.Render(http.StatusOK, "product", productData{
		Detail:        detail,
		Categories:    domain.Categories(),
		ImageURLsText: strings.Join(detail.Form.ImageURLs, "\n"),
	})
}

func (s *Server) handleProduct(c echo.Context) error {
	detail, err := s.loadDetail(c)
	if err != nil {
		return err
	}
	return s.renderProduct(c, detail)
}

func (s *Server) handleAddToCart(c echo.Context) error {
	detail, err := s.loadDetail(c)
	if err != nil {
		return err
	}
	_ = detail.AddToCart(c.Request().Context())
	return s.renderProduct(c, detail)
}

func (s *Server) handleBuyNow(c echo.Context) error {
	detail, err := s.loadDetail(c)
	if err != nil {
		return err
	}
	_ = detail.BuyNow(c.Request().Context())
	return s.renderProduct(c, detail)
}

func (s *Server) handleEditProduct(c echo.Context) error {
	detail, err := s.loadDetail(c)
	if err != nil {
		return err
	}

	detail.Form.Title = c.FormValue("title")
	if price, perr := strconv.ParseInt(c.FormValue("price"), 10, 64); perr == nil {
		detail.Form.Price = price
	}
	detail.Form.Description = c.FormValue("description")
	detail.Form.Category = domain.Category(c.FormValue("category"))
	detail.Form.Condition = domain.Condition(c.FormValue("condition"))
	detail.Form.ImageURLs = view.SplitImageURLs(c.FormValue("image_urls"))

	_ = detail.SaveEdits(c.Request().Context())
	return s.renderProduct(c, detail)
}

func (s *Server) handleDeleteProduct(c echo.Context) error {
	detail, err := s.loadDetail(c)
	if err != nil {
		return err
	}
	if err := detail.Delete(c.Request().Context()); err != nil {
		return s.renderProduct(c, detail)
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

type sellData struct {
	Sell       *view.Sell
	Categories []domain.Category
}

func (s *Server) handleSellForm(c echo.Context) error {
	return c.Render(http.StatusOK, "sell", sellData{
		Sell:       view.NewSell(s.client(c)),
		Categories: domain.Categories(),
	})
}

func (s *Server) handleSell(c echo.Context) error {
	sell := view.NewSell(s.client(c))
	sell.Title = c.FormValue("title")
	if price, err := strconv.ParseInt(c.FormValue("price"), 10, 64); err == nil {
		sell.Price = price
	}
	sell.Description = c.FormValue("description")
	sell.Category = domain.Category(c.FormValue("category"))
	sell.Condition = domain.Condition(c.FormValue("condition"))
	sell.ImageURLs = c.FormValue("image_urls")

	_ = sell.Submit(c.Request().Context())
	return c.Render(http.StatusOK, "sell", sellData{
		Sell:       sell,
		Categories: domain.Categories(),
	})
}

type myPageData struct {
	MyPage *view.MyPage
}

func (s *Server) handleMyPage(c echo.Context) error {
	mypage := view.NewMyPage(s.client(c))
	_ = mypage.Load(c.Request().Context())
	return c.Render(http.StatusOK, "mypage", myPageData{MyPage: mypage})
}

type authFormData struct {
	Error    string
	Email    string
	Nickname string
}

func (s *Server) handleLoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "login", authFormData{})
}

func (s *Server) handleLogin(c echo.Context) error {
	email := c.FormValue("email")
	err := s.client(c).Login(c.Request().Context(), email, c.FormValue("password"))
	if err != nil {
		return c.Render(http.StatusOK, "login", authFormData{
			Error: err.Error(),
			Email: email,
		})
	}
	return c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) handleSignupForm(c echo.Context) error {
	return c.Render(http.StatusOK, "signup", authFormData{})
}

func (s *Server) handleSignup(c echo.Context) error {
	email := c.FormValue("email")
	nickname := c.FormValue("nickname")
	err := s.client(c).Signup(
		c.Request().Context(), email, nickname, c.FormValue("password"),
	)
	if err != nil {
		return c.Render(http.StatusOK, "signup", authFormData{
			Error:    err.Error(),
			Email:    email,
			Nickname: nickname,
		})
	}
	return c.Redirect(http.StatusSeeOther, "/login")
}

func (s *Server) handleLogout(c echo.Context) error {
	_ = s.client(c).Logout()
	return c.Redirect(http.StatusSeeOther, "/")
}
