package storefront

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/eringen/storefront/inquiry"
	"github.com/eringen/storefront/views"
)

// page builds the layout values from the current store state.
func (a *App) page(c echo.Context) views.Page {
	return views.Page{
		Title:   a.Content.Title(),
		Config:  a.Content.Config(),
		SiteURL: a.Config.SiteURL,
		Path:    c.Request().URL.Path,
		CSRF:    CsrfToken(c),
		Flashes: takeFlashes(c),
		Year:    time.Now().Year(),
	}
}

func (a *App) handleHome(c echo.Context) error {
	return Render(c, a.Views.Home(a.page(c), a.Content.Services()))
}

func (a *App) handleServices(c echo.Context) error {
	return Render(c, a.Views.Services(a.page(c), a.Content.Services()))
}

func (a *App) handleContact(c echo.Context) error {
	return Render(c, a.Views.Contact(a.page(c), views.ContactForm{
		Values: inquiry.Inquiry{ServiceType: c.QueryParam("service")},
	}))
}

func (a *App) handleContactSubmit(c echo.Context) error {
	values := inquiry.Inquiry{
		Name:        c.FormValue("name"),
		Email:       c.FormValue("email"),
		Phone:       c.FormValue("phone"),
		ServiceType: c.FormValue("service_type"),
		Details:     c.FormValue("details"),
	}

	if !a.contactLimiter.Allow(c.RealIP()) {
		inquiriesReceived.WithLabelValues("rate_limited").Inc()
		return RenderStatus(c, http.StatusTooManyRequests, a.Views.Contact(a.page(c), views.ContactForm{
			Values: values,
			Error:  "Too many inquiries. Please try again in a minute or call us directly.",
		}))
	}

	in, err := inquiry.Validate(values)
	if err != nil {
		inquiriesReceived.WithLabelValues("invalid").Inc()
		return RenderStatus(c, http.StatusUnprocessableEntity, a.Views.Contact(a.page(c), views.ContactForm{
			Values: values,
			Error:  strings.TrimPrefix(err.Error(), inquiry.ErrInvalid.Error()+": "),
		}))
	}

	saved, err := a.Inquiries.Save(c.Request().Context(), in)
	if err != nil {
		inquiriesReceived.WithLabelValues("error").Inc()
		return fmt.Errorf("save inquiry: %w", err)
	}
	inquiriesReceived.WithLabelValues("ok").Inc()

	if err := a.notifier.Notify(c.Request().Context(), saved); err != nil {
		a.Log.Warn("inquiry notification failed", zap.String("inquiry", saved.ID), zap.Error(err))
	}

	return Render(c, a.Views.Contact(a.page(c), views.ContactForm{
		Values:    saved,
		Submitted: true,
	}))
}

func (a *App) handleSitemap(c echo.Context) error {
	return a.renderSitemap(c)
}

func (a *App) handleFavicon(c echo.Context) error {
	path := filepath.Join(a.Config.StaticDir, "favicon.svg")
	if _, err := os.Stat(path); err == nil {
		return c.File(path)
	}
	data, err := EmbeddedAssets.ReadFile("embedded/favicon.svg")
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/svg+xml", data)
}

// handleRobots generates robots.txt from the configured site URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s\n", BuildURL(a.Config.SiteURL)+"sitemap.xml")
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	var he *echo.HTTPError
	ok := errors.As(err, &he)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound(a.page(c)))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		a.Log.Error("server error",
			zap.String("method", c.Request().Method),
			zap.String("uri", c.Request().RequestURI),
			zap.Error(err),
		)
		_ = RenderStatus(c, code, a.Views.ServerError(a.page(c)))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
