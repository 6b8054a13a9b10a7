package storefront

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/storefront/content"
	"github.com/eringen/storefront/views"
)

const persistWarning = "Your changes could not be saved and may be lost on restart. Check the storage backend."

func (a *App) handleAdmin(c echo.Context) error {
	tab := c.QueryParam("tab")
	switch tab {
	case "services", "inquiries":
	default:
		tab = "config"
	}
	data := views.AdminData{Tab: tab, Services: a.Content.Services()}
	if tab == "inquiries" {
		list, err := a.Inquiries.List(c.Request().Context())
		if err != nil {
			return err
		}
		data.Inquiries = list
	}
	return Render(c, a.Views.Admin(a.page(c), data))
}

// handleAdminConfig applies the submitted config fields that differ from the
// current values. A single field can also be sent as field=<name>&value=<v>;
// unknown field names are ignored. Values are trimmed on both paths.
func (a *App) handleAdminConfig(c echo.Context) error {
	ctx := c.Request().Context()
	form, err := c.FormParams()
	if err != nil {
		return err
	}

	submitted := map[content.ConfigField]string{}
	if name := form.Get("field"); name != "" {
		if field, ok := content.ParseConfigField(name); ok {
			submitted[field] = form.Get("value")
		}
	} else {
		for _, field := range content.ConfigFields() {
			if form.Has(field.String()) {
				submitted[field] = form.Get(field.String())
			}
		}
	}

	current := a.Content.Config()
	applied := 0
	var errs []error
	for _, field := range content.ConfigFields() {
		value, ok := submitted[field]
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		if value == current.Get(field) {
			continue
		}
		applied++
		errs = append(errs, a.Content.UpdateConfigField(ctx, field, value))
	}
	if applied == 0 {
		return c.Redirect(http.StatusSeeOther, "/admin/?tab=config")
	}
	return a.afterMutation(c, errors.Join(errs...), "Saved", "/admin/?tab=config")
}

func (a *App) handleAdminServiceAdd(c echo.Context) error {
	_, err := a.Content.AddService(c.Request().Context(), serviceFromForm(c))
	return a.afterMutation(c, err, "Service added", "/admin/?tab=services")
}

func (a *App) handleAdminServiceEdit(c echo.Context) error {
	svc, ok := a.Content.Service(c.Param("id"))
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return Render(c, a.Views.ServiceForm(a.page(c), svc))
}

func (a *App) handleAdminServiceUpdate(c echo.Context) error {
	id := c.Param("id")
	if _, ok := a.Content.Service(id); !ok {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	svc := serviceFromForm(c)
	svc.ID = id
	err := a.Content.UpdateService(c.Request().Context(), svc)
	return a.afterMutation(c, err, "Saved", "/admin/?tab=services")
}

func (a *App) handleAdminServiceDelete(c echo.Context) error {
	err := a.Content.DeleteService(c.Request().Context(), c.Param("id"))
	if c.Request().Method == http.MethodDelete {
		if errors.Is(err, content.ErrPersist) {
			return c.String(http.StatusInternalServerError, persistWarning)
		}
		if err != nil {
			return err
		}
		return c.NoContent(http.StatusNoContent)
	}
	return a.afterMutation(c, err, "Service deleted", "/admin/?tab=services")
}

func (a *App) handleAdminInquiryDelete(c echo.Context) error {
	if err := a.Inquiries.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	if err := AddFlash(c, views.Flash{Kind: "ok", Message: "Inquiry deleted"}); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/?tab=inquiries")
}

// afterMutation flashes the outcome of a content mutation and redirects back
// to the dashboard. Persist failures become a warning; the edit itself is
// kept in memory.
func (a *App) afterMutation(c echo.Context, err error, okMessage, target string) error {
	flash := views.Flash{Kind: "ok", Message: okMessage}
	switch {
	case errors.Is(err, content.ErrPersist):
		flash = views.Flash{Kind: "warn", Message: persistWarning}
	case err != nil:
		return err
	}
	if err := AddFlash(c, flash); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, target)
}

func serviceFromForm(c echo.Context) content.Service {
	return content.Service{
		Title:       strings.TrimSpace(c.FormValue("title")),
		Description: strings.TrimSpace(c.FormValue("description")),
		Icon:        strings.TrimSpace(c.FormValue("icon")),
		ImageURL:    strings.TrimSpace(c.FormValue("image_url")),
		Price:       strings.TrimSpace(c.FormValue("price")),
	}
}
