// Package views renders the storefront pages. Each page is a templ.Component
// backed by an html/template set compiled from the embedded templates.
package views

import (
	"context"
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/eringen/storefront/content"
	"github.com/eringen/storefront/inquiry"
)

//go:embed templates/*.html
var templateFS embed.FS

var funcs = template.FuncMap{
	"glyph":        func(s content.Service) template.HTML { return Glyph(s.IconKind()) },
	"iconGlyph":    Glyph,
	"icons":        content.Icons,
	"knownIcon":    func(tag string) bool { return content.ParseIcon(tag).String() == tag },
	"configInputs": ConfigInputs,
	"serviceTypes": func() []string { return inquiry.ServiceTypes },
	"telHref": func(phone string) template.URL {
		return template.URL("tel:" + digits(phone))
	},
	"smsHref": func(phone string) template.URL {
		return template.URL("sms:" + digits(phone))
	},
	"navClass": func(current, path string) string {
		if current == path {
			return "nav-link active"
		}
		return "nav-link"
	},
	"truncate": func(n int, s string) string {
		r := []rune(s)
		if len(r) <= n {
			return s
		}
		return string(r[:n]) + "…"
	},
}

var pages = map[string]*template.Template{}

func init() {
	for _, name := range []string{"home", "services", "contact", "admin", "service_form", "not_found", "server_error"} {
		pages[name] = template.Must(template.New(name).Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", "templates/"+name+".html"))
	}
}

func page(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		t, ok := pages[name]
		if !ok {
			return fmt.Errorf("views: no page %q", name)
		}
		return t.ExecuteTemplate(w, "layout", data)
	})
}

// digits keeps the characters a dialer understands.
func digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if (r >= '0' && r <= '9') || r == '+' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

type servicesData struct {
	Page
	Services []content.Service
}

// Home renders the landing page.
func Home(p Page, services []content.Service) templ.Component {
	return page("home", servicesData{Page: p, Services: services})
}

// Services renders the full catalog.
func Services(p Page, services []content.Service) templ.Component {
	return page("services", servicesData{Page: p, Services: services})
}

type contactData struct {
	Page
	Form ContactForm
}

// Contact renders the contact details and inquiry form.
func Contact(p Page, form ContactForm) templ.Component {
	return page("contact", contactData{Page: p, Form: form})
}

type adminData struct {
	Page
	AdminData
}

// Admin renders the dashboard.
func Admin(p Page, d AdminData) templ.Component {
	return page("admin", adminData{Page: p, AdminData: d})
}

type serviceFormData struct {
	Page
	Service content.Service
}

// ServiceForm renders the edit form for one service.
func ServiceForm(p Page, svc content.Service) templ.Component {
	return page("service_form", serviceFormData{Page: p, Service: svc})
}

// NotFound renders the 404 page.
func NotFound(p Page) templ.Component {
	return page("not_found", p)
}

// ServerError renders the 500 page.
func ServerError(p Page) templ.Component {
	return page("server_error", p)
}
