package views

import (
	"github.com/eringen/storefront/content"
	"github.com/eringen/storefront/inquiry"
)

// Page carries the values every layout needs. Handlers build it from a fresh
// store snapshot on each request.
type Page struct {
	Title   string
	Config  content.SiteConfig
	SiteURL string
	Path    string
	CSRF    string
	Flashes []Flash
	Year    int
}

// Flash is a one-shot notice shown at the top of a page.
type Flash struct {
	Kind    string // "ok" or "warn"
	Message string
}

// ContactForm is the state of the contact page form.
type ContactForm struct {
	Values    inquiry.Inquiry
	Error     string
	Submitted bool
}

// AdminData feeds the dashboard tabs.
type AdminData struct {
	Tab       string // "config", "services" or "inquiries"
	Services  []content.Service
	Inquiries []inquiry.Inquiry
}

// FieldInput is one editable SiteConfig field on the dashboard.
type FieldInput struct {
	Name  string
	Label string
	Value string
}

var fieldLabels = map[content.ConfigField]string{
	content.FieldShopName:  "Shop Name",
	content.FieldTagline:   "Tagline",
	content.FieldPhone:     "Primary Phone",
	content.FieldTextPhone: "Text-only Phone (SMS)",
	content.FieldEmail:     "Email",
	content.FieldAddress:   "Address",
}

// ConfigInputs lists the dashboard inputs for cfg in form order.
func ConfigInputs(cfg content.SiteConfig) []FieldInput {
	fields := content.ConfigFields()
	out := make([]FieldInput, 0, len(fields))
	for _, f := range fields {
		out = append(out, FieldInput{Name: f.String(), Label: fieldLabels[f], Value: cfg.Get(f)})
	}
	return out
}
