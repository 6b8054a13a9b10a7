package views

import (
	"html/template"

	"github.com/eringen/storefront/content"
)

// Glyph returns the inline SVG for icon. Every Icon has a glyph; unknown
// values get the settings cog.
func Glyph(icon content.Icon) template.HTML {
	var path string
	switch icon {
	case content.IconLaptop:
		path = `<rect x="4" y="4" width="16" height="11" rx="1"/><path d="M2 19h20"/>`
	case content.IconSmartphone:
		path = `<rect x="7" y="2" width="10" height="20" rx="2"/><path d="M11 18h2"/>`
	case content.IconCPU:
		path = `<rect x="6" y="6" width="12" height="12" rx="1"/><path d="M9 2v4M15 2v4M9 18v4M15 18v4M2 9h4M2 15h4M18 9h4M18 15h4"/>`
	case content.IconHardDrive:
		path = `<path d="M2 12h20M5 5h14l3 7v6H2v-6z"/><path d="M6 16h.01M10 16h.01"/>`
	case content.IconShield:
		path = `<path d="M12 22s8-4 8-10V5l-8-3-8 3v7c0 6 8 10 8 10z"/>`
	case content.IconNetwork:
		path = `<rect x="9" y="2" width="6" height="6"/><rect x="2" y="16" width="6" height="6"/><rect x="16" y="16" width="6" height="6"/><path d="M5 16v-4h14v4M12 8v4"/>`
	case content.IconCamera:
		path = `<path d="M4 7h3l2-3h6l2 3h3v13H4z"/><circle cx="12" cy="13" r="4"/>`
	case content.IconTV:
		path = `<rect x="2" y="7" width="20" height="13" rx="2"/><path d="M17 2l-5 5-5-5"/>`
	case content.IconDatabase:
		path = `<ellipse cx="12" cy="5" rx="9" ry="3"/><path d="M3 5v14c0 1.7 4 3 9 3s9-1.3 9-3V5M3 12c0 1.7 4 3 9 3s9-1.3 9-3"/>`
	default:
		path = `<circle cx="12" cy="12" r="3"/><path d="M12 1v3M12 20v3M4.2 4.2l2.1 2.1M17.7 17.7l2.1 2.1M1 12h3M20 12h3M4.2 19.8l2.1-2.1M17.7 6.3l2.1-2.1"/>`
	}
	return template.HTML(`<svg class="glyph" viewBox="0 0 24 24" width="32" height="32" fill="none" stroke="currentColor" stroke-width="2" aria-hidden="true">` + path + `</svg>`)
}
