package storefront

import (
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (a *App) setupRoutes() {
	e := a.Echo

	// Embedded stylesheet and icon. The user's static dir is mounted over the
	// rest of /public/ and holds uploaded service images.
	embeddedFS, _ := fs.Sub(EmbeddedAssets, "embedded")
	embeddedHandler := http.FileServer(http.FS(embeddedFS))
	e.GET("/public/site.css", echo.WrapHandler(http.StripPrefix("/public/", embeddedHandler)))
	e.Static("/public", a.Config.StaticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)
	e.GET("/sitemap.xml", a.handleSitemap)

	if a.Config.MetricsEnabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{DisableCompression: true})))
	}

	// Public routes
	e.GET("/", a.handleHome)
	e.GET("/services/", a.handleServices)
	e.GET("/contact/", a.handleContact)
	e.POST("/contact/", a.handleContactSubmit)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/config/", a.handleAdminConfig)
	e.POST("/admin/services/", a.handleAdminServiceAdd)
	e.GET("/admin/services/:id/", a.handleAdminServiceEdit)
	e.POST("/admin/services/:id/", a.handleAdminServiceUpdate)
	e.POST("/admin/services/:id/delete/", a.handleAdminServiceDelete)
	e.DELETE("/admin/services/:id/", a.handleAdminServiceDelete)
	e.POST("/admin/services/:id/image/", a.handleServiceImageUpload)
	e.POST("/admin/inquiries/:id/delete/", a.handleAdminInquiryDelete)
}
