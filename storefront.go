// Package storefront serves a repair shop's public site and its content
// dashboard. Site details and the service catalog live in a content.Store
// persisted to a key-value backend; contact inquiries go to an inquiry.Store.
//
// Pages are supplied through the ViewFuncs struct, so callers can replace any
// of them while storefront handles routing, middleware and persistence.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/eringen/storefront/content"
	"github.com/eringen/storefront/inquiry"
	"github.com/eringen/storefront/kv"
	"github.com/eringen/storefront/views"
)

// ViewFuncs holds the page components the handlers render.
type ViewFuncs struct {
	Home        func(p views.Page, services []content.Service) templ.Component
	Services    func(p views.Page, services []content.Service) templ.Component
	Contact     func(p views.Page, form views.ContactForm) templ.Component
	Admin       func(p views.Page, d views.AdminData) templ.Component
	ServiceForm func(p views.Page, svc content.Service) templ.Component
	NotFound    func(p views.Page) templ.Component
	ServerError func(p views.Page) templ.Component
}

// DefaultViews returns the built-in pages.
func DefaultViews() ViewFuncs {
	return ViewFuncs{
		Home:        views.Home,
		Services:    views.Services,
		Contact:     views.Contact,
		Admin:       views.Admin,
		ServiceForm: views.ServiceForm,
		NotFound:    views.NotFound,
		ServerError: views.ServerError,
	}
}

// App wires the content store, inquiry store, handlers and middleware.
type App struct {
	Config    Config
	Echo      *echo.Echo
	Content   *content.Store
	Inquiries *inquiry.Store
	Views     ViewFuncs
	Log       *zap.Logger

	backend        kv.Backend
	notifier       inquiry.Notifier
	contactLimiter *RateLimiter
	registry       *prometheus.Registry
	customRoutes   []func(*App)
	closers        []func() error
}

// New builds an App from cfg: it opens the stores, loads the persisted
// snapshot and registers middleware and routes. The server is not started.
func New(cfg Config, opts ...Option) (*App, error) {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  DefaultViews(),
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}

	if a.Config.SessionSecret == "" {
		return nil, fmt.Errorf("storefront: SessionSecret is required")
	}

	if a.Log == nil {
		logger, err := NewLogger(a.Config.Log)
		if err != nil {
			return nil, err
		}
		a.Log = logger
	}

	if a.backend == nil {
		backend, err := kv.Open(a.Config.Backend, a.Config.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("storefront: open content backend: %w", err)
		}
		a.backend = backend
		a.closers = append(a.closers, backend.Close)
	}

	store, err := content.NewStore(a.backend, content.WithLogger(a.Log.Named("content")))
	if err != nil {
		a.Close()
		return nil, err
	}
	store.OnTitle(func(title string) {
		a.Log.Debug("title published", zap.String("title", title))
	})
	store.Load(context.Background())
	a.Content = store

	if a.Inquiries == nil {
		inquiries, err := inquiry.NewStore(a.Config.InquiryDatabasePath)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("storefront: init inquiries: %w", err)
		}
		a.Inquiries = inquiries
		a.closers = append(a.closers, inquiries.Close)
	}

	if a.notifier == nil {
		if a.Config.SMTP.Host != "" {
			a.notifier = inquiry.NewMailNotifier(a.Config.SMTP.inquiryConfig(), a.Log.Named("mail"))
		} else {
			a.notifier = inquiry.NopNotifier{}
		}
	}

	a.contactLimiter = NewRateLimiter(a.Config.ContactLimit, time.Minute)
	a.closers = append(a.closers, func() error {
		a.contactLimiter.Stop()
		return nil
	})

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(content.Collectors()...)
	a.registry.MustRegister(inquiriesReceived)

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}

	return a, nil
}

// Start serves HTTP on Config.Addr until Shutdown is called.
func (a *App) Start() error {
	a.Log.Info("storefront listening",
		zap.String("addr", a.Config.Addr),
		zap.String("backend", a.Config.Backend),
	)
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (a *App) Shutdown(ctx context.Context) error {
	return a.Echo.Shutdown(ctx)
}

// Close releases the stores opened by New. Call this when the app is
// shutting down.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	if a.Log != nil {
		_ = a.Log.Sync()
	}
	return errors.Join(errs...)
}
