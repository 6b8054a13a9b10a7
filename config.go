package storefront

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"github.com/eringen/storefront/inquiry"
	"github.com/eringen/storefront/kv"
)

// Config holds all runtime configuration for a storefront server.
type Config struct {
	SiteURL string `yaml:"site_url" toml:"site_url" env:"SITE_URL" env-default:"http://localhost:3000" env-description:"Canonical URL"`
	Addr    string `yaml:"addr" toml:"addr" env:"STOREFRONT_ADDR" env-default:":3000" env-description:"Listen address"`

	Backend             string `yaml:"backend" toml:"backend" env:"STOREFRONT_BACKEND" env-default:"sqlite" env-description:"Content backend: sqlite, bolt or memory"`
	DatabasePath        string `yaml:"database_path" toml:"database_path" env:"STOREFRONT_DB" env-default:"data/storefront.db"`
	InquiryDatabasePath string `yaml:"inquiry_database_path" toml:"inquiry_database_path" env:"STOREFRONT_INQUIRY_DB" env-default:"data/inquiries.db"`
	StaticDir           string `yaml:"static_dir" toml:"static_dir" env:"STOREFRONT_STATIC_DIR" env-default:"public"`

	SessionSecret string `yaml:"session_secret" toml:"session_secret" env:"SESSION_SECRET" env-description:"Required: session cookie secret"`
	CookieSecure  bool   `yaml:"cookie_secure" toml:"cookie_secure" env:"COOKIE_SECURE" env-default:"false"`

	ContactLimit   int  `yaml:"contact_limit" toml:"contact_limit" env:"CONTACT_LIMIT" env-default:"5" env-description:"Inquiries per IP per minute"`
	MetricsEnabled bool `yaml:"metrics_enabled" toml:"metrics_enabled" env:"METRICS_ENABLED" env-default:"true"`

	Log  LogConfig  `yaml:"log" toml:"log"`
	SMTP SMTPConfig `yaml:"smtp" toml:"smtp"`
}

// LogConfig selects the zap encoder, level and optional rotating log file.
type LogConfig struct {
	Mode  string `yaml:"mode" toml:"mode" env:"LOG_MODE" env-default:"development"`
	Level string `yaml:"level" toml:"level" env:"LOG_LEVEL" env-default:"info"`
	File  string `yaml:"file" toml:"file" env:"LOG_FILE"`
}

// SMTPConfig enables inquiry emails when Host is set.
type SMTPConfig struct {
	Host     string `yaml:"host" toml:"host" env:"SMTP_HOST"`
	Port     int    `yaml:"port" toml:"port" env:"SMTP_PORT" env-default:"587"`
	Username string `yaml:"username" toml:"username" env:"SMTP_USERNAME"`
	Password string `yaml:"password" toml:"password" env:"SMTP_PASSWORD"`
	From     string `yaml:"from" toml:"from" env:"SMTP_FROM"`
	To       string `yaml:"to" toml:"to" env:"SMTP_TO"`
}

// LoadConfig reads configuration from the environment, layered over the YAML
// or TOML file at path when path is non-empty.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	var err error
	if path != "" {
		err = cleanenv.ReadConfig(path, &cfg)
	} else {
		err = cleanenv.ReadEnv(&cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("storefront: load config: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *Config) setDefaults() {
	if c.SiteURL == "" {
		c.SiteURL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.Backend == "" {
		c.Backend = kv.KindSQLite
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/storefront.db"
	}
	if c.InquiryDatabasePath == "" {
		c.InquiryDatabasePath = "data/inquiries.db"
	}
	if c.StaticDir == "" {
		c.StaticDir = "public"
	}
	if c.ContactLimit <= 0 {
		c.ContactLimit = 5
	}
	if c.SMTP.Port == 0 {
		c.SMTP.Port = 587
	}
}

func (c SMTPConfig) inquiryConfig() inquiry.SMTPConfig {
	return inquiry.SMTPConfig{
		Host:     c.Host,
		Port:     c.Port,
		Username: c.Username,
		Password: c.Password,
		From:     c.From,
		To:       c.To,
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithBackend supplies the content backend instead of opening Config.Backend.
// The App does not close a supplied backend.
func WithBackend(b kv.Backend) Option {
	return func(a *App) {
		a.backend = b
	}
}

// WithInquiryStore supplies the inquiry store instead of opening
// Config.InquiryDatabasePath. The App does not close a supplied store.
func WithInquiryStore(s *inquiry.Store) Option {
	return func(a *App) {
		a.Inquiries = s
	}
}

// WithNotifier replaces the inquiry notifier built from Config.SMTP.
func WithNotifier(n inquiry.Notifier) Option {
	return func(a *App) {
		a.notifier = n
	}
}

// WithLogger replaces the logger built from Config.Log.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Log = l
	}
}

// WithViews replaces the page components.
func WithViews(v ViewFuncs) Option {
	return func(a *App) {
		a.Views = v
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets and uploads.
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.Config.StaticDir = dir
	}
}
