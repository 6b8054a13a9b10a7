package content

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"

	"github.com/eringen/storefront/kv"
)

// ErrPersist marks a failed snapshot write. The in-memory state keeps the
// mutation, so callers should warn that the edit may not survive a restart.
var ErrPersist = errors.New("content: persist failed")

// Store owns the site configuration and service catalog. It is the only
// writer of the persisted snapshot.
type Store struct {
	mu       sync.RWMutex
	backend  kv.Backend
	ids      *snowflake.Node
	log      *zap.Logger
	config   SiteConfig
	services []Service
	title    string

	listenerMu sync.Mutex
	listeners  []func(title string)
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load fallbacks and write failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		s.log = l
	}
}

// WithIDNode sets the snowflake node used to mint service ids.
func WithIDNode(n *snowflake.Node) Option {
	return func(s *Store) {
		s.ids = n
	}
}

// NewStore creates a Store seeded with the default snapshot. Call Load to
// pick up persisted state.
func NewStore(backend kv.Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend:  backend,
		log:      zap.NewNop(),
		config:   DefaultConfig(),
		services: DefaultServices(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.ids == nil {
		node, err := snowflake.NewNode(1)
		if err != nil {
			return nil, fmt.Errorf("content: id node: %w", err)
		}
		s.ids = node
	}
	s.title = Title(s.config.ShopName)
	return s, nil
}

// Load replaces the in-memory state with the persisted snapshot. Each key
// falls back to its built-in default independently when it is absent,
// unreadable or malformed. Load never fails.
func (s *Store) Load(ctx context.Context) {
	cfg := DefaultConfig()
	if data, ok := s.read(ctx, ConfigKey); ok {
		if c, err := decodeConfig(data); err != nil {
			s.fallback(ConfigKey, err)
		} else {
			cfg = c
		}
	}

	services := DefaultServices()
	if data, ok := s.read(ctx, ServicesKey); ok {
		if list, err := decodeServices(data); err != nil {
			s.fallback(ServicesKey, err)
		} else {
			services = list
		}
	}

	s.mu.Lock()
	s.config = cfg
	s.services = services
	title := s.retitle()
	s.mu.Unlock()
	s.publish(title)
}

func (s *Store) read(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, kv.ErrNotFound) {
		return nil, false
	}
	if err != nil {
		s.fallback(key, err)
		return nil, false
	}
	return data, true
}

func (s *Store) fallback(key string, err error) {
	loadFallbacks.WithLabelValues(key).Inc()
	s.log.Warn("using built-in default", zap.String("key", key), zap.Error(err))
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Config: s.config, Services: cloneServices(s.services)}
}

// Config returns the current site configuration.
func (s *Store) Config() SiteConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.config
}

// Services returns a copy of the catalog in display order.
func (s *Store) Services() []Service {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneServices(s.services)
}

// Service looks up one catalog entry by id.
func (s *Store) Service(id string) (Service, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.services[i], true
	}
	return Service{}, false
}

// Title returns the document title derived from the shop name.
func (s *Store) Title() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.title
}

// OnTitle registers fn to receive the derived title after every mutation.
func (s *Store) OnTitle(fn func(title string)) {
	s.listenerMu.Lock()
	s.listeners = append(s.listeners, fn)
	s.listenerMu.Unlock()
}

// UpdateConfigField sets one configuration field. An invalid selector is a
// no-op.
func (s *Store) UpdateConfigField(ctx context.Context, field ConfigField, value string) error {
	if !field.Valid() {
		return nil
	}
	value = validUTF8(value)
	return s.mutate(ctx, "update_config", func() bool {
		return s.config.set(field, value)
	})
}

// AddService appends a service with a fresh id. Empty fields in defaults get
// the new-service placeholders; any id in defaults is ignored. The created
// entry is returned even when persisting fails.
func (s *Store) AddService(ctx context.Context, defaults Service) (Service, error) {
	svc := defaults.normalized()
	if svc.Title == "" {
		svc.Title = NewServiceTitle
	}
	if svc.Description == "" {
		svc.Description = NewServiceDescription
	}
	if svc.Icon == "" {
		svc.Icon = NewServiceIcon
	}
	err := s.mutate(ctx, "add_service", func() bool {
		svc.ID = s.newID()
		s.services = append(s.services, svc)
		return true
	})
	return svc, err
}

// newID mints an id not present in the catalog. Caller holds s.mu.
func (s *Store) newID() string {
	for {
		id := s.ids.Generate().String()
		if s.indexOf(id) < 0 {
			return id
		}
	}
}

// UpdateService replaces the editable fields of the entry with svc.ID. Id and
// position are unchanged; an unknown id is a no-op.
func (s *Store) UpdateService(ctx context.Context, svc Service) error {
	svc = svc.normalized()
	return s.mutate(ctx, "update_service", func() bool {
		i := s.indexOf(svc.ID)
		if i < 0 {
			return false
		}
		s.services[i] = svc
		return true
	})
}

// DeleteService removes the entry with id. An unknown id is a no-op.
func (s *Store) DeleteService(ctx context.Context, id string) error {
	return s.mutate(ctx, "delete_service", func() bool {
		i := s.indexOf(id)
		if i < 0 {
			return false
		}
		s.services = append(s.services[:i:i], s.services[i+1:]...)
		return true
	})
}

// Replace swaps in a whole snapshot, as done by an import. The catalog must
// satisfy the id invariant.
func (s *Store) Replace(ctx context.Context, snap Snapshot) error {
	snap = snap.clone()
	snap.Config = snap.Config.normalized()
	for i := range snap.Services {
		snap.Services[i] = snap.Services[i].normalized()
	}
	if err := validateServices(snap.Services); err != nil {
		return err
	}
	return s.mutate(ctx, "replace", func() bool {
		s.config = snap.Config
		s.services = snap.Services
		return true
	})
}

// Persist writes the current snapshot to the backend.
func (s *Store) Persist(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistLocked(ctx)
}

// mutate runs apply under the write lock. When apply reports a change, the
// title is re-derived and the snapshot persisted; listeners are notified
// after the lock is released.
func (s *Store) mutate(ctx context.Context, op string, apply func() bool) error {
	s.mu.Lock()
	if !apply() {
		s.mu.Unlock()
		return nil
	}
	title := s.retitle()
	err := s.persistLocked(ctx)
	s.mu.Unlock()

	recordMutation(op, err)
	s.publish(title)
	return err
}

func (s *Store) persistLocked(ctx context.Context) error {
	cfg, err := encodeConfig(s.config)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPersist, ConfigKey, err)
	}
	services, err := encodeServices(s.services)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrPersist, ServicesKey, err)
	}
	// The two keys carry no cross-key invariant; a failure on the first
	// write does not skip the second.
	return errors.Join(
		s.write(ctx, ConfigKey, cfg),
		s.write(ctx, ServicesKey, services),
	)
}

func (s *Store) write(ctx context.Context, key string, value []byte) error {
	if err := s.backend.Put(ctx, key, value); err != nil {
		persistFailures.WithLabelValues(key).Inc()
		s.log.Error("persist failed", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("%w: write %s: %w", ErrPersist, key, err)
	}
	return nil
}

func (s *Store) retitle() string {
	s.title = Title(s.config.ShopName)
	return s.title
}

func (s *Store) publish(title string) {
	s.listenerMu.Lock()
	listeners := append([]func(string){}, s.listeners...)
	s.listenerMu.Unlock()
	for _, fn := range listeners {
		fn(title)
	}
}

func (s *Store) indexOf(id string) int {
	for i, svc := range s.services {
		if svc.ID == id {
			return i
		}
	}
	return -1
}

// validUTF8 replaces invalid byte sequences the way the JSON encoder would,
// so the in-memory state always equals what a reload produces.
func validUTF8(v string) string {
	return strings.ToValidUTF8(v, "\uFFFD")
}

func (svc Service) normalized() Service {
	svc.ID = validUTF8(svc.ID)
	svc.Title = validUTF8(svc.Title)
	svc.Description = validUTF8(svc.Description)
	svc.Icon = validUTF8(svc.Icon)
	svc.ImageURL = validUTF8(svc.ImageURL)
	svc.Price = validUTF8(svc.Price)
	return svc
}

func (c SiteConfig) normalized() SiteConfig {
	for _, f := range ConfigFields() {
		c.set(f, validUTF8(c.Get(f)))
	}
	return c
}
