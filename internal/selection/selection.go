// Package selection tracks which tier is active and which sections are expanded
// for one viewer session.
//
// Expansion is keyed by the bare section key, not by (tier, section). Several
// tiers reuse keys such as "overview", so expanding a section in one tier also
// shows the same-named section expanded in every other tier.
package selection

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/n0roo/infradocs/internal/catalog"
)

// ErrInvalidTierKey is returned when a selection names a tier that does not exist
var ErrInvalidTierKey = errors.New("invalid tier key")

// State is a snapshot of the selection
type State struct {
	ActiveTier string          `json:"active_tier"`
	Expanded   map[string]bool `json:"expanded"`
}

// IsExpanded reports whether sectionKey is in the expansion set
func (s State) IsExpanded(sectionKey string) bool {
	return s.Expanded[sectionKey]
}

// Controller owns the selection state of a session.
// It is not safe for concurrent use; events are handled one at a time.
type Controller struct {
	id        string
	tiers     map[string]bool
	active    string
	expanded  map[string]bool
	observers []observer
	nextObs   int
	logger    *zap.Logger
}

type observer struct {
	id int
	fn func(State)
}

// Option configures a Controller
type Option func(*Controller)

// WithLogger attaches a logger
func WithLogger(l *zap.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithSessionID overrides the generated session ID
func WithSessionID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.id = id
		}
	}
}

// New creates a controller over the given tier keys, starting on defaultTier
// with every section collapsed.
func New(tierKeys []string, defaultTier string, opts ...Option) (*Controller, error) {
	if len(tierKeys) == 0 {
		return nil, fmt.Errorf("no tiers: %w", ErrInvalidTierKey)
	}

	c := &Controller{
		id:       uuid.New().String(),
		tiers:    make(map[string]bool, len(tierKeys)),
		expanded: make(map[string]bool),
		logger:   zap.NewNop(),
	}
	for _, k := range tierKeys {
		c.tiers[k] = true
	}
	if !c.tiers[defaultTier] {
		return nil, fmt.Errorf("default tier %q: %w", defaultTier, ErrInvalidTierKey)
	}
	c.active = defaultTier

	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With(zap.String("session", c.id))

	return c, nil
}

// ForCatalog creates a controller for a validated catalog.
// The catalog guarantees a non-empty key set and a valid default, so this cannot fail.
func ForCatalog(cat *catalog.Catalog, opts ...Option) *Controller {
	c, err := New(cat.Keys(), cat.DefaultTier(), opts...)
	if err != nil {
		panic(fmt.Sprintf("selection: catalog invariant broken: %v", err))
	}
	return c
}

// SessionID returns the session identifier
func (c *Controller) SessionID() string {
	return c.id
}

// ActiveTier returns the key of the active tier
func (c *Controller) ActiveTier() string {
	return c.active
}

// SelectTier makes key the active tier. Unknown keys are rejected and the
// state is left untouched. The expansion set is never changed here.
func (c *Controller) SelectTier(key string) error {
	if !c.tiers[key] {
		c.logger.Warn("tier selection rejected", zap.String("tier", key))
		return fmt.Errorf("%q: %w", key, ErrInvalidTierKey)
	}

	prev := c.active
	c.active = key
	c.logger.Debug("tier selected", zap.String("tier", key), zap.String("previous", prev))
	c.notify()
	return nil
}

// ToggleSection flips the expansion of sectionKey
func (c *Controller) ToggleSection(sectionKey string) {
	if c.expanded[sectionKey] {
		delete(c.expanded, sectionKey)
	} else {
		c.expanded[sectionKey] = true
	}
	c.logger.Debug("section toggled",
		zap.String("section", sectionKey),
		zap.Bool("expanded", c.expanded[sectionKey]),
	)
	c.notify()
}

// CollapseAll clears the expansion set
func (c *Controller) CollapseAll() {
	if len(c.expanded) == 0 {
		return
	}
	c.expanded = make(map[string]bool)
	c.logger.Debug("all sections collapsed")
	c.notify()
}

// IsExpanded reports whether sectionKey is expanded
func (c *Controller) IsExpanded(sectionKey string) bool {
	return c.expanded[sectionKey]
}

// Expanded returns the expanded section keys, sorted
func (c *Controller) Expanded() []string {
	keys := make([]string, 0, len(c.expanded))
	for k := range c.expanded {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// State returns a copy of the current state
func (c *Controller) State() State {
	expanded := make(map[string]bool, len(c.expanded))
	for k := range c.expanded {
		expanded[k] = true
	}
	return State{ActiveTier: c.active, Expanded: expanded}
}

// Subscribe registers fn to be called after every state change.
// The returned func removes it again; calling it more than once is a no-op.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.nextObs++
	id := c.nextObs
	c.observers = append(c.observers, observer{id: id, fn: fn})

	return func() {
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

func (c *Controller) notify() {
	if len(c.observers) == 0 {
		return
	}
	st := c.State()
	for _, o := range c.observers {
		o.fn(st)
	}
}
