package crafting

import (
	"log/slog"

	"github.com/roach88/craftkit/internal/chance"
	"github.com/roach88/craftkit/internal/component"
	"github.com/roach88/craftkit/internal/ir"
	"github.com/roach88/craftkit/internal/modifier"
	"github.com/roach88/craftkit/internal/requirement"
)

// Recipe is the read-only recipe a context crafts.
//
// Requirements must return the same ordered list on every call. The
// context never mutates a recipe or its requirements.
type Recipe interface {
	ID() string
	Requirements() []requirement.Requirement
	// TotalTicks is the nominal craft duration before modifiers.
	TotalTicks() int64
}

// Context is the state of one recipe execution.
//
// INVARIANTS:
//   - requirement order is fixed at construction
//   - the restriction set is empty outside CanStartCrafting
//   - the tick counter only changes through SetCurrentTick
type Context struct {
	recipe       Recipe
	requirements []requirement.Requirement
	executionID  string
	tick         int64

	modifiers    *modifier.Table
	components   *component.Index
	restrictions requirement.Restrictions
	scratch      map[requirement.Requirement]*requirement.Scratch

	seeds    chance.SeedSource
	clock    *Clock
	observer Observer
	logger   *slog.Logger
}

// Option configures a Context.
type Option func(*Context)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *Context) {
		c.logger = l
	}
}

// WithSeedSource sets where Start and Finish draw their seeds.
// Default: chance.RandomSeeds.
func WithSeedSource(s chance.SeedSource) Option {
	return func(c *Context) {
		c.seeds = s
	}
}

// WithExecutionID sets the execution id. Default: a new UUIDv7.
func WithExecutionID(id string) Option {
	return func(c *Context) {
		c.executionID = id
	}
}

// WithClock sets the clock that stamps phase events.
// Machines share one clock across successive crafts.
func WithClock(clock *Clock) Option {
	return func(c *Context) {
		c.clock = clock
	}
}

// WithObserver sets the receiver of phase events.
func WithObserver(o Observer) Option {
	return func(c *Context) {
		c.observer = o
	}
}

// New creates a context for one execution of recipe.
//
// The requirement list is copied so later changes to the recipe's slice
// cannot reorder evaluation.
func New(recipe Recipe, opts ...Option) *Context {
	reqs := recipe.Requirements()
	reqsCopy := make([]requirement.Requirement, len(reqs))
	copy(reqsCopy, reqs)

	c := &Context{
		recipe:       recipe,
		requirements: reqsCopy,
		modifiers:    modifier.NewTable(),
		components:   component.NewIndex(),
		scratch:      make(map[requirement.Requirement]*requirement.Scratch),
		seeds:        chance.RandomSeeds{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.executionID == "" {
		c.executionID = UUIDv7Generator{}.Generate()
	}
	if c.clock == nil {
		c.clock = NewClock()
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("recipe", recipe.ID(), "execution", c.executionID)

	return c
}

// RecipeID returns the id of the recipe being crafted.
func (c *Context) RecipeID() string {
	return c.recipe.ID()
}

// Recipe returns the recipe being crafted.
func (c *Context) Recipe() Recipe {
	return c.recipe
}

// ExecutionID returns the id of this execution.
func (c *Context) ExecutionID() string {
	return c.executionID
}

// SetCurrentTick sets the tick counter. The context never advances it.
func (c *Context) SetCurrentTick(n int64) {
	c.tick = n
}

// CurrentTick returns the tick counter.
func (c *Context) CurrentTick() int64 {
	return c.tick
}

// RegisterComponent makes comp available to requirements of its type.
// Registering the same component twice is a no-op apart from refreshing
// its provider.
func (c *Context) RegisterComponent(comp component.Component) {
	c.components.Register(comp)
}

// RegisterModifier records m. Targets are canonicalized the way resource
// types are, so a "gas" modifier applies to fluid requirements.
func (c *Context) RegisterModifier(m modifier.Modifier) {
	m.Target = canonicalTarget(m.Target)
	c.modifiers.Record(m)
}

// LookupProvider returns the container provider of a registered component.
func (c *Context) LookupProvider(comp component.Component) (any, bool) {
	return c.components.Provider(comp)
}

// Provider implements requirement.Context.
func (c *Context) Provider(comp component.Component) (any, bool) {
	return c.LookupProvider(comp)
}

// Components returns the components registered for t, in registration order.
func (c *Context) Components(t ir.ResourceType) []component.Component {
	return c.components.ComponentsOf(t)
}

// Modifiers returns the modifiers recorded for target.
func (c *Context) Modifiers(target string) []modifier.Modifier {
	return c.modifiers.Modifiers(canonicalTarget(target))
}

// ApplyModifiers adjusts value by the modifiers recorded for target.
// io == ir.IOAny applies modifiers of every direction.
func (c *Context) ApplyModifiers(target string, io ir.IOType, value float64, isChance bool) (float64, error) {
	return c.modifiers.Apply(canonicalTarget(target), io, value, isChance)
}

// AdjustedDuration returns the recipe duration after "duration" modifiers.
func (c *Context) AdjustedDuration() (float64, error) {
	d, err := c.modifiers.AdjustedDuration(float64(c.recipe.TotalTicks()))
	if err != nil {
		return 0, newRuntimeError(c.RecipeID(), c.executionID, PhaseTick, err)
	}
	return d, nil
}

// DurationScale returns nominal / adjusted duration, the factor applied
// to per-tick transfer amounts.
func (c *Context) DurationScale() (float64, error) {
	s, err := c.modifiers.DurationScale(float64(c.recipe.TotalTicks()))
	if err != nil {
		return 0, newRuntimeError(c.RecipeID(), c.executionID, PhaseTick, err)
	}
	return s, nil
}

// Scratch implements requirement.Context.
func (c *Context) Scratch(r requirement.Requirement) *requirement.Scratch {
	s, ok := c.scratch[r]
	if !ok {
		s = &requirement.Scratch{}
		c.scratch[r] = s
	}
	return s
}

// Restrictions returns the number of restrictions currently held.
// It is zero whenever no probe is running.
func (c *Context) Restrictions() int {
	return c.restrictions.Len()
}

func canonicalTarget(target string) string {
	return string(ir.ResourceType(target).Canonical())
}
