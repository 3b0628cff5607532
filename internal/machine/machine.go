package machine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/roach88/craftkit/internal/chance"
	"github.com/roach88/craftkit/internal/component"
	"github.com/roach88/craftkit/internal/crafting"
	"github.com/roach88/craftkit/internal/ir"
	"github.com/roach88/craftkit/internal/journal"
	"github.com/roach88/craftkit/internal/modifier"
)

// DefaultMaxStalls is the default number of consecutive stalled ticks
// before a craft is aborted.
const DefaultMaxStalls = 100

// State is the machine's craft state.
type State int

const (
	StateIdle State = iota
	StateRunning
)

func (s State) String() string {
	if s == StateRunning {
		return "running"
	}
	return "idle"
}

// StepResult reports what one Step did.
type StepResult int

const (
	// StepWaiting means the machine was idle and the probe failed.
	StepWaiting StepResult = iota
	StepStarted
	StepProgressed
	StepStalled
	StepFinished
	StepAborted
)

func (r StepResult) String() string {
	switch r {
	case StepWaiting:
		return "waiting"
	case StepStarted:
		return "started"
	case StepProgressed:
		return "progressed"
	case StepStalled:
		return "stalled"
	case StepFinished:
		return "finished"
	case StepAborted:
		return "aborted"
	default:
		return fmt.Sprintf("StepResult(%d)", int(r))
	}
}

// Stats counts what a machine has done since construction.
type Stats struct {
	Probes    int `json:"probes"`
	Started   int `json:"started"`
	Completed int `json:"completed"`
	Aborted   int `json:"aborted"`
	Stalls    int `json:"stalls"`
}

// Machine is one crafting station running one recipe.
type Machine struct {
	name   string
	recipe crafting.Recipe

	components []component.Component
	modifiers  []modifier.Modifier

	journal  *journal.Store
	clock    *crafting.Clock
	ids      crafting.IDGenerator
	seeds    chance.SeedSource
	observer crafting.Observer
	logger   *slog.Logger
	stalls   *StallQuota

	tick     int64
	state    State
	craft    *crafting.Context
	progress int64
	duration int64
	stats    Stats

	// Journal state of the current craft. Events emitted before the craft
	// starts are held until its execution row exists.
	journaled bool
	pending   []crafting.Event
	rec       *journal.Recorder

	// pendingID is the execution id reserved for the next craft. It is kept
	// across failed probes and released when a craft ends.
	pendingID string
}

// Option configures a Machine.
type Option func(*Machine)

// WithJournal records every started craft and its events in s.
func WithJournal(s *journal.Store) Option {
	return func(m *Machine) {
		m.journal = s
	}
}

// WithClock sets the clock stamping events. Default: crafting.NewClock().
func WithClock(c *crafting.Clock) Option {
	return func(m *Machine) {
		m.clock = c
	}
}

// WithIDGenerator sets the execution id generator.
// Default: crafting.UUIDv7Generator.
func WithIDGenerator(g crafting.IDGenerator) Option {
	return func(m *Machine) {
		m.ids = g
	}
}

// WithSeedSource sets the chance seed source. Default: chance.RandomSeeds.
func WithSeedSource(s chance.SeedSource) Option {
	return func(m *Machine) {
		m.seeds = s
	}
}

// WithObserver receives every event of every craft.
func WithObserver(o crafting.Observer) Option {
	return func(m *Machine) {
		m.observer = o
	}
}

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = l
	}
}

// WithMaxStalls sets the consecutive stall limit.
// Default: DefaultMaxStalls. A value <= 0 never aborts.
func WithMaxStalls(n int) Option {
	return func(m *Machine) {
		m.stalls = NewStallQuota(n)
	}
}

// New creates an idle machine crafting r.
func New(name string, r crafting.Recipe, opts ...Option) *Machine {
	m := &Machine{
		name:   name,
		recipe: r,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.clock == nil {
		m.clock = crafting.NewClock()
	}
	if m.ids == nil {
		m.ids = crafting.UUIDv7Generator{}
	}
	if m.seeds == nil {
		m.seeds = chance.RandomSeeds{}
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	if m.stalls == nil {
		m.stalls = NewStallQuota(DefaultMaxStalls)
	}
	m.logger = m.logger.With("machine", name, "recipe", r.ID())
	return m
}

// AddComponent attaches c to the machine. An idle machine sees it at its
// next probe; a running craft keeps the components it started with.
func (m *Machine) AddComponent(c component.Component) {
	m.components = append(m.components, c)
}

// AddModifier attaches mod to the machine. An idle machine applies it from
// its next probe; a running craft keeps the modifiers it started with.
func (m *Machine) AddModifier(mod modifier.Modifier) {
	m.modifiers = append(m.modifiers, mod)
}

// Name returns the machine name.
func (m *Machine) Name() string { return m.name }

// State returns the craft state.
func (m *Machine) State() State { return m.state }

// Tick returns the number of steps taken.
func (m *Machine) Tick() int64 { return m.tick }

// Stats returns the machine counters.
func (m *Machine) Stats() Stats { return m.stats }

// Progress returns the ticks completed and the total ticks of the running
// craft. Both are 0 while idle.
func (m *Machine) Progress() (done, total int64) {
	if m.state != StateRunning {
		return 0, 0
	}
	return m.progress, m.duration
}

// ExecutionID returns the id of the running or pending craft, empty when
// there is none.
func (m *Machine) ExecutionID() string {
	if m.craft == nil {
		return ""
	}
	return m.craft.ExecutionID()
}

// Run steps the machine ticks times.
// Stops at the first error or when ctx is cancelled.
func (m *Machine) Run(ctx context.Context, ticks int) error {
	for i := 0; i < ticks; i++ {
		if _, err := m.Step(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Step advances the machine by one tick.
//
// Missing resources are never errors: a failed probe returns StepWaiting
// and a stalled tick StepStalled. Errors come from misconfigured recipes
// or modifiers (crafting.RuntimeError), an exceeded stall quota
// (StallError), journal writes, or ctx.
func (m *Machine) Step(ctx context.Context) (StepResult, error) {
	if err := ctx.Err(); err != nil {
		return StepWaiting, err
	}
	m.tick++

	if m.journal != nil {
		m.rec = journal.NewRecorder(ctx, m.journal)
		defer func() { m.rec = nil }()
	}

	var res StepResult
	var err error
	if m.state == StateIdle {
		res, err = m.tryStart(ctx)
	} else {
		res, err = m.advance(ctx)
	}

	if m.rec != nil {
		if jerr := m.rec.Err(); jerr != nil {
			err = errors.Join(err, fmt.Errorf("journal: %w", jerr))
		}
	}
	return res, err
}

func (m *Machine) newCraft(id string) *crafting.Context {
	c := crafting.New(m.recipe,
		crafting.WithExecutionID(id),
		crafting.WithClock(m.clock),
		crafting.WithSeedSource(m.seeds),
		crafting.WithObserver(crafting.ObserverFunc(m.observe)),
		crafting.WithLogger(m.logger),
	)
	for _, comp := range m.components {
		c.RegisterComponent(comp)
	}
	for _, mod := range m.modifiers {
		c.RegisterModifier(mod)
	}
	return c
}

func (m *Machine) tryStart(ctx context.Context) (StepResult, error) {
	// Rebuilt for every probe so components and modifiers added while
	// waiting are seen.
	if m.pendingID == "" {
		m.pendingID = m.ids.Generate()
	}
	m.craft = m.newCraft(m.pendingID)
	m.craft.SetCurrentTick(0)
	m.stats.Probes++

	check, err := m.craft.CanStartCrafting()
	if err != nil {
		m.reset()
		return StepWaiting, err
	}
	if check != ir.Success {
		m.pending = m.pending[:0]
		return StepWaiting, nil
	}

	adjusted, err := m.craft.AdjustedDuration()
	if err != nil {
		m.reset()
		return StepWaiting, err
	}
	m.duration = int64(math.Round(adjusted))
	if m.duration < 1 {
		m.duration = 1
	}

	if err := m.openExecution(ctx); err != nil {
		m.reset()
		return StepWaiting, err
	}

	if err := m.craft.Start(); err != nil {
		return StepAborted, m.abort(ctx, err)
	}

	m.state = StateRunning
	m.progress = 0
	m.stalls.Reset()
	m.stats.Started++
	m.logger.Info("craft started",
		"execution", m.craft.ExecutionID(),
		"duration", m.duration,
		"tick", m.tick)
	return StepStarted, nil
}

func (m *Machine) advance(ctx context.Context) (StepResult, error) {
	m.craft.SetCurrentTick(m.progress)

	ok, err := m.craft.EnergyTick()
	if err != nil {
		return StepAborted, m.abort(ctx, err)
	}
	if !ok {
		m.stats.Stalls++
		if err := m.stalls.Check(m.craft.ExecutionID()); err != nil {
			return StepAborted, m.abort(ctx, err)
		}
		m.logger.Debug("craft stalled",
			"execution", m.craft.ExecutionID(),
			"progress", m.progress,
			"stalls", m.stalls.Current(),
			"limit", m.stalls.MaxStalls())
		return StepStalled, nil
	}

	m.stalls.Reset()
	m.progress++
	if m.progress < m.duration {
		return StepProgressed, nil
	}

	m.craft.SetCurrentTick(m.progress)
	if err := m.craft.Finish(); err != nil {
		return StepAborted, m.abort(ctx, err)
	}
	id := m.craft.ExecutionID()
	if m.journal != nil {
		if err := m.journal.FinishExecution(ctx, id, journal.StatusCompleted, m.tick); err != nil {
			m.reset()
			return StepFinished, fmt.Errorf("journal: %w", err)
		}
	}
	m.stats.Completed++
	m.logger.Info("craft finished", "execution", id, "tick", m.tick)
	m.reset()
	return StepFinished, nil
}

// abort ends the current craft and returns cause, joined with any journal
// error.
func (m *Machine) abort(ctx context.Context, cause error) error {
	id := m.craft.ExecutionID()
	m.stats.Aborted++
	m.logger.Warn("craft aborted", "execution", id, "tick", m.tick, "error", cause)

	var jerr error
	if m.journal != nil && m.journaled {
		if err := m.journal.FinishExecution(ctx, id, journal.StatusAborted, m.tick); err != nil {
			jerr = fmt.Errorf("journal: %w", err)
		}
	}
	m.reset()
	return errors.Join(cause, jerr)
}

func (m *Machine) reset() {
	m.state = StateIdle
	m.craft = nil
	m.progress = 0
	m.duration = 0
	m.journaled = false
	m.pending = m.pending[:0]
	m.pendingID = ""
	m.stalls.Reset()
}

// openExecution writes the execution row and the events held back while
// it did not exist.
func (m *Machine) openExecution(ctx context.Context) error {
	if m.journal == nil {
		return nil
	}
	exec := journal.Execution{
		ID:        m.craft.ExecutionID(),
		RecipeID:  m.recipe.ID(),
		Machine:   m.name,
		Seq:       m.clock.Next(),
		StartTick: m.tick,
	}
	if d, ok := m.recipe.(interface{ Digest() string }); ok {
		exec.RecipeDigest = d.Digest()
	}
	if err := m.journal.WriteExecution(ctx, exec); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	m.journaled = true
	for _, ev := range m.pending {
		m.rec.Observe(ev)
	}
	m.pending = m.pending[:0]
	return nil
}

func (m *Machine) observe(ev crafting.Event) {
	if m.observer != nil {
		m.observer.Observe(ev)
	}
	if m.journal == nil {
		return
	}
	if !m.journaled {
		m.pending = append(m.pending, ev)
		return
	}
	m.rec.Observe(ev)
}
