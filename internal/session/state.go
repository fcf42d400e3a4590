// Package session holds the calculator inputs shared by every interactive view.
// Views never own state: they call the mutators and render the snapshots they
// are handed.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/rgehrsitz/taxcut/internal/calculation"
	"github.com/rgehrsitz/taxcut/internal/domain"
	"github.com/rgehrsitz/taxcut/internal/transform"
	"github.com/shopspring/decimal"
)

// Snapshot is an immutable view of the inputs and the comparison they produce.
// Err is set when the engine rejected the inputs; Comparison is then nil.
type Snapshot struct {
	Version    uint64
	Scenario   domain.Scenario
	Comparison *domain.Comparison
	Err        error
}

// Listener receives every published snapshot, in version order. Listeners
// run on the mutating goroutine and must not call back into State mutators.
type Listener func(Snapshot)

// State is the single source of truth for income, filing status, savings and scope
type State struct {
	mu       sync.RWMutex
	engine   *calculation.CalculationEngine
	scenario domain.Scenario
	current  Snapshot

	// pubMu is taken before mu is released so deliveries keep version order
	pubMu     sync.Mutex
	subMu     sync.Mutex
	listeners map[int]Listener
	nextID    int
}

// Option configures a State
type Option func(*State)

// WithEngine sets the calculation engine (defaults to the built-in tables)
func WithEngine(engine *calculation.CalculationEngine) Option {
	return func(s *State) {
		s.engine = engine
	}
}

// DefaultScenario is the page-load state: married, no income, no cut, all brackets
func DefaultScenario() domain.Scenario {
	return domain.Scenario{
		FilingStatus: domain.FilingMarried,
		Scope:        domain.ScopeAll,
	}
}

// New creates a State seeded with initial and computes its first snapshot.
// Empty enum fields fall back to DefaultScenario.
func New(initial domain.Scenario, opts ...Option) *State {
	s := &State{
		engine:    calculation.NewCalculationEngine(),
		listeners: make(map[int]Listener),
	}
	for _, opt := range opts {
		opt(s)
	}

	def := DefaultScenario()
	if initial.FilingStatus == "" {
		initial.FilingStatus = def.FilingStatus
	}
	if initial.Scope == "" {
		initial.Scope = def.Scope
	}
	if initial.Income.IsNegative() {
		initial.Income = decimal.Zero
	}

	s.scenario = initial
	s.current = s.compute(0)
	return s
}

// Snapshot returns the latest published snapshot
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Scenario returns the current inputs
func (s *State) Scenario() domain.Scenario {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scenario
}

// Subscribe registers fn for future snapshots and returns a function that
// removes it. Listeners run on the goroutine that made the change.
func (s *State) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.listeners, id)
			s.subMu.Unlock()
		})
	}
}

// SetIncome sets income. Negative amounts clamp to zero.
func (s *State) SetIncome(income decimal.Decimal) {
	if income.IsNegative() {
		income = decimal.Zero
	}
	s.update(func(sc *domain.Scenario) error {
		sc.Income = income
		return nil
	})
}

// SetIncomeText parses free-form income text; unparseable text becomes zero
func (s *State) SetIncomeText(text string) {
	s.SetIncome(domain.ParseIncome(text))
}

// SetFilingStatus switches the bracket table
func (s *State) SetFilingStatus(status domain.FilingStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownFilingStatus, status)
	}
	return s.update(func(sc *domain.Scenario) error {
		sc.FilingStatus = status
		return nil
	})
}

// ToggleFilingStatus flips between single and married
func (s *State) ToggleFilingStatus() {
	s.update(func(sc *domain.Scenario) error {
		sc.FilingStatus = sc.FilingStatus.Toggle()
		return nil
	})
}

// SetSavings sets the aggregate savings figure that drives the cut
func (s *State) SetSavings(savings decimal.Decimal) error {
	if savings.IsNegative() {
		return fmt.Errorf("%w: %s", domain.ErrNegativeSavings, savings)
	}
	return s.update(func(sc *domain.Scenario) error {
		sc.Savings = savings
		return nil
	})
}

// SetScope chooses which brackets the cut applies to
func (s *State) SetScope(scope domain.ReductionScope) error {
	if !scope.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownScope, scope)
	}
	return s.update(func(sc *domain.Scenario) error {
		sc.Scope = scope
		return nil
	})
}

// ToggleScope flips between all brackets and the top four
func (s *State) ToggleScope() {
	s.update(func(sc *domain.Scenario) error {
		sc.Scope = sc.Scope.Toggle()
		return nil
	})
}

// SetInputs replaces every input at once, publishing a single snapshot.
// Name and description are kept; negative income clamps to zero.
func (s *State) SetInputs(in domain.Scenario) error {
	if !in.FilingStatus.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownFilingStatus, in.FilingStatus)
	}
	if !in.Scope.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownScope, in.Scope)
	}
	if in.Savings.IsNegative() {
		return fmt.Errorf("%w: %s", domain.ErrNegativeSavings, in.Savings)
	}
	if in.Income.IsNegative() {
		in.Income = decimal.Zero
	}
	return s.update(func(sc *domain.Scenario) error {
		sc.Income = in.Income
		sc.FilingStatus = in.FilingStatus
		sc.Savings = in.Savings
		sc.Scope = in.Scope
		return nil
	})
}

// ApplyPreset applies a preset's transforms to the current inputs. The
// scenario's name and description are left alone.
func (s *State) ApplyPreset(p transform.Preset) error {
	return s.update(func(sc *domain.Scenario) error {
		next, err := transform.Chain(*sc, p.Transforms...)
		if err != nil {
			return fmt.Errorf("preset %s: %w", p.Name, err)
		}
		next.Name, next.Description = sc.Name, sc.Description
		*sc = next
		return nil
	})
}

// update mutates a copy of the scenario, recomputes, and publishes. A failing
// mutation leaves the state untouched and publishes nothing.
func (s *State) update(mutate func(*domain.Scenario) error) error {
	s.mu.Lock()
	next := s.scenario
	if err := mutate(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	s.scenario = next
	s.current = s.compute(s.current.Version + 1)
	snap := s.current
	s.pubMu.Lock()
	s.mu.Unlock()

	s.publish(snap)
	s.pubMu.Unlock()
	return nil
}

// compute must be called with mu held
func (s *State) compute(version uint64) Snapshot {
	snap := Snapshot{Version: version, Scenario: s.scenario}
	cmp, err := s.engine.Compare(context.Background(), s.scenario)
	if err != nil {
		snap.Err = err
		return snap
	}
	snap.Comparison = cmp
	return snap
}

func (s *State) publish(snap Snapshot) {
	s.subMu.Lock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.subMu.Unlock()

	for _, fn := range listeners {
		fn(snap)
	}
}
