// Package solver finds minimum-cost eight-direction paths through a grid.
//
// It validates endpoints before any search work, runs gridpath.Search over
// grid.Graph with the Euclidean heuristic and reports each outcome to an
// optional Observer. An unreachable goal is a normal Solution with Found
// false, never an error.
package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/grid"
)

// Solution is the result of one search.
type Solution struct {
	Path     []grid.Cell `json:"path"`
	Moves    []grid.Move `json:"moves"`
	Cost     float64     `json:"cost"`
	Expanded int         `json:"expanded"`
	Found    bool        `json:"found"`
}

// Endpoints is a start and goal pair for SolveBatch.
type Endpoints struct {
	Start grid.Cell `json:"start"`
	Goal  grid.Cell `json:"goal"`
}

// Cache stores solutions by key. Implementations must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (Solution, bool, error)
	Put(ctx context.Context, key string, solution Solution) error
}

// Solver holds the search configuration. It is safe for concurrent use.
type Solver struct {
	costs          grid.CostModel
	workers        int
	expansionLimit int
	batchLimit     int
	timeout        time.Duration
	logger         *slog.Logger
	observer       Observer
	cache          Cache
}

// Option configures a Solver.
type Option func(*Solver)

// WithCosts sets the move cost model. The default is grid.DefaultCosts().
func WithCosts(costs grid.CostModel) Option {
	return func(s *Solver) { s.costs = costs }
}

// WithWorkers sets the relaxation pool size per search. Zero relaxes inline.
func WithWorkers(n int) Option {
	return func(s *Solver) { s.workers = n }
}

// WithExpansionLimit caps expansions per search.
func WithExpansionLimit(n int) Option {
	return func(s *Solver) { s.expansionLimit = n }
}

// WithBatchConcurrency bounds how many searches SolveBatch runs at once.
func WithBatchConcurrency(n int) Option {
	return func(s *Solver) { s.batchLimit = n }
}

// WithTimeout bounds every search. Zero disables the deadline.
func WithTimeout(d time.Duration) Option {
	return func(s *Solver) { s.timeout = d }
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Solver) { s.logger = logger }
}

// WithObserver registers a hook that receives a Report per solve.
func WithObserver(o Observer) Option {
	return func(s *Solver) { s.observer = o }
}

// WithCache enables solution caching.
func WithCache(c Cache) Option {
	return func(s *Solver) { s.cache = c }
}

// New returns a Solver. It fails with grid.ErrConfiguration for an unusable cost model.
func New(opts ...Option) (*Solver, error) {
	s := &Solver{
		costs:      grid.DefaultCosts(),
		batchLimit: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := s.costs.Validate(); err != nil {
		return nil, err
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.batchLimit <= 0 {
		s.batchLimit = 1
	}
	return s, nil
}

// Costs returns the cost model in use.
func (s *Solver) Costs() grid.CostModel { return s.costs }

// Solve searches from g.Start() to g.Goal().
func (s *Solver) Solve(ctx context.Context, g *grid.Grid) (Solution, error) {
	began := time.Now()

	if err := g.ValidateEndpoints(); err != nil {
		s.report(Report{Outcome: OutcomeInvalidEndpoint, Duration: time.Since(began)})
		return Solution{}, err
	}
	if !g.GoalMarked() {
		s.logger.Warn("map has no goal marker, using fallback goal", "goal", g.Goal().String())
	}

	key := s.cacheKey(g)
	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		switch {
		case err != nil:
			s.logger.Warn("solution cache read failed", "error", err)
		case ok:
			s.report(Report{Outcome: OutcomeCached, Expanded: cached.Expanded, Cost: cached.Cost, Duration: time.Since(began)})
			return cached, nil
		}
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	result, err := gridpath.Search(
		ctx,
		grid.NewGraph(g, s.costs),
		g.Start(),
		g.Goal(),
		grid.Euclidean(s.costs),
		gridpath.WithWorkers(s.workers),
		gridpath.WithExpansionLimit(s.expansionLimit),
	)
	if err != nil {
		outcome := OutcomeError
		switch {
		case errors.Is(err, gridpath.ErrExpansionLimit):
			outcome = OutcomeLimit
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			outcome = OutcomeCanceled
		}
		s.report(Report{Outcome: outcome, Expanded: result.ExpandedNodes, Duration: time.Since(began)})
		return Solution{Expanded: result.ExpandedNodes}, fmt.Errorf("search %s -> %s: %w", g.Start(), g.Goal(), err)
	}

	solution := Solution{Expanded: result.ExpandedNodes, Found: result.Found}
	if result.Found {
		moves, err := grid.MovesAlong(result.Path)
		if err != nil {
			return Solution{}, fmt.Errorf("search returned a broken path: %w", err)
		}
		solution.Path = result.Path
		solution.Moves = moves
		solution.Cost = result.TotalCost
	}

	if s.cache != nil {
		if err := s.cache.Put(ctx, key, solution); err != nil {
			s.logger.Warn("solution cache write failed", "error", err)
		}
	}

	outcome := OutcomeNoPath
	if solution.Found {
		outcome = OutcomeFound
	}
	report := Report{Outcome: outcome, Expanded: solution.Expanded, Cost: solution.Cost, Duration: time.Since(began)}
	s.report(report)
	s.logger.Debug("search finished",
		"start", g.Start().String(),
		"goal", g.Goal().String(),
		"outcome", string(outcome),
		"expanded", solution.Expanded,
		"cost", solution.Cost,
		"duration", report.Duration,
	)
	return solution, nil
}

// SolveBetween re-places the endpoints on g and solves.
func (s *Solver) SolveBetween(ctx context.Context, g *grid.Grid, start, goal grid.Cell) (Solution, error) {
	placed, err := g.WithEndpoints(start, goal)
	if err != nil {
		s.report(Report{Outcome: OutcomeInvalidEndpoint})
		return Solution{}, err
	}
	return s.Solve(ctx, placed)
}

// SolveBatch solves every pair over the same grid concurrently.
// Results are in input order. The first error cancels the remaining searches.
func (s *Solver) SolveBatch(ctx context.Context, g *grid.Grid, pairs []Endpoints) ([]Solution, error) {
	solutions := make([]Solution, len(pairs))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.batchLimit)
	for i, pair := range pairs {
		group.Go(func() error {
			solution, err := s.SolveBetween(groupCtx, g, pair.Start, pair.Goal)
			if err != nil {
				return fmt.Errorf("pair %d: %w", i, err)
			}
			solutions[i] = solution
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return solutions, nil
}

// NewStepper validates g and returns a step-by-step search over it.
// The caller must Close the stepper.
func (s *Solver) NewStepper(ctx context.Context, g *grid.Grid) (*gridpath.Stepper[grid.Cell], error) {
	if err := g.ValidateEndpoints(); err != nil {
		return nil, err
	}
	return gridpath.NewStepper(
		ctx,
		grid.NewGraph(g, s.costs),
		g.Start(),
		g.Goal(),
		grid.Euclidean(s.costs),
		gridpath.WithWorkers(s.workers),
		gridpath.WithExpansionLimit(s.expansionLimit),
	), nil
}

func (s *Solver) cacheKey(g *grid.Grid) string {
	return fmt.Sprintf("%s:%g:%g", g.Fingerprint(), s.costs.Orthogonal, s.costs.Diagonal)
}

func (s *Solver) report(r Report) {
	if s.observer != nil {
		s.observer.ObserveSearch(r)
	}
}
