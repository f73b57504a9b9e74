package kmeans

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/expki/go-colorquant/compute"
	"github.com/expki/go-colorquant/config"
	"github.com/expki/go-colorquant/logger"
	"github.com/expki/go-colorquant/noop"
	"github.com/vbauerster/mpb/v8"
)

// CentroidStore persists the centroid set between iterations.
// Load returns an empty set, not an error, when nothing has been stored yet.
type CentroidStore interface {
	Load(ctx context.Context) (compute.CentroidSet, error)
	Save(ctx context.Context, centroids compute.CentroidSet) error
}

type Options struct {
	K             int
	MaxIterations int
	// Threshold stops the run once no centroid moved at least this far.
	// Zero uses the default; NoEarlyStop runs every iteration.
	Threshold float64
	Workers   int
	// Seed fixes the initial sampling; zero picks a random seed.
	Seed int64
	// Resume starts from the stored centroid set when it holds exactly K centroids.
	Resume bool
	// Progress receives progress bars; nil disables them.
	Progress io.Writer
}

// NoEarlyStop is a threshold no shift can fall below.
const NoEarlyStop = -1.0

// OptionsFromConfig resolves configuration defaults into controller options.
// A configured threshold of zero or less disables early stopping.
func OptionsFromConfig(cfg config.KMeans, progress io.Writer) Options {
	threshold := cfg.GetThreshold()
	if threshold <= 0 {
		logger.Sugar().Warnf("Convergence threshold %v disables early stopping, all %d iterations will run", threshold, cfg.GetMaxIterations())
		threshold = NoEarlyStop
	}
	return Options{
		K:             cfg.GetK(),
		MaxIterations: cfg.GetMaxIterations(),
		Threshold:     threshold,
		Workers:       cfg.GetWorkers(),
		Seed:          cfg.Seed,
		Resume:        cfg.Resume,
		Progress:      progress,
	}
}

type Status int

const (
	StatusInitializing Status = iota
	StatusIterating
	StatusConverged
	StatusExhaustedIterations
)

func (s Status) String() string {
	switch s {
	case StatusInitializing:
		return "initializing"
	case StatusIterating:
		return "iterating"
	case StatusConverged:
		return "converged"
	case StatusExhaustedIterations:
		return "exhausted iterations"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// State is the convergence state after the last completed iteration.
// Iteration is the zero-based index of the converging round, or MaxIterations
// when the budget ran out.
type State struct {
	Iteration int
	MaxShift  float64
	Status    Status
}

type Result struct {
	Centroids compute.CentroidSet
	State     State
}

// Controller drives map, reduce and convergence checks for a single run.
type Controller struct {
	options Options
	store   CentroidStore
	random  *rand.Rand
}

func New(options Options, store CentroidStore) *Controller {
	cfg := config.KMeans{
		K:             options.K,
		MaxIterations: options.MaxIterations,
		Workers:       options.Workers,
	}
	options.K = cfg.GetK()
	options.MaxIterations = cfg.GetMaxIterations()
	options.Workers = cfg.GetWorkers()
	if options.Threshold == 0 {
		options.Threshold = cfg.GetThreshold()
	}
	if store == nil {
		store = noop.Store{}
	}
	return &Controller{
		options: options,
		store:   store,
		random:  newRandom(options.Seed),
	}
}

func (c *Controller) Options() Options {
	return c.options
}

// Run picks the initial centroids and iterates until convergence or until the
// iteration budget is spent.
func (c *Controller) Run(ctx context.Context, buffer compute.PixelBuffer) (Result, error) {
	initial, err := c.Initialize(ctx, buffer)
	if err != nil {
		return Result{State: State{Status: StatusInitializing}}, err
	}
	return c.RunFrom(ctx, buffer, initial)
}

// Initialize returns the stored centroid set when resuming, otherwise samples
// K pixels and persists them.
func (c *Controller) Initialize(ctx context.Context, buffer compute.PixelBuffer) (compute.CentroidSet, error) {
	if buffer.Len() == 0 {
		return nil, phaseError(PhaseInitialize, 0, errors.Join(ErrInput, errors.New("pixel buffer is empty")))
	}

	if c.options.Resume {
		stored, err := c.store.Load(ctx)
		if err != nil {
			return nil, phaseError(PhaseInitialize, 0, errors.Join(ErrStorage, err))
		}
		if len(stored) == c.options.K {
			logger.Sugar().Infof("Resuming from %d stored centroids", len(stored))
			return stored, nil
		}
		if len(stored) > 0 {
			logger.Sugar().Warnf("Ignoring stored centroids: found %d, expected %d", len(stored), c.options.K)
		}
	}

	centroids, err := Initialize(c.random, buffer, c.options.K)
	if err != nil {
		return nil, phaseError(PhaseInitialize, 0, err)
	}
	err = c.store.Save(ctx, centroids)
	if err != nil {
		return nil, phaseError(PhasePersist, 0, errors.Join(ErrStorage, err))
	}
	logger.Sugar().Infof("Initialized %d centroids", len(centroids))
	return centroids, nil
}

// RunFrom iterates from the given initial centroid set.
func (c *Controller) RunFrom(ctx context.Context, buffer compute.PixelBuffer, initial compute.CentroidSet) (result Result, err error) {
	state := State{Status: StatusInitializing}
	if buffer.Len() == 0 {
		return Result{State: state}, phaseError(PhasePartition, 0, errors.Join(ErrInput, errors.New("pixel buffer is empty")))
	}
	if len(initial) == 0 {
		return Result{State: state}, phaseError(PhaseInitialize, 0, errors.Join(ErrInput, errors.New("initial centroid set is empty")))
	}

	// the buffer is immutable for the run, so it is partitioned once
	chunks := Split(buffer.Pixels, c.options.Workers)
	logger.Sugar().Debugf("Partitioned %d pixels into %d chunks", buffer.Len(), len(chunks))

	multibar := newMultibar(c.options.Progress)
	iterationBar := addIterationBar(multibar, c.options.MaxIterations)
	defer func() {
		if iterationBar != nil {
			iterationBar.SetTotal(-1, true)
		}
		waitMultibar(multibar)
	}()

	centroids := initial.Clone()
	state.Status = StatusIterating
	for state.Iteration = 0; state.Iteration < c.options.MaxIterations; state.Iteration++ {
		if err = ctx.Err(); err != nil {
			return Result{Centroids: centroids, State: state}, phaseError(PhaseMap, state.Iteration, err)
		}

		next, shift, err := c.step(ctx, chunks, centroids, multibar, state.Iteration)
		if err != nil {
			return Result{Centroids: centroids, State: state}, err
		}
		centroids = next
		state.MaxShift = shift
		logger.Sugar().Infof("Iteration %d: max shift %f", state.Iteration+1, shift)
		if iterationBar != nil {
			iterationBar.Increment()
		}

		if shift < c.options.Threshold {
			state.Status = StatusConverged
			logger.Sugar().Infof("Converged after %d iterations", state.Iteration+1)
			return Result{Centroids: centroids, State: state}, nil
		}
	}

	state.Status = StatusExhaustedIterations
	logger.Sugar().Infof("Stopped after reaching the maximum number of iterations (%d), last max shift %f", c.options.MaxIterations, state.MaxShift)
	return Result{Centroids: centroids, State: state}, nil
}

// step runs one map, reduce and persist round. The returned set is only
// handed back once it has been stored.
func (c *Controller) step(ctx context.Context, chunks []Chunk, centroids compute.CentroidSet, multibar *mpb.Progress, iteration int) (next compute.CentroidSet, shift float64, err error) {
	partials, err := mapPhase(ctx, chunks, centroids, c.options.Workers, multibar)
	if err != nil {
		return nil, 0, phaseError(PhaseMap, iteration, err)
	}

	next, err = Reduce(partials, centroids)
	if err != nil {
		return nil, 0, phaseError(PhaseReduce, iteration, err)
	}
	shift = MaxShift(centroids, next)

	err = c.store.Save(ctx, next)
	if err != nil {
		return nil, 0, phaseError(PhasePersist, iteration, errors.Join(ErrStorage, err))
	}
	return next, shift, nil
}
