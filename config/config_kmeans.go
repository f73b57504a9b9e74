package config

import "runtime"

type KMeans struct {
	K                    int     `json:"k"`
	MaxIterations        int     `json:"max_iterations"`
	ConvergenceThreshold *float64 `json:"convergence_threshold,omitempty"`
	Workers              int     `json:"workers"`
	Seed                 int64   `json:"seed"`
	Resume               bool    `json:"resume"`
}

func (c KMeans) GetK() int {
	if c.K <= 0 {
		return DEFAULT_K
	}
	return c.K
}

func (c KMeans) GetMaxIterations() int {
	if c.MaxIterations <= 0 {
		return DEFAULT_MAX_ITERATIONS
	}
	return c.MaxIterations
}

// GetThreshold returns the configured convergence threshold, or the default
// when none is set. Zero and negative values are returned as given.
func (c KMeans) GetThreshold() float64 {
	if c.ConvergenceThreshold == nil {
		return DEFAULT_CONVERGENCE_THRESHOLD
	}
	return *c.ConvergenceThreshold
}

// GetWorkers returns the map phase parallelism, defaulting to the CPU count.
func (c KMeans) GetWorkers() int {
	if c.Workers <= 0 {
		return runtime.NumCPU()
	}
	return c.Workers
}
