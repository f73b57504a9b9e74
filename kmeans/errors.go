package kmeans

import (
	"errors"
	"fmt"
)

var (
	// ErrInput marks a degenerate or missing input: empty buffer, bad shape, or k outside [1, N].
	ErrInput = errors.New("invalid input")
	// ErrStorage marks a failure to persist or load a centroid set.
	ErrStorage = errors.New("centroid storage failed")
	// ErrWorker marks an unexpected fault inside a map or reconstruct task.
	ErrWorker = errors.New("worker failed")
)

type Phase string

const (
	PhaseInitialize  Phase = "initialize"
	PhasePartition   Phase = "partition"
	PhaseMap         Phase = "map"
	PhaseReduce      Phase = "reduce"
	PhasePersist     Phase = "persist"
	PhaseReconstruct Phase = "reconstruct"
)

// PhaseError reports the phase and iteration in which a run was aborted.
// Iteration is -1 for phases outside the iteration loop.
//
// The underlying error can be accessed via errors.Unwrap.
type PhaseError struct {
	Phase     Phase
	Iteration int
	Err       error
}

func (e *PhaseError) Error() string {
	if e.Iteration < 0 {
		return fmt.Sprintf("%s phase failed: %v", e.Phase, e.Err)
	}
	return fmt.Sprintf("%s phase failed at iteration %d: %v", e.Phase, e.Iteration, e.Err)
}

func (e *PhaseError) Unwrap() error { return e.Err }

func phaseError(phase Phase, iteration int, err error) error {
	return &PhaseError{Phase: phase, Iteration: iteration, Err: err}
}
