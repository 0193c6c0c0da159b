package merge

import "time"

// State identifies the orchestrator's position in the pipeline.
type State string

const (
	// StateValidating covers request checks and input probing.
	StateValidating State = "validating"
	// StateEncoding covers the concat pass producing the merged stream.
	StateEncoding State = "encoding"
	// StateTagging covers the metadata embed pass and output verification.
	StateTagging State = "tagging"
	// StateDone is terminal: the output has been published.
	StateDone State = "done"
	// StateFailed is terminal: the pipeline aborted and temps were cleaned.
	StateFailed State = "failed"
)

// Event reports orchestrator progress to the caller. State-only events mark
// stage transitions; probe events additionally carry a 1-based Index, the
// Total file count, and the probed file's Path and Duration.
type Event struct {
	State    State
	Index    int
	Total    int
	Path     string
	Duration time.Duration
}
