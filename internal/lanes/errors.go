package lanes

import "errors"

// Generation never fails hard. These errors are signals carried on Result
// for logging and telemetry.
var (
	// ErrConfigurationDegenerate means fewer lanes were placed than requested.
	ErrConfigurationDegenerate = errors.New("lane configuration cannot be satisfied")
	// ErrGenerationStalled means a growth wave made no progress and lanes
	// were force-completed.
	ErrGenerationStalled = errors.New("lane growth stalled")
	// ErrValidationFailed means every attempt produced a map that violates
	// lane completeness or defender accessibility.
	ErrValidationFailed = errors.New("map validation failed")
)
