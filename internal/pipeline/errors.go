package pipeline

import "fmt"

// Stage identifies which step of a pipeline run failed.
type Stage int

const (
	StageCompletion Stage = iota
	StageExtraction
	StageNormalization
)

func (s Stage) String() string {
	switch s {
	case StageCompletion:
		return "completion"
	case StageExtraction:
		return "extraction"
	case StageNormalization:
		return "normalization"
	default:
		return "unknown"
	}
}

// StageError wraps a failure with the operation (generate or modify) and
// the stage that produced it, so callers can discriminate by kind instead
// of matching on message strings.
type StageError struct {
	Op    string
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}
