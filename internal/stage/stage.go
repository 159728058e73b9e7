// Package stage defines the uniform contract every assessment stage
// implements, replacing dynamic tool dispatch with an explicit ordered
// list of stage executions.
package stage

import "fmt"

// Info describes a stage's identity and intent.
type Info struct {
	ID          string
	Name        string
	Description string
	Version     string
}

// Validate ensures the info block is well-formed.
func (i Info) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("stage: id is required")
	}
	if i.Name == "" {
		return fmt.Errorf("stage: name is required for %s", i.ID)
	}
	if i.Version == "" {
		return fmt.Errorf("stage: version is required for %s", i.ID)
	}
	return nil
}

// Result captures the outcome of a stage execution.
type Result struct {
	Status  Status
	Message string
}

// Status enumerates stage run outcomes.
type Status string

const (
	// StatusCompleted means the stage contributed its assessment section.
	StatusCompleted Status = "completed"
	// StatusSkipped means a required input was unavailable, usually
	// because an upstream stage failed; the run continues regardless.
	StatusSkipped Status = "skipped"
	// StatusFailed means the stage could not produce its section.
	StatusFailed Status = "failed"
)

// Stage is implemented by every assessment step.
type Stage interface {
	Info() Info
	Run(ctx *Context) (Result, error)
}
