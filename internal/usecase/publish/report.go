package publish

import "adsnow-blog/internal/usecase/index"

// Step names, in execution order.
const (
	StepSerialize  = "serialize"
	StepCredential = "credential"
	StepRevision   = "revision"
	StepWrite      = "write"
	StepVerify     = "verify"
	StepArtifact   = "artifact"
	StepIndexing   = "indexing"
)

// StepResult is the outcome of one pipeline step.
type StepResult struct {
	Step    string `json:"step"`
	Success bool   `json:"success"`
	// Skipped steps did not run. Success is true for them.
	Skipped bool `json:"skipped,omitempty"`
	// Warning marks a step that had a problem which does not fail the run.
	Warning bool   `json:"warning,omitempty"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// Report describes a pipeline run.
//
// Success is true when the content file was written and the write was
// verified (or assumed verified). Artifact and indexing outcomes never
// affect it.
type Report struct {
	RunID     string          `json:"runId"`
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Outcome   string          `json:"outcome,omitempty"`
	CommitSHA string          `json:"commitSha,omitempty"`
	Steps     []StepResult    `json:"steps"`
	Indexing  []index.Outcome `json:"indexing"`

	// Failure is the reason Success is false.
	Failure Failure `json:"-"`
}

// Step returns the result of the named step.
func (r *Report) Step(name string) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Step == name {
			return s, true
		}
	}
	return StepResult{}, false
}

// IndexingFailures returns the number of URLs that could not be submitted.
func (r *Report) IndexingFailures() int {
	n := 0
	for _, o := range r.Indexing {
		if !o.Success {
			n++
		}
	}
	return n
}
