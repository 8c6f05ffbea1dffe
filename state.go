package docrag

import (
	"fmt"
	"sync"
	"time"
)

// Status is the lifecycle phase of the ingestion pipeline.
type Status string

// Pipeline statuses. A run starts from idle or a terminal status and ends
// in exactly one of completed or failed.
const (
	StatusIdle      Status = "idle"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// StateSnapshot is a point-in-time copy of the pipeline state, safe to
// serialize for status reporting.
type StateSnapshot struct {
	IsRunning bool       `json:"isRunning"`
	Status    Status     `json:"status"`
	Progress  string     `json:"progress"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
	Error     string     `json:"error,omitempty"`
}

// State is the process-wide pipeline state machine. It is the single-flight
// guard for pipeline runs: TryStart is an atomic check-and-set, so at most
// one run observes isRunning == true at a time.
//
// State is safe for concurrent use by multiple goroutines.
type State struct {
	mu        sync.Mutex
	running   bool
	status    Status
	progress  string
	startTime *time.Time
	endTime   *time.Time
	err       string
}

// NewState returns an idle State.
func NewState() *State {
	return &State{
		status:   StatusIdle,
		progress: "Not started",
	}
}

// TryStart transitions to running if no run is in flight. It returns false,
// leaving the state untouched, while a run is in progress. On success the
// start timestamp is recorded and any prior error and end time are cleared.
func (s *State) TryStart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return false
	}

	now := time.Now()
	s.running = true
	s.status = StatusRunning
	s.progress = "Initializing pipeline"
	s.startTime = &now
	s.endTime = nil
	s.err = ""
	return true
}

// SetProgress updates the human-readable progress string of the current run.
func (s *State) SetProgress(progress string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress = progress
}

// Complete transitions the run to the completed terminal state.
func (s *State) Complete(summary string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.status = StatusCompleted
	s.progress = summary
	s.endTime = &now
}

// Fail transitions the run to the failed terminal state, capturing the error.
func (s *State) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	s.status = StatusFailed
	s.progress = fmt.Sprintf("Failed with error: %s", err)
	s.err = err.Error()
	s.endTime = &now
}

// Stop clears the running flag. The pipeline driver defers it so the flag is
// cleared regardless of how the run ends.
func (s *State) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.running = false
}

// Snapshot returns a copy of the current state.
func (s *State) Snapshot() StateSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := StateSnapshot{
		IsRunning: s.running,
		Status:    s.status,
		Progress:  s.progress,
		Error:     s.err,
	}
	if s.startTime != nil {
		t := *s.startTime
		snap.StartTime = &t
	}
	if s.endTime != nil {
		t := *s.endTime
		snap.EndTime = &t
	}
	return snap
}
