package operations

import (
	"sync"
	"time"

	"fleetcli/internal/validation"
	"fleetcli/pkg/contracts/domain"
)

// OperationStatus represents the overall pipeline run status
type OperationStatus string

const (
	OperationStatusPending   OperationStatus = "pending"
	OperationStatusRunning   OperationStatus = "running"
	OperationStatusCompleted OperationStatus = "completed"
	OperationStatusFailed    OperationStatus = "failed"
)

// OperationState carries the data flowing between pipeline stages along
// with per-stage runtime bookkeeping. Stages run sequentially, so data
// fields are written by one stage and read by later ones; the mutex
// guards the bookkeeping observed from outside the run.
type OperationState struct {
	mu sync.RWMutex

	ID        string          `json:"id"`
	Status    OperationStatus `json:"status"`
	StartTime time.Time       `json:"start_time"`
	EndTime   *time.Time      `json:"end_time,omitempty"`

	Stages map[string]*StageState `json:"stages"`

	// Data handed from stage to stage.
	Tables     *domain.SourceTables   `json:"-"`
	Facts      []domain.FactRecord    `json:"-"`
	Metrics    []domain.VesselMetrics `json:"-"`
	Validation *validation.Result     `json:"-"`

	Error error `json:"error,omitempty"`
}

// NewOperationState creates a new operation state
func NewOperationState(id string) *OperationState {
	return &OperationState{
		ID:        id,
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		Stages:    make(map[string]*StageState),
	}
}

// Start marks the operation as running
func (s *OperationState) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Status = OperationStatusRunning
	s.StartTime = time.Now()
}

// Complete marks the operation as completed
func (s *OperationState) Complete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = OperationStatusCompleted
}

// Fail marks the operation as failed
func (s *OperationState) Fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	s.EndTime = &now
	s.Status = OperationStatusFailed
	s.Error = err
}

// GetStatus returns the current operation status
func (s *OperationState) GetStatus() OperationStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Status
}

// SetStage registers a stage state under its ID
func (s *OperationState) SetStage(stage *StageState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Stages[stage.ID] = stage
}

// GetStage returns the state for a stage ID, or nil if unknown
func (s *OperationState) GetStage(id string) *StageState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.Stages[id]
}

// Duration returns the total run time so far
func (s *OperationState) Duration() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.EndTime != nil {
		return s.EndTime.Sub(s.StartTime)
	}
	return time.Since(s.StartTime)
}
