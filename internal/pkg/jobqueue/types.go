package jobqueue

import (
	"encoding/json"
	"time"
)

// JobType defines the type of job
type JobType string

const (
	JobTypeTrialReminder JobType = "trial_reminder"
	JobTypeStateRefresh  JobType = "state_refresh"
)

// JobStatus defines the status of a job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
	JobStatusRetrying   JobStatus = "retrying"
)

// Job represents a background job
type Job struct {
	ID          string                 `json:"id"`
	Type        JobType                `json:"type"`
	Status      JobStatus              `json:"status"`
	Payload     map[string]interface{} `json:"payload"`
	CreatedAt   time.Time              `json:"created_at"`
	UpdatedAt   time.Time              `json:"updated_at"`
	ProcessedAt *time.Time             `json:"processed_at,omitempty"`
	CompletedAt *time.Time             `json:"completed_at,omitempty"`
	ErrorMsg    string                 `json:"error_msg,omitempty"`
	RetryCount  int                    `json:"retry_count"`
	MaxRetries  int                    `json:"max_retries"`
}

// TrialReminderJobPayload contains the payload for trial reminder mails
type TrialReminderJobPayload struct {
	TenantID   uint   `json:"tenant_id"`
	TenantName string `json:"tenant_name"`
	Email      string `json:"email"`
	DaysLeft   int    `json:"days_left"`
}

// ToMap converts the payload to a map for storage
func (p TrialReminderJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"tenant_id":   p.TenantID,
		"tenant_name": p.TenantName,
		"email":       p.Email,
		"days_left":   p.DaysLeft,
	}
}

// TrialReminderJobPayloadFromMap creates a payload from a map
func TrialReminderJobPayloadFromMap(data map[string]interface{}) (*TrialReminderJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload TrialReminderJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// StateRefreshJobPayload contains the payload for subscription state refresh jobs
type StateRefreshJobPayload struct {
	TenantID uint `json:"tenant_id"`
}

// ToMap converts the payload to a map for storage
func (p StateRefreshJobPayload) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"tenant_id": p.TenantID,
	}
}

// StateRefreshJobPayloadFromMap creates a payload from a map
func StateRefreshJobPayloadFromMap(data map[string]interface{}) (*StateRefreshJobPayload, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var payload StateRefreshJobPayload
	err = json.Unmarshal(jsonData, &payload)
	return &payload, err
}

// IsRetryable checks if the job can be retried
func (j *Job) IsRetryable() bool {
	return j.Status == JobStatusFailed && j.RetryCount < j.MaxRetries
}

// MarkAsProcessing updates the job status to processing
func (j *Job) MarkAsProcessing() {
	now := time.Now()
	j.Status = JobStatusProcessing
	j.UpdatedAt = now
	j.ProcessedAt = &now
}

// MarkAsCompleted updates the job status to completed
func (j *Job) MarkAsCompleted() {
	now := time.Now()
	j.Status = JobStatusCompleted
	j.UpdatedAt = now
	j.CompletedAt = &now
	j.ErrorMsg = ""
}

// MarkAsFailed updates the job status to failed
func (j *Job) MarkAsFailed(errorMsg string) {
	j.Status = JobStatusFailed
	j.UpdatedAt = time.Now()
	j.ErrorMsg = errorMsg
	j.RetryCount++
}

// MarkAsRetrying updates the job status to retrying
func (j *Job) MarkAsRetrying() {
	j.Status = JobStatusRetrying
	j.UpdatedAt = time.Now()
}
