package jobqueue

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestQueue(t *testing.T, workers int) *Queue {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewQueueWithClient(client, workers)
}

func TestEnqueueJobStoresPendingJob(t *testing.T) {
	q := newTestQueue(t, 1)
	ctx := context.Background()

	payload := StateRefreshJobPayload{TenantID: 42}
	job, err := q.EnqueueJob(JobTypeStateRefresh, payload.ToMap())
	require.NoError(t, err)
	require.NotEmpty(t, job.ID)
	assert.Equal(t, JobStatusPending, job.Status)

	size, err := q.GetQueueSize(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), size)

	stored, err := q.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, JobTypeStateRefresh, stored.Type)

	decoded, err := StateRefreshJobPayloadFromMap(stored.Payload)
	require.NoError(t, err)
	assert.Equal(t, uint(42), decoded.TenantID)
}

func TestWorkerProcessesJob(t *testing.T) {
	q := newTestQueue(t, 1)

	processed := make(chan *Job, 1)
	q.RegisterProcessor(JobTypeTrialReminder, func(_ context.Context, job *Job) error {
		processed <- job
		return nil
	})

	q.Start()
	defer q.Stop()

	payload := TrialReminderJobPayload{TenantID: 7, TenantName: "Trattoria Roma", Email: "roma@example.com", DaysLeft: 2}
	_, err := q.EnqueueJob(JobTypeTrialReminder, payload.ToMap())
	require.NoError(t, err)

	select {
	case job := <-processed:
		decoded, err := TrialReminderJobPayloadFromMap(job.Payload)
		require.NoError(t, err)
		assert.Equal(t, uint(7), decoded.TenantID)
		assert.Equal(t, 2, decoded.DaysLeft)
	case <-time.After(5 * time.Second):
		t.Fatal("job was not processed in time")
	}

	// Completed jobs are removed from Redis entirely
	assert.Eventually(t, func() bool {
		size, err := q.GetProcessingSize(context.Background())
		return err == nil && size == 0
	}, 5*time.Second, 50*time.Millisecond)
}

func TestFailedJobIsMarkedForRetry(t *testing.T) {
	q := newTestQueue(t, 1)

	attempted := make(chan struct{}, 1)
	q.RegisterProcessor(JobTypeStateRefresh, func(_ context.Context, _ *Job) error {
		select {
		case attempted <- struct{}{}:
		default:
		}
		return errors.New("storage down")
	})

	q.Start()
	defer q.Stop()

	payload := StateRefreshJobPayload{TenantID: 9}
	job, err := q.EnqueueJob(JobTypeStateRefresh, payload.ToMap())
	require.NoError(t, err)

	select {
	case <-attempted:
	case <-time.After(5 * time.Second):
		t.Fatal("job was never attempted")
	}

	assert.Eventually(t, func() bool {
		stored, err := q.GetJob(context.Background(), job.ID)
		if err != nil {
			return false
		}
		return stored.Status == JobStatusRetrying && stored.RetryCount == 1
	}, 5*time.Second, 50*time.Millisecond)
}

func TestJobLifecycleMarks(t *testing.T) {
	job := &Job{Status: JobStatusPending, MaxRetries: DefaultMaxRetries}

	job.MarkAsProcessing()
	assert.Equal(t, JobStatusProcessing, job.Status)
	require.NotNil(t, job.ProcessedAt)

	job.MarkAsFailed("boom")
	assert.Equal(t, JobStatusFailed, job.Status)
	assert.Equal(t, 1, job.RetryCount)
	assert.True(t, job.IsRetryable())

	job.RetryCount = job.MaxRetries
	assert.False(t, job.IsRetryable())

	job.MarkAsCompleted()
	assert.Equal(t, JobStatusCompleted, job.Status)
	assert.Empty(t, job.ErrorMsg)
}
