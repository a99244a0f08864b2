package jobqueue

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"
)

// Manager manages the global job queue and the periodic sweeps that feed it
type Manager struct {
	queue            *Queue
	trialSweepTicker *time.Ticker
	staleSweepTicker *time.Ticker
	stopCh           chan struct{}
	wg               sync.WaitGroup
	mu               sync.Mutex
	running          bool
	sweeper          *subscriptionSweeper
}

var (
	globalManager *Manager
	managerOnce   sync.Once
)

// GetManager returns the global job queue manager (singleton)
func GetManager(db *gorm.DB) *Manager {
	managerOnce.Do(func() {
		queue := NewQueue(3)
		sweeper := newSubscriptionSweeper(db, queue)
		queue.RegisterProcessor(JobTypeTrialReminder, sweeper.processTrialReminderJob)
		queue.RegisterProcessor(JobTypeStateRefresh, sweeper.processStateRefreshJob)

		globalManager = &Manager{
			queue:   queue,
			sweeper: sweeper,
			stopCh:  make(chan struct{}),
		}
	})
	return globalManager
}

// StartManager creates and starts the global manager.
func StartManager(db *gorm.DB) *Manager {
	m := GetManager(db)
	m.Start()
	return m
}

// GetQueue returns the managed job queue
func (m *Manager) GetQueue() *Queue {
	return m.queue
}

// Start starts the job queue and background sweeps
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return
	}

	// Recreate stop channel for each start cycle so manager can be restarted safely.
	m.stopCh = make(chan struct{})
	m.running = true
	log.Info("[JobQueue Manager] Starting job queue and background sweeps")

	m.queue.Start()

	// Trial reminder sweep: mails tenants whose trial ends within three days
	m.trialSweepTicker = time.NewTicker(1 * time.Hour)
	m.wg.Add(1)
	go m.trialSweepWorker()

	// Stale subscription sweep: re-evaluates active records past their
	// billing date so the poll model converges without a request
	m.staleSweepTicker = time.NewTicker(15 * time.Minute)
	m.wg.Add(1)
	go m.staleSweepWorker()

	log.Info("[JobQueue Manager] Started successfully")
}

// Stop stops the job queue and background sweeps
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running {
		return
	}

	log.Info("[JobQueue Manager] Stopping job queue and background sweeps...")

	if m.trialSweepTicker != nil {
		m.trialSweepTicker.Stop()
	}
	if m.staleSweepTicker != nil {
		m.staleSweepTicker.Stop()
	}

	close(m.stopCh)
	m.running = false

	m.wg.Wait()
	m.queue.Stop()

	log.Info("[JobQueue Manager] Stopped successfully")
}

func (m *Manager) trialSweepWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Trial sweep worker stopping")
			return
		case <-m.trialSweepTicker.C:
			if err := m.sweeper.enqueueTrialReminders(); err != nil {
				log.Errorf("[JobQueue Manager] Trial reminder sweep error: %v", err)
			}
		}
	}
}

func (m *Manager) staleSweepWorker() {
	defer m.wg.Done()
	for {
		select {
		case <-m.stopCh:
			log.Info("[JobQueue Manager] Stale subscription sweep worker stopping")
			return
		case <-m.staleSweepTicker.C:
			if err := m.sweeper.enqueueStaleRefreshes(); err != nil {
				log.Errorf("[JobQueue Manager] Stale subscription sweep error: %v", err)
			}
		}
	}
}

// IsRunning returns whether the manager is currently running
func (m *Manager) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// RunTrialSweepOnce exposes a manual trigger for a single trial reminder sweep.
func (m *Manager) RunTrialSweepOnce() error {
	return m.sweeper.enqueueTrialReminders()
}

// RunStaleSweepOnce exposes a manual trigger for a single stale refresh sweep.
func (m *Manager) RunStaleSweepOnce() error {
	return m.sweeper.enqueueStaleRefreshes()
}
