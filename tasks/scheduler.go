package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
)

// JobFunc is one iteration of a background job.
type JobFunc func(ctx context.Context) error

type job struct {
	name     string
	interval time.Duration
	run      JobFunc
}

// Scheduler runs named jobs on fixed intervals until stopped. A slow
// iteration delays the next tick rather than overlapping it.
type Scheduler struct {
	mu       sync.Mutex
	jobs     map[string]*job
	order    []string
	stopChan chan struct{}
	wg       sync.WaitGroup
	running  bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		jobs:     make(map[string]*job),
		stopChan: make(chan struct{}),
	}
}

// Add registers a job. Jobs with a non-positive interval are ignored.
func (s *Scheduler) Add(name string, interval time.Duration, run JobFunc) {
	if interval <= 0 {
		log.Printf("Skipping job %s: interval must be positive", name)
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[name]; !exists {
		s.order = append(s.order, name)
	}
	s.jobs[name] = &job{name: name, interval: interval, run: run}
}

// Jobs lists the registered job names in registration order.
func (s *Scheduler) Jobs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.order...)
}

// Start launches one goroutine per job.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	s.running = true
	for _, name := range s.order {
		j := s.jobs[name]
		s.wg.Add(1)
		go s.loop(ctx, j)
	}
	log.Printf("Scheduler started with %d job(s)", len(s.order))
}

// Stop signals every job and waits for in-flight iterations to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stopChan)
	s.mu.Unlock()

	s.wg.Wait()
	log.Println("Scheduler stopped")
}

// RunNow runs a job once, outside its schedule.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	j, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown job %q", name)
	}
	return j.run(ctx)
}

func (s *Scheduler) loop(ctx context.Context, j *job) {
	defer s.wg.Done()
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.runOnce(ctx, j)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context, j *job) {
	defer func() {
		if r := recover(); r != nil {
			log.WithField("job", j.name).Errorf("Job panicked: %v", r)
		}
	}()

	start := time.Now()
	if err := j.run(ctx); err != nil {
		log.WithField("job", j.name).WithError(err).Error("Job failed")
		return
	}
	log.WithFields(log.Fields{"job": j.name, "took": time.Since(start)}).Debug("Job finished")
}
