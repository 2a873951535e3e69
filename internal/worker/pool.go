// Package worker provides background processing for persisted audio
// artifacts.
package worker

import (
	"log"
	"os"
	"sync"
)

// Job represents one persisted asset awaiting analysis.
type Job struct {
	AssetPath string
}

// Pool manages background workers that analyze generated beats after
// they land on disk. Analysis is advisory; a full queue drops the job.
type Pool struct {
	jobs chan Job
	wg   sync.WaitGroup
}

// NewPool creates a pool with the given queue size.
func NewPool(queueSize int) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{jobs: make(chan Job, queueSize)}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for job := range p.jobs {
				p.processJob(job)
			}
		}()
	}
}

// Stop waits for workers to finish after closing the queue.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a job without blocking.
func (p *Pool) Submit(job Job) {
	select {
	case p.jobs <- job:
	default:
		log.Printf("WARN worker: dropping analysis job for %s", job.AssetPath)
	}
}

func (p *Pool) processJob(job Job) {
	f, err := os.Open(job.AssetPath)
	if err != nil {
		log.Printf("WARN worker: open %s: %v", job.AssetPath, err)
		return
	}
	defer f.Close()

	energy, err := AnalyzeEnergyFunc(f)
	if err != nil {
		log.Printf("WARN worker: analyze %s: %v", job.AssetPath, err)
		return
	}
	log.Printf("worker: analyzed %s energy=%.2f", job.AssetPath, energy)
}
