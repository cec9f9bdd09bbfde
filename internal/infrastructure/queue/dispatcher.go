package queue

import (
	"context"
	"hash/fnv"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/task-manager/internal/core/domain"
	"github.com/99minutos/task-manager/internal/core/ports"
	"github.com/99minutos/task-manager/internal/pkg/metrics"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes due reminders to a fixed set of workers using consistent
// hashing on the task owner, so one user's reminders are delivered in order.
type Dispatcher struct {
	workers []chan *domain.Task
	service ports.ReminderService
	log     zerolog.Logger

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.ReminderService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers:  make([]chan *domain.Task, numWorkers),
		service:  service,
		log:      log,
		inFlight: make(map[string]struct{}),
	}
	for i := range d.workers {
		d.workers[i] = make(chan *domain.Task, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands a task to the worker responsible for its owner. Tasks that
// are already queued or being delivered are skipped. It blocks while the
// worker channel is full and returns false if ctx ends first.
func (d *Dispatcher) Enqueue(ctx context.Context, task *domain.Task) bool {
	if !d.claim(task.ID) {
		return true
	}

	idx := d.shardIndex(task.CreatedBy)
	depth := metrics.RemindersQueueDepth.WithLabelValues(strconv.Itoa(idx))
	depth.Inc()
	select {
	case d.workers[idx] <- task:
		return true
	case <-ctx.Done():
		depth.Dec()
		d.release(task.ID)
		return false
	}
}

// EnqueueBatch enqueues multiple tasks preserving per-owner ordering and
// returns how many were accepted.
func (d *Dispatcher) EnqueueBatch(ctx context.Context, tasks []*domain.Task) int {
	n := 0
	for _, t := range tasks {
		if !d.Enqueue(ctx, t) {
			break
		}
		n++
	}
	return n
}

// shardIndex maps an owner id deterministically to a worker index.
func (d *Dispatcher) shardIndex(ownerID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ownerID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) claim(taskID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, busy := d.inFlight[taskID]; busy {
		return false
	}
	d.inFlight[taskID] = struct{}{}
	return true
}

func (d *Dispatcher) release(taskID string) {
	d.mu.Lock()
	delete(d.inFlight, taskID)
	d.mu.Unlock()
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan *domain.Task) {
	depth := metrics.RemindersQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()

			start := time.Now()
			if err := d.service.Deliver(ctx, task); err != nil {
				d.log.Error().Err(err).
					Str("task_id", task.ID).
					Int("worker_id", id).
					Msg("reminder delivery failed")
			}
			metrics.ReminderDeliveryDuration.Observe(time.Since(start).Seconds())
			d.release(task.ID)
		}
	}
}
