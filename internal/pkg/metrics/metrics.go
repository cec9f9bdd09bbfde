// Package metrics defines the custom Prometheus metrics of the task manager
// API. It is the single source of truth for metric names, labels, and help
// strings.
//
// Metrics are registered with the default Prometheus registry on package
// load and exposed on /metrics next to the echoprometheus HTTP metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskmanager"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register and login attempts.
// Labels:
//   - action: "register" or "login"
//   - result: "success", "duplicate", "invalid_credentials" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of register and login attempts, by outcome.",
	},
	[]string{"action", "result"},
)

// ── Task metrics ──────────────────────────────────────────────────────────────

// TaskOperationsTotal counts task use-case invocations.
// Labels:
//   - operation: "create", "list", "get", "update" or "delete"
//   - result: "success", "not_found" or "error"
var TaskOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_operations_total",
		Help:      "Total number of task operations, by operation and outcome.",
	},
	[]string{"operation", "result"},
)

// TaskIdempotencyTotal counts Idempotency-Key lookups on task creation.
// Label:
//   - result: "hit" (replayed) or "miss" (new task created)
var TaskIdempotencyTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_idempotency_total",
		Help:      "Total number of idempotency checks on task creation, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ── Reminder metrics ──────────────────────────────────────────────────────────

// RemindersDueTotal counts tasks found due by the reminder scan.
var RemindersDueTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_due_total",
		Help:      "Total number of due reminders picked up by the scheduler.",
	},
)

// RemindersDeliveredTotal counts reminder deliveries.
// Label:
//   - result: "success" or "error"
var RemindersDeliveredTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reminders_delivered_total",
		Help:      "Total number of reminder deliveries, by outcome.",
	},
	[]string{"result"},
)

// RemindersQueueDepth tracks the number of reminders waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var RemindersQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "reminders_queue_depth",
		Help:      "Current number of reminders pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ReminderDeliveryDuration measures how long a single reminder takes from
// dequeue to the reminded marker being stored.
var ReminderDeliveryDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "reminder_delivery_duration_seconds",
		Help:      "Duration of reminder delivery from dequeue to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
)
