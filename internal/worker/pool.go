package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const QueueReports = "jobs:reports"

// Job is the generic envelope for all async tasks.
type Job struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// ReportInvalidatePayload asks the report worker to recompute the cached
// daily report for one date.
type ReportInvalidatePayload struct {
	Date string `json:"date"`
}

// Dispatcher enqueues async jobs into Redis lists.
// The worker pool dequeues them via BRPOP.
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher {
	return &Dispatcher{rdb: rdb}
}

// EnqueueReportInvalidate pushes a report-recompute job.
func (d *Dispatcher) EnqueueReportInvalidate(ctx context.Context, date string) error {
	return d.enqueue(ctx, QueueReports, "report:invalidate", ReportInvalidatePayload{Date: date})
}

func (d *Dispatcher) enqueue(ctx context.Context, queue, jobType string, payload interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	job := Job{Type: jobType, Payload: data}
	encoded, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, queue, encoded).Err()
}

// ReportRefresher recomputes and re-caches one day's report. Implemented by
// the report service; declared here so the pool stays free of service
// imports.
type ReportRefresher interface {
	RefreshDaily(ctx context.Context, date string) error
}

// WorkerHandlers bundles the job handlers wired at the composition root.
type WorkerHandlers struct {
	Report ReportRefresher
}

// StartWorkerPool launches numWorkers goroutines consuming the job queues.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, numWorkers int) {
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, handlers, i)
	}
	log.Info().Msgf("worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, handlers *WorkerHandlers, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueReports).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processJob(ctx, handlers, result[0], result[1])
		}
	}
}

func processJob(ctx context.Context, handlers *WorkerHandlers, queue, raw string) {
	var job Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		log.Error().Str("queue", queue).Err(err).Msg("failed to unmarshal job")
		return
	}

	switch job.Type {
	case "report:invalidate":
		var payload ReportInvalidatePayload
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			log.Error().Err(err).Msg("bad report:invalidate payload")
			return
		}
		if handlers == nil || handlers.Report == nil {
			return
		}
		if err := handlers.Report.RefreshDaily(ctx, payload.Date); err != nil {
			log.Error().Err(err).Str("date", payload.Date).Msg("report refresh failed")
			return
		}
		log.Debug().Str("date", payload.Date).Msg("daily report refreshed")
	default:
		log.Warn().Str("type", job.Type).Msg("unknown job type")
	}
}
