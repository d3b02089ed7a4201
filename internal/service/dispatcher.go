package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/repository"
)

// dispatcher runs transactional notifications on a bounded queue of
// background workers, detached from the request/response cycle. Delivery is
// best effort: failures are logged and retried asynchronously a few times,
// then dropped. There is no ordering between independently enqueued jobs.
type dispatcher struct {
	email      EmailService
	noteRepo   repository.NotificationRepository
	jobs       chan NotificationJob
	workers    int
	maxRetries int
}

func NewDispatcher(email EmailService, noteRepo repository.NotificationRepository, workers, queueSize, maxRetries int) Dispatcher {
	return &dispatcher{
		email:      email,
		noteRepo:   noteRepo,
		jobs:       make(chan NotificationJob, queueSize),
		workers:    workers,
		maxRetries: maxRetries,
	}
}

// Start launches the worker pool. Workers stop when the context is cancelled;
// jobs still queued at that point are abandoned.
func StartDispatcher(ctx context.Context, d Dispatcher) {
	if disp, ok := d.(*dispatcher); ok {
		disp.start(ctx)
	}
}

func (d *dispatcher) start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		go d.worker(ctx, i)
	}
}

func (d *dispatcher) worker(ctx context.Context, id int) {
	logger.Debug("notification worker started", "worker", id)
	for {
		select {
		case <-ctx.Done():
			logger.Debug("notification worker stopping", "worker", id)
			return
		case job := <-d.jobs:
			d.process(ctx, job)
		}
	}
}

func (d *dispatcher) Enqueue(job NotificationJob) {
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	d.submit(job)
}

// submit is the non-blocking hand-off shared by Enqueue and retries. A full
// queue drops the job: delivery is best effort and must never block or fail
// the path that triggered it.
func (d *dispatcher) submit(job NotificationJob) {
	select {
	case d.jobs <- job:
	default:
		logger.Error("notification queue full, dropping job",
			"job_id", job.ID, "to", job.To, "subject", job.Subject)
	}
}

func (d *dispatcher) process(ctx context.Context, job NotificationJob) {
	// Persist the in-app notification once, on first attempt only.
	if job.retries == 0 && job.UserID != nil {
		note := &domain.Notification{
			UserID:     *job.UserID,
			Title:      job.Subject,
			Message:    job.Body,
			Attributes: job.Attributes,
		}
		if err := d.noteRepo.Create(ctx, note); err != nil {
			logger.Error("failed to persist notification",
				"job_id", job.ID, "user_id", *job.UserID, "error", err)
		}
	}

	if err := d.email.Send(ctx, job.To, job.Subject, job.Body); err != nil {
		logger.Error("failed to send notification email",
			"job_id", job.ID, "to", job.To, "attempt", job.retries+1, "error", err)

		if job.retries < d.maxRetries {
			job.retries++
			backoff := time.Duration(job.retries*job.retries) * time.Second
			time.AfterFunc(backoff, func() {
				d.submit(job)
			})
			return
		}
		logger.Error("notification dropped after retries",
			"job_id", job.ID, "to", job.To, "retries", job.retries)
		return
	}

	logger.Debug("notification sent", "job_id", job.ID, "to", job.To)
}
