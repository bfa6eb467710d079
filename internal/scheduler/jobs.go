package scheduler

import (
	"context"
	"encoding/json"
	"log/slog"

	"storefront/internal/pkg/clock"
	"storefront/internal/usecase/commands"
	"storefront/internal/usecase/shared"
)

// JobSweeper claims due one-shot jobs and executes them. The conditional
// Pending -> Active transition is the claim, so two instances sweeping the
// same table never run the same job twice.
type JobSweeper struct {
	jobs   shared.JobRepository
	notifs shared.NotificationRepository
	admins shared.AdminDirectory
	bus    commands.RealtimeBus
	clock  clock.Clock
}

func NewJobSweeper(
	jobs shared.JobRepository,
	notifs shared.NotificationRepository,
	admins shared.AdminDirectory,
	bus commands.RealtimeBus,
	clk clock.Clock,
) *JobSweeper {
	return &JobSweeper{
		jobs:   jobs,
		notifs: notifs,
		admins: admins,
		bus:    bus,
		clock:  clk,
	}
}

type jobNotificationData struct {
	Title string          `json:"title"`
	Body  string          `json:"body"`
	Meta  json.RawMessage `json:"meta,omitempty"`
}

func (s *JobSweeper) Sweep(ctx context.Context) error {
	due, err := s.jobs.DuePending(ctx, s.clock.Now())
	if err != nil {
		return err
	}

	for _, j := range due {
		claimed, err := s.jobs.TransitionStatus(ctx, j.ID, shared.JobPending, shared.JobActive)
		if err != nil {
			slog.Error("failed to claim job", "job_id", j.ID.String(), "error", err.Error())
			continue
		}
		if !claimed {
			continue
		}

		runErr := s.runJob(ctx, j)

		final := shared.JobCompleted
		if runErr != nil {
			final = shared.JobFailed
			slog.Error("job execution failed",
				"job_id", j.ID.String(),
				"job_name", j.Name,
				"error", runErr.Error())
		}
		if _, err := s.jobs.TransitionStatus(ctx, j.ID, shared.JobActive, final); err != nil {
			slog.Error("failed to finalize job",
				"job_id", j.ID.String(),
				"status", string(final),
				"error", err.Error())
		}
	}

	return nil
}

func (s *JobSweeper) runJob(ctx context.Context, j *shared.JobSnapshot) error {
	switch j.Type {
	case shared.JobTypeNotification:
		return s.runNotificationJob(ctx, j)
	default:
		slog.Warn("skipping job of unknown type", "job_id", j.ID.String(), "type", j.Type)
		return nil
	}
}

// runNotificationJob fans the job's message out to every admin and mirrors
// it on the realtime channel.
func (s *JobSweeper) runNotificationJob(ctx context.Context, j *shared.JobSnapshot) error {
	var data jobNotificationData
	if err := json.Unmarshal(j.Data, &data); err != nil {
		return err
	}
	if data.Title == "" {
		data.Title = j.Name
	}
	meta := []byte(data.Meta)
	if len(meta) == 0 {
		meta = []byte(`{}`)
	}

	if err := s.bus.Emit(ctx, commands.TopicJobNotification, map[string]any{
		"job_id": j.ID,
		"name":   j.Name,
		"title":  data.Title,
		"body":   data.Body,
	}); err != nil {
		slog.Warn("failed to emit job notification event",
			"job_id", j.ID.String(),
			"error", err.Error())
	}

	adminIDs, err := s.admins.AdminIDs(ctx)
	if err != nil {
		return err
	}
	for _, id := range adminIDs {
		if err := s.notifs.Create(ctx, id, "job", data.Title, data.Body, meta, nil); err != nil {
			return err
		}
	}

	return nil
}
