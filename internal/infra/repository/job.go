package repository

import (
	"context"
	"time"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
)

type JobRepository struct {
	db db.DBTX
}

func NewJobRepository(dbtx db.DBTX) *JobRepository {
	return &JobRepository{db: dbtx}
}

func (r *JobRepository) DuePending(ctx context.Context, now time.Time) ([]*shared.JobSnapshot, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, type, scheduled_at, status, data
		FROM jobs
		WHERE status = 'Pending' AND scheduled_at <= $1
		ORDER BY scheduled_at`,
		now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list due jobs", err)
	}
	defer rows.Close()

	var jobs []*shared.JobSnapshot
	for rows.Next() {
		var j shared.JobSnapshot
		var status string
		if err := rows.Scan(&j.ID, &j.Name, &j.Type, &j.ScheduledAt, &status, &j.Data); err != nil {
			return nil, infra.WrapRepoErr("failed to scan job row", err)
		}
		j.Status = shared.JobStatus(status)
		jobs = append(jobs, &j)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate job rows", err)
	}

	return jobs, nil
}

// TransitionStatus doubles as the claim: only one dispatcher instance wins
// the Pending -> Active update for a given job.
func (r *JobRepository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to shared.JobStatus) (bool, error) {
	tag, err := r.db.Exec(ctx, `
		UPDATE jobs
		SET status = $3, updated_at = now()
		WHERE id = $1 AND status = $2`,
		id, string(from), string(to))
	if err != nil {
		return false, infra.WrapRepoErr("failed to transition job status", err)
	}
	return tag.RowsAffected() > 0, nil
}
