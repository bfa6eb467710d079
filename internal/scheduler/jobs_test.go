//go:build unit

package scheduler_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"storefront/internal/pkg/clock"
	"storefront/internal/scheduler"
	"storefront/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type fakeJobRepo struct {
	mu   sync.Mutex
	jobs map[uuid.UUID]*shared.JobSnapshot
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*shared.JobSnapshot)}
}

func (r *fakeJobRepo) add(j shared.JobSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := j
	r.jobs[j.ID] = &cp
}

func (r *fakeJobRepo) status(id uuid.UUID) shared.JobStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.jobs[id].Status
}

func (r *fakeJobRepo) DuePending(_ context.Context, now time.Time) ([]*shared.JobSnapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var due []*shared.JobSnapshot
	for _, j := range r.jobs {
		if j.Status == shared.JobPending && !j.ScheduledAt.After(now) {
			cp := *j
			due = append(due, &cp)
		}
	}
	return due, nil
}

func (r *fakeJobRepo) TransitionStatus(_ context.Context, id uuid.UUID, from, to shared.JobStatus) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.Status != from {
		return false, nil
	}
	j.Status = to
	return true, nil
}

type createdNotification struct {
	RecipientID uuid.UUID
	Kind        string
	Title       string
	Body        string
}

type fakeNotifRepo struct {
	mu      sync.Mutex
	created []createdNotification
}

func (r *fakeNotifRepo) Create(_ context.Context, recipientID uuid.UUID, kind, title, body string, _ []byte, _ *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, createdNotification{
		RecipientID: recipientID, Kind: kind, Title: title, Body: body,
	})
	return nil
}

func (r *fakeNotifRepo) all() []createdNotification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]createdNotification(nil), r.created...)
}

type fakeAdminDirectory struct {
	ids []uuid.UUID
}

func (d *fakeAdminDirectory) AdminIDs(context.Context) ([]uuid.UUID, error) {
	return d.ids, nil
}

type fakeSweepBus struct {
	mu     sync.Mutex
	topics []string
}

func (b *fakeSweepBus) Emit(_ context.Context, topic string, _ any) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.topics = append(b.topics, topic)
	return nil
}

func (b *fakeSweepBus) emitted(topic string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, t := range b.topics {
		if t == topic {
			n++
		}
	}
	return n
}

type JobSweeperTestSuite struct {
	suite.Suite
	jobs    *fakeJobRepo
	notifs  *fakeNotifRepo
	admins  *fakeAdminDirectory
	bus     *fakeSweepBus
	clk     *clock.MockClock
	sweeper *scheduler.JobSweeper

	adminA uuid.UUID
	adminB uuid.UUID
}

func (s *JobSweeperTestSuite) SetupTest() {
	s.jobs = newFakeJobRepo()
	s.notifs = &fakeNotifRepo{}
	s.adminA = uuid.New()
	s.adminB = uuid.New()
	s.admins = &fakeAdminDirectory{ids: []uuid.UUID{s.adminA, s.adminB}}
	s.bus = &fakeSweepBus{}
	s.clk = clock.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	s.sweeper = scheduler.NewJobSweeper(s.jobs, s.notifs, s.admins, s.bus, s.clk)
}

func TestJobSweeperSuite(t *testing.T) {
	suite.Run(t, new(JobSweeperTestSuite))
}

func (s *JobSweeperTestSuite) notificationJob(name string, scheduledAt time.Time, payload map[string]any) shared.JobSnapshot {
	data, err := json.Marshal(payload)
	s.Require().NoError(err)
	return shared.JobSnapshot{
		ID:          uuid.New(),
		Name:        name,
		Type:        shared.JobTypeNotification,
		ScheduledAt: scheduledAt,
		Status:      shared.JobPending,
		Data:        data,
	}
}

func (s *JobSweeperTestSuite) TestSweep() {
	s.Run("success: due job fans out to every admin and completes", func() {
		s.SetupTest()
		j := s.notificationJob("weekly-report", s.clk.Now().Add(-time.Minute), map[string]any{
			"title": "Weekly report ready",
			"body":  "See the dashboard",
		})
		s.jobs.add(j)

		s.Require().NoError(s.sweeper.Sweep(context.Background()))

		s.Equal(shared.JobCompleted, s.jobs.status(j.ID))
		s.Equal(1, s.bus.emitted("job_notification"))

		created := s.notifs.all()
		s.Require().Len(created, 2)
		recipients := map[uuid.UUID]bool{created[0].RecipientID: true, created[1].RecipientID: true}
		s.True(recipients[s.adminA])
		s.True(recipients[s.adminB])
		s.Equal("Weekly report ready", created[0].Title)
		s.Equal("job", created[0].Kind)
	})

	s.Run("success: empty title falls back to the job name", func() {
		s.SetupTest()
		j := s.notificationJob("stock-audit", s.clk.Now().Add(-time.Minute), map[string]any{
			"body": "Audit finished",
		})
		s.jobs.add(j)

		s.Require().NoError(s.sweeper.Sweep(context.Background()))

		created := s.notifs.all()
		s.Require().NotEmpty(created)
		s.Equal("stock-audit", created[0].Title)
	})

	s.Run("future jobs are left untouched", func() {
		s.SetupTest()
		j := s.notificationJob("later", s.clk.Now().Add(time.Hour), map[string]any{"body": "x"})
		s.jobs.add(j)

		s.Require().NoError(s.sweeper.Sweep(context.Background()))

		s.Equal(shared.JobPending, s.jobs.status(j.ID))
		s.Empty(s.notifs.all())
	})

	s.Run("job claimed by another sweeper is skipped", func() {
		s.SetupTest()
		j := s.notificationJob("contested", s.clk.Now().Add(-time.Minute), map[string]any{"body": "x"})
		j.Status = shared.JobActive
		s.jobs.add(j)

		s.Require().NoError(s.sweeper.Sweep(context.Background()))

		s.Equal(shared.JobActive, s.jobs.status(j.ID))
		s.Empty(s.notifs.all())
	})

	s.Run("malformed payload marks the job failed", func() {
		s.SetupTest()
		j := shared.JobSnapshot{
			ID:          uuid.New(),
			Name:        "broken",
			Type:        shared.JobTypeNotification,
			ScheduledAt: s.clk.Now().Add(-time.Minute),
			Status:      shared.JobPending,
			Data:        []byte(`{not json`),
		}
		s.jobs.add(j)

		s.Require().NoError(s.sweeper.Sweep(context.Background()))

		s.Equal(shared.JobFailed, s.jobs.status(j.ID))
		s.Empty(s.notifs.all())
	})

	s.Run("unknown job type completes without side effects", func() {
		s.SetupTest()
		j := shared.JobSnapshot{
			ID:          uuid.New(),
			Name:        "mystery",
			Type:        "reindex",
			ScheduledAt: s.clk.Now().Add(-time.Minute),
			Status:      shared.JobPending,
			Data:        []byte(`{}`),
		}
		s.jobs.add(j)

		s.Require().NoError(s.sweeper.Sweep(context.Background()))

		s.Equal(shared.JobCompleted, s.jobs.status(j.ID))
		s.Empty(s.notifs.all())
	})
}
