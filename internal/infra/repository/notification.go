package repository

import (
	"context"

	"storefront/internal/infra"
	"storefront/internal/infra/db"
	"storefront/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type NotificationRepository struct {
	db db.DBTX
}

func NewNotificationRepository(dbtx db.DBTX) *NotificationRepository {
	return &NotificationRepository{db: dbtx}
}

func (r *NotificationRepository) Create(ctx context.Context, recipientID uuid.UUID, kind, title, body string, meta []byte, actionURL *string) error {
	if len(meta) == 0 {
		meta = []byte(`{}`)
	}

	_, err := r.db.Exec(ctx, `
		INSERT INTO notifications (recipient_id, type, title, body, meta, action_url)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		recipientID, kind, title, body, meta, pgconv.StringPtrToPgtype(actionURL))
	if err != nil {
		return infra.WrapRepoErr("failed to create notification", err)
	}
	return nil
}
