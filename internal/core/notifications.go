package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/models"
)

func scanNotification(rows *sql.Rows) (*models.Notification, error) {
	var notification = &models.Notification{}

	if err := rows.Scan(
		&notification.ID,
		&notification.RecipientID,
		&notification.Message,
		&notification.CreatedAt,
		&notification.IsRead,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return notification, nil
}

func (c *Core) CreateNotification(ctx context.Context, recipientID int64, message string) (*models.Notification, error) {
	const insertSQL = `
		INSERT INTO notifications (recipient_id, message, created_at, is_read)
		VALUES ($1, $2, now(), false)
		RETURNING id, recipient_id, message, created_at, is_read
	`

	notification, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, scanNotification,
		recipientID, message)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return notification, nil
}

func (c *Core) GetNotifications(ctx context.Context, recipientID int64) ([]*models.Notification, error) {
	const query = `
		SELECT id, recipient_id, message, created_at, is_read
		FROM notifications
		WHERE recipient_id = $1
		ORDER BY created_at DESC, id DESC
	`

	notifications, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanNotification, recipientID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return notifications, nil
}

// MarkNotificationRead flips is_read, scoped to the recipient so one user
// cannot touch (or probe for) another user's notifications.
func (c *Core) MarkNotificationRead(ctx context.Context, recipientID, notificationID int64) error {
	const updateSQL = `
		UPDATE notifications
		SET is_read = true
		WHERE id = $1 AND recipient_id = $2
	`

	affected, err := databaseutils.ExecuteUpdate(c.sqlTemplate, ctx, updateSQL, notificationID, recipientID)
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(NoRecordFound)
	}

	return nil
}
