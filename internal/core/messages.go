package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
	"github.com/mingx/socialnet/models"
)

func scanMessage(rows *sql.Rows) (*models.Message, error) {
	var message = &models.Message{}

	if err := rows.Scan(
		&message.ID,
		&message.SenderID,
		&message.RecipientID,
		&message.Content,
		&message.CreatedAt,
		&message.IsRead,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return message, nil
}

// CreateMessage stores a direct message. The sender id comes from the
// authenticated actor, never from the request payload.
func (c *Core) CreateMessage(ctx context.Context, message *models.Message) (*models.Message, error) {
	const insertSQL = `
		INSERT INTO messages (sender_id, recipient_id, content, created_at, is_read)
		VALUES ($1, $2, $3, now(), false)
		RETURNING id, sender_id, recipient_id, content, created_at, is_read
	`

	newMessage, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, scanMessage,
		message.SenderID, message.RecipientID, message.Content)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return newMessage, nil
}

// GetMessages returns every message the user sent or received, in insertion
// order.
func (c *Core) GetMessages(ctx context.Context, userID int64) ([]*models.Message, error) {
	const query = `
		SELECT id, sender_id, recipient_id, content, created_at, is_read
		FROM messages
		WHERE sender_id = $1 OR recipient_id = $1
		ORDER BY id
	`

	messages, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanMessage, userID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return messages, nil
}
