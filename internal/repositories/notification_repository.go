package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopcraft/storefront/internal/models"
	"github.com/shopcraft/storefront/internal/utils"
	"github.com/google/uuid"
)

type NotificationRepository interface {
	CreateNotification(ctx context.Context, notification *models.Notification) error
	UpdateNotification(ctx context.Context, notification *models.Notification) error
	ListNotificationsByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Notification, int, error)
}

type notificationRepository struct {
	DB *sql.DB
}

func NewNotificationRepo(db *sql.DB) NotificationRepository {
	return &notificationRepository{DB: db}
}

func (r *notificationRepository) CreateNotification(ctx context.Context, notification *models.Notification) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		INSERT INTO notifications (id, user_id, type, recipient, subject, content, status, error, created_at, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), $9)
		RETURNING created_at
	`

	return r.DB.QueryRowContext(dbCtx, query,
		notification.ID, notification.UserID, notification.Type, notification.Recipient,
		notification.Subject, notification.Content, notification.Status, notification.Error,
		notification.SentAt).Scan(&notification.CreatedAt)
}

func (r *notificationRepository) UpdateNotification(ctx context.Context, notification *models.Notification) error {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	query := `
		UPDATE notifications
		SET status = $1, error = $2, sent_at = $3
		WHERE id = $4
	`

	result, err := r.DB.ExecContext(dbCtx, query,
		notification.Status, notification.Error, notification.SentAt, notification.ID)
	if err != nil {
		return fmt.Errorf("failed to update notification: %w", err)
	}

	updatedRows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get updated rows: %w", err)
	}

	if updatedRows == 0 {
		return sql.ErrNoRows
	}

	return nil
}

func (r *notificationRepository) ListNotificationsByUser(ctx context.Context, userID uuid.UUID, page, pageSize int) ([]models.Notification, int, error) {
	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var total int

	if err := r.DB.QueryRowContext(dbCtx, `SELECT COUNT(*) FROM notifications WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	offset := (page - 1) * pageSize

	query := `
		SELECT id, user_id, type, recipient, subject, content, status, error, created_at, sent_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.DB.QueryContext(dbCtx, query, userID, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}

	defer rows.Close()

	var notifications []models.Notification

	for rows.Next() {
		var n models.Notification

		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Recipient, &n.Subject, &n.Content,
			&n.Status, &n.Error, &n.CreatedAt, &n.SentAt)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan notification: %w", err)
		}

		notifications = append(notifications, n)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterating notifications: %w", err)
	}

	return notifications, total, nil
}
