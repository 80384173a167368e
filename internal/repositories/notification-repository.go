package repositories

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"alumni-system/internal/entities"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/types"
)

type NotificationRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, notification *entities.Notification) (uint64, error)
	GetByUser(ctx context.Context, userID uint64, filter types.Filter) ([]entities.Notification, uint64, error)
	UnreadCount(ctx context.Context, userID uint64) (uint64, error)
	MarkRead(ctx context.Context, userID, notificationID uint64) error
	MarkAllRead(ctx context.Context, userID uint64) error
}

type NotificationRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewNotificationRepository(storage *pgxpool.Pool, logger *zap.Logger) NotificationRepositoryInterface {
	return &NotificationRepository{storage: storage, logger: logger}
}

func (r *NotificationRepository) Create(ctx context.Context, tx pgx.Tx, notification *entities.Notification) (uint64, error) {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}

	var newID uint64
	err := q.QueryRow(ctx, `
		INSERT INTO notifications (user_id, title, message, type, read, created_at)
		VALUES ($1, $2, $3, $4, FALSE, NOW())
		RETURNING id
	`, notification.UserID, notification.Title, notification.Message, notification.Type).Scan(&newID)

	return newID, err
}

func (r *NotificationRepository) GetByUser(ctx context.Context, userID uint64, filter types.Filter) ([]entities.Notification, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	var total uint64
	sqlCount, argsCount, err := psql.Select("COUNT(n.id)").
		From("notifications AS n").
		Where(sq.Eq{"n.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Notification{}, 0, nil
	}

	query, args, err := psql.Select(
		"n.id", "n.user_id", "n.title", "n.message", "n.type", "n.read", "n.created_at", "n.read_at",
	).From("notifications AS n").
		Where(sq.Eq{"n.user_id": userID}).
		OrderBy("n.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	notifications := make([]entities.Notification, 0, filter.Limit)
	for rows.Next() {
		var n entities.Notification
		var readAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Type, &n.Read, &n.CreatedAt, &readAt); err != nil {
			return nil, 0, fmt.Errorf("ошибка сканирования notification: %w", err)
		}
		if readAt.Valid {
			n.ReadAt = &readAt.Time
		}
		notifications = append(notifications, n)
	}

	return notifications, total, rows.Err()
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, userID uint64) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(id) FROM notifications WHERE user_id = $1 AND read = FALSE`, userID,
	).Scan(&count)
	return count, err
}

// MarkRead помечает уведомление прочитанным. Принадлежность
// пользователю проверяется в самом запросе.
func (r *NotificationRepository) MarkRead(ctx context.Context, userID, notificationID uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE notifications SET read = TRUE, read_at = NOW() WHERE id = $1 AND user_id = $2 AND read = FALSE`,
		notificationID, userID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uint64) error {
	_, err := r.storage.Exec(ctx,
		`UPDATE notifications SET read = TRUE, read_at = NOW() WHERE user_id = $1 AND read = FALSE`,
		userID,
	)
	return err
}
