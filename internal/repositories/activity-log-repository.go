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
	"alumni-system/pkg/types"
)

var activityLogFilterMap = map[string]string{
	"userId":     "al.user_id",
	"action":     "al.action",
	"targetType": "al.target_type",
}

// Журнал только дописывается: ни UPDATE, ни DELETE здесь нет.
type ActivityLogRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, logEntry *entities.ActivityLog) (uint64, error)
	GetLogs(ctx context.Context, filter types.Filter) ([]entities.ActivityLog, uint64, error)
}

type ActivityLogRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewActivityLogRepository(storage *pgxpool.Pool, logger *zap.Logger) ActivityLogRepositoryInterface {
	return &ActivityLogRepository{storage: storage, logger: logger}
}

func (r *ActivityLogRepository) Create(ctx context.Context, tx pgx.Tx, logEntry *entities.ActivityLog) (uint64, error) {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}

	var newID uint64
	err := q.QueryRow(ctx, `
		INSERT INTO activity_logs (user_id, action, target_id, target_type, details, ip_address, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING id
	`,
		logEntry.UserID, logEntry.Action, logEntry.TargetID, logEntry.TargetType,
		logEntry.Details, logEntry.IPAddress, logEntry.UserAgent,
	).Scan(&newID)

	return newID, err
}

func (r *ActivityLogRepository) GetLogs(ctx context.Context, filter types.Filter) ([]entities.ActivityLog, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilters := func(b sq.SelectBuilder) sq.SelectBuilder {
		for jsonField, val := range filter.Filter {
			dbCol, ok := activityLogFilterMap[jsonField]
			if !ok {
				continue
			}
			b = b.Where(sq.Eq{dbCol: val})
		}
		return b
	}

	sqlCount, argsCount, err := applyFilters(psql.Select("COUNT(al.id)").From("activity_logs AS al")).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.ActivityLog{}, 0, nil
	}

	query, args, err := applyFilters(psql.Select(
		"al.id", "al.user_id", "al.action", "al.target_id", "al.target_type",
		"al.details", "al.ip_address", "al.user_agent", "al.created_at",
	).From("activity_logs AS al")).
		OrderBy("al.created_at DESC").
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

	logs := make([]entities.ActivityLog, 0, filter.Limit)
	for rows.Next() {
		logEntry, err := scanActivityLog(rows)
		if err != nil {
			return nil, 0, err
		}
		logs = append(logs, *logEntry)
	}

	return logs, total, rows.Err()
}

func scanActivityLog(row pgx.Row) (*entities.ActivityLog, error) {
	var l entities.ActivityLog
	var targetID sql.NullInt64
	var targetType, details, ipAddress, userAgent sql.NullString

	err := row.Scan(
		&l.ID, &l.UserID, &l.Action, &targetID, &targetType,
		&details, &ipAddress, &userAgent, &l.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования activity_log: %w", err)
	}

	if targetID.Valid {
		id := uint64(targetID.Int64)
		l.TargetID = &id
	}
	if targetType.Valid {
		l.TargetType = &targetType.String
	}
	if details.Valid {
		l.Details = &details.String
	}
	if ipAddress.Valid {
		l.IPAddress = &ipAddress.String
	}
	if userAgent.Valid {
		l.UserAgent = &userAgent.String
	}

	return &l, nil
}
