package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"alumni-system/internal/entities"
)

type EducationGoalRepositoryInterface interface {
	ListByUser(ctx context.Context, userID uint64) ([]entities.EducationGoal, error)
	Create(ctx context.Context, record *entities.EducationGoal) (uint64, error)
}

type EducationGoalRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewEducationGoalRepository(storage *pgxpool.Pool, logger *zap.Logger) EducationGoalRepositoryInterface {
	return &EducationGoalRepository{storage: storage, logger: logger}
}

func scanEducationGoal(row pgx.Row) (*entities.EducationGoal, error) {
	var g entities.EducationGoal
	if err := row.Scan(&g.ID, &g.UserID, &g.Year, &g.Goal, &g.CreatedAt); err != nil {
		return nil, fmt.Errorf("ошибка сканирования education_goal: %w", err)
	}
	return &g, nil
}

func (r *EducationGoalRepository) ListByUser(ctx context.Context, userID uint64) ([]entities.EducationGoal, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, user_id, year, goal, created_at
		FROM education_goals
		WHERE user_id = $1
		ORDER BY year DESC, id DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]entities.EducationGoal, 0)
	for rows.Next() {
		record, err := scanEducationGoal(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

func (r *EducationGoalRepository) Create(ctx context.Context, record *entities.EducationGoal) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO education_goals (user_id, year, goal, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`, record.UserID, record.Year, record.Goal).Scan(&newID)
	return newID, err
}
