package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"alumni-system/internal/entities"
)

type WorkExperienceRepositoryInterface interface {
	ListByUser(ctx context.Context, userID uint64) ([]entities.WorkExperience, error)
	Create(ctx context.Context, record *entities.WorkExperience) (uint64, error)
}

type WorkExperienceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewWorkExperienceRepository(storage *pgxpool.Pool, logger *zap.Logger) WorkExperienceRepositoryInterface {
	return &WorkExperienceRepository{storage: storage, logger: logger}
}

func scanWorkExperience(row pgx.Row) (*entities.WorkExperience, error) {
	var w entities.WorkExperience
	var endDate sql.NullTime
	var description sql.NullString

	err := row.Scan(&w.ID, &w.UserID, &w.Company, &w.Position, &w.StartDate, &endDate, &description, &w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования work_experience: %w", err)
	}

	if endDate.Valid {
		w.EndDate = &endDate.Time
	}
	if description.Valid {
		w.Description = &description.String
	}

	return &w, nil
}

func (r *WorkExperienceRepository) ListByUser(ctx context.Context, userID uint64) ([]entities.WorkExperience, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT id, user_id, company, position, start_date, end_date, description, created_at
		FROM work_experiences
		WHERE user_id = $1
		ORDER BY start_date DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]entities.WorkExperience, 0)
	for rows.Next() {
		record, err := scanWorkExperience(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	return records, rows.Err()
}

func (r *WorkExperienceRepository) Create(ctx context.Context, record *entities.WorkExperience) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO work_experiences (user_id, company, position, start_date, end_date, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())
		RETURNING id
	`, record.UserID, record.Company, record.Position, record.StartDate, record.EndDate, record.Description).Scan(&newID)
	return newID, err
}
