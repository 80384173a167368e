package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"alumni-system/internal/entities"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/types"
)

type FacultyRepositoryInterface interface {
	GetFaculties(ctx context.Context, filter types.Filter) ([]entities.Faculty, uint64, error)
	FindFaculty(ctx context.Context, id uint64) (*entities.Faculty, error)
	FindFacultyByName(ctx context.Context, name string) (*entities.Faculty, error)
	CreateFaculty(ctx context.Context, faculty *entities.Faculty) (uint64, error)
	UpdateFaculty(ctx context.Context, id uint64, faculty *entities.Faculty) error
	DeleteFaculty(ctx context.Context, id uint64) error
}

type FacultyRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewFacultyRepository(storage *pgxpool.Pool, logger *zap.Logger) FacultyRepositoryInterface {
	return &FacultyRepository{storage: storage, logger: logger}
}

func scanFaculty(row pgx.Row) (*entities.Faculty, error) {
	var f entities.Faculty
	var description sql.NullString

	err := row.Scan(&f.ID, &f.Name, &description, &f.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования faculty: %w", err)
	}

	if description.Valid {
		f.Description = &description.String
	}

	return &f, nil
}

func (r *FacultyRepository) GetFaculties(ctx context.Context, filter types.Filter) ([]entities.Faculty, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	var total uint64
	sqlCount, argsCount, err := psql.Select("COUNT(f.id)").From("faculties AS f").ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Faculty{}, 0, nil
	}

	query, args, err := psql.Select("f.id", "f.name", "f.description", "f.created_at").
		From("faculties AS f").
		OrderBy("f.name ASC").
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

	faculties := make([]entities.Faculty, 0, filter.Limit)
	for rows.Next() {
		faculty, err := scanFaculty(rows)
		if err != nil {
			return nil, 0, err
		}
		faculties = append(faculties, *faculty)
	}

	return faculties, total, rows.Err()
}

func (r *FacultyRepository) FindFaculty(ctx context.Context, id uint64) (*entities.Faculty, error) {
	return scanFaculty(r.storage.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM faculties WHERE id = $1`, id))
}

func (r *FacultyRepository) FindFacultyByName(ctx context.Context, name string) (*entities.Faculty, error) {
	return scanFaculty(r.storage.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM faculties WHERE name = $1`, name))
}

func (r *FacultyRepository) CreateFaculty(ctx context.Context, faculty *entities.Faculty) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO faculties (name, description, created_at)
		VALUES ($1, $2, NOW())
		RETURNING id
	`, faculty.Name, faculty.Description).Scan(&newID)
	return newID, err
}

func (r *FacultyRepository) UpdateFaculty(ctx context.Context, id uint64, faculty *entities.Faculty) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE faculties SET name = $1, description = $2 WHERE id = $3`,
		faculty.Name, faculty.Description, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteFaculty удаляет факультет; направления удаляются каскадно
// (ON DELETE CASCADE на directions.faculty_id).
func (r *FacultyRepository) DeleteFaculty(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM faculties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
