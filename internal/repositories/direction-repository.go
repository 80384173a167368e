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

type DirectionRepositoryInterface interface {
	GetDirections(ctx context.Context, filter types.Filter) ([]entities.Direction, uint64, error)
	FindDirection(ctx context.Context, id uint64) (*entities.Direction, error)
	FindDirectionByName(ctx context.Context, facultyID uint64, name string) (*entities.Direction, error)
	CreateDirection(ctx context.Context, direction *entities.Direction) (uint64, error)
	UpdateDirection(ctx context.Context, id uint64, direction *entities.Direction) error
	DeleteDirection(ctx context.Context, id uint64) error
}

type DirectionRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDirectionRepository(storage *pgxpool.Pool, logger *zap.Logger) DirectionRepositoryInterface {
	return &DirectionRepository{storage: storage, logger: logger}
}

func scanDirection(row pgx.Row) (*entities.Direction, error) {
	var d entities.Direction
	var description sql.NullString
	var facultyName sql.NullString

	err := row.Scan(&d.ID, &d.FacultyID, &d.Name, &description, &d.CreatedAt, &facultyName)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования direction: %w", err)
	}

	if description.Valid {
		d.Description = &description.String
	}
	if facultyName.Valid {
		d.FacultyName = facultyName.String
	}

	return &d, nil
}

const directionSelect = `SELECT d.id, d.faculty_id, d.name, d.description, d.created_at, f.name
	FROM directions AS d
	JOIN faculties AS f ON f.id = d.faculty_id`

func (r *DirectionRepository) GetDirections(ctx context.Context, filter types.Filter) ([]entities.Direction, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyFilters := func(b sq.SelectBuilder) sq.SelectBuilder {
		if facultyID, ok := filter.Filter["facultyId"]; ok {
			b = b.Where(sq.Eq{"d.faculty_id": facultyID})
		}
		return b
	}

	sqlCount, argsCount, err := applyFilters(psql.Select("COUNT(d.id)").From("directions AS d")).ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Direction{}, 0, nil
	}

	query, args, err := applyFilters(psql.Select(
		"d.id", "d.faculty_id", "d.name", "d.description", "d.created_at", "f.name",
	).From("directions AS d").Join("faculties AS f ON f.id = d.faculty_id")).
		OrderBy("d.name ASC").
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

	directions := make([]entities.Direction, 0, filter.Limit)
	for rows.Next() {
		direction, err := scanDirection(rows)
		if err != nil {
			return nil, 0, err
		}
		directions = append(directions, *direction)
	}

	return directions, total, rows.Err()
}

func (r *DirectionRepository) FindDirection(ctx context.Context, id uint64) (*entities.Direction, error) {
	return scanDirection(r.storage.QueryRow(ctx, directionSelect+` WHERE d.id = $1`, id))
}

// FindDirectionByName — уникальность имени проверяется в пределах факультета.
func (r *DirectionRepository) FindDirectionByName(ctx context.Context, facultyID uint64, name string) (*entities.Direction, error) {
	return scanDirection(r.storage.QueryRow(ctx,
		directionSelect+` WHERE d.faculty_id = $1 AND d.name = $2`, facultyID, name))
}

func (r *DirectionRepository) CreateDirection(ctx context.Context, direction *entities.Direction) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO directions (faculty_id, name, description, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`, direction.FacultyID, direction.Name, direction.Description).Scan(&newID)
	return newID, err
}

func (r *DirectionRepository) UpdateDirection(ctx context.Context, id uint64, direction *entities.Direction) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE directions SET name = $1, description = $2 WHERE id = $3`,
		direction.Name, direction.Description, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DirectionRepository) DeleteDirection(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM directions WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
