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

type CompanyRepositoryInterface interface {
	GetCompanies(ctx context.Context, filter types.Filter) ([]entities.Company, uint64, error)
	FindCompany(ctx context.Context, id uint64) (*entities.Company, error)
	FindCompanyByName(ctx context.Context, name string) (*entities.Company, error)
	CreateCompany(ctx context.Context, company *entities.Company) (uint64, error)
	UpdateCompany(ctx context.Context, id uint64, company *entities.Company) error
	DeleteCompany(ctx context.Context, id uint64) error
}

type CompanyRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCompanyRepository(storage *pgxpool.Pool, logger *zap.Logger) CompanyRepositoryInterface {
	return &CompanyRepository{storage: storage, logger: logger}
}

func scanCompany(row pgx.Row) (*entities.Company, error) {
	var c entities.Company
	var website, industry, location sql.NullString

	err := row.Scan(&c.ID, &c.Name, &website, &industry, &location, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования company: %w", err)
	}

	if website.Valid {
		c.Website = &website.String
	}
	if industry.Valid {
		c.Industry = &industry.String
	}
	if location.Valid {
		c.Location = &location.String
	}

	return &c, nil
}

func (r *CompanyRepository) GetCompanies(ctx context.Context, filter types.Filter) ([]entities.Company, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	var total uint64
	sqlCount, argsCount, err := psql.Select("COUNT(c.id)").From("companies AS c").ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.Company{}, 0, nil
	}

	query, args, err := psql.Select("c.id", "c.name", "c.website", "c.industry", "c.location", "c.created_at").
		From("companies AS c").
		OrderBy("c.name ASC").
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

	companies := make([]entities.Company, 0, filter.Limit)
	for rows.Next() {
		company, err := scanCompany(rows)
		if err != nil {
			return nil, 0, err
		}
		companies = append(companies, *company)
	}

	return companies, total, rows.Err()
}

func (r *CompanyRepository) FindCompany(ctx context.Context, id uint64) (*entities.Company, error) {
	return scanCompany(r.storage.QueryRow(ctx,
		`SELECT id, name, website, industry, location, created_at FROM companies WHERE id = $1`, id))
}

func (r *CompanyRepository) FindCompanyByName(ctx context.Context, name string) (*entities.Company, error) {
	return scanCompany(r.storage.QueryRow(ctx,
		`SELECT id, name, website, industry, location, created_at FROM companies WHERE name = $1`, name))
}

func (r *CompanyRepository) CreateCompany(ctx context.Context, company *entities.Company) (uint64, error) {
	var newID uint64
	err := r.storage.QueryRow(ctx, `
		INSERT INTO companies (name, website, industry, location, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id
	`, company.Name, company.Website, company.Industry, company.Location).Scan(&newID)
	return newID, err
}

func (r *CompanyRepository) UpdateCompany(ctx context.Context, id uint64, company *entities.Company) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE companies SET name = $1, website = $2, industry = $3, location = $4 WHERE id = $5`,
		company.Name, company.Website, company.Industry, company.Location, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CompanyRepository) DeleteCompany(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM companies WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
