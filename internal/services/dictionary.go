package services

import (
	"context"
	"errors"

	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	"alumni-system/internal/repositories"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/types"

	"go.uber.org/zap"
)

// DictionaryService — справочники: факультеты, направления, компании.
// Имена уникальны, для направлений в пределах факультета.
type DictionaryService struct {
	facultyRepository   repositories.FacultyRepositoryInterface
	directionRepository repositories.DirectionRepositoryInterface
	companyRepository   repositories.CompanyRepositoryInterface
	logger              *zap.Logger
}

func NewDictionaryService(
	facultyRepository repositories.FacultyRepositoryInterface,
	directionRepository repositories.DirectionRepositoryInterface,
	companyRepository repositories.CompanyRepositoryInterface,
	logger *zap.Logger,
) *DictionaryService {
	return &DictionaryService{
		facultyRepository:   facultyRepository,
		directionRepository: directionRepository,
		companyRepository:   companyRepository,
		logger:              logger,
	}
}

func (s *DictionaryService) GetFaculties(ctx context.Context, filter types.Filter) ([]entities.Faculty, uint64, error) {
	return s.facultyRepository.GetFaculties(ctx, filter)
}

func (s *DictionaryService) FindFaculty(ctx context.Context, id uint64) (*entities.Faculty, error) {
	return s.facultyRepository.FindFaculty(ctx, id)
}

func (s *DictionaryService) CreateFaculty(ctx context.Context, payload dto.CreateFacultyDTO) (*entities.Faculty, error) {
	if _, err := s.facultyRepository.FindFacultyByName(ctx, payload.Name); err == nil {
		return nil, apperrors.NewConflictError(apperrors.CodeConflict, "факультет с таким названием уже существует")
	}

	faculty := &entities.Faculty{Name: payload.Name, Description: payload.Description}
	id, err := s.facultyRepository.CreateFaculty(ctx, faculty)
	if err != nil {
		return nil, err
	}
	return s.facultyRepository.FindFaculty(ctx, id)
}

func (s *DictionaryService) UpdateFaculty(ctx context.Context, id uint64, payload dto.UpdateFacultyDTO) (*entities.Faculty, error) {
	faculty, err := s.facultyRepository.FindFaculty(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Valid && payload.Name.String != faculty.Name {
		if _, err := s.facultyRepository.FindFacultyByName(ctx, payload.Name.String); err == nil {
			return nil, apperrors.NewConflictError(apperrors.CodeConflict, "факультет с таким названием уже существует")
		}
		faculty.Name = payload.Name.String
	}
	if payload.Description.Valid {
		faculty.Description = &payload.Description.String
	}

	if err := s.facultyRepository.UpdateFaculty(ctx, id, faculty); err != nil {
		return nil, err
	}
	return faculty, nil
}

// DeleteFaculty удаляет факультет вместе с его направлениями.
func (s *DictionaryService) DeleteFaculty(ctx context.Context, id uint64) error {
	return s.facultyRepository.DeleteFaculty(ctx, id)
}

func (s *DictionaryService) GetDirections(ctx context.Context, filter types.Filter) ([]entities.Direction, uint64, error) {
	return s.directionRepository.GetDirections(ctx, filter)
}

func (s *DictionaryService) FindDirection(ctx context.Context, id uint64) (*entities.Direction, error) {
	return s.directionRepository.FindDirection(ctx, id)
}

func (s *DictionaryService) CreateDirection(ctx context.Context, payload dto.CreateDirectionDTO) (*entities.Direction, error) {
	if _, err := s.facultyRepository.FindFaculty(ctx, payload.FacultyID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError(apperrors.CodeNotFound, "факультет не найден")
		}
		return nil, err
	}
	if _, err := s.directionRepository.FindDirectionByName(ctx, payload.FacultyID, payload.Name); err == nil {
		return nil, apperrors.NewConflictError(apperrors.CodeConflict, "направление с таким названием уже есть на этом факультете")
	}

	direction := &entities.Direction{
		FacultyID:   payload.FacultyID,
		Name:        payload.Name,
		Description: payload.Description,
	}
	id, err := s.directionRepository.CreateDirection(ctx, direction)
	if err != nil {
		return nil, err
	}
	return s.directionRepository.FindDirection(ctx, id)
}

func (s *DictionaryService) UpdateDirection(ctx context.Context, id uint64, payload dto.UpdateDirectionDTO) (*entities.Direction, error) {
	direction, err := s.directionRepository.FindDirection(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Valid && payload.Name.String != direction.Name {
		if _, err := s.directionRepository.FindDirectionByName(ctx, direction.FacultyID, payload.Name.String); err == nil {
			return nil, apperrors.NewConflictError(apperrors.CodeConflict, "направление с таким названием уже есть на этом факультете")
		}
		direction.Name = payload.Name.String
	}
	if payload.Description.Valid {
		direction.Description = &payload.Description.String
	}

	if err := s.directionRepository.UpdateDirection(ctx, id, direction); err != nil {
		return nil, err
	}
	return direction, nil
}

func (s *DictionaryService) DeleteDirection(ctx context.Context, id uint64) error {
	return s.directionRepository.DeleteDirection(ctx, id)
}

func (s *DictionaryService) GetCompanies(ctx context.Context, filter types.Filter) ([]entities.Company, uint64, error) {
	return s.companyRepository.GetCompanies(ctx, filter)
}

func (s *DictionaryService) FindCompany(ctx context.Context, id uint64) (*entities.Company, error) {
	return s.companyRepository.FindCompany(ctx, id)
}

func (s *DictionaryService) CreateCompany(ctx context.Context, payload dto.CreateCompanyDTO) (*entities.Company, error) {
	if _, err := s.companyRepository.FindCompanyByName(ctx, payload.Name); err == nil {
		return nil, apperrors.NewConflictError(apperrors.CodeConflict, "компания с таким названием уже существует")
	}

	company := &entities.Company{
		Name:     payload.Name,
		Website:  payload.Website,
		Industry: payload.Industry,
		Location: payload.Location,
	}
	id, err := s.companyRepository.CreateCompany(ctx, company)
	if err != nil {
		return nil, err
	}
	return s.companyRepository.FindCompany(ctx, id)
}

func (s *DictionaryService) UpdateCompany(ctx context.Context, id uint64, payload dto.UpdateCompanyDTO) (*entities.Company, error) {
	company, err := s.companyRepository.FindCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload.Name.Valid && payload.Name.String != company.Name {
		if _, err := s.companyRepository.FindCompanyByName(ctx, payload.Name.String); err == nil {
			return nil, apperrors.NewConflictError(apperrors.CodeConflict, "компания с таким названием уже существует")
		}
		company.Name = payload.Name.String
	}
	if payload.Website.Valid {
		company.Website = &payload.Website.String
	}
	if payload.Industry.Valid {
		company.Industry = &payload.Industry.String
	}
	if payload.Location.Valid {
		company.Location = &payload.Location.String
	}

	if err := s.companyRepository.UpdateCompany(ctx, id, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *DictionaryService) DeleteCompany(ctx context.Context, id uint64) error {
	return s.companyRepository.DeleteCompany(ctx, id)
}
