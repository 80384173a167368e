package services

import (
	"context"
	"time"

	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	"alumni-system/internal/repositories"
	apperrors "alumni-system/pkg/errors"

	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// ProfileService — записи личного кабинета: опыт работы и образовательные
// цели. Пользователь работает только со своими записями.
type ProfileService struct {
	workExperienceRepository repositories.WorkExperienceRepositoryInterface
	educationGoalRepository  repositories.EducationGoalRepositoryInterface
	logger                   *zap.Logger
}

func NewProfileService(
	workExperienceRepository repositories.WorkExperienceRepositoryInterface,
	educationGoalRepository repositories.EducationGoalRepositoryInterface,
	logger *zap.Logger,
) *ProfileService {
	return &ProfileService{
		workExperienceRepository: workExperienceRepository,
		educationGoalRepository:  educationGoalRepository,
		logger:                   logger,
	}
}

func (s *ProfileService) ListWorkExperience(ctx context.Context, userID uint64) ([]entities.WorkExperience, error) {
	return s.workExperienceRepository.ListByUser(ctx, userID)
}

// AddWorkExperience добавляет запись об опыте работы текущему пользователю.
// Дата окончания, если указана, не может предшествовать дате начала.
func (s *ProfileService) AddWorkExperience(ctx context.Context, userID uint64, payload dto.CreateWorkExperienceDTO) (*entities.WorkExperience, error) {
	startDate, err := time.Parse(dateLayout, payload.StartDate)
	if err != nil {
		return nil, apperrors.NewBadRequestError("неверный формат даты начала работы")
	}

	var endDate *time.Time
	if payload.EndDate != nil {
		parsed, err := time.Parse(dateLayout, *payload.EndDate)
		if err != nil {
			return nil, apperrors.NewBadRequestError("неверный формат даты окончания работы")
		}
		if parsed.Before(startDate) {
			return nil, apperrors.NewBadRequestError("дата окончания работы раньше даты начала")
		}
		endDate = &parsed
	}

	record := &entities.WorkExperience{
		UserID:      userID,
		Company:     payload.Company,
		Position:    payload.Position,
		StartDate:   startDate,
		EndDate:     endDate,
		Description: payload.Description,
	}

	newID, err := s.workExperienceRepository.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = newID

	s.logger.Info("добавлен опыт работы",
		zap.Uint64("userId", userID),
		zap.String("company", record.Company))

	return record, nil
}

func (s *ProfileService) ListEducationGoals(ctx context.Context, userID uint64) ([]entities.EducationGoal, error) {
	return s.educationGoalRepository.ListByUser(ctx, userID)
}

// AddEducationGoal добавляет образовательную цель текущему пользователю.
func (s *ProfileService) AddEducationGoal(ctx context.Context, userID uint64, payload dto.CreateEducationGoalDTO) (*entities.EducationGoal, error) {
	record := &entities.EducationGoal{
		UserID: userID,
		Year:   payload.Year,
		Goal:   payload.Goal,
	}

	newID, err := s.educationGoalRepository.Create(ctx, record)
	if err != nil {
		return nil, err
	}
	record.ID = newID

	s.logger.Info("добавлена образовательная цель",
		zap.Uint64("userId", userID),
		zap.Int("year", record.Year))

	return record, nil
}
