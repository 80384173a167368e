package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"alumni-system/internal/dto"
	"alumni-system/internal/entities"
	apperrors "alumni-system/pkg/errors"
)

type fakeWorkExperienceRepo struct {
	records []entities.WorkExperience
}

func (r *fakeWorkExperienceRepo) ListByUser(_ context.Context, userID uint64) ([]entities.WorkExperience, error) {
	result := make([]entities.WorkExperience, 0)
	for _, rec := range r.records {
		if rec.UserID == userID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (r *fakeWorkExperienceRepo) Create(_ context.Context, record *entities.WorkExperience) (uint64, error) {
	r.records = append(r.records, *record)
	return uint64(len(r.records)), nil
}

type fakeEducationGoalRepo struct {
	records []entities.EducationGoal
}

func (r *fakeEducationGoalRepo) ListByUser(_ context.Context, userID uint64) ([]entities.EducationGoal, error) {
	result := make([]entities.EducationGoal, 0)
	for _, rec := range r.records {
		if rec.UserID == userID {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (r *fakeEducationGoalRepo) Create(_ context.Context, record *entities.EducationGoal) (uint64, error) {
	r.records = append(r.records, *record)
	return uint64(len(r.records)), nil
}

func newTestProfileService() (*ProfileService, *fakeWorkExperienceRepo, *fakeEducationGoalRepo) {
	workRepo := &fakeWorkExperienceRepo{}
	goalRepo := &fakeEducationGoalRepo{}
	svc := NewProfileService(workRepo, goalRepo, zap.NewNop())
	return svc, workRepo, goalRepo
}

func TestAddWorkExperience(t *testing.T) {
	svc, repo, _ := newTestProfileService()

	endDate := "2024-06-30"
	record, err := svc.AddWorkExperience(context.Background(), 7, dto.CreateWorkExperienceDTO{
		Company:   "Вавилон-Т",
		Position:  "Инженер",
		StartDate: "2022-09-01",
		EndDate:   &endDate,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), record.ID)
	assert.Equal(t, uint64(7), record.UserID)
	assert.Equal(t, time.Date(2022, 9, 1, 0, 0, 0, 0, time.UTC), record.StartDate)
	require.NotNil(t, record.EndDate)
	assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), *record.EndDate)
	require.Len(t, repo.records, 1)
}

func TestAddWorkExperience_OpenEnded(t *testing.T) {
	svc, _, _ := newTestProfileService()

	record, err := svc.AddWorkExperience(context.Background(), 7, dto.CreateWorkExperienceDTO{
		Company:   "ТНУ",
		Position:  "Лаборант",
		StartDate: "2025-02-01",
	})
	require.NoError(t, err)
	assert.Nil(t, record.EndDate)
}

func TestAddWorkExperience_EndBeforeStart(t *testing.T) {
	svc, repo, _ := newTestProfileService()

	endDate := "2021-01-01"
	_, err := svc.AddWorkExperience(context.Background(), 7, dto.CreateWorkExperienceDTO{
		Company:   "Вавилон-Т",
		Position:  "Инженер",
		StartDate: "2022-09-01",
		EndDate:   &endDate,
	})
	require.Error(t, err)

	httpErr := apperrors.AsHttpError(err)
	assert.Equal(t, http.StatusBadRequest, httpErr.Status)
	assert.Empty(t, repo.records)
}

func TestAddWorkExperience_BadDateFormat(t *testing.T) {
	svc, _, _ := newTestProfileService()

	_, err := svc.AddWorkExperience(context.Background(), 7, dto.CreateWorkExperienceDTO{
		Company:   "Вавилон-Т",
		Position:  "Инженер",
		StartDate: "01.09.2022",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, apperrors.AsHttpError(err).Status)
}

func TestListWorkExperience_OwnRecordsOnly(t *testing.T) {
	svc, repo, _ := newTestProfileService()
	repo.records = []entities.WorkExperience{
		{ID: 1, UserID: 7, Company: "Вавилон-Т"},
		{ID: 2, UserID: 8, Company: "Мегафон Таджикистан"},
	}

	records, err := svc.ListWorkExperience(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Вавилон-Т", records[0].Company)
}

func TestAddEducationGoal(t *testing.T) {
	svc, _, repo := newTestProfileService()

	record, err := svc.AddEducationGoal(context.Background(), 7, dto.CreateEducationGoalDTO{
		Year: 2026,
		Goal: "Поступить в магистратуру",
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(1), record.ID)
	assert.Equal(t, uint64(7), record.UserID)
	assert.Equal(t, 2026, record.Year)
	require.Len(t, repo.records, 1)
}

func TestListEducationGoals_OwnRecordsOnly(t *testing.T) {
	svc, _, repo := newTestProfileService()
	repo.records = []entities.EducationGoal{
		{ID: 1, UserID: 7, Year: 2026, Goal: "Магистратура"},
		{ID: 2, UserID: 9, Year: 2027, Goal: "Аспирантура"},
	}

	records, err := svc.ListEducationGoals(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, 2026, records[0].Year)
}
