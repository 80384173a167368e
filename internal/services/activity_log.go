package services

import (
	"context"

	"alumni-system/internal/entities"
	"alumni-system/internal/repositories"
	"alumni-system/pkg/types"
)

// ActivityLogService — чтение журнала действий. Журнал append-only,
// записи создаются только внутри бизнес-операций.
type ActivityLogService struct {
	activityLogRepository repositories.ActivityLogRepositoryInterface
}

func NewActivityLogService(activityLogRepository repositories.ActivityLogRepositoryInterface) *ActivityLogService {
	return &ActivityLogService{activityLogRepository: activityLogRepository}
}

func (s *ActivityLogService) GetLogs(ctx context.Context, filter types.Filter) ([]entities.ActivityLog, uint64, error) {
	return s.activityLogRepository.GetLogs(ctx, filter)
}
