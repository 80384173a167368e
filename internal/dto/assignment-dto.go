package dto

import apperrors "alumni-system/pkg/errors"

// AssignStudentsDTO — пакетное закрепление студентов за преподавателем.
type AssignStudentsDTO struct {
	StudentIDs []uint64 `json:"studentIds" validate:"required,min=1,dive,min=1"`
}

// AssignResultDTO — итог пакетного закрепления. Уже существующие пары
// считаются пропущенными, неизвестные id собираются в errors
// и не прерывают пакет.
type AssignResultDTO struct {
	Assigned int                    `json:"assigned"`
	Skipped  int                    `json:"skipped"`
	Errors   []apperrors.FieldError `json:"errors"`
}
