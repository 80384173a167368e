package dto

// UpdateGraduationInfoDTO — изменение академических полей студента.
// После подтверждения выпуска запрос отклоняется целиком.
type UpdateGraduationInfoDTO struct {
	AdmissionYear  int     `json:"admissionYear" validate:"required,min=1990,max=2100"`
	GraduationYear int     `json:"graduationYear" validate:"required,min=1990,max=2100"`
	DegreeLevel    string  `json:"degreeLevel" validate:"required,oneof=bachelor master phd dsc"`
	StudentType    *string `json:"studentType" validate:"omitempty,oneof=regular free_applicant external"`
	Faculty        *string `json:"faculty"`
	Direction      *string `json:"direction"`
}

// DegreeLevelStatsDTO — срез по одному уровню образования.
type DegreeLevelStatsDTO struct {
	Current   uint64 `json:"current"`
	Graduates uint64 `json:"graduates"`
}

// FacultyStatsDTO — срез по одному факультету.
type FacultyStatsDTO struct {
	Faculty   string `json:"faculty"`
	Current   uint64 `json:"current"`
	Graduates uint64 `json:"graduates"`
}

// GraduationStatisticsDTO — агрегированная статистика по выпускникам.
// Считается по требованию, без кеширования.
type GraduationStatisticsDTO struct {
	TotalCurrent   uint64                         `json:"totalCurrent"`
	TotalGraduates uint64                         `json:"totalGraduates"`
	ByDegreeLevel  map[string]DegreeLevelStatsDTO `json:"byDegreeLevel"`
	ByFaculty      []FacultyStatsDTO              `json:"byFaculty"`
	AcademicYear   int                            `json:"academicYear"`
}
