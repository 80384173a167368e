package dto

type CreateWorkExperienceDTO struct {
	Company     string  `json:"company" validate:"required,min=2,max=200"`
	Position    string  `json:"position" validate:"required,min=2,max=200"`
	StartDate   string  `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     *string `json:"endDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=2000"`
}

type CreateEducationGoalDTO struct {
	Year int    `json:"year" validate:"required,min=1990,max=2100"`
	Goal string `json:"goal" validate:"required,min=2,max=2000"`
}
