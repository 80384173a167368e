package dto

import "github.com/aarondl/null/v8"

type CreateFacultyDTO struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description"`
}

type UpdateFacultyDTO struct {
	Name        null.String `json:"name" validate:"omitempty,max=200"`
	Description null.String `json:"description"`
}

type CreateDirectionDTO struct {
	FacultyID   uint64  `json:"facultyId" validate:"required,min=1"`
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description"`
}

type UpdateDirectionDTO struct {
	Name        null.String `json:"name" validate:"omitempty,max=200"`
	Description null.String `json:"description"`
}

type CreateCompanyDTO struct {
	Name     string  `json:"name" validate:"required,max=200"`
	Website  *string `json:"website" validate:"omitempty,url"`
	Industry *string `json:"industry" validate:"omitempty,max=100"`
	Location *string `json:"location" validate:"omitempty,max=200"`
}

type UpdateCompanyDTO struct {
	Name     null.String `json:"name" validate:"omitempty,max=200"`
	Website  null.String `json:"website" validate:"omitempty,url"`
	Industry null.String `json:"industry" validate:"omitempty,max=100"`
	Location null.String `json:"location" validate:"omitempty,max=200"`
}
