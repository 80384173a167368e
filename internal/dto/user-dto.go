package dto

import "github.com/aarondl/null/v8"

type CreateUserDTO struct {
	FirstName  string  `json:"firstName" validate:"required,max=100"`
	LastName   string  `json:"lastName" validate:"required,max=100"`
	MiddleName *string `json:"middleName" validate:"omitempty,max=100"`
	Email      string  `json:"email" validate:"required,custom_email"`
	Phone      *string `json:"phone" validate:"omitempty,e164_TJ"`
	StudentID  *string `json:"studentId" validate:"omitempty,student_id"`
	Password   string  `json:"password" validate:"required,min=8"`
	Role       string  `json:"role" validate:"required,oneof=admin teacher student"`

	Faculty        *string `json:"faculty"`
	Direction      *string `json:"direction"`
	AdmissionYear  *int    `json:"admissionYear" validate:"omitempty,min=1990,max=2100"`
	GraduationYear *int    `json:"graduationYear" validate:"omitempty,min=1990,max=2100"`
	DegreeLevel    *string `json:"degreeLevel" validate:"omitempty,oneof=bachelor master phd dsc"`
	StudentType    *string `json:"studentType" validate:"omitempty,oneof=regular free_applicant external"`
	FinancingType  *string `json:"financingType" validate:"omitempty,oneof=budget contract"`
}

// UpdateUserDTO — частичное обновление: null-типы различают
// «поле не прислано» и «прислано пустое».
type UpdateUserDTO struct {
	FirstName  null.String `json:"firstName" validate:"omitempty,max=100"`
	LastName   null.String `json:"lastName" validate:"omitempty,max=100"`
	MiddleName null.String `json:"middleName" validate:"omitempty,max=100"`
	Email      null.String `json:"email" validate:"omitempty,custom_email"`
	Phone      null.String `json:"phone" validate:"omitempty,e164_TJ"`
	StudentID  null.String `json:"studentId" validate:"omitempty,student_id"`
	Role       null.String `json:"role" validate:"omitempty,oneof=admin teacher student"`

	Faculty       null.String `json:"faculty"`
	Direction     null.String `json:"direction"`
	FinancingType null.String `json:"financingType" validate:"omitempty,oneof=budget contract"`
}

type BlockUserDTO struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

type UpdateProfileDTO struct {
	FirstName  null.String `json:"firstName" validate:"omitempty,max=100"`
	LastName   null.String `json:"lastName" validate:"omitempty,max=100"`
	MiddleName null.String `json:"middleName" validate:"omitempty,max=100"`
	Phone      null.String `json:"phone" validate:"omitempty,e164_TJ"`
	AvatarURL  null.String `json:"avatar" validate:"omitempty,url"`
	CvURL      null.String `json:"cvUrl" validate:"omitempty,url"`
}

type ChangePasswordDTO struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}
