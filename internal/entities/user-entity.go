package entities

import (
	"time"
)

// User — единая таблица для всех ролей: администраторы, преподаватели,
// студенты. Академические поля заполняются только у студентов.
type User struct {
	ID         uint64  `json:"id" db:"id"`
	FirstName  string  `json:"firstName" db:"first_name"`
	LastName   string  `json:"lastName" db:"last_name"`
	MiddleName *string `json:"middleName,omitempty" db:"middle_name"`

	Email     string  `json:"email" db:"email"`
	Phone     *string `json:"phone,omitempty" db:"phone"`
	StudentID *string `json:"studentId,omitempty" db:"student_id"`

	Password string `json:"-" db:"password_hash"`

	Role string `json:"role" db:"role"`

	// Академические поля (только для role=student)
	Faculty        *string `json:"faculty,omitempty" db:"faculty"`
	Direction      *string `json:"direction,omitempty" db:"direction"`
	AdmissionYear  *int    `json:"admissionYear,omitempty" db:"admission_year"`
	GraduationYear *int    `json:"graduationYear,omitempty" db:"graduation_year"`
	DegreeLevel    *string `json:"degreeLevel,omitempty" db:"degree_level"`
	StudentType    *string `json:"studentType,omitempty" db:"student_type"`
	FinancingType  *string `json:"financingType,omitempty" db:"financing_type"`
	StudentStatus  *string `json:"studentStatus,omitempty" db:"student_status"`

	IsVerified    bool    `json:"isVerified" db:"is_verified"`
	IsBlocked     bool    `json:"isBlocked" db:"is_blocked"`
	BlockReason   *string `json:"blockReason,omitempty" db:"block_reason"`
	EmailVerified bool    `json:"emailVerified" db:"email_verified"`
	PhoneVerified bool    `json:"phoneVerified" db:"phone_verified"`

	AvatarURL  *string `json:"avatar,omitempty" db:"avatar_url"`
	CvURL      *string `json:"cvUrl,omitempty" db:"cv_url"`
	DiplomaURL *string `json:"diplomaUrl,omitempty" db:"diploma_url"`

	EmailVerificationToken *string    `json:"-" db:"email_verification_token"`
	PasswordResetToken     *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpires   *time.Time `json:"-" db:"password_reset_expires"`

	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time  `json:"updatedAt" db:"updated_at"`
	LastLogin *time.Time `json:"lastLogin,omitempty" db:"last_login"`
}

// IsStudent — true только для аккаунтов с ролью студента.
func (u *User) IsStudent() bool {
	return u.Role == "student"
}

func (u *User) IsGraduate() bool {
	return u.StudentStatus != nil && *u.StudentStatus == "graduate"
}
