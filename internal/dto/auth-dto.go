package dto

type RegisterDTO struct {
	FirstName  string  `json:"firstName" validate:"required,max=100"`
	LastName   string  `json:"lastName" validate:"required,max=100"`
	MiddleName *string `json:"middleName" validate:"omitempty,max=100"`
	Email      string  `json:"email" validate:"required,custom_email"`
	Phone      *string `json:"phone" validate:"omitempty,e164_TJ"`
	StudentID  *string `json:"studentId" validate:"omitempty,student_id"`
	Password   string  `json:"password" validate:"required,min=8"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,custom_email"`
	Password string `json:"password" validate:"required"`
}

type TokenPairDTO struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RefreshTokenDTO struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

type ResetPasswordRequestDTO struct {
	Login string `json:"login" validate:"required"`
}

type VerifyCodeDTO struct {
	Login string `json:"login" validate:"required"`
	Code  string `json:"code" validate:"required,len=4,numeric"`
}

type ResetPasswordDTO struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

type VerifyEmailDTO struct {
	Token string `json:"token" validate:"required"`
}
