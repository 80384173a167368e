package dto

type CreateNotificationDTO struct {
	UserID  uint64 `json:"userId" validate:"required,min=1"`
	Title   string `json:"title" validate:"required,max=200"`
	Message string `json:"message" validate:"required"`
	Type    string `json:"type" validate:"required,oneof=info warning success error"`
}

type UnreadCountDTO struct {
	Count uint64 `json:"count"`
}
