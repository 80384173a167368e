package entities

import "time"

// Notification — уведомление пользователя. Создаётся системными
// событиями, изменяется только флаг прочтения.
type Notification struct {
	ID        uint64     `json:"id" db:"id"`
	UserID    uint64     `json:"userId" db:"user_id"`
	Title     string     `json:"title" db:"title"`
	Message   string     `json:"message" db:"message"`
	Type      string     `json:"type" db:"type"`
	Read      bool       `json:"read" db:"read"`
	CreatedAt time.Time  `json:"createdAt" db:"created_at"`
	ReadAt    *time.Time `json:"readAt,omitempty" db:"read_at"`
}
