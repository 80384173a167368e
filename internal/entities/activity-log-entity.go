package entities

import "time"

// ActivityLog — журнал действий. Записи только добавляются,
// никогда не изменяются и не удаляются.
type ActivityLog struct {
	ID         uint64    `json:"id" db:"id"`
	UserID     uint64    `json:"userId" db:"user_id"`
	Action     string    `json:"action" db:"action"`
	TargetID   *uint64   `json:"targetId,omitempty" db:"target_id"`
	TargetType *string   `json:"targetType,omitempty" db:"target_type"`
	Details    *string   `json:"details,omitempty" db:"details"`
	IPAddress  *string   `json:"ipAddress,omitempty" db:"ip_address"`
	UserAgent  *string   `json:"userAgent,omitempty" db:"user_agent"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
