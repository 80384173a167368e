package entities

import "time"

// WorkExperience — запись об опыте работы в профиле пользователя.
// Компания хранится строкой: место работы не обязано присутствовать
// в справочнике компаний.
type WorkExperience struct {
	ID          uint64     `json:"id" db:"id"`
	UserID      uint64     `json:"userId" db:"user_id"`
	Company     string     `json:"company" db:"company"`
	Position    string     `json:"position" db:"position"`
	StartDate   time.Time  `json:"startDate" db:"start_date"`
	EndDate     *time.Time `json:"endDate,omitempty" db:"end_date"`
	Description *string    `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// EducationGoal — образовательная цель пользователя на год.
type EducationGoal struct {
	ID        uint64    `json:"id" db:"id"`
	UserID    uint64    `json:"userId" db:"user_id"`
	Year      int       `json:"year" db:"year"`
	Goal      string    `json:"goal" db:"goal"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
