package entities

import "time"

// Справочники: факультеты, направления, компании.

type Faculty struct {
	ID          uint64    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Direction — направление обучения. Имя уникально в пределах факультета,
// при удалении факультета направления удаляются каскадно.
type Direction struct {
	ID          uint64    `json:"id" db:"id"`
	FacultyID   uint64    `json:"facultyId" db:"faculty_id"`
	Name        string    `json:"name" db:"name"`
	Description *string   `json:"description,omitempty" db:"description"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`

	FacultyName string `json:"facultyName,omitempty" db:"-"`
}

type Company struct {
	ID        uint64    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Website   *string   `json:"website,omitempty" db:"website"`
	Industry  *string   `json:"industry,omitempty" db:"industry"`
	Location  *string   `json:"location,omitempty" db:"location"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
