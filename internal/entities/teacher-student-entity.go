package entities

import "time"

// TeacherStudent — связь «преподаватель — студент» (многие-ко-многим).
// Пара (teacher_id, student_id) уникальна; запись создаётся и удаляется
// администратором, обновлений нет.
type TeacherStudent struct {
	ID         uint64    `json:"id" db:"id"`
	TeacherID  uint64    `json:"teacherId" db:"teacher_id"`
	StudentID  uint64    `json:"studentId" db:"student_id"`
	AssignedAt time.Time `json:"assignedAt" db:"assigned_at"`
	AssignedBy uint64    `json:"assignedBy" db:"assigned_by"`
}

// AssignedStudent — студент в списке закреплённых за преподавателем,
// вместе с датой закрепления.
type AssignedStudent struct {
	Student    User      `json:"student"`
	AssignedAt time.Time `json:"assignedAt"`
}
