package events

import "alumni-system/internal/entities"

// События выпускного процесса. Публикуются после коммита транзакции;
// слушатели отвечают только за внешние эффекты (почта, SMS).

type StudentGraduatedEvent struct {
	Student *entities.User
}

func (e StudentGraduatedEvent) Name() string { return "student.graduated" }

type GraduationRevertedEvent struct {
	Student *entities.User
}

func (e GraduationRevertedEvent) Name() string { return "student.graduation_reverted" }

type UserVerifiedEvent struct {
	User *entities.User
}

func (e UserVerifiedEvent) Name() string { return "user.verified" }
