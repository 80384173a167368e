package listeners

import (
	"context"
	"fmt"

	"alumni-system/internal/events"
	"alumni-system/pkg/eventbus"
	"alumni-system/pkg/mailer"

	"go.uber.org/zap"
)

// NotificationListener рассылает письма по событиям выпускного процесса.
// Уведомления в базе создаются в транзакции самой операции, здесь
// остаются только внешние эффекты.
type NotificationListener struct {
	mailSender mailer.MailerInterface
	logger     *zap.Logger
}

func NewNotificationListener(mailSender mailer.MailerInterface, logger *zap.Logger) *NotificationListener {
	return &NotificationListener{mailSender: mailSender, logger: logger}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.StudentGraduatedEvent{}.Name(), l.onStudentGraduated)
	bus.Subscribe(events.GraduationRevertedEvent{}.Name(), l.onGraduationReverted)
	bus.Subscribe(events.UserVerifiedEvent{}.Name(), l.onUserVerified)
}

func (l *NotificationListener) onStudentGraduated(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.StudentGraduatedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}

	year := 0
	if e.Student.GraduationYear != nil {
		year = *e.Student.GraduationYear
	}
	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\nПоздравляем с успешным завершением обучения в %d году.\nВаш статус в системе изменён на «выпускник».",
		e.Student.FirstName, year,
	)
	if err := l.mailSender.Send(e.Student.Email, "Поздравляем с выпуском!", body); err != nil {
		l.logger.Error("не удалось отправить письмо выпускнику",
			zap.Uint64("studentId", e.Student.ID), zap.Error(err))
		return err
	}
	return nil
}

func (l *NotificationListener) onGraduationReverted(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.GraduationRevertedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}

	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\nВаш статус выпускника был отменён администратором. Если это ошибка, обратитесь в деканат.",
		e.Student.FirstName,
	)
	if err := l.mailSender.Send(e.Student.Email, "Статус обучения изменён", body); err != nil {
		l.logger.Error("не удалось отправить письмо об отмене выпуска",
			zap.Uint64("studentId", e.Student.ID), zap.Error(err))
		return err
	}
	return nil
}

func (l *NotificationListener) onUserVerified(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.UserVerifiedEvent)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}

	body := fmt.Sprintf(
		"Здравствуйте, %s!\n\nВаша учётная запись подтверждена администратором. Теперь вам доступны все функции системы.",
		e.User.FirstName,
	)
	if err := l.mailSender.Send(e.User.Email, "Учётная запись подтверждена", body); err != nil {
		l.logger.Error("не удалось отправить письмо о подтверждении учётной записи",
			zap.Uint64("userId", e.User.ID), zap.Error(err))
		return err
	}
	return nil
}
