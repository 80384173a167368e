package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedDictionaries наполняет справочники факультетов, направлений и компаний.
func SeedDictionaries(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Запуск наполнения справочников...")

	if err := seedFaculties(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения факультетов: %v", err)
	}
	if err := seedCompanies(ctx, db); err != nil {
		log.Fatalf("Ошибка наполнения компаний: %v", err)
	}

	log.Println("Наполнение справочников завершено")
}

// SeedAdmin создаёт учётную запись администратора, если её ещё нет.
func SeedAdmin(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Создание администратора...")

	if err := seedAdminUser(ctx, db); err != nil {
		log.Fatalf("Ошибка создания администратора: %v", err)
	}

	log.Println("Администратор готов")
}

// SeedSampleData создаёт тестовых преподавателей и студентов.
func SeedSampleData(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Создание тестовых данных...")

	if err := seedSampleUsers(ctx, db); err != nil {
		log.Fatalf("Ошибка создания тестовых пользователей: %v", err)
	}

	log.Println("Тестовые данные готовы")
}
