package seeders

import (
	"context"
	"fmt"
	"log"

	"alumni-system/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

const adminEmail = "admin@university.tj"

func seedAdminUser(ctx context.Context, db *pgxpool.Pool) error {
	var adminID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", adminEmail).Scan(&adminID)
	if err == nil {
		log.Println("  - администратор уже существует, пропускаем")
		return nil
	}

	hashedPassword, err := utils.HashPassword("admin123")
	if err != nil {
		return fmt.Errorf("не удалось захэшировать пароль: %w", err)
	}

	err = db.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash, role,
			is_verified, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, 'admin', TRUE, TRUE, NOW(), NOW())
		RETURNING id
	`, "System", "Administrator", adminEmail, hashedPassword).Scan(&adminID)
	if err != nil {
		return fmt.Errorf("не удалось создать администратора: %w", err)
	}

	log.Printf("  - администратор создан (id=%d, email=%s)", adminID, adminEmail)
	return nil
}
