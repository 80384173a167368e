package seeders

import (
	"context"
	"fmt"
	"log"

	"alumni-system/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

type sampleUser struct {
	FirstName      string
	LastName       string
	Email          string
	Phone          *string
	StudentID      *string
	Role           string
	Faculty        *string
	Direction      *string
	AdmissionYear  *int
	GraduationYear *int
	DegreeLevel    *string
	StudentType    *string
	FinancingType  *string
	StudentStatus  *string
	IsVerified     bool
}

func str(s string) *string { return &s }
func num(i int) *int       { return &i }

var sampleUsers = []sampleUser{
	// Преподаватели
	{
		FirstName: "Dilshod", LastName: "Karimov",
		Email: "d.karimov@university.tj", Role: "teacher",
		Faculty: str("Факультет информатики"), IsVerified: true,
	},
	{
		FirstName: "Sevara", LastName: "Nazarova",
		Email: "s.nazarova@university.tj", Role: "teacher",
		Faculty: str("Экономический факультет"), IsVerified: true,
	},

	// Студенты
	{
		FirstName: "Aziz", LastName: "Rahmonov",
		Email: "a.rahmonov@student.university.tj", Phone: str("+992901234501"),
		StudentID: str("20210001"), Role: "student",
		Faculty: str("Факультет информатики"), Direction: str("Программная инженерия"),
		AdmissionYear: num(2021), GraduationYear: num(2025),
		DegreeLevel: str("bachelor"), StudentType: str("regular"),
		FinancingType: str("budget"), StudentStatus: str("current"),
		IsVerified: true,
	},
	{
		FirstName: "Madina", LastName: "Usmanova",
		Email: "m.usmanova@student.university.tj", Phone: str("+992901234502"),
		StudentID: str("20210002"), Role: "student",
		Faculty: str("Экономический факультет"), Direction: str("Экономика предприятия"),
		AdmissionYear: num(2021), GraduationYear: num(2025),
		DegreeLevel: str("bachelor"), StudentType: str("regular"),
		FinancingType: str("contract"), StudentStatus: str("current"),
		IsVerified: true,
	},
	{
		FirstName: "Bobur", LastName: "Tursunov",
		Email: "b.tursunov@student.university.tj", Phone: str("+992901234503"),
		StudentID: str("20220001"), Role: "student",
		Faculty: str("Инженерный факультет"), Direction: str("Автоматизация"),
		AdmissionYear: num(2022), GraduationYear: num(2026),
		DegreeLevel: str("bachelor"), StudentType: str("regular"),
		FinancingType: str("budget"), StudentStatus: str("current"),
		IsVerified: false,
	},
	{
		FirstName: "Sarvar", LastName: "Karimov",
		Email: "s.karimov@student.university.tj", Phone: str("+992901234504"),
		StudentID: str("20190001"), Role: "student",
		Faculty: str("Факультет информатики"), Direction: str("Информационные системы"),
		AdmissionYear: num(2019), GraduationYear: num(2023),
		DegreeLevel: str("bachelor"), StudentType: str("regular"),
		FinancingType: str("budget"), StudentStatus: str("graduate"),
		IsVerified: true,
	},
	{
		FirstName: "Nodira", LastName: "Abdullayeva",
		Email: "n.abdullayeva@student.university.tj", Phone: str("+992901234505"),
		StudentID: str("20230001"), Role: "student",
		Faculty: str("Факультет информатики"), Direction: str("Кибербезопасность"),
		AdmissionYear: num(2023), GraduationYear: num(2025),
		DegreeLevel: str("master"), StudentType: str("regular"),
		FinancingType: str("contract"), StudentStatus: str("current"),
		IsVerified: true,
	},
}

func seedSampleUsers(ctx context.Context, db *pgxpool.Pool) error {
	// Общий пароль для всех тестовых аккаунтов.
	hashedPassword, err := utils.HashPassword("password123")
	if err != nil {
		return fmt.Errorf("не удалось захэшировать пароль: %w", err)
	}

	for _, u := range sampleUsers {
		var existingID uint64
		if err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", u.Email).Scan(&existingID); err == nil {
			continue
		}

		_, err := db.Exec(ctx, `
			INSERT INTO users (first_name, last_name, email, phone, student_id,
				password_hash, role, faculty, direction, admission_year, graduation_year,
				degree_level, student_type, financing_type, student_status,
				is_verified, email_verified, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, TRUE, NOW(), NOW())
		`,
			u.FirstName, u.LastName, u.Email, u.Phone, u.StudentID,
			hashedPassword, u.Role, u.Faculty, u.Direction, u.AdmissionYear, u.GraduationYear,
			u.DegreeLevel, u.StudentType, u.FinancingType, u.StudentStatus,
			u.IsVerified,
		)
		if err != nil {
			return fmt.Errorf("не удалось создать пользователя %s: %w", u.Email, err)
		}
		log.Printf("  - создан пользователь %s (%s)", u.Email, u.Role)
	}
	return nil
}
