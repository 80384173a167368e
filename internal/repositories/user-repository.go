package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"alumni-system/internal/entities"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/types"
)

// Карта допустимых полей фильтрации списка пользователей.
var userFilterMap = map[string]string{
	"role":          "u.role",
	"faculty":       "u.faculty",
	"direction":     "u.direction",
	"degreeLevel":   "u.degree_level",
	"studentType":   "u.student_type",
	"studentStatus": "u.student_status",
	"financingType": "u.financing_type",
}

const userColumns = `u.id, u.first_name, u.last_name, u.middle_name, u.email, u.phone, u.student_id,
	u.password_hash, u.role, u.faculty, u.direction, u.admission_year, u.graduation_year,
	u.degree_level, u.student_type, u.financing_type, u.student_status,
	u.is_verified, u.is_blocked, u.block_reason, u.email_verified, u.phone_verified,
	u.avatar_url, u.cv_url, u.diploma_url,
	u.email_verification_token, u.password_reset_token, u.password_reset_expires,
	u.created_at, u.updated_at, u.last_login`

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error)
	FindUser(ctx context.Context, id uint64) (*entities.User, error)
	FindUserByEmail(ctx context.Context, email string) (*entities.User, error)
	FindUserByPhone(ctx context.Context, phone string) (*entities.User, error)
	FindUserByStudentID(ctx context.Context, studentID string) (*entities.User, error)
	FindUserByEmailVerificationToken(ctx context.Context, token string) (*entities.User, error)
	CreateUser(ctx context.Context, tx pgx.Tx, user *entities.User) (uint64, error)
	UpdateUser(ctx context.Context, tx pgx.Tx, id uint64, user *entities.User) error
	DeleteUser(ctx context.Context, id uint64) error
	UpdateLastLogin(ctx context.Context, id uint64) error
	UpdatePassword(ctx context.Context, id uint64, passwordHash string) error
	SetVerified(ctx context.Context, id uint64) error
	SetBlocked(ctx context.Context, id uint64, blocked bool, reason *string) error
	SetEmailVerified(ctx context.Context, id uint64) error
	SetPhoneVerified(ctx context.Context, id uint64) error
	UpdateStudentStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error
	UpdateGraduationInfo(ctx context.Context, tx pgx.Tx, id uint64, user *entities.User) error
	GetGraduatingStudents(ctx context.Context, filter types.Filter, maxGraduationYear int) ([]entities.User, uint64, error)
	SearchStudents(ctx context.Context, query string, filter types.Filter) ([]entities.User, uint64, error)
	CountByStatus(ctx context.Context, status string) (uint64, error)
	CountByDegreeAndStatus(ctx context.Context) (map[string]map[string]uint64, error)
	CountByFacultyAndStatus(ctx context.Context) ([]FacultyStatusCount, error)
}

// FacultyStatusCount — строка агрегации «факультет × статус студента».
type FacultyStatusCount struct {
	Faculty string
	Status  string
	Count   uint64
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

// scanUser сканирует строку с userColumns; extra — дополнительные
// колонки, добавленные в конец SELECT (например assigned_at).
func scanUser(row pgx.Row, extra ...interface{}) (*entities.User, error) {
	var u entities.User
	var middleName, phone, studentID, faculty, direction, degreeLevel, studentType,
		financingType, studentStatus, blockReason, avatarURL, cvURL, diplomaURL,
		emailToken, resetToken sql.NullString
	var admissionYear, graduationYear sql.NullInt64
	var resetExpires, lastLogin sql.NullTime

	dest := []interface{}{
		&u.ID, &u.FirstName, &u.LastName, &middleName, &u.Email, &phone, &studentID,
		&u.Password, &u.Role, &faculty, &direction, &admissionYear, &graduationYear,
		&degreeLevel, &studentType, &financingType, &studentStatus,
		&u.IsVerified, &u.IsBlocked, &blockReason, &u.EmailVerified, &u.PhoneVerified,
		&avatarURL, &cvURL, &diplomaURL,
		&emailToken, &resetToken, &resetExpires,
		&u.CreatedAt, &u.UpdatedAt, &lastLogin,
	}
	dest = append(dest, extra...)

	err := row.Scan(dest...)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования user: %w", err)
	}

	if middleName.Valid {
		u.MiddleName = &middleName.String
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if studentID.Valid {
		u.StudentID = &studentID.String
	}
	if faculty.Valid {
		u.Faculty = &faculty.String
	}
	if direction.Valid {
		u.Direction = &direction.String
	}
	if admissionYear.Valid {
		year := int(admissionYear.Int64)
		u.AdmissionYear = &year
	}
	if graduationYear.Valid {
		year := int(graduationYear.Int64)
		u.GraduationYear = &year
	}
	if degreeLevel.Valid {
		u.DegreeLevel = &degreeLevel.String
	}
	if studentType.Valid {
		u.StudentType = &studentType.String
	}
	if financingType.Valid {
		u.FinancingType = &financingType.String
	}
	if studentStatus.Valid {
		u.StudentStatus = &studentStatus.String
	}
	if blockReason.Valid {
		u.BlockReason = &blockReason.String
	}
	if avatarURL.Valid {
		u.AvatarURL = &avatarURL.String
	}
	if cvURL.Valid {
		u.CvURL = &cvURL.String
	}
	if diplomaURL.Valid {
		u.DiplomaURL = &diplomaURL.String
	}
	if emailToken.Valid {
		u.EmailVerificationToken = &emailToken.String
	}
	if resetToken.Valid {
		u.PasswordResetToken = &resetToken.String
	}
	if resetExpires.Valid {
		u.PasswordResetExpires = &resetExpires.Time
	}
	if lastLogin.Valid {
		u.LastLogin = &lastLogin.Time
	}

	return &u, nil
}

func applyUserFilters(builder sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	for jsonField, val := range filter.Filter {
		dbCol, ok := userFilterMap[jsonField]
		if !ok {
			continue
		}
		builder = builder.Where(sq.Eq{dbCol: val})
	}
	return builder
}

func (r *UserRepository) GetUsers(ctx context.Context, filter types.Filter) ([]entities.User, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	countBuilder := applyUserFilters(psql.Select("COUNT(u.id)").From("users AS u"), filter)
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	baseBuilder := applyUserFilters(psql.Select(userColumns).From("users AS u"), filter).
		OrderBy("u.created_at DESC").
		Limit(filter.Limit).
		Offset(filter.Offset)

	query, args, err := baseBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	users := make([]entities.User, 0, filter.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *user)
	}

	return users, total, rows.Err()
}

func (r *UserRepository) findOne(ctx context.Context, where sq.Eq) (*entities.User, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	query, args, err := psql.Select(userColumns).From("users AS u").Where(where).ToSql()
	if err != nil {
		return nil, err
	}
	return scanUser(r.storage.QueryRow(ctx, query, args...))
}

func (r *UserRepository) FindUser(ctx context.Context, id uint64) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"u.id": id})
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"u.email": email})
}

func (r *UserRepository) FindUserByPhone(ctx context.Context, phone string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"u.phone": phone})
}

func (r *UserRepository) FindUserByStudentID(ctx context.Context, studentID string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"u.student_id": studentID})
}

func (r *UserRepository) FindUserByEmailVerificationToken(ctx context.Context, token string) (*entities.User, error) {
	return r.findOne(ctx, sq.Eq{"u.email_verification_token": token})
}

func (r *UserRepository) CreateUser(ctx context.Context, tx pgx.Tx, user *entities.User) (uint64, error) {
	query := `
		INSERT INTO users (first_name, last_name, middle_name, email, phone, student_id,
			password_hash, role, faculty, direction, admission_year, graduation_year,
			degree_level, student_type, financing_type, student_status,
			is_verified, email_verification_token, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, NOW(), NOW())
		RETURNING id
	`
	var q querier = r.storage
	if tx != nil {
		q = tx
	}

	var newID uint64
	err := q.QueryRow(ctx, query,
		user.FirstName, user.LastName, user.MiddleName, user.Email, user.Phone, user.StudentID,
		user.Password, user.Role, user.Faculty, user.Direction, user.AdmissionYear, user.GraduationYear,
		user.DegreeLevel, user.StudentType, user.FinancingType, user.StudentStatus,
		user.IsVerified, user.EmailVerificationToken,
	).Scan(&newID)

	return newID, err
}

func (r *UserRepository) UpdateUser(ctx context.Context, tx pgx.Tx, id uint64, user *entities.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2, middle_name = $3, email = $4, phone = $5,
			student_id = $6, role = $7, faculty = $8, direction = $9, financing_type = $10,
			avatar_url = $11, cv_url = $12, updated_at = NOW()
		WHERE id = $13
	`
	var q querier = r.storage
	if tx != nil {
		q = tx
	}

	result, err := q.Exec(ctx, query,
		user.FirstName, user.LastName, user.MiddleName, user.Email, user.Phone,
		user.StudentID, user.Role, user.Faculty, user.Direction, user.FinancingType,
		user.AvatarURL, user.CvURL, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uint64) error {
	_, err := r.storage.Exec(ctx, `UPDATE users SET last_login = NOW() WHERE id = $1`, id)
	return err
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint64, passwordHash string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE users SET password_hash = $1, password_reset_token = NULL, password_reset_expires = NULL, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetVerified(ctx context.Context, id uint64) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE users SET is_verified = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetBlocked(ctx context.Context, id uint64, blocked bool, reason *string) error {
	result, err := r.storage.Exec(ctx,
		`UPDATE users SET is_blocked = $1, block_reason = $2, updated_at = NOW() WHERE id = $3`,
		blocked, reason, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetEmailVerified(ctx context.Context, id uint64) error {
	_, err := r.storage.Exec(ctx,
		`UPDATE users SET email_verified = TRUE, email_verification_token = NULL, updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *UserRepository) SetPhoneVerified(ctx context.Context, id uint64) error {
	_, err := r.storage.Exec(ctx,
		`UPDATE users SET phone_verified = TRUE, updated_at = NOW() WHERE id = $1`, id)
	return err
}

func (r *UserRepository) UpdateStudentStatus(ctx context.Context, tx pgx.Tx, id uint64, status string) error {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}

	result, err := q.Exec(ctx,
		`UPDATE users SET student_status = $1, updated_at = NOW() WHERE id = $2`, status, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateGraduationInfo переписывает академические поля одним запросом:
// либо все изменения применяются, либо ни одно.
func (r *UserRepository) UpdateGraduationInfo(ctx context.Context, tx pgx.Tx, id uint64, user *entities.User) error {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}

	result, err := q.Exec(ctx, `
		UPDATE users
		SET admission_year = $1, graduation_year = $2, degree_level = $3,
			student_type = $4, faculty = $5, direction = $6, updated_at = NOW()
		WHERE id = $7
	`,
		user.AdmissionYear, user.GraduationYear, user.DegreeLevel,
		user.StudentType, user.Faculty, user.Direction, id,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// GetGraduatingStudents — текущие студенты, чей год выпуска не позже
// maxGraduationYear, с опциональными фильтрами по факультету и уровню.
func (r *UserRepository) GetGraduatingStudents(ctx context.Context, filter types.Filter, maxGraduationYear int) ([]entities.User, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyWhere := func(b sq.SelectBuilder) sq.SelectBuilder {
		b = b.Where(sq.Eq{"u.role": "student"}).
			Where(sq.Eq{"u.student_status": "current"}).
			Where(sq.LtOrEq{"u.graduation_year": maxGraduationYear})
		return applyUserFilters(b, filter)
	}

	countBuilder := applyWhere(psql.Select("COUNT(u.id)").From("users AS u"))
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	query, args, err := applyWhere(psql.Select(userColumns).From("users AS u")).
		OrderBy("u.graduation_year ASC, u.last_name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	students := make([]entities.User, 0, filter.Limit)
	for rows.Next() {
		student, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, *student)
	}

	return students, total, rows.Err()
}

// Допустимые точные фильтры поиска студентов.
var studentSearchFilterMap = map[string]string{
	"faculty":        "u.faculty",
	"direction":      "u.direction",
	"admissionYear":  "u.admission_year",
	"graduationYear": "u.graduation_year",
}

// SearchStudents ищет среди студентов по подстроке имени, фамилии,
// email или номера студенческого билета, с точными фильтрами по
// факультету, направлению и годам поступления и выпуска.
func (r *UserRepository) SearchStudents(ctx context.Context, query string, filter types.Filter) ([]entities.User, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	applyWhere := func(b sq.SelectBuilder) sq.SelectBuilder {
		b = b.Where(sq.Eq{"u.role": "student"})
		if query != "" {
			pattern := "%" + query + "%"
			b = b.Where(sq.Or{
				sq.ILike{"u.first_name": pattern},
				sq.ILike{"u.last_name": pattern},
				sq.ILike{"u.email": pattern},
				sq.ILike{"u.student_id": pattern},
			})
		}
		for jsonField, val := range filter.Filter {
			dbCol, ok := studentSearchFilterMap[jsonField]
			if !ok {
				continue
			}
			b = b.Where(sq.Eq{dbCol: val})
		}
		return b
	}

	countBuilder := applyWhere(psql.Select("COUNT(u.id)").From("users AS u"))
	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.User{}, 0, nil
	}

	querySQL, args, err := applyWhere(psql.Select(userColumns).From("users AS u")).
		OrderBy("u.first_name ASC, u.last_name ASC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, querySQL, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	students := make([]entities.User, 0, filter.Limit)
	for rows.Next() {
		student, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, *student)
	}

	return students, total, rows.Err()
}

func (r *UserRepository) CountByStatus(ctx context.Context, status string) (uint64, error) {
	var count uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(id) FROM users WHERE role = 'student' AND student_status = $1`, status,
	).Scan(&count)
	return count, err
}

func (r *UserRepository) CountByDegreeAndStatus(ctx context.Context) (map[string]map[string]uint64, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT degree_level, student_status, COUNT(id)
		FROM users
		WHERE role = 'student' AND degree_level IS NOT NULL AND student_status IS NOT NULL
		GROUP BY degree_level, student_status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	result := make(map[string]map[string]uint64)
	for rows.Next() {
		var degree, status string
		var count uint64
		if err := rows.Scan(&degree, &status, &count); err != nil {
			return nil, err
		}
		if result[degree] == nil {
			result[degree] = make(map[string]uint64)
		}
		result[degree][status] = count
	}

	return result, rows.Err()
}

func (r *UserRepository) CountByFacultyAndStatus(ctx context.Context) ([]FacultyStatusCount, error) {
	rows, err := r.storage.Query(ctx, `
		SELECT faculty, student_status, COUNT(id)
		FROM users
		WHERE role = 'student' AND faculty IS NOT NULL AND student_status IS NOT NULL
		GROUP BY faculty, student_status
		ORDER BY faculty
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var counts []FacultyStatusCount
	for rows.Next() {
		var c FacultyStatusCount
		if err := rows.Scan(&c.Faculty, &c.Status, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}
