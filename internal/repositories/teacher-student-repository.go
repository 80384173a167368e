package repositories

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"alumni-system/internal/entities"
	apperrors "alumni-system/pkg/errors"
	"alumni-system/pkg/types"
)

type TeacherStudentRepositoryInterface interface {
	Exists(ctx context.Context, teacherID, studentID uint64) (bool, error)
	Create(ctx context.Context, tx pgx.Tx, assignment *entities.TeacherStudent) (uint64, error)
	Delete(ctx context.Context, teacherID, studentID uint64) error
	ListByTeacher(ctx context.Context, teacherID uint64, filter types.Filter) ([]entities.AssignedStudent, uint64, error)
}

type TeacherStudentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewTeacherStudentRepository(storage *pgxpool.Pool, logger *zap.Logger) TeacherStudentRepositoryInterface {
	return &TeacherStudentRepository{storage: storage, logger: logger}
}

func (r *TeacherStudentRepository) Exists(ctx context.Context, teacherID, studentID uint64) (bool, error) {
	var exists bool
	err := r.storage.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM teacher_students WHERE teacher_id = $1 AND student_id = $2)`,
		teacherID, studentID,
	).Scan(&exists)
	return exists, err
}

func (r *TeacherStudentRepository) Create(ctx context.Context, tx pgx.Tx, assignment *entities.TeacherStudent) (uint64, error) {
	var q querier = r.storage
	if tx != nil {
		q = tx
	}

	var newID uint64
	err := q.QueryRow(ctx, `
		INSERT INTO teacher_students (teacher_id, student_id, assigned_by, assigned_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id
	`, assignment.TeacherID, assignment.StudentID, assignment.AssignedBy).Scan(&newID)

	return newID, err
}

func (r *TeacherStudentRepository) Delete(ctx context.Context, teacherID, studentID uint64) error {
	result, err := r.storage.Exec(ctx,
		`DELETE FROM teacher_students WHERE teacher_id = $1 AND student_id = $2`,
		teacherID, studentID,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.NewNotFoundError(apperrors.CodeAssignmentNotFound, "Закрепление не найдено")
	}
	return nil
}

// ListByTeacher возвращает закреплённых за преподавателем студентов
// вместе с датой закрепления, постранично.
func (r *TeacherStudentRepository) ListByTeacher(ctx context.Context, teacherID uint64, filter types.Filter) ([]entities.AssignedStudent, uint64, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	var total uint64
	sqlCount, argsCount, err := psql.Select("COUNT(ts.id)").
		From("teacher_students AS ts").
		Where(sq.Eq{"ts.teacher_id": teacherID}).
		ToSql()
	if err != nil {
		return nil, 0, err
	}
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entities.AssignedStudent{}, 0, nil
	}

	query, args, err := psql.Select(userColumns, "ts.assigned_at").
		From("teacher_students AS ts").
		Join("users AS u ON u.id = ts.student_id").
		Where(sq.Eq{"ts.teacher_id": teacherID}).
		OrderBy("ts.assigned_at DESC").
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

	students := make([]entities.AssignedStudent, 0, filter.Limit)
	for rows.Next() {
		var assignedAt time.Time
		student, err := scanUser(rows, &assignedAt)
		if err != nil {
			return nil, 0, err
		}
		students = append(students, entities.AssignedStudent{
			Student:    *student,
			AssignedAt: assignedAt,
		})
	}

	return students, total, rows.Err()
}
