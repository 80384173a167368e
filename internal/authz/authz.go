package authz

import (
	"alumni-system/internal/entities"
	"alumni-system/pkg/constants"
)

// Действия над ресурсами. Проверка прав — единый предикат
// CanDo(субъект, действие, ресурс), а не сравнение строк в хендлерах.
const (
	UsersView   = "users:view"
	UsersManage = "users:manage"

	StudentsView      = "students:view"
	GraduationManage  = "graduation:manage"
	AssignmentsView   = "assignments:view"
	AssignmentsManage = "assignments:manage"

	DictionariesView   = "dictionaries:view"
	DictionariesManage = "dictionaries:manage"

	NotificationsView = "notifications:view"
	ActivityLogView   = "activity:view"
	ReportsView       = "reports:view"
)

// rolePermissions — какие действия разрешены каждой роли.
var rolePermissions = map[string]map[string]bool{
	constants.RoleAdmin: {
		UsersView:          true,
		UsersManage:        true,
		StudentsView:       true,
		GraduationManage:   true,
		AssignmentsView:    true,
		AssignmentsManage:  true,
		DictionariesView:   true,
		DictionariesManage: true,
		NotificationsView:  true,
		ActivityLogView:    true,
		ReportsView:        true,
	},
	constants.RoleTeacher: {
		UsersView:         true,
		StudentsView:      true,
		AssignmentsView:   true,
		DictionariesView:  true,
		NotificationsView: true,
	},
	constants.RoleStudent: {
		DictionariesView:  true,
		NotificationsView: true,
	},
}

// Context — субъект и цель проверки.
type Context struct {
	Actor  *entities.User
	Target interface{}
}

// CanDo отвечает, может ли субъект выполнить действие над целью.
// Сначала RBAC по роли, затем проверка цели.
func CanDo(action string, ctx Context) bool {
	if ctx.Actor == nil {
		return false
	}

	perms, ok := rolePermissions[ctx.Actor.Role]
	if !ok || !perms[action] {
		return false
	}

	if ctx.Target == nil {
		return true
	}

	switch target := ctx.Target.(type) {
	case *entities.User:
		return canAccessUser(ctx.Actor, action, target)
	case *entities.TeacherStudent:
		return canAccessAssignment(ctx.Actor, target)
	}

	return true
}

// CanDoByRole — вариант для middleware, когда из токена известна
// только роль, без загрузки пользователя.
func CanDoByRole(role, action string) bool {
	perms, ok := rolePermissions[role]
	return ok && perms[action]
}

func canAccessUser(actor *entities.User, action string, target *entities.User) bool {
	// Свой профиль доступен всегда
	if actor.ID == target.ID {
		return true
	}
	if actor.Role == constants.RoleAdmin {
		return true
	}
	// Преподаватель видит карточки, но не управляет ими
	return action == UsersView || action == StudentsView
}

func canAccessAssignment(actor *entities.User, target *entities.TeacherStudent) bool {
	if actor.Role == constants.RoleAdmin {
		return true
	}
	// Преподаватель видит только собственные закрепления
	return actor.Role == constants.RoleTeacher && target.TeacherID == actor.ID
}
