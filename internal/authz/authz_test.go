package authz

import (
	"testing"

	"alumni-system/internal/entities"
	"alumni-system/pkg/constants"

	"github.com/stretchr/testify/assert"
)

func userWithRole(id uint64, role string) *entities.User {
	return &entities.User{ID: id, Role: role}
}

func TestCanDoByRole(t *testing.T) {
	cases := []struct {
		role    string
		action  string
		allowed bool
	}{
		{constants.RoleAdmin, UsersManage, true},
		{constants.RoleAdmin, GraduationManage, true},
		{constants.RoleAdmin, ActivityLogView, true},
		{constants.RoleAdmin, ReportsView, true},

		{constants.RoleTeacher, UsersView, true},
		{constants.RoleTeacher, StudentsView, true},
		{constants.RoleTeacher, AssignmentsView, true},
		{constants.RoleTeacher, UsersManage, false},
		{constants.RoleTeacher, GraduationManage, false},
		{constants.RoleTeacher, AssignmentsManage, false},
		{constants.RoleTeacher, ActivityLogView, false},

		{constants.RoleStudent, DictionariesView, true},
		{constants.RoleStudent, NotificationsView, true},
		{constants.RoleStudent, UsersView, false},
		{constants.RoleStudent, StudentsView, false},

		{"unknown", UsersView, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, CanDoByRole(tc.role, tc.action),
			"role=%s action=%s", tc.role, tc.action)
	}
}

func TestCanDo_NilActor(t *testing.T) {
	assert.False(t, CanDo(UsersView, Context{}))
}

func TestCanDo_NoTargetFallsBackToRole(t *testing.T) {
	admin := userWithRole(1, constants.RoleAdmin)
	assert.True(t, CanDo(GraduationManage, Context{Actor: admin}))

	student := userWithRole(2, constants.RoleStudent)
	assert.False(t, CanDo(GraduationManage, Context{Actor: student}))
}

func TestCanDo_UserTarget(t *testing.T) {
	admin := userWithRole(1, constants.RoleAdmin)
	teacher := userWithRole(2, constants.RoleTeacher)
	other := userWithRole(3, constants.RoleStudent)

	// Админ управляет любым пользователем.
	assert.True(t, CanDo(UsersManage, Context{Actor: admin, Target: other}))

	// Преподаватель видит чужую карточку, но не управляет ею.
	assert.True(t, CanDo(UsersView, Context{Actor: teacher, Target: other}))
	assert.False(t, CanDo(UsersManage, Context{Actor: teacher, Target: other}))

	// Свой профиль доступен каждому в рамках его роли.
	assert.True(t, CanDo(UsersView, Context{Actor: teacher, Target: teacher}))
}

func TestCanDo_AssignmentTarget(t *testing.T) {
	admin := userWithRole(1, constants.RoleAdmin)
	teacher := userWithRole(2, constants.RoleTeacher)

	own := &entities.TeacherStudent{TeacherID: 2, StudentID: 10}
	foreign := &entities.TeacherStudent{TeacherID: 3, StudentID: 10}

	assert.True(t, CanDo(AssignmentsView, Context{Actor: admin, Target: foreign}))
	assert.True(t, CanDo(AssignmentsView, Context{Actor: teacher, Target: own}))
	assert.False(t, CanDo(AssignmentsView, Context{Actor: teacher, Target: foreign}))
}
