package constants

// Роли пользователей
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// Уровни образования
const (
	DegreeBachelor = "bachelor"
	DegreeMaster   = "master"
	DegreePhd      = "phd"
	DegreeDsc      = "dsc"
)

// Типы обучения
const (
	StudentTypeRegular       = "regular"
	StudentTypeFreeApplicant = "free_applicant"
	StudentTypeExternal      = "external"
)

// Формы финансирования
const (
	FinancingBudget   = "budget"
	FinancingContract = "contract"
)

// Статусы студента. Переходы только current -> graduate (подтверждение)
// и graduate -> current (откат).
const (
	StudentStatusCurrent  = "current"
	StudentStatusGraduate = "graduate"
)

// Типы уведомлений
const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationSuccess = "success"
	NotificationError   = "error"
)

// Действия журнала активности
const (
	ActionStudentGraduated          = "STUDENT_GRADUATED"
	ActionStudentGraduationReverted = "STUDENT_GRADUATION_REVERTED"
	ActionGraduationInfoUpdated     = "GRADUATION_INFO_UPDATED"
	ActionStudentAssigned           = "STUDENT_ASSIGNED"
	ActionStudentUnassigned         = "STUDENT_UNASSIGNED"
	ActionUserCreated               = "USER_CREATED"
	ActionUserUpdated               = "USER_UPDATED"
	ActionUserDeleted               = "USER_DELETED"
	ActionUserVerified              = "USER_VERIFIED"
	ActionUserBlocked               = "USER_BLOCKED"
	ActionUserUnblocked             = "USER_UNBLOCKED"
	ActionUserLogin                 = "USER_LOGIN"
)

// AcademicYearBoundaryMonth — граница учебного года. Учебный год длится
// с июня по июнь и идентифицируется годом начала.
const AcademicYearBoundaryMonth = 6
