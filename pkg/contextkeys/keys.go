package contextkeys

type contextKey string

const (
	UserIDKey   contextKey = "UserID"
	UserRoleKey contextKey = "UserRole"
	ClientIPKey contextKey = "ClientIP"
	UserAgentKey contextKey = "UserAgent"
)
