package contextkeys

type contextKey string

const (
	UsernameKey  contextKey = "Username"
	UserRoleKey  contextKey = "UserRole"
	RequestIDKey contextKey = "RequestID"
)
