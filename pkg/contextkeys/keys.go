package contextkeys

// contextKey - отдельный тип, чтобы ключи не пересекались
// с ключами чужих пакетов в одном контексте.
type contextKey string

// Ключи, под которыми auth-middleware кладет данные токена в контекст.
const (
	UserIDKey   contextKey = "UserID"
	UserRoleKey contextKey = "UserRole"
)
