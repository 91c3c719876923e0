// pkg/constants/constants.go
package constants

//============== СТАТУСЫ ОБОРУДОВАНИЯ ==============

const (
	EquipmentStatusActive      = "active"
	EquipmentStatusUnderRepair = "under_repair"
	EquipmentStatusScrapped    = "scrapped"
)

//============== РОЛИ ПОЛЬЗОВАТЕЛЕЙ ==============

// Роли приходят из подсистемы аутентификации; движок жизненного цикла
// их не проверяет, проверка выполняется в middleware.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleTechnician = "technician"
	RoleEmployee   = "employee"
)

//============== UPLOAD CONTEXTS ==============

// UploadContext определяет тип для контекстов загрузки файлов.
type UploadContext string

const (
	// UploadContextRequestAttachment - вложения к заявкам на обслуживание.
	UploadContextRequestAttachment UploadContext = "request_attachment"
)

func (uc UploadContext) String() string {
	return string(uc)
}

//============== CACHE KEYS ==============

// Префиксы для ключей в Redis/кеше.
const (
	// Ключ для кеша статистики по командам.
	CacheKeyTeamStats = "dashboard:team_stats"

	// Ключ для кеша статистики по оборудованию.
	CacheKeyEquipmentStats = "dashboard:equipment_stats"

	// Ключ для подсчета неудачных попыток входа.
	// Формат: login_attempts:<login> -> count
	CacheKeyLoginAttempts = "login_attempts:%s"
)
