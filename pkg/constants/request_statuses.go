package constants

// --- СТАТУСЫ ЗАЯВОК НА ОБСЛУЖИВАНИЕ (совпадают со значениями в БД) ---
const (
	StatusNew        = "new"
	StatusInProgress = "in_progress"
	StatusRepaired   = "repaired"
	StatusScrap      = "scrap"
)

// AllStatuses - единственные четыре легальных статуса заявки.
var AllStatuses = []string{
	StatusNew,
	StatusInProgress,
	StatusRepaired,
	StatusScrap,
}

// Терминальные статусы: после них переходов не ожидается.
var TerminalStatuses = []string{
	StatusRepaired,
	StatusScrap,
}

func IsValidStatus(status string) bool {
	for _, s := range AllStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func IsTerminalStatus(status string) bool {
	for _, s := range TerminalStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// --- ТИПЫ ЗАЯВОК ---
const (
	RequestTypeCorrective = "corrective"
	RequestTypePreventive = "preventive"
)

var AllRequestTypes = []string{
	RequestTypeCorrective,
	RequestTypePreventive,
}

func IsValidRequestType(requestType string) bool {
	for _, t := range AllRequestTypes {
		if t == requestType {
			return true
		}
	}
	return false
}

// --- ПРИОРИТЕТЫ ---
const (
	PriorityLow      = "low"
	PriorityMedium   = "medium"
	PriorityHigh     = "high"
	PriorityCritical = "critical"
)

var AllPriorities = []string{
	PriorityLow,
	PriorityMedium,
	PriorityHigh,
	PriorityCritical,
}

func IsValidPriority(priority string) bool {
	for _, p := range AllPriorities {
		if p == priority {
			return true
		}
	}
	return false
}

// PriorityRank - фиксированный порядок для сортировки очередей: critical > high > medium > low.
// Используется только для отображения, не для бизнес-логики.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityCritical:
		return 4
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}
