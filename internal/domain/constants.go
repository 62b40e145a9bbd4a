package domain

// Значения по умолчанию
const (
	DefaultDurationMinutes = 60
)

// Ограничения бизнес-валидации
const (
	MinDurationMinutes = 15
	MaxDurationMinutes = 480 // 8 hours
	MinWeekday         = 0   // Sunday
	MaxWeekday         = 6   // Saturday
	MaxReasonLength    = 1000
	MaxNoteLength      = 1000
)

// Форматы времени
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Роли участников
type Role string

const (
	RoleRequester Role = "requester"
	RoleProvider  Role = "provider"
)

// PartyRole задает, с какой стороны запрашиваются бронирования
type PartyRole = Role
