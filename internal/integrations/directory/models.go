package directory

// User модель участника из справочника пользователей
type User struct {
	ID    int64  `json:"id"`
	Role  string `json:"role"` // requester | provider
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ErrorResponse модель ошибки от справочника
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
