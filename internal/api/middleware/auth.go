package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TherapyBooking/internal/api/handlers"
)

// UserIDHeader заголовок с ID участника, проставляется шлюзом
const UserIDHeader = "X-User-ID"

const msgInvalidUserHeader = "отсутствует или некорректный заголовок X-User-ID"

type ctxKey struct{}

// Auth извлекает ID участника из X-User-ID и кладет его в контекст
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := strconv.ParseInt(r.Header.Get(UserIDHeader), 10, 64)
		if err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, msgInvalidUserHeader)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID кладет ID участника в контекст
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// GetUserID достает ID участника из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(ctxKey{}).(int64)
	return userID, ok
}
