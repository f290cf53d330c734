package middleware

import (
	"context"
	"net/http"
)

// Session извлекает ID браузерной сессии из заголовка X-Session-ID.
// Публичные операции резервирования привязаны к сессии, поэтому
// запросы без заголовка отклоняются с 400
func Session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.Header.Get("X-Session-ID")
		if sessionID == "" {
			http.Error(w, `{"error":"отсутствует заголовок X-Session-ID"}`, http.StatusBadRequest)
			return
		}

		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionIDFromContext возвращает ID сессии, добавленный middleware Session
func SessionIDFromContext(ctx context.Context) (string, bool) {
	sessionID, ok := ctx.Value(sessionIDKey).(string)
	return sessionID, ok
}
