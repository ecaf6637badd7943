package jwtmiddleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/linemk/order-days/internal/domain/models"
	security "github.com/linemk/order-days/internal/jwt-new"
)

type contextKey string

const UserKey contextKey = "user"

// Тексты ответов: оба случая отдают 401, различаются только сообщением
const (
	MsgMissingToken = "غير مصرح. يرجى تسجيل الدخول."
	MsgInvalidToken = "الجلسة منتهية أو غير صالحة. يرجى تسجيل الدخول مرة أخرى."
)

// NewJWTMiddleware создаёт middleware для проверки JWT.
// Секрет передаётся из конфига, пустой секрет - ошибка конфигурации.
func NewJWTMiddleware(log *slog.Logger, secret string) func(http.Handler) http.Handler {
	if secret == "" {
		panic("JWT_SECRET is not set")
	}
	log = log.With(slog.String("component", "middleware/jwt"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Извлекаем токен из заголовка Authorization (формат: "Bearer <token>")
			tokenStr, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				unauthorized(w, MsgMissingToken)
				return
			}

			claims, err := security.ParseToken(tokenStr, secret)
			if err != nil {
				log.Warn("jwt verify failed", slog.Any("error", err))
				unauthorized(w, MsgInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), UserKey, claims.Profile())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext извлекает пользователя, которого положил middleware.
func FromContext(ctx context.Context) (models.Profile, bool) {
	user, ok := ctx.Value(UserKey).(models.Profile)
	return user, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
