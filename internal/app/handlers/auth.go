package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/linemk/order-days/internal/service"
)

// MsgCredentialsRequired - логин и пароль обязательны
const MsgCredentialsRequired = "اسم المستخدم وكلمة المرور مطلوبان."

// LoginRequest представляет структуру запроса для аутентификации с тегами валидации
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

var validate = validator.New()

// LoginHandler – HTTP-обработчик для POST /api/auth/login
func LoginHandler(log *slog.Logger, authService service.AuthServiceInterface) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.LoginHandler"
		logger := log.With(slog.String("op", op))

		var req LoginRequest
		if err := decodeJSON(r, &req, false); err != nil {
			logger.Warn("invalid request: decoding error", slog.Any("error", err))
			writeError(w, logger, http.StatusBadRequest, MsgCredentialsRequired)
			return
		}

		if err := validate.Struct(req); err != nil {
			logger.Warn("invalid request: validation error", slog.Any("error", err))
			writeError(w, logger, http.StatusBadRequest, MsgCredentialsRequired)
			return
		}

		res, err := authService.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeServiceError(w, logger, err, "حدث خطأ أثناء تسجيل الدخول.")
			return
		}

		writeJSON(w, logger, http.StatusOK, res)
	}
}
